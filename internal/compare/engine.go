package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/quotecalc/internal/calculation"
	"github.com/rgehrsitz/quotecalc/internal/config"
	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/rgehrsitz/quotecalc/internal/transform"
)

// CompareEngine prices a base request against what-if alternatives
type CompareEngine struct {
	Parser            *config.InputParser
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(parser *config.InputParser, calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		Parser:            parser,
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseName   string   // Label of the base request
	Templates  []string // Template names, one alternative each
	Transforms []string // Transform specs applied together as one custom alternative
	InsuredID  string   // Insured targeted by per-insured templates; empty means main
}

// Compare prices the base request and every alternative built from options.
// An alternative the engine rejects is reported, not returned as an error;
// a rejected base is an error.
func (ce *CompareEngine) Compare(ctx context.Context, base *config.QuoteRequest, options CompareOptions) (*ComparisonSet, error) {
	insured := options.InsuredID
	if insured == "" {
		insured = domain.MainInsuredID
	}
	ce.TemplateRegistry = transform.CreateBuiltInTemplates(insured)

	baseName := options.BaseName
	if baseName == "" {
		baseName = "base"
	}

	baseResult, err := ce.evaluate(base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base request: %w", err)
	}
	if baseResult.Rejected != "" {
		return nil, fmt.Errorf("base request rejected: %s", baseResult.Rejected)
	}
	baseResult.ScenarioName = baseName
	baseResult.Description = "As requested"

	type alternative struct {
		name, description string
		transforms        []transform.RequestTransform
	}
	var alternatives []alternative
	for _, name := range options.Templates {
		tmpl, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		alternatives = append(alternatives, alternative{tmpl.Name, tmpl.Description, tmpl.Transforms})
	}
	if len(options.Transforms) > 0 {
		custom := alternative{name: "custom"}
		for _, spec := range options.Transforms {
			tr, err := ce.TransformRegistry.ParseTransformSpec(spec)
			if err != nil {
				return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
			}
			custom.transforms = append(custom.transforms, tr)
		}
		custom.description = describe(custom.transforms)
		alternatives = append(alternatives, custom)
	}

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, alt := range alternatives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(base, alt.transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", alt.name, err)
		}

		result, err := ce.evaluate(modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate %s: %w", alt.name, err)
		}
		result.ScenarioName = alt.name
		result.Description = alt.description
		if result.Rejected == "" {
			result = ce.MetricsCalculator.CalculateComparison(result, baseResult)
		}
		results = append(results, result)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

// evaluate prices one request. Engine validation errors become a rejected
// result; anything else is returned.
func (ce *CompareEngine) evaluate(req *config.QuoteRequest) (ComparisonResult, error) {
	quote, err := ce.Parser.BuildQuote(req)
	if err != nil {
		return ComparisonResult{}, err
	}

	snap, err := ce.CalcEngine.CalculateWithFrequency(quote.Policy, quote.Frequency)
	if err != nil {
		if calculation.IsValidationError(err) {
			return ComparisonResult{Frequency: quote.Frequency, Rejected: err.Error()}, nil
		}
		return ComparisonResult{}, err
	}

	proj, projErr := ce.CalcEngine.Project(quote.Policy, calculation.ProjectionOptions{
		TargetAge: quote.TargetAge,
		Frequency: quote.Frequency,
	})
	if projErr != nil && !calculation.IsValidationError(projErr) {
		return ComparisonResult{}, projErr
	}
	return ce.MetricsCalculator.CalculateMetrics(snap, proj, projErr), nil
}

func describe(transforms []transform.RequestTransform) string {
	parts := make([]string, 0, len(transforms))
	for _, tr := range transforms {
		parts = append(parts, tr.Description())
	}
	return strings.Join(parts, "; ")
}
