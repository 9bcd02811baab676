package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/quotecalc/internal/config"
	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Template categories in help order
const (
	CategoryPayment      = "Payment Plans"
	CategoryPremium      = "Premium"
	CategoryRiders       = "Riders"
	CategoryCombinations = "Combination Strategies"
)

var categoryOrder = []string{CategoryPayment, CategoryPremium, CategoryRiders, CategoryCombinations}

// TemplateRegistry manages built-in request templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Category    string
	Transforms  []RequestTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if
// alternatives. Per-insured templates target insuredID.
func CreateBuiltInTemplates(insuredID string) *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "semiannual",
		Description: "Pay twice a year",
		Category:    CategoryPayment,
		Transforms:  []RequestTransform{&SetFrequency{Frequency: domain.FrequencySemiAnnual}},
	})
	registry.Register(Template{
		Name:        "quarterly",
		Description: "Pay four times a year",
		Category:    CategoryPayment,
		Transforms:  []RequestTransform{&SetFrequency{Frequency: domain.FrequencyQuarterly}},
	})

	registry.Register(Template{
		Name:        "no_extra",
		Description: "Drop the extra premium",
		Category:    CategoryPremium,
		Transforms:  []RequestTransform{&SetExtraPremium{Amount: decimal.Zero}},
	})

	registry.Register(Template{
		Name:        "no_waiver",
		Description: "Drop the premium waiver",
		Category:    CategoryRiders,
		Transforms:  []RequestTransform{&RemoveWaiver{}},
	})
	registry.Register(Template{
		Name:        "basic_health",
		Description: fmt.Sprintf("Move %s to the basic health program", insuredLabel(insuredID)),
		Category:    CategoryRiders,
		Transforms:  []RequestTransform{&SetHealthProgram{Insured: insuredID, Program: domain.ProgramBasic}},
	})
	registry.Register(Template{
		Name:        "no_hospital_cash",
		Description: fmt.Sprintf("Drop hospital cash for %s", insuredLabel(insuredID)),
		Category:    CategoryRiders,
		Transforms:  []RequestTransform{&DropRider{Insured: insuredID, Rider: domain.RiderHospitalCash}},
	})

	registry.Register(Template{
		Name:        "lean",
		Description: "Lean bundle: no extra premium, no waiver, basic health",
		Category:    CategoryCombinations,
		Transforms: []RequestTransform{
			&SetExtraPremium{Amount: decimal.Zero},
			&RemoveWaiver{},
			&SetHealthProgram{Insured: insuredID, Program: domain.ProgramBasic},
		},
	})
	registry.Register(Template{
		Name:        "quarterly_no_extra",
		Description: "Pay quarterly without the extra premium",
		Category:    CategoryCombinations,
		Transforms: []RequestTransform{
			&SetFrequency{Frequency: domain.FrequencyQuarterly},
			&SetExtraPremium{Amount: decimal.Zero},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base request
func ApplyTemplate(base *config.QuoteRequest, template Template) (*config.QuoteRequest, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	categories := map[string][]Template{}
	for _, name := range registry.List() {
		t := registry.templates[name]
		categories[t.Category] = append(categories[t.Category], t)
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, category := range categoryOrder {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		fmt.Fprintf(&sb, "%s:\n", category)
		for _, t := range templates {
			fmt.Fprintf(&sb, "  %-22s %s\n", t.Name, t.Description)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  quotecalc compare quote.yaml --with quarterly,no_waiver\n")
	sb.WriteString("  quotecalc compare quote.yaml --transform drop_rider:insured=binh,rider=hospital_cash\n")

	return sb.String()
}
