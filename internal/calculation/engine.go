package calculation

import (
	"github.com/google/uuid"
	"github.com/rgehrsitz/quotecalc/internal/eligibility"
	"github.com/rgehrsitz/quotecalc/internal/ratetable"
)

// Logger is the minimal logging surface the engine writes to
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// CalculationEngine prices policies against a rate provider. It only holds
// read-only collaborators, so one engine can serve concurrent callers.
type CalculationEngine struct {
	Rates       ratetable.Provider
	Eligibility *eligibility.Resolver
	Logger      Logger

	// NewID stamps snapshots and projections; replaceable in tests
	NewID func() string
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine(rates ratetable.Provider) *CalculationEngine {
	return &CalculationEngine{
		Rates:       rates,
		Eligibility: eligibility.NewResolver(),
		Logger:      NopLogger{},
		NewID:       uuid.NewString,
	}
}

// SetLogger sets the logger, falling back to NopLogger for nil
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) newID() string {
	if ce.NewID == nil {
		return uuid.NewString()
	}
	return ce.NewID()
}
