package calculation

import (
	"fmt"
	"testing"

	"github.com/rgehrsitz/quotecalc/internal/ratetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine(t *testing.T) {
	tables, err := ratetable.Default()
	require.NoError(t, err)
	engine := NewCalculationEngine(tables)

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Rates, "Should keep rate provider")
	assert.NotNil(t, engine.Eligibility, "Should initialize eligibility resolver")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.NotEmpty(t, engine.newID(), "Should generate ids")
	assert.NotEqual(t, engine.newID(), engine.newID(), "ids should be unique")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := newTestEngine(t)

	// Test setting a custom logger
	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)

	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	// Test setting nil logger (should use no-op logger)
	engine.SetLogger(nil)

	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_LogsRejections(t *testing.T) {
	engine := newTestEngine(t)
	logger := &TestLogger{}
	engine.SetLogger(logger)

	policy := flexiblePolicy(t)
	policy.Product.EnteredPremium = money(50_000_000)
	_, err := engine.Calculate(policy)
	require.Error(t, err)

	require.NotEmpty(t, logger.messages)
	assert.Contains(t, logger.messages[len(logger.messages)-1], "WARN: main premium rejected")
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...any) {
	tl.messages = append(tl.messages, "DEBUG: "+fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Infof(format string, args ...any) {
	tl.messages = append(tl.messages, "INFO: "+fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Warnf(format string, args ...any) {
	tl.messages = append(tl.messages, "WARN: "+fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Errorf(format string, args ...any) {
	tl.messages = append(tl.messages, "ERROR: "+fmt.Sprintf(format, args...))
}
