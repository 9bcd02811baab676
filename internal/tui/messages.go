package tui

import (
	"github.com/rgehrsitz/quotecalc/internal/config"
	"github.com/rgehrsitz/quotecalc/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneQuote Scene = iota
	SceneProjection
	SceneFrequency
)

var sceneOrder = []Scene{SceneQuote, SceneProjection, SceneFrequency}

func (s Scene) String() string {
	switch s {
	case SceneQuote:
		return "Quote"
	case SceneProjection:
		return "Illustration"
	case SceneFrequency:
		return "Payment plans"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// RequestLoadedMsg signals the quote request file has been read
type RequestLoadedMsg struct {
	Request *config.QuoteRequest
}

// CalculationCompleteMsg carries one pricing pass. ProjectionErr is set when
// the snapshot priced but the illustration was rejected.
type CalculationCompleteMsg struct {
	Snapshot      *domain.PolicySnapshot
	Projection    *domain.Projection
	Comparison    []domain.FrequencyBreakdown
	Err           error
	ProjectionErr error
}

// SaveCompleteMsg signals a save operation has finished
type SaveCompleteMsg struct {
	Filename string
	Err      error
}
