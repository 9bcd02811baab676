package tui

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/quotecalc/internal/calculation"
	"github.com/rgehrsitz/quotecalc/internal/config"
	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/rgehrsitz/quotecalc/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	currentScene Scene

	// Terminal dimensions
	width  int
	height int

	requestPath string
	parser      *config.InputParser
	calcEngine  *calculation.CalculationEngine

	// The loaded request plus the overrides edited in the TUI
	request   *config.QuoteRequest
	frequency domain.Frequency
	targetAge int
	snapshot  *domain.PolicySnapshot

	quoteModel      *scenes.QuoteModel
	projectionModel *scenes.ProjectionModel
	frequencyModel  *scenes.FrequencyModel

	keys        keyMap
	help        help.Model
	targetInput textinput.Model
	editing     bool

	err     error
	loading bool
	status  string
}

// NewModel creates a new application model for a quote request file
func NewModel(requestPath string, parser *config.InputParser, engine *calculation.CalculationEngine) Model {
	ti := textinput.New()
	ti.Prompt = "Target age: "
	ti.Placeholder = "e.g. 60"
	ti.CharLimit = 3
	ti.Width = 5

	return Model{
		currentScene:    SceneQuote,
		requestPath:     requestPath,
		parser:          parser,
		calcEngine:      engine,
		frequency:       domain.FrequencyAnnual,
		quoteModel:      scenes.NewQuoteModel(),
		projectionModel: scenes.NewProjectionModel(),
		frequencyModel:  scenes.NewFrequencyModel(),
		keys:            defaultKeyMap(),
		help:            help.New(),
		targetInput:     ti,
		width:           80,
		height:          24,
		loading:         true,
	}
}

// Init loads the request file
func (m Model) Init() tea.Cmd {
	return loadRequestCmd(m.requestPath, m.parser)
}

func loadRequestCmd(path string, parser *config.InputParser) tea.Cmd {
	return func() tea.Msg {
		req, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return RequestLoadedMsg{Request: req}
	}
}

// calculateCmd prices the request, compares frequencies and illustrates it.
// The request is passed by value so the command never races the model.
func calculateCmd(parser *config.InputParser, engine *calculation.CalculationEngine, req config.QuoteRequest) tea.Cmd {
	return func() tea.Msg {
		quote, err := parser.BuildQuote(&req)
		if err != nil {
			return CalculationCompleteMsg{Err: err}
		}
		snap, err := engine.CalculateWithFrequency(quote.Policy, quote.Frequency)
		if err != nil {
			return CalculationCompleteMsg{Err: err}
		}
		msg := CalculationCompleteMsg{
			Snapshot:   snap,
			Comparison: calculation.CompareFrequencies(snap.MainTotal, snap.RiderTotal),
		}
		msg.Projection, msg.ProjectionErr = engine.Project(quote.Policy, calculation.ProjectionOptions{
			TargetAge: quote.TargetAge,
			Frequency: quote.Frequency,
		})
		return msg
	}
}

func saveCmd(path string, req config.QuoteRequest) tea.Cmd {
	return func() tea.Msg {
		return SaveCompleteMsg{Filename: path, Err: config.SaveRequest(&req, path)}
	}
}

// editedRequest is the loaded request with the TUI overrides applied
func (m Model) editedRequest() config.QuoteRequest {
	req := *m.request
	req.Frequency = string(m.frequency)
	req.TargetAge = m.targetAge
	return req
}

func (m Model) recalculate() (Model, tea.Cmd) {
	if m.request == nil {
		return m, nil
	}
	m.loading = true
	m.status = ""
	return m, calculateCmd(m.parser, m.calcEngine, m.editedRequest())
}

// editedPath puts saved edits next to the original, never over it
func editedPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".edited.yaml"
}

func nextFrequency(f domain.Frequency) domain.Frequency {
	for i, candidate := range domain.Frequencies {
		if candidate == f {
			return domain.Frequencies[(i+1)%len(domain.Frequencies)]
		}
	}
	return domain.FrequencyAnnual
}
