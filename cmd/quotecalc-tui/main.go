package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/quotecalc/internal/calculation"
	"github.com/rgehrsitz/quotecalc/internal/config"
	"github.com/rgehrsitz/quotecalc/internal/ratetable"
	"github.com/rgehrsitz/quotecalc/internal/tui"
)

func main() {
	// Get request file path from arguments
	if len(os.Args) < 2 {
		fmt.Println("Usage: quotecalc-tui <request-file>")
		os.Exit(1)
	}
	requestPath := os.Args[1]

	if _, err := os.Stat(requestPath); os.IsNotExist(err) {
		fmt.Printf("Error: Request file not found: %s\n", requestPath)
		os.Exit(1)
	}

	settings, err := config.LoadSettings("")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	tables, err := loadRates(settings.RatesPath)
	if err != nil {
		fmt.Printf("Error loading rate tables: %v\n", err)
		os.Exit(1)
	}

	model := tui.NewModel(requestPath, config.NewInputParser(tables), calculation.NewCalculationEngine(tables))

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse wheel scrolls the illustration
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func loadRates(path string) (*ratetable.Tables, error) {
	if path == "" {
		return ratetable.Default()
	}
	return ratetable.LoadFromFile(path)
}
