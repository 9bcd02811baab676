package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/quotecalc/internal/domain"
)

// Report is everything a formatter can render. Only Snapshot is required.
type Report struct {
	Snapshot   *domain.PolicySnapshot      `json:"snapshot"`
	Projection *domain.Projection          `json:"projection,omitempty"`
	Comparison []domain.FrequencyBreakdown `json:"frequencyComparison,omitempty"`
}

// Formatter renders a report into bytes
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{
	"console":      ConsoleFormatter{},
	"console-lite": ConsoleLiteFormatter{},
	"json":         JSONFormatter{Pretty: true},
	"json-compact": JSONFormatter{},
	"csv":          CSVFormatter{},
	"html":         HTMLFormatter{},
}

var formatAliases = map[string]string{
	"text":    "console",
	"verbose": "console",
	"summary": "console-lite",
	"lite":    "console-lite",
	"web":     "html",
}

// GetFormatterByName returns the formatter registered under name or alias,
// or nil when there is none.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists the registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases, sorted
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted renders the report into a timestamped file in the
// working directory and returns its name.
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("quote_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// ExtensionFor returns the file extension conventionally used by a formatter
func ExtensionFor(f Formatter) string {
	switch f.Name() {
	case "json", "json-compact":
		return "json"
	case "csv":
		return "csv"
	case "html":
		return "html"
	}
	return "txt"
}
