package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"github.com/rgehrsitz/quotecalc/internal/domain"
)

// HTMLFormatter produces a standalone HTML quote page
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/quote.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("quote").Funcs(template.FuncMap{
	"vnd":    FormatVND,
	"amount": FormatAmount,
	"date":   func(t time.Time) string { return t.Format(domain.DOBLayout) },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Snapshot == nil {
		return nil, fmt.Errorf("report has no snapshot")
	}
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
