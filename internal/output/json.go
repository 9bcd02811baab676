package output

import (
	"fmt"

	"github.com/goccy/go-json"
)

// JSONFormatter emits the report structures as JSON. Amounts are decimal
// strings so no precision is lost.
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string {
	if j.Pretty {
		return "json"
	}
	return "json-compact"
}

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Snapshot == nil {
		return nil, fmt.Errorf("report has no snapshot")
	}
	var (
		data []byte
		err  error
	)
	if j.Pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return append(data, '\n'), nil
}
