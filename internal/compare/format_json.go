package compare

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// JSONFormatter renders a comparison set as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format encodes the set; snapshots are omitted, only the derived metrics are written
func (jf *JSONFormatter) Format(set *ComparisonSet) (string, error) {
	if set == nil {
		return "", errors.New("no comparison to format")
	}
	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}
	data, err := marshal(set)
	if err != nil {
		return "", fmt.Errorf("encode comparison: %w", err)
	}
	return string(data), nil
}
