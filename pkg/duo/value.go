package duo

import (
	"strconv"
	"strings"

	"github.com/schoolkeuze/duosync/pkg/xlsx"
)

// MetricValue is the numeric/text disambiguation of one raw metric cell.
// At most one of Number and Text is set. Both are nil only when the cell
// was absent or carried the formula-error sentinel.
type MetricValue struct {
	Number *float64
	Text   *string
}

// ParseMetricValue coerces a raw cell into a MetricValue. Parsing is
// permissive: non-numeric text is kept as the textual fallback rather than
// rejected, and the error sentinel resolves to no value at all.
func ParseMetricValue(v xlsx.Value) MetricValue {
	if !v.Valid || v.String == ErrorValue {
		return MetricValue{}
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(v.String), 64); err == nil {
		return MetricValue{Number: &f}
	}
	s := v.String
	return MetricValue{Text: &s}
}
