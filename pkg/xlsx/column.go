package xlsx

import (
	"fmt"
	"sort"
)

// ColumnKey converts a spreadsheet column reference (A, B, ..., Z, AA, AB, ...)
// to a 1-based ordinal that preserves left-to-right column order. It is used
// as a sort key only; there is no inverse.
func ColumnKey(ref string) (int, error) {
	if ref == "" {
		return 0, fmt.Errorf("empty column reference")
	}
	n := 0
	for _, ch := range ref {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid column reference %q", ref)
		}
		n = n*26 + int(ch-'A') + 1
	}
	return n, nil
}

// columnOf extracts the column letters from a cell reference such as "BC12".
func columnOf(cellRef string) string {
	i := 0
	for i < len(cellRef) && cellRef[i] >= 'A' && cellRef[i] <= 'Z' {
		i++
	}
	return cellRef[:i]
}

// sortColumns orders column references into canonical spreadsheet order.
// Source XML may declare cells sparsely or out of order; the codec key is
// the only ordering the reader trusts.
func sortColumns(cols []string) error {
	keys := make(map[string]int, len(cols))
	for _, c := range cols {
		k, err := ColumnKey(c)
		if err != nil {
			return err
		}
		keys[c] = k
	}
	sort.Slice(cols, func(i, j int) bool { return keys[cols[i]] < keys[cols[j]] })
	return nil
}
