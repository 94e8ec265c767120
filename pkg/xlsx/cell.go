package xlsx

import (
	"strconv"
	"strings"
)

// Value is one resolved cell value. Valid reports whether the cell carried
// any value at all, so callers can tell an absent cell from an empty string.
type Value struct {
	String string
	Valid  bool
}

// String wraps a raw string in a valid Value.
func String(s string) Value {
	return Value{String: s, Valid: true}
}

// cellXML is one <c> element of a worksheet row.
type cellXML struct {
	Ref    string    `xml:"r,attr"`
	Type   string    `xml:"t,attr"`
	Value  *string   `xml:"v"`
	Inline *textRuns `xml:"is"`
}

// resolve produces the textual value of a cell, consulting the shared-string
// pool for pool-typed cells. Resolution never fails: an out-of-range or
// malformed shared-string index degrades to the raw value verbatim, and
// numeric or boolean interpretation is left entirely to the caller.
func (c *cellXML) resolve(shared []string) Value {
	if c.Type == "inlineStr" {
		if c.Inline == nil {
			return Value{}
		}
		return String(c.Inline.text)
	}
	if c.Value == nil || *c.Value == "" {
		return Value{}
	}
	raw := *c.Value
	if c.Type == "s" && shared != nil {
		idx, err := strconv.Atoi(strings.TrimSpace(raw))
		if err == nil && idx >= 0 && idx < len(shared) {
			return String(shared[idx])
		}
		return String(raw)
	}
	return String(raw)
}
