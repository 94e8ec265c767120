package xlsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestResolveSharedString(t *testing.T) {
	pool := []string{"alpha", "beta"}

	c := &cellXML{Type: "s", Value: strptr("1")}
	assert.Equal(t, String("beta"), c.resolve(pool))
}

func TestResolveSharedStringOutOfRange(t *testing.T) {
	pool := []string{"alpha"}

	// Out-of-range index falls back to the raw value verbatim; resolution
	// never fails.
	c := &cellXML{Type: "s", Value: strptr("7")}
	assert.Equal(t, String("7"), c.resolve(pool))

	c = &cellXML{Type: "s", Value: strptr("-1")}
	assert.Equal(t, String("-1"), c.resolve(pool))

	c = &cellXML{Type: "s", Value: strptr("junk")}
	assert.Equal(t, String("junk"), c.resolve(pool))
}

func TestResolveSharedStringWithoutPool(t *testing.T) {
	// No pool at all: the raw index text is returned unchanged.
	c := &cellXML{Type: "s", Value: strptr("3")}
	assert.Equal(t, String("3"), c.resolve(nil))
}

func TestResolveInlineString(t *testing.T) {
	c := &cellXML{Type: "inlineStr", Inline: &textRuns{text: "hello world"}}
	assert.Equal(t, String("hello world"), c.resolve(nil))

	// inlineStr without an <is> element is an empty cell.
	c = &cellXML{Type: "inlineStr"}
	assert.Equal(t, Value{}, c.resolve(nil))
}

func TestResolveRawValue(t *testing.T) {
	c := &cellXML{Value: strptr("3.14")}
	assert.Equal(t, String("3.14"), c.resolve(nil))

	// Missing or empty value node means no value; coercion is not this
	// layer's concern.
	c = &cellXML{}
	assert.Equal(t, Value{}, c.resolve(nil))

	c = &cellXML{Value: strptr("")}
	assert.Equal(t, Value{}, c.resolve(nil))
}
