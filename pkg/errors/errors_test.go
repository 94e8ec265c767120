package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaError(t *testing.T) {
	err := NewSchemaError("Schools_AMS_main", "postcode")
	assert.Equal(t, "missing column in Schools_AMS_main: postcode", err.Error())
	assert.True(t, IsMissingSchema(err))

	sheetErr := NewSchemaError("Metrics_long", "")
	assert.Equal(t, "sheet not found: Metrics_long", sheetErr.Error())
	assert.True(t, errors.Is(sheetErr, ErrMissingSchema))
}

func TestAPIError(t *testing.T) {
	err := NewAPIError(503, "Service Unavailable", "/rest/v1/schools", `{"message":"overloaded"}`)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), `{"message":"overloaded"}`)
	assert.True(t, IsStoreUnavailable(err))

	clientErr := NewAPIError(400, "Bad Request", "/rest/v1/schools", "")
	assert.False(t, IsStoreUnavailable(clientErr))
}

func TestParseErrorIsInvalidInput(t *testing.T) {
	err := NewParseError("csv", "matches.csv", "bad header", nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, WrapIO("read", "seed.xlsx", nil))
	assert.NoError(t, WrapParse("xml", "workbook.xml", nil))

	underlying := fmt.Errorf("boom")
	wrapped := WrapIO("open", "seed.xlsx", underlying)
	assert.ErrorIs(t, wrapped, underlying)
}
