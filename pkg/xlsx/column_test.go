package xlsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnKeyOrder(t *testing.T) {
	// All one- and two-letter references must form a strictly increasing
	// sequence in spreadsheet order: A < B < ... < Z < AA < AB < ...
	var refs []string
	for a := 'A'; a <= 'Z'; a++ {
		refs = append(refs, string(a))
	}
	for a := 'A'; a <= 'Z'; a++ {
		for b := 'A'; b <= 'Z'; b++ {
			refs = append(refs, string(a)+string(b))
		}
	}

	prev := 0
	for _, ref := range refs {
		key, err := ColumnKey(ref)
		require.NoError(t, err, "ref %q", ref)
		assert.Greater(t, key, prev, "ref %q must sort after its predecessor", ref)
		prev = key
	}
}

func TestColumnKeyKnownValues(t *testing.T) {
	for ref, want := range map[string]int{
		"A": 1, "B": 2, "Z": 26, "AA": 27, "AZ": 52, "BA": 53, "ZZ": 702, "AAA": 703,
	} {
		got, err := ColumnKey(ref)
		require.NoError(t, err)
		assert.Equal(t, want, got, "ref %q", ref)
	}
}

func TestColumnKeyMalformed(t *testing.T) {
	for _, ref := range []string{"", "A1", "1A", "a", "A B", "Ä"} {
		_, err := ColumnKey(ref)
		assert.Error(t, err, "ref %q must fail fast", ref)
	}
}

func TestColumnOf(t *testing.T) {
	assert.Equal(t, "A", columnOf("A1"))
	assert.Equal(t, "BC", columnOf("BC12"))
	assert.Equal(t, "", columnOf("12"))
	assert.Equal(t, "", columnOf(""))
}
