// internal/models/itemref_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRefString(t *testing.T) {
	assert.Equal(t, "42", ItemRef{Kind: ItemKindRegular, ID: 42}.String())
	assert.Equal(t, "library-42", ItemRef{Kind: ItemKindLibrary, ID: 42}.String())
	assert.Equal(t, "1", ItemRef{Kind: ItemKindRegular, ID: 1}.String())
	assert.Equal(t, "library-1", ItemRef{Kind: ItemKindLibrary, ID: 1}.String())
}

func TestParseItemRef(t *testing.T) {
	tests := []struct {
		input string
		want  ItemRef
	}{
		{"7", ItemRef{Kind: ItemKindRegular, ID: 7}},
		{"123456", ItemRef{Kind: ItemKindRegular, ID: 123456}},
		{"library-7", ItemRef{Kind: ItemKindLibrary, ID: 7}},
		{"library-123456", ItemRef{Kind: ItemKindLibrary, ID: 123456}},
	}

	for _, tt := range tests {
		got, err := ParseItemRef(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParseItemRefRejectsMalformed(t *testing.T) {
	inputs := []string{
		"",
		"0",
		"library-0",
		"library-",
		"abc",
		"library-abc",
		"-3",
		"3.5",
		"Library-3",
		"library-3x",
		"librarian-3",
	}

	for _, input := range inputs {
		_, err := ParseItemRef(input)
		assert.Error(t, err, "input %q should not parse", input)
	}
}

// Encoding then decoding must return the original reference, for every valid
// reference of either kind.
func TestItemRefRoundTrip(t *testing.T) {
	for _, kind := range []ItemKind{ItemKindRegular, ItemKindLibrary} {
		for _, id := range []uint{1, 2, 99, 1000, 4294967295} {
			ref := ItemRef{Kind: kind, ID: id}
			parsed, err := ParseItemRef(ref.String())
			require.NoError(t, err)
			assert.Equal(t, ref, parsed)
		}
	}
}

func TestItemKindValid(t *testing.T) {
	assert.True(t, ItemKindRegular.Valid())
	assert.True(t, ItemKindLibrary.Valid())
	assert.False(t, ItemKind("").Valid())
	assert.False(t, ItemKind("Regular").Valid())
	assert.False(t, ItemKind("book").Valid())
}
