package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "FIRST", Key("first", false))
	assert.Equal(t, "FIRST", Key("First", false))
	assert.Equal(t, "First", Key("First", true))
	assert.Empty(t, Key("", false))
}

func TestFold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"OrderID", "orderid"},
		{"order_id", "orderid"},
		{"order-id", "orderid"},
		{"first name", "firstname"},
		{"", ""},
		{"order_item-ID", "orderitemid"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Fold(tt.input))
		})
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"hello", "hello", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"a", "ab", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"ABC", "abc", 3},
		{"straße", "strasse", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "symmetry")
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("first_name", "FirstName"), 1e-9)
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 0.6, Similarity("frist", "first"), 1e-9)
}

func TestSuggest(t *testing.T) {
	candidates := []string{"first", "last", "_line", "firstName"}

	assert.Equal(t, []string{"first"}, Suggest("frist", candidates, 1))
	assert.Equal(t, []string{"firstName", "first"}, Suggest("first_name", candidates, 3))
	assert.Empty(t, Suggest("zzzzzz", candidates, 3))
}
