package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnpack2(t *testing.T) {
	a, b := Unpack2([]string{"x", "y", "z"})
	assert.Equal(t, "x", a)
	assert.Equal(t, "y", b)

	a, b = Unpack2([]string{"only"})
	assert.Equal(t, "only", a)
	assert.Empty(t, b)

	a, b = Unpack2([]string(nil))
	assert.Empty(t, a)
	assert.Empty(t, b)
}

func TestIsInRange(t *testing.T) {
	assert.True(t, IsInRange(0, 0, 3))
	assert.True(t, IsInRange(0, 3, 3))
	assert.False(t, IsInRange(0, 4, 3))
	assert.False(t, IsInRange(0, -1, 3))
}

func TestQuoteList(t *testing.T) {
	assert.Equal(t, `"a", "b"`, QuoteList([]string{"a", "b"}))
	assert.Empty(t, QuoteList(nil))
}
