package intern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_InternReturnsCanonical(t *testing.T) {
	tab := New()

	a := tab.Intern("village")
	b := tab.Intern("village")

	assert.Equal(t, a, b)
	assert.Equal(t, 1, tab.Len())
	assert.True(t, tab.Contains("village"))
}

func TestTable_InternDistinctWords(t *testing.T) {
	tab := New()

	tab.Intern("cat")
	tab.Intern("dog")

	assert.Equal(t, 2, tab.Len())
}

func TestTable_Release(t *testing.T) {
	tab := New()
	tab.Intern("cat")

	tab.Release("cat")
	assert.False(t, tab.Contains("cat"))
	assert.Equal(t, 0, tab.Len())

	// Releasing an absent word is a no-op.
	tab.Release("cat")
	assert.Equal(t, 0, tab.Len())
}
