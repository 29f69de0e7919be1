package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/docsearch/docsearch-go/pkg/types"
)

func TestRemoveDuplicates(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := newTestServer(t, "", WithLogger(zap.New(core)))
	require.NoError(t, s.AddDocument(1, "a b c", types.StatusActual, nil))
	require.NoError(t, s.AddDocument(2, "b a c", types.StatusActual, nil))
	require.NoError(t, s.AddDocument(3, "a b c d", types.StatusActual, nil))

	removed := RemoveDuplicates(s)

	assert.Equal(t, []int{2}, removed)
	assert.Equal(t, []int{1, 3}, s.IDs())
	checkConsistency(t, s)

	// One notice per removed id.
	entries := logs.FilterMessage("found duplicate document").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["id"])
}

func TestRemoveDuplicates_FrequenciesIgnored(t *testing.T) {
	s := newTestServer(t, "")
	require.NoError(t, s.AddDocument(1, "a a b", types.StatusActual, nil))
	require.NoError(t, s.AddDocument(2, "a b b b", types.StatusActual, nil))

	removed := RemoveDuplicates(s)
	assert.Equal(t, []int{2}, removed)
	assert.Equal(t, []int{1}, s.IDs())
}

func TestRemoveDuplicates_KeepsLowestID(t *testing.T) {
	s := newTestServer(t, "")
	require.NoError(t, s.AddDocument(9, "cat dog", types.StatusActual, nil))
	require.NoError(t, s.AddDocument(4, "dog cat", types.StatusActual, nil))
	require.NoError(t, s.AddDocument(7, "cat dog", types.StatusActual, nil))
	require.NoError(t, s.AddDocument(5, "village", types.StatusActual, nil))

	removed := RemoveDuplicates(s)
	assert.Equal(t, []int{7, 9}, removed)
	assert.Equal(t, []int{4, 5}, s.IDs())
	checkConsistency(t, s)
}

func TestRemoveDuplicates_StopWordsExcludedFromSets(t *testing.T) {
	s := newTestServer(t, "the")
	require.NoError(t, s.AddDocument(1, "the cat", types.StatusActual, nil))
	require.NoError(t, s.AddDocument(2, "cat", types.StatusActual, nil))

	removed := RemoveDuplicates(s)
	assert.Equal(t, []int{2}, removed)
}

func TestRemoveDuplicates_NoDuplicates(t *testing.T) {
	s := newTestServer(t, "")
	require.NoError(t, s.AddDocument(1, "cat", types.StatusActual, nil))
	require.NoError(t, s.AddDocument(2, "dog", types.StatusActual, nil))

	assert.Empty(t, RemoveDuplicates(s))
	assert.Equal(t, []int{1, 2}, s.IDs())
}
