package search

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsearch/docsearch-go/pkg/types"
)

func newTestServer(t *testing.T, stopWords string, opts ...Option) *Server {
	t.Helper()
	s, err := New(stopWords, opts...)
	require.NoError(t, err)
	return s
}

// checkConsistency verifies the cross-index invariants: the two frequency
// views mirror each other, every indexed id is a live document, no posting
// list is empty, the intern table holds exactly the indexed words, and term
// frequencies of a document sum to one.
func checkConsistency(t *testing.T, s *Server) {
	t.Helper()

	for word, postings := range s.wordDocs {
		require.NotEmpty(t, postings, "posting list for %q is empty", word)
		require.NotEmpty(t, word)
		require.True(t, s.words.Contains(word), "word %q not interned", word)
		for id, tf := range postings {
			require.Contains(t, s.docs, id)
			require.InDelta(t, tf, s.docWords[id][word], 1e-12)
		}
	}
	for id, freqs := range s.docWords {
		require.Contains(t, s.docs, id)
		sum := 0.0
		for word, tf := range freqs {
			require.InDelta(t, tf, s.wordDocs[word][id], 1e-12)
			sum += tf
		}
		if len(freqs) > 0 {
			require.InDelta(t, 1.0, sum, 1e-9)
		}
	}

	require.Equal(t, len(s.docs), len(s.ids))
	require.True(t, sort.IntsAreSorted(s.ids))
	for _, id := range s.ids {
		require.Contains(t, s.docs, id)
	}

	require.Equal(t, len(s.wordDocs), s.words.Len())
}

func TestNew_InvalidStopWord(t *testing.T) {
	_, err := New("in the\x02bad")
	assert.True(t, errors.Is(err, types.ErrInvalidChar))

	_, err = NewFromWords([]string{"in", "c\x1ft"})
	assert.True(t, errors.Is(err, types.ErrInvalidChar))
}

func TestNew_EmptyStopWordsIgnored(t *testing.T) {
	s, err := NewFromWords([]string{"", "in"})
	require.NoError(t, err)
	assert.Len(t, s.stopWords, 1)
}

func TestAddDocument_Errors(t *testing.T) {
	s := newTestServer(t, "")
	require.NoError(t, s.AddDocument(1, "cat", types.StatusActual, nil))

	tests := []struct {
		name string
		id   int
		text string
		want error
	}{
		{"negative id", -1, "cat", types.ErrNegativeID},
		{"duplicate id", 1, "dog", types.ErrDuplicateID},
		{"invalid character", 2, "cat d\x19g", types.ErrInvalidChar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.AddDocument(tt.id, tt.text, types.StatusActual, nil)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	// A failed add leaves no trace.
	assert.Equal(t, 1, s.DocumentCount())
	checkConsistency(t, s)
	assert.False(t, s.words.Contains("dog"))
}

func TestAddDocument_Ratings(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    int
	}{
		{"truncated mean", []int{-1, 2, 2}, 1},
		{"empty", nil, 0},
		{"plain mean", []int{1, 2, 3}, 2},
		{"truncates toward zero", []int{-1, -2}, -1},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, "")
			require.NoError(t, s.AddDocument(i, "cat", types.StatusActual, tt.ratings))
			assert.Equal(t, tt.want, s.docs[i].rating)
		})
	}
}

func TestWordFrequencies(t *testing.T) {
	s := newTestServer(t, "in the")
	require.NoError(t, s.AddDocument(42, "cat in the city cat", types.StatusActual, nil))

	freqs := s.WordFrequencies(42)
	require.Len(t, freqs, 2)
	assert.InDelta(t, 2.0/3.0, freqs["cat"], 1e-12)
	assert.InDelta(t, 1.0/3.0, freqs["city"], 1e-12)

	assert.Empty(t, s.WordFrequencies(99))

	// The returned map is a copy.
	freqs["cat"] = 0
	assert.InDelta(t, 2.0/3.0, s.WordFrequencies(42)["cat"], 1e-12)
}

func TestDocumentIDs(t *testing.T) {
	s := newTestServer(t, "")
	for _, id := range []int{30, 10, 20} {
		require.NoError(t, s.AddDocument(id, "cat", types.StatusActual, nil))
	}

	assert.Equal(t, []int{10, 20, 30}, s.IDs())

	id, err := s.DocumentID(0)
	require.NoError(t, err)
	assert.Equal(t, 10, id)

	id, err = s.DocumentID(2)
	require.NoError(t, err)
	assert.Equal(t, 30, id)

	for _, i := range []int{-1, 3, 100} {
		_, err := s.DocumentID(i)
		assert.True(t, errors.Is(err, types.ErrOutOfRange), "index %d", i)
	}
}

func TestRemoveDocument_RestoresState(t *testing.T) {
	for _, exec := range []Execution{Sequential, Parallel} {
		s := newTestServer(t, "in")
		require.NoError(t, s.AddDocument(1, "cat in the city", types.StatusActual, []int{1}))

		require.NoError(t, s.AddDocument(2, "dog of the hidden village", types.StatusActual, []int{2}))
		s.RemoveDocumentExec(exec, 2)

		assert.Equal(t, 1, s.DocumentCount())
		assert.Equal(t, []int{1}, s.IDs())
		assert.Empty(t, s.WordFrequencies(2))
		assert.False(t, s.words.Contains("dog"))
		assert.False(t, s.words.Contains("village"))
		// "the" is still held by document 1.
		assert.True(t, s.words.Contains("the"))
		checkConsistency(t, s)
	}
}

func TestRemoveDocument_UnknownIsNoop(t *testing.T) {
	s := newTestServer(t, "")
	require.NoError(t, s.AddDocument(1, "cat", types.StatusActual, nil))

	s.RemoveDocument(99)
	s.RemoveDocumentExec(Parallel, 99)

	assert.Equal(t, 1, s.DocumentCount())
	checkConsistency(t, s)
}

func TestRemoveDocument_ParallelMatchesSequential(t *testing.T) {
	build := func(t *testing.T) *Server {
		s := newTestServer(t, "the")
		require.NoError(t, s.AddDocument(1, "cat in the city", types.StatusActual, []int{1}))
		require.NoError(t, s.AddDocument(2, "dog of the hidden village", types.StatusActual, []int{2}))
		require.NoError(t, s.AddDocument(3, "silent village cat", types.StatusActual, []int{3}))
		return s
	}

	seq := build(t)
	seq.RemoveDocumentExec(Sequential, 2)
	par := build(t)
	par.RemoveDocumentExec(Parallel, 2)

	assert.Equal(t, seq.IDs(), par.IDs())
	assert.Equal(t, seq.words.Len(), par.words.Len())
	require.Equal(t, len(seq.wordDocs), len(par.wordDocs))
	for word, postings := range seq.wordDocs {
		require.Contains(t, par.wordDocs, word)
		assert.Equal(t, len(postings), len(par.wordDocs[word]))
	}
	checkConsistency(t, seq)
	checkConsistency(t, par)
}

func TestAddDocument_OnlyStopWords(t *testing.T) {
	s := newTestServer(t, "in the")
	require.NoError(t, s.AddDocument(7, "in the in", types.StatusActual, []int{5}))

	assert.Equal(t, 1, s.DocumentCount())
	assert.Empty(t, s.WordFrequencies(7))
	checkConsistency(t, s)

	docs, err := s.FindTopDocuments("in")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestAddRemoveRoundTrip(t *testing.T) {
	s := newTestServer(t, "")
	require.NoError(t, s.AddDocument(5, "cat dog", types.StatusActual, []int{1, 2}))
	s.RemoveDocument(5)

	assert.Zero(t, s.DocumentCount())
	assert.Empty(t, s.IDs())
	assert.Zero(t, s.words.Len())
	assert.Empty(t, s.wordDocs)
	assert.Empty(t, s.docWords)
	checkConsistency(t, s)
}
