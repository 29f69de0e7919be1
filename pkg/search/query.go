package search

import (
	"sort"
	"strings"

	"github.com/docsearch/docsearch-go/internal/text"
	"github.com/docsearch/docsearch-go/pkg/types"
)

// query is a parsed raw query: words that contribute to relevance and words
// that exclude a document outright.
type query struct {
	plus  []string
	minus []string
}

// parseQuery splits a raw query into plus and minus words, dropping stop
// words. With dedup the word lists come back sorted and unique; the parallel
// matcher asks for the raw lists and deduplicates after its membership
// filter instead.
func (s *Server) parseQuery(raw string, dedup bool) (query, error) {
	const op = "search.parseQuery"

	var q query
	for _, word := range text.SplitIntoWords(raw) {
		if !text.IsValidWord(word) {
			return query{}, types.Errorf(op, types.ErrInvalidChar, "query word %q", word)
		}

		data := word
		minus := false
		if data[0] == '-' {
			minus = true
			data = data[1:]
		}
		if strings.HasPrefix(data, "-") {
			return query{}, types.Errorf(op, types.ErrDoubleMinus, "query word %q", word)
		}
		if data == "" {
			return query{}, types.Errorf(op, types.ErrEmptyMinus, "query word %q", word)
		}

		if s.isStopWord(data) {
			continue
		}
		if minus {
			q.minus = append(q.minus, data)
		} else {
			q.plus = append(q.plus, data)
		}
	}

	if dedup {
		q.plus = sortUnique(q.plus)
		q.minus = sortUnique(q.minus)
	}
	return q, nil
}

// sortUnique sorts words and removes adjacent duplicates in place.
func sortUnique(words []string) []string {
	sort.Strings(words)
	out := words[:0]
	for _, word := range words {
		if len(out) == 0 || word != out[len(out)-1] {
			out = append(out, word)
		}
	}
	return out
}
