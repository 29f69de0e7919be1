package search

import (
	"sync/atomic"

	"github.com/docsearch/docsearch-go/pkg/types"
)

// MatchDocument returns the plus words of the query that occur in the
// document, sequentially. See MatchDocumentExec.
func (s *Server) MatchDocument(raw string, id int) ([]string, types.DocumentStatus, error) {
	return s.MatchDocumentExec(Sequential, raw, id)
}

// MatchDocumentExec returns the query's plus words occurring in document id
// in ascending order, or no words at all if any minus word occurs in it,
// together with the document's status. It fails with ErrUnknownDocument when
// the id is not present.
func (s *Server) MatchDocumentExec(exec Execution, raw string, id int) ([]string, types.DocumentStatus, error) {
	const op = "search.MatchDocument"

	doc, ok := s.docs[id]
	if !ok {
		return nil, 0, types.Errorf(op, types.ErrUnknownDocument, "document id %d", id)
	}

	if exec == Parallel {
		words, err := s.matchDocumentPar(raw, id)
		if err != nil {
			return nil, 0, err
		}
		return words, doc.status, nil
	}

	q, err := s.parseQuery(raw, true)
	if err != nil {
		return nil, 0, err
	}

	matched := []string{}
	for _, word := range q.minus {
		if _, ok := s.wordDocs[word][id]; ok {
			return matched, doc.status, nil
		}
	}
	for _, word := range q.plus {
		if _, ok := s.wordDocs[word][id]; ok {
			matched = append(matched, word)
		}
	}
	return matched, doc.status, nil
}

// matchDocumentPar tests membership against the document's own frequency map
// instead of the posting lists, so each worker probes a single shared
// read-only map. The query is parsed without deduplication; matched words
// are deduplicated after the filter.
func (s *Server) matchDocumentPar(raw string, id int) ([]string, error) {
	q, err := s.parseQuery(raw, false)
	if err != nil {
		return nil, err
	}

	wordFreqs := s.docWords[id]

	var excluded atomic.Bool
	parallelFor(s.cfg.Search.Workers, len(q.minus), func(start, end int) {
		for _, word := range q.minus[start:end] {
			if _, ok := wordFreqs[word]; ok {
				excluded.Store(true)
				return
			}
		}
	})
	if excluded.Load() {
		return []string{}, nil
	}

	chunks := make([][]string, maxWorkers(s.cfg.Search.Workers, len(q.plus)))
	parallelForIndexed(s.cfg.Search.Workers, len(q.plus), func(worker, start, end int) {
		var local []string
		for _, word := range q.plus[start:end] {
			if _, ok := wordFreqs[word]; ok {
				local = append(local, word)
			}
		}
		chunks[worker] = local
	})

	matched := []string{}
	for _, chunk := range chunks {
		matched = append(matched, chunk...)
	}
	return sortUnique(matched), nil
}
