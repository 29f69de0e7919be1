package search

import (
	"math"
	"sort"

	"github.com/docsearch/docsearch-go/internal/cmap"
	"github.com/docsearch/docsearch-go/pkg/types"
)

// FindTopDocuments ranks documents with status actual, sequentially.
func (s *Server) FindTopDocuments(raw string) ([]types.Document, error) {
	return s.FindTopDocumentsStatus(raw, types.StatusActual)
}

// FindTopDocumentsStatus ranks documents carrying the given status.
func (s *Server) FindTopDocumentsStatus(raw string, status types.DocumentStatus) ([]types.Document, error) {
	return s.FindTopDocumentsFunc(raw, func(_ int, docStatus types.DocumentStatus, _ int) bool {
		return docStatus == status
	})
}

// FindTopDocumentsFunc ranks documents passing the predicate, sequentially.
func (s *Server) FindTopDocumentsFunc(raw string, pred DocumentPredicate) ([]types.Document, error) {
	return s.FindTopDocumentsExec(Sequential, raw, pred)
}

// FindTopDocumentsExec ranks documents passing the predicate with the chosen
// execution strategy. A nil predicate keeps documents with status actual.
// Results are ordered by decreasing relevance; relevances closer than the
// configured epsilon are ordered by decreasing rating, then ascending id,
// and at most MaxResults documents are returned. Sequential and parallel
// runs produce identical sequences.
func (s *Server) FindTopDocumentsExec(exec Execution, raw string, pred DocumentPredicate) ([]types.Document, error) {
	if pred == nil {
		pred = func(_ int, status types.DocumentStatus, _ int) bool {
			return status == types.StatusActual
		}
	}

	q, err := s.parseQuery(raw, true)
	if err != nil {
		return nil, err
	}

	var matched []types.Document
	if exec == Parallel {
		matched = s.findAllDocumentsPar(q, pred)
	} else {
		matched = s.findAllDocumentsSeq(q, pred)
	}

	s.sortDocuments(matched)
	if len(matched) > s.cfg.Search.MaxResults {
		matched = matched[:s.cfg.Search.MaxResults]
	}
	return matched, nil
}

func (s *Server) findAllDocumentsSeq(q query, pred DocumentPredicate) []types.Document {
	relevance := make(map[int]float64)
	for _, word := range q.plus {
		postings, ok := s.wordDocs[word]
		if !ok {
			continue
		}
		idf := s.inverseDocumentFreq(word)
		for id, tf := range postings {
			doc := s.docs[id]
			if pred(id, doc.status, doc.rating) {
				relevance[id] += tf * idf
			}
		}
	}

	for _, word := range q.minus {
		for id := range s.wordDocs[word] {
			delete(relevance, id)
		}
	}

	return s.collectDocuments(relevance)
}

// findAllDocumentsPar accumulates relevance into a striped concurrent map so
// plus words rank in parallel without contending on one lock, then erases
// minus-word hits in parallel and flattens the shards into candidates.
func (s *Server) findAllDocumentsPar(q query, pred DocumentPredicate) []types.Document {
	relevance := cmap.New[float64](s.cfg.Search.ShardCount)

	parallelFor(s.cfg.Search.Workers, len(q.plus), func(start, end int) {
		for _, word := range q.plus[start:end] {
			postings, ok := s.wordDocs[word]
			if !ok {
				continue
			}
			idf := s.inverseDocumentFreq(word)
			for id, tf := range postings {
				doc := s.docs[id]
				if pred(id, doc.status, doc.rating) {
					contribution := tf * idf
					relevance.Update(id, func(v *float64) { *v += contribution })
				}
			}
		}
	})

	parallelFor(s.cfg.Search.Workers, len(q.minus), func(start, end int) {
		for _, word := range q.minus[start:end] {
			for id := range s.wordDocs[word] {
				relevance.Erase(id)
			}
		}
	})

	return s.collectDocuments(relevance.Flatten())
}

func (s *Server) collectDocuments(relevance map[int]float64) []types.Document {
	matched := make([]types.Document, 0, len(relevance))
	for id, rel := range relevance {
		matched = append(matched, types.Document{ID: id, Relevance: rel, Rating: s.docs[id].rating})
	}
	return matched
}

// inverseDocumentFreq computes ln(N / df) for a word present in the index.
func (s *Server) inverseDocumentFreq(word string) float64 {
	return math.Log(float64(len(s.docs)) / float64(len(s.wordDocs[word])))
}

func (s *Server) sortDocuments(docs []types.Document) {
	eps := s.cfg.Search.Epsilon
	sort.Slice(docs, func(i, j int) bool {
		a, b := docs[i], docs[j]
		if math.Abs(a.Relevance-b.Relevance) < eps {
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
			return a.ID < b.ID
		}
		return a.Relevance > b.Relevance
	})
}
