package search

import (
	"sync"

	"github.com/docsearch/docsearch-go/pkg/types"
)

// ProcessQueries runs the queries concurrently against the server and
// returns the per-query ranked results aligned with the input. The server
// must not be mutated while a batch runs. A malformed query aborts the batch
// with its parse error.
func ProcessQueries(s *Server, queries []string) ([][]types.Document, error) {
	results := make([][]types.Document, len(queries))
	errs := make([]error, len(queries))

	var wg sync.WaitGroup
	for i, raw := range queries {
		wg.Add(1)
		go func(i int, raw string) {
			defer wg.Done()
			results[i], errs[i] = s.FindTopDocuments(raw)
		}(i, raw)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// ProcessQueriesJoined runs the queries concurrently and concatenates the
// results in input order.
func ProcessQueriesJoined(s *Server, queries []string) ([]types.Document, error) {
	perQuery, err := ProcessQueries(s, queries)
	if err != nil {
		return nil, err
	}

	var joined []types.Document
	for _, docs := range perQuery {
		joined = append(joined, docs...)
	}
	return joined, nil
}
