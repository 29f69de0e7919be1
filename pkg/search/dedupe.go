package search

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// RemoveDuplicates removes every document whose set of distinct words equals
// that of a document with a smaller id, keeping the smallest. Term
// frequencies are ignored. One notice is logged per removed id; the removed
// ids are returned in ascending order.
func RemoveDuplicates(s *Server) []int {
	seen := make(map[string]struct{}, s.DocumentCount())
	var duplicates []int

	for _, id := range s.IDs() {
		key := wordSetKey(s.docWords[id])
		if _, ok := seen[key]; ok {
			duplicates = append(duplicates, id)
		} else {
			seen[key] = struct{}{}
		}
	}

	for _, id := range duplicates {
		s.RemoveDocument(id)
		s.log.Info("found duplicate document", zap.Int("id", id))
	}
	return duplicates
}

// wordSetKey canonicalizes a document's word set. Words cannot contain
// spaces, so the sorted space-joined words identify the set.
func wordSetKey(freqs map[string]float64) string {
	words := make([]string, 0, len(freqs))
	for word := range freqs {
		words = append(words, word)
	}
	sort.Strings(words)
	return strings.Join(words, " ")
}
