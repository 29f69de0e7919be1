// Package search implements an in-memory inverted-index search engine over
// short text documents with TF-IDF ranking, boolean plus/minus query
// operators and parallel execution variants.
package search

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/docsearch/docsearch-go/internal/intern"
	"github.com/docsearch/docsearch-go/internal/text"
	"github.com/docsearch/docsearch-go/pkg/types"
)

// Execution selects the strategy used by an operation's *Exec variant.
type Execution int

const (
	Sequential Execution = iota
	Parallel
)

// DocumentPredicate filters candidate documents during ranking.
type DocumentPredicate func(id int, status types.DocumentStatus, rating int) bool

type docData struct {
	rating int
	status types.DocumentStatus
}

// Server is the search engine facade. Read-only operations (finds, matches,
// frequency and count lookups, id iteration) are safe to call concurrently
// as long as no writer runs; AddDocument and RemoveDocument require
// exclusive access.
type Server struct {
	cfg types.Config
	log *zap.Logger

	stopWords map[string]struct{}
	words     *intern.Table

	// wordDocs and docWords are two views of the same (word, document, tf)
	// relation and are mutated together on every add and remove.
	wordDocs map[string]map[int]float64 // word -> document id -> term frequency
	docWords map[int]map[string]float64 // document id -> word -> term frequency

	docs map[int]docData
	ids  []int // live document ids, ascending
}

// Option configures a Server.
type Option func(*Server)

// WithConfig replaces the default configuration.
func WithConfig(cfg *types.Config) Option {
	return func(s *Server) { s.cfg = *cfg }
}

// WithLogger attaches a logger for duplicate notices and debug output.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) { s.log = log }
}

// New creates a Server whose stop words are the space-separated words of
// stopWords. It fails with ErrInvalidChar if a stop word contains a control
// character.
func New(stopWords string, opts ...Option) (*Server, error) {
	return NewFromWords(text.SplitIntoWords(stopWords), opts...)
}

// NewFromWords creates a Server from a collection of stop words. Empty
// entries are ignored.
func NewFromWords(stopWords []string, opts ...Option) (*Server, error) {
	const op = "search.NewFromWords"

	s := &Server{
		cfg:       *types.DefaultConfig(),
		log:       zap.NewNop(),
		stopWords: make(map[string]struct{}, len(stopWords)),
		words:     intern.New(),
		wordDocs:  make(map[string]map[int]float64),
		docWords:  make(map[int]map[string]float64),
		docs:      make(map[int]docData),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	for _, word := range stopWords {
		if word == "" {
			continue
		}
		if !text.IsValidWord(word) {
			return nil, types.Errorf(op, types.ErrInvalidChar, "stop word %q", word)
		}
		s.stopWords[word] = struct{}{}
	}
	return s, nil
}

// AddDocument ingests a document. The rating stored with the document is the
// truncated integer mean of ratings, 0 when ratings is empty. The server
// state is untouched when an error is returned.
func (s *Server) AddDocument(id int, document string, status types.DocumentStatus, ratings []int) error {
	const op = "search.AddDocument"

	if id < 0 {
		return types.Errorf(op, types.ErrNegativeID, "document id %d", id)
	}
	if _, ok := s.docs[id]; ok {
		return types.Errorf(op, types.ErrDuplicateID, "document id %d", id)
	}

	words := s.splitIntoWordsNoStop(document)
	for _, word := range words {
		if !text.IsValidWord(word) {
			return types.Errorf(op, types.ErrInvalidChar, "word %q", word)
		}
	}

	freqs := make(map[string]float64, len(words))
	if len(words) > 0 {
		invWordCount := 1.0 / float64(len(words))
		for _, word := range words {
			canon := s.words.Intern(word)
			postings := s.wordDocs[canon]
			if postings == nil {
				postings = make(map[int]float64)
				s.wordDocs[canon] = postings
			}
			postings[id] += invWordCount
			freqs[canon] += invWordCount
		}
	}

	s.docs[id] = docData{rating: computeAverageRating(ratings), status: status}
	s.docWords[id] = freqs
	s.insertID(id)
	return nil
}

// RemoveDocument removes a document sequentially. Removing an unknown id is
// a no-op.
func (s *Server) RemoveDocument(id int) {
	s.RemoveDocumentExec(Sequential, id)
}

// RemoveDocumentExec removes a document with the chosen execution strategy.
func (s *Server) RemoveDocumentExec(exec Execution, id int) {
	if _, ok := s.docs[id]; !ok {
		return
	}

	if exec == Parallel {
		s.removeFromPostingsPar(id)
	} else {
		for word := range s.docWords[id] {
			s.erasePosting(word, id)
		}
	}

	delete(s.docWords, id)
	delete(s.docs, id)
	s.removeID(id)
}

// removeFromPostingsPar deletes id from every posting list it appears in,
// fanning the words out across workers. Each worker touches only the inner
// maps for its own words; emptied words are collected per worker and removed
// from the outer map after the join.
func (s *Server) removeFromPostingsPar(id int) {
	words := make([]string, 0, len(s.docWords[id]))
	for word := range s.docWords[id] {
		words = append(words, word)
	}

	emptied := make([][]string, 0)
	var mu sync.Mutex
	parallelFor(s.cfg.Search.Workers, len(words), func(start, end int) {
		var local []string
		for _, word := range words[start:end] {
			postings := s.wordDocs[word]
			delete(postings, id)
			if len(postings) == 0 {
				local = append(local, word)
			}
		}
		if len(local) > 0 {
			mu.Lock()
			emptied = append(emptied, local)
			mu.Unlock()
		}
	})

	for _, batch := range emptied {
		for _, word := range batch {
			delete(s.wordDocs, word)
			s.words.Release(word)
		}
	}
}

// erasePosting removes id from word's posting list, dropping the word from
// the index and the intern table when its last posting is gone.
func (s *Server) erasePosting(word string, id int) {
	postings := s.wordDocs[word]
	delete(postings, id)
	if len(postings) == 0 {
		delete(s.wordDocs, word)
		s.words.Release(word)
	}
}

// DocumentCount returns the number of live documents.
func (s *Server) DocumentCount() int {
	return len(s.docs)
}

// WordFrequencies returns a copy of the word to term-frequency mapping of a
// document, empty when the id is unknown.
func (s *Server) WordFrequencies(id int) map[string]float64 {
	freqs := make(map[string]float64, len(s.docWords[id]))
	for word, tf := range s.docWords[id] {
		freqs[word] = tf
	}
	return freqs
}

// DocumentID returns the i-th live document id in ascending order. It fails
// with ErrOutOfRange unless 0 <= i < DocumentCount().
func (s *Server) DocumentID(i int) (int, error) {
	if i < 0 || i >= len(s.ids) {
		return 0, types.Errorf("search.DocumentID", types.ErrOutOfRange, "index %d with %d documents", i, len(s.ids))
	}
	return s.ids[i], nil
}

// IDs returns a snapshot of the live document ids in ascending order.
func (s *Server) IDs() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *Server) isStopWord(word string) bool {
	_, ok := s.stopWords[word]
	return ok
}

func (s *Server) splitIntoWordsNoStop(t string) []string {
	words := text.SplitIntoWords(t)
	kept := words[:0:len(words)]
	for _, word := range words {
		if !s.isStopWord(word) {
			kept = append(kept, word)
		}
	}
	return kept
}

func (s *Server) insertID(id int) {
	i := sort.SearchInts(s.ids, id)
	s.ids = append(s.ids, 0)
	copy(s.ids[i+1:], s.ids[i:])
	s.ids[i] = id
}

func (s *Server) removeID(id int) {
	i := sort.SearchInts(s.ids, id)
	if i < len(s.ids) && s.ids[i] == id {
		s.ids = append(s.ids[:i], s.ids[i+1:]...)
	}
}

func computeAverageRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return sum / len(ratings)
}

// maxWorkers returns how many chunks [0, n) is split into for the given
// worker budget.
func maxWorkers(workers, n int) int {
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// parallelFor splits [0, n) into at most workers contiguous chunks and runs
// fn on each chunk in its own goroutine, waiting for all of them.
func parallelFor(workers, n int, fn func(start, end int)) {
	parallelForIndexed(workers, n, func(_, start, end int) { fn(start, end) })
}

// parallelForIndexed is parallelFor with the chunk's worker index passed to
// fn, for callers that collect per-worker results without locking.
func parallelForIndexed(workers, n int, fn func(worker, start, end int)) {
	if n == 0 {
		return
	}
	workers = maxWorkers(workers, n)
	if workers == 1 {
		fn(0, 0, n)
		return
	}

	chunk := n / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * chunk
		end := start + chunk
		if i == workers-1 {
			end = n
		}
		wg.Add(1)
		go func(worker, start, end int) {
			defer wg.Done()
			fn(worker, start, end)
		}(i, start, end)
	}
	wg.Wait()
}
