package search

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docsearch/docsearch-go/pkg/types"
)

// RequestQueue wraps a server's find operations and keeps a sliding window
// of the most recent requests, counting the ones that returned nothing. Time
// is logical: each request advances the clock by one tick, and entries older
// than the configured window width are evicted. Not safe for concurrent use;
// ticks are assigned from a single caller.
type RequestQueue struct {
	srv *Server
	log *zap.Logger

	window   int
	requests []queryResult
	noResult int
	current  int
}

type queryResult struct {
	id    uuid.UUID
	query string
	count int
	time  int
}

// QueueOption configures a RequestQueue.
type QueueOption func(*RequestQueue)

// WithWindow overrides the sliding window width, in ticks.
func WithWindow(width int) QueueOption {
	return func(q *RequestQueue) { q.window = width }
}

// WithQueueLogger attaches a logger for per-request debug output.
func WithQueueLogger(log *zap.Logger) QueueOption {
	return func(q *RequestQueue) { q.log = log }
}

// NewRequestQueue creates a queue over the server, with the window width
// taken from the server's configuration.
func NewRequestQueue(s *Server, opts ...QueueOption) *RequestQueue {
	q := &RequestQueue{
		srv:    s,
		log:    s.log,
		window: s.cfg.Queue.WindowWidth,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// AddFindRequest runs a default find (status actual) and records the result.
func (q *RequestQueue) AddFindRequest(raw string) ([]types.Document, error) {
	return q.AddFindRequestFunc(raw, nil)
}

// AddFindRequestStatus runs a status-filtered find and records the result.
func (q *RequestQueue) AddFindRequestStatus(raw string, status types.DocumentStatus) ([]types.Document, error) {
	return q.AddFindRequestFunc(raw, func(_ int, docStatus types.DocumentStatus, _ int) bool {
		return docStatus == status
	})
}

// AddFindRequestFunc runs a predicate-filtered find and records the result.
// Failed requests are not recorded and do not advance the clock.
func (q *RequestQueue) AddFindRequestFunc(raw string, pred DocumentPredicate) ([]types.Document, error) {
	docs, err := q.srv.FindTopDocumentsExec(Sequential, raw, pred)
	if err != nil {
		return nil, err
	}
	q.addRequest(raw, len(docs))
	return docs, nil
}

// NoResultRequests returns how many requests in the window found nothing.
func (q *RequestQueue) NoResultRequests() int {
	return q.noResult
}

func (q *RequestQueue) addRequest(raw string, count int) {
	q.current++

	for len(q.requests) > 0 && q.window <= q.current-q.requests[0].time {
		if q.requests[0].count == 0 {
			q.noResult--
		}
		q.requests = q.requests[1:]
	}

	if count == 0 {
		q.noResult++
	}

	entry := queryResult{id: uuid.New(), query: raw, count: count, time: q.current}
	q.requests = append(q.requests, entry)

	q.log.Debug("find request",
		zap.String("request_id", entry.id.String()),
		zap.String("query", raw),
		zap.Int("results", count),
		zap.Int("no_result_in_window", q.noResult),
	)
}
