package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"shoe-storefront/internal/domain"

	"go.uber.org/zap"
)

const (
	// MinQueryLength is the shortest query that is sent to the catalog
	MinQueryLength = 2
	// DefaultSearchDelay is the quiet period before a query is dispatched
	DefaultSearchDelay = 300 * time.Millisecond
	// QuickSearchLimit caps the quick-search result list
	QuickSearchLimit = 5
)

// Searcher runs a substring search against the catalog
type Searcher interface {
	QuickSearch(ctx context.Context, query string, limit int) ([]*domain.Product, error)
}

// SearchResult is the state of a LiveSearch after its latest query
type SearchResult struct {
	Token    uint64
	Query    string
	Products []*domain.Product
	Loading  bool
	Err      error
}

// LiveSearch debounces keystrokes into catalog queries. Each call to Type issues a
// new token; a response is applied only if its token is still the latest, so a
// slow response for an older query can never overwrite a newer one.
type LiveSearch struct {
	searcher Searcher
	delay    time.Duration
	limit    int
	logger   *zap.Logger
	onResult func(SearchResult)

	mu     sync.Mutex
	latest uint64
	timer  *time.Timer
	result SearchResult
}

// NewLiveSearch creates a LiveSearch. onResult may be nil.
func NewLiveSearch(searcher Searcher, delay time.Duration, logger *zap.Logger, onResult func(SearchResult)) *LiveSearch {
	if delay <= 0 {
		delay = DefaultSearchDelay
	}
	return &LiveSearch{
		searcher: searcher,
		delay:    delay,
		limit:    QuickSearchLimit,
		logger:   logger,
		onResult: onResult,
	}
}

// WithLimit caps each result list at n instead of QuickSearchLimit
func (l *LiveSearch) WithLimit(n int) *LiveSearch {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > 0 {
		l.limit = n
	}
	return l
}

// Type records a new query and schedules its dispatch, cancelling any dispatch
// still waiting in its debounce window. It returns the query's token.
func (l *LiveSearch) Type(query string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.latest++
	token := l.latest

	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}

	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		l.result = SearchResult{Token: token, Query: query, Products: []*domain.Product{}}
		l.notify(l.result)
		return token
	}

	l.result.Loading = true
	l.timer = time.AfterFunc(l.delay, func() {
		l.dispatch(token, query)
	})
	return token
}

// Result returns the most recently applied result
func (l *LiveSearch) Result() SearchResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.result
}

// Stop cancels a pending dispatch and drops any in-flight response
func (l *LiveSearch) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.latest++
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.result.Loading = false
}

func (l *LiveSearch) dispatch(token uint64, query string) {
	products, err := l.searcher.QuickSearch(context.Background(), query, l.limit)

	l.mu.Lock()
	defer l.mu.Unlock()

	if token != l.latest {
		l.logger.Debug("Discarding superseded search response",
			zap.Uint64("token", token),
			zap.Uint64("latest", l.latest),
			zap.String("query", query),
		)
		return
	}

	if err != nil {
		l.logger.Error("Quick search failed", zap.String("query", query), zap.Error(err))
		l.result = SearchResult{Token: token, Query: query, Products: l.result.Products, Err: err}
	} else {
		l.result = SearchResult{Token: token, Query: query, Products: products}
	}
	l.timer = nil
	l.notify(l.result)
}

// notify must be called with l.mu held
func (l *LiveSearch) notify(r SearchResult) {
	if l.onResult != nil {
		l.onResult(r)
	}
}
