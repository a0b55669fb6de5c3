package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"feedpoll/internal/logger"
	"feedpoll/internal/metrics"
	"feedpoll/internal/model"
	"feedpoll/internal/parser"
	"feedpoll/internal/state"
)

var ErrAlreadyRefreshing = errors.New("refresh already in progress")

// CycleResult summarises one polling cycle.
type CycleResult struct {
	Feeds    int
	Failed   int
	Admitted int
}

type RefreshService interface {
	// RefreshAll runs one polling cycle over every subscribed feed and returns
	// once all fetches have settled.
	RefreshAll(ctx context.Context) (CycleResult, error)
	IsRefreshing() bool
}

type refreshService struct {
	store       *state.Store
	fetcher     FeedFetcher
	parser      *parser.Parser
	ids         parser.IDGenerator
	concurrency int
	mu          sync.Mutex
	refreshing  bool
}

// NewRefreshService creates the polling cycle runner. concurrency <= 0 fetches
// every feed at once.
func NewRefreshService(store *state.Store, fetcher FeedFetcher, p *parser.Parser, ids parser.IDGenerator, concurrency int) RefreshService {
	return &refreshService{
		store:       store,
		fetcher:     fetcher,
		parser:      p,
		ids:         ids,
		concurrency: concurrency,
	}
}

func (s *refreshService) RefreshAll(ctx context.Context) (CycleResult, error) {
	s.mu.Lock()
	if s.refreshing {
		s.mu.Unlock()
		return CycleResult{}, ErrAlreadyRefreshing
	}
	s.refreshing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.refreshing = false
		s.mu.Unlock()
	}()

	cycleID := uuid.NewString()
	start := time.Now()

	// Taken once per cycle: two feeds returning the same new title in one
	// cycle both get it admitted.
	known := s.store.KnownTitles()
	feedURLs := s.store.LoadedFeeds()

	var g errgroup.Group
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}
	var failed, admitted atomic.Int64
	for _, feedURL := range feedURLs {
		g.Go(func() error {
			n, err := s.refreshFeed(ctx, feedURL, known)
			if err != nil {
				// Failures stay out of the user-facing error slot.
				failed.Add(1)
				metrics.FetchFailures.WithLabelValues(metrics.FlowRefresh).Inc()
				logger.Warn("feed refresh failed", "module", "service", "action", "refresh", "resource", "feed", "result", "failed",
					"cycle_id", cycleID, "feed_url", feedURL, "error", err)
				return nil
			}
			admitted.Add(int64(n))
			return nil
		})
	}
	_ = g.Wait()

	result := CycleResult{
		Feeds:    len(feedURLs),
		Failed:   int(failed.Load()),
		Admitted: int(admitted.Load()),
	}
	metrics.RefreshCycles.Inc()
	metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	logger.Debug("refresh cycle settled", "module", "service", "action", "refresh", "resource", "feed", "result", "ok",
		"cycle_id", cycleID, "feeds", result.Feeds, "failed", result.Failed, "admitted", result.Admitted,
		"duration_ms", time.Since(start).Milliseconds())

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

func (s *refreshService) IsRefreshing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshing
}

func (s *refreshService) refreshFeed(ctx context.Context, feedURL string, known map[string]struct{}) (int, error) {
	body, err := s.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return 0, err
	}
	_, posts, err := s.parser.Parse(body, nil)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	fresh := lo.Filter(posts, func(p model.Post, _ int) bool {
		_, seen := known[p.Title]
		return !seen
	})
	for i := range fresh {
		fresh[i].ID = s.ids.NextID()
		fresh[i].FeedURL = feedURL
		fresh[i].DiscoveredAt = now
	}

	if len(fresh) > 0 {
		s.store.PrependPosts(fresh)
		metrics.PostsAdmitted.WithLabelValues(metrics.FlowRefresh).Add(float64(len(fresh)))
		logger.Info("new posts", "module", "service", "action", "refresh", "resource", "post", "result", "ok",
			"feed_url", feedURL, "count", len(fresh))
	}
	return len(fresh), nil
}
