package service

//go:generate mockgen -destination=mock/mock_fetcher.go -package=mock feedpoll/internal/service FeedFetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"feedpoll/internal/locale"
	"feedpoll/internal/logger"
	"feedpoll/internal/metrics"
	"feedpoll/internal/model"
	"feedpoll/internal/network"
	"feedpoll/internal/parser"
	"feedpoll/internal/state"
)

// FeedFetcher downloads the proxy response for a feed URL.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]byte, error)
}

type FeedService interface {
	// Add runs the submission flow for feedURL. Every outcome is also written
	// into the state; a failure is returned as *SubmitError.
	Add(ctx context.Context, feedURL string) (model.Feed, error)
	List(ctx context.Context) []model.Feed
}

type feedService struct {
	store   *state.Store
	fetcher FeedFetcher
	parser  *parser.Parser
	ids     parser.IDGenerator
	timeout time.Duration
}

func NewFeedService(store *state.Store, fetcher FeedFetcher, p *parser.Parser, ids parser.IDGenerator, timeout time.Duration) FeedService {
	return &feedService{
		store:   store,
		fetcher: fetcher,
		parser:  p,
		ids:     ids,
		timeout: timeout,
	}
}

func (s *feedService) Add(ctx context.Context, feedURL string) (model.Feed, error) {
	trimmedURL := strings.TrimSpace(feedURL)
	if err := ValidateURL(trimmedURL, s.store.LoadedFeeds()); err != nil {
		return model.Feed{}, s.fail(trimmedURL, err)
	}

	s.store.SetStatus(model.StatusSending)

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	body, err := s.fetcher.Fetch(fetchCtx, trimmedURL)
	if err != nil {
		return model.Feed{}, s.fail(trimmedURL, classifyFetchError(err))
	}

	feed, posts, err := s.parser.Parse(body, s.ids)
	if err != nil {
		return model.Feed{}, s.fail(trimmedURL, &SubmitError{Key: locale.KeyNoRSS, Err: fmt.Errorf("%w: %w", ErrParse, err)})
	}

	feed.URL = trimmedURL
	now := time.Now().UTC()
	for i := range posts {
		posts[i].FeedURL = trimmedURL
		posts[i].DiscoveredAt = now
	}

	// The list may have changed while the fetch was in flight.
	if !s.store.AddFeed(trimmedURL, feed, posts) {
		return model.Feed{}, s.fail(trimmedURL, &SubmitError{Key: locale.KeyURLNotOneOf, Err: ErrConflict})
	}

	metrics.Submissions.WithLabelValues(locale.KeyLoaded).Inc()
	metrics.PostsAdmitted.WithLabelValues(metrics.FlowSubmit).Add(float64(len(posts)))
	metrics.SubscribedFeeds.Set(float64(len(s.store.LoadedFeeds())))
	logger.Info("feed subscribed", "module", "service", "action", "create", "resource", "feed", "result", "ok",
		"feed_url", trimmedURL, "title", feed.Title, "posts", len(posts), "duration_ms", time.Since(start).Milliseconds())
	return feed, nil
}

func (s *feedService) List(ctx context.Context) []model.Feed {
	return s.store.Feeds()
}

func (s *feedService) fail(feedURL string, err error) error {
	key := ErrorKey(err)
	s.store.Fail(key)
	metrics.Submissions.WithLabelValues(key).Inc()
	if errors.Is(err, ErrInvalid) || errors.Is(err, ErrConflict) {
		logger.Debug("feed rejected", "module", "service", "action", "create", "resource", "feed", "result", "failed",
			"feed_url", feedURL, "reason", key)
	} else {
		metrics.FetchFailures.WithLabelValues(metrics.FlowSubmit).Inc()
		logger.Warn("feed submission failed", "module", "service", "action", "create", "resource", "feed", "result", "failed",
			"feed_url", feedURL, "reason", key, "error", err)
	}
	return err
}

func classifyFetchError(err error) *SubmitError {
	var statusErr *network.StatusError
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &SubmitError{Key: locale.KeyTimeout, Err: fmt.Errorf("%w: %w", ErrTimeout, err)}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &SubmitError{Key: locale.KeyTimeout, Err: fmt.Errorf("%w: %w", ErrTimeout, err)}
	case errors.As(err, &statusErr):
		return &SubmitError{Key: locale.KeyURLInvalid, Err: fmt.Errorf("%w: %w", ErrFeedFetch, err)}
	default:
		return &SubmitError{Key: locale.KeyNetwork, Err: fmt.Errorf("%w: %w", ErrFeedFetch, err)}
	}
}
