package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/samber/lo"

	"feedpoll/internal/config"
	"feedpoll/internal/logger"
	"feedpoll/internal/opml"
	"feedpoll/internal/state"
)

type OPMLService interface {
	// Import submits every feed of the document in order, one at a time,
	// through the regular submission flow.
	Import(ctx context.Context, reader io.Reader) (ImportResult, error)
	Export(ctx context.Context) ([]byte, error)
}

type ImportResult struct {
	FeedsCreated int `json:"feedsCreated"`
	FeedsSkipped int `json:"feedsSkipped"`
	FeedsFailed  int `json:"feedsFailed"`
}

type opmlService struct {
	feedService FeedService
	store       *state.Store
}

func NewOPMLService(feedService FeedService, store *state.Store) OPMLService {
	return &opmlService{feedService: feedService, store: store}
}

func (s *opmlService) Import(ctx context.Context, reader io.Reader) (ImportResult, error) {
	doc, err := opml.Parse(reader)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	urls := lo.Uniq(opml.FeedURLs(doc.Body.Outlines))
	logger.Info("opml import parsed", "module", "service", "action", "import", "resource", "opml", "result", "ok", "count", len(urls))

	result := ImportResult{}
	for _, feedURL := range urls {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		// Known URLs are skipped here so they never reach the user error slot.
		if s.store.IsSubscribed(feedURL) {
			result.FeedsSkipped++
			continue
		}
		_, err := s.feedService.Add(ctx, feedURL)
		switch {
		case err == nil:
			result.FeedsCreated++
		case errors.Is(err, ErrConflict):
			result.FeedsSkipped++
		default:
			result.FeedsFailed++
		}
	}

	logger.Info("opml import completed", "module", "service", "action", "import", "resource", "opml", "result", "ok",
		"feeds_created", result.FeedsCreated, "feeds_skipped", result.FeedsSkipped, "feeds_failed", result.FeedsFailed)
	return result, nil
}

func (s *opmlService) Export(ctx context.Context) ([]byte, error) {
	feeds := s.store.Feeds()
	outlines := make([]opml.Outline, 0, len(feeds))
	// Subscription order, oldest first, so an import recreates the same list.
	for _, feed := range lo.Reverse(feeds) {
		title := lo.Ternary(feed.Title != "", feed.Title, feed.URL)
		outlines = append(outlines, opml.Outline{
			Text:    title,
			Title:   title,
			Type:    "rss",
			XMLURL:  feed.URL,
			HTMLURL: feed.Link,
		})
	}

	date := time.Now().UTC().Format(time.RFC1123Z)
	payload, err := opml.Encode(opml.Document{
		Version: "2.0",
		Head: opml.Head{
			Title:        config.AppName + " subscriptions",
			DateCreated:  date,
			DateModified: date,
		},
		Body: opml.Body{Outlines: outlines},
	})
	if err != nil {
		logger.Error("opml export encode failed", "module", "service", "action", "export", "resource", "opml", "result", "failed", "error", err)
		return nil, err
	}
	logger.Info("opml export completed", "module", "service", "action", "export", "resource", "opml", "result", "ok", "feeds", len(feeds))
	return payload, nil
}
