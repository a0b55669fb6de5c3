package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/feeds"

	"feedpoll/internal/config"
	"feedpoll/internal/state"
)

// ExportService renders the aggregated post list as a syndication feed.
type ExportService interface {
	Atom(ctx context.Context) (string, error)
	RSS(ctx context.Context) (string, error)
}

type exportService struct {
	store   *state.Store
	selfURL string
}

// NewExportService creates the exporter. selfURL is used as the feed link.
func NewExportService(store *state.Store, selfURL string) ExportService {
	return &exportService{store: store, selfURL: selfURL}
}

func (s *exportService) Atom(ctx context.Context) (string, error) {
	out, err := s.build().ToAtom()
	if err != nil {
		return "", fmt.Errorf("render atom: %w", err)
	}
	return out, nil
}

func (s *exportService) RSS(ctx context.Context) (string, error) {
	out, err := s.build().ToRss()
	if err != nil {
		return "", fmt.Errorf("render rss: %w", err)
	}
	return out, nil
}

func (s *exportService) build() *feeds.Feed {
	posts := s.store.Posts()
	feed := &feeds.Feed{
		Title:       config.AppName,
		Link:        &feeds.Link{Href: s.selfURL},
		Description: fmt.Sprintf("Posts aggregated from %d feeds", len(s.store.LoadedFeeds())),
		Id:          s.selfURL,
	}

	for _, p := range posts {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          p.ID,
			Title:       p.Title,
			Link:        &feeds.Link{Href: p.Link},
			Source:      &feeds.Link{Href: p.FeedURL},
			Description: p.Description,
			Created:     p.DiscoveredAt,
		})
		if p.DiscoveredAt.After(feed.Created) {
			feed.Created = p.DiscoveredAt
		}
	}
	if feed.Created.IsZero() {
		feed.Created = time.Now().UTC()
	}
	return feed
}
