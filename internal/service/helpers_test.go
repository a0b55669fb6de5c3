package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"feedpoll/internal/model"
)

// seqIDs hands out "1", "2", ... and is safe for concurrent use.
type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) NextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return strconv.Itoa(s.n)
}

type fetcherFunc func(ctx context.Context, feedURL string) ([]byte, error)

func (f fetcherFunc) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	return f(ctx, feedURL)
}

// proxyBody builds an allorigins style response wrapping an RSS document with
// one item per title.
func proxyBody(t *testing.T, feedTitle string, itemTitles ...string) []byte {
	t.Helper()
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel>`)
	fmt.Fprintf(&b, "<title>%s</title><link>https://example.com</link><description>%s description</description>", feedTitle, feedTitle)
	for i, title := range itemTitles {
		fmt.Fprintf(&b, "<item><title>%s</title><link>https://example.com/%d</link><description>About %s</description></item>", title, i, title)
	}
	b.WriteString(`</channel></rss>`)

	body, err := json.Marshal(map[string]any{"contents": b.String()})
	require.NoError(t, err)
	return body
}

func postTitles(posts []model.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}
