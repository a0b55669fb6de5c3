package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"github.com/tidwall/gjson"

	"feedpoll/internal/model"
)

var ErrInvalidFeed = errors.New("invalid feed")

// IDGenerator assigns identifiers to parsed posts.
type IDGenerator interface {
	NextID() string
}

// Parser turns proxy responses into feed and post descriptors. It is safe for
// concurrent use.
type Parser struct {
	sanitizer *bluemonday.Policy
}

func New() *Parser {
	return &Parser{sanitizer: bluemonday.UGCPolicy()}
}

// Parse decodes body and returns the feed descriptor and its posts in
// document order. When ids is non-nil every post gets a fresh ID.
func (p *Parser) Parse(body []byte, ids IDGenerator) (model.Feed, []model.Post, error) {
	document, err := unwrapEnvelope(body)
	if err != nil {
		return model.Feed{}, nil, err
	}

	switch gofeed.DetectFeedType(strings.NewReader(document)) {
	case gofeed.FeedTypeRSS, gofeed.FeedTypeAtom:
	default:
		return model.Feed{}, nil, fmt.Errorf("%w: not an RSS or Atom document", ErrInvalidFeed)
	}

	// gofeed.Parser keeps per-call state, so one is created per document.
	parsed, err := gofeed.NewParser().ParseString(document)
	if err != nil {
		return model.Feed{}, nil, fmt.Errorf("%w: %v", ErrInvalidFeed, err)
	}

	feed := model.Feed{
		Title:       strings.TrimSpace(parsed.Title),
		Description: strings.TrimSpace(parsed.Description),
		Link:        strings.TrimSpace(parsed.Link),
	}

	posts := make([]model.Post, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		post := p.itemToPost(item)
		if ids != nil {
			post.ID = ids.NextID()
		}
		posts = append(posts, post)
	}
	return feed, posts, nil
}

func (p *Parser) itemToPost(item *gofeed.Item) model.Post {
	description := item.Description
	if strings.TrimSpace(description) == "" {
		description = item.Content
	}
	link := strings.TrimSpace(item.Link)
	if link == "" && len(item.Links) > 0 {
		link = strings.TrimSpace(item.Links[0])
	}
	return model.Post{
		Title:       item.Title,
		Description: strings.TrimSpace(p.sanitizer.Sanitize(description)),
		Link:        link,
	}
}

// unwrapEnvelope extracts the feed document from the allorigins JSON envelope
// ({"contents": "..."}). Non-JSON bodies are returned as is; any other JSON is
// a proxy error and is rejected.
func unwrapEnvelope(body []byte) (string, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty response", ErrInvalidFeed)
	}
	if !strings.HasPrefix(trimmed, "{") || !gjson.Valid(trimmed) {
		return trimmed, nil
	}

	contents := gjson.Get(trimmed, "contents")
	if !contents.Exists() {
		return "", fmt.Errorf("%w: proxy response has no contents", ErrInvalidFeed)
	}
	document := strings.TrimSpace(contents.String())
	if document == "" {
		code := gjson.Get(trimmed, "status.http_code").Int()
		return "", fmt.Errorf("%w: empty contents (upstream status %d)", ErrInvalidFeed, code)
	}
	return document, nil
}
