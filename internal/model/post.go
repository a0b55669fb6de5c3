package model

import "time"

// Post is one item of a feed. Title is the de-duplication key.
type Post struct {
	ID           string    `json:"id"`
	FeedURL      string    `json:"feedUrl"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Link         string    `json:"link"`
	DiscoveredAt time.Time `json:"discoveredAt"`
}

// ModalSelection is the post currently shown in the detail view.
type ModalSelection struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	PostID      string `json:"postId"`
}
