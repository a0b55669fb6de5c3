package model

// Feed describes one parsed feed. It is created once per successful
// subscription and never changed afterwards.
type Feed struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}
