package news

import "context"

// RawArticle is one entry of the upstream feed's results list, kept
// verbatim: relevance and zone assignment happen downstream.
type RawArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"link"`
	PublishedAt string `json:"pubDate"`
}

type Client interface {
	Fetch(ctx context.Context, size int) ([]RawArticle, error)
	Name() string
}
