package models

import (
	"time"
)

// Item is one headline taken from an RSS item or Atom entry
type Item struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	// Published is the date text exactly as the feed gave it
	Published string `json:"published"`
	// PublishedAt is nil when Published is empty or unparseable
	PublishedAt *time.Time `json:"published_ts"`
	// Source is the feed URL that was requested, not one found in the document
	Source string `json:"source"`
}

// NewsResult is the /api/news response body
type NewsResult struct {
	Items []Item `json:"items"`
	Count int    `json:"count"`
}

// NewNewsResult builds a result whose count always matches its items
func NewNewsResult(items []Item) *NewsResult {
	if items == nil {
		items = []Item{}
	}
	return &NewsResult{
		Items: items,
		Count: len(items),
	}
}
