package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
	"github.com/mmcdole/gofeed/rss"

	"newswire/internal/core"
	"newswire/internal/features/news/models"
)

// feedFormat extracts items from one syndication dialect
type feedFormat interface {
	name() string
	extract(data []byte, doc *document, source string, limit int) ([]models.Item, error)
}

// ParserService turns raw feed bytes into headline items
type ParserService struct {
	logger  *core.Logger
	formats map[gofeed.FeedType]feedFormat
}

// NewParserService creates a new parser service
func NewParserService(logger *core.Logger) *ParserService {
	return &ParserService{
		logger: logger,
		formats: map[gofeed.FeedType]feedFormat{
			gofeed.FeedTypeRSS:  rssFormat{},
			gofeed.FeedTypeAtom: atomFormat{},
		},
	}
}

// Parse returns at most limit items in document order. Documents that are not
// well-formed XML, unknown formats and limit <= 0 all yield an empty slice.
func (p *ParserService) Parse(data []byte, source string, limit int) []models.Item {
	if limit <= 0 || len(bytes.TrimSpace(data)) == 0 {
		return []models.Item{}
	}

	doc, err := inspectDocument(data)
	if err != nil {
		p.logger.Warn("Malformed feed document", "url", source, "error", err)
		return []models.Item{}
	}

	format, ok := p.formats[doc.feedType]
	if !ok {
		p.logger.Debug("Unrecognised feed format", "url", source, "root", doc.root.Local)
		return []models.Item{}
	}

	items, err := format.extract(data, doc, source, limit)
	if err != nil {
		p.logger.Warn("Failed to parse feed", "url", source, "format", format.name(), "error", err)
		return []models.Item{}
	}

	return items
}

type rssFormat struct{}

func (rssFormat) name() string { return "rss" }

func (rssFormat) extract(data []byte, doc *document, source string, limit int) ([]models.Item, error) {
	parser := &rss.Parser{}
	feed, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode rss: %w", err)
	}

	// gofeed appends items found outside the channel after the channel's own
	entries := feed.Items[:min(len(feed.Items), doc.channelItems, limit)]

	items := make([]models.Item, 0, len(entries))
	for _, entry := range entries {
		published := strings.TrimSpace(entry.PubDate)
		items = append(items, models.Item{
			Title:       strings.TrimSpace(entry.Title),
			Link:        strings.TrimSpace(entry.Link),
			Published:   published,
			PublishedAt: normalizeTimestamp(published, entry.PubDateParsed),
			Source:      source,
		})
	}

	return items, nil
}

type atomFormat struct{}

func (atomFormat) name() string { return "atom" }

func (atomFormat) extract(data []byte, doc *document, source string, limit int) ([]models.Item, error) {
	parser := &atom.Parser{}
	feed, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode atom: %w", err)
	}

	if len(feed.Entries) != len(doc.entries) {
		return nil, fmt.Errorf("found %d atom entries, decoder returned %d", len(doc.entries), len(feed.Entries))
	}

	entries := feed.Entries[:min(len(feed.Entries), limit)]

	items := make([]models.Item, 0, len(entries))
	for i, entry := range entries {
		// Link and date come from the document as written, without xml:base resolution
		raw := doc.entries[i]
		items = append(items, models.Item{
			Title:       strings.TrimSpace(entry.Title),
			Link:        raw.link,
			Published:   raw.updated,
			PublishedAt: normalizeTimestamp(raw.updated, entry.UpdatedParsed),
			Source:      source,
		})
	}

	return items, nil
}

// Layouts tried when the feed parser could not normalise a date itself
var fallbackDateLayouts = []string{
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

// normalizeTimestamp never fails: an unparseable date just has no timestamp
func normalizeTimestamp(raw string, parsed *time.Time) *time.Time {
	if parsed != nil {
		t := *parsed
		return &t
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}

	return nil
}
