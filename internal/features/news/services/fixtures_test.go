package services

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"newswire/internal/core"
)

func testLogger() *core.Logger {
	return core.NewLoggerWithWriter(&bytes.Buffer{}, slog.LevelDebug)
}

type rssEntry struct {
	title, link, pubDate string
}

type atomEntry struct {
	title, link, updated string
}

func rssDocument(entries ...rssEntry) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Markets</title><link>https://markets.example</link>`)
	for _, e := range entries {
		b.WriteString("<item>")
		if e.title != "" {
			fmt.Fprintf(&b, "<title>%s</title>", e.title)
		}
		if e.link != "" {
			fmt.Fprintf(&b, "<link>%s</link>", e.link)
		}
		if e.pubDate != "" {
			fmt.Fprintf(&b, "<pubDate>%s</pubDate>", e.pubDate)
		}
		b.WriteString("</item>")
	}
	b.WriteString("</channel></rss>")
	return []byte(b.String())
}

func atomDocument(entries ...atomEntry) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom"><title>Classroom</title><id>urn:example:classroom</id>`)
	for _, e := range entries {
		b.WriteString("<entry>")
		if e.title != "" {
			fmt.Fprintf(&b, "<title>%s</title>", e.title)
		}
		if e.link != "" {
			fmt.Fprintf(&b, `<link href="%s"/>`, e.link)
		}
		if e.updated != "" {
			fmt.Fprintf(&b, "<updated>%s</updated>", e.updated)
		}
		b.WriteString("</entry>")
	}
	b.WriteString("</feed>")
	return []byte(b.String())
}
