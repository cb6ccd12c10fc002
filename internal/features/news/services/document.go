package services

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html/charset"
)

const atomNamespace = "http://www.w3.org/2005/Atom"

// document is what a strict pass over a feed reveals about its structure
type document struct {
	root     xml.Name
	feedType gofeed.FeedType
	// channelItems counts item elements directly under the first channel
	channelItems int
	// entries holds the top-level Atom entries in document order
	entries []rawEntry
}

// rawEntry keeps Atom values exactly as written
type rawEntry struct {
	link    string
	updated string
}

// inspectDocument rejects anything that is not well-formed XML and classifies
// the rest: a root with an un-namespaced channel child is RSS, an Atom
// namespaced feed root is Atom, anything else is unknown.
func inspectDocument(data []byte) (*document, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel

	doc := &document{feedType: gofeed.FeedTypeUnknown}

	var (
		depth       int
		roots       int
		channelSeen bool
		inChannel   bool
		entry       = -1
		linkSeen    bool
		updatedSeen bool
		inUpdated   bool
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch depth {
			case 1:
				roots++
				if roots > 1 {
					return nil, errors.New("more than one root element")
				}
				doc.root = t.Name
			case 2:
				if t.Name.Space == "" && t.Name.Local == "channel" && !channelSeen {
					channelSeen, inChannel = true, true
				}
				if t.Name.Space == atomNamespace && t.Name.Local == "entry" {
					doc.entries = append(doc.entries, rawEntry{})
					entry = len(doc.entries) - 1
				}
			case 3:
				if inChannel && t.Name.Space == "" && t.Name.Local == "item" {
					doc.channelItems++
				}
				if entry >= 0 && t.Name.Space == atomNamespace {
					switch {
					case t.Name.Local == "link" && !linkSeen:
						linkSeen = true
						doc.entries[entry].link = attribute(t, "href")
					case t.Name.Local == "updated" && !updatedSeen:
						updatedSeen, inUpdated = true, true
					}
				}
			}

		case xml.EndElement:
			switch depth {
			case 2:
				inChannel = false
				entry = -1
				linkSeen, updatedSeen = false, false
			case 3:
				inUpdated = false
			}
			depth--

		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return nil, errors.New("text outside the root element")
			}
			if inUpdated && depth == 3 {
				doc.entries[entry].updated += string(t)
			}
		}
	}

	if roots == 0 {
		return nil, errors.New("no root element")
	}

	switch {
	case channelSeen:
		doc.feedType = gofeed.FeedTypeRSS
	case doc.root.Space == atomNamespace && doc.root.Local == "feed":
		doc.feedType = gofeed.FeedTypeAtom
	}

	return doc, nil
}

func attribute(el xml.StartElement, name string) string {
	for _, attr := range el.Attr {
		if attr.Name.Space == "" && attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}
