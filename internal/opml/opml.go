// Package opml reads and writes OPML subscription lists.
package opml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

type Document struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    Head     `xml:"head"`
	Body    Body     `xml:"body"`
}

type Head struct {
	Title        string `xml:"title,omitempty"`
	DateCreated  string `xml:"dateCreated,omitempty"`
	DateModified string `xml:"dateModified,omitempty"`
}

type Body struct {
	Outlines []Outline `xml:"outline"`
}

type Outline struct {
	Text     string    `xml:"text,attr,omitempty"`
	Title    string    `xml:"title,attr,omitempty"`
	Type     string    `xml:"type,attr,omitempty"`
	XMLURL   string    `xml:"xmlUrl,attr,omitempty"`
	HTMLURL  string    `xml:"htmlUrl,attr,omitempty"`
	Outlines []Outline `xml:"outline,omitempty"`
}

// IsFeed reports whether the outline points at a feed rather than grouping others.
func (o Outline) IsFeed() bool {
	return strings.TrimSpace(o.XMLURL) != ""
}

func Parse(r io.Reader) (Document, error) {
	var doc Document
	decoder := xml.NewDecoder(r)
	decoder.Strict = false
	if err := decoder.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode opml: %w", err)
	}
	return doc, nil
}

func Encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	encoder := xml.NewEncoder(&buf)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode opml: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// FeedURLs flattens nested outlines into feed URLs in document order.
func FeedURLs(outlines []Outline) []string {
	var urls []string
	for _, outline := range outlines {
		if outline.IsFeed() {
			urls = append(urls, strings.TrimSpace(outline.XMLURL))
			continue
		}
		urls = append(urls, FeedURLs(outline.Outlines)...)
	}
	return urls
}
