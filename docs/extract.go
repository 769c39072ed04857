package docs

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/lukemcguire/mdlinkcheck/urlutil"
)

// markdownLink matches inline links of the form [label](http(s)://...).
var markdownLink = regexp.MustCompile(`\[(?:[^\]]+)\]\((https?://[^)\s]+)\)`)

// Extractor builds a ReferenceMap from document contents.
type Extractor struct {
	Base string // Directory document identifiers are relative to
	HTML bool   // Also collect inline <a href> anchors
}

// Extract reads every path and returns the URLs they reference.
func (e Extractor) Extract(paths []string) (ReferenceMap, error) {
	refs := make(ReferenceMap)
	for _, path := range paths {
		id := Identifier(e.Base, path)
		err := ReadDocument(path, func(data []byte) {
			e.index(refs, id, data)
		})
		if err != nil {
			return nil, fmt.Errorf("read document %s: %w", id, err)
		}
	}
	return refs, nil
}

// ExtractContents indexes in-memory documents keyed by identifier.
func (e Extractor) ExtractContents(contents map[string]string) ReferenceMap {
	refs := make(ReferenceMap)
	for id, text := range contents {
		e.index(refs, id, []byte(text))
	}
	return refs
}

func (e Extractor) index(refs ReferenceMap, id string, data []byte) {
	links := ExtractLinks(data)
	if e.HTML {
		links = append(links, ExtractHTMLLinks(data)...)
	}
	for _, link := range links {
		refs.Add(link, id)
	}
	log.Debug().Str("document", id).Int("links", len(links)).Msg("Scanned document")
}

// ExtractLinks returns the http(s) targets of Markdown inline links in data,
// deduplicated in order of first appearance.
func ExtractLinks(data []byte) []string {
	seen := make(map[string]bool)
	var links []string

	for _, match := range markdownLink.FindAllSubmatch(data, -1) {
		link := urlutil.TrimOverCapture(string(match[1]))
		if !seen[link] {
			seen[link] = true
			links = append(links, link)
		}
	}
	return links
}

// ExtractHTMLLinks returns the absolute http(s) hrefs of anchor tags
// embedded in data. Relative hrefs point inside the docs tree and are
// skipped.
func ExtractHTMLLinks(data []byte) []string {
	tokenizer := html.NewTokenizer(bytes.NewReader(data))
	seen := make(map[string]bool)
	var links []string

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// End of document
			return links
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "a" {
				continue
			}
			for _, attr := range token.Attr {
				if attr.Key != "href" || !urlutil.IsAbsolute(attr.Val) {
					continue
				}
				if !seen[attr.Val] {
					seen[attr.Val] = true
					links = append(links, attr.Val)
				}
			}
		}
	}
}
