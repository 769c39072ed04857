package docs

import "sort"

// ReferenceMap maps a URL to the set of documents that reference it.
//
// It is filled once by an Extractor and must not be mutated afterwards;
// the dispatch engine reads it from many goroutines without locking.
type ReferenceMap map[string]map[string]struct{}

// Add records that doc references url.
func (m ReferenceMap) Add(url, doc string) {
	docs, ok := m[url]
	if !ok {
		docs = make(map[string]struct{})
		m[url] = docs
	}
	docs[doc] = struct{}{}
}

// Sources returns the documents referencing url in sorted order.
func (m ReferenceMap) Sources(url string) []string {
	docs := m[url]
	sources := make([]string, 0, len(docs))
	for doc := range docs {
		sources = append(sources, doc)
	}
	sort.Strings(sources)
	return sources
}

// URLs returns every referenced URL in sorted order.
func (m ReferenceMap) URLs() []string {
	urls := make([]string, 0, len(m))
	for url := range m {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}
