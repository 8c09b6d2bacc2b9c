// Package corpus loads the local and indexed document feeds and pairs
// them by sourcefile identifier.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/lexdrift/lexdrift/internal/model"
	"github.com/lexdrift/lexdrift/internal/normalize"
)

// FeedDocument is the wire shape both external feeds produce: the
// scraper export and the search-index export share it.
type FeedDocument struct {
	SourceFile string    `json:"sourcefile"`
	SourcePage string    `json:"sourcepage,omitempty"`
	Content    string    `json:"content"`
	Updated    time.Time `json:"updated,omitempty"`
	OriginURL  string    `json:"origin_url,omitempty"`
}

// Loader reads feed files and builds document pairs.
type Loader struct{}

// NewLoader creates a new corpus loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFeed reads one feed file (a JSON array of FeedDocument) and
// normalizes each document body into lines. Failure here is a run-level
// error: a verification run without both feeds is meaningless.
func (l *Loader) LoadFeed(path string) ([]*model.LegalDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	var feed []FeedDocument
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", path, err)
	}

	docs := make([]*model.LegalDocument, 0, len(feed))
	for _, fd := range feed {
		if fd.SourceFile == "" {
			continue
		}
		docs = append(docs, &model.LegalDocument{
			SourceFile: fd.SourceFile,
			SourcePage: fd.SourcePage,
			Body:       normalize.Lines(fd.Content),
			Updated:    fd.Updated,
			OriginURL:  fd.OriginURL,
		})
	}
	return docs, nil
}

// Pair joins local and indexed documents by sourcefile. A document
// present on only one side keeps a nil counterpart, which the
// classifier reports as a coverage gap; one-sided entries are never
// dropped. When the same sourcefile appears twice in a feed the later
// entry wins.
func (l *Loader) Pair(local, indexed []*model.LegalDocument) []*model.DocumentPair {
	indexedBy := make(map[string]*model.LegalDocument, len(indexed))
	for _, doc := range indexed {
		indexedBy[doc.SourceFile] = doc
	}
	localBy := make(map[string]*model.LegalDocument, len(local))
	for _, doc := range local {
		localBy[doc.SourceFile] = doc
	}

	pairs := make([]*model.DocumentPair, 0, len(localBy))
	for name, doc := range localBy {
		pairs = append(pairs, &model.DocumentPair{
			SourceFile: name,
			Local:      doc,
			Indexed:    indexedBy[name],
		})
	}
	for name, doc := range indexedBy {
		if _, ok := localBy[name]; ok {
			continue
		}
		pairs = append(pairs, &model.DocumentPair{
			SourceFile: name,
			Indexed:    doc,
		})
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].SourceFile < pairs[j].SourceFile
	})
	return pairs
}

// LoadPairs is the convenience path the CLI uses: load both feeds and
// pair them.
func (l *Loader) LoadPairs(localPath, indexedPath string) ([]*model.DocumentPair, error) {
	local, err := l.LoadFeed(localPath)
	if err != nil {
		return nil, fmt.Errorf("local feed: %w", err)
	}
	indexed, err := l.LoadFeed(indexedPath)
	if err != nil {
		return nil, fmt.Errorf("indexed feed: %w", err)
	}
	return l.Pair(local, indexed), nil
}
