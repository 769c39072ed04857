// Package docs discovers Markdown documents and extracts the external links
// they reference into a ReferenceMap.
package docs

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// MarkdownExt is the extension of documents picked up by Find.
const MarkdownExt = ".md"

// Find returns every Markdown file below root, sorted by path.
// A missing root is not an error; it simply contains no documents.
func Find(root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || filepath.Ext(entry.Name()) != MarkdownExt {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// Identifier returns the document identifier for path: the path relative to
// base, with forward slashes. Paths outside base are kept as given.
func Identifier(base, path string) string {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return filepath.ToSlash(path)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}

	rel, err := filepath.Rel(absBase, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
