// Package result holds link check outcomes and renders them for humans and
// CI tooling.
package result

import (
	"sort"
	"time"
)

// LinkResult represents the outcome of probing a single URL.
type LinkResult struct {
	URL           string        `json:"url"`                  // The URL that was probed
	Status        string        `json:"status"`               // "<code> <reason>" or "Connection error: <detail>"
	OK            bool          `json:"ok"`                   // Whether the final response was 2xx/3xx
	StatusCode    int           `json:"status_code"`          // HTTP status code (0 if unreachable)
	ErrorCategory ErrorCategory `json:"error_type,omitempty"` // Category classification of a failure
	Sources       []string      `json:"sources"`              // Sorted documents referencing the URL
}

// RunStats contains aggregate statistics for a run.
type RunStats struct {
	TotalChecked int           // Number of unique URLs probed
	BrokenCount  int           // Number of URLs that failed
	Duration     time.Duration // Wall-clock time spent probing
}

// Result is the complete outcome of a link check run. Links are in
// completion order; use Sorted or Failures for display.
type Result struct {
	Links []LinkResult
	Stats RunStats
}

// Sorted returns a copy of the links ordered by URL.
func (r *Result) Sorted() []LinkResult {
	if r == nil {
		return nil
	}
	links := make([]LinkResult, len(r.Links))
	copy(links, r.Links)
	sort.Slice(links, func(i, j int) bool { return links[i].URL < links[j].URL })
	return links
}

// Failures returns the links that did not respond successfully, ordered by URL.
func (r *Result) Failures() []LinkResult {
	failures := []LinkResult{}
	for _, link := range r.Sorted() {
		if !link.OK {
			failures = append(failures, link)
		}
	}
	return failures
}

// HasFailures reports whether any probed link failed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	for _, link := range r.Links {
		if !link.OK {
			return true
		}
	}
	return false
}

// ExitCode derives the process exit status: 1 if any link failed, 0
// otherwise (including runs that found no documents or no links).
func ExitCode(r *Result) int {
	if r.HasFailures() {
		return 1
	}
	return 0
}
