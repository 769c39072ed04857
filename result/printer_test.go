package result

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestPrintStart(t *testing.T) {
	var buf bytes.Buffer
	PrintStart(&buf, 3, 10*time.Second)

	want := "Checking 3 unique links (timeout 10s)...\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintResults_AllOK(t *testing.T) {
	var buf bytes.Buffer
	r := &Result{
		Links: []LinkResult{{URL: "https://ok.example", Status: "200 OK", OK: true, Sources: []string{"a.md"}}},
		Stats: RunStats{TotalChecked: 1, Duration: 1500 * time.Millisecond},
	}

	PrintResults(&buf, r)

	want := "Link check completed in 1.50s.\nAll external links responded successfully.\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintResults_WithBrokenLinks(t *testing.T) {
	var buf bytes.Buffer
	r := &Result{
		Links: []LinkResult{
			{URL: "https://z.example/fail", Status: "Connection error: no such host", Sources: []string{"c.md"}},
			{URL: "https://ok.example", Status: "200 OK", OK: true, Sources: []string{"a.md"}},
			{URL: "https://a.example/dead", Status: "404 Not Found", StatusCode: 404, Sources: []string{"a.md", "b.md"}},
		},
		Stats: RunStats{TotalChecked: 3, BrokenCount: 2, Duration: 2 * time.Second},
	}

	PrintResults(&buf, r)

	want := strings.Join([]string{
		"Link check completed in 2.00s.",
		"",
		"Broken links detected:",
		"  - https://a.example/dead -> 404 Not Found (referenced in a.md, b.md)",
		"  - https://z.example/fail -> Connection error: no such host (referenced in c.md)",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
