package result

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// PrintStart announces how many unique links are about to be probed.
func PrintStart(w io.Writer, count int, timeout time.Duration) {
	_, _ = fmt.Fprintf(w, "Checking %d unique links (timeout %gs)...\n", count, timeout.Seconds())
}

// PrintResults writes the run duration, then either the broken links sorted
// by URL or a success line.
func PrintResults(w io.Writer, res *Result) {
	writef := func(format string, a ...any) { _, _ = fmt.Fprintf(w, format, a...) }

	writef("Link check completed in %.2fs.\n", res.Stats.Duration.Seconds())

	failures := res.Failures()
	if len(failures) == 0 {
		writef("All external links responded successfully.\n")
		return
	}

	writef("\nBroken links detected:\n")
	for _, link := range failures {
		writef("  - %s -> %s (referenced in %s)\n", link.URL, link.Status, strings.Join(link.Sources, ", "))
	}
}
