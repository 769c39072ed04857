package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lukemcguire/mdlinkcheck/result"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	successStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	cellStyle     = lipgloss.NewStyle()
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Server-side failures first; a doc author can fix those by editing a link.
var categoryOrder = []result.ErrorCategory{
	result.Category4xx,
	result.Category5xx,
	result.CategoryTimeout,
	result.CategoryDNSFailure,
	result.CategoryConnectionRefused,
	result.CategoryTLSFailure,
	result.CategoryRedirectLoop,
	result.CategoryUnknown,
}

// RenderSummary renders the outcome of a run: a success line, or one table
// of broken links per failure category with the documents citing each.
func RenderSummary(res *result.Result) string {
	if res == nil {
		return errorStyle.Render("No results available.")
	}

	elapsed := res.Stats.Duration.Round(time.Millisecond)
	failures := res.Failures()

	var b strings.Builder
	if len(failures) == 0 {
		b.WriteString(successStyle.Render("All external links responded successfully.") + "\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("Checked %d URLs in %s", res.Stats.TotalChecked, elapsed)) + "\n")
		return b.String()
	}

	grouped := groupByCategory(failures)
	for _, cat := range categoryOrder {
		if links := grouped[cat]; len(links) > 0 {
			b.WriteString(renderCategory(cat, links))
		}
	}

	b.WriteString(titleStyle.Render(fmt.Sprintf(
		"Broken links detected: %d of %d URLs (%s)",
		len(failures), res.Stats.TotalChecked, elapsed,
	)) + "\n")
	return b.String()
}

func groupByCategory(links []result.LinkResult) map[result.ErrorCategory][]result.LinkResult {
	grouped := make(map[result.ErrorCategory][]result.LinkResult)
	for _, link := range links {
		cat := link.ErrorCategory
		if cat == "" {
			cat = result.CategoryUnknown
		}
		grouped[cat] = append(grouped[cat], link)
	}
	return grouped
}

func renderCategory(cat result.ErrorCategory, links []result.LinkResult) string {
	rows := make([][]string, 0, len(links))
	for _, link := range links {
		rows = append(rows, []string{link.URL, link.Status, strings.Join(link.Sources, "\n")})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("URL", "Status", "Referenced In").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return statusStyle
			}
			return cellStyle
		}).
		Rows(rows...)

	heading := categoryStyle.Render(fmt.Sprintf("## %s (%d)", result.FormatCategory(cat), len(links)))
	return heading + "\n" + t.Render() + "\n\n"
}
