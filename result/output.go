package result

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// csvHeader names the columns written by WriteCSV.
var csvHeader = []string{"url", "status", "status_code", "error_type", "sources"}

// WriteJSON writes links as an indented JSON array. An empty run encodes
// as [] so consumers never see null.
func WriteJSON(w io.Writer, links []LinkResult) error {
	if links == nil {
		links = []LinkResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(links); err != nil {
		return fmt.Errorf("write json output: %w", err)
	}
	return nil
}

// WriteCSV writes links as CSV. The header row is written even when links
// is empty; referencing documents share one column, separated by ";".
func WriteCSV(w io.Writer, links []LinkResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, link := range links {
		if err := cw.Write(link.csvRecord()); err != nil {
			return fmt.Errorf("write csv record for %s: %w", link.URL, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	return nil
}

func (l LinkResult) csvRecord() []string {
	code := ""
	if l.StatusCode != 0 {
		code = strconv.Itoa(l.StatusCode)
	}
	return []string{l.URL, l.Status, code, string(l.ErrorCategory), strings.Join(l.Sources, ";")}
}
