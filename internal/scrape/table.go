package scrape

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"betfast-props-scraper/internal/browser"
)

// ErrTableNotFound means the props table never appeared in the target view.
var ErrTableNotFound = errors.New("props table never appeared")

// TableSpec locates the props table and names its parts. RowQuery selects
// data rows both for settling polls and inside the parsed snapshot.
// Columns supply header labels for tables that render without th cells.
type TableSpec struct {
	Root     browser.Selector `yaml:"root"`
	RowQuery string           `yaml:"row_query"`
	Columns  []string         `yaml:"columns"`
}

// Table is one extracted snapshot of the props table. Zero rows is a valid
// table: the view can legitimately list no props.
type Table struct {
	Headers []string
	Rows    [][]string
	Skipped int
}

// parseTable reads a single HTML snapshot of the table subtree. Headers
// come from th cells when present, otherwise from the configured column
// labels. Rows whose cell count does not match the header width are
// counted in Skipped and dropped.
//
// The snapshot is parsed exactly once per run, so a page that keeps
// mutating after extraction cannot produce a torn result.
func parseTable(html string, spec TableSpec) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse table html: %w", err)
	}

	table := &Table{}

	doc.Find("th").Each(func(_ int, cell *goquery.Selection) {
		table.Headers = append(table.Headers, strings.TrimSpace(cell.Text()))
	})
	if len(table.Headers) == 0 {
		table.Headers = append([]string(nil), spec.Columns...)
	}

	doc.Find(spec.RowQuery).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() != len(table.Headers) {
			table.Skipped++
			return
		}
		fields := make([]string, 0, cells.Length())
		cells.Each(func(_ int, cell *goquery.Selection) {
			fields = append(fields, strings.TrimSpace(cell.Text()))
		})
		table.Rows = append(table.Rows, fields)
	})

	return table, nil
}
