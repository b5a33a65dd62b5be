package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Table is an HTML table located on a fetched page
type Table struct {
	ID  string
	URL string
	sel *goquery.Selection
}

// Row is the text content of one table row
type Row struct {
	Index    int      // position among the table's rows
	Cells    []string // text of each th/td child, verbatim
	Link     string   // href of the first link in the first cell
	IsHeader bool     // row sits inside thead
}

// Text returns the row's visible text with whitespace collapsed
func (r Row) Text() string {
	return strings.Join(strings.Fields(strings.Join(r.Cells, " ")), " ")
}

// Rows returns every row of the table in document order
func (t *Table) Rows() []Row {
	rows := make([]Row, 0)

	t.sel.Find("tr").Each(func(i int, tr *goquery.Selection) {
		// Skip rows belonging to tables nested inside cells
		if tr.Closest("table").Get(0) != t.sel.Get(0) {
			return
		}

		cells := tr.ChildrenFiltered("th, td")
		texts := make([]string, 0, cells.Length())
		cells.Each(func(_ int, cell *goquery.Selection) {
			texts = append(texts, cell.Text())
		})

		link, _ := cells.First().Find("a[href]").First().Attr("href")

		rows = append(rows, Row{
			Index:    len(rows),
			Cells:    texts,
			Link:     link,
			IsHeader: tr.ParentsFiltered("thead").Length() > 0,
		})
	})

	return rows
}

// HeaderRow returns the last header row of the table, which holds the column names
func (t *Table) HeaderRow() (Row, bool) {
	var header Row
	found := false
	for _, r := range t.Rows() {
		if r.IsHeader {
			header = r
			found = true
		}
	}
	return header, found
}
