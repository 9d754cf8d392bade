// internal/export/csv.go
package export

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"time"

	"prodview/internal/catalog"
)

// ErrNothingToExport rejects an export of an empty page.
var ErrNothingToExport = errors.New("no records on the visible page")

// bom keeps spreadsheet tools honest about the encoding.
const bom = "\uFEFF"

var header = []string{"ID", "Title", "Price", "Category", "Description"}

// Write emits the visible page as UTF-8 CSV with a BOM prefix. Quote
// escaping in the free-text columns is encoding/csv's.
func Write(w io.Writer, page []catalog.Product) error {
	if len(page) == 0 {
		return ErrNothingToExport
	}
	if _, err := io.WriteString(w, bom); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, p := range page {
		row := []string{
			strconv.FormatInt(p.ID, 10),
			p.Title,
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			p.CategoryName(),
			p.Description,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename encodes the export moment, matching the
// products_YYYY-MM-DD_HH-MM.csv convention.
func Filename(now time.Time) string {
	return now.Format("products_2006-01-02_15-04") + ".csv"
}
