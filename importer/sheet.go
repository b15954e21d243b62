package importer

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Row is one spreadsheet row keyed by its normalized header.
type Row map[string]string

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9]`)
	nonNumeric = regexp.MustCompile(`[^\d.-]`)
)

func normalizeHeader(h string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(h), "")
}

// ReadRows reads the first sheet of an xlsx workbook. The first row is the
// header; fully blank rows are skipped. Cells are raw values, so dates come
// back as serial numbers.
func ReadRows(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}
	grid, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(grid) < 2 {
		return nil, ErrEmptySheet
	}

	headers := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		headers[i] = normalizeHeader(h)
	}

	rows := make([]Row, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		row := Row{}
		for i, cell := range cells {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			if cell = strings.TrimSpace(cell); cell != "" {
				if _, seen := row[headers[i]]; !seen {
					row[headers[i]] = cell
				}
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}
	return rows, nil
}

// Value returns the first non-empty cell whose header matches one of the
// synonyms, compared after stripping case and punctuation.
func (r Row) Value(synonyms ...string) string {
	for _, s := range synonyms {
		if v, ok := r[normalizeHeader(s)]; ok {
			return v
		}
	}
	return ""
}

// Text is Value with a fallback for empty cells.
func (r Row) Text(fallback string, synonyms ...string) string {
	if v := r.Value(synonyms...); v != "" {
		return v
	}
	return fallback
}

// Number strips everything but digits, dot and minus before parsing, so
// "₹1,250.00" reads as 1250.
func (r Row) Number(fallback decimal.Decimal, synonyms ...string) decimal.Decimal {
	raw := r.Value(synonyms...)
	if raw == "" {
		return fallback
	}
	d, err := decimal.NewFromString(nonNumeric.ReplaceAllString(raw, ""))
	if err != nil {
		return fallback
	}
	return d
}

// Date converts an Excel serial date to YYYY-MM-DD and returns any other
// text unchanged.
func (r Row) Date(fallback string, synonyms ...string) string {
	raw := r.Value(synonyms...)
	if raw == "" {
		return fallback
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return raw
}
