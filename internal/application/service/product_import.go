package service

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/xuri/excelize/v2"
)

// importColumns maps header names to ImportProductRow fields
var importColumns = map[string]func(*ImportProductRow, string){
	"name":     func(r *ImportProductRow, v string) { r.Name = v },
	"price":    func(r *ImportProductRow, v string) { r.Price = v },
	"unit":     func(r *ImportProductRow, v string) { r.Unit = v },
	"hsn_code": func(r *ImportProductRow, v string) { r.HSNCode = v },
	"hsn":      func(r *ImportProductRow, v string) { r.HSNCode = v },
	"tax_rate": func(r *ImportProductRow, v string) { r.TaxRate = v },
	"tax":      func(r *ImportProductRow, v string) { r.TaxRate = v },
}

// ParseProductSheet reads the first sheet of an .xlsx workbook. The first
// row is a header naming the columns; blank rows are skipped.
func ParseProductSheet(r io.Reader) ([]ImportProductRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.NewBadRequestError("Could not open spreadsheet, upload an .xlsx file")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.NewBadRequestError("Spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, apperror.NewBadRequestError("Spreadsheet is empty")
	}

	setters := make([]func(*ImportProductRow, string), len(rows[0]))
	hasName := false
	for i, header := range rows[0] {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(header), " ", "_"))
		setters[i] = importColumns[key]
		if key == "name" {
			hasName = true
		}
	}
	if !hasName {
		return nil, apperror.NewFieldError("name", "column is missing from the header row")
	}

	var out []ImportProductRow
	for n, cells := range rows[1:] {
		row := ImportProductRow{Line: n + 2}
		blank := true
		for i, cell := range cells {
			if i >= len(setters) || setters[i] == nil {
				continue
			}
			if v := strings.TrimSpace(cell); v != "" {
				setters[i](&row, v)
				blank = false
			}
		}
		if !blank {
			out = append(out, row)
		}
	}
	return out, nil
}

// parseCellNumber reads a numeric cell, returning fallback for an empty one
func parseCellNumber(s string, fallback float64) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}
