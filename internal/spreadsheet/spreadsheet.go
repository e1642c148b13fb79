// Package spreadsheet reads and writes the bulk import workbook.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dtroode/trueconf-console/internal/model"
)

// TemplateSheet is the worksheet name of the downloadable template.
const TemplateSheet = "Template"

// Headers is the required header row, in column order.
var Headers = []string{"id", "password", "display_name", "first_name", "last_name", "company"}

var columnWidths = []float64{25, 20, 30, 25, 25, 30}

// ErrInvalidHeader is returned when the first row does not match Headers.
var ErrInvalidHeader = errors.New("spreadsheet header does not match the template")

// RowError reports a data row missing a mandatory column.
type RowError struct {
	// Row is the 1-based worksheet row number; the header is row 1.
	Row int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("invalid data on row %d: columns 'id' and 'password' are required", e.Row)
}

// Parse reads import rows from the first worksheet of an xlsx workbook.
func Parse(r io.Reader) ([]model.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrInvalidHeader
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet: %w", err)
	}
	if len(rows) == 0 || !headerMatches(rows[0]) {
		return nil, ErrInvalidHeader
	}

	result := make([]model.ImportRow, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		rowNumber := i + 2

		row := model.ImportRow{
			ID:          strings.TrimSpace(cell(cells, 0)),
			Password:    cell(cells, 1),
			DisplayName: cell(cells, 2),
			FirstName:   cell(cells, 3),
			LastName:    cell(cells, 4),
			Company:     cell(cells, 5),
		}

		if row.ID == "" && row.Password == "" && row.DisplayName == "" {
			continue
		}
		if row.ID == "" || row.Password == "" {
			return nil, &RowError{Row: rowNumber}
		}

		result = append(result, row)
	}

	return result, nil
}

// WriteTemplate writes an empty workbook holding only the header row.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), TemplateSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(TemplateSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to resolve column: %w", err)
		}
		if err := f.SetColWidth(TemplateSheet, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

func headerMatches(cells []string) bool {
	for i, h := range Headers {
		if cell(cells, i) != h {
			return false
		}
	}
	return true
}

func cell(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}
