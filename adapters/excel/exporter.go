package excel

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"collectorsdream/domain/collection"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet names the worksheet when no category is selected
const DefaultSheet = "Collection"

// ContentType is the media type of an exported workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export writes items as a workbook: a bold header row with the table
// columns, then one row per item
func Export(w io.Writer, sheet string, items []*collection.Item, category *collection.Category) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet = SheetName(sheet)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	columns := collection.Columns(items, category)
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c.Label
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, item := range items {
		row := make([]interface{}, len(columns))
		for j, c := range columns {
			v, ok := item.Get(c.Key)
			if !ok {
				continue
			}
			row[j] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// cellValue keeps scalars and JSON-encodes nested values
func cellValue(v any) interface{} {
	switch t := v.(type) {
	case nil, string, bool, float64, float32, int, int64:
		return t
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

var sheetNameReplacer = strings.NewReplacer(
	"[", "_", "]", "_", ":", "_", "*", "_", "?", "_", "/", "_", "\\", "_",
)

// SheetName makes s a valid worksheet name
func SheetName(s string) string {
	s = strings.TrimSpace(sheetNameReplacer.Replace(s))
	if s == "" {
		return DefaultSheet
	}
	if r := []rune(s); len(r) > 31 {
		s = string(r[:31])
	}
	return s
}
