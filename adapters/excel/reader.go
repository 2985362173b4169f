package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"collectorsdream/domain/collection"

	"github.com/xuri/excelize/v2"
)

// File types understood by the reader
const (
	FileTypeXLSX = "xlsx"
	FileTypeCSV  = "csv"
)

// FileTypeFor picks the file type from a file name's extension
func FileTypeFor(name string) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return FileTypeXLSX, nil
	case ".csv":
		return FileTypeCSV, nil
	}
	return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(name))
}

// DataReader turns a spreadsheet into raw item field maps. The first row is
// the header; every following non-empty row becomes one item.
type DataReader struct {
	r        io.Reader
	fileType string
	category *collection.Category
}

// NewDataReader creates a reader for r. When category is set, header cells
// that match a field label or name map onto that field.
func NewDataReader(r io.Reader, fileType string, category *collection.Category) *DataReader {
	return &DataReader{r: r, fileType: fileType, category: category}
}

// ReadItems reads every data row
func (r *DataReader) ReadItems() ([]map[string]any, error) {
	var rows [][]string
	var err error
	switch r.fileType {
	case FileTypeCSV:
		rows, err = r.readCSV()
	case FileTypeXLSX:
		rows, err = r.readExcel()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s file must have at least a header row and one data row", strings.ToUpper(r.fileType))
	}
	return r.processRows(rows), nil
}

func (r *DataReader) readExcel() ([][]string, error) {
	f, err := excelize.OpenReader(r.r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheets[0], err)
	}
	return rows, nil
}

func (r *DataReader) readCSV() ([][]string, error) {
	reader := csv.NewReader(r.r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// processRows converts raw string rows into field maps. Empty cells are
// left out so the membership heuristic only counts filled-in fields.
func (r *DataReader) processRows(rows [][]string) []map[string]any {
	keys := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		keys[i] = r.keyFor(strings.TrimSpace(header))
	}

	items := make([]map[string]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		fields := make(map[string]any)
		for j, cell := range row {
			if j >= len(keys) || keys[j] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			fields[keys[j]] = cell
		}
		if len(fields) > 0 {
			items = append(items, fields)
		}
	}
	return items
}

// keyFor maps a header cell onto an item key; "" drops the column
func (r *DataReader) keyFor(header string) string {
	if header == "" || collection.IsReservedKey(strings.ToLower(header)) {
		return ""
	}
	if r.category != nil {
		for _, f := range r.category.Fields {
			if strings.EqualFold(f.Label, header) || f.Name == header {
				return f.Name
			}
		}
	}
	return collection.Slug(header)
}
