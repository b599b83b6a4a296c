package sheetmerge

import (
	"fmt"
	"path/filepath"
)

// ColumnDescriptor describes one column of a loaded source file. Identity
// within a merge is (FileID, Name); Name alone is not unique across files.
type ColumnDescriptor struct {
	Name     string
	Position int    // 1-based column index
	Letter   string // spreadsheet column label (A, B, ..., AA)
	FileID   int
	FileName string
}

// FileSchema is the column catalog of one loaded source file.
type FileSchema struct {
	FilePath  string
	SheetName string
	Columns   []ColumnDescriptor
	RowCount  int // reported max row including the header; may over-count
	FileID    int
}

// Column returns the descriptor with the given name, or nil.
func (s *FileSchema) Column(name string) *ColumnDescriptor {
	for i := range s.Columns {
		if s.Columns[i].Name == name {
			return &s.Columns[i]
		}
	}
	return nil
}

// ColumnLetter converts a 1-based column number to its spreadsheet label
// (1 -> A, 26 -> Z, 27 -> AA).
func ColumnLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// syntheticName is the name assigned to a blank header cell so every column
// has a non-empty name.
func syntheticName(pos int) string {
	return fmt.Sprintf("Column%d", pos)
}

// headerName resolves the header cell at pos to a column name, applying the
// blank-header rule.
func headerName(value interface{}, pos int) string {
	name := AsString(value, "")
	if name == "" {
		return syntheticName(pos)
	}
	return name
}

// headerIndex rebuilds the name -> position map from a sheet's header row.
// Every engine operation resolves column names through this same rule.
func headerIndex(sheet Sheet) (map[string]int, error) {
	index := make(map[string]int)
	maxCol := sheet.MaxCol()
	for col := 1; col <= maxCol; col++ {
		cell, err := sheet.Cell(1, col)
		if err != nil {
			return nil, fmt.Errorf("read header cell %s1: %w", ColumnLetter(col), err)
		}
		name := headerName(cell.Value, col)
		if _, exists := index[name]; !exists {
			index[name] = col
		}
	}
	return index, nil
}

// DiscoverSchema reads the header row and row count of one sheet. An empty
// sheetName selects the workbook's active sheet; a named sheet that does not
// exist fails with ErrSheetNotFound.
func (e *Engine) DiscoverSchema(path, sheetName string) (*FileSchema, error) {
	wb, err := e.provider.Open(path, ReadOnly)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer wb.Close()

	var sheet Sheet
	if sheetName != "" {
		sheet, err = wb.Sheet(sheetName)
	} else {
		sheet, err = wb.ActiveSheet()
	}
	if err != nil {
		return nil, fmt.Errorf("select sheet in %s: %w", path, err)
	}

	fileName := filepath.Base(path)
	maxCol := sheet.MaxCol()
	columns := make([]ColumnDescriptor, 0, maxCol)
	if sheet.MaxRow() > 0 {
		for col := 1; col <= maxCol; col++ {
			cell, err := sheet.Cell(1, col)
			if err != nil {
				return nil, fmt.Errorf("read header cell %s1: %w", ColumnLetter(col), err)
			}
			columns = append(columns, ColumnDescriptor{
				Name:     headerName(cell.Value, col),
				Position: col,
				Letter:   ColumnLetter(col),
				FileName: fileName,
			})
		}
	}

	return &FileSchema{
		FilePath:  path,
		SheetName: sheet.Title(),
		Columns:   columns,
		RowCount:  sheet.MaxRow(),
	}, nil
}
