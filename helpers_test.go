package sheetmerge_test

import (
	"path/filepath"
	"testing"

	sheetmerge "github.com/sheetops/go-sheetmerge"
	"github.com/sheetops/go-sheetmerge/adapters/excel"
)

// newEngine builds an engine over the excel adapter for fixture-based tests.
func newEngine(t *testing.T) (*sheetmerge.Engine, sheetmerge.Provider) {
	t.Helper()

	provider, err := excel.New(nil)
	if err != nil {
		t.Fatalf("excel.New() error = %v", err)
	}
	engine, err := sheetmerge.New(provider, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return engine, provider
}

// writeFixture creates an xlsx file with the given rows on sheet "Sheet1"
// and returns its path.
func writeFixture(t *testing.T, provider sheetmerge.Provider, dir, name string, rows [][]interface{}) string {
	t.Helper()

	path := filepath.Join(dir, name)
	wb, err := provider.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer wb.Close()

	sheet, err := wb.AddSheet("Sheet1")
	if err != nil {
		t.Fatalf("AddSheet() error = %v", err)
	}
	for r, row := range rows {
		for c, value := range row {
			if value == nil {
				continue
			}
			if err := sheet.SetCell(r+1, c+1, sheetmerge.CellData{Value: value}); err != nil {
				t.Fatalf("SetCell(%d,%d) error = %v", r+1, c+1, err)
			}
		}
	}
	if err := wb.Save(path); err != nil {
		t.Fatalf("Save(%s) error = %v", path, err)
	}
	return path
}

// readCell opens path and reads one cell of its active sheet.
func readCell(t *testing.T, provider sheetmerge.Provider, path string, row, col int) sheetmerge.CellData {
	t.Helper()

	wb, err := provider.Open(path, sheetmerge.ReadOnly)
	if err != nil {
		t.Fatalf("Open(%s) error = %v", path, err)
	}
	defer wb.Close()

	sheet, err := wb.ActiveSheet()
	if err != nil {
		t.Fatalf("ActiveSheet() error = %v", err)
	}
	cell, err := sheet.Cell(row, col)
	if err != nil {
		t.Fatalf("Cell(%d,%d) error = %v", row, col, err)
	}
	return cell
}
