// Package common holds the workbook contract suite shared by the adapter
// test packages.
package common

import (
	"errors"
	"testing"

	sheetmerge "github.com/sheetops/go-sheetmerge"
)

// WorkbookFactory creates an empty workbook for one suite run.
type WorkbookFactory func(t *testing.T) sheetmerge.Workbook

// RunWorkbookSuite exercises the in-memory Workbook/Sheet contract every
// adapter must satisfy. It does not call Save; persistence round trips are
// backend-specific and tested by each adapter.
func RunWorkbookSuite(t *testing.T, create WorkbookFactory) {
	t.Run("AddSheet", func(t *testing.T) {
		wb := create(t)
		defer wb.Close()

		sheet, err := wb.AddSheet("Data")
		if err != nil {
			t.Fatalf("AddSheet() error = %v", err)
		}
		if sheet.Title() != "Data" {
			t.Errorf("Title() = %q, want %q", sheet.Title(), "Data")
		}

		got, err := wb.Sheet("Data")
		if err != nil {
			t.Fatalf("Sheet() error = %v", err)
		}
		if got.Title() != "Data" {
			t.Errorf("Sheet().Title() = %q, want %q", got.Title(), "Data")
		}
	})

	t.Run("Sheet not found", func(t *testing.T) {
		wb := create(t)
		defer wb.Close()

		if _, err := wb.AddSheet("Data"); err != nil {
			t.Fatalf("AddSheet() error = %v", err)
		}
		_, err := wb.Sheet("Missing")
		if !errors.Is(err, sheetmerge.ErrSheetNotFound) {
			t.Errorf("Sheet() error = %v, want ErrSheetNotFound", err)
		}
	})

	t.Run("Value round trip", func(t *testing.T) {
		wb := create(t)
		defer wb.Close()

		sheet, err := wb.AddSheet("Data")
		if err != nil {
			t.Fatalf("AddSheet() error = %v", err)
		}

		values := []struct {
			name  string
			row   int
			col   int
			value interface{}
		}{
			{"string", 1, 1, "Alice"},
			{"integer", 2, 1, int64(42)},
			{"float", 3, 1, 2.5},
			{"bool", 4, 1, true},
		}
		for _, v := range values {
			if err := sheet.SetCell(v.row, v.col, sheetmerge.CellData{Value: v.value}); err != nil {
				t.Fatalf("SetCell(%s) error = %v", v.name, err)
			}
		}

		for _, v := range values {
			t.Run(v.name, func(t *testing.T) {
				got, err := sheet.Cell(v.row, v.col)
				if err != nil {
					t.Fatalf("Cell() error = %v", err)
				}
				if got.Value != v.value {
					t.Errorf("Cell() value = %v (%T), want %v (%T)", got.Value, got.Value, v.value, v.value)
				}
			})
		}
	})

	t.Run("Empty cell", func(t *testing.T) {
		wb := create(t)
		defer wb.Close()

		sheet, err := wb.AddSheet("Data")
		if err != nil {
			t.Fatalf("AddSheet() error = %v", err)
		}
		got, err := sheet.Cell(5, 5)
		if err != nil {
			t.Fatalf("Cell() error = %v", err)
		}
		if got.Value != nil {
			t.Errorf("Cell() value = %v, want nil", got.Value)
		}
		if got.HasStyle() {
			t.Error("Cell() has style, want none")
		}
	})

	t.Run("Style round trip", func(t *testing.T) {
		wb := create(t)
		defer wb.Close()

		sheet, err := wb.AddSheet("Data")
		if err != nil {
			t.Fatalf("AddSheet() error = %v", err)
		}

		style := &sheetmerge.CellStyle{
			Font:      &sheetmerge.FontStyle{Bold: true, Italic: true, Size: 14},
			Alignment: &sheetmerge.AlignmentStyle{Horizontal: "center", WrapText: true},
		}
		if err := sheet.SetCell(1, 1, sheetmerge.CellData{Value: "Header", Style: style}); err != nil {
			t.Fatalf("SetCell() error = %v", err)
		}

		got, err := sheet.Cell(1, 1)
		if err != nil {
			t.Fatalf("Cell() error = %v", err)
		}
		if !got.HasStyle() {
			t.Fatal("Cell() has no style, want style bundle")
		}
		if got.Style.Font == nil || !got.Style.Font.Bold || !got.Style.Font.Italic {
			t.Errorf("Cell() font = %+v, want bold italic", got.Style.Font)
		}
		if got.Style.Alignment == nil || !got.Style.Alignment.WrapText {
			t.Errorf("Cell() alignment = %+v, want wrapped", got.Style.Alignment)
		}
		if got.Style.Alignment != nil && got.Style.Alignment.Horizontal != "center" {
			t.Errorf("Cell() horizontal = %q, want %q", got.Style.Alignment.Horizontal, "center")
		}
	})

	t.Run("Column width", func(t *testing.T) {
		wb := create(t)
		defer wb.Close()

		sheet, err := wb.AddSheet("Data")
		if err != nil {
			t.Fatalf("AddSheet() error = %v", err)
		}

		if _, ok := sheet.ColumnWidth(1); ok {
			t.Error("ColumnWidth() reported a width before any was set")
		}
		if err := sheet.SetColumnWidth(1, 24); err != nil {
			t.Fatalf("SetColumnWidth() error = %v", err)
		}
		width, ok := sheet.ColumnWidth(1)
		if !ok {
			t.Fatal("ColumnWidth() ok = false after SetColumnWidth")
		}
		if width < 23 || width > 25 {
			t.Errorf("ColumnWidth() = %v, want ~24", width)
		}
	})

	t.Run("Dimensions grow with writes", func(t *testing.T) {
		wb := create(t)
		defer wb.Close()

		sheet, err := wb.AddSheet("Data")
		if err != nil {
			t.Fatalf("AddSheet() error = %v", err)
		}
		if err := sheet.SetCell(3, 2, sheetmerge.CellData{Value: "x"}); err != nil {
			t.Fatalf("SetCell() error = %v", err)
		}
		if sheet.MaxRow() < 3 {
			t.Errorf("MaxRow() = %d, want >= 3", sheet.MaxRow())
		}
		if sheet.MaxCol() < 2 {
			t.Errorf("MaxCol() = %d, want >= 2", sheet.MaxCol())
		}
	})
}
