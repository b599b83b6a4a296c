package sheetmerge_test

import (
	"errors"
	"testing"

	sheetmerge "github.com/sheetops/go-sheetmerge"
)

func TestDiscoverSchema(t *testing.T) {
	engine, provider := newEngine(t)
	dir := t.TempDir()

	path := writeFixture(t, provider, dir, "people.xlsx", [][]interface{}{
		{"ID", "Name", "Score"},
		{int64(1), "Alice", 12.5},
		{int64(2), "Bob", 9.0},
	})

	t.Run("active sheet", func(t *testing.T) {
		schema, err := engine.DiscoverSchema(path, "")
		if err != nil {
			t.Fatalf("DiscoverSchema() error = %v", err)
		}
		if schema.SheetName != "Sheet1" {
			t.Errorf("SheetName = %q, want %q", schema.SheetName, "Sheet1")
		}
		if schema.RowCount != 3 {
			t.Errorf("RowCount = %d, want 3", schema.RowCount)
		}
		want := []string{"ID", "Name", "Score"}
		if len(schema.Columns) != len(want) {
			t.Fatalf("got %d columns, want %d", len(schema.Columns), len(want))
		}
		for i, name := range want {
			col := schema.Columns[i]
			if col.Name != name {
				t.Errorf("column %d name = %q, want %q", i, col.Name, name)
			}
			if col.Position != i+1 {
				t.Errorf("column %d position = %d, want %d", i, col.Position, i+1)
			}
			if col.FileName != "people.xlsx" {
				t.Errorf("column %d file name = %q, want %q", i, col.FileName, "people.xlsx")
			}
		}
		if schema.Columns[2].Letter != "C" {
			t.Errorf("column 3 letter = %q, want C", schema.Columns[2].Letter)
		}
	})

	t.Run("named sheet", func(t *testing.T) {
		schema, err := engine.DiscoverSchema(path, "Sheet1")
		if err != nil {
			t.Fatalf("DiscoverSchema() error = %v", err)
		}
		if schema.SheetName != "Sheet1" {
			t.Errorf("SheetName = %q, want %q", schema.SheetName, "Sheet1")
		}
	})

	t.Run("missing sheet", func(t *testing.T) {
		_, err := engine.DiscoverSchema(path, "Missing")
		if !errors.Is(err, sheetmerge.ErrSheetNotFound) {
			t.Errorf("DiscoverSchema() error = %v, want ErrSheetNotFound", err)
		}
	})

	t.Run("unreadable file", func(t *testing.T) {
		_, err := engine.DiscoverSchema(dir+"/nope.xlsx", "")
		if err == nil {
			t.Error("DiscoverSchema() error = nil, want open failure")
		}
	})
}

func TestDiscoverSchema_BlankHeaderSynthesis(t *testing.T) {
	engine, provider := newEngine(t)
	dir := t.TempDir()

	path := writeFixture(t, provider, dir, "gaps.xlsx", [][]interface{}{
		{"ID", nil, "Score"},
		{int64(1), "x", int64(2)},
	})

	schema, err := engine.DiscoverSchema(path, "")
	if err != nil {
		t.Fatalf("DiscoverSchema() error = %v", err)
	}
	if len(schema.Columns) != 3 {
		t.Fatalf("got %d columns, want 3", len(schema.Columns))
	}
	if schema.Columns[1].Name != "Column2" {
		t.Errorf("blank header name = %q, want %q", schema.Columns[1].Name, "Column2")
	}
	for i, col := range schema.Columns {
		if col.Name == "" {
			t.Errorf("column %d has empty name", i)
		}
	}
}

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{703, "AAA"},
	}
	for _, tt := range tests {
		if got := sheetmerge.ColumnLetter(tt.col); got != tt.want {
			t.Errorf("ColumnLetter(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}
