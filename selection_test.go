package sheetmerge_test

import (
	"errors"
	"testing"

	sheetmerge "github.com/sheetops/go-sheetmerge"
)

func schemaSet() []*sheetmerge.FileSchema {
	return []*sheetmerge.FileSchema{
		{
			FileID:   0,
			FilePath: "a.xlsx",
			Columns: []sheetmerge.ColumnDescriptor{
				{Name: "ID", Position: 1, FileID: 0},
				{Name: "Name", Position: 2, FileID: 0},
				{Name: "Group", Position: 3, FileID: 0},
			},
		},
		{
			FileID:   1,
			FilePath: "b.xlsx",
			Columns: []sheetmerge.ColumnDescriptor{
				{Name: "ID", Position: 1, FileID: 1},
				{Name: "Group", Position: 2, FileID: 1},
				{Name: "Score", Position: 3, FileID: 1},
			},
		},
	}
}

func TestSelection_Validate(t *testing.T) {
	schemas := schemaSet()

	tests := []struct {
		name      string
		selection sheetmerge.Selection
		refs      sheetmerge.ReferenceMap
		wantErr   error
	}{
		{
			name:    "empty selection",
			wantErr: sheetmerge.ErrEmptySelection,
		},
		{
			name:      "single file needs no references",
			selection: sheetmerge.Selection{{FileID: 0, Name: "ID"}, {FileID: 0, Name: "Name"}},
		},
		{
			name: "duplicate name without reference",
			selection: sheetmerge.Selection{
				{FileID: 0, Name: "ID"},
				{FileID: 1, Name: "ID"},
			},
			wantErr: sheetmerge.ErrReferenceRequired,
		},
		{
			name: "duplicate name with reference",
			selection: sheetmerge.Selection{
				{FileID: 0, Name: "ID"},
				{FileID: 1, Name: "ID"},
				{FileID: 1, Name: "Score"},
			},
			refs: sheetmerge.ReferenceMap{"ID": 0},
		},
		{
			name: "two reference names on one file",
			selection: sheetmerge.Selection{
				{FileID: 0, Name: "ID"},
				{FileID: 0, Name: "Group"},
				{FileID: 1, Name: "ID"},
				{FileID: 1, Name: "Group"},
			},
			refs:    sheetmerge.ReferenceMap{"ID": 0, "Group": 1},
			wantErr: sheetmerge.ErrAmbiguousReference,
		},
		{
			name:      "unknown file in selection",
			selection: sheetmerge.Selection{{FileID: 9, Name: "ID"}},
			wantErr:   sheetmerge.ErrUnknownFile,
		},
		{
			name:      "unknown file in reference map",
			selection: sheetmerge.Selection{{FileID: 0, Name: "ID"}},
			refs:      sheetmerge.ReferenceMap{"ID": 9},
			wantErr:   sheetmerge.ErrUnknownFile,
		},
		{
			name: "unselected duplicate needs no reference",
			selection: sheetmerge.Selection{
				{FileID: 0, Name: "Name"},
				{FileID: 1, Name: "Score"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.selection.Validate(schemas, tt.refs)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
