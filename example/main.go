// Command example builds two small xlsx files, loads them into a workspace
// and runs a key-aligned merge through the task runner, printing progress.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	sheetmerge "github.com/sheetops/go-sheetmerge"
	"github.com/sheetops/go-sheetmerge/adapters/excel"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dir, err := os.MkdirTemp("", "sheetmerge-example-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	provider, err := excel.New(nil)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}

	engine, err := sheetmerge.New(provider, nil)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	// Two source files sharing an ID column but not a row order.
	people := filepath.Join(dir, "people.xlsx")
	if err := writeSheet(provider, people, [][]interface{}{
		{"ID", "Name"},
		{1, "Alice"},
		{2, "Bob"},
		{3, "Carol"},
	}); err != nil {
		return err
	}
	scores := filepath.Join(dir, "scores.xlsx")
	if err := writeSheet(provider, scores, [][]interface{}{
		{"ID", "Score"},
		{2, 90},
		{3, 85},
		{4, 77},
	}); err != nil {
		return err
	}

	// Load both files; the workspace assigns dense file ids.
	workspace := sheetmerge.NewWorkspace(engine)
	if _, err := workspace.AddFile(people, ""); err != nil {
		return fmt.Errorf("failed to load %s: %w", people, err)
	}
	if _, err := workspace.AddFile(scores, ""); err != nil {
		return fmt.Errorf("failed to load %s: %w", scores, err)
	}

	// "ID" exists in both files, so a reference map entry picks the file
	// whose ID column drives the row order.
	if dup := workspace.ColumnsNamed("ID"); len(dup) > 1 {
		log.Printf("column ID appears in %d files, aligning on file 0", len(dup))
	}

	selection := sheetmerge.Selection{
		{FileID: 0, Name: "ID"},
		{FileID: 0, Name: "Name"},
		{FileID: 1, Name: "Score"},
	}
	refs := sheetmerge.ReferenceMap{"ID": 0}
	outputPath := filepath.Join(dir, "merged.xlsx")

	runner := sheetmerge.NewTaskRunner(nil)
	defer runner.Close()

	done := make(chan error, 1)
	runner.Execute(func(progress sheetmerge.ProgressFunc, cancel *sheetmerge.CancelSignal) (interface{}, error) {
		return engine.MergeFiles(workspace.Schemas(), selection, refs, outputPath, progress, cancel)
	}, sheetmerge.TaskCallbacks{
		OnProgress: func(tick sheetmerge.ProgressTick) {
			log.Printf("%3d%% %s", tick.Percentage(), tick.Message)
		},
		OnComplete: func(result interface{}) {
			merged := result.(*sheetmerge.MergeResult)
			log.Printf("merged %d columns into %s (%d rows)",
				merged.ColumnsWritten, merged.OutputPath, merged.RowCount)
			done <- nil
		},
		OnError:     func(err error) { done <- err },
		OnCancelled: func() { done <- sheetmerge.ErrCancelled },
	})

	if err := <-done; err != nil {
		return err
	}

	// Show the aligned rows.
	schema, err := engine.DiscoverSchema(outputPath, "")
	if err != nil {
		return err
	}
	log.Printf("output sheet %q: %d columns, %d rows", schema.SheetName, len(schema.Columns), schema.RowCount)
	return nil
}

func writeSheet(provider sheetmerge.Provider, path string, rows [][]interface{}) error {
	wb, err := provider.Create()
	if err != nil {
		return err
	}
	defer wb.Close()

	sheet, err := wb.AddSheet("Sheet1")
	if err != nil {
		return err
	}
	for r, row := range rows {
		for c, value := range row {
			if err := sheet.SetCell(r+1, c+1, sheetmerge.CellData{Value: value}); err != nil {
				return err
			}
		}
	}
	return wb.Save(path)
}
