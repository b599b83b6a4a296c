package sheetmerge

import "fmt"

// ExtractResult describes a completed extraction.
type ExtractResult struct {
	OutputPath     string
	ColumnsWritten int
	RowsPerColumn  int

	// SkippedColumns lists requested names absent from the source, omitted
	// from the output without error.
	SkippedColumns []string
}

// ExtractColumns copies the named columns of one sheet, in the given order,
// into a new single-sheet workbook at outputPath, preserving cell values,
// styles and explicit column widths.
//
// Requested names missing from the header row are skipped silently and
// reported in the result; remaining columns pack left to right without gaps.
// The cancel signal is polled once per row per column; on cancellation the
// operation returns ErrCancelled and nothing is written to disk.
func (e *Engine) ExtractColumns(path, sheetName string, names []string, outputPath string, progress ProgressFunc, cancel *CancelSignal) (*ExtractResult, error) {
	report := reporter{fn: progress}

	src, err := e.provider.Open(path, ReadOnly)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer src.Close()

	sheet, err := src.Sheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("select sheet %q in %s: %w", sheetName, path, err)
	}

	index, err := headerIndex(sheet)
	if err != nil {
		return nil, err
	}

	resolved := make([]string, 0, len(names))
	var skipped []string
	for _, name := range names {
		if _, ok := index[name]; ok {
			resolved = append(resolved, name)
		} else {
			skipped = append(skipped, name)
		}
	}

	out, outSheet, err := e.newOutput()
	if err != nil {
		return nil, fmt.Errorf("create output workbook: %w", err)
	}
	defer out.Close()

	rowCount := sheet.MaxRow()
	totalCells := rowCount * len(resolved)
	copied := 0

	for outCol, name := range resolved {
		srcCol := index[name]
		for row := 1; row <= rowCount; row++ {
			if err := cancel.Err(); err != nil {
				return nil, err
			}
			if err := copyCell(sheet, row, srcCol, outSheet, row, outCol+1); err != nil {
				return nil, fmt.Errorf("copy column %q row %d: %w", name, row, err)
			}
			copied++
			if row%e.config.ProgressInterval == 0 {
				report.emit(copied, totalCells,
					fmt.Sprintf("copying column %q (%d/%d)", name, row, rowCount))
			}
		}
		if err := copyColumnWidth(sheet, srcCol, outSheet, outCol+1); err != nil {
			return nil, fmt.Errorf("copy width of column %q: %w", name, err)
		}
		report.emit(copied, totalCells,
			fmt.Sprintf("copied column %q (%d/%d)", name, outCol+1, len(resolved)))
	}

	report.emit(totalCells, totalCells, "saving output...")
	if err := out.Save(outputPath); err != nil {
		return nil, fmt.Errorf("save %s: %w", outputPath, err)
	}

	return &ExtractResult{
		OutputPath:     outputPath,
		ColumnsWritten: len(resolved),
		RowsPerColumn:  rowCount,
		SkippedColumns: skipped,
	}, nil
}
