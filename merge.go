package sheetmerge

import (
	"fmt"
	"sort"
)

// MergeResult describes a completed merge.
type MergeResult struct {
	OutputPath     string
	ColumnsWritten int

	// RowCount is the highest output row written, including the header row.
	RowCount int

	// SkippedColumns lists selected (file, name) pairs that did not resolve
	// to an existing source column, omitted from the output without error.
	SkippedColumns []string
}

// rowPair maps one source row to its output row.
type rowPair struct {
	source int
	target int
}

// keySequence is the canonical row order derived from one reference column:
// the distinct key values in first-occurrence order, plus the row each key
// first occurred on.
type keySequence struct {
	keys   []string
	keyRow map[string]int
}

// MergeFiles writes the selected columns of the given files into one
// row-aligned single-sheet workbook at outputPath.
//
// Columns are grouped by file and emitted in ascending file id, preserving
// each file's selection order. A file containing a reference column has its
// rows reordered to the canonical key order of the reference file's copy;
// keys missing from a file leave that file's cells blank on the key's row,
// and keys unique to a file are appended after the canonical sequence, in
// the file's own order, when the reference column is selected from that
// file. Files without a reference relation contribute their native row
// order starting at row 2.
//
// The cancel signal is polled before each reference scan and at every row
// and column of the emit phase; on cancellation MergeFiles returns
// ErrCancelled, saves nothing, and releases all source handles.
func (e *Engine) MergeFiles(schemas []*FileSchema, selection Selection, refs ReferenceMap, outputPath string, progress ProgressFunc, cancel *CancelSignal) (*MergeResult, error) {
	report := reporter{fn: progress}

	if err := selection.Validate(schemas, refs); err != nil {
		return nil, err
	}

	// Open every source once; release all handles on any return path.
	sheets := make(map[int]Sheet, len(schemas))
	rowCounts := make(map[int]int, len(schemas))
	for _, schema := range schemas {
		wb, err := e.provider.Open(schema.FilePath, ReadOnly)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", schema.FilePath, err)
		}
		defer wb.Close()

		sheet, err := wb.Sheet(schema.SheetName)
		if err != nil {
			return nil, fmt.Errorf("select sheet %q in %s: %w", schema.SheetName, schema.FilePath, err)
		}
		sheets[schema.FileID] = sheet
		rowCounts[schema.FileID] = sheet.MaxRow()
	}

	// Step 1: per-file header index.
	indexes := make(map[int]map[string]int, len(schemas))
	for _, schema := range schemas {
		index, err := headerIndex(sheets[schema.FileID])
		if err != nil {
			return nil, fmt.Errorf("index header of %s: %w", schema.FilePath, err)
		}
		indexes[schema.FileID] = index
	}

	// Step 2: canonical key sequence per reference column name.
	sequences := make(map[string]*keySequence, len(refs))
	for name, refFileID := range refs {
		col, ok := indexes[refFileID][name]
		if !ok {
			continue
		}
		if err := cancel.Err(); err != nil {
			return nil, err
		}
		seq, err := scanKeys(sheets[refFileID], col, rowCounts[refFileID])
		if err != nil {
			return nil, fmt.Errorf("scan reference column %q: %w", name, err)
		}
		sequences[name] = seq
	}

	// Step 3: group selected columns by file.
	columnsByFile, fileIDs := selection.byFile()

	// Step 4: per-file row mapping.
	mappings := make(map[int][]rowPair, len(fileIDs))
	rowCount := 1
	for _, fileID := range fileIDs {
		if err := cancel.Err(); err != nil {
			return nil, err
		}
		mapping, err := fileRowMapping(sheets[fileID], indexes[fileID], rowCounts[fileID], columnsByFile[fileID], refs, sequences)
		if err != nil {
			return nil, fmt.Errorf("map rows of file %d: %w", fileID, err)
		}
		mappings[fileID] = mapping
		for _, pair := range mapping {
			if pair.target > rowCount {
				rowCount = pair.target
			}
		}
	}

	// Step 5: emit.
	out, outSheet, err := e.newOutput()
	if err != nil {
		return nil, fmt.Errorf("create output workbook: %w", err)
	}
	defer out.Close()

	outCol := 1
	processed := 0
	total := len(selection)
	var skipped []string

	for _, fileID := range fileIDs {
		for _, name := range columnsByFile[fileID] {
			if err := cancel.Err(); err != nil {
				return nil, err
			}
			processed++

			srcCol, ok := indexes[fileID][name]
			if !ok {
				skipped = append(skipped, fmt.Sprintf("file %d: %s", fileID, name))
				continue
			}
			sheet := sheets[fileID]

			if err := copyCell(sheet, 1, srcCol, outSheet, 1, outCol); err != nil {
				return nil, fmt.Errorf("write header of column %q: %w", name, err)
			}
			for _, pair := range mappings[fileID] {
				if err := cancel.Err(); err != nil {
					return nil, err
				}
				if err := copyCell(sheet, pair.source, srcCol, outSheet, pair.target, outCol); err != nil {
					return nil, fmt.Errorf("copy column %q row %d: %w", name, pair.source, err)
				}
			}
			if err := copyColumnWidth(sheet, srcCol, outSheet, outCol); err != nil {
				return nil, fmt.Errorf("copy width of column %q: %w", name, err)
			}

			report.emit(processed, total,
				fmt.Sprintf("merging column %q (%d/%d)", name, processed, total))
			outCol++
		}
	}

	// Step 6: save.
	report.emit(total, total, "saving output...")
	if err := out.Save(outputPath); err != nil {
		return nil, fmt.Errorf("save %s: %w", outputPath, err)
	}

	return &MergeResult{
		OutputPath:     outputPath,
		ColumnsWritten: outCol - 1,
		RowCount:       rowCount,
		SkippedColumns: skipped,
	}, nil
}

// scanKeys reads one column top to bottom from row 2 and records the distinct
// normalized key values in first-occurrence order.
func scanKeys(sheet Sheet, col, maxRow int) (*keySequence, error) {
	seq := &keySequence{keyRow: make(map[string]int)}
	for row := 2; row <= maxRow; row++ {
		cell, err := sheet.Cell(row, col)
		if err != nil {
			return nil, err
		}
		key := KeyString(cell.Value)
		if _, seen := seq.keyRow[key]; !seen {
			seq.keys = append(seq.keys, key)
			seq.keyRow[key] = row
		}
	}
	return seq, nil
}

// fileRowMapping computes one file's source -> target row mapping.
//
// The driving reference is the file's selected column present in the
// reference map or, failing that, any reference column the file merely
// contains; a file with neither (or without its own copy of the reference
// column) maps rows 1:1 in native order starting at target row 2.
//
// With a driving reference the canonical key sequence dictates target rows:
// every canonical key consumes one target row whether or not this file has
// it. Keys unique to this file are appended after the canonical sequence in
// first-occurrence order, but only when the reference column was itself
// selected from this file; an alignment-only reference contributes no rows
// of its own.
func fileRowMapping(sheet Sheet, index map[string]int, maxRow int, selected []string, refs ReferenceMap, sequences map[string]*keySequence) ([]rowPair, error) {
	identity := func() []rowPair {
		mapping := make([]rowPair, 0, maxRow)
		for row := 2; row <= maxRow; row++ {
			mapping = append(mapping, rowPair{source: row, target: row})
		}
		return mapping
	}

	refName := referenceFor(selected, refs)
	appendUnique := refName != ""
	if refName == "" {
		names := make([]string, 0, len(refs))
		for name := range refs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if sequences[name] == nil {
				continue
			}
			if _, ok := index[name]; ok {
				refName = name
				break
			}
		}
	}

	seq := sequences[refName]
	if refName == "" || seq == nil {
		return identity(), nil
	}
	col, ok := index[refName]
	if !ok {
		return identity(), nil
	}

	own, err := scanKeys(sheet, col, maxRow)
	if err != nil {
		return nil, err
	}

	var mapping []rowPair
	target := 2
	for _, key := range seq.keys {
		if row, ok := own.keyRow[key]; ok {
			mapping = append(mapping, rowPair{source: row, target: target})
		}
		target++
	}
	if appendUnique {
		for _, key := range own.keys {
			if _, ok := seq.keyRow[key]; !ok {
				mapping = append(mapping, rowPair{source: own.keyRow[key], target: target})
				target++
			}
		}
	}

	sort.Slice(mapping, func(i, j int) bool { return mapping[i].source < mapping[j].source })
	return mapping, nil
}
