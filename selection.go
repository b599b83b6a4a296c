package sheetmerge

import "sort"

// ColumnRef addresses one selected column by file id and column name.
type ColumnRef struct {
	FileID int
	Name   string
}

// Selection is the ordered set of columns chosen for a merge. Order
// determines output column order, left to right, with columns grouped by
// file and files emitted in ascending file id.
type Selection []ColumnRef

// ReferenceMap names, for each column name selected from more than one file,
// the file whose copy of that column drives row alignment.
type ReferenceMap map[string]int

// byFile groups the selection per file id, preserving each file's selection
// order, and returns the file ids in ascending order.
func (s Selection) byFile() (map[int][]string, []int) {
	grouped := make(map[int][]string)
	ids := make([]int, 0)
	for _, ref := range s {
		if _, seen := grouped[ref.FileID]; !seen {
			ids = append(ids, ref.FileID)
		}
		grouped[ref.FileID] = append(grouped[ref.FileID], ref.Name)
	}
	sort.Ints(ids)
	return grouped, ids
}

// filesByName returns, per column name, the distinct file ids the name was
// selected from, in selection order.
func (s Selection) filesByName() map[string][]int {
	files := make(map[string][]int)
	for _, ref := range s {
		seen := false
		for _, id := range files[ref.Name] {
			if id == ref.FileID {
				seen = true
				break
			}
		}
		if !seen {
			files[ref.Name] = append(files[ref.Name], ref.FileID)
		}
	}
	return files
}

// Validate checks a merge request before any row mapping is computed.
//
// A column name selected from two or more files must have a reference map
// entry (ErrReferenceRequired), and no file's selected columns may be tied to
// more than one reference name (ErrAmbiguousReference). File ids must address
// schemas in the given set.
func (s Selection) Validate(schemas []*FileSchema, refs ReferenceMap) error {
	if len(s) == 0 {
		return ErrEmptySelection
	}

	known := make(map[int]bool, len(schemas))
	for _, schema := range schemas {
		known[schema.FileID] = true
	}
	for _, ref := range s {
		if !known[ref.FileID] {
			return ErrUnknownFile
		}
	}
	for _, fileID := range refs {
		if !known[fileID] {
			return ErrUnknownFile
		}
	}

	for name, files := range s.filesByName() {
		if len(files) > 1 {
			if _, ok := refs[name]; !ok {
				return ErrReferenceRequired
			}
		}
	}

	grouped, ids := s.byFile()
	for _, fileID := range ids {
		refName := ""
		for _, name := range grouped[fileID] {
			if _, ok := refs[name]; !ok {
				continue
			}
			if refName != "" && refName != name {
				return ErrAmbiguousReference
			}
			refName = name
		}
	}

	return nil
}

// referenceFor returns the reference name governing one file's row order:
// the single selected column of that file present in the reference map, or
// "" when the file contributes its native order. Validate guarantees at most
// one such name.
func referenceFor(names []string, refs ReferenceMap) string {
	for _, name := range names {
		if _, ok := refs[name]; ok {
			return name
		}
	}
	return ""
}
