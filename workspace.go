package sheetmerge

import (
	"fmt"
	"sync"
)

// Workspace manages the working set of loaded source files. File ids are a
// dense 0-based index into the set; removing a file renumbers the remaining
// schemas (and their columns) to keep the index space dense, so selections
// and reference maps captured earlier must be rebuilt from current state.
type Workspace struct {
	mu      sync.RWMutex
	engine  *Engine
	schemas []*FileSchema
}

// NewWorkspace creates an empty working set backed by the given engine.
func NewWorkspace(engine *Engine) *Workspace {
	return &Workspace{engine: engine}
}

// AddFile discovers the file's schema and appends it to the working set,
// assigning the next dense file id.
func (w *Workspace) AddFile(path, sheetName string) (*FileSchema, error) {
	schema, err := w.engine.DiscoverSchema(path, sheetName)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	schema.FileID = len(w.schemas)
	for i := range schema.Columns {
		schema.Columns[i].FileID = schema.FileID
	}
	w.schemas = append(w.schemas, schema)

	return copySchema(schema), nil
}

// RemoveFile removes the file with the given id and renumbers the remaining
// schemas. It returns the renumbered working set.
func (w *Workspace) RemoveFile(fileID int) ([]*FileSchema, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if fileID < 0 || fileID >= len(w.schemas) {
		return nil, fmt.Errorf("remove file %d: %w", fileID, ErrUnknownFile)
	}

	w.schemas = append(w.schemas[:fileID], w.schemas[fileID+1:]...)
	for i, schema := range w.schemas {
		schema.FileID = i
		for j := range schema.Columns {
			schema.Columns[j].FileID = i
		}
	}

	return w.copySchemas(), nil
}

// Schemas returns a snapshot of the working set in file id order.
func (w *Workspace) Schemas() []*FileSchema {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.copySchemas()
}

// Schema returns the schema with the given file id.
func (w *Workspace) Schema(fileID int) (*FileSchema, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if fileID < 0 || fileID >= len(w.schemas) {
		return nil, ErrUnknownFile
	}
	return copySchema(w.schemas[fileID]), nil
}

// Len returns the number of loaded files.
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.schemas)
}

// ColumnsNamed returns every loaded column with the given name across the
// working set. More than one result means a merge selecting that name from
// those files needs a reference map entry.
func (w *Workspace) ColumnsNamed(name string) []ColumnDescriptor {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var columns []ColumnDescriptor
	for _, schema := range w.schemas {
		if col := schema.Column(name); col != nil {
			columns = append(columns, *col)
		}
	}
	return columns
}

// Clear removes all loaded files.
func (w *Workspace) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.schemas = nil
}

func (w *Workspace) copySchemas() []*FileSchema {
	schemas := make([]*FileSchema, len(w.schemas))
	for i, schema := range w.schemas {
		schemas[i] = copySchema(schema)
	}
	return schemas
}

// copySchema returns a deep copy to prevent external modification.
func copySchema(schema *FileSchema) *FileSchema {
	clone := *schema
	clone.Columns = make([]ColumnDescriptor, len(schema.Columns))
	copy(clone.Columns, schema.Columns)
	return &clone
}
