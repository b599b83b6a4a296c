package sheetmerge

// Engine runs schema discovery, column extraction and key-aligned merging
// against a spreadsheet Provider. It holds no per-operation state; every
// invocation opens its own handles and releases them before returning.
type Engine struct {
	provider Provider
	config   Config
}

// New creates an engine with the given provider and configuration. A nil
// config uses defaults; zero values are filled in.
func New(provider Provider, config *Config) (*Engine, error) {
	if provider == nil {
		return nil, ErrNoProvider
	}
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config
	if cfg.OutputSheetTitle == "" {
		cfg.OutputSheetTitle = "Merged"
	}
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = 100
	}
	return &Engine{provider: provider, config: cfg}, nil
}

// newOutput creates the single-sheet output workbook both engines write to.
func (e *Engine) newOutput() (Workbook, Sheet, error) {
	wb, err := e.provider.Create()
	if err != nil {
		return nil, nil, err
	}
	sheet, err := wb.AddSheet(e.config.OutputSheetTitle)
	if err != nil {
		wb.Close()
		return nil, nil, err
	}
	return wb, sheet, nil
}

// copyCell copies one cell's value and, when present, style.
func copyCell(src Sheet, srcRow, srcCol int, dst Sheet, dstRow, dstCol int) error {
	cell, err := src.Cell(srcRow, srcCol)
	if err != nil {
		return err
	}
	if cell.Value == nil && !cell.HasStyle() {
		return nil
	}
	if !cell.HasStyle() {
		cell.Style = nil
	}
	return dst.SetCell(dstRow, dstCol, cell)
}

// copyColumnWidth copies an explicitly set column width; unset widths leave
// the output at its default.
func copyColumnWidth(src Sheet, srcCol int, dst Sheet, dstCol int) error {
	if width, ok := src.ColumnWidth(srcCol); ok {
		return dst.SetColumnWidth(dstCol, width)
	}
	return nil
}
