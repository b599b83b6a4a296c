package sheetmerge

// OpenMode controls how a workbook is opened by a Provider.
type OpenMode int

const (
	ReadOnly OpenMode = iota
	ReadWrite
)

// Provider abstracts a spreadsheet backend. Implementations live under
// adapters/ (local xlsx files via excelize, remote Google Sheets).
type Provider interface {
	// Open opens an existing workbook. The path is backend-specific: a file
	// system path for the excel adapter, a spreadsheet ID for Google Sheets.
	Open(path string, mode OpenMode) (Workbook, error)

	// Create returns a new empty workbook that is saved with Workbook.Save.
	Create() (Workbook, error)
}

// Workbook is a single open spreadsheet document.
type Workbook interface {
	// SheetNames returns the sheet titles in document order.
	SheetNames() []string

	// Sheet returns the sheet with the given title, or ErrSheetNotFound.
	Sheet(name string) (Sheet, error)

	// ActiveSheet returns the document's designated default sheet.
	ActiveSheet() (Sheet, error)

	// AddSheet creates a sheet with the given title and returns it.
	AddSheet(name string) (Sheet, error)

	// Save writes the workbook to the given destination.
	Save(path string) error

	// Close releases the underlying handle. Safe to call after Save.
	Close() error
}

// Sheet exposes the cell grid of one sheet.
type Sheet interface {
	Title() string

	// MaxRow is the sheet's reported maximum row index including the header
	// row. Trailing rows may be entirely empty; callers must tolerate the
	// over-count.
	MaxRow() int

	// MaxCol is the widest row's column count.
	MaxCol() int

	// Cell reads the cell at the 1-based row/column coordinates. Cells that
	// were never written return a zero CellData.
	Cell(row, col int) (CellData, error)

	// SetCell writes value and, when present, style to the given coordinates.
	SetCell(row, col int, data CellData) error

	// ColumnWidth reports the explicit width of a column. ok is false when no
	// width was set and the column renders at the backend default.
	ColumnWidth(col int) (width float64, ok bool)

	SetColumnWidth(col int, width float64) error
}

// CellData is a snapshot of one cell: a typed scalar value (string, float64,
// int64, bool or nil for an empty cell) plus an optional style bundle.
type CellData struct {
	Value interface{}
	Style *CellStyle
}

// HasStyle reports whether the cell carries any style attribute worth copying.
func (c CellData) HasStyle() bool {
	return c.Style != nil && !c.Style.IsZero()
}

// CellStyle is a backend-neutral style bundle. Sub-bundles are nil when the
// source cell does not set them; absent attributes copy as defaults.
type CellStyle struct {
	Font      *FontStyle
	Alignment *AlignmentStyle
	Border    *BorderStyle
	Fill      *FillStyle

	// NumberFormatID is a builtin number format id; CustomNumberFormat, when
	// non-empty, takes precedence.
	NumberFormatID     int
	CustomNumberFormat string
}

// IsZero reports whether no style attribute is set.
func (s *CellStyle) IsZero() bool {
	if s == nil {
		return true
	}
	return s.Font == nil && s.Alignment == nil && s.Border == nil &&
		s.Fill == nil && s.NumberFormatID == 0 && s.CustomNumberFormat == ""
}

// FontStyle mirrors the font attributes preserved by the copy engines.
type FontStyle struct {
	Name   string
	Size   float64
	Bold   bool
	Italic bool
	Color  string // RRGGBB hex, empty for theme default
}

// AlignmentStyle holds horizontal/vertical alignment and wrapping.
type AlignmentStyle struct {
	Horizontal string
	Vertical   string
	WrapText   bool
}

// BorderStyle holds all four border edges.
type BorderStyle struct {
	Left   BorderEdge
	Right  BorderEdge
	Top    BorderEdge
	Bottom BorderEdge
}

// BorderEdge is one border line. Style 0 means no border on that edge; the
// codes follow the xlsx border style table (1 thin, 2 medium, ...).
type BorderEdge struct {
	Style int
	Color string
}

// IsZero reports whether the edge draws nothing.
func (e BorderEdge) IsZero() bool {
	return e.Style == 0 && e.Color == ""
}

// FillStyle holds a pattern or gradient fill.
type FillStyle struct {
	Type       string // "pattern" or "gradient"
	Pattern    int
	StartColor string
	EndColor   string
}
