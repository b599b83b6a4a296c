package excel

import (
	"fmt"
	"strconv"
	"strings"

	sheetmerge "github.com/sheetops/go-sheetmerge"
	"github.com/xuri/excelize/v2"
)

// excelize reports this width for columns without an explicit width.
const defaultColWidth = 9.140625

// Provider implements the sheetmerge.Provider interface for xlsx files
type Provider struct {
	config *Config
}

// New creates a new Excel provider with the given configuration. A nil
// config uses defaults.
func New(config *Config) (*Provider, error) {
	if config == nil {
		config = &Config{}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create a copy of config to avoid external modifications
	configCopy := *config

	return &Provider{config: &configCopy}, nil
}

// Open opens an existing xlsx file.
func (p *Provider) Open(path string, mode sheetmerge.OpenMode) (sheetmerge.Workbook, error) {
	opts := excelize.Options{Password: p.config.Password}
	f, err := excelize.OpenFile(path, opts)
	if err != nil {
		return nil, fmt.Errorf("open xlsx file: %w", err)
	}
	return &workbook{file: f}, nil
}

// Create returns a new in-memory workbook saved with Save.
func (p *Provider) Create() (sheetmerge.Workbook, error) {
	return &workbook{file: excelize.NewFile(), fresh: true}, nil
}

type workbook struct {
	file *excelize.File

	// fresh marks a workbook created by Create whose default sheet has not
	// been claimed by AddSheet yet.
	fresh bool

	// styleIDs caches materialized styles per style bundle so repeated cell
	// copies do not grow the stylesheet.
	styleIDs map[string]int

	// sheet dimension cache, invalidated on writes
	dims map[string]*dimension
}

type dimension struct {
	maxRow int
	maxCol int
}

func (w *workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

func (w *workbook) Sheet(name string) (sheetmerge.Sheet, error) {
	index, err := w.file.GetSheetIndex(name)
	if err != nil {
		return nil, fmt.Errorf("look up sheet %q: %w", name, err)
	}
	if index == -1 {
		return nil, fmt.Errorf("sheet %q: %w", name, sheetmerge.ErrSheetNotFound)
	}
	return &sheet{wb: w, name: name}, nil
}

func (w *workbook) ActiveSheet() (sheetmerge.Sheet, error) {
	name := w.file.GetSheetName(w.file.GetActiveSheetIndex())
	if name == "" {
		return nil, sheetmerge.ErrSheetNotFound
	}
	return &sheet{wb: w, name: name}, nil
}

func (w *workbook) AddSheet(name string) (sheetmerge.Sheet, error) {
	if w.fresh {
		// Claim the default sheet instead of leaving it behind.
		w.fresh = false
		current := w.file.GetSheetName(w.file.GetActiveSheetIndex())
		if current != name {
			if err := w.file.SetSheetName(current, name); err != nil {
				return nil, fmt.Errorf("rename default sheet: %w", err)
			}
		}
		return &sheet{wb: w, name: name}, nil
	}

	index, err := w.file.NewSheet(name)
	if err != nil {
		return nil, fmt.Errorf("create sheet %q: %w", name, err)
	}
	w.file.SetActiveSheet(index)
	return &sheet{wb: w, name: name}, nil
}

func (w *workbook) Save(path string) error {
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx file: %w", err)
	}
	return nil
}

func (w *workbook) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// styleID materializes a style bundle in this workbook, reusing already
// created styles.
func (w *workbook) styleID(style *sheetmerge.CellStyle) (int, error) {
	key := fmt.Sprintf("%v|%v|%v|%v|%d|%s",
		style.Font, style.Alignment, style.Border, style.Fill,
		style.NumberFormatID, style.CustomNumberFormat)
	if id, ok := w.styleIDs[key]; ok {
		return id, nil
	}
	id, err := w.file.NewStyle(toExcelizeStyle(style))
	if err != nil {
		return 0, err
	}
	if w.styleIDs == nil {
		w.styleIDs = make(map[string]int)
	}
	w.styleIDs[key] = id
	return id, nil
}

func (w *workbook) dim(sheetName string) (*dimension, error) {
	if d, ok := w.dims[sheetName]; ok {
		return d, nil
	}
	rows, err := w.file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}
	d := &dimension{maxRow: len(rows)}
	for _, row := range rows {
		if len(row) > d.maxCol {
			d.maxCol = len(row)
		}
	}
	if w.dims == nil {
		w.dims = make(map[string]*dimension)
	}
	w.dims[sheetName] = d
	return d, nil
}

type sheet struct {
	wb   *workbook
	name string
}

func (s *sheet) Title() string {
	return s.name
}

func (s *sheet) MaxRow() int {
	d, err := s.wb.dim(s.name)
	if err != nil {
		return 0
	}
	return d.maxRow
}

func (s *sheet) MaxCol() int {
	d, err := s.wb.dim(s.name)
	if err != nil {
		return 0
	}
	return d.maxCol
}

func (s *sheet) Cell(row, col int) (sheetmerge.CellData, error) {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return sheetmerge.CellData{}, ErrInvalidCoordinates
	}

	raw, err := s.wb.file.GetCellValue(s.name, ref)
	if err != nil {
		return sheetmerge.CellData{}, fmt.Errorf("read cell %s: %w", ref, err)
	}

	data := sheetmerge.CellData{Value: typedValue(s.wb.file, s.name, ref, raw)}

	styleID, err := s.wb.file.GetCellStyle(s.name, ref)
	if err == nil && styleID != 0 {
		if style, err := s.wb.file.GetStyle(styleID); err == nil {
			data.Style = fromExcelizeStyle(style)
		}
	}

	return data, nil
}

func (s *sheet) SetCell(row, col int, data sheetmerge.CellData) error {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ErrInvalidCoordinates
	}

	if data.Value != nil {
		if err := s.wb.file.SetCellValue(s.name, ref, data.Value); err != nil {
			return fmt.Errorf("write cell %s: %w", ref, err)
		}
	}
	if data.HasStyle() {
		id, err := s.wb.styleID(data.Style)
		if err != nil {
			return fmt.Errorf("materialize style for %s: %w", ref, err)
		}
		if err := s.wb.file.SetCellStyle(s.name, ref, ref, id); err != nil {
			return fmt.Errorf("apply style to %s: %w", ref, err)
		}
	}

	// Keep the cached dimensions in step with writes.
	if d, ok := s.wb.dims[s.name]; ok {
		if row > d.maxRow {
			d.maxRow = row
		}
		if col > d.maxCol {
			d.maxCol = col
		}
	}

	return nil
}

func (s *sheet) ColumnWidth(col int) (float64, bool) {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return 0, false
	}
	width, err := s.wb.file.GetColWidth(s.name, name)
	if err != nil || width <= 0 || width == defaultColWidth {
		return 0, false
	}
	return width, true
}

func (s *sheet) SetColumnWidth(col int, width float64) error {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return ErrInvalidCoordinates
	}
	return s.wb.file.SetColWidth(s.name, name, name, width)
}

// typedValue converts excelize's string cell value into the scalar types the
// core expects: numbers, bools, or strings. Dates keep their formatted string
// form; the number format carries the display.
func typedValue(f *excelize.File, sheetName, ref, raw string) interface{} {
	if raw == "" {
		return nil
	}

	cellType, err := f.GetCellType(sheetName, ref)
	if err != nil {
		return raw
	}

	switch cellType {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if floatVal, err := strconv.ParseFloat(raw, 64); err == nil {
			if intVal := int64(floatVal); float64(intVal) == floatVal {
				return intVal
			}
			return floatVal
		}
		return raw
	default:
		return raw
	}
}

// fromExcelizeStyle maps an excelize style into the neutral bundle.
func fromExcelizeStyle(s *excelize.Style) *sheetmerge.CellStyle {
	if s == nil {
		return nil
	}

	style := &sheetmerge.CellStyle{NumberFormatID: s.NumFmt}
	if s.CustomNumFmt != nil {
		style.CustomNumberFormat = *s.CustomNumFmt
	}

	if s.Font != nil {
		style.Font = &sheetmerge.FontStyle{
			Name:   s.Font.Family,
			Size:   s.Font.Size,
			Bold:   s.Font.Bold,
			Italic: s.Font.Italic,
			Color:  s.Font.Color,
		}
	}
	if s.Alignment != nil {
		style.Alignment = &sheetmerge.AlignmentStyle{
			Horizontal: s.Alignment.Horizontal,
			Vertical:   s.Alignment.Vertical,
			WrapText:   s.Alignment.WrapText,
		}
	}
	if len(s.Border) > 0 {
		border := &sheetmerge.BorderStyle{}
		for _, edge := range s.Border {
			converted := sheetmerge.BorderEdge{Style: edge.Style, Color: edge.Color}
			switch edge.Type {
			case "left":
				border.Left = converted
			case "right":
				border.Right = converted
			case "top":
				border.Top = converted
			case "bottom":
				border.Bottom = converted
			}
		}
		style.Border = border
	}
	if s.Fill.Type != "" {
		fill := &sheetmerge.FillStyle{
			Type:    s.Fill.Type,
			Pattern: s.Fill.Pattern,
		}
		if len(s.Fill.Color) > 0 {
			fill.StartColor = s.Fill.Color[0]
			fill.EndColor = s.Fill.Color[len(s.Fill.Color)-1]
		}
		style.Fill = fill
	}

	if style.IsZero() {
		return nil
	}
	return style
}

// toExcelizeStyle maps the neutral bundle back into an excelize style.
func toExcelizeStyle(style *sheetmerge.CellStyle) *excelize.Style {
	s := &excelize.Style{NumFmt: style.NumberFormatID}
	if style.CustomNumberFormat != "" {
		custom := style.CustomNumberFormat
		s.CustomNumFmt = &custom
	}

	if style.Font != nil {
		s.Font = &excelize.Font{
			Family: style.Font.Name,
			Size:   style.Font.Size,
			Bold:   style.Font.Bold,
			Italic: style.Font.Italic,
			Color:  style.Font.Color,
		}
	}
	if style.Alignment != nil {
		s.Alignment = &excelize.Alignment{
			Horizontal: style.Alignment.Horizontal,
			Vertical:   style.Alignment.Vertical,
			WrapText:   style.Alignment.WrapText,
		}
	}
	if style.Border != nil {
		edges := map[string]sheetmerge.BorderEdge{
			"left":   style.Border.Left,
			"right":  style.Border.Right,
			"top":    style.Border.Top,
			"bottom": style.Border.Bottom,
		}
		for _, side := range []string{"left", "right", "top", "bottom"} {
			edge := edges[side]
			if edge.IsZero() {
				continue
			}
			s.Border = append(s.Border, excelize.Border{
				Type:  side,
				Style: edge.Style,
				Color: edge.Color,
			})
		}
	}
	if style.Fill != nil {
		s.Fill = excelize.Fill{
			Type:    style.Fill.Type,
			Pattern: style.Fill.Pattern,
		}
		if style.Fill.StartColor != "" {
			s.Fill.Color = []string{style.Fill.StartColor}
			if style.Fill.EndColor != "" && style.Fill.EndColor != style.Fill.StartColor {
				s.Fill.Color = append(s.Fill.Color, style.Fill.EndColor)
			}
		}
	}

	return s
}
