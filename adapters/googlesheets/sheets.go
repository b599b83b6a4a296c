package googlesheets

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	sheetmerge "github.com/sheetops/go-sheetmerge"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Provider implements the sheetmerge.Provider interface for Google Sheets.
// The path handed to Open is a spreadsheet ID; Save creates a new spreadsheet
// whose title is the given path and stores its ID in the workbook.
type Provider struct {
	ctx     context.Context
	service *sheets.Service
}

// NewProvider creates a Google Sheets provider with the given client options.
// API calls issued by its workbooks use ctx.
func NewProvider(ctx context.Context, opts ...option.ClientOption) (*Provider, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Provider{ctx: ctx, service: service}, nil
}

// Open fetches the spreadsheet's full grid into memory. The remote document
// is never mutated; Save always produces a new spreadsheet.
func (p *Provider) Open(spreadsheetID string, mode sheetmerge.OpenMode) (sheetmerge.Workbook, error) {
	resp, err := p.service.Spreadsheets.Get(spreadsheetID).
		IncludeGridData(true).Context(p.ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get spreadsheet %s: %w", spreadsheetID, err)
	}

	wb := &workbook{provider: p, spreadsheetID: spreadsheetID}
	for _, apiSheet := range resp.Sheets {
		gs := newGridSheet(apiSheet.Properties.Title)
		for _, grid := range apiSheet.Data {
			for r, rowData := range grid.RowData {
				for c, cell := range rowData.Values {
					data := cellFromAPI(cell)
					if data.Value == nil && data.Style == nil {
						continue
					}
					gs.set(int(grid.StartRow)+r+1, int(grid.StartColumn)+c+1, data)
				}
			}
			for c, meta := range grid.ColumnMetadata {
				if meta != nil && meta.PixelSize > 0 {
					gs.widths[int(grid.StartColumn)+c+1] = pixelsToWidth(meta.PixelSize)
				}
			}
		}
		wb.sheets = append(wb.sheets, gs)
	}

	return wb, nil
}

// Create returns a new empty in-memory workbook.
func (p *Provider) Create() (sheetmerge.Workbook, error) {
	return &workbook{provider: p}, nil
}

type workbook struct {
	provider      *Provider
	spreadsheetID string
	sheets        []*gridSheet
}

func (w *workbook) SheetNames() []string {
	names := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		names[i] = s.title
	}
	return names
}

func (w *workbook) Sheet(name string) (sheetmerge.Sheet, error) {
	for _, s := range w.sheets {
		if s.title == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("sheet %q: %w", name, sheetmerge.ErrSheetNotFound)
}

func (w *workbook) ActiveSheet() (sheetmerge.Sheet, error) {
	if len(w.sheets) == 0 {
		return nil, sheetmerge.ErrSheetNotFound
	}
	return w.sheets[0], nil
}

func (w *workbook) AddSheet(name string) (sheetmerge.Sheet, error) {
	gs := newGridSheet(name)
	w.sheets = append(w.sheets, gs)
	return gs, nil
}

// Save creates a new spreadsheet titled path from the in-memory grid and
// records its ID on the workbook.
func (w *workbook) Save(path string) error {
	doc := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: path},
	}
	for _, gs := range w.sheets {
		doc.Sheets = append(doc.Sheets, gs.toAPI())
	}

	resp, err := w.provider.service.Spreadsheets.Create(doc).
		Context(w.provider.ctx).Do()
	if err != nil {
		return fmt.Errorf("create spreadsheet %q: %w", path, err)
	}
	w.spreadsheetID = resp.SpreadsheetId
	return nil
}

func (w *workbook) Close() error {
	w.sheets = nil
	return nil
}

// SpreadsheetID returns the remote document id: the opened spreadsheet's, or
// the created one's after Save.
func (w *workbook) SpreadsheetID() string {
	return w.spreadsheetID
}

// gridSheet is a sparse in-memory sheet.
type gridSheet struct {
	title  string
	cells  map[int]map[int]sheetmerge.CellData
	widths map[int]float64
	maxRow int
	maxCol int
}

func newGridSheet(title string) *gridSheet {
	return &gridSheet{
		title:  title,
		cells:  make(map[int]map[int]sheetmerge.CellData),
		widths: make(map[int]float64),
	}
}

func (s *gridSheet) set(row, col int, data sheetmerge.CellData) {
	if s.cells[row] == nil {
		s.cells[row] = make(map[int]sheetmerge.CellData)
	}
	s.cells[row][col] = data
	if row > s.maxRow {
		s.maxRow = row
	}
	if col > s.maxCol {
		s.maxCol = col
	}
}

func (s *gridSheet) Title() string { return s.title }
func (s *gridSheet) MaxRow() int   { return s.maxRow }
func (s *gridSheet) MaxCol() int   { return s.maxCol }

func (s *gridSheet) Cell(row, col int) (sheetmerge.CellData, error) {
	if row < 1 || col < 1 {
		return sheetmerge.CellData{}, fmt.Errorf("invalid cell coordinates %d,%d", row, col)
	}
	return s.cells[row][col], nil
}

func (s *gridSheet) SetCell(row, col int, data sheetmerge.CellData) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("invalid cell coordinates %d,%d", row, col)
	}
	s.set(row, col, data)
	return nil
}

func (s *gridSheet) ColumnWidth(col int) (float64, bool) {
	width, ok := s.widths[col]
	return width, ok
}

func (s *gridSheet) SetColumnWidth(col int, width float64) error {
	s.widths[col] = width
	if col > s.maxCol {
		s.maxCol = col
	}
	return nil
}

// toAPI renders the sheet as API grid data for Spreadsheets.Create.
func (s *gridSheet) toAPI() *sheets.Sheet {
	grid := &sheets.GridData{}
	for row := 1; row <= s.maxRow; row++ {
		rowData := &sheets.RowData{}
		for col := 1; col <= s.maxCol; col++ {
			rowData.Values = append(rowData.Values, cellToAPI(s.cells[row][col]))
		}
		grid.RowData = append(grid.RowData, rowData)
	}
	for col := 1; col <= s.maxCol; col++ {
		meta := &sheets.DimensionProperties{}
		if width, ok := s.widths[col]; ok {
			meta.PixelSize = widthToPixels(width)
		}
		grid.ColumnMetadata = append(grid.ColumnMetadata, meta)
	}

	return &sheets.Sheet{
		Properties: &sheets.SheetProperties{Title: s.title},
		Data:       []*sheets.GridData{grid},
	}
}

// cellFromAPI converts an API cell into the neutral snapshot.
func cellFromAPI(cell *sheets.CellData) sheetmerge.CellData {
	if cell == nil {
		return sheetmerge.CellData{}
	}

	data := sheetmerge.CellData{}
	if v := cell.EffectiveValue; v != nil {
		switch {
		case v.NumberValue != nil:
			num := *v.NumberValue
			if intVal := int64(num); float64(intVal) == num {
				data.Value = intVal
			} else {
				data.Value = num
			}
		case v.StringValue != nil:
			data.Value = *v.StringValue
		case v.BoolValue != nil:
			data.Value = *v.BoolValue
		}
	}
	data.Style = styleFromAPI(cell.UserEnteredFormat)
	return data
}

// cellToAPI converts the neutral snapshot into an API cell.
func cellToAPI(data sheetmerge.CellData) *sheets.CellData {
	cell := &sheets.CellData{}

	if data.Value != nil {
		value := &sheets.ExtendedValue{}
		switch v := data.Value.(type) {
		case string:
			value.StringValue = &v
		case bool:
			value.BoolValue = &v
		case float64:
			value.NumberValue = &v
		case int64:
			num := float64(v)
			value.NumberValue = &num
		case int:
			num := float64(v)
			value.NumberValue = &num
		default:
			s := sheetmerge.AsString(v, "")
			value.StringValue = &s
		}
		cell.UserEnteredValue = value
	}

	if data.HasStyle() {
		cell.UserEnteredFormat = styleToAPI(data.Style)
	}

	return cell
}

func styleFromAPI(format *sheets.CellFormat) *sheetmerge.CellStyle {
	if format == nil {
		return nil
	}

	style := &sheetmerge.CellStyle{}

	if tf := format.TextFormat; tf != nil {
		style.Font = &sheetmerge.FontStyle{
			Name:   tf.FontFamily,
			Size:   float64(tf.FontSize),
			Bold:   tf.Bold,
			Italic: tf.Italic,
			Color:  colorToHex(tf.ForegroundColor),
		}
	}
	if format.HorizontalAlignment != "" || format.VerticalAlignment != "" ||
		format.WrapStrategy == "WRAP" {
		style.Alignment = &sheetmerge.AlignmentStyle{
			Horizontal: horizontalFromAPI(format.HorizontalAlignment),
			Vertical:   verticalFromAPI(format.VerticalAlignment),
			WrapText:   format.WrapStrategy == "WRAP",
		}
	}
	if b := format.Borders; b != nil {
		style.Border = &sheetmerge.BorderStyle{
			Left:   borderEdgeFromAPI(b.Left),
			Right:  borderEdgeFromAPI(b.Right),
			Top:    borderEdgeFromAPI(b.Top),
			Bottom: borderEdgeFromAPI(b.Bottom),
		}
	}
	if format.BackgroundColor != nil {
		style.Fill = &sheetmerge.FillStyle{
			Type:       "pattern",
			Pattern:    1,
			StartColor: colorToHex(format.BackgroundColor),
		}
	}
	if nf := format.NumberFormat; nf != nil && nf.Pattern != "" {
		style.CustomNumberFormat = nf.Pattern
	}

	if style.IsZero() {
		return nil
	}
	return style
}

func styleToAPI(style *sheetmerge.CellStyle) *sheets.CellFormat {
	format := &sheets.CellFormat{}

	if f := style.Font; f != nil {
		format.TextFormat = &sheets.TextFormat{
			FontFamily:      f.Name,
			FontSize:        int64(f.Size),
			Bold:            f.Bold,
			Italic:          f.Italic,
			ForegroundColor: hexToColor(f.Color),
		}
	}
	if a := style.Alignment; a != nil {
		format.HorizontalAlignment = horizontalToAPI(a.Horizontal)
		format.VerticalAlignment = verticalToAPI(a.Vertical)
		if a.WrapText {
			format.WrapStrategy = "WRAP"
		}
	}
	if b := style.Border; b != nil {
		format.Borders = &sheets.Borders{
			Left:   borderEdgeToAPI(b.Left),
			Right:  borderEdgeToAPI(b.Right),
			Top:    borderEdgeToAPI(b.Top),
			Bottom: borderEdgeToAPI(b.Bottom),
		}
	}
	if f := style.Fill; f != nil && f.StartColor != "" {
		format.BackgroundColor = hexToColor(f.StartColor)
	}
	if style.CustomNumberFormat != "" {
		format.NumberFormat = &sheets.NumberFormat{
			Type:    "NUMBER",
			Pattern: style.CustomNumberFormat,
		}
	}

	return format
}

// borderStyles pairs API border style names with the xlsx border style codes
// the excel adapter uses, so bundles survive a cross-backend copy.
var borderStyles = []struct {
	api  string
	code int
}{
	{"SOLID", 1},
	{"SOLID_MEDIUM", 2},
	{"DASHED", 3},
	{"DOTTED", 4},
	{"SOLID_THICK", 5},
	{"DOUBLE", 6},
}

func borderEdgeFromAPI(b *sheets.Border) sheetmerge.BorderEdge {
	if b == nil || b.Style == "" || b.Style == "NONE" {
		return sheetmerge.BorderEdge{}
	}
	edge := sheetmerge.BorderEdge{Style: 1, Color: colorToHex(b.Color)}
	for _, bs := range borderStyles {
		if bs.api == b.Style {
			edge.Style = bs.code
			break
		}
	}
	return edge
}

func borderEdgeToAPI(edge sheetmerge.BorderEdge) *sheets.Border {
	if edge.IsZero() {
		return nil
	}
	border := &sheets.Border{Style: "SOLID", Color: hexToColor(edge.Color)}
	for _, bs := range borderStyles {
		if bs.code == edge.Style {
			border.Style = bs.api
			break
		}
	}
	return border
}

func horizontalFromAPI(h string) string {
	return strings.ToLower(h)
}

func horizontalToAPI(h string) string {
	return strings.ToUpper(h)
}

func verticalFromAPI(v string) string {
	if v == "MIDDLE" {
		return "center"
	}
	return strings.ToLower(v)
}

func verticalToAPI(v string) string {
	if v == "center" {
		return "MIDDLE"
	}
	return strings.ToUpper(v)
}

// colorToHex renders an API color as RRGGBB hex.
func colorToHex(c *sheets.Color) string {
	if c == nil {
		return ""
	}
	r := int(math.Round(c.Red * 255))
	g := int(math.Round(c.Green * 255))
	b := int(math.Round(c.Blue * 255))
	return fmt.Sprintf("%02X%02X%02X", r, g, b)
}

// hexToColor parses RRGGBB or AARRGGBB hex into an API color.
func hexToColor(hex string) *sheets.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 8 {
		hex = hex[2:] // drop alpha
	}
	if len(hex) != 6 {
		return nil
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil
	}
	return &sheets.Color{
		Red:   float64(value>>16&0xFF) / 255,
		Green: float64(value>>8&0xFF) / 255,
		Blue:  float64(value&0xFF) / 255,
		Alpha: 1,
	}
}

// widthToPixels converts xlsx character width to pixels (7 px per character
// plus cell padding, the conversion Excel itself uses).
func widthToPixels(width float64) int64 {
	return int64(math.Round(width*7 + 5))
}

func pixelsToWidth(pixels int64) float64 {
	return math.Max(0, float64(pixels-5)/7)
}
