package excel

import "errors"

var (
	// ErrWorkbookClosed is returned when a workbook is used after Close
	ErrWorkbookClosed = errors.New("workbook is closed")

	// ErrInvalidCoordinates is returned for non-positive row or column indexes
	ErrInvalidCoordinates = errors.New("invalid cell coordinates")
)
