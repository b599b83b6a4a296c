package sheetmerge

import "errors"

var (
	// ErrSheetNotFound is returned when a named sheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrCancelled is returned when an operation observes its cancel signal.
	// It marks a cooperative abort, not a failure.
	ErrCancelled = errors.New("operation cancelled")

	// ErrNoProvider is returned when an engine is built without a provider.
	ErrNoProvider = errors.New("spreadsheet provider is required")

	// ErrEmptySelection is returned when no columns were selected.
	ErrEmptySelection = errors.New("no columns selected")

	// ErrUnknownFile is returned when a selection or reference map addresses
	// a file id outside the working set.
	ErrUnknownFile = errors.New("unknown file id")

	// ErrReferenceRequired is returned when a column name is selected from
	// two or more files without a reference map entry naming the file whose
	// copy drives row alignment.
	ErrReferenceRequired = errors.New("reference column required for duplicate column name")

	// ErrAmbiguousReference is returned when one file's selected columns are
	// tied to more than one reference name, which would leave its row order
	// undefined.
	ErrAmbiguousReference = errors.New("multiple reference columns selected for one file")
)
