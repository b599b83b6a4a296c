package googlesheets

// Config holds configuration for the Google Sheets provider
type Config struct {
	// Scope overrides the OAuth scope requested by the auth helpers.
	// Defaults to the full spreadsheets scope.
	Scope string
}
