package sheetmerge

// Config represents configuration for the merge engine
type Config struct {
	OutputSheetTitle string // Title of the single output sheet (default: "Merged")
	ProgressInterval int    // Rows between progress reports while copying (default: 100)
}

// DefaultConfig returns the configuration used when none is provided.
func DefaultConfig() *Config {
	return &Config{
		OutputSheetTitle: "Merged",
		ProgressInterval: 100,
	}
}
