package excel

// Config holds configuration for the Excel provider
type Config struct {
	Password string // Password for protected workbooks, empty for none
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	return nil
}
