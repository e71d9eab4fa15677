package excel

// ReaderConfig holds limits for parsing uploaded spreadsheets
type ReaderConfig struct {
	// MaxRows caps the number of sheet rows (header included); 0 disables the cap
	MaxRows int `json:"max_rows"`
}

// DefaultReaderConfig returns sensible defaults for result uploads
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		MaxRows: 20000,
	}
}
