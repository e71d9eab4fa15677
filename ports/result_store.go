package ports

import "resultdesk/domain/result"

// ResultStore holds the uploaded records of each class
type ResultStore interface {
	// Replace swaps the class's records wholesale
	Replace(class result.ClassLabel, records []result.RowRecord)
	// Records returns the class's records in upload order
	Records(class result.ClassLabel) []result.RowRecord
}
