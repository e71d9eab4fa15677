package result

import "strings"

// NormalizeRegistration trims and lowercases a registration number
func NormalizeRegistration(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FindByRegistration returns the first record whose value under regCol
// matches query, ignoring case and surrounding whitespace
func FindByRegistration(records []RowRecord, regCol, query string) (RowRecord, bool) {
	if regCol == "" {
		return RowRecord{}, false
	}
	want := NormalizeRegistration(query)
	if want == "" {
		return RowRecord{}, false
	}
	for _, record := range records {
		if NormalizeRegistration(record.Text(regCol)) == want {
			return record, true
		}
	}
	return RowRecord{}, false
}
