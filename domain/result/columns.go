package result

import "strings"

// registrationAliases are normalized header spellings accepted as the
// registration-number column without falling back to the "reg" heuristic
var registrationAliases = map[string]bool{
	"registrationno":      true,
	"regno":               true,
	"reg_no":              true,
	"reg_number":          true,
	"registration no":     true,
	"reg no":              true,
	"registration_no":     true,
	"registration number": true,
	"registrationnumber":  true,
	"reg. no":             true,
	"reg.no":              true,
}

// infoMarkers flag family/section columns that never count as subjects
var infoMarkers = []string{"father", "mother", "section"}

// ColumnRoles is the classification of one upload's headers
type ColumnRoles struct {
	RegistrationCol string
	NameCol         string
	ClassCol        string
	InfoCols        map[string]bool
	SubjectCols     []string
}

// HasRegistration reports whether a registration column was resolved
func (r ColumnRoles) HasRegistration() bool {
	return r.RegistrationCol != ""
}

// IsInfo reports whether header is excluded from scoring
func (r ColumnRoles) IsInfo(header string) bool {
	return r.InfoCols[header]
}

// NormalizeHeader trims and lowercases a header for matching
func NormalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

// ClassifyColumns assigns a role to every header. Headers keep their original
// spelling in the result; matching is done on the normalized form.
func ClassifyColumns(headers []string) ColumnRoles {
	roles := ColumnRoles{
		RegistrationCol: findRegistrationColumn(headers),
		NameCol:         findColumn(headers, "name"),
		ClassCol:        findColumn(headers, "class"),
		InfoCols:        make(map[string]bool),
	}

	for _, col := range []string{roles.RegistrationCol, roles.NameCol, roles.ClassCol} {
		if col != "" {
			roles.InfoCols[col] = true
		}
	}

	for _, header := range headers {
		norm := NormalizeHeader(header)
		for _, marker := range infoMarkers {
			if strings.Contains(norm, marker) {
				roles.InfoCols[header] = true
				break
			}
		}
	}

	for _, header := range headers {
		if !roles.InfoCols[header] {
			roles.SubjectCols = append(roles.SubjectCols, header)
		}
	}

	return roles
}

// findRegistrationColumn prefers a known alias and otherwise accepts the only
// header containing "reg". Zero or several candidates resolve to none.
func findRegistrationColumn(headers []string) string {
	for _, header := range headers {
		if registrationAliases[NormalizeHeader(header)] {
			return header
		}
	}

	var candidate string
	count := 0
	for _, header := range headers {
		if strings.Contains(NormalizeHeader(header), "reg") {
			candidate = header
			count++
		}
	}
	if count == 1 {
		return candidate
	}
	return ""
}

// findColumn returns the first exact normalized match for target, then the
// first header containing it
func findColumn(headers []string, target string) string {
	for _, header := range headers {
		if NormalizeHeader(header) == target {
			return header
		}
	}
	for _, header := range headers {
		if strings.Contains(NormalizeHeader(header), target) {
			return header
		}
	}
	return ""
}
