package result

import (
	"math"
	"strconv"
	"strings"
)

// Status is the pass/fail verdict on a marksheet
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// TotalPlaceholder stands in for the denominator when no subject was scored
const TotalPlaceholder = "—"

// ScoringPolicy controls subject maxima and the pass mark
type ScoringPolicy struct {
	// AssumedMax is the maximum applied to every subject column
	AssumedMax float64
	// PassPercentage is the lowest rounded percentage that passes
	PassPercentage float64
	// MaxColumnSuffix, when set, marks columns such as "Maths_Max" that carry
	// the maximum of the subject they name instead of being subjects themselves
	MaxColumnSuffix string
}

// DefaultScoringPolicy returns max 100 per subject and a 33% pass mark
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		AssumedMax:     100,
		PassPercentage: 33,
	}
}

// SubjectScore is one scored row of a marksheet
type SubjectScore struct {
	Subject  string  `json:"subject"`
	MaxMarks float64 `json:"max_marks"`
	Obtained float64 `json:"obtained"`
}

// Marksheet is the projection of one record for display and printing
type Marksheet struct {
	Name           string         `json:"name"`
	Class          string         `json:"class"`
	RegistrationNo string         `json:"registration_no"`
	Subjects       []SubjectScore `json:"subjects"`
	TotalObtained  float64        `json:"total_obtained"`
	TotalMax       float64        `json:"total_max"`
	Percentage     float64        `json:"percentage"`
	Status         Status         `json:"status"`
}

// PercentageText renders the percentage with two decimals
func (m Marksheet) PercentageText() string {
	return strconv.FormatFloat(m.Percentage, 'f', 2, 64)
}

// TotalText renders "obtained/max", with a placeholder max when nothing was scored
func (m Marksheet) TotalText() string {
	if m.TotalMax == 0 {
		return FormatNumber(m.TotalObtained) + "/" + TotalPlaceholder
	}
	return FormatNumber(m.TotalObtained) + "/" + FormatNumber(m.TotalMax)
}

// BuildMarksheet projects record into a marksheet using roles resolved for its
// class. Name falls back to blank and class to the class label.
func BuildMarksheet(record RowRecord, roles ColumnRoles, class ClassLabel, policy ScoringPolicy) Marksheet {
	m := Marksheet{
		Name:           record.Text(roles.NameCol),
		Class:          record.Text(roles.ClassCol),
		RegistrationNo: record.Text(roles.RegistrationCol),
		Subjects:       []SubjectScore{},
	}
	if strings.TrimSpace(m.Class) == "" {
		m.Class = class.String()
	}

	maxOverrides := make(map[string]float64)
	isMaxColumn := func(header string) bool {
		return policy.MaxColumnSuffix != "" && strings.HasSuffix(header, policy.MaxColumnSuffix)
	}
	for _, header := range roles.SubjectCols {
		if !isMaxColumn(header) {
			continue
		}
		value, _ := record.Get(header)
		if v, ok := value.Numeric(); ok && v > 0 {
			maxOverrides[strings.TrimSuffix(header, policy.MaxColumnSuffix)] = v
		}
	}

	for _, header := range roles.SubjectCols {
		if isMaxColumn(header) {
			continue
		}
		value, ok := record.Get(header)
		if !ok {
			continue
		}
		obtained, ok := value.Numeric()
		if !ok {
			continue
		}
		maxMarks := policy.AssumedMax
		if override, ok := maxOverrides[header]; ok {
			maxMarks = override
		}
		m.Subjects = append(m.Subjects, SubjectScore{
			Subject:  header,
			MaxMarks: maxMarks,
			Obtained: obtained,
		})
		m.TotalObtained += obtained
		m.TotalMax += maxMarks
	}

	m.Percentage = RoundPercentage(m.TotalObtained, m.TotalMax)
	m.Status = StatusFor(m.Percentage, policy)
	return m
}

// RoundPercentage returns obtained/max as a percentage rounded to two
// decimals, or 0 when max is 0
func RoundPercentage(obtained, max float64) float64 {
	if max == 0 {
		return 0
	}
	return math.Round(obtained/max*100*100) / 100
}

// StatusFor applies the pass mark to a rounded percentage
func StatusFor(percentage float64, policy ScoringPolicy) Status {
	if percentage < policy.PassPercentage {
		return StatusFail
	}
	return StatusPass
}
