package result

import (
	"fmt"

	"resultdesk/domain/core"
)

// UploadSummary reports an accepted upload back to the administrator
type UploadSummary struct {
	ID                 core.UploadID  `json:"id"`
	Class              ClassLabel     `json:"class"`
	Filename           string         `json:"filename"`
	SheetName          string         `json:"sheet_name"`
	RecordCount        int            `json:"record_count"`
	Columns            []string       `json:"columns"`
	RegistrationColumn string         `json:"registration_column"`
	Warnings           []string       `json:"warnings,omitempty"`
	UploadedAt         core.Timestamp `json:"uploaded_at"`
}

// Message is the status line shown after a successful upload
func (s UploadSummary) Message() string {
	return fmt.Sprintf("Result file for Class %s uploaded successfully. Total records: %d", s.Class, s.RecordCount)
}

// Event returns the audit projection of the upload
func (s UploadSummary) Event() UploadEvent {
	columns := make([]string, len(s.Columns))
	copy(columns, s.Columns)
	return UploadEvent{
		ID:                 s.ID,
		Class:              s.Class,
		Filename:           s.Filename,
		RecordCount:        s.RecordCount,
		Columns:            columns,
		RegistrationColumn: s.RegistrationColumn,
		UploadedAt:         s.UploadedAt,
	}
}

// UploadEvent is the audit-log entry for one upload. It never carries cell data.
type UploadEvent struct {
	ID                 core.UploadID  `json:"id"`
	Class              ClassLabel     `json:"class"`
	Filename           string         `json:"filename"`
	RecordCount        int            `json:"record_count"`
	Columns            []string       `json:"columns"`
	RegistrationColumn string         `json:"registration_column"`
	UploadedAt         core.Timestamp `json:"uploaded_at"`
}

// ClassSummary describes what is currently stored for one class
type ClassSummary struct {
	Class              ClassLabel `json:"class"`
	RecordCount        int        `json:"record_count"`
	Columns            []string   `json:"columns"`
	RegistrationColumn string     `json:"registration_column"`
	Searchable         bool       `json:"searchable"`
	PassCount          int        `json:"pass_count"`
	FailCount          int        `json:"fail_count"`
	MeanPercentage     float64    `json:"mean_percentage"`
	MedianPercentage   float64    `json:"median_percentage"`
	MinPercentage      float64    `json:"min_percentage"`
	MaxPercentage      float64    `json:"max_percentage"`
}
