package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"resultdesk/domain/core"
	"resultdesk/domain/result"
	"resultdesk/internal"
	"resultdesk/internal/errors"
	"resultdesk/ports"
)

// UploadRequest is one administrator upload
type UploadRequest struct {
	Class    result.ClassLabel
	Filename string
	Content  io.Reader
}

// IngestionService validates uploads, parses them and replaces the class's records
type IngestionService struct {
	reader    ports.SheetReader
	store     ports.ResultStore
	uploadLog ports.UploadLogRepository
	classes   []result.ClassLabel
	maxBytes  int64
	logger    *internal.Logger
}

// NewIngestionService creates an ingestion service. uploadLog may be nil when
// the audit log is disabled; maxBytes <= 0 disables the size limit.
func NewIngestionService(reader ports.SheetReader, store ports.ResultStore, uploadLog ports.UploadLogRepository, classes []result.ClassLabel, maxBytes int64, logger *internal.Logger) *IngestionService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &IngestionService{
		reader:    reader,
		store:     store,
		uploadLog: uploadLog,
		classes:   classes,
		maxBytes:  maxBytes,
		logger:    logger.With("IngestionService"),
	}
}

// Ingest parses req and, on success, replaces the records of req.Class.
// On any error the stored records are left untouched.
func (s *IngestionService) Ingest(ctx context.Context, req UploadRequest) (*result.UploadSummary, error) {
	class := result.ClassLabel(strings.TrimSpace(string(req.Class)))
	if !containsClass(s.classes, class) {
		return nil, errors.InvalidInput(fmt.Sprintf("Unknown class %q. Choose one of: %s.", class, joinClasses(s.classes)))
	}
	if req.Content == nil || strings.TrimSpace(req.Filename) == "" {
		return nil, errors.InvalidInput("Please choose an Excel file first.")
	}
	filename := filepath.Base(strings.TrimSpace(req.Filename))

	content, err := s.readAll(req.Content)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, errors.EmptyFile()
	}

	sheet, err := s.reader.ReadFirstSheet(ctx, filename, content)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Wrap(ctxErr, "upload cancelled")
		}
		s.logger.Warn("Could not parse %q for Class %s: %v", filename, class, err)
		return nil, errors.ParseError(err)
	}

	records, columns, err := result.BuildRecords(*sheet)
	if err != nil {
		if stderrors.Is(err, result.ErrEmptySheet) {
			return nil, errors.EmptyFile()
		}
		return nil, errors.ParseError(err)
	}

	roles := result.ClassifyColumns(columns)
	var warnings []string
	if !roles.HasRegistration() {
		warnings = append(warnings, fmt.Sprintf("No registration number column was detected. Students of Class %s cannot be found until the file is fixed.", class))
		s.logger.Warn("No registration column in %q for Class %s (columns: %v)", filename, class, columns)
	}

	s.store.Replace(class, records)

	summary := &result.UploadSummary{
		ID:                 core.NewUploadID(),
		Class:              class,
		Filename:           filename,
		SheetName:          sheet.Name,
		RecordCount:        len(records),
		Columns:            columns,
		RegistrationColumn: roles.RegistrationCol,
		Warnings:           warnings,
		UploadedAt:         core.Now(),
	}
	s.logger.Info("%s (file %q, upload %s)", summary.Message(), filename, summary.ID)

	if s.uploadLog != nil {
		if err := s.uploadLog.Record(ctx, summary.Event()); err != nil {
			s.logger.Error("Failed to record upload %s in audit log: %v", summary.ID, err)
		}
	}

	return summary, nil
}

// RecentUploads lists audit events, newest first. Without an audit log it
// returns an empty list.
func (s *IngestionService) RecentUploads(ctx context.Context, limit int) ([]result.UploadEvent, error) {
	if s.uploadLog == nil {
		return []result.UploadEvent{}, nil
	}
	events, err := s.uploadLog.ListRecent(ctx, limit)
	if err != nil {
		return nil, errors.DatabaseError("Could not load upload history.", err)
	}
	return events, nil
}

// AuditEnabled reports whether uploads are being recorded
func (s *IngestionService) AuditEnabled() bool {
	return s.uploadLog != nil
}

func (s *IngestionService) readAll(r io.Reader) ([]byte, error) {
	if s.maxBytes <= 0 {
		content, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.ReadError(err)
		}
		return content, nil
	}

	content, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, errors.ReadError(err)
	}
	if int64(len(content)) > s.maxBytes {
		return nil, errors.InvalidInput(fmt.Sprintf("File is too large. The limit is %s.", formatSize(s.maxBytes)))
	}
	return content, nil
}

func formatSize(n int64) string {
	const mb = 1 << 20
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%d MB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}

func containsClass(classes []result.ClassLabel, class result.ClassLabel) bool {
	for _, c := range classes {
		if c == class {
			return true
		}
	}
	return false
}

func joinClasses(classes []result.ClassLabel) string {
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
