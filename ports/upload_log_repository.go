package ports

import (
	"context"

	"resultdesk/domain/result"
)

// UploadLogRepository appends and lists upload audit events
type UploadLogRepository interface {
	Record(ctx context.Context, event result.UploadEvent) error
	ListRecent(ctx context.Context, limit int) ([]result.UploadEvent, error)
}
