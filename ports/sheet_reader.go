package ports

import (
	"context"

	"resultdesk/domain/result"
)

// SheetReader parses an uploaded spreadsheet into its first worksheet
type SheetReader interface {
	ReadFirstSheet(ctx context.Context, filename string, content []byte) (*result.RawSheet, error)
}
