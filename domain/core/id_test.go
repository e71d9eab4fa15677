package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id == "" {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestNewUploadIDIsUUID tests that upload IDs are valid UUIDs
func TestNewUploadIDIsUUID(t *testing.T) {
	id := NewUploadID()
	if _, err := uuid.Parse(id.String()); err != nil {
		t.Errorf("Expected UUID, got %q: %v", id, err)
	}
}

// TestTimestampJSON tests RFC3339 encoding of timestamps
func TestTimestampJSON(t *testing.T) {
	ts := NewTimestamp(time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC))

	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("Error marshaling: %v", err)
	}
	if string(data) != `"2026-03-14T09:30:00Z"` {
		t.Errorf("Unexpected JSON: %s", data)
	}
}
