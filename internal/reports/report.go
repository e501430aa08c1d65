package reports

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Bashar-1216/arabic-academic-proofreader/internal/engine"
)

// Report represents a generated report with its artifact storage reference.
type Report struct {
	ID               uuid.UUID `json:"id"`
	SessionID        uuid.UUID `json:"session_id"`
	DocumentID       uuid.UUID `json:"document_id"`
	Filename         string    `json:"filename"`
	StorageKey       string    `json:"storage_key"`
	SizeBytes        int64     `json:"size_bytes"`
	SuggestionsCount int       `json:"suggestions_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateCommand carries the inputs for report synthesis and registration.
// Result must be non-nil; Metadata may be nil when extraction produced none.
type CreateCommand struct {
	SessionID  uuid.UUID
	DocumentID uuid.UUID
	Result     *engine.ProofreadResult
	Metadata   *engine.FileMetadata
}

// Artifact is a scoped handle on a report's stored content. The caller owns
// Body and must close it on every path once the save action has been served.
type Artifact struct {
	Filename    string
	ContentType string
	SizeBytes   int64
	Body        io.ReadCloser
}
