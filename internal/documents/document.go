// Package documents implements the source-document registry. Every file
// accepted into a proofreading session is recorded here with its original
// bytes in blob storage, so a workflow can be rerun against the same source
// after the transient session is gone.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// Document statuses.
const (
	StatusReceived  = "received"
	StatusExtracted = "extracted"
)

// Document represents a registered source document with its metadata and
// blob storage reference.
type Document struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count"`
	StorageKey  string    `json:"storage_key"`
	Status      string    `json:"status"`
	UploadedAt  time.Time `json:"uploaded_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a new document. Data
// holds the raw file bytes; the PDF page count is extracted during creation
// and stored as NULL for non-PDF files.
type CreateCommand struct {
	Data        []byte
	Filename    string
	ContentType string
}
