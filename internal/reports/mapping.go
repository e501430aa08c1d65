package reports

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/Bashar-1216/arabic-academic-proofreader/pkg/query"
	"github.com/Bashar-1216/arabic-academic-proofreader/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "reports", "r").
	Project("id", "ID").
	Project("session_id", "SessionID").
	Project("document_id", "DocumentID").
	Project("filename", "Filename").
	Project("storage_key", "StorageKey").
	Project("size_bytes", "SizeBytes").
	Project("suggestions_count", "SuggestionsCount").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for report queries.
// Nil fields are ignored; both use exact matching.
type Filters struct {
	DocumentID *uuid.UUID `json:"document_id,omitempty"`
	SessionID  *uuid.UUID `json:"session_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("DocumentID", f.DocumentID).
		WhereEquals("SessionID", f.SessionID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("document_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.DocumentID = &id
		}
	}
	if v := values.Get("session_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.SessionID = &id
		}
	}

	return f
}

func scanReport(s repository.Scanner) (Report, error) {
	var r Report
	err := s.Scan(
		&r.ID,
		&r.SessionID,
		&r.DocumentID,
		&r.Filename,
		&r.StorageKey,
		&r.SizeBytes,
		&r.SuggestionsCount,
		&r.CreatedAt,
	)
	return r, err
}
