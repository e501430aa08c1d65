package sessions

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Bashar-1216/arabic-academic-proofreader/internal/documents"
	"github.com/Bashar-1216/arabic-academic-proofreader/internal/engine"
	"github.com/Bashar-1216/arabic-academic-proofreader/internal/reports"
	"github.com/Bashar-1216/arabic-academic-proofreader/internal/workflow"
	"github.com/Bashar-1216/arabic-academic-proofreader/pkg/lifecycle"
)

// Extensions the engine can extract text from, mirrored client-side so
// unsupported files are rejected before any bytes leave the service.
var supportedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".doc":  {},
}

const (
	idleTTL       = 2 * time.Hour
	sweepInterval = 10 * time.Minute
)

// System defines the public contract for session domain operations.
type System interface {
	Handler(reports reports.System, maxUploadSize int64) *Handler

	Start(lc *lifecycle.Coordinator) error
	Create(ctx context.Context, cmd CreateCommand) (*Session, error)
	Find(id uuid.UUID) (*Session, error)
	Delete(id uuid.UUID) error
}

// CreateCommand carries the data needed to open a session: the selected
// file's name, declared content type, and raw bytes.
type CreateCommand struct {
	Filename    string
	ContentType string
	Data        []byte
}

type registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	base        context.Context
	engine      *engine.Client
	documents   documents.System
	logger      *slog.Logger
	maxFileSize int64
}

// New creates the in-memory session registry. Sessions are transient
// orchestration state: documents and reports persist, sessions do not.
func New(
	base context.Context,
	eng *engine.Client,
	docs documents.System,
	logger *slog.Logger,
	maxFileSize int64,
) System {
	return &registry{
		sessions:    make(map[uuid.UUID]*Session),
		base:        base,
		engine:      eng,
		documents:   docs,
		logger:      logger.With("system", "sessions"),
		maxFileSize: maxFileSize,
	}
}

func (r *registry) Handler(reports reports.System, maxUploadSize int64) *Handler {
	return NewHandler(r, reports, r.logger, maxUploadSize)
}

// Start registers a shutdown-aware sweep that discards sessions idle longer
// than the TTL.
func (r *registry) Start(lc *lifecycle.Coordinator) error {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-lc.Context().Done():
				return
			case <-ticker.C:
				r.sweep()
			}
		}
	}()
	return nil
}

// Create validates the file, registers the document, opens a session, and
// starts the upload invoker.
func (r *registry) Create(ctx context.Context, cmd CreateCommand) (*Session, error) {
	ext := strings.ToLower(filepath.Ext(cmd.Filename))
	if _, ok := supportedExtensions[ext]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	if int64(len(cmd.Data)) > r.maxFileSize {
		return nil, ErrFileTooLarge
	}
	if len(cmd.Data) == 0 {
		return nil, ErrInvalidFile
	}

	doc, err := r.documents.Create(ctx, documents.CreateCommand{
		Data:        cmd.Data,
		Filename:    cmd.Filename,
		ContentType: cmd.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("register document: %w", err)
	}

	file := workflow.SelectedFile{
		Name:        cmd.Filename,
		SizeBytes:   int64(len(cmd.Data)),
		ContentType: doc.ContentType,
	}

	sess := newSession(r.base, r.engine, r.documents, r.logger, doc.ID, file)

	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()

	if err := sess.StartUpload(cmd.Data); err != nil {
		return nil, err
	}

	r.logger.Info(
		"session opened",
		"session_id", sess.ID,
		"document_id", doc.ID,
		"filename", cmd.Filename,
	)

	return sess, nil
}

func (r *registry) Find(id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

func (r *registry) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, id)

	r.logger.Info("session discarded", "session_id", id)
	return nil
}

func (r *registry) sweep() {
	cutoff := time.Now().Add(-idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, sess := range r.sessions {
		if sess.UpdatedAt().Before(cutoff) {
			if snap := sess.Snapshot(); !snap.InFlight() {
				delete(r.sessions, id)
				r.logger.Info("idle session swept", "session_id", id)
			}
		}
	}
}
