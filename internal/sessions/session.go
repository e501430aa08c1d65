// Package sessions implements the live workflow session domain. A session
// owns one workflow state machine and drives the three remote invokers
// (upload, analyze, proofread) against the engine, applying their outcomes
// as state events. Invokers run asynchronously on the service's base context:
// once issued, a call runs to completion and its result is applied even if
// the session's text has changed in the meantime. That staleness is the
// documented contract, not an oversight.
package sessions

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Bashar-1216/arabic-academic-proofreader/internal/documents"
	"github.com/Bashar-1216/arabic-academic-proofreader/internal/engine"
	"github.com/Bashar-1216/arabic-academic-proofreader/internal/workflow"
)

// Session is one user's workflow instance. All state access goes through the
// mutex; transitions go through workflow.Reduce so the state machine remains
// the single authority on what each event may change.
type Session struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	CreatedAt  time.Time

	mu        sync.Mutex
	state     workflow.State
	updatedAt time.Time

	engine    *engine.Client
	documents documents.System
	logger    *slog.Logger

	// base outlives any single HTTP request: remote calls support no
	// cancellation, so they are never bound to a request context.
	base context.Context
}

func newSession(
	base context.Context,
	eng *engine.Client,
	docs documents.System,
	logger *slog.Logger,
	documentID uuid.UUID,
	file workflow.SelectedFile,
) *Session {
	now := time.Now()
	state := workflow.Reduce(workflow.NewState(), workflow.SelectFile{File: file})

	return &Session{
		ID:         uuid.New(),
		DocumentID: documentID,
		CreatedAt:  now,
		state:      state,
		updatedAt:  now,
		engine:     eng,
		documents:  docs,
		logger:     logger,
		base:       base,
	}
}

// Snapshot returns a copy of the current workflow state.
func (s *Session) Snapshot() workflow.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// UpdatedAt returns the time of the last state transition.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

func (s *Session) apply(ev workflow.Event) workflow.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = workflow.Reduce(s.state, ev)
	s.updatedAt = time.Now()
	return s.state
}

// StartUpload issues the upload invocation for the selected file. Returns
// ErrUploadInFlight when an upload is already running: the request is
// ignored, not queued.
func (s *Session) StartUpload(data []byte) error {
	s.mu.Lock()
	if s.state.Uploading {
		s.mu.Unlock()
		return ErrUploadInFlight
	}
	if s.state.File == nil {
		s.mu.Unlock()
		return ErrNoFile
	}
	file := *s.state.File
	s.state = workflow.Reduce(s.state, workflow.UploadStarted{})
	s.updatedAt = time.Now()
	s.mu.Unlock()

	go s.runUpload(file, data)
	return nil
}

func (s *Session) runUpload(file workflow.SelectedFile, data []byte) {
	extraction, err := s.engine.Upload(s.base, file.Name, file.ContentType, data, func(percent int) {
		s.apply(workflow.UploadProgressed{Percent: percent})
	})
	if err != nil {
		s.logger.Error("upload failed", "session_id", s.ID, "filename", file.Name, "error", err)
		s.apply(workflow.UploadFailed{Message: engine.Message(err)})
		return
	}

	state := s.apply(workflow.UploadSucceeded{
		Text:     extraction.Text,
		Metadata: extraction.Metadata,
	})

	if err := s.documents.MarkExtracted(s.base, s.DocumentID); err != nil {
		s.logger.Warn("document status update failed", "document_id", s.DocumentID, "error", err)
	}

	// Analysis rides on upload success but never feeds back into it: its
	// failure is logged and the upload's stage transition stands.
	s.startAnalyze(state.Text)
}

// StartAnalyze triggers the analysis invoker against the current text
// buffer. Blank text and an in-flight analysis are both no-ops at the state
// level; the corresponding sentinel is returned so callers can report it.
func (s *Session) StartAnalyze() error {
	s.mu.Lock()
	text := s.state.Text
	analyzing := s.state.Analyzing
	s.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	if analyzing {
		return ErrAnalyzeInFlight
	}

	s.startAnalyze(text)
	return nil
}

func (s *Session) startAnalyze(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	s.mu.Lock()
	if s.state.Analyzing {
		s.mu.Unlock()
		return
	}
	s.state = workflow.Reduce(s.state, workflow.AnalyzeStarted{})
	s.updatedAt = time.Now()
	s.mu.Unlock()

	go func() {
		analysis, err := s.engine.Analyze(s.base, text)
		if err != nil {
			// Supplementary call: failure is diagnostic only, never surfaced.
			s.logger.Warn("analysis failed", "session_id", s.ID, "error", err)
			s.apply(workflow.AnalyzeFailed{})
			return
		}
		s.apply(workflow.AnalyzeSucceeded{Analysis: analysis})
	}()
}

// EditText replaces the text buffer. Edits are permitted at any time and do
// not affect calls already in flight.
func (s *Session) EditText(text string) {
	s.apply(workflow.TextEdited{Text: text})
}

// DismissNotice clears the pending blocking notice.
func (s *Session) DismissNotice() {
	s.apply(workflow.NoticeDismissed{})
}

// StartProofread issues the proofreading invocation for the current text
// buffer. A blank buffer issues no remote call and changes no state.
func (s *Session) StartProofread() error {
	s.mu.Lock()
	if s.state.Proofreading {
		s.mu.Unlock()
		return ErrProofreadInFlight
	}
	text := strings.TrimSpace(s.state.Text)
	if text == "" {
		s.mu.Unlock()
		return ErrEmptyText
	}
	s.state = workflow.Reduce(s.state, workflow.ProofreadStarted{})
	s.updatedAt = time.Now()
	s.mu.Unlock()

	go s.runProofread(text)
	return nil
}

func (s *Session) runProofread(text string) {
	result, err := s.engine.Proofread(s.base, text)
	if err != nil {
		s.logger.Error("proofreading failed", "session_id", s.ID, "error", err)
		s.apply(workflow.ProofreadFailed{Message: engine.Message(err)})
		return
	}
	s.apply(workflow.ProofreadSucceeded{Result: result})
}
