// Package workflow implements the proofreading workflow state machine. A
// State value tracks one document's progress through the upload → extract →
// proofread → results stages; Reduce applies events to produce the next
// state. Stage reachability is always derived from the state's contents,
// never stored, so it cannot drift from the data that justifies it.
package workflow

import (
	"strings"

	"github.com/Bashar-1216/arabic-academic-proofreader/internal/engine"
)

// Stage is one of the four workflow phases gating user actions.
type Stage string

// Workflow stages in order of progression.
const (
	StageUpload    Stage = "upload"
	StageExtract   Stage = "extract"
	StageProofread Stage = "proofread"
	StageResults   Stage = "results"
)

// SelectedFile describes the document chosen for the workflow. It is set
// once per selection and replaced wholesale by the next selection.
type SelectedFile struct {
	Name        string `json:"name"`
	SizeBytes   int64  `json:"size_bytes"`
	ContentType string `json:"content_type"`
}

// Notice is a blocking, user-visible failure notification. Only upload and
// proofread failures raise notices; analysis failures never do.
type Notice struct {
	Message string `json:"message"`
}

// State is the complete workflow state for one session. Result fields
// (Metadata, Analysis, Proofread) are replaced wholesale by their producing
// invoker and must not be partially mutated.
type State struct {
	File           *SelectedFile           `json:"file,omitempty"`
	Text           string                  `json:"text"`
	Metadata       *engine.FileMetadata    `json:"metadata,omitempty"`
	Analysis       *engine.Analysis        `json:"analysis,omitempty"`
	Proofread      *engine.ProofreadResult `json:"proofread,omitempty"`
	Active         Stage                   `json:"active"`
	UploadProgress int                     `json:"upload_progress"`
	Uploading      bool                    `json:"uploading"`
	Analyzing      bool                    `json:"analyzing"`
	Proofreading   bool                    `json:"proofreading"`
	Notice         *Notice                 `json:"notice,omitempty"`
}

// NewState returns the initial state with the upload stage active.
func NewState() State {
	return State{Active: StageUpload}
}

// CanExtract reports whether the extract stage is reachable: a file has been
// selected, regardless of its validity.
func (s *State) CanExtract() bool {
	return s.File != nil
}

// CanProofread reports whether the proofread stage is reachable: the text
// buffer is non-blank.
func (s *State) CanProofread() bool {
	return strings.TrimSpace(s.Text) != ""
}

// CanResults reports whether the results stage is reachable: a proofreading
// result exists.
func (s *State) CanResults() bool {
	return s.Proofread != nil
}

// Reachable returns the stages currently reachable, recomputed from the
// state on every call. The upload stage is always reachable.
func (s *State) Reachable() []Stage {
	stages := []Stage{StageUpload}
	if s.CanExtract() {
		stages = append(stages, StageExtract)
	}
	if s.CanProofread() {
		stages = append(stages, StageProofread)
	}
	if s.CanResults() {
		stages = append(stages, StageResults)
	}
	return stages
}

// InFlight reports whether any invoker is currently running.
func (s *State) InFlight() bool {
	return s.Uploading || s.Analyzing || s.Proofreading
}
