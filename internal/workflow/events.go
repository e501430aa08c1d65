package workflow

import "github.com/Bashar-1216/arabic-academic-proofreader/internal/engine"

// Event is a workflow state transition input. Events are applied through
// Reduce, which returns the next state without mutating the previous one.
type Event interface {
	isEvent()
}

// SelectFile replaces the selected file and resets upload progress. Ignored
// while an upload is in flight: selection is neither queued nor cancels the
// running call.
type SelectFile struct {
	File SelectedFile
}

// UploadStarted marks the upload invoker in flight. Ignored if already in
// flight.
type UploadStarted struct{}

// UploadProgressed reports transfer progress. Values outside [0,100] are
// clamped and regressions below the current progress are ignored.
type UploadProgressed struct {
	Percent int
}

// UploadSucceeded applies the extraction result: the text buffer and file
// metadata are set and the proofread stage becomes active.
type UploadSucceeded struct {
	Text     string
	Metadata *engine.FileMetadata
}

// UploadFailed surfaces a blocking notice. The text buffer and active stage
// are left unchanged.
type UploadFailed struct {
	Message string
}

// TextEdited replaces the text buffer. Permitted at any time; it does not
// affect calls already in flight.
type TextEdited struct {
	Text string
}

// AnalyzeStarted marks the analysis invoker in flight. Ignored if already in
// flight.
type AnalyzeStarted struct{}

// AnalyzeSucceeded replaces the analysis result wholesale.
type AnalyzeSucceeded struct {
	Analysis *engine.Analysis
}

// AnalyzeFailed clears the in-flight flag. Analysis is supplementary, so the
// failure is never surfaced to the user.
type AnalyzeFailed struct{}

// ProofreadStarted marks the proofread invoker in flight. Ignored if already
// in flight.
type ProofreadStarted struct{}

// ProofreadSucceeded replaces the proofreading result wholesale and makes
// the results stage active.
type ProofreadSucceeded struct {
	Result *engine.ProofreadResult
}

// ProofreadFailed surfaces a blocking notice. A previously produced result
// is left intact, so a failed retry does not demote the results stage.
type ProofreadFailed struct {
	Message string
}

// NoticeDismissed clears the pending notice.
type NoticeDismissed struct{}

func (SelectFile) isEvent()         {}
func (UploadStarted) isEvent()      {}
func (UploadProgressed) isEvent()   {}
func (UploadSucceeded) isEvent()    {}
func (UploadFailed) isEvent()       {}
func (TextEdited) isEvent()         {}
func (AnalyzeStarted) isEvent()     {}
func (AnalyzeSucceeded) isEvent()   {}
func (AnalyzeFailed) isEvent()      {}
func (ProofreadStarted) isEvent()   {}
func (ProofreadSucceeded) isEvent() {}
func (ProofreadFailed) isEvent()    {}
func (NoticeDismissed) isEvent()    {}

// Reduce applies an event to a state and returns the next state. It is a
// pure function: the input state is never mutated, and identical inputs
// always produce identical outputs.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case SelectFile:
		if s.Uploading {
			return s
		}
		file := ev.File
		s.File = &file
		s.UploadProgress = 0
		s.Active = StageExtract

	case UploadStarted:
		if s.Uploading {
			return s
		}
		s.Uploading = true
		s.UploadProgress = 0
		s.Notice = nil

	case UploadProgressed:
		percent := ev.Percent
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}
		if percent > s.UploadProgress {
			s.UploadProgress = percent
		}

	case UploadSucceeded:
		s.Uploading = false
		s.UploadProgress = 100
		s.Text = ev.Text
		s.Metadata = ev.Metadata
		s.Active = StageProofread

	case UploadFailed:
		s.Uploading = false
		s.Notice = &Notice{Message: ev.Message}

	case TextEdited:
		s.Text = ev.Text

	case AnalyzeStarted:
		if s.Analyzing {
			return s
		}
		s.Analyzing = true

	case AnalyzeSucceeded:
		s.Analyzing = false
		s.Analysis = ev.Analysis

	case AnalyzeFailed:
		s.Analyzing = false

	case ProofreadStarted:
		if s.Proofreading {
			return s
		}
		s.Proofreading = true
		s.Notice = nil

	case ProofreadSucceeded:
		s.Proofreading = false
		s.Proofread = ev.Result
		s.Active = StageResults

	case ProofreadFailed:
		s.Proofreading = false
		s.Notice = &Notice{Message: ev.Message}

	case NoticeDismissed:
		s.Notice = nil
	}

	return s
}
