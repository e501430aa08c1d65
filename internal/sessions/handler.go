package sessions

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Bashar-1216/arabic-academic-proofreader/internal/reports"
	"github.com/Bashar-1216/arabic-academic-proofreader/internal/workflow"
	"github.com/Bashar-1216/arabic-academic-proofreader/pkg/handlers"
	"github.com/Bashar-1216/arabic-academic-proofreader/pkg/routes"
)

// Handler provides HTTP endpoints for session operations.
type Handler struct {
	sys           System
	reports       reports.System
	logger        *slog.Logger
	maxUploadSize int64
}

// View is the session representation returned to clients: identity and
// timestamps alongside the state snapshot, with stage reachability computed
// at render time.
type View struct {
	ID         uuid.UUID        `json:"id"`
	DocumentID uuid.UUID        `json:"document_id"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	Reachable  []workflow.Stage `json:"reachable"`
	workflow.State
}

// NewHandler creates a Handler with the given systems, logger, and upload size limit.
func NewHandler(sys System, reports reports.System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		reports:       reports,
		logger:        logger.With("handler", "sessions"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for session endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/sessions",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "PUT", Pattern: "/{id}/text", Handler: h.EditText},
			{Method: "POST", Pattern: "/{id}/analyze", Handler: h.Analyze},
			{Method: "POST", Pattern: "/{id}/proofread", Handler: h.Proofread},
			{Method: "POST", Pattern: "/{id}/report", Handler: h.Report},
			{Method: "DELETE", Pattern: "/{id}/notice", Handler: h.DismissNotice},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// Create accepts a multipart upload, opens a session, and starts extraction.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	sess, err := h.sys.Create(r.Context(), CreateCommand{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, h.view(sess))
}

// Find returns the session state snapshot by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, h.view(sess))
}

// EditText replaces the session's text buffer.
func (h *Handler) EditText(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	sess.EditText(body.Text)
	handlers.RespondJSON(w, http.StatusOK, h.view(sess))
}

// Analyze triggers a manual analysis pass over the current text buffer.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := sess.StartAnalyze(); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusAccepted, h.view(sess))
}

// Proofread triggers a proofreading pass over the current text buffer.
func (h *Handler) Proofread(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := sess.StartProofread(); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusAccepted, h.view(sess))
}

// Report synthesizes and registers a report from the session's proofreading
// result. Rejected when no result exists yet.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	state := sess.Snapshot()
	if state.Proofread == nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrNoResult), ErrNoResult)
		return
	}

	report, err := h.reports.Create(r.Context(), reports.CreateCommand{
		SessionID:  sess.ID,
		DocumentID: sess.DocumentID,
		Result:     state.Proofread,
		Metadata:   state.Metadata,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, report)
}

// DismissNotice clears the session's pending notice.
func (h *Handler) DismissNotice(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	sess.DismissNotice()
	handlers.RespondJSON(w, http.StatusOK, h.view(sess))
}

// Delete discards the session by its UUID path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	if err := h.sys.Delete(id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return nil, false
	}

	sess, err := h.sys.Find(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return nil, false
	}
	return sess, true
}

func (h *Handler) view(sess *Session) View {
	state := sess.Snapshot()
	return View{
		ID:         sess.ID,
		DocumentID: sess.DocumentID,
		CreatedAt:  sess.CreatedAt,
		UpdatedAt:  sess.UpdatedAt(),
		Reachable:  state.Reachable(),
		State:      state,
	}
}
