package engine_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Bashar-1216/arabic-academic-proofreader/internal/engine"
)

func newClient(t *testing.T, handler http.Handler) (*engine.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := engine.Config{BaseURL: server.URL + "/api"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return engine.NewClient(&cfg, logger), server
}

func TestHealth(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	client, _ := newClient(t, mux)

	if err := client.Health(context.Background()); err != nil {
		t.Errorf("Health() = %v, want nil", err)
	}
}

func TestHealthRemoteFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	client, _ := newClient(t, mux)

	err := client.Health(context.Background())
	var remote *engine.RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("Health() = %v, want RemoteError", err)
	}
	if remote.Status != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want 503", remote.Status)
	}
}

func TestUploadSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/upload", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		defer file.Close()

		if header.Filename != "بحث.pdf" {
			t.Errorf("filename = %q, want بحث.pdf", header.Filename)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"text":    "النص المستخرج من الملف",
			"metadata": map[string]any{
				"title":      "البحث",
				"file_type":  "PDF",
				"page_count": 4,
			},
			"stats": map[string]any{
				"total_words":      120,
				"total_characters": 800,
			},
		})
	})

	client, _ := newClient(t, mux)

	var reported []int
	extraction, err := client.Upload(
		context.Background(),
		"بحث.pdf",
		"application/pdf",
		[]byte("dummy pdf bytes"),
		func(percent int) { reported = append(reported, percent) },
	)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if extraction.Text != "النص المستخرج من الملف" {
		t.Errorf("Text = %q", extraction.Text)
	}
	if extraction.Metadata == nil || extraction.Metadata.FileType != "PDF" {
		t.Errorf("Metadata = %+v", extraction.Metadata)
	}
	if extraction.Metadata.PageCount == nil || *extraction.Metadata.PageCount != 4 {
		t.Errorf("PageCount = %v, want 4", extraction.Metadata.PageCount)
	}
	if extraction.Stats.TotalWords != 120 {
		t.Errorf("TotalWords = %d, want 120", extraction.Stats.TotalWords)
	}

	if len(reported) == 0 {
		t.Fatal("no progress reported")
	}
	last := -1
	for _, p := range reported {
		if p < 0 || p > 100 {
			t.Errorf("progress %d out of range", p)
		}
		if p <= last {
			t.Errorf("progress %d after %d: not strictly increasing", p, last)
		}
		last = p
	}
	if last != 100 {
		t.Errorf("final progress = %d, want 100", last)
	}
}

func TestUploadEngineFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/upload", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "فشل في استخراج النص من الملف",
		})
	})

	client, _ := newClient(t, mux)

	_, err := client.Upload(context.Background(), "a.pdf", "application/pdf", []byte("x"), nil)

	var remote *engine.RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("Upload() error = %v, want RemoteError", err)
	}
	if remote.Message != "فشل في استخراج النص من الملف" {
		t.Errorf("Message = %q", remote.Message)
	}
	if got := engine.Message(err); got != "فشل في استخراج النص من الملف" {
		t.Errorf("engine.Message = %q, want the remote message", got)
	}
}

func TestUploadTransportFailure(t *testing.T) {
	client, server := newClient(t, http.NewServeMux())
	server.Close()

	_, err := client.Upload(context.Background(), "a.pdf", "application/pdf", []byte("x"), nil)

	var transport *engine.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("Upload() error = %v, want TransportError", err)
	}
	if got := engine.Message(err); got != "تعذر الاتصال بخدمة التدقيق" {
		t.Errorf("engine.Message = %q, want generic connectivity message", got)
	}
}

func TestUploadOutlivesRequestTimeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/upload", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"text":    "نص",
			"stats":   map[string]any{"total_words": 1},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	cfg := engine.Config{
		BaseURL:        server.URL + "/api",
		RequestTimeout: "50ms",
		UploadTimeout:  "5s",
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := engine.NewClient(&cfg, logger)

	extraction, err := client.Upload(context.Background(), "بحث.pdf", "application/pdf", []byte("x"), nil)
	if err != nil {
		t.Fatalf("Upload() error = %v, want success within upload timeout", err)
	}
	if extraction.Text != "نص" {
		t.Errorf("Text = %q", extraction.Text)
	}
}

func TestAnalyzeBoundByRequestTimeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "analysis": map[string]any{}})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	cfg := engine.Config{
		BaseURL:        server.URL + "/api",
		RequestTimeout: "50ms",
		UploadTimeout:  "5s",
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := engine.NewClient(&cfg, logger)

	_, err := client.Analyze(context.Background(), "نص")

	var transport *engine.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("Analyze() error = %v, want TransportError from deadline", err)
	}
}

func TestAnalyze(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.Text != "نص للتحليل" {
			t.Errorf("text = %q", body.Text)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"analysis": map[string]any{
				"word_count":     42,
				"sentence_count": 3,
				"readability": map[string]any{
					"complexity":     "متوسط",
					"recommendation": "النص مناسب",
				},
			},
		})
	})

	client, _ := newClient(t, mux)

	analysis, err := client.Analyze(context.Background(), "نص للتحليل")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if analysis.WordCount != 42 {
		t.Errorf("WordCount = %d, want 42", analysis.WordCount)
	}
	if analysis.Readability.Complexity != engine.ComplexityModerate {
		t.Errorf("Complexity = %q, want متوسط", analysis.Readability.Complexity)
	}
}

func TestProofread(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/proofread", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success":        true,
			"original_text":  "هاذا نص",
			"corrected_text": "هذا نص",
			"suggestions": []map[string]any{
				{
					"type":        "spelling",
					"description": "تصحيح إملائي",
					"original":    "هاذا",
					"improved":    "هذا",
				},
			},
			"stats": map[string]any{
				"original_words":    2,
				"processed_words":   2,
				"suggestions_count": 1,
			},
		})
	})

	client, _ := newClient(t, mux)

	result, err := client.Proofread(context.Background(), "هاذا نص")
	if err != nil {
		t.Fatalf("Proofread() error = %v", err)
	}

	if result.CorrectedText != "هذا نص" {
		t.Errorf("CorrectedText = %q", result.CorrectedText)
	}
	if len(result.Suggestions) != 1 {
		t.Fatalf("Suggestions = %d, want 1", len(result.Suggestions))
	}
	if got := result.Suggestions[0].Replacement(); got != "هذا" {
		t.Errorf("Replacement() = %q, want هذا", got)
	}
	if result.Stats.SuggestionsCount != 1 {
		t.Errorf("SuggestionsCount = %d, want 1", result.Stats.SuggestionsCount)
	}
}

func TestProofreadUnparseableErrorBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/proofread", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "<html>Internal Server Error</html>")
	})

	client, _ := newClient(t, mux)

	_, err := client.Proofread(context.Background(), "نص")

	var remote *engine.RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("error = %v, want RemoteError", err)
	}
	if remote.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", remote.Status)
	}
}

func TestSuggestionReplacementPrecedence(t *testing.T) {
	tests := []struct {
		name string
		s    engine.Suggestion
		want string
	}{
		{"improved only", engine.Suggestion{Improved: "أ"}, "أ"},
		{"suggestion only", engine.Suggestion{Suggestion: "ب"}, "ب"},
		{"both prefers improved", engine.Suggestion{Improved: "أ", Suggestion: "ب"}, "أ"},
		{"neither", engine.Suggestion{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Replacement(); got != tt.want {
				t.Errorf("Replacement() = %q, want %q", got, tt.want)
			}
		})
	}
}
