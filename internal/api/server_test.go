package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/doctext/doctext/docstring"
	"github.com/doctext/doctext/internal/config"
	"github.com/doctext/doctext/internal/pipeline"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) (*Server, *pipeline.Orchestrator) {
	t.Helper()
	cfg := config.Config{
		WorkerCount:    2,
		MaxQueueSize:   10,
		MaxUploadBytes: 1 << 20,
		JobTTL:         time.Hour,
		PoolSize:       8,
		Convert:        docstring.DefaultOptions(),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	pool := docstring.NewPool(cfg.PoolSize)
	orch := pipeline.NewOrchestrator(cfg, pool, log)
	return NewServer(orch, pool, log, cfg), orch
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestHandleConvert(t *testing.T) {
	s, _ := newTestServer(t, nil)
	body := `{"text": "- item one\n  continued\n- item two"}`
	req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := "- item one continued\n- item two"
	if resp["text"] != want {
		t.Errorf("expected %q, got %q", want, resp["text"])
	}
}

func TestHandleConvert_OptionOverrides(t *testing.T) {
	s, _ := newTestServer(t, nil)
	body := `{"text": "top\n        deep", "options": {"minimize_indents": false}}`
	req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["text"] != "top\n\t\tdeep" {
		t.Errorf("expected proportional indents, got %q", resp["text"])
	}
}

func TestHandleConvert_InvalidOptions(t *testing.T) {
	s, _ := newTestServer(t, nil)
	body := `{"text": "x", "options": {"tab_size": -3}}`
	req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleConvert_InvalidJSON(t *testing.T) {
	s, _ := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	s, _ := newTestServer(t, func(c *config.Config) { c.APIKey = "secret" })

	req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(`{"text":"x"}`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(`{"text":"x"}`))
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(`{"text":"x"}`))
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rec.Code)
	}

	// Health stays public.
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected public health endpoint, got %d", rec.Code)
	}
}

func multipartBody(t *testing.T, field string, files map[string]string, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile(field, name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	for k, v := range values {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestHandleConvertFile(t *testing.T) {
	s, _ := newTestServer(t, nil)
	body, contentType := multipartBody(t, "file",
		map[string]string{"notes.txt": "Lorem ipsum\ndolor sit amet."}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/convert/file", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["text"] != "Lorem ipsum dolor sit amet." {
		t.Errorf("unexpected conversion: %q", resp["text"])
	}
	if resp["filename"] != "notes.txt" {
		t.Errorf("unexpected filename: %q", resp["filename"])
	}
}

func TestHandleConvertFile_UnsupportedType(t *testing.T) {
	s, _ := newTestServer(t, nil)
	body, contentType := multipartBody(t, "file", map[string]string{"image.png": "xx"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/convert/file", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestJobLifecycle(t *testing.T) {
	s, orch := newTestServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	orch.Start(ctx)
	defer orch.Stop()

	body, contentType := multipartBody(t, "files",
		map[string]string{"doc.txt": "- a\n  b\n"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Jobs []struct {
			JobID string `json:"job_id"`
			Error string `json:"error"`
		} `json:"jobs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(created.Jobs) != 1 || created.Jobs[0].Error != "" {
		t.Fatalf("unexpected job list: %+v", created.Jobs)
	}
	jobID := created.Jobs[0].JobID

	// Poll until the worker finishes.
	deadline := time.Now().Add(5 * time.Second)
	for {
		rec = httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs/"+jobID, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var snap pipeline.JobSnapshot
		if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
			t.Fatalf("decode snapshot: %v", err)
		}
		if snap.Status == pipeline.StatusCompleted {
			if snap.Result != "- a b" {
				t.Errorf("expected result %q, got %q", "- a b", snap.Result)
			}
			break
		}
		if snap.Status == pipeline.StatusFailed {
			t.Fatalf("job failed: %v", snap.Errors)
		}
		if time.Now().After(deadline) {
			t.Fatalf("job did not complete, status %q", snap.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHandleJobStatus_NotFound(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs/unknown", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"doc.txt", "doc.txt"},
		{"../../etc/passwd", "passwd"},
		{"dir/file.md", "file.md"},
		{"", "unnamed"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
