package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pulse-works/pulse/internal/pipeline"
	"github.com/pulse-works/pulse/pkg/archive"
)

var errTest = errors.New("connection reset")

// fakeArchive keeps blobs in memory.
type fakeArchive struct {
	blobs map[string]string
}

func (f *fakeArchive) Store(_ context.Context, key string, reader io.Reader, _ string) error {
	content, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if f.blobs == nil {
		f.blobs = map[string]string{}
	}
	f.blobs[key] = string(content)
	return nil
}

func (f *fakeArchive) Retrieve(_ context.Context, key string) (io.ReadCloser, error) {
	content, ok := f.blobs[key]
	if !ok {
		return nil, archive.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (f *fakeArchive) Delete(_ context.Context, key string) error {
	if _, ok := f.blobs[key]; !ok {
		return archive.ErrNotFound
	}
	delete(f.blobs, key)
	return nil
}

func doRun(t *testing.T, env *runnerEnv) (int, map[string]any) {
	t.Helper()

	handler := pipeline.NewHandler(env.runner, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	rec := httptest.NewRecorder()
	handler.Run(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return res.StatusCode, body
}

func TestRunResponseSuccess(t *testing.T) {
	env := buildRunner(t, 25, validModelOutput)

	status, body := doRun(t, env)

	if status != http.StatusOK {
		t.Errorf("status: got %d, want 200", status)
	}
	if body["success"] != true {
		t.Errorf("success: got %v, want true", body["success"])
	}
	if body["articlesAnalyzed"] != float64(25) {
		t.Errorf("articlesAnalyzed: got %v, want 25", body["articlesAnalyzed"])
	}
	if body["fredSeries"] != "Unemployment Rate" {
		t.Errorf("fredSeries: got %v", body["fredSeries"])
	}

	report, ok := body["report"].(map[string]any)
	if !ok {
		t.Fatalf("report: got %v, want object", body["report"])
	}
	if report["rating"] != 7.2 {
		t.Errorf("report rating: got %v, want 7.2", report["rating"])
	}
	if _, present := body["error"]; present {
		t.Error("success response must not carry an error field")
	}
}

func TestRunResponseParseFailure(t *testing.T) {
	env := buildRunner(t, 25, "not json at all")

	status, body := doRun(t, env)

	if status != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", status)
	}
	if body["success"] != false {
		t.Errorf("success: got %v, want false", body["success"])
	}
	if body["error"] != "AI response parsing failed" {
		t.Errorf("error: got %v", body["error"])
	}
	if body["details"] == nil || body["details"] == "" {
		t.Error("details missing from parse failure response")
	}
}

func TestRunResponseValidationFailure(t *testing.T) {
	out := strings.Replace(validModelOutput, `"rating": 7.2`, `"rating": 11`, 1)
	env := buildRunner(t, 25, out)

	status, body := doRun(t, env)

	if status != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", status)
	}
	if body["error"] != "AI response parsing failed" {
		t.Errorf("error: got %v", body["error"])
	}
	details, _ := body["details"].(string)
	if !strings.Contains(details, "rating") {
		t.Errorf("details: got %q, want rating violation", details)
	}
}

func TestRunResponseStorageFailure(t *testing.T) {
	env := buildRunner(t, 25, validModelOutput)
	env.store.err = errTest

	status, body := doRun(t, env)

	if status != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", status)
	}
	if body["error"] != "Database insertion failed" {
		t.Errorf("error: got %v", body["error"])
	}
}

func TestRawStreamsArchivedOutput(t *testing.T) {
	store := &fakeArchive{blobs: map[string]string{
		"runs/2026-08-23T06-00-00.000000000.txt": "raw model text",
	}}
	env := buildRunner(t, 25, validModelOutput)
	env.runner = env.runner.WithArchive(store)

	handler := pipeline.NewHandler(env.runner, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/analyze/raw/2026-08-23T06-00-00.000000000", nil)
	req.SetPathValue("timestamp", "2026-08-23T06-00-00.000000000")
	rec := httptest.NewRecorder()
	handler.Raw(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/plain") {
		t.Errorf("content type: got %s, want text/plain", got)
	}
	if rec.Body.String() != "raw model text" {
		t.Errorf("body: got %q", rec.Body.String())
	}
}

func TestRawUnknownTimestamp(t *testing.T) {
	env := buildRunner(t, 25, validModelOutput)
	env.runner = env.runner.WithArchive(&fakeArchive{})

	handler := pipeline.NewHandler(env.runner, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/analyze/raw/unknown", nil)
	req.SetPathValue("timestamp", "unknown")
	rec := httptest.NewRecorder()
	handler.Raw(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestRawWithoutArchive(t *testing.T) {
	env := buildRunner(t, 25, validModelOutput)

	handler := pipeline.NewHandler(env.runner, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/analyze/raw/any", nil)
	req.SetPathValue("timestamp", "any")
	rec := httptest.NewRecorder()
	handler.Raw(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestDeleteRaw(t *testing.T) {
	store := &fakeArchive{blobs: map[string]string{
		"runs/2026-08-23T06-00-00.000000000.txt": "raw model text",
	}}
	env := buildRunner(t, 25, validModelOutput)
	env.runner = env.runner.WithArchive(store)

	handler := pipeline.NewHandler(env.runner, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/analyze/raw/2026-08-23T06-00-00.000000000", nil)
	req.SetPathValue("timestamp", "2026-08-23T06-00-00.000000000")
	rec := httptest.NewRecorder()
	handler.DeleteRaw(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status: got %d, want 204", rec.Code)
	}
	if len(store.blobs) != 0 {
		t.Errorf("blobs remaining: got %d, want 0", len(store.blobs))
	}

	// Deleting again reports not found.
	rec = httptest.NewRecorder()
	handler.DeleteRaw(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status: got %d, want 404", rec.Code)
	}
}

func TestRunResponseOtherFailure(t *testing.T) {
	env := buildRunner(t, 0, validModelOutput)

	status, body := doRun(t, env)

	if status != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", status)
	}
	if body["success"] != false {
		t.Errorf("success: got %v, want false", body["success"])
	}
	if body["error"] != pipeline.ErrNoArticles.Error() {
		t.Errorf("error: got %v, want %v", body["error"], pipeline.ErrNoArticles)
	}
	if _, present := body["report"]; present {
		t.Error("failure response must not carry a report")
	}
}
