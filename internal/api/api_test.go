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
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KWARC/llamapun/internal/annotate"
	"github.com/KWARC/llamapun/internal/config"
	"github.com/KWARC/llamapun/internal/index"
	"github.com/KWARC/llamapun/internal/pattern"
	"github.com/KWARC/llamapun/internal/pipeline"
)

const testKey = "secret"

const paperHTML = `<html><body><section><h2>Intro</h2>
<p>Let <math><mi>x</mi></math> be a prime.</p>
<p>Assume <math><mi>x</mi></math> holds.</p>
</section></body></html>`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg, err := pattern.Compile(`
		phrase definition = "Let" {defined _} "be" ;
		math ident = "mi" ;
	`)
	require.NoError(t, err)
	idx, err := index.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	set := pipeline.DefaultSettings()
	set.Rules = []string{"definition", "ident"}
	w, err := pipeline.NewWorker(pattern.NewMatcher(reg), annotate.NewSimple(), idx, nil, log, set)
	require.NoError(t, err)
	orch, err := pipeline.NewOrchestrator(w, 2, 10, time.Hour, log)
	require.NoError(t, err)
	orch.Start(context.Background())
	t.Cleanup(func() { _ = orch.Stop(context.Background()) })

	cfg := config.Load()
	cfg.APIKey = testKey
	cfg.MatchRules = set.Rules
	cfg.MaxUploadBytes = 1 << 20
	return NewServer(orch, annotate.NewLatencyStats(time.Minute), log, cfg)
}

func do(t *testing.T, s *Server, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req.Header.Set("Authorization", "Bearer "+testKey)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	var body map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	}
	return rec, body
}

func uploadRequest(t *testing.T, path, field, filename, content string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func waitFinished(t *testing.T, s *Server, jobID string) map[string]any {
	t.Helper()
	var body map[string]any
	require.Eventually(t, func() bool {
		rec, b := do(t, s, httptest.NewRequest(http.MethodGet, "/api/documents/"+jobID+"/results", nil))
		body = b
		return rec.Code == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAuth(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rules", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, `Bearer realm="llamapun"`, rec.Header().Get("WWW-Authenticate"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"missing bearer token"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/api/rules", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, `Bearer realm="llamapun", error="invalid_token"`, rec.Header().Get("WWW-Authenticate"))
	assert.JSONEq(t, `{"error":"invalid api key"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/rules", nil)
	req.Header.Set("Authorization", "Basic "+testKey)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIngestAndResults(t *testing.T) {
	s := newTestServer(t)

	rec, body := do(t, s, uploadRequest(t, "/api/documents", "file", "paper.html", paperHTML, map[string]string{"title": "Paper"}))
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	jobID, _ := body["job_id"].(string)
	require.NotEmpty(t, jobID)
	assert.Equal(t, "/api/documents/"+jobID+"/status", body["poll_url"])

	res := waitFinished(t, s, jobID)
	job := res["job"].(map[string]any)
	assert.Equal(t, "completed", job["status"])
	assert.Equal(t, "Paper", job["title"])

	results := res["results"].(map[string]any)
	matches := results["matches"].([]any)
	var def map[string]any
	for _, m := range matches {
		if mm := m.(map[string]any); mm["rule"] == "definition" {
			def = mm
		}
	}
	require.NotNil(t, def)
	assert.Equal(t, "Let MathFormula be", def["text"])

	rec, body = do(t, s, httptest.NewRequest(http.MethodGet,
		"/api/documents/"+jobID+"/resolve?address="+url.QueryEscape(def["address"].(string)), nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Let MathFormula be", body["text"])

	rec, _ = do(t, s, httptest.NewRequest(http.MethodGet, "/api/documents/"+jobID+"/status", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	formulas := results["formulas"].([]any)
	require.Len(t, formulas, 2)
	digest := formulas[0].(map[string]any)["digest"].(string)
	rec, body = do(t, s, httptest.NewRequest(http.MethodGet, "/api/formulas/"+url.PathEscape(digest), nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(2), body["occurrences"])
	assert.Len(t, body["entries"], 2)
	assert.NotEmpty(t, body["canonical"])
}

func TestIngest_Rejects(t *testing.T) {
	s := newTestServer(t)

	rec, _ := do(t, s, uploadRequest(t, "/api/documents", "file", "tool.exe", "MZ", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body := do(t, s, uploadRequest(t, "/api/documents", "file", "a.txt", "Let a be one.", map[string]string{"rules": "nope"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "nope")

	rec, _ = do(t, s, uploadRequest(t, "/api/documents", "other", "a.txt", "Let a be one.", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBatchIngest(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range map[string]string{"a.txt": "Let a be one.", "b.exe": "MZ"} {
		fw, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = io.WriteString(fw, content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/documents/batch", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec, body := do(t, s, req)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	jobs := body["jobs"].([]any)
	require.Len(t, jobs, 2)

	var accepted, rejected int
	for _, j := range jobs {
		jm := j.(map[string]any)
		if id, ok := jm["job_id"].(string); ok {
			accepted++
			waitFinished(t, s, id)
		} else {
			rejected++
			assert.Equal(t, "b.exe", jm["filename"])
		}
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, rejected)
}

func TestUnknownJob(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/status", "/results", "/resolve?address=p@0-1"} {
		rec, _ := do(t, s, httptest.NewRequest(http.MethodGet, "/api/documents/missing"+path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestResolve_BadAddress(t *testing.T) {
	s := newTestServer(t)
	_, body := do(t, s, uploadRequest(t, "/api/documents", "file", "a.txt", "Let a be one.", nil))
	jobID := body["job_id"].(string)
	waitFinished(t, s, jobID)

	rec, _ := do(t, s, httptest.NewRequest(http.MethodGet, "/api/documents/"+jobID+"/resolve", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, s, httptest.NewRequest(http.MethodGet, "/api/documents/"+jobID+"/resolve?address=nonsense", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, s, httptest.NewRequest(http.MethodGet, "/api/documents/"+jobID+"/resolve?address="+url.QueryEscape("/html[1]/body[1]/p[9]@0-1"), nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestMatch(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/match", bytes.NewBufferString(`{"text":"Let z be odd."}`))
	rec, body := do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	matches := body["matches"].([]any)
	require.Len(t, matches, 1)
	assert.Equal(t, "Let z be", matches[0].(map[string]any)["text"])

	req = httptest.NewRequest(http.MethodPost, "/api/match", bytes.NewBufferString(`{"text":"x","rules":["nope"]}`))
	rec, _ = do(t, s, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/match", bytes.NewBufferString(`{}`))
	rec, _ = do(t, s, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRulesAndStats(t *testing.T) {
	s := newTestServer(t)

	rec, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/rules", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	rules := body["rules"].([]any)
	require.Len(t, rules, 2)
	assert.Equal(t, map[string]any{"name": "definition", "kind": "phrase"}, rules[0])

	rec, body = do(t, s, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "matcher")
	assert.Contains(t, body, "annotator")
	assert.Equal(t, float64(0), body["distinct_formulas"])
}

func TestFormula_BadDigest(t *testing.T) {
	s := newTestServer(t)
	rec, _ := do(t, s, httptest.NewRequest(http.MethodGet, "/api/formulas/zz", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	missing := "blake3:" + string(bytes.Repeat([]byte("ab"), 32))
	rec, _ = do(t, s, httptest.NewRequest(http.MethodGet, "/api/formulas/"+url.PathEscape(missing), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "passwd", sanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "unnamed", sanitizeFilename(""))
	assert.Equal(t, "a_b.txt", sanitizeFilename("a..b.txt"))
}
