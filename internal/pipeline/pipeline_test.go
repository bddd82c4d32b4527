package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KWARC/llamapun/internal/address"
	"github.com/KWARC/llamapun/internal/ams"
	"github.com/KWARC/llamapun/internal/annotate"
	"github.com/KWARC/llamapun/internal/index"
	"github.com/KWARC/llamapun/internal/pattern"
	"github.com/KWARC/llamapun/internal/sink"
)

const paperHTML = `<html><body><section><h2>Intro</h2>
<p>Let <math><mi>x</mi></math> be a prime.</p>
<p>Assume <math><mi>x</mi></math> holds.</p>
</section></body></html>`

const testRules = `
	phrase definition = "Let" {defined _} "be" ;
	math ident = "mi" ;
`

func quietLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWorker(t *testing.T, a annotate.Annotator, sk *sink.Client) (*Worker, *index.Index) {
	t.Helper()
	reg, err := pattern.Compile(testRules)
	require.NoError(t, err)
	idx, err := index.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	if a == nil {
		a = annotate.NewSimple()
	}
	set := DefaultSettings()
	set.Rules = []string{"definition", "ident"}
	w, err := NewWorker(pattern.NewMatcher(reg), a, idx, sk, quietLog(), set)
	require.NoError(t, err)
	w.backoff = func(int) time.Duration { return time.Millisecond }
	return w, idx
}

func TestWorker_Process(t *testing.T) {
	w, idx := newTestWorker(t, nil, nil)
	job := NewJob("paper.html", "", []byte(paperHTML))
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	require.Equal(t, StatusCompleted, snap.Status, "errors: %v", snap.Progress.Errors)
	assert.Equal(t, 2, snap.Progress.Paragraphs)
	assert.Equal(t, 2, snap.Progress.TotalSentences)
	assert.Equal(t, 2, snap.Progress.Formulas)
	assert.Equal(t, 2, snap.Progress.FormulasIndexed)
	assert.Nil(t, job.FileData())

	res := job.Results()
	require.NotNil(t, res)
	var defs, idents []MatchResult
	for _, m := range res.Matches {
		switch m.Rule {
		case "definition":
			defs = append(defs, m)
		case "ident":
			idents = append(idents, m)
		}
	}
	require.Len(t, defs, 1)
	assert.Equal(t, "Let MathFormula be", defs[0].Text)
	assert.Equal(t, 0, defs[0].Sentence)
	require.Len(t, defs[0].Markers, 1)
	assert.Equal(t, "defined", defs[0].Markers[0].Name)
	assert.Equal(t, "MathFormula", defs[0].Markers[0].Text)

	a, err := address.Parse(defs[0].Address)
	require.NoError(t, err)
	r, err := address.Decode(a, job.Document())
	require.NoError(t, err)
	assert.Equal(t, "Let MathFormula be", r.Text())

	require.Len(t, idents, 2)
	assert.Equal(t, -1, idents[0].Sentence)
	assert.Equal(t, "x", idents[0].Text)

	require.Len(t, res.Formulas, 2)
	assert.Equal(t, res.Formulas[0].Digest, res.Formulas[1].Digest)
	assert.Equal(t, 1, res.Formulas[0].Occurrences)
	assert.Equal(t, 2, res.Formulas[1].Occurrences)
	assert.True(t, strings.HasPrefix(res.Formulas[0].Digest, "blake3:"))

	distinct, err := idx.DistinctFormulas()
	require.NoError(t, err)
	assert.Equal(t, 1, distinct)
}

const lemmaXHTML = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<body>
<div class="ltx_theorem ltx_theorem_lem" id="Thmlem1">
  <div class="ltx_para"><p class="ltx_p">Let <math xmlns="http://www.w3.org/1998/Math/MathML"><mi>p</mi></math> be a prime.</p></div>
</div>
<div class="ltx_para"><p class="ltx_p">Let <math xmlns="http://www.w3.org/1998/Math/MathML"><mi>q</mi></math> be odd.</p></div>
</body>
</html>`

func TestWorker_ParagraphEnvironment(t *testing.T) {
	w, _ := newTestWorker(t, nil, nil)
	job := NewJob("lemma.xhtml", "", []byte(lemmaXHTML))
	w.Process(context.Background(), job)
	require.Equal(t, StatusCompleted, job.Snapshot().Status, "errors: %v", job.Snapshot().Progress.Errors)

	res := job.Results()
	require.NotNil(t, res)
	assert.True(t, res.AMSMarkup)
	var envs []ams.Env
	for _, m := range res.Matches {
		if m.Rule == "definition" {
			envs = append(envs, m.Env)
		}
	}
	assert.Equal(t, []ams.Env{ams.Lemma, ""}, envs)

	plain := NewJob("plain.html", "", []byte(paperHTML))
	w.Process(context.Background(), plain)
	require.NotNil(t, plain.Results())
	assert.False(t, plain.Results().AMSMarkup)
}

func TestWorker_WithoutIndex(t *testing.T) {
	reg, err := pattern.Compile(testRules)
	require.NoError(t, err)
	set := DefaultSettings()
	set.Rules = []string{"definition", "ident"}
	w, err := NewWorker(pattern.NewMatcher(reg), annotate.NewSimple(), nil, nil, quietLog(), set)
	require.NoError(t, err)

	for _, name := range []string{"paper.html", "again.html"} {
		job := NewJob(name, "", []byte(paperHTML))
		w.Process(context.Background(), job)
		snap := job.Snapshot()
		require.Equal(t, StatusCompleted, snap.Status, "errors: %v", snap.Progress.Errors)
		assert.Equal(t, 2, snap.Progress.Formulas)
		assert.Equal(t, 0, snap.Progress.FormulasIndexed)
		require.Len(t, job.Results().Formulas, 2)
		assert.Zero(t, job.Results().Formulas[0].Occurrences)
	}

	failing := NewJob("empty.html", "", []byte("<html><body></body></html>"))
	w.Process(context.Background(), failing)
	assert.Equal(t, StatusFailed, failing.Snapshot().Status)
}

func TestWorker_Duplicate(t *testing.T) {
	w, _ := newTestWorker(t, nil, nil)
	first := NewJob("paper.html", "", []byte(paperHTML))
	w.Process(context.Background(), first)
	require.Equal(t, StatusCompleted, first.Snapshot().Status)

	second := NewJob("copy.html", "", []byte(paperHTML))
	w.Process(context.Background(), second)
	snap := second.Snapshot()
	assert.Equal(t, StatusDupSkipped, snap.Status)
	assert.Equal(t, first.DocID, snap.DuplicateOf)
	assert.Nil(t, second.Results())
}

func TestWorker_UnsupportedFormat(t *testing.T) {
	w, _ := newTestWorker(t, nil, nil)
	job := NewJob("paper.exe", "", []byte("MZ"))
	w.Process(context.Background(), job)
	snap := job.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, "parsing", snap.Phase)
}

func TestWorker_UnknownRule(t *testing.T) {
	w, _ := newTestWorker(t, nil, nil)
	job := NewJob("paper.html", "", []byte(paperHTML))
	job.Rules = []string{"missing"}
	w.Process(context.Background(), job)
	assert.Equal(t, StatusFailed, job.Snapshot().Status)
}

// flakyAnnotator fails with a retryable error a fixed number of times.
type flakyAnnotator struct {
	mu       sync.Mutex
	failures int
	calls    int
	err      error
}

func (f *flakyAnnotator) Annotate(ctx context.Context, text string) ([]annotate.Token, error) {
	f.mu.Lock()
	f.calls++
	fail := f.calls <= f.failures
	f.mu.Unlock()
	if fail {
		return nil, f.err
	}
	return annotate.NewSimple().Annotate(ctx, text)
}

func TestWorker_RetriesAnnotator(t *testing.T) {
	a := &flakyAnnotator{failures: 2, err: &annotate.RetryableError{StatusCode: 503, Message: "busy"}}
	w, _ := newTestWorker(t, a, nil)
	job := NewJob("note.txt", "", []byte("Let y be small."))
	w.Process(context.Background(), job)

	assert.Equal(t, StatusCompleted, job.Snapshot().Status)
	assert.Equal(t, 3, a.calls)
	require.Len(t, job.Results().Matches, 1)
}

func TestWorker_AnnotatorFailureReleasesHash(t *testing.T) {
	a := &flakyAnnotator{failures: 100, err: errors.New("tagger down")}
	w, idx := newTestWorker(t, a, nil)
	job := NewJob("note.txt", "", []byte("Let y be small."))
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, 1, a.calls)
	require.NotEmpty(t, snap.Progress.Errors)
	assert.Contains(t, snap.Progress.Errors[0], "tagger down")

	_, seen, err := idx.SeenDocument(snap.ContentHash)
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestWorker_Publishes(t *testing.T) {
	var (
		mu   sync.Mutex
		keys []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		keys = append(keys, r.Method+" "+r.URL.Path)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w, _ := newTestWorker(t, nil, sink.NewClient(srv.URL, "k"))
	job := NewJob("paper.html", "", []byte(paperHTML))
	w.Process(context.Background(), job)
	require.Equal(t, StatusCompleted, job.Snapshot().Status)

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, keys, "PUT /kv/llamapun/documents/"+job.DocID+"/meta")
	assert.Contains(t, keys, "PUT /kv/llamapun/documents/"+job.DocID+"/matches/definition/0")
	assert.Contains(t, keys, "PUT /links")
}

func TestWorker_MatchText(t *testing.T) {
	w, idx := newTestWorker(t, nil, nil)
	got, err := w.MatchText(context.Background(), "Let z be odd. Let w be even.", nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Let z be", got[0].Text)
	assert.Equal(t, 1, got[1].Sentence)

	n, err := idx.DistinctFormulas()
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = w.MatchText(context.Background(), "x", []string{"nope"})
	assert.ErrorIs(t, err, pattern.ErrUnknownRule)
}

func TestNewWorker_Errors(t *testing.T) {
	reg, err := pattern.Compile(testRules)
	require.NoError(t, err)
	m := pattern.NewMatcher(reg)

	set := DefaultSettings()
	set.FormulaXPath = "//*["
	_, err = NewWorker(m, annotate.NewSimple(), nil, nil, quietLog(), set)
	assert.Error(t, err)

	set = DefaultSettings()
	set.Rules = []string{"nope"}
	_, err = NewWorker(m, annotate.NewSimple(), nil, nil, quietLog(), set)
	assert.ErrorIs(t, err, pattern.ErrUnknownRule)
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	calls := 0
	_, err := retry(context.Background(), func(int) time.Duration { return 0 }, func() (int, error) {
		calls++
		return 0, errors.New("permanent")
	}, nil)
	assert.Error(t, err)
	assert.Equal(t, 1, calls)

	calls = 0
	_, err = retry(context.Background(), func(int) time.Duration { return 0 }, func() (int, error) {
		calls++
		return 0, &annotate.RetryableError{StatusCode: 429}
	}, nil)
	assert.True(t, IsRetryable(err))
	assert.Equal(t, MaxRetries, calls)
}

func TestBackoff_Bounds(t *testing.T) {
	for attempt := range 8 {
		d := Backoff(attempt)
		assert.GreaterOrEqual(t, d, time.Second)
		assert.Less(t, d, 45*time.Second)
	}
}

func waitDone(t *testing.T, job *Job) JobSnapshot {
	t.Helper()
	require.Eventually(t, func() bool { return job.Snapshot().Status.Done() }, 5*time.Second, 5*time.Millisecond)
	return job.Snapshot()
}

func TestOrchestrator_ProcessesJobs(t *testing.T) {
	w, _ := newTestWorker(t, nil, nil)
	o, err := NewOrchestrator(w, 2, 10, time.Hour, quietLog())
	require.NoError(t, err)
	o.Start(context.Background())

	a := NewJob("a.txt", "", []byte("Let a be one."))
	b := NewJob("b.txt", "", []byte("Let b be two."))
	require.NoError(t, o.Submit(a))
	require.NoError(t, o.Submit(b))

	assert.Equal(t, StatusCompleted, waitDone(t, a).Status)
	assert.Equal(t, StatusCompleted, waitDone(t, b).Status)
	assert.Same(t, a, o.GetJob(a.ID))
	assert.Same(t, w, o.Worker())

	require.NoError(t, o.Stop(context.Background()))
	assert.ErrorIs(t, o.Submit(NewJob("c.txt", "", nil)), ErrStopped)
	require.NoError(t, o.Stop(context.Background()))
}

func TestOrchestrator_PanicFailsJob(t *testing.T) {
	reg, err := pattern.Compile(testRules)
	require.NoError(t, err)
	// A worker without an index panics at the duplicate check.
	w, err := NewWorker(pattern.NewMatcher(reg), annotate.NewSimple(), nil, nil, quietLog(), DefaultSettings())
	require.NoError(t, err)

	o, err := NewOrchestrator(w, 1, 4, time.Hour, quietLog())
	require.NoError(t, err)
	o.Start(context.Background())
	defer o.Stop(context.Background())

	job := NewJob("a.txt", "", []byte("text"))
	require.NoError(t, o.Submit(job))
	snap := waitDone(t, job)
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, "panic", snap.Phase)
}

func TestOrchestrator_QueueFull(t *testing.T) {
	w, _ := newTestWorker(t, nil, nil)
	o, err := NewOrchestrator(w, 1, 1, time.Hour, quietLog())
	require.NoError(t, err)

	first := NewJob("a.txt", "", []byte("a"))
	require.NoError(t, o.Submit(first))
	assert.Equal(t, 1, o.QueueDepth())

	second := NewJob("b.txt", "", []byte("b"))
	assert.ErrorIs(t, o.Submit(second), ErrQueueFull)
	assert.Equal(t, StatusFailed, second.Snapshot().Status)

	require.NoError(t, o.Stop(context.Background()))
	assert.Equal(t, StatusQueued, first.Snapshot().Status)
}
