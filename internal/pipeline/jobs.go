package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/KWARC/llamapun/internal/dnm"
)

// JobStatus represents the state of a document job.
type JobStatus string

const (
	StatusQueued      JobStatus = "queued"
	StatusParsing     JobStatus = "parsing"
	StatusNormalizing JobStatus = "normalizing"
	StatusAnnotating  JobStatus = "annotating"
	StatusHashing     JobStatus = "hashing"
	StatusPublishing  JobStatus = "publishing"
	StatusCompleted   JobStatus = "completed"
	StatusFailed      JobStatus = "failed"
	StatusPartial     JobStatus = "partial"
	StatusDupSkipped  JobStatus = "duplicate_skipped"
)

// Done reports whether s is a terminal state.
func (s JobStatus) Done() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusPartial, StatusDupSkipped:
		return true
	}
	return false
}

// Job tracks the state of a single document.
type Job struct {
	mu sync.Mutex

	ID    string `json:"job_id"`
	DocID string `json:"doc_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`

	// Rules overrides the configured match rules when non-empty.
	Rules []string `json:"rules,omitempty"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	DuplicateOf string    `json:"duplicate_of,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	doc      *dnm.DNM
	results  *Results
	errors   []string
	warnings []string
}

// Progress tracks processing progress.
type Progress struct {
	Paragraphs         int      `json:"paragraphs"`
	TotalSentences     int      `json:"total_sentences"`
	SentencesProcessed int      `json:"sentences_processed"`
	Matches            int      `json:"matches"`
	Formulas           int      `json:"formulas"`
	FormulasIndexed    int      `json:"formulas_indexed"`
	Errors             []string `json:"errors"`
	Warnings           []string `json:"warnings"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Len returns the number of tracked jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// NewJob creates a queued job for the given upload.
func NewJob(filename, title string, data []byte) *Job {
	now := time.Now()
	return &Job{
		ID:        generateULID(),
		DocID:     generateULID(),
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		fileData:  data,
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// AddWarning records a problem that did not stop processing.
func (j *Job) AddWarning(w string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.warnings = append(j.warnings, w)
	j.Progress.Warnings = j.warnings
	j.UpdatedAt = time.Now()
}

// SetContentHash records the hash used for duplicate detection.
func (j *Job) SetContentHash(h string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = h
}

// MarkDuplicate records the document this job's content was first seen as.
func (j *Job) MarkDuplicate(docID string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.DuplicateOf = docID
	j.fileData = nil
}

// SetSegments records paragraph and sentence counts.
func (j *Job) SetSegments(paragraphs, sentences int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Paragraphs = paragraphs
	j.Progress.TotalSentences = sentences
	j.UpdatedAt = time.Now()
}

// IncrSentencesProcessed atomically increments sentences processed.
func (j *Job) IncrSentencesProcessed() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.SentencesProcessed++
	j.UpdatedAt = time.Now()
}

// AddMatches records found matches.
func (j *Job) AddMatches(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Matches += n
	j.UpdatedAt = time.Now()
}

// AddFormulas records hashed and indexed formula counts.
func (j *Job) AddFormulas(hashed, indexed int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Formulas += hashed
	j.Progress.FormulasIndexed += indexed
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetDocument keeps the normalized document for address resolution and
// drops the raw upload.
func (j *Job) SetDocument(d *dnm.DNM) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.doc = d
	j.fileData = nil
}

// Document returns the normalized document, or nil before normalization.
func (j *Job) Document() *dnm.DNM {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.doc
}

// SetResults stores the final results.
func (j *Job) SetResults(r *Results) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.results = r
	j.UpdatedAt = time.Now()
}

// Results returns the results, or nil while the job is running.
func (j *Job) Results() *Results {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.results
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	DocID       string    `json:"doc_id"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	ContentHash string    `json:"content_hash,omitempty"`
	DuplicateOf string    `json:"duplicate_of,omitempty"`
	Progress    Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	p := j.Progress
	p.Errors = append([]string{}, j.errors...)
	p.Warnings = append([]string{}, j.warnings...)
	return JobSnapshot{
		ID:          j.ID,
		DocID:       j.DocID,
		Status:      j.Status,
		Phase:       j.Phase,
		Filename:    j.Filename,
		Title:       j.Title,
		ContentHash: j.ContentHash,
		DuplicateOf: j.DuplicateOf,
		Progress:    p,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
