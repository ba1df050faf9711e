package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/chemdoc/figref/internal/figure"
)

// JobStatus represents the state of a conversion job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusImporting  JobStatus = "importing"
	StatusParsing    JobStatus = "parsing"
	StatusNumbering  JobStatus = "numbering"
	StatusRendering  JobStatus = "rendering"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusDupSkipped JobStatus = "duplicate_skipped"
)

// Job tracks the state of a single document conversion.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status   JobStatus     `json:"status"`
	Phase    string        `json:"phase"`
	Filename string        `json:"filename"`
	Target   figure.Target `json:"target,omitempty"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	DuplicateOf string    `json:"duplicate_of,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	requestedTarget string
	fileData        []byte
	result          []byte
	contentType     string
	figures         []figure.Entry
	errors          []string
}

// NewJob returns a queued job for an uploaded file. requestedTarget may be
// empty, deferring the target choice to the document frontmatter or the
// configured default.
func NewJob(id, filename, requestedTarget string) *Job {
	now := time.Now()
	return &Job{
		ID:              id,
		Status:          StatusQueued,
		Phase:           "queued",
		Filename:        filename,
		requestedTarget: requestedTarget,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Progress carries the run report counters of a conversion.
type Progress struct {
	Figures        int      `json:"figures"`
	RefsResolved   int      `json:"refs_resolved"`
	RefsUnresolved int      `json:"refs_unresolved"`
	LabelConflicts int      `json:"label_conflicts"`
	Errors         []string `json:"errors"`
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

// List returns all tracked jobs in no particular order.
func (s *JobStore) List() []*Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs := make([]*Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		jobs = append(jobs, j)
	}
	return jobs
}

// Delete removes a job and reports whether it existed.
func (s *JobStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return false
	}
	delete(s.jobs, id)
	return true
}

// FindByHash returns a completed job with the same content hash and target,
// if any. Used for duplicate detection.
func (s *JobStore) FindByHash(hash string, target figure.Target) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, job := range s.jobs {
		job.mu.Lock()
		match := job.Status == StatusCompleted && job.ContentHash == hash && job.Target == target
		job.mu.Unlock()
		if match {
			return job
		}
	}
	return nil
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
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

// SetTarget records the resolved output target.
func (j *Job) SetTarget(t figure.Target) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Target = t
	j.UpdatedAt = time.Now()
}

// SetContentHash records the hash of the imported source.
func (j *Job) SetContentHash(hash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = hash
	j.UpdatedAt = time.Now()
}

// SetDuplicateOf marks the job as a duplicate of a prior one.
func (j *Job) SetDuplicateOf(id string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.DuplicateOf = id
	j.UpdatedAt = time.Now()
}

// SetReport folds a run report into the job progress.
func (j *Job) SetReport(report figure.Report) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Figures = report.Figures
	j.Progress.RefsResolved = report.RefsResolved
	j.Progress.RefsUnresolved = report.RefsUnresolved
	j.Progress.LabelConflicts = report.LabelConflicts
	j.UpdatedAt = time.Now()
}

// SetFigures records the registry index of the run.
func (j *Job) SetFigures(entries []figure.Entry) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.figures = entries
	j.UpdatedAt = time.Now()
}

// Figures returns the registry index of the run.
func (j *Job) Figures() []figure.Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.figures
}

// SetResult stores the rendered output and its content type.
func (j *Job) SetResult(data []byte, contentType string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = data
	j.contentType = contentType
	j.UpdatedAt = time.Now()
}

// Result returns the rendered output and its content type.
func (j *Job) Result() ([]byte, string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result, j.contentType
}

// SetFileData sets the raw upload bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw upload bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string        `json:"job_id"`
	Status      JobStatus     `json:"status"`
	Phase       string        `json:"phase"`
	Filename    string        `json:"filename"`
	Target      figure.Target `json:"target,omitempty"`
	DuplicateOf string        `json:"duplicate_of,omitempty"`
	Progress    Progress      `json:"progress"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:          j.ID,
		Status:      j.Status,
		Phase:       j.Phase,
		Filename:    j.Filename,
		Target:      j.Target,
		DuplicateOf: j.DuplicateOf,
		Progress: Progress{
			Figures:        j.Progress.Figures,
			RefsResolved:   j.Progress.RefsResolved,
			RefsUnresolved: j.Progress.RefsUnresolved,
			LabelConflicts: j.Progress.LabelConflicts,
			Errors:         errs,
		},
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
