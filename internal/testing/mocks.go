package testing

import (
	"sync"
)

// MockJob is a scheduler job that records its runs and returns a fixed error
type MockJob struct {
	JobName string
	Err     error

	mu   sync.Mutex
	runs int
}

// NewMockJob creates a mock job
func NewMockJob(name string, err error) *MockJob {
	return &MockJob{JobName: name, Err: err}
}

// Run records the call and returns Err
func (j *MockJob) Run() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.runs++
	return j.Err
}

// Name returns the job name
func (j *MockJob) Name() string {
	return j.JobName
}

// Runs returns how many times Run was called
func (j *MockJob) Runs() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.runs
}
