package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FileFailure records a file that was skipped and why.
type FileFailure struct {
	Path string
	Err  error
}

func (f FileFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

func (f FileFailure) Unwrap() error { return f.Err }

// FamilyReport summarizes one stage.
type FamilyReport struct {
	Family       string
	Root         string
	Found        int
	Processed    int
	Instructions int
	Failures     []FileFailure
}

// Report summarizes a run.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Families   []*FamilyReport
}

func newReport() *Report {
	return &Report{RunID: uuid.NewString(), StartedAt: time.Now()}
}

func (r *Report) Family(name string) *FamilyReport {
	for _, f := range r.Families {
		if f.Family == name {
			return f
		}
	}
	return nil
}

func (r *Report) Failed() int {
	n := 0
	for _, f := range r.Families {
		n += len(f.Failures)
	}
	return n
}

func (r *Report) Processed() int {
	n := 0
	for _, f := range r.Families {
		n += f.Processed
	}
	return n
}

func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Err joins every recorded file failure, or returns nil when there were none.
func (r *Report) Err() error {
	var errs []error
	for _, f := range r.Families {
		for _, failure := range f.Failures {
			errs = append(errs, failure)
		}
	}
	return errors.Join(errs...)
}
