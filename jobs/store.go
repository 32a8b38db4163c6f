package jobs

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	jobboard "github.com/goliatone/go-jobboard"
)

// ErrJobNotFound is returned when no posting matches the given id.
var ErrJobNotFound = goerrors.New("job not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound).
	WithTextCode("JOB_NOT_FOUND")

// ErrApplicationNotFound is returned when no application matches the given id.
var ErrApplicationNotFound = goerrors.New("application not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound).
	WithTextCode("APPLICATION_NOT_FOUND")

// ErrAlreadyApplied is returned when an employee applies twice to the same job.
var ErrAlreadyApplied = goerrors.New("you have already applied for this job", goerrors.CategoryConflict).
	WithCode(goerrors.CodeBadRequest).
	WithTextCode("ALREADY_APPLIED")

// JobFilter narrows List results. Zero values match everything.
type JobFilter struct {
	Status   string
	Category string
	Search   string
}

// Jobs is the posting store.
type Jobs interface {
	Create(ctx context.Context, job *Job) (*Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Job, error)
	List(ctx context.Context, filter JobFilter) ([]*Job, error)
	Update(ctx context.Context, job *Job) (*Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Applications is the application store.
type Applications interface {
	Create(ctx context.Context, app *Application) (*Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Application, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]*Application, error)
	CountByEmployee(ctx context.Context, employeeID uuid.UUID) (int, error)
	HasApplied(ctx context.Context, jobID, employeeID uuid.UUID) (bool, error)
	Update(ctx context.Context, app *Application) (*Application, error)
}

// JobStore is the in-memory Jobs implementation, safe for concurrent use.
type JobStore struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Job
}

var _ Jobs = (*JobStore)(nil)

// NewJobStore creates an empty job store.
func NewJobStore() *JobStore {
	return &JobStore{byID: map[uuid.UUID]*Job{}}
}

func (s *JobStore) Create(ctx context.Context, job *Job) (*Job, error) {
	record := job.Clone()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.JobType == "" {
		record.JobType = DefaultJobType
	}
	if record.Status == "" {
		record.Status = JobStatusActive
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[record.ID] = record

	return record.Clone(), nil
}

func (s *JobStore) GetByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if record, ok := s.byID[id]; ok {
		return record.Clone(), nil
	}
	return nil, jobboard.ErrorWithMetadata(ErrJobNotFound, map[string]any{
		"id": id.String(),
	})
}

// List returns postings matching the filter, newest first.
func (s *JobStore) List(ctx context.Context, filter JobFilter) ([]*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(filter.Search)

	out := make([]*Job, 0, len(s.byID))
	for _, record := range s.byID {
		if filter.Status != "" && record.Status != filter.Status {
			continue
		}
		if filter.Category != "" && record.Category != filter.Category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(record.Title), needle) &&
			!strings.Contains(strings.ToLower(record.Description), needle) {
			continue
		}
		out = append(out, record.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (s *JobStore) Update(ctx context.Context, job *Job) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[job.ID]; !ok {
		return nil, jobboard.ErrorWithMetadata(ErrJobNotFound, map[string]any{
			"id": job.ID.String(),
		})
	}

	record := job.Clone()
	now := time.Now()
	record.UpdatedAt = &now
	s.byID[record.ID] = record

	return record.Clone(), nil
}

func (s *JobStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return jobboard.ErrorWithMetadata(ErrJobNotFound, map[string]any{
			"id": id.String(),
		})
	}
	delete(s.byID, id)
	return nil
}

// ApplicationStore is the in-memory Applications implementation, safe for
// concurrent use.
type ApplicationStore struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Application
}

var _ Applications = (*ApplicationStore)(nil)

// NewApplicationStore creates an empty application store.
func NewApplicationStore() *ApplicationStore {
	return &ApplicationStore{byID: map[uuid.UUID]*Application{}}
}

func (s *ApplicationStore) Create(ctx context.Context, app *Application) (*Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.byID {
		if record.JobID == app.JobID && record.EmployeeID == app.EmployeeID {
			return nil, ErrAlreadyApplied
		}
	}

	record := app.Clone()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.Status == "" {
		record.Status = ApplicationStatusPending
	}
	if record.AppliedAt.IsZero() {
		record.AppliedAt = time.Now()
	}
	s.byID[record.ID] = record

	return record.Clone(), nil
}

func (s *ApplicationStore) GetByID(ctx context.Context, id uuid.UUID) (*Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if record, ok := s.byID[id]; ok {
		return record.Clone(), nil
	}
	return nil, jobboard.ErrorWithMetadata(ErrApplicationNotFound, map[string]any{
		"id": id.String(),
	})
}

func (s *ApplicationStore) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*Application{}
	for _, record := range s.byID {
		if record.EmployeeID == employeeID {
			out = append(out, record.Clone())
		}
	}
	sortApplications(out)
	return out, nil
}

func (s *ApplicationStore) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*Application{}
	for _, record := range s.byID {
		if record.JobID == jobID {
			out = append(out, record.Clone())
		}
	}
	sortApplications(out)
	return out, nil
}

func (s *ApplicationStore) CountByEmployee(ctx context.Context, employeeID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, record := range s.byID {
		if record.EmployeeID == employeeID {
			count++
		}
	}
	return count, nil
}

func (s *ApplicationStore) HasApplied(ctx context.Context, jobID, employeeID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.byID {
		if record.JobID == jobID && record.EmployeeID == employeeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *ApplicationStore) Update(ctx context.Context, app *Application) (*Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[app.ID]; !ok {
		return nil, jobboard.ErrorWithMetadata(ErrApplicationNotFound, map[string]any{
			"id": app.ID.String(),
		})
	}

	record := app.Clone()
	now := time.Now()
	record.UpdatedAt = &now
	s.byID[record.ID] = record

	return record.Clone(), nil
}

func sortApplications(apps []*Application) {
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].AppliedAt.After(apps[j].AppliedAt)
	})
}
