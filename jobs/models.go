// Package jobs implements job postings and applications: the employer-facing
// posting lifecycle, the employee application flow, and the progress views
// built on top of them.
package jobs

import (
	"time"

	"github.com/google/uuid"

	jobboard "github.com/goliatone/go-jobboard"
)

// Job statuses.
const (
	JobStatusActive = "active"
	JobStatusClosed = "closed"
)

// Application statuses. Progress is tracked separately as a 0-100 figure.
const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusScreening = "screening"
	ApplicationStatusInterview = "interview"
	ApplicationStatusAccepted  = "accepted"
	ApplicationStatusRejected  = "rejected"
)

// DefaultJobType is applied when a posting omits the job type.
const DefaultJobType = "full-time"

// Job is a posting created by an employer.
type Job struct {
	ID            uuid.UUID           `json:"id"`
	EmployerID    uuid.UUID           `json:"employer_id"`
	EmployerName  string              `json:"employer_name,omitempty"`
	EmployerEmail string              `json:"employer_email,omitempty"`
	Title         string              `json:"title"`
	Description   string              `json:"description,omitempty"`
	Requirements  jobboard.StringList `json:"requirements,omitempty"`
	Location      string              `json:"location,omitempty"`
	Salary        string              `json:"salary,omitempty"`
	JobType       string              `json:"job_type,omitempty"`
	Category      string              `json:"category,omitempty"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     *time.Time          `json:"updated_at,omitempty"`
}

// Clone returns a copy safe to hand to callers.
func (j *Job) Clone() *Job {
	if j == nil {
		return nil
	}
	out := *j
	out.Requirements = append(jobboard.StringList(nil), j.Requirements...)
	return &out
}

// Application is an employee's application to a job.
type Application struct {
	ID              uuid.UUID         `json:"id"`
	JobID           uuid.UUID         `json:"job_id"`
	EmployeeID      uuid.UUID         `json:"employee_id"`
	EmployeeName    string            `json:"employee_name,omitempty"`
	EmployeeEmail   string            `json:"employee_email,omitempty"`
	EmployeeProfile *jobboard.Profile `json:"employee_profile,omitempty"`
	Status          string            `json:"status"`
	Progress        int               `json:"progress"`
	Notes           string            `json:"notes"`
	AppliedAt       time.Time         `json:"applied_at"`
	UpdatedAt       *time.Time        `json:"updated_at,omitempty"`
}

// Clone returns a copy safe to hand to callers.
func (a *Application) Clone() *Application {
	if a == nil {
		return nil
	}
	out := *a
	if a.EmployeeProfile != nil {
		profile := *a.EmployeeProfile
		out.EmployeeProfile = &profile
	}
	return &out
}

// ApplicationWithJob decorates an application with its posting for list views.
type ApplicationWithJob struct {
	*Application
	Job *Job `json:"job,omitempty"`
}

// Progress summarizes an employee's applications.
type Progress struct {
	TotalApplications      int                  `json:"total_applications"`
	PendingApplications    int                  `json:"pending_applications"`
	InProgressApplications int                  `json:"in_progress_applications"`
	AcceptedApplications   int                  `json:"accepted_applications"`
	RejectedApplications   int                  `json:"rejected_applications"`
	AverageProgress        int                  `json:"average_progress"`
	Applications           []ApplicationWithJob `json:"applications"`
}
