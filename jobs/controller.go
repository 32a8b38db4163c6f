package jobs

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	jobboard "github.com/goliatone/go-jobboard"
	"github.com/goliatone/go-jobboard/notify"
)

// Controller serves the posting, application, progress, and candidate search
// endpoints.
type Controller struct {
	Logger       jobboard.Logger
	Jobs         Jobs
	Applications Applications
	Users        jobboard.Users
	Notifier     notify.Notifier
}

// ControllerOption customizes controller construction.
type ControllerOption func(*Controller) *Controller

// NewController builds the controller, panicking on missing dependencies so
// miswiring fails at startup rather than at request time.
func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Jobs == nil {
		panic("Missing Jobs store in jobs controller...")
	}
	if c.Applications == nil {
		panic("Missing Applications store in jobs controller...")
	}
	if c.Users == nil {
		panic("Missing Users store in jobs controller...")
	}
	if c.Logger == nil {
		c.Logger = jobboard.NewDefaultLogger()
	}
	c.Notifier = notify.Normalize(c.Notifier)

	return c
}

// WithStores sets the posting and application stores.
func WithStores(jobs Jobs, applications Applications) ControllerOption {
	return func(c *Controller) *Controller {
		c.Jobs = jobs
		c.Applications = applications
		return c
	}
}

// WithUsers sets the account store.
func WithUsers(users jobboard.Users) ControllerOption {
	return func(c *Controller) *Controller {
		c.Users = users
		return c
	}
}

// WithNotifier sets the mail transport.
func WithNotifier(n notify.Notifier) ControllerOption {
	return func(c *Controller) *Controller {
		c.Notifier = n
		return c
	}
}

// WithLogger sets the logger.
func WithLogger(l jobboard.Logger) ControllerOption {
	return func(c *Controller) *Controller {
		if l != nil {
			c.Logger = l
		}
		return c
	}
}

// RegisterRoutes mounts the job board endpoints. All routes require a valid
// session; role checks are per route.
func RegisterRoutes(app fiber.Router, controller *Controller, validator jobboard.TokenValidator) {
	authed := jobboard.Protected(validator)

	app.Post("/api/jobs", authed, jobboard.RequireRole(jobboard.RoleEmployer), controller.CreateJob)
	app.Get("/api/jobs", authed, controller.ListJobs)
	app.Get("/api/jobs/:id", authed, controller.GetJob)
	app.Put("/api/jobs/:id", authed, controller.UpdateJob)
	app.Delete("/api/jobs/:id", authed, controller.DeleteJob)
	app.Post("/api/jobs/:id/apply", authed, jobboard.RequireRole(jobboard.RoleEmployee), controller.Apply)
	app.Get("/api/applications", authed, controller.ListApplications)
	app.Put("/api/applications/:id", authed, controller.UpdateApplication)
	app.Get("/api/progress", authed, jobboard.RequireRole(jobboard.RoleEmployee), controller.GetProgress)
	app.Get("/api/employees", authed, jobboard.RequireRole(jobboard.RoleEmployer), controller.SearchEmployees)
}

// JobRequest is the create/update payload for postings.
type JobRequest struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Requirements jobboard.StringList `json:"requirements"`
	Location     string              `json:"location"`
	Salary       string              `json:"salary"`
	JobType      string              `json:"job_type"`
	Category     string              `json:"category"`
	Status       string              `json:"status"`
}

// Validate will run validation rules
func (r JobRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Required),
	)
}

// CreateJob posts a new job and notifies the employer.
func (h *Controller) CreateJob(c *fiber.Ctx) error {
	payload := new(JobRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
			WithCode(goerrors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	employerID, err := uuid.Parse(jobboard.UserIDFromCtx(c))
	if err != nil {
		return jobboard.ErrUnauthenticated
	}

	employer, err := h.Users.GetByID(c.Context(), employerID)
	if err != nil {
		return err
	}

	job, err := h.Jobs.Create(c.Context(), &Job{
		EmployerID:    employer.ID,
		EmployerName:  employer.Name,
		EmployerEmail: employer.Email,
		Title:         payload.Title,
		Description:   payload.Description,
		Requirements:  payload.Requirements,
		Location:      payload.Location,
		Salary:        payload.Salary,
		JobType:       payload.JobType,
		Category:      payload.Category,
	})
	if err != nil {
		return err
	}

	if err := h.Notifier.Send(c.Context(), notify.JobPosted(employer.Email, jobInfo(job))); err != nil {
		h.Logger.Warn("failed to send job posted email: %v", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Job posted successfully",
		"job":     job,
	})
}

// ListJobs returns postings newest first, filtered by status, category, and
// a free-text search over title and description.
func (h *Controller) ListJobs(c *fiber.Ctx) error {
	list, err := h.Jobs.List(c.Context(), JobFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return err
	}

	return c.JSON(list)
}

// GetJob returns a single posting.
func (h *Controller) GetJob(c *fiber.Ctx) error {
	job, err := h.jobFromParams(c)
	if err != nil {
		return err
	}
	return c.JSON(job)
}

// UpdateJob merges the posted fields into the posting. Only the owning
// employer may update it.
func (h *Controller) UpdateJob(c *fiber.Ctx) error {
	job, err := h.jobFromParams(c)
	if err != nil {
		return err
	}

	if job.EmployerID.String() != jobboard.UserIDFromCtx(c) {
		return jobboard.ErrorWithMetadata(jobboard.ErrForbidden, map[string]any{
			"job_id": job.ID.String(),
		})
	}

	payload := new(JobRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
			WithCode(goerrors.CodeBadRequest)
	}

	if payload.Title != "" {
		job.Title = payload.Title
	}
	if payload.Description != "" {
		job.Description = payload.Description
	}
	if payload.Requirements != nil {
		job.Requirements = payload.Requirements
	}
	if payload.Location != "" {
		job.Location = payload.Location
	}
	if payload.Salary != "" {
		job.Salary = payload.Salary
	}
	if payload.JobType != "" {
		job.JobType = payload.JobType
	}
	if payload.Category != "" {
		job.Category = payload.Category
	}
	if payload.Status != "" {
		job.Status = payload.Status
	}

	updated, err := h.Jobs.Update(c.Context(), job)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Job updated successfully",
		"job":     updated,
	})
}

// DeleteJob removes a posting. Only the owning employer may delete it.
func (h *Controller) DeleteJob(c *fiber.Ctx) error {
	job, err := h.jobFromParams(c)
	if err != nil {
		return err
	}

	if job.EmployerID.String() != jobboard.UserIDFromCtx(c) {
		return jobboard.ErrorWithMetadata(jobboard.ErrForbidden, map[string]any{
			"job_id": job.ID.String(),
		})
	}

	if err := h.Jobs.Delete(c.Context(), job.ID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Job deleted successfully"})
}

// Apply submits an application. The employee must have a CV on file, and may
// only apply once per posting. Both parties are notified.
func (h *Controller) Apply(c *fiber.Ctx) error {
	job, err := h.jobFromParams(c)
	if err != nil {
		return err
	}

	employeeID, err := uuid.Parse(jobboard.UserIDFromCtx(c))
	if err != nil {
		return jobboard.ErrUnauthenticated
	}

	employee, err := h.Users.GetByID(c.Context(), employeeID)
	if err != nil {
		return err
	}

	if employee.Profile == nil || employee.Profile.CV == "" {
		return goerrors.New("please upload your CV before applying", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest).
			WithTextCode("CV_REQUIRED")
	}

	application, err := h.Applications.Create(c.Context(), &Application{
		JobID:           job.ID,
		EmployeeID:      employee.ID,
		EmployeeName:    employee.Name,
		EmployeeEmail:   employee.Email,
		EmployeeProfile: employee.Profile,
	})
	if err != nil {
		return err
	}

	candidate := notify.CandidateInfo{
		Name:            employee.Name,
		Email:           employee.Email,
		Skills:          employee.Profile.Skills,
		DesiredJobTitle: employee.Profile.DesiredJobTitle,
	}

	if err := h.Notifier.Send(c.Context(), notify.ApplicationReceived(employee.Email, jobInfo(job), candidate)); err != nil {
		h.Logger.Warn("failed to send application received email: %v", err)
	}
	if job.EmployerEmail != "" {
		if err := h.Notifier.Send(c.Context(), notify.NewApplication(job.EmployerEmail, jobInfo(job), candidate)); err != nil {
			h.Logger.Warn("failed to send new application email: %v", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Application submitted successfully",
		"application": application,
	})
}

// ListApplications returns the caller's applications: employees see their
// own, employers see applications to their postings.
func (h *Controller) ListApplications(c *fiber.Ctx) error {
	callerID, err := uuid.Parse(jobboard.UserIDFromCtx(c))
	if err != nil {
		return jobboard.ErrUnauthenticated
	}

	var apps []*Application

	switch jobboard.RoleFromCtx(c) {
	case jobboard.RoleEmployee:
		apps, err = h.Applications.ListByEmployee(c.Context(), callerID)
		if err != nil {
			return err
		}
	case jobboard.RoleEmployer:
		postings, err := h.Jobs.List(c.Context(), JobFilter{})
		if err != nil {
			return err
		}
		for _, job := range postings {
			if job.EmployerID != callerID {
				continue
			}
			jobApps, err := h.Applications.ListByJob(c.Context(), job.ID)
			if err != nil {
				return err
			}
			apps = append(apps, jobApps...)
		}
	default:
		return jobboard.ErrForbidden
	}

	return c.JSON(h.withJobs(c, apps))
}

// ApplicationUpdateRequest is the employer-facing update payload.
type ApplicationUpdateRequest struct {
	Status   string  `json:"status"`
	Progress *int    `json:"progress"`
	Notes    *string `json:"notes"`
}

// Validate will run validation rules
func (r ApplicationUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.In(
			ApplicationStatusPending,
			ApplicationStatusScreening,
			ApplicationStatusInterview,
			ApplicationStatusAccepted,
			ApplicationStatusRejected,
		)),
	)
}

// UpdateApplication changes status, progress, or notes. Only the employer
// owning the posting may update; status changes notify the candidate.
func (h *Controller) UpdateApplication(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return ErrApplicationNotFound
	}

	application, err := h.Applications.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	job, err := h.Jobs.GetByID(c.Context(), application.JobID)
	if err != nil || job.EmployerID.String() != jobboard.UserIDFromCtx(c) {
		return jobboard.ErrorWithMetadata(jobboard.ErrForbidden, map[string]any{
			"application_id": id.String(),
		})
	}

	payload := new(ApplicationUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
			WithCode(goerrors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	if payload.Status != "" && payload.Status != application.Status {
		msg := notify.ApplicationUpdate(application.EmployeeEmail, application.EmployeeName, job.Title, payload.Status)
		if err := h.Notifier.Send(c.Context(), msg); err != nil {
			h.Logger.Warn("failed to send application update email: %v", err)
		}
		application.Status = payload.Status
	}
	if payload.Progress != nil {
		application.Progress = *payload.Progress
	}
	if payload.Notes != nil {
		application.Notes = *payload.Notes
	}

	updated, err := h.Applications.Update(c.Context(), application)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":     "Application updated successfully",
		"application": updated,
	})
}

// GetProgress summarizes the employee's applications by status.
func (h *Controller) GetProgress(c *fiber.Ctx) error {
	employeeID, err := uuid.Parse(jobboard.UserIDFromCtx(c))
	if err != nil {
		return jobboard.ErrUnauthenticated
	}

	apps, err := h.Applications.ListByEmployee(c.Context(), employeeID)
	if err != nil {
		return err
	}

	progress := Progress{
		TotalApplications: len(apps),
		Applications:      h.withJobs(c, apps),
	}

	sum := 0
	for _, app := range apps {
		sum += app.Progress
		switch app.Status {
		case ApplicationStatusPending:
			progress.PendingApplications++
		case ApplicationStatusScreening, ApplicationStatusInterview:
			progress.InProgressApplications++
		case ApplicationStatusAccepted:
			progress.AcceptedApplications++
		case ApplicationStatusRejected:
			progress.RejectedApplications++
		}
	}
	if len(apps) > 0 {
		progress.AverageProgress = (sum + len(apps)/2) / len(apps)
	}

	return c.JSON(progress)
}

// SearchEmployees lists employee accounts with their application counts,
// optionally filtered by a comma-separated skills query.
func (h *Controller) SearchEmployees(c *fiber.Ctx) error {
	users, err := h.Users.List(c.Context())
	if err != nil {
		return err
	}

	var skills []string
	if q := c.Query("skills"); q != "" {
		for _, s := range strings.Split(strings.ToLower(q), ",") {
			skills = append(skills, strings.TrimSpace(s))
		}
	}

	type employeeResult struct {
		*jobboard.User
		ApplicationCount int `json:"application_count"`
	}

	out := []employeeResult{}
	for _, user := range users {
		if user.Role != jobboard.RoleEmployee {
			continue
		}
		if len(skills) > 0 && !hasAnySkill(user, skills) {
			continue
		}
		count, err := h.Applications.CountByEmployee(c.Context(), user.ID)
		if err != nil {
			return err
		}
		out = append(out, employeeResult{User: user, ApplicationCount: count})
	}

	return c.JSON(out)
}

func (h *Controller) withJobs(c *fiber.Ctx, apps []*Application) []ApplicationWithJob {
	out := make([]ApplicationWithJob, 0, len(apps))
	for _, app := range apps {
		decorated := ApplicationWithJob{Application: app}
		if job, err := h.Jobs.GetByID(c.Context(), app.JobID); err == nil {
			decorated.Job = job
		}
		out = append(out, decorated)
	}
	return out
}

func (h *Controller) jobFromParams(c *fiber.Ctx) (*Job, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, ErrJobNotFound
	}
	return h.Jobs.GetByID(c.Context(), id)
}

func hasAnySkill(user *jobboard.User, skills []string) bool {
	if user.Profile == nil {
		return false
	}
	for _, have := range user.Profile.Skills {
		lower := strings.ToLower(have)
		for _, want := range skills {
			if strings.Contains(lower, want) {
				return true
			}
		}
	}
	return false
}

func jobInfo(job *Job) notify.JobInfo {
	return notify.JobInfo{
		Title:        job.Title,
		Category:     job.Category,
		Location:     job.Location,
		JobType:      job.JobType,
		Salary:       job.Salary,
		EmployerName: job.EmployerName,
	}
}
