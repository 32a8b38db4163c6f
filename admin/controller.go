// Package admin implements the administrator endpoints for managing
// accounts: listing, creating, restricting, reinstating, and removing users.
package admin

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	jobboard "github.com/goliatone/go-jobboard"
	"github.com/goliatone/go-jobboard/jobs"
)

// Controller serves the /api/admin endpoints.
type Controller struct {
	Logger       jobboard.Logger
	Users        jobboard.Users
	Applications jobs.Applications
	ActivitySink jobboard.ActivitySink
}

// NewController builds the admin controller. It panics if the user store is
// missing.
func NewController(opts ...Option) *Controller {
	controller := &Controller{
		Logger: jobboard.NewDefaultLogger(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(controller)
		}
	}

	if controller.Users == nil {
		panic("admin controller requires a user store")
	}

	controller.ActivitySink = jobboard.NormalizeActivitySink(controller.ActivitySink)

	return controller
}

// Option configures the controller.
type Option func(*Controller)

// WithUsers sets the user store.
func WithUsers(users jobboard.Users) Option {
	return func(c *Controller) {
		c.Users = users
	}
}

// WithApplications sets the application store used for account detail views.
func WithApplications(applications jobs.Applications) Option {
	return func(c *Controller) {
		c.Applications = applications
	}
}

// WithLogger sets the logger.
func WithLogger(logger jobboard.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithActivitySink sets the sink that receives account lifecycle events.
func WithActivitySink(sink jobboard.ActivitySink) Option {
	return func(c *Controller) {
		c.ActivitySink = sink
	}
}

// RegisterRoutes mounts the admin endpoints behind the admin role guard.
func RegisterRoutes(app fiber.Router, controller *Controller, validator jobboard.TokenValidator) {
	guard := []fiber.Handler{jobboard.Protected(validator), jobboard.AdminRequired()}

	group := app.Group("/api/admin", guard...)
	group.Get("/employees", controller.ListEmployees)
	group.Get("/employees/:id", controller.GetEmployee)
	group.Post("/employees", controller.AddEmployee)
	group.Put("/employees/:id/restrict", controller.RestrictEmployee)
	group.Put("/employees/:id/activate", controller.ActivateEmployee)
	group.Delete("/employees/:id", controller.RemoveEmployee)
}

// ListEmployees returns every employee and employer account. Management and
// admin accounts are excluded.
func (a *Controller) ListEmployees(c *fiber.Ctx) error {
	users, err := a.Users.List(c.Context())
	if err != nil {
		return err
	}

	out := make([]*jobboard.User, 0, len(users))
	for _, user := range users {
		if user.Role == jobboard.RoleEmployee || user.Role == jobboard.RoleEmployer {
			out = append(out, user)
		}
	}

	return c.JSON(out)
}

// GetEmployee returns a single account with its applications attached.
func (a *Controller) GetEmployee(c *fiber.Ctx) error {
	user, err := a.userFromParams(c)
	if err != nil {
		return err
	}

	applications := []*jobs.Application{}
	if a.Applications != nil {
		applications, err = a.Applications.ListByEmployee(c.Context(), user.ID)
		if err != nil {
			return err
		}
	}

	return c.JSON(struct {
		*jobboard.User
		Applications []*jobs.Application `json:"applications"`
	}{user, applications})
}

// AddEmployeeRequest carries the fields for an admin-created account.
type AddEmployeeRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	Designation string `json:"designation"`
}

// Validate implements validation.Validatable.
func (r AddEmployeeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Role, validation.In(
			jobboard.RoleEmployee,
			jobboard.RoleEmployer,
			jobboard.RoleManagement,
		)),
	)
}

// AddEmployee creates an account on behalf of an administrator. The account
// is active and verified immediately; the role defaults to employee.
func (a *Controller) AddEmployee(c *fiber.Ctx) error {
	payload := new(AddEmployeeRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
			WithCode(goerrors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	hash, err := jobboard.HashPassword(payload.Password)
	if err != nil {
		return err
	}

	role := payload.Role
	if role == "" {
		role = jobboard.RoleEmployee
	}

	now := time.Now()
	user := &jobboard.User{
		Email:        payload.Email,
		Name:         payload.Name,
		Designation:  payload.Designation,
		PasswordHash: hash,
		Role:         role,
		IsVerified:   true,
		IsActive:     true,
		Status:       jobboard.UserStatusActive,
		AddedBy:      jobboard.UserIDFromCtx(c),
		AddedAt:      &now,
	}

	created, err := a.Users.Register(c.Context(), user)
	if err != nil {
		return err
	}

	a.Logger.Info("admin %s added account %s (%s)", user.AddedBy, created.ID, created.Role)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Employee added successfully",
		"user":    created,
	})
}

// RestrictRequest carries the optional reason for a restriction.
type RestrictRequest struct {
	RestrictReason string `json:"restrict_reason"`
}

// RestrictEmployee deactivates the account. Admin accounts cannot be
// restricted.
func (a *Controller) RestrictEmployee(c *fiber.Ctx) error {
	user, err := a.userFromParams(c)
	if err != nil {
		return err
	}

	payload := new(RestrictRequest)
	if err := c.BodyParser(payload); err != nil && len(c.Body()) > 0 {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
			WithCode(goerrors.CodeBadRequest)
	}

	reason := payload.RestrictReason
	if reason == "" {
		reason = "No reason provided"
	}

	actor := jobboard.ActorRef{ID: jobboard.UserIDFromCtx(c), Type: "admin"}
	updated, err := a.Users.Restrict(c.Context(), actor, user,
		jobboard.WithTransitionReason(reason),
	)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Employee has been restricted",
		"user": fiber.Map{
			"id":     updated.ID,
			"name":   updated.Name,
			"status": updated.Status,
		},
	})
}

// ActivateEmployee reinstates a restricted account.
func (a *Controller) ActivateEmployee(c *fiber.Ctx) error {
	user, err := a.userFromParams(c)
	if err != nil {
		return err
	}

	actor := jobboard.ActorRef{ID: jobboard.UserIDFromCtx(c), Type: "admin"}
	updated, err := a.Users.Activate(c.Context(), actor, user)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Employee has been activated",
		"user": fiber.Map{
			"id":     updated.ID,
			"name":   updated.Name,
			"status": updated.Status,
		},
	})
}

// RemoveEmployee deletes the account. Admin accounts cannot be removed.
func (a *Controller) RemoveEmployee(c *fiber.Ctx) error {
	user, err := a.userFromParams(c)
	if err != nil {
		return err
	}

	if user.Role == jobboard.RoleAdmin {
		return jobboard.ErrAdminProtected
	}

	if err := a.Users.Delete(c.Context(), user.ID); err != nil {
		return err
	}

	a.emit(c, jobboard.ActivityEventUserStatusChanged, user, map[string]any{
		"action": "removed",
		"email":  user.Email,
	})

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Employee %s has been removed", user.Name),
	})
}

func (a *Controller) userFromParams(c *fiber.Ctx) (*jobboard.User, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, jobboard.ErrorWithMetadata(jobboard.ErrIdentityNotFound, map[string]any{
			"id": c.Params("id"),
		})
	}
	return a.Users.GetByID(c.Context(), id)
}

func (a *Controller) emit(c *fiber.Ctx, event jobboard.ActivityEventType, user *jobboard.User, metadata map[string]any) {
	if err := a.ActivitySink.Record(c.Context(), jobboard.ActivityEvent{
		EventType:  event,
		UserID:     user.ID.String(),
		Actor:      jobboard.ActorRef{ID: jobboard.UserIDFromCtx(c), Type: "admin"},
		Metadata:   metadata,
		OccurredAt: time.Now(),
	}); err != nil {
		a.Logger.Warn("activity sink rejected %s: %v", event, err)
	}
}
