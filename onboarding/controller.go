// Package onboarding implements the guided setup flow for new accounts: the
// user type selection, qualifications, experience, and skills steps, and the
// field-based skills assessment that completes the flow.
package onboarding

import (
	"math"
	"math/rand"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	jobboard "github.com/goliatone/go-jobboard"
)

// AssessmentSize is the number of questions served per assessment.
const AssessmentSize = 10

// Controller serves the onboarding and assessment endpoints.
type Controller struct {
	Logger jobboard.Logger
	Users  jobboard.Users
}

// NewController builds the onboarding controller. It panics if the user store
// is missing.
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
		panic("onboarding controller requires a user store")
	}

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

// WithLogger sets the logger.
func WithLogger(logger jobboard.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// RegisterRoutes mounts the onboarding endpoints. All routes require a valid
// session.
func RegisterRoutes(app fiber.Router, controller *Controller, validator jobboard.TokenValidator) {
	authed := jobboard.Protected(validator)

	app.Put("/api/onboarding/user-type", authed, controller.UpdateUserType)
	app.Put("/api/onboarding/qualifications", authed, controller.SaveQualifications)
	app.Put("/api/onboarding/experience", authed, controller.SaveExperience)
	app.Put("/api/onboarding/skills", authed, controller.SaveSkills)
	app.Get("/api/onboarding/status", authed, controller.Status)

	app.Get("/api/assessment/questions", authed, controller.AssessmentQuestions)
	app.Post("/api/assessment/submit", authed, controller.SubmitAssessment)
}

// UserTypeRequest selects the account type at the start of onboarding.
type UserTypeRequest struct {
	UserType string `json:"user_type"`
}

// Validate implements validation.Validatable.
func (r UserTypeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserType,
			validation.Required,
			validation.In("employee", "employer", "student"),
		),
	)
}

// UpdateUserType records the account type. Employers skip the remaining
// steps; everyone else continues to qualifications.
func (o *Controller) UpdateUserType(c *fiber.Ctx) error {
	user, err := o.currentUser(c)
	if err != nil {
		return err
	}

	payload := new(UserTypeRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
			WithCode(goerrors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	user.UserType = payload.UserType
	if payload.UserType == "employer" {
		user.OnboardingStep = "complete"
	} else {
		user.OnboardingStep = "qualifications"
	}

	updated, err := o.Users.Update(c.Context(), user)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":         "User type updated",
		"user_type":       updated.UserType,
		"onboarding_step": updated.OnboardingStep,
	})
}

// QualificationsRequest carries the education step.
type QualificationsRequest struct {
	HighestEducation string   `json:"highest_education"`
	FieldOfStudy     string   `json:"field_of_study"`
	Institution      string   `json:"institution"`
	GraduationYear   int      `json:"graduation_year"`
	Certifications   []string `json:"certifications"`
}

// SaveQualifications stores the education step and advances to experience.
func (o *Controller) SaveQualifications(c *fiber.Ctx) error {
	user, err := o.currentUser(c)
	if err != nil {
		return err
	}

	payload := new(QualificationsRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
			WithCode(goerrors.CodeBadRequest)
	}

	now := time.Now()
	certifications := payload.Certifications
	if certifications == nil {
		certifications = []string{}
	}

	user.Qualifications = &jobboard.Qualifications{
		HighestEducation: payload.HighestEducation,
		FieldOfStudy:     payload.FieldOfStudy,
		Institution:      payload.Institution,
		GraduationYear:   payload.GraduationYear,
		Certifications:   certifications,
		CompletedAt:      &now,
	}
	user.OnboardingStep = "experience"

	if _, err := o.Users.Update(c.Context(), user); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":         "Qualifications saved",
		"onboarding_step": "experience",
	})
}

// ExperienceRequest carries the work experience step.
type ExperienceRequest struct {
	HasExperience     bool                        `json:"has_experience"`
	ExperienceLevel   string                      `json:"experience_level"`
	CurrentJobTitle   string                      `json:"current_job_title"`
	CurrentCompany    string                      `json:"current_company"`
	YearsOfExperience int                         `json:"years_of_experience"`
	WorkHistory       []jobboard.WorkHistoryEntry `json:"work_history"`
}

// SaveExperience stores the experience step and advances to skills. Years of
// experience is forced to zero when the user reports no experience.
func (o *Controller) SaveExperience(c *fiber.Ctx) error {
	user, err := o.currentUser(c)
	if err != nil {
		return err
	}

	payload := new(ExperienceRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
			WithCode(goerrors.CodeBadRequest)
	}

	years := payload.YearsOfExperience
	if !payload.HasExperience {
		years = 0
	}

	history := payload.WorkHistory
	if history == nil {
		history = []jobboard.WorkHistoryEntry{}
	}

	now := time.Now()
	user.Experience = &jobboard.Experience{
		HasExperience:     payload.HasExperience,
		ExperienceLevel:   payload.ExperienceLevel,
		CurrentJobTitle:   payload.CurrentJobTitle,
		CurrentCompany:    payload.CurrentCompany,
		YearsOfExperience: years,
		WorkHistory:       history,
		CompletedAt:       &now,
	}
	user.OnboardingStep = "skills"

	if _, err := o.Users.Update(c.Context(), user); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":         "Experience saved",
		"onboarding_step": "skills",
	})
}

// SkillsRequest carries the skills step.
type SkillsRequest struct {
	Skills           jobboard.StringList `json:"skills"`
	SkillLevel       string              `json:"skill_level"`
	InterestedFields jobboard.StringList `json:"interested_fields"`
}

// SaveSkills stores the skills step and advances to the assessment.
func (o *Controller) SaveSkills(c *fiber.Ctx) error {
	user, err := o.currentUser(c)
	if err != nil {
		return err
	}

	payload := new(SkillsRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
			WithCode(goerrors.CodeBadRequest)
	}

	if user.Profile == nil {
		user.Profile = &jobboard.Profile{}
	}

	skills := []string(payload.Skills)
	if skills == nil {
		skills = []string{}
	}
	fields := []string(payload.InterestedFields)
	if fields == nil {
		fields = []string{}
	}

	user.Profile.Skills = skills
	user.Profile.SkillLevel = payload.SkillLevel
	user.Profile.InterestedFields = fields
	user.OnboardingStep = "assessment"

	if _, err := o.Users.Update(c.Context(), user); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":         "Skills saved",
		"onboarding_step": "assessment",
	})
}

// AssessmentQuestions serves a shuffled sample from the bank matching the
// user's first interested field. Correct answers are never serialized.
func (o *Controller) AssessmentQuestions(c *fiber.Ctx) error {
	user, err := o.currentUser(c)
	if err != nil {
		return err
	}

	field := "IT"
	if user.Profile != nil && len(user.Profile.InterestedFields) > 0 {
		field = user.Profile.InterestedFields[0]
	}

	bank := QuestionsFor(field)
	shuffled := make([]Question, len(bank))
	copy(shuffled, bank)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if len(shuffled) > AssessmentSize {
		shuffled = shuffled[:AssessmentSize]
	}

	return c.JSON(fiber.Map{
		"field":           field,
		"questions":       shuffled,
		"total_questions": len(shuffled),
	})
}

// AssessmentSubmission grades answers against the bank for the given field.
// Answers are matched positionally against the bank order.
type AssessmentSubmission struct {
	Answers []int  `json:"answers"`
	Field   string `json:"field"`
}

// Validate implements validation.Validatable.
func (r AssessmentSubmission) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Answers, validation.Required),
	)
}

// SubmitAssessment grades the submission, stores the result, and completes
// onboarding.
func (o *Controller) SubmitAssessment(c *fiber.Ctx) error {
	user, err := o.currentUser(c)
	if err != nil {
		return err
	}

	payload := new(AssessmentSubmission)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
			WithCode(goerrors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	bank := QuestionsFor(payload.Field)

	correct := 0
	results := make([]jobboard.AnswerResult, 0, len(payload.Answers))
	for i, answer := range payload.Answers {
		result := jobboard.AnswerResult{
			QuestionID:     i,
			SelectedAnswer: answer,
			CorrectAnswer:  -1,
		}
		if i < len(bank) {
			question := bank[i]
			result.QuestionID = question.ID
			result.CorrectAnswer = question.Answer
			result.IsCorrect = answer == question.Answer
		}
		if result.IsCorrect {
			correct++
		}
		results = append(results, result)
	}

	total := len(payload.Answers)
	score := int(math.Round(float64(correct) / float64(total) * 100))
	skillLevel := SkillLevelFor(score)

	user.Assessment = &jobboard.AssessmentResult{
		Field:          payload.Field,
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: total,
		SkillLevel:     skillLevel,
		Results:        results,
		CompletedAt:    time.Now(),
	}
	user.OnboardingStep = "complete"

	if _, err := o.Users.Update(c.Context(), user); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":         "Assessment completed",
		"score":           score,
		"correct_answers": correct,
		"total_questions": total,
		"skill_level":     skillLevel,
	})
}

// Status reports where the user is in the flow. Accounts created before the
// flow existed default by role: employers are complete, everyone else starts
// at the user type step.
func (o *Controller) Status(c *fiber.Ctx) error {
	user, err := o.currentUser(c)
	if err != nil {
		return err
	}

	step := user.OnboardingStep
	if step == "" {
		if user.Role == jobboard.RoleEmployer {
			step = "complete"
		} else {
			step = "userType"
		}
	}

	return c.JSON(fiber.Map{
		"user_type":       user.UserType,
		"onboarding_step": step,
		"profile":         user.Profile,
		"qualifications":  user.Qualifications,
		"experience":      user.Experience,
		"assessment":      user.Assessment,
	})
}

func (o *Controller) currentUser(c *fiber.Ctx) (*jobboard.User, error) {
	claims, err := jobboard.ClaimsFromCtx(c)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(claims.UserID())
	if err != nil {
		return nil, jobboard.ErrIdentityNotFound
	}

	return o.Users.GetByID(c.Context(), id)
}
