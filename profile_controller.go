package jobboard

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is the region used to parse phone numbers without a
// country prefix.
var DefaultPhoneRegion = "PK"

// StringList accepts either a JSON array of strings or a single
// comma-separated string.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		*s = asList
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		return err
	}

	if asString == "" {
		*s = nil
		return nil
	}

	parts := strings.Split(asString, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	*s = out
	return nil
}

// ProfileController serves the profile endpoints: the employee profile merge,
// the management profile, CV upload, and the public user lookup.
type ProfileController struct {
	Logger     Logger
	Users      Users
	UploadsDir string
}

// NewProfileController builds the controller.
func NewProfileController(users Users, uploadsDir string, logger Logger) *ProfileController {
	if logger == nil {
		logger = defLogger{}
	}
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	return &ProfileController{
		Logger:     logger,
		Users:      users,
		UploadsDir: uploadsDir,
	}
}

// RegisterProfileRoutes mounts the profile endpoints. All routes require a
// valid session.
func RegisterProfileRoutes(app fiber.Router, controller *ProfileController, validator TokenValidator) {
	authed := Protected(validator)

	app.Put("/api/profile", authed, controller.UpdateProfile)
	app.Put("/api/profile/management", authed, controller.UpdateManagementProfile)
	app.Post("/api/profile/cv", authed, controller.UploadCV)
	app.Get("/api/users/:id", authed, controller.GetUser)
}

// ProfileUpdateRequest carries the employee profile fields. Absent fields
// keep their stored value.
type ProfileUpdateRequest struct {
	Phone           *string            `json:"phone"`
	Address         *string            `json:"address"`
	CNIC            *string            `json:"cnic"`
	Bio             *string            `json:"bio"`
	Skills          *StringList        `json:"skills"`
	Experience      *string            `json:"experience"`
	Education       *string            `json:"education"`
	DesiredJobTitle *string            `json:"desired_job_title"`
	WorkHistory     []WorkHistoryEntry `json:"work_history"`
	TestPassed      *bool              `json:"test_passed"`
	TestScore       *int               `json:"test_score"`
	ProfileScore    *int               `json:"profile_score"`
}

// UpdateProfile merges the posted fields into the stored profile.
func (p *ProfileController) UpdateProfile(c *fiber.Ctx) error {
	user, err := p.currentUser(c)
	if err != nil {
		return err
	}

	payload := new(ProfileUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
			WithCode(goerrors.CodeBadRequest)
	}

	if payload.Phone != nil && *payload.Phone != "" {
		if err := validatePhone(*payload.Phone); err != nil {
			return err
		}
	}

	if user.Profile == nil {
		user.Profile = &Profile{}
	}

	profile := user.Profile
	setString(&profile.Phone, payload.Phone)
	setString(&profile.Address, payload.Address)
	setString(&profile.CNIC, payload.CNIC)
	setString(&profile.Bio, payload.Bio)
	setString(&profile.Experience, payload.Experience)
	setString(&profile.Education, payload.Education)
	setString(&profile.DesiredJobTitle, payload.DesiredJobTitle)
	if payload.Skills != nil {
		profile.Skills = *payload.Skills
	}
	if payload.WorkHistory != nil {
		profile.WorkHistory = payload.WorkHistory
	}
	if payload.TestPassed != nil {
		profile.TestPassed = payload.TestPassed
	}
	if payload.TestScore != nil {
		profile.TestScore = payload.TestScore
	}
	if payload.ProfileScore != nil {
		profile.ProfileScore = payload.ProfileScore
	}
	now := time.Now()
	profile.UpdatedAt = &now

	updated, err := p.Users.Update(c.Context(), user)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"profile": updated.Profile,
	})
}

// ManagementProfileRequest carries the extended profile for heads and CEOs.
type ManagementProfileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	CNIC    *string `json:"cnic"`
	Address *string `json:"address"`
	Photo   *string `json:"photo"`
	Bio     *string `json:"bio"`

	DOB                  string `json:"dob"`
	CompanyName          string `json:"company_name"`
	CompanyRegNumber     string `json:"company_reg_number"`
	CompanyPhone         string `json:"company_phone"`
	CompanyEmail         string `json:"company_email"`
	CompanyAddress       string `json:"company_address"`
	Industry             string `json:"industry"`
	CompanyWebsite       string `json:"company_website"`
	PositionTitle        string `json:"position_title"`
	ManagementLevel      string `json:"management_level"`
	Department           string `json:"department"`
	YearsInPosition      int    `json:"years_in_position"`
	TeamSize             int    `json:"team_size"`
	ReportsTo            string `json:"reports_to"`
	BudgetResponsibility string `json:"budget_responsibility"`
	BranchCount          int    `json:"branch_count"`
	CompanyDoc           string `json:"company_doc"`
	IDCard               string `json:"id_card"`
	AppointmentLetter    string `json:"appointment_letter"`
	Achievements         string `json:"achievements"`
}

// UpdateManagementProfile replaces the management section of the profile.
// Only management and admin roles may call it.
func (p *ProfileController) UpdateManagementProfile(c *fiber.Ctx) error {
	role := RoleFromCtx(c)
	if role != RoleManagement && role != RoleAdmin {
		return ErrorWithMetadata(ErrForbidden, map[string]any{
			"role": role,
		})
	}

	user, err := p.currentUser(c)
	if err != nil {
		return err
	}

	payload := new(ManagementProfileRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
			WithCode(goerrors.CodeBadRequest)
	}

	if payload.Phone != nil && *payload.Phone != "" {
		if err := validatePhone(*payload.Phone); err != nil {
			return err
		}
	}

	if payload.Name != nil && *payload.Name != "" {
		user.Name = *payload.Name
	}

	if user.Profile == nil {
		user.Profile = &Profile{}
	}

	profile := user.Profile
	setString(&profile.Phone, payload.Phone)
	setString(&profile.CNIC, payload.CNIC)
	setString(&profile.Address, payload.Address)
	setString(&profile.Photo, payload.Photo)
	setString(&profile.Bio, payload.Bio)

	now := time.Now()
	profile.ManagementProfile = &ManagementProfile{
		DOB:                  payload.DOB,
		CompanyName:          payload.CompanyName,
		CompanyRegNumber:     payload.CompanyRegNumber,
		CompanyPhone:         payload.CompanyPhone,
		CompanyEmail:         payload.CompanyEmail,
		CompanyAddress:       payload.CompanyAddress,
		Industry:             payload.Industry,
		CompanyWebsite:       payload.CompanyWebsite,
		PositionTitle:        payload.PositionTitle,
		ManagementLevel:      payload.ManagementLevel,
		Department:           payload.Department,
		YearsInPosition:      payload.YearsInPosition,
		TeamSize:             payload.TeamSize,
		ReportsTo:            payload.ReportsTo,
		BudgetResponsibility: payload.BudgetResponsibility,
		BranchCount:          payload.BranchCount,
		CompanyDoc:           payload.CompanyDoc,
		IDCard:               payload.IDCard,
		AppointmentLetter:    payload.AppointmentLetter,
		Bio:                  profile.Bio,
		Achievements:         payload.Achievements,
		ProfileCompletedAt:   &now,
	}
	profile.UpdatedAt = &now

	updated, err := p.Users.Update(c.Context(), user)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":            "Management profile updated successfully",
		"profile":            updated.Profile,
		"management_profile": updated.Profile.ManagementProfile,
	})
}

// UploadCV stores the uploaded file and replaces any previous CV on disk.
func (p *ProfileController) UploadCV(c *fiber.Ctx) error {
	user, err := p.currentUser(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("cv")
	if err != nil {
		return goerrors.New("no file uploaded", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".pdf", ".doc", ".docx":
	default:
		return goerrors.New("only PDF, DOC, and DOCX files are allowed", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest).
			WithTextCode("INVALID_CV_TYPE")
	}

	if file.Size > 5*1024*1024 {
		return goerrors.New("CV must be 5MB or smaller", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest).
			WithTextCode("CV_TOO_LARGE")
	}

	if err := os.MkdirAll(p.UploadsDir, 0o755); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to prepare uploads directory")
	}

	if user.Profile != nil && user.Profile.CV != "" {
		old := filepath.Join(p.UploadsDir, filepath.Base(user.Profile.CV))
		if _, err := os.Stat(old); err == nil {
			if err := os.Remove(old); err != nil {
				p.Logger.Warn("failed to remove previous CV %s: %v", old, err)
			}
		}
	}

	filename := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveFile(file, filepath.Join(p.UploadsDir, filename)); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to store CV")
	}

	if user.Profile == nil {
		user.Profile = &Profile{}
	}

	now := time.Now()
	user.Profile.CV = "/uploads/" + filename
	user.Profile.CVUploadedAt = &now

	updated, err := p.Users.Update(c.Context(), user)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "CV uploaded successfully",
		"cv":      updated.Profile.CV,
	})
}

// GetUser returns any account by id, hash excluded. Employers use it to view
// candidate profiles.
func (p *ProfileController) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return ErrorWithMetadata(ErrIdentityNotFound, map[string]any{
			"id": c.Params("id"),
		})
	}

	user, err := p.Users.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(user)
}

func (p *ProfileController) currentUser(c *fiber.Ctx) (*User, error) {
	claims, err := ClaimsFromCtx(c)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(claims.UserID())
	if err != nil {
		return nil, ErrIdentityNotFound
	}

	return p.Users.GetByID(c.Context(), id)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func validatePhone(raw string) error {
	parsed, err := phonenumbers.Parse(raw, DefaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return goerrors.New("invalid phone number", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest).
			WithTextCode("INVALID_PHONE")
	}
	return nil
}
