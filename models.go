package jobboard

import (
	"time"

	"github.com/google/uuid"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleEmployee is a job seeker
	RoleEmployee UserRole = "employee"
	// RoleEmployer posts jobs and reviews applications
	RoleEmployer UserRole = "employer"
	// RoleManagement is a company head profile
	RoleManagement UserRole = "management"
	// RoleAdmin is the platform administrator
	RoleAdmin UserRole = "admin"
)

// UserStatus is the textual account state, kept in sync with the IsActive and
// IsVerified flags.
type UserStatus = string

const (
	// UserStatusActive is a verified, unrestricted account
	UserStatusActive UserStatus = "active"
	// UserStatusRestricted is an account deactivated by an administrator
	UserStatusRestricted UserStatus = "restricted"
)

// User is the user model
type User struct {
	ID           uuid.UUID  `json:"id,omitempty"`
	Email        string     `json:"email,omitempty"`
	Name         string     `json:"name,omitempty"`
	Designation  string     `json:"designation,omitempty"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role,omitempty"`
	IsVerified   bool       `json:"is_verified"`
	IsActive     bool       `json:"is_active"`
	Status       UserStatus `json:"status,omitempty"`

	Profile        *Profile          `json:"profile,omitempty"`
	UserType       string            `json:"user_type,omitempty"`
	OnboardingStep string            `json:"onboarding_step,omitempty"`
	Qualifications *Qualifications   `json:"qualifications,omitempty"`
	Experience     *Experience       `json:"experience,omitempty"`
	Assessment     *AssessmentResult `json:"assessment,omitempty"`

	CreatedAt      time.Time  `json:"created_at,omitempty"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
	AddedBy        string     `json:"added_by,omitempty"`
	AddedAt        *time.Time `json:"added_at,omitempty"`
	RestrictedAt   *time.Time `json:"restricted_at,omitempty"`
	RestrictedBy   string     `json:"restricted_by,omitempty"`
	RestrictReason string     `json:"restrict_reason,omitempty"`
	ActivatedAt    *time.Time `json:"activated_at,omitempty"`
	ActivatedBy    string     `json:"activated_by,omitempty"`
}

// EnsureStatus backfills the textual status from the boolean flags.
func (u *User) EnsureStatus() {
	if u.Status != "" {
		return
	}
	if u.IsActive {
		u.Status = UserStatusActive
	} else {
		u.Status = UserStatusRestricted
	}
}

// Clone returns a deep enough copy for the store to hand out without sharing
// mutable profile state with callers.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	if u.Profile != nil {
		profile := *u.Profile
		profile.Skills = append([]string(nil), u.Profile.Skills...)
		profile.InterestedFields = append([]string(nil), u.Profile.InterestedFields...)
		profile.WorkHistory = append([]WorkHistoryEntry(nil), u.Profile.WorkHistory...)
		if u.Profile.ManagementProfile != nil {
			mgmt := *u.Profile.ManagementProfile
			profile.ManagementProfile = &mgmt
		}
		out.Profile = &profile
	}
	if u.Qualifications != nil {
		q := *u.Qualifications
		q.Certifications = append([]string(nil), u.Qualifications.Certifications...)
		out.Qualifications = &q
	}
	if u.Experience != nil {
		e := *u.Experience
		e.WorkHistory = append([]WorkHistoryEntry(nil), u.Experience.WorkHistory...)
		out.Experience = &e
	}
	if u.Assessment != nil {
		a := *u.Assessment
		a.Results = append([]AnswerResult(nil), u.Assessment.Results...)
		out.Assessment = &a
	}
	return &out
}

// Profile holds the employee-facing profile attributes. Updates merge field
// by field; absent fields keep their stored value.
type Profile struct {
	Phone            string             `json:"phone,omitempty"`
	Address          string             `json:"address,omitempty"`
	CNIC             string             `json:"cnic,omitempty"`
	Bio              string             `json:"bio,omitempty"`
	Photo            string             `json:"photo,omitempty"`
	Skills           []string           `json:"skills,omitempty"`
	SkillLevel       string             `json:"skill_level,omitempty"`
	InterestedFields []string           `json:"interested_fields,omitempty"`
	Experience       string             `json:"experience,omitempty"`
	Education        string             `json:"education,omitempty"`
	DesiredJobTitle  string             `json:"desired_job_title,omitempty"`
	WorkHistory      []WorkHistoryEntry `json:"work_history,omitempty"`
	CV               string             `json:"cv,omitempty"`
	CVUploadedAt     *time.Time         `json:"cv_uploaded_at,omitempty"`
	TestPassed       *bool              `json:"test_passed,omitempty"`
	TestScore        *int               `json:"test_score,omitempty"`
	LastTestDate     *time.Time         `json:"last_test_date,omitempty"`
	ProfileScore     *int               `json:"profile_score,omitempty"`

	ManagementProfile *ManagementProfile `json:"management_profile,omitempty"`
	UpdatedAt         *time.Time         `json:"updated_at,omitempty"`
}

// WorkHistoryEntry is a single position in the user's work history.
type WorkHistoryEntry struct {
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
}

// ManagementProfile extends the base profile for heads and CEOs.
type ManagementProfile struct {
	DOB                  string     `json:"dob,omitempty"`
	CompanyName          string     `json:"company_name,omitempty"`
	CompanyRegNumber     string     `json:"company_reg_number,omitempty"`
	CompanyPhone         string     `json:"company_phone,omitempty"`
	CompanyEmail         string     `json:"company_email,omitempty"`
	CompanyAddress       string     `json:"company_address,omitempty"`
	Industry             string     `json:"industry,omitempty"`
	CompanyWebsite       string     `json:"company_website,omitempty"`
	PositionTitle        string     `json:"position_title,omitempty"`
	ManagementLevel      string     `json:"management_level,omitempty"`
	Department           string     `json:"department,omitempty"`
	YearsInPosition      int        `json:"years_in_position,omitempty"`
	TeamSize             int        `json:"team_size,omitempty"`
	ReportsTo            string     `json:"reports_to,omitempty"`
	BudgetResponsibility string     `json:"budget_responsibility,omitempty"`
	BranchCount          int        `json:"branch_count,omitempty"`
	CompanyDoc           string     `json:"company_doc,omitempty"`
	IDCard               string     `json:"id_card,omitempty"`
	AppointmentLetter    string     `json:"appointment_letter,omitempty"`
	Bio                  string     `json:"bio,omitempty"`
	Achievements         string     `json:"achievements,omitempty"`
	ProfileCompletedAt   *time.Time `json:"profile_completed_at,omitempty"`
}

// Qualifications captures the onboarding education step.
type Qualifications struct {
	HighestEducation string     `json:"highest_education,omitempty"`
	FieldOfStudy     string     `json:"field_of_study,omitempty"`
	Institution      string     `json:"institution,omitempty"`
	GraduationYear   int        `json:"graduation_year,omitempty"`
	Certifications   []string   `json:"certifications,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// Experience captures the onboarding work experience step.
type Experience struct {
	HasExperience     bool               `json:"has_experience"`
	ExperienceLevel   string             `json:"experience_level,omitempty"`
	CurrentJobTitle   string             `json:"current_job_title,omitempty"`
	CurrentCompany    string             `json:"current_company,omitempty"`
	YearsOfExperience int                `json:"years_of_experience,omitempty"`
	WorkHistory       []WorkHistoryEntry `json:"work_history,omitempty"`
	CompletedAt       *time.Time         `json:"completed_at,omitempty"`
}

// AssessmentResult is the outcome of a completed skills assessment.
type AssessmentResult struct {
	Field          string         `json:"field,omitempty"`
	Score          int            `json:"score"`
	CorrectAnswers int            `json:"correct_answers"`
	TotalQuestions int            `json:"total_questions"`
	SkillLevel     string         `json:"skill_level,omitempty"`
	Results        []AnswerResult `json:"results,omitempty"`
	CompletedAt    time.Time      `json:"completed_at,omitempty"`
}

// AnswerResult grades a single assessment answer.
type AnswerResult struct {
	QuestionID     int  `json:"question_id"`
	SelectedAnswer int  `json:"selected_answer"`
	CorrectAnswer  int  `json:"correct_answer"`
	IsCorrect      bool `json:"is_correct"`
}
