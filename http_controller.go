package jobboard

import (
	"fmt"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-jobboard/notify"
)

// AuthController serves the account endpoints: signup, email verification,
// login, the current-user lookup, and the password reset flow.
type AuthController struct {
	Logger       Logger
	Users        Users
	Auther       *Auther
	Codes        *Ledger
	ResetTokens  *Ledger
	Notifier     notify.Notifier
	ActivitySink ActivitySink
	ClientURL    string
}

// AuthControllerOption customizes controller construction.
type AuthControllerOption func(*AuthController) *AuthController

// NewAuthController builds the controller, panicking on missing dependencies
// so miswiring fails at startup rather than at request time.
func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:       defLogger{},
		ActivitySink: noopActivitySink{},
		ClientURL:    "http://localhost:5000",
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Users == nil {
		panic("Missing Users store in auth controller...")
	}
	if c.Auther == nil {
		panic("Missing Auther in auth controller...")
	}
	if c.Codes == nil {
		c.Codes = NewVerificationCodes()
	}
	if c.ResetTokens == nil {
		c.ResetTokens = NewResetTokens()
	}
	c.Notifier = notify.Normalize(c.Notifier)

	return c
}

// WithAuthUsers sets the user store.
func WithAuthUsers(users Users) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Users = users
		return c
	}
}

// WithAuthAuther sets the authenticator.
func WithAuthAuther(auther *Auther) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

// WithAuthLedgers sets the verification code and reset token ledgers.
func WithAuthLedgers(codes, resetTokens *Ledger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Codes = codes
		c.ResetTokens = resetTokens
		return c
	}
}

// WithAuthNotifier sets the mail transport.
func WithAuthNotifier(n notify.Notifier) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Notifier = n
		return c
	}
}

// WithAuthLogger sets the logger.
func WithAuthLogger(l Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if l != nil {
			c.Logger = l
		}
		return c
	}
}

// WithAuthActivitySink sets the audit sink.
func WithAuthActivitySink(sink ActivitySink) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.ActivitySink = NormalizeActivitySink(sink)
		return c
	}
}

// WithAuthClientURL sets the base URL used to build reset links.
func WithAuthClientURL(u string) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if u != "" {
			c.ClientURL = u
		}
		return c
	}
}

// RegisterAuthRoutes mounts the auth endpoints under /api/auth.
func RegisterAuthRoutes(app fiber.Router, controller *AuthController) {
	grp := app.Group("/api/auth")

	grp.Post("/signup", controller.Signup)
	grp.Post("/verify-email", controller.VerifyEmail)
	grp.Post("/resend-verification", controller.ResendVerification)
	grp.Post("/login", controller.Login)
	grp.Get("/me", Protected(controller.Auther.TokenService()), controller.Me)
	grp.Post("/forgot-password", controller.ForgotPassword)
	grp.Post("/reset-password", controller.ResetPassword)
	grp.Get("/verify-reset-token", controller.VerifyResetToken)
}

// SignupRequest payload
type SignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
}

// Validate will run validation rules
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Role, validation.In(RoleEmployee, RoleEmployer, RoleManagement)),
	)
}

// Signup creates an account and returns a session token for auto-login.
func (a *AuthController) Signup(c *fiber.Ctx) error {
	payload := new(SignupRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
			WithCode(goerrors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	role := payload.Role
	if role == "" {
		role = RoleEmployee
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		return err
	}

	user, err := a.Users.Register(c.Context(), &User{
		Email:        payload.Email,
		Name:         payload.Name,
		Designation:  payload.Designation,
		PasswordHash: hash,
		Role:         role,
		IsVerified:   true,
		IsActive:     true,
		Status:       UserStatusActive,
	})
	if err != nil {
		return err
	}

	a.emit(c, ActivityEventSignup, user.ID.String(), map[string]any{
		"email": user.Email,
		"role":  user.Role,
	})

	token, err := a.Auther.TokenService().Generate(identityFromUser(user))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created successfully",
		"token":   token,
		"user": fiber.Map{
			"id":               user.ID,
			"email":            user.Email,
			"role":             user.Role,
			"name":             user.Name,
			"designation":      user.Designation,
			"profile_complete": false,
		},
	})
}

// VerifyEmailRequest payload
type VerifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Validate will run validation rules
func (r VerifyEmailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Code, validation.Required),
	)
}

// VerifyEmail consumes a verification code and logs the account in.
func (a *AuthController) VerifyEmail(c *fiber.Ctx) error {
	payload := new(VerifyEmailRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
			WithCode(goerrors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	if err := a.Codes.Validate(payload.Email, payload.Code); err != nil {
		return err
	}

	user, err := a.Users.MarkVerified(c.Context(), payload.Email)
	if err != nil {
		return err
	}

	a.emit(c, ActivityEventEmailVerified, user.ID.String(), map[string]any{
		"email": user.Email,
	})

	token, err := a.Auther.TokenService().Generate(identityFromUser(user))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Email verified successfully!",
		"token":   token,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
			"name":  user.Name,
		},
	})
}

// EmailRequest is the single-field payload shared by resend and forgot.
type EmailRequest struct {
	Email string `json:"email"`
}

// Validate will run validation rules
func (r EmailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// ResendVerification issues a fresh verification code, replacing any prior one.
func (a *AuthController) ResendVerification(c *fiber.Ctx) error {
	payload := new(EmailRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
			WithCode(goerrors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	user, err := a.Users.GetByEmail(c.Context(), payload.Email)
	if err != nil {
		return err
	}

	if user.IsVerified {
		return c.JSON(fiber.Map{
			"message": "Email is already verified. You can login now.",
		})
	}

	code, err := a.Codes.Issue(user.Email)
	if err != nil {
		return err
	}

	if err := a.Notifier.Send(c.Context(), notify.EmailVerification(user.Email, code)); err != nil {
		a.Logger.Warn("failed to send verification email: %v", err)
	}

	return c.JSON(fiber.Map{
		"message":    "A new verification code has been sent to your email",
		"expires_in": "5 minutes",
	})
}

// LoginRequest payload
type LoginRequest struct {
	Identifier string `json:"email"`
	Password   string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Identifier, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// Login authenticates by email or derived username and returns a session token.
func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
			WithCode(goerrors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	token, identity, err := a.Auther.LoginIdentity(c.Context(), payload.Identifier, payload.Password)
	if err != nil {
		return err
	}

	message := "Login successful"
	if identity.Role() == RoleAdmin {
		message = "Admin login successful"
	}

	return c.JSON(fiber.Map{
		"message": message,
		"token":   token,
		"user": fiber.Map{
			"id":    identity.ID(),
			"email": identity.Email(),
			"role":  identity.Role(),
			"name":  identity.Name(),
		},
	})
}

// Me returns the full account record behind the bearer token, hash excluded.
func (a *AuthController) Me(c *fiber.Ctx) error {
	claims, err := ClaimsFromCtx(c)
	if err != nil {
		return err
	}

	user, err := a.Users.GetByIdentifier(c.Context(), claims.UserID())
	if err != nil {
		return err
	}

	return c.JSON(user)
}

// ForgotPassword issues a reset token. The response is identical whether the
// account exists or not, to prevent email enumeration.
func (a *AuthController) ForgotPassword(c *fiber.Ctx) error {
	payload := new(EmailRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
			WithCode(goerrors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	if user, err := a.Users.GetByEmail(c.Context(), payload.Email); err == nil {
		token, err := a.ResetTokens.Issue(user.Email)
		if err != nil {
			return err
		}

		link := fmt.Sprintf("%s/reset-password.html?token=%s&email=%s",
			a.ClientURL, token, url.QueryEscape(user.Email))

		if err := a.Notifier.Send(c.Context(), notify.PasswordReset(user.Email, link)); err != nil {
			a.Logger.Warn("failed to send reset email: %v", err)
		}

		a.emit(c, ActivityEventPasswordForgot, user.ID.String(), map[string]any{
			"email": user.Email,
		})
	}

	return c.JSON(fiber.Map{
		"message": "If an account exists with this email, a password reset link has been sent",
	})
}

// ResetPasswordRequest payload
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// ResetPassword consumes the reset token and swaps the stored hash. Sessions
// already issued remain valid until they expire.
func (a *AuthController) ResetPassword(c *fiber.Ctx) error {
	payload := new(ResetPasswordRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
			WithCode(goerrors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	if err := ValidatePassword(payload.Password); err != nil {
		return err
	}

	if err := a.ResetTokens.Validate(payload.Email, payload.Token); err != nil {
		return err
	}

	user, err := a.Users.GetByEmail(c.Context(), payload.Email)
	if err != nil {
		return err
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		return err
	}

	if err := a.Users.ResetPassword(c.Context(), user.ID, hash); err != nil {
		return err
	}

	a.emit(c, ActivityEventPasswordResetSuccess, user.ID.String(), map[string]any{
		"email": user.Email,
	})

	return c.JSON(fiber.Map{
		"message": "Password reset successful. Please login with your new password.",
	})
}

// VerifyResetToken probes a reset token without consuming it, so the client
// can decide whether to show the reset form.
func (a *AuthController) VerifyResetToken(c *fiber.Ctx) error {
	token := c.Query("token")
	email := c.Query("email")

	if token == "" || email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"valid": false,
			"error": "token and email are required",
		})
	}

	if err := a.ResetTokens.Peek(email, token); err != nil {
		var rich *goerrors.Error
		msg := "invalid reset token"
		if goerrors.As(err, &rich) {
			msg = rich.Message
		}
		return c.JSON(fiber.Map{
			"valid": false,
			"error": msg,
		})
	}

	return c.JSON(fiber.Map{"valid": true})
}

func (a *AuthController) emit(c *fiber.Ctx, eventType ActivityEventType, userID string, metadata map[string]any) {
	sink := NormalizeActivitySink(a.ActivitySink)
	event := ActivityEvent{
		EventType: eventType,
		Actor:     ActorRef{ID: userID, Type: "user"},
		UserID:    userID,
		Metadata:  metadata,
	}
	if err := sink.Record(c.Context(), event); err != nil {
		a.Logger.Warn("activity sink record error: %v", err)
	}
}
