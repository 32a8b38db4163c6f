package jobboard

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
)

const (
	// AdminUsername and AdminPassword are the default administrator
	// credentials, overridable through WithAdminCredentials. The account is
	// provisioned on first login.
	AdminUsername = "admin"
	AdminPassword = "admin"
	// AdminEmail is the email of the provisioned administrator account.
	AdminEmail = "admin@jobportal.com"
	// AdminName is the display name of the provisioned administrator account.
	AdminName = "Admin"
)

// UserProvider resolves and verifies identities against the user store
type UserProvider struct {
	store         Users
	Validator     func(*User) error
	logger        Logger
	adminUsername string
	adminPassword string
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store Users) *UserProvider {
	return &UserProvider{
		store:         store,
		logger:        defLogger{},
		Validator:     defaultValidator,
		adminUsername: AdminUsername,
		adminPassword: AdminPassword,
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// WithAdminCredentials overrides the built-in administrator credentials.
func (u *UserProvider) WithAdminCredentials(username, password string) *UserProvider {
	if username != "" {
		u.adminUsername = username
	}
	if password != "" {
		u.adminPassword = password
	}
	return u
}

func (u *UserProvider) validate(user *User) error {
	if u.Validator != nil {
		return u.Validator(user)
	}
	return defaultValidator(user)
}

// VerifyIdentity will find the user, compare the password, and return identity.
// An identifier containing "@" resolves by email, anything else by the
// username derived from the display name. The admin credentials bypass the
// lookup (username match is case-insensitive) and provision the administrator
// account when missing.
func (u *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	if strings.EqualFold(identifier, u.adminUsername) && password == u.adminPassword {
		return u.provisionAdmin(ctx)
	}

	user, err := u.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	user.EnsureStatus()
	if !user.IsActive {
		return nil, ErrAccountRestricted
	}

	if !user.IsVerified {
		return nil, ErrorWithMetadata(ErrVerificationRequired, map[string]any{
			"requires_verification": true,
			"email":                 user.Email,
		})
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := u.validate(user); err != nil {
		return nil, err
	}

	return identityFromUser(user), nil
}

// FindIdentityByIdentifier resolves an identity without checking a password.
func (u *UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	user, err := u.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	user.EnsureStatus()
	if !user.IsActive {
		return nil, ErrAccountRestricted
	}

	if err := u.validate(user); err != nil {
		return nil, err
	}

	return identityFromUser(user), nil
}

// provisionAdmin returns the administrator identity, creating the account on
// first use. The ID is derived from the admin email so it is stable across
// restarts.
func (u *UserProvider) provisionAdmin(ctx context.Context) (Identity, error) {
	id, err := hashid.NewUUID(AdminEmail)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to derive admin id")
	}

	hash, err := HashPassword(u.adminPassword)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to hash admin password")
	}

	user, err := u.store.GetOrCreate(ctx, &User{
		ID:           id,
		Email:        AdminEmail,
		Name:         AdminName,
		PasswordHash: hash,
		Role:         RoleAdmin,
		IsVerified:   true,
		IsActive:     true,
		Status:       UserStatusActive,
	})
	if err != nil {
		return nil, err
	}

	return identityFromUser(user), nil
}

type authIdentity struct {
	id     string
	name   string
	email  string
	role   string
	status UserStatus
}

func (a authIdentity) ID() string {
	return a.id
}

func (a authIdentity) Name() string {
	return a.name
}

func (a authIdentity) Email() string {
	return a.email
}

func (a authIdentity) Role() string {
	return a.role
}

func (a authIdentity) Status() UserStatus {
	if a.status == "" {
		return UserStatusActive
	}
	return a.status
}

var _ Identity = authIdentity{}

func identityFromUser(user *User) authIdentity {
	return authIdentity{
		id:     user.ID.String(),
		name:   user.Name,
		email:  user.Email,
		role:   user.Role,
		status: user.Status,
	}
}

func defaultValidator(u *User) error {
	if ValidRole(u.Role) {
		return nil
	}
	return errors.New("user has an unknown or invalid role", errors.CategoryAuth).
		WithTextCode("INVALID_ROLE").
		WithMetadata(map[string]any{"role": u.Role, "user_id": u.ID.String()})
}
