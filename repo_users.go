package jobboard

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Users is the credential and account store.
type Users interface {
	Register(ctx context.Context, user *User) (*User, error)
	GetOrCreate(ctx context.Context, record *User) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, record *User) (*User, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status UserStatus, opts ...StatusUpdateOption) (*User, error)
	Restrict(ctx context.Context, actor ActorRef, user *User, opts ...TransitionOption) (*User, error)
	Activate(ctx context.Context, actor ActorRef, user *User, opts ...TransitionOption) (*User, error)
	MarkVerified(ctx context.Context, email string) (*User, error)
	ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

// UserStore is the in-memory Users implementation. It is safe for concurrent
// use; records are cloned on the way in and out so callers never share state
// with the store.
type UserStore struct {
	mu                  sync.RWMutex
	byID                map[uuid.UUID]*User
	stateMachine        UserStateMachine
	stateMachineOptions []StateMachineOption
}

var _ Users = (*UserStore)(nil)

// UserStoreOption customizes store construction.
type UserStoreOption func(*UserStore)

// WithUsersStateMachineOptions forwards options to the lazily built state machine.
func WithUsersStateMachineOptions(options ...StateMachineOption) UserStoreOption {
	return func(u *UserStore) {
		if len(options) == 0 {
			return
		}
		u.stateMachineOptions = append(u.stateMachineOptions, options...)
		u.stateMachine = nil
	}
}

// WithUsersStateMachine injects a prebuilt state machine.
func WithUsersStateMachine(sm UserStateMachine) UserStoreOption {
	return func(u *UserStore) {
		u.stateMachine = sm
	}
}

// NewUserStore creates an empty in-memory user store.
func NewUserStore(opts ...UserStoreOption) *UserStore {
	store := &UserStore{
		byID: map[uuid.UUID]*User{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store
}

// Register creates a new account, rejecting duplicate emails. Email matching
// is case-insensitive.
func (a *UserStore) Register(ctx context.Context, user *User) (*User, error) {
	if user == nil {
		return nil, ErrIdentityNotFound
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.findByEmailLocked(user.Email) != nil {
		return nil, ErrorWithMetadata(ErrDuplicateEmail, map[string]any{
			"email": user.Email,
		})
	}

	record := user.Clone()
	prepareUserDefaults(record)
	a.byID[record.ID] = record

	return record.Clone(), nil
}

// GetOrCreate returns the stored user matching the record's email, creating
// it when absent.
func (a *UserStore) GetOrCreate(ctx context.Context, record *User) (*User, error) {
	if existing, err := a.GetByEmail(ctx, record.Email); err == nil {
		return existing, nil
	}
	return a.Register(ctx, record)
}

func (a *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if record, ok := a.byID[id]; ok {
		return record.Clone(), nil
	}
	return nil, ErrorWithMetadata(ErrIdentityNotFound, map[string]any{
		"id": id.String(),
	})
}

func (a *UserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if record := a.findByEmailLocked(email); record != nil {
		return record.Clone(), nil
	}
	return nil, ErrorWithMetadata(ErrIdentityNotFound, map[string]any{
		"email": email,
	})
}

// GetByIdentifier resolves a user by id, email, or derived username, in that
// order of preference.
func (a *UserStore) GetByIdentifier(ctx context.Context, identifier string) (*User, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil, ErrIdentityNotFound
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	if id, err := uuid.Parse(trimmed); err == nil {
		if record, ok := a.byID[id]; ok {
			return record.Clone(), nil
		}
	}

	if strings.Contains(trimmed, "@") {
		if record := a.findByEmailLocked(trimmed); record != nil {
			return record.Clone(), nil
		}
		return nil, ErrorWithMetadata(ErrIdentityNotFound, map[string]any{
			"identifier": identifier,
		})
	}

	for _, record := range a.byID {
		if DerivedUsername(record.Name) == strings.ToLower(trimmed) {
			return record.Clone(), nil
		}
	}

	return nil, ErrorWithMetadata(ErrIdentityNotFound, map[string]any{
		"identifier": identifier,
	})
}

func (a *UserStore) List(ctx context.Context) ([]*User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]*User, 0, len(a.byID))
	for _, record := range a.byID {
		out = append(out, record.Clone())
	}
	return out, nil
}

// Update replaces the stored record. The caller owns the passed record; the
// store keeps its own copy.
func (a *UserStore) Update(ctx context.Context, record *User) (*User, error) {
	if record == nil {
		return nil, ErrIdentityNotFound
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.byID[record.ID]; !ok {
		return nil, ErrorWithMetadata(ErrIdentityNotFound, map[string]any{
			"id": record.ID.String(),
		})
	}

	updated := record.Clone()
	now := time.Now()
	updated.UpdatedAt = &now
	a.byID[updated.ID] = updated

	return updated.Clone(), nil
}

func (a *UserStore) UpdateStatus(ctx context.Context, id uuid.UUID, status UserStatus, opts ...StatusUpdateOption) (*User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	record, ok := a.byID[id]
	if !ok {
		return nil, ErrorWithMetadata(ErrIdentityNotFound, map[string]any{
			"id": id.String(),
		})
	}

	record.Status = status
	record.IsActive = status == UserStatusActive

	for _, opt := range opts {
		if opt != nil {
			opt(record)
		}
	}

	return record.Clone(), nil
}

// Restrict deactivates the account through the lifecycle machine.
func (a *UserStore) Restrict(ctx context.Context, actor ActorRef, user *User, opts ...TransitionOption) (*User, error) {
	return a.lifecycleMachine().Transition(ctx, actor, user, UserStatusRestricted, opts...)
}

// Activate reinstates a restricted account through the lifecycle machine.
func (a *UserStore) Activate(ctx context.Context, actor ActorRef, user *User, opts ...TransitionOption) (*User, error) {
	return a.lifecycleMachine().Transition(ctx, actor, user, UserStatusActive, opts...)
}

// MarkVerified flips the verification flag for the account with the email.
func (a *UserStore) MarkVerified(ctx context.Context, email string) (*User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	record := a.findByEmailLocked(email)
	if record == nil {
		return nil, ErrorWithMetadata(ErrIdentityNotFound, map[string]any{
			"email": email,
		})
	}

	record.IsVerified = true
	return record.Clone(), nil
}

// ResetPassword swaps the stored hash and marks the account verified, since
// proving control of the reset token proves control of the mailbox.
func (a *UserStore) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	record, ok := a.byID[id]
	if !ok {
		return ErrorWithMetadata(ErrIdentityNotFound, map[string]any{
			"id": id.String(),
		})
	}

	record.PasswordHash = passwordHash
	record.IsVerified = true
	return nil
}

func (a *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.byID[id]; !ok {
		return ErrorWithMetadata(ErrIdentityNotFound, map[string]any{
			"id": id.String(),
		})
	}
	delete(a.byID, id)
	return nil
}

func (a *UserStore) Count(ctx context.Context) (int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.byID), nil
}

func (a *UserStore) findByEmailLocked(email string) *User {
	needle := strings.ToLower(strings.TrimSpace(email))
	if needle == "" {
		return nil
	}
	for _, record := range a.byID {
		if strings.ToLower(record.Email) == needle {
			return record
		}
	}
	return nil
}

func (a *UserStore) lifecycleMachine() UserStateMachine {
	if a.stateMachine == nil {
		a.stateMachine = NewUserStateMachine(a, a.stateMachineOptions...)
	}
	return a.stateMachine
}

// StatusUpdateOption allows callers to mutate the user record before persisting status changes.
type StatusUpdateOption func(*User)

// WithRestrictionAudit records who restricted the account, when, and why.
func WithRestrictionAudit(by string, at *time.Time, reason string) StatusUpdateOption {
	return func(u *User) {
		u.RestrictedBy = by
		u.RestrictedAt = at
		u.RestrictReason = reason
	}
}

// WithActivationAudit records who reinstated the account and when, clearing
// any prior restriction audit fields.
func WithActivationAudit(by string, at *time.Time) StatusUpdateOption {
	return func(u *User) {
		u.ActivatedBy = by
		u.ActivatedAt = at
		u.RestrictedBy = ""
		u.RestrictedAt = nil
		u.RestrictReason = ""
	}
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.Role == "" {
		record.Role = RoleEmployee
	}

	record.EnsureStatus()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
}

var whitespaceRuns = regexp.MustCompile(`\s+`)

// DerivedUsername maps a display name to its login username: lower cased with
// runs of whitespace collapsed to a single underscore.
func DerivedUsername(name string) string {
	return whitespaceRuns.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
}
