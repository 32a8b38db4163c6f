package jobboard_test

import (
	"context"
	"errors"
	"testing"

	jobboard "github.com/goliatone/go-jobboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStateMachine_Transition(t *testing.T) {
	store := jobboard.NewUserStore()
	sm := jobboard.NewUserStateMachine(store)
	ctx := context.Background()
	actor := jobboard.ActorRef{ID: "admin-1", Type: "admin"}

	user := registerUser(t, store, &jobboard.User{
		Email:    "subject@example.com",
		Name:     "Subject",
		IsActive: true,
		Status:   jobboard.UserStatusActive,
	})

	t.Run("active to restricted", func(t *testing.T) {
		updated, err := sm.Transition(ctx, actor, user, jobboard.UserStatusRestricted,
			jobboard.WithTransitionReason("spam"),
		)
		require.NoError(t, err)
		assert.Equal(t, jobboard.UserStatusRestricted, updated.Status)
		assert.False(t, updated.IsActive)
		assert.Equal(t, "spam", updated.RestrictReason)
		assert.Equal(t, "admin-1", updated.RestrictedBy)
	})

	t.Run("restricted back to active", func(t *testing.T) {
		updated, err := sm.Transition(ctx, actor, user, jobboard.UserStatusActive)
		require.NoError(t, err)
		assert.Equal(t, jobboard.UserStatusActive, updated.Status)
		assert.True(t, updated.IsActive)
		assert.Empty(t, updated.RestrictReason)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		updated, err := sm.Transition(ctx, actor, user, jobboard.UserStatusActive)
		require.NoError(t, err)
		assert.Equal(t, jobboard.UserStatusActive, updated.Status)
	})

	t.Run("nil user is rejected", func(t *testing.T) {
		_, err := sm.Transition(ctx, actor, nil, jobboard.UserStatusRestricted)
		assert.ErrorIs(t, err, jobboard.ErrInvalidTransition)
	})

	t.Run("empty target is rejected", func(t *testing.T) {
		_, err := sm.Transition(ctx, actor, user, "")
		assert.ErrorIs(t, err, jobboard.ErrInvalidTransition)
	})
}

func TestUserStateMachine_AdminProtection(t *testing.T) {
	store := jobboard.NewUserStore()
	sm := jobboard.NewUserStateMachine(store)
	ctx := context.Background()
	actor := jobboard.ActorRef{ID: "admin-1", Type: "admin"}

	admin := registerUser(t, store, &jobboard.User{
		Email:    "root@example.com",
		Name:     "Root",
		Role:     jobboard.RoleAdmin,
		IsActive: true,
		Status:   jobboard.UserStatusActive,
	})

	_, err := sm.Transition(ctx, actor, admin, jobboard.UserStatusRestricted)
	assert.ErrorIs(t, err, jobboard.ErrAdminProtected)

	// Force does not override the admin guard.
	_, err = sm.Transition(ctx, actor, admin, jobboard.UserStatusRestricted,
		jobboard.WithForceTransition(),
	)
	assert.ErrorIs(t, err, jobboard.ErrAdminProtected)
}

func TestUserStateMachine_Hooks(t *testing.T) {
	ctx := context.Background()
	actor := jobboard.ActorRef{ID: "admin-1", Type: "admin"}

	t.Run("before and after hooks run in order", func(t *testing.T) {
		store := jobboard.NewUserStore()
		sm := jobboard.NewUserStateMachine(store)

		user := registerUser(t, store, &jobboard.User{
			Email:    "hooked@example.com",
			Name:     "Hooked",
			IsActive: true,
			Status:   jobboard.UserStatusActive,
		})

		var phases []string
		_, err := sm.Transition(ctx, actor, user, jobboard.UserStatusRestricted,
			jobboard.WithBeforeTransitionHook(func(ctx context.Context, tc jobboard.TransitionContext) error {
				phases = append(phases, "before")
				assert.Equal(t, jobboard.UserStatusActive, tc.From)
				assert.Equal(t, jobboard.UserStatusRestricted, tc.To)
				return nil
			}),
			jobboard.WithAfterTransitionHook(func(ctx context.Context, tc jobboard.TransitionContext) error {
				phases = append(phases, "after")
				return nil
			}),
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"before", "after"}, phases)
	})

	t.Run("before hook failure blocks the transition", func(t *testing.T) {
		store := jobboard.NewUserStore()
		hookErr := errors.New("nope")
		sm := jobboard.NewUserStateMachine(store,
			jobboard.WithStateMachineHookErrorHandler(func(ctx context.Context, phase jobboard.TransitionHookPhase, err error, tc jobboard.TransitionContext) error {
				return err
			}),
		)

		user := registerUser(t, store, &jobboard.User{
			Email:    "blocked@example.com",
			Name:     "Blocked",
			IsActive: true,
			Status:   jobboard.UserStatusActive,
		})

		_, err := sm.Transition(ctx, actor, user, jobboard.UserStatusRestricted,
			jobboard.WithBeforeTransitionHook(func(ctx context.Context, tc jobboard.TransitionContext) error {
				return hookErr
			}),
		)
		assert.ErrorIs(t, err, hookErr)

		stored, err := store.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, jobboard.UserStatusActive, stored.Status)
	})

	t.Run("default hook error handler panics", func(t *testing.T) {
		store := jobboard.NewUserStore()
		sm := jobboard.NewUserStateMachine(store)

		user := registerUser(t, store, &jobboard.User{
			Email:    "panics@example.com",
			Name:     "Panics",
			IsActive: true,
			Status:   jobboard.UserStatusActive,
		})

		assert.Panics(t, func() {
			_, _ = sm.Transition(ctx, actor, user, jobboard.UserStatusRestricted,
				jobboard.WithBeforeTransitionHook(func(ctx context.Context, tc jobboard.TransitionContext) error {
					return errors.New("boom")
				}),
			)
		})
	})
}

func TestUserStateMachine_ActivitySink(t *testing.T) {
	var events []jobboard.ActivityEvent
	sink := jobboard.ActivitySinkFunc(func(ctx context.Context, event jobboard.ActivityEvent) error {
		events = append(events, event)
		return nil
	})

	store := jobboard.NewUserStore(
		jobboard.WithUsersStateMachineOptions(jobboard.WithStateMachineActivitySink(sink)),
	)
	ctx := context.Background()
	actor := jobboard.ActorRef{ID: "admin-1", Type: "admin"}

	user := registerUser(t, store, &jobboard.User{
		Email:    "watched@example.com",
		Name:     "Watched",
		IsActive: true,
		Status:   jobboard.UserStatusActive,
	})

	_, err := store.Restrict(ctx, actor, user, jobboard.WithTransitionReason("fraud"))
	require.NoError(t, err)

	require.Len(t, events, 1)
	event := events[0]
	assert.Equal(t, jobboard.ActivityEventUserStatusChanged, event.EventType)
	assert.Equal(t, user.ID.String(), event.UserID)
	assert.Equal(t, jobboard.UserStatusActive, event.FromStatus)
	assert.Equal(t, jobboard.UserStatusRestricted, event.ToStatus)
	assert.Equal(t, "fraud", event.Metadata["reason"])
	assert.False(t, event.OccurredAt.IsZero())
}

func TestUserStateMachine_CurrentStatus(t *testing.T) {
	sm := jobboard.NewUserStateMachine(jobboard.NewUserStore())

	assert.Equal(t, jobboard.UserStatus(""), sm.CurrentStatus(nil))
	assert.Equal(t, jobboard.UserStatusActive, sm.CurrentStatus(&jobboard.User{IsActive: true}))
	assert.Equal(t, jobboard.UserStatusRestricted, sm.CurrentStatus(&jobboard.User{}))
}
