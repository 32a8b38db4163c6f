package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-jobboard/jobs"
)

func TestJobStore_Create(t *testing.T) {
	store := jobs.NewJobStore()
	ctx := context.Background()

	created, err := store.Create(ctx, &jobs.Job{
		EmployerID: uuid.New(),
		Title:      "Backend Engineer",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, jobs.JobStatusActive, created.Status)
	assert.Equal(t, jobs.DefaultJobType, created.JobType)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestJobStore_List(t *testing.T) {
	store := jobs.NewJobStore()
	ctx := context.Background()
	employer := uuid.New()

	seed := func(title, description, category, status string, createdAt time.Time) {
		t.Helper()
		_, err := store.Create(ctx, &jobs.Job{
			EmployerID:  employer,
			Title:       title,
			Description: description,
			Category:    category,
			Status:      status,
			CreatedAt:   createdAt,
		})
		require.NoError(t, err)
	}

	now := time.Now()
	seed("Go Developer", "Build services in Go", "IT", jobs.JobStatusActive, now.Add(-2*time.Hour))
	seed("Nurse", "Hospital shift work", "Healthcare", jobs.JobStatusActive, now.Add(-time.Hour))
	seed("Old Go Role", "Closed Go position", "IT", jobs.JobStatusClosed, now.Add(-3*time.Hour))

	t.Run("no filter returns everything newest first", func(t *testing.T) {
		list, err := store.List(ctx, jobs.JobFilter{})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Nurse", list[0].Title)
		assert.Equal(t, "Go Developer", list[1].Title)
		assert.Equal(t, "Old Go Role", list[2].Title)
	})

	t.Run("filters by status", func(t *testing.T) {
		list, err := store.List(ctx, jobs.JobFilter{Status: jobs.JobStatusClosed})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Old Go Role", list[0].Title)
	})

	t.Run("filters by category", func(t *testing.T) {
		list, err := store.List(ctx, jobs.JobFilter{Category: "Healthcare"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Nurse", list[0].Title)
	})

	t.Run("search matches title and description", func(t *testing.T) {
		list, err := store.List(ctx, jobs.JobFilter{Search: "go"})
		require.NoError(t, err)
		assert.Len(t, list, 2)

		list, err = store.List(ctx, jobs.JobFilter{Search: "hospital"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Nurse", list[0].Title)
	})
}

func TestJobStore_UpdateAndDelete(t *testing.T) {
	store := jobs.NewJobStore()
	ctx := context.Background()

	created, err := store.Create(ctx, &jobs.Job{
		EmployerID: uuid.New(),
		Title:      "Designer",
	})
	require.NoError(t, err)

	created.Title = "Senior Designer"
	updated, err := store.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Senior Designer", updated.Title)
	assert.NotNil(t, updated.UpdatedAt)

	require.NoError(t, store.Delete(ctx, created.ID))

	_, err = store.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, jobs.ErrJobNotFound)

	assert.ErrorIs(t, store.Delete(ctx, created.ID), jobs.ErrJobNotFound)

	_, err = store.Update(ctx, created)
	assert.ErrorIs(t, err, jobs.ErrJobNotFound)
}

func TestApplicationStore_Create(t *testing.T) {
	store := jobs.NewApplicationStore()
	ctx := context.Background()

	jobID := uuid.New()
	employeeID := uuid.New()

	created, err := store.Create(ctx, &jobs.Application{
		JobID:      jobID,
		EmployeeID: employeeID,
	})
	require.NoError(t, err)
	assert.Equal(t, jobs.ApplicationStatusPending, created.Status)
	assert.False(t, created.AppliedAt.IsZero())

	t.Run("rejects a second application to the same job", func(t *testing.T) {
		_, err := store.Create(ctx, &jobs.Application{
			JobID:      jobID,
			EmployeeID: employeeID,
		})
		assert.ErrorIs(t, err, jobs.ErrAlreadyApplied)
	})

	t.Run("other jobs are still open", func(t *testing.T) {
		_, err := store.Create(ctx, &jobs.Application{
			JobID:      uuid.New(),
			EmployeeID: employeeID,
		})
		assert.NoError(t, err)
	})
}

func TestApplicationStore_Queries(t *testing.T) {
	store := jobs.NewApplicationStore()
	ctx := context.Background()

	jobA := uuid.New()
	jobB := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	seed := func(jobID, employeeID uuid.UUID, appliedAt time.Time) {
		t.Helper()
		_, err := store.Create(ctx, &jobs.Application{
			JobID:      jobID,
			EmployeeID: employeeID,
			AppliedAt:  appliedAt,
		})
		require.NoError(t, err)
	}

	now := time.Now()
	seed(jobA, alice, now.Add(-2*time.Hour))
	seed(jobB, alice, now.Add(-time.Hour))
	seed(jobA, bob, now.Add(-30*time.Minute))

	t.Run("by employee newest first", func(t *testing.T) {
		list, err := store.ListByEmployee(ctx, alice)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, jobB, list[0].JobID)
		assert.Equal(t, jobA, list[1].JobID)
	})

	t.Run("by job", func(t *testing.T) {
		list, err := store.ListByJob(ctx, jobA)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("count by employee", func(t *testing.T) {
		count, err := store.CountByEmployee(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		count, err = store.CountByEmployee(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("has applied", func(t *testing.T) {
		applied, err := store.HasApplied(ctx, jobA, alice)
		require.NoError(t, err)
		assert.True(t, applied)

		applied, err = store.HasApplied(ctx, jobB, bob)
		require.NoError(t, err)
		assert.False(t, applied)
	})
}

func TestApplicationStore_Update(t *testing.T) {
	store := jobs.NewApplicationStore()
	ctx := context.Background()

	created, err := store.Create(ctx, &jobs.Application{
		JobID:      uuid.New(),
		EmployeeID: uuid.New(),
	})
	require.NoError(t, err)

	created.Status = jobs.ApplicationStatusInterview
	created.Progress = 60
	updated, err := store.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, jobs.ApplicationStatusInterview, updated.Status)
	assert.Equal(t, 60, updated.Progress)
	assert.NotNil(t, updated.UpdatedAt)

	_, err = store.Update(ctx, &jobs.Application{ID: uuid.New()})
	assert.ErrorIs(t, err, jobs.ErrApplicationNotFound)
}
