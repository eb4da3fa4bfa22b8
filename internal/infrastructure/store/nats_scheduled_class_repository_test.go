// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/televeda/scheduling-service/internal/domain"
	"github.com/televeda/scheduling-service/internal/domain/models"
)

func newTestClass(uid, communityUID string) *models.ScheduledClass {
	return &models.ScheduledClass{
		UID:          uid,
		Title:        "Chair Yoga",
		CommunityUID: communityUID,
		ClassType:    models.ClassTypeLocal,
		StartTime:    time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC),
		Duration:     60,
		IsAccessible: true,
		Visibility:   models.VisibilityPublic,
	}
}

func TestNatsScheduledClassRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	kv := newMockNatsKeyValue()
	repo := NewNatsScheduledClassRepository(kv)

	class := newTestClass("class-1", "community-1")
	require.NoError(t, repo.Create(ctx, class))

	got, err := repo.Get(ctx, "class-1")
	require.NoError(t, err)
	assert.Equal(t, "Chair Yoga", got.Title)
	assert.Equal(t, models.ClassTypeLocal, got.ClassType)
	assert.True(t, got.StartTime.Equal(class.StartTime))
}

func TestNatsScheduledClassRepositoryGetNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsScheduledClassRepository(newMockNatsKeyValue())

	_, err := repo.Get(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}

func TestNatsScheduledClassRepositoryExists(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsScheduledClassRepository(newMockNatsKeyValue())

	exists, err := repo.Exists(ctx, "class-1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(ctx, newTestClass("class-1", "community-1")))

	exists, err = repo.Exists(ctx, "class-1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestNatsScheduledClassRepositoryUpdateRevisionConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsScheduledClassRepository(newMockNatsKeyValue())

	class := newTestClass("class-1", "community-1")
	require.NoError(t, repo.Create(ctx, class))

	_, revision, err := repo.GetWithRevision(ctx, "class-1")
	require.NoError(t, err)

	class.Title = "Chair Yoga (updated)"
	require.NoError(t, repo.Update(ctx, class, revision))

	// Stale revision must be rejected
	err = repo.Update(ctx, class, revision)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(err))
}

func TestNatsScheduledClassRepositoryUpdateZeroRevisionSkipsCheck(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsScheduledClassRepository(newMockNatsKeyValue())

	class := newTestClass("class-1", "community-1")
	require.NoError(t, repo.Create(ctx, class))
	class.Title = "Chair Yoga (updated)"
	require.NoError(t, repo.Update(ctx, class, 0))

	// A zero revision overwrites regardless of the current store revision.
	class.Title = "Chair Yoga (updated again)"
	require.NoError(t, repo.Update(ctx, class, 0))

	got, err := repo.Get(ctx, "class-1")
	require.NoError(t, err)
	assert.Equal(t, "Chair Yoga (updated again)", got.Title)
}

func TestNatsScheduledClassRepositoryDeleteZeroRevisionSkipsCheck(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsScheduledClassRepository(newMockNatsKeyValue())

	class := newTestClass("class-1", "community-1")
	require.NoError(t, repo.Create(ctx, class))
	require.NoError(t, repo.Update(ctx, class, 0))

	require.NoError(t, repo.Delete(ctx, "class-1", 0))

	_, err := repo.Get(ctx, "class-1")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}

func TestNatsScheduledClassRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsScheduledClassRepository(newMockNatsKeyValue())

	require.NoError(t, repo.Create(ctx, newTestClass("class-1", "community-1")))

	_, revision, err := repo.GetWithRevision(ctx, "class-1")
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, "class-1", revision))

	_, err = repo.Get(ctx, "class-1")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}

func TestNatsScheduledClassRepositoryListByCommunity(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsScheduledClassRepository(newMockNatsKeyValue())

	require.NoError(t, repo.Create(ctx, newTestClass("class-1", "community-1")))
	require.NoError(t, repo.Create(ctx, newTestClass("class-2", "community-1")))
	require.NoError(t, repo.Create(ctx, newTestClass("class-3", "community-2")))

	classes, err := repo.ListByCommunity(ctx, "community-1")
	require.NoError(t, err)
	assert.Len(t, classes, 2)
	for _, class := range classes {
		assert.Equal(t, "community-1", class.CommunityUID)
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestNatsScheduledClassRepositoryNotReady(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsScheduledClassRepository(nil)

	assert.False(t, repo.IsReady())

	err := repo.Create(ctx, newTestClass("class-1", "community-1"))
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeUnavailable, domain.GetErrorType(err))
}
