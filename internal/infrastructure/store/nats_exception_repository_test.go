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

func newTestException(classUID string, date time.Time, communityUID string) *models.VisibilityException {
	return &models.VisibilityException{
		ClassUID:     classUID,
		Date:         date,
		CommunityUID: communityUID,
		Community:    "Test Community",
	}
}

func TestNatsExceptionRepositoryCreateAndListByClassDate(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsExceptionRepository(newMockNatsKeyValue())

	date := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	otherDate := date.AddDate(0, 0, 7)

	require.NoError(t, repo.Create(ctx, newTestException("class-1", date, "community-1")))
	require.NoError(t, repo.Create(ctx, newTestException("class-1", date, "community-2")))
	require.NoError(t, repo.Create(ctx, newTestException("class-1", otherDate, "community-1")))
	require.NoError(t, repo.Create(ctx, newTestException("class-2", date, "community-1")))

	exceptions, err := repo.ListByClassDate(ctx, "class-1", date)
	require.NoError(t, err)
	assert.Len(t, exceptions, 2)
	for _, exception := range exceptions {
		assert.Equal(t, "class-1", exception.ClassUID)
		assert.True(t, exception.Date.Equal(date))
	}
}

func TestNatsExceptionRepositoryListByClass(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsExceptionRepository(newMockNatsKeyValue())

	date := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newTestException("class-1", date, "community-1")))
	require.NoError(t, repo.Create(ctx, newTestException("class-1", date.AddDate(0, 0, 7), "community-1")))
	require.NoError(t, repo.Create(ctx, newTestException("class-2", date, "community-1")))

	exceptions, err := repo.ListByClass(ctx, "class-1")
	require.NoError(t, err)
	assert.Len(t, exceptions, 2)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestNatsExceptionRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsExceptionRepository(newMockNatsKeyValue())

	date := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newTestException("class-1", date, "community-1")))

	require.NoError(t, repo.Delete(ctx, "class-1", date, "community-1"))

	exceptions, err := repo.ListByClassDate(ctx, "class-1", date)
	require.NoError(t, err)
	assert.Empty(t, exceptions)

	// Deleting a missing exception reports not found
	err = repo.Delete(ctx, "class-1", date, "community-1")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}

func TestNatsExceptionRepositoryDeleteIgnoresCallerTimezone(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsExceptionRepository(newMockNatsKeyValue())

	loc, err := time.LoadLocation("America/Denver")
	require.NoError(t, err)

	utc := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newTestException("class-1", utc, "community-1")))

	// Same instant expressed in a different timezone must hit the same key
	require.NoError(t, repo.Delete(ctx, "class-1", utc.In(loc), "community-1"))
}
