// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/televeda/scheduling-service/internal/domain"
	"github.com/televeda/scheduling-service/internal/domain/models"
)

func testOccurrence(classUID string, start time.Time) *models.Occurrence {
	return &models.Occurrence{
		ID:                "occ-1",
		ScheduledClassUID: classUID,
		Start:             start,
		End:               start.Add(45 * time.Minute),
	}
}

func TestResolveScope(t *testing.T) {
	svc := NewAlterationService()
	recurring := weeklyClass(time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC))
	single := &models.ScheduledClass{UID: "class-2"}

	assert.Equal(t, models.ScopeAfter, svc.ResolveScope(recurring, models.ScopeAfter))
	assert.Equal(t, models.ScopeSingle, svc.ResolveScope(single, models.ScopeAfter))
	assert.Equal(t, models.ScopeSingle, svc.ResolveScope(recurring, models.AlterationScope("bogus")))
	assert.Equal(t, models.ScopeSingle, svc.ResolveScope(nil, models.ScopeAll))
}

func TestDefaultScope(t *testing.T) {
	svc := NewAlterationService()
	recurring := weeklyClass(time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC))
	single := &models.ScheduledClass{UID: "class-2"}

	// Deletion is high-risk and preselects the broadest scope.
	assert.Equal(t, models.ScopeAll, svc.DefaultScope(recurring, IntentDelete))
	assert.Equal(t, models.ScopeSingle, svc.DefaultScope(recurring, IntentCancel))
	assert.Equal(t, models.ScopeSingle, svc.DefaultScope(recurring, IntentReschedule))
	assert.Equal(t, models.ScopeSingle, svc.DefaultScope(single, IntentDelete))
}

func TestDefaultReschedulePathScope(t *testing.T) {
	svc := NewAlterationService()
	recurring := weeklyClass(time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC))

	assert.Equal(t, models.ScopeSingle, svc.DefaultReschedulePathScope(recurring, PathDrag))
	assert.Equal(t, models.ScopeAll, svc.DefaultReschedulePathScope(recurring, PathTemplateEdit))
	assert.Equal(t, models.ScopeSingle, svc.DefaultReschedulePathScope(nil, PathTemplateEdit))
}

func TestResolveReschedule(t *testing.T) {
	svc := NewAlterationService()
	start := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	class := weeklyClass(start)
	class.Timezone = models.TimezonePair{Requested: "America/Denver"}
	occ := testOccurrence(class.UID, start)
	newStart := start.Add(2 * time.Hour)

	resolution, err := svc.ResolveReschedule(class, occ, newStart, models.ScopeSingle, "America/New_York")
	require.NoError(t, err)

	assert.Equal(t, class.UID, resolution.Request.ClassUID)
	assert.Equal(t, models.ScopeSingle, resolution.Request.Scope)
	assert.Equal(t, start, resolution.Request.OldDate)
	assert.Equal(t, newStart, resolution.Request.NewStart)
	assert.Equal(t, "America/Denver", resolution.Request.Timezone.Requested)
	assert.Equal(t, "America/New_York", resolution.Request.Timezone.Current)
	assert.Empty(t, resolution.Advisory)

	assert.Equal(t, occ.ID, resolution.Patch.OccurrenceID)
	assert.Equal(t, start, resolution.Patch.PrevStart)
	assert.Equal(t, newStart, resolution.Patch.NewStart)
	assert.Equal(t, newStart.Add(45*time.Minute), resolution.Patch.NewEnd)
}

func TestResolveRescheduleAllScopeAdvisory(t *testing.T) {
	svc := NewAlterationService()
	start := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	class := weeklyClass(start)
	class.Timezone = models.TimezonePair{Requested: "UTC"}

	resolution, err := svc.ResolveReschedule(class, testOccurrence(class.UID, start), start.Add(time.Hour), models.ScopeAll, "UTC")
	require.NoError(t, err)

	assert.Equal(t, ScopeAllAdvisory, resolution.Advisory)
}

func TestResolveRescheduleValidation(t *testing.T) {
	svc := NewAlterationService()
	start := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	class := weeklyClass(start)
	class.Timezone = models.TimezonePair{Requested: "UTC"}

	_, err := svc.ResolveReschedule(nil, testOccurrence("class-1", start), start, models.ScopeSingle, "UTC")
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))

	_, err = svc.ResolveReschedule(class, nil, start, models.ScopeSingle, "UTC")
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))

	// The synthetic now-marker has no class UID and is not a real occurrence.
	marker := &models.Occurrence{ID: "marker", IsBackground: true}
	_, err = svc.ResolveReschedule(class, marker, start, models.ScopeSingle, "UTC")
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))

	_, err = svc.ResolveReschedule(class, testOccurrence(class.UID, start), time.Time{}, models.ScopeSingle, "UTC")
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
}

func TestResolveDelete(t *testing.T) {
	svc := NewAlterationService()
	start := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)
	class := weeklyClass(start)
	class.CommunityUID = "community-1"

	req, err := svc.ResolveDelete(class, testOccurrence(class.UID, start), models.ScopeAll, now)
	require.NoError(t, err)

	assert.Equal(t, models.ResourceScheduledClass, req.Resource)
	assert.Equal(t, models.ScopeAll, req.Scope)
	assert.Equal(t, start, req.StartDate)
	assert.Equal(t, now, req.CurrentDate)
	assert.Equal(t, "community-1", req.CommunityUID)
}

func TestResolveDeleteWebexResource(t *testing.T) {
	svc := NewAlterationService()
	start := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	class := weeklyClass(start)
	class.ClassType = models.ClassTypeWebex

	req, err := svc.ResolveDelete(class, testOccurrence(class.UID, start), models.ScopeSingle, start)
	require.NoError(t, err)

	assert.Equal(t, models.ResourceWebexClass, req.Resource)
}

func TestResolveCancel(t *testing.T) {
	svc := NewAlterationService()
	start := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)
	class := weeklyClass(start)

	req, err := svc.ResolveCancel(class, testOccurrence(class.UID, start), models.ScopeAfter, true, now)
	require.NoError(t, err)

	assert.Equal(t, models.ScopeAfter, req.Scope)
	assert.Equal(t, start, req.Date)
	assert.True(t, req.ShouldCancel)

	// Restore uses the same request shape with the flag flipped.
	req, err = svc.ResolveCancel(class, testOccurrence(class.UID, start), models.ScopeSingle, false, now)
	require.NoError(t, err)
	assert.False(t, req.ShouldCancel)
}

func TestResolveCancelNonRecurringForcesSingle(t *testing.T) {
	svc := NewAlterationService()
	start := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	class := &models.ScheduledClass{UID: "class-1", Title: "Chair Yoga", StartTime: start}

	req, err := svc.ResolveCancel(class, testOccurrence(class.UID, start), models.ScopeAfter, true, start)
	require.NoError(t, err)

	assert.Equal(t, models.ScopeSingle, req.Scope)
}
