// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/televeda/scheduling-service/internal/domain/models"
)

func weeklyClass(start time.Time) *models.ScheduledClass {
	return &models.ScheduledClass{
		UID:          "class-1",
		Title:        "Chair Yoga",
		ClassType:    models.ClassTypeLocal,
		StartTime:    start,
		Duration:     45,
		IsRecurring:  true,
		IsAccessible: true,
		Recurrence: &models.Recurrence{
			RepeatEvery: 1,
			RepeatUnit:  models.RepeatUnitWeek,
			EndType:     models.RecurrenceEndNever,
		},
	}
}

func TestMaterializeSingle(t *testing.T) {
	svc := NewMaterializerService()
	start := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	occ := svc.Materialize(&models.ScheduledClass{
		UID:          "class-1",
		Title:        "Chair Yoga",
		ClassType:    models.ClassTypeLocal,
		StartTime:    start,
		Duration:     45,
		IsAccessible: true,
	})

	assert.NotEmpty(t, occ.ID)
	assert.Equal(t, "class-1", occ.ScheduledClassUID)
	assert.Equal(t, start, occ.Start)
	assert.Equal(t, start.Add(45*time.Minute), occ.End)
	assert.Equal(t, models.OccurrenceColorDefault, occ.BackgroundColor)
	assert.True(t, occ.Editable)
	assert.False(t, occ.IsCancelled)
}

func TestMaterializeColors(t *testing.T) {
	svc := NewMaterializerService()
	start := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		isCanceled   bool
		isAccessible bool
		wantColor    string
	}{
		{
			name:         "accessible class uses the default color",
			isAccessible: true,
			wantColor:    models.OccurrenceColorDefault,
		},
		{
			name:         "cancelled class is gray",
			isCanceled:   true,
			isAccessible: true,
			wantColor:    models.OccurrenceColorCancelled,
		},
		{
			name:      "inaccessible class overrides the cancelled color",
			wantColor: models.OccurrenceColorInaccessible,
		},
		{
			name:       "inaccessible and cancelled stays inaccessible",
			isCanceled: true,
			wantColor:  models.OccurrenceColorInaccessible,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			occ := svc.Materialize(&models.ScheduledClass{
				UID:          "class-1",
				StartTime:    start,
				Duration:     45,
				IsCanceled:   tc.isCanceled,
				IsAccessible: tc.isAccessible,
			})
			assert.Equal(t, tc.wantColor, occ.BackgroundColor)
		})
	}
}

func TestMaterializeWebexNotEditable(t *testing.T) {
	svc := NewMaterializerService()

	occ := svc.Materialize(&models.ScheduledClass{
		UID:          "class-1",
		ClassType:    models.ClassTypeWebex,
		StartTime:    time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC),
		Duration:     45,
		IsAccessible: true,
	})

	assert.False(t, occ.Editable)
}

func TestMaterializeWindowRecurring(t *testing.T) {
	svc := NewMaterializerService()
	start := time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC)
	class := weeklyClass(start)

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	occurrences := svc.MaterializeWindow(class, from, to, 100)

	require.Len(t, occurrences, 5)
	for i, occ := range occurrences {
		assert.Equal(t, start.AddDate(0, 0, 7*i), occ.Start, "occurrence %d", i)
		assert.Equal(t, "class-1", occ.ScheduledClassUID)
	}
}

func TestMaterializeWindowSkipsDeletedDates(t *testing.T) {
	svc := NewMaterializerService()
	start := time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC)
	class := weeklyClass(start)
	class.DeletedDates = []time.Time{start.AddDate(0, 0, 7)}

	occurrences := svc.MaterializeWindow(class,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		100,
	)

	require.Len(t, occurrences, 4)
	for _, occ := range occurrences {
		assert.False(t, occ.Start.Equal(start.AddDate(0, 0, 7)))
	}
}

func TestMaterializeWindowCancelledDates(t *testing.T) {
	svc := NewMaterializerService()
	start := time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC)
	class := weeklyClass(start)
	class.CancelledDates = []time.Time{start.AddDate(0, 0, 7)}

	occurrences := svc.MaterializeWindow(class,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		100,
	)

	require.Len(t, occurrences, 5)
	assert.False(t, occurrences[0].IsCancelled)
	assert.True(t, occurrences[1].IsCancelled)
	assert.Equal(t, models.OccurrenceColorCancelled, occurrences[1].BackgroundColor)
	assert.False(t, occurrences[2].IsCancelled)
}

func TestMaterializeWindowCancelledFrom(t *testing.T) {
	svc := NewMaterializerService()
	start := time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC)
	class := weeklyClass(start)
	from := start.AddDate(0, 0, 14)
	class.CancelledFrom = &from

	occurrences := svc.MaterializeWindow(class,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		100,
	)

	require.Len(t, occurrences, 5)
	assert.False(t, occurrences[0].IsCancelled)
	assert.False(t, occurrences[1].IsCancelled)
	for _, occ := range occurrences[2:] {
		assert.True(t, occ.IsCancelled)
	}
}

func TestMaterializeWindowAppliesOverride(t *testing.T) {
	svc := NewMaterializerService()
	start := time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC)
	class := weeklyClass(start)
	anchor := start.AddDate(0, 0, 7)
	moved := anchor.Add(2 * time.Hour)
	class.Overrides = []models.OccurrenceOverride{
		{OriginalStart: anchor, NewStart: moved},
	}

	occurrences := svc.MaterializeWindow(class,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		100,
	)

	require.Len(t, occurrences, 5)
	assert.Equal(t, moved, occurrences[1].Start)
	assert.Equal(t, moved.Add(45*time.Minute), occurrences[1].End)
}

func TestMaterializeWindowRespectsLimit(t *testing.T) {
	svc := NewMaterializerService()
	class := weeklyClass(time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC))

	occurrences := svc.MaterializeWindow(class,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		3,
	)

	assert.Len(t, occurrences, 3)
}

func TestMaterializeWindowNonRecurring(t *testing.T) {
	svc := NewMaterializerService()
	start := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	class := &models.ScheduledClass{
		UID:          "class-1",
		StartTime:    start,
		Duration:     45,
		IsAccessible: true,
	}

	inWindow := svc.MaterializeWindow(class,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		100,
	)
	require.Len(t, inWindow, 1)
	assert.Equal(t, start, inWindow[0].Start)

	outOfWindow := svc.MaterializeWindow(class,
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
		100,
	)
	assert.Empty(t, outOfWindow)
}

func TestMaterializeWindowBoundedSeries(t *testing.T) {
	svc := NewMaterializerService()
	start := time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC)
	class := weeklyClass(start)
	class.Recurrence.EndType = models.RecurrenceEndCount
	class.Recurrence.EndTimes = 2

	occurrences := svc.MaterializeWindow(class,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		100,
	)

	assert.Len(t, occurrences, 2)
}

func TestNowMarker(t *testing.T) {
	svc := NewMaterializerService()
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	marker := svc.NowMarker(now)

	assert.True(t, marker.IsBackground)
	assert.Empty(t, marker.ScheduledClassUID)
	assert.False(t, marker.IsReal())
	assert.Equal(t, now, marker.End)
}
