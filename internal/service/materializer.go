// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/televeda/scheduling-service/internal/domain"
	"github.com/televeda/scheduling-service/internal/domain/models"
)

// MaterializerService implements the domain.Materializer interface.
type MaterializerService struct{}

// NewMaterializerService creates a new MaterializerService.
func NewMaterializerService() *MaterializerService {
	return &MaterializerService{}
}

// Materialize converts a scheduled class definition into the occurrence
// anchored at the definition's start time.
func (s *MaterializerService) Materialize(class *models.ScheduledClass) models.Occurrence {
	if class == nil {
		return models.Occurrence{}
	}
	return s.materializeAt(class, class.StartTime)
}

// MaterializeWindow expands a class definition into all occurrences falling
// inside [from, to), up to limit.
func (s *MaterializerService) MaterializeWindow(class *models.ScheduledClass, from, to time.Time, limit int) []models.Occurrence {
	if class == nil || limit <= 0 || !to.After(from) {
		return []models.Occurrence{}
	}

	if !class.IsRecurring || class.Recurrence == nil {
		start := class.StartTime
		if override := class.OverrideFor(start); override != nil {
			start = override.NewStart
		}
		if start.Before(from) || !start.Before(to) || class.IsDateDeleted(class.StartTime) {
			return []models.Occurrence{}
		}
		return []models.Occurrence{s.materializeAt(class, start)}
	}

	rule, err := class.Recurrence.ToRRule(class.StartTime.In(class.Location()))
	if err != nil {
		// A malformed recurrence still has a first occurrence.
		start := class.StartTime
		if start.Before(from) || !start.Before(to) {
			return []models.Occurrence{}
		}
		return []models.Occurrence{s.materializeAt(class, start)}
	}

	occurrences := []models.Occurrence{}
	// The window end is exclusive; rrule's Between is inclusive on both ends.
	for _, anchor := range rule.Between(from, to.Add(-time.Nanosecond), true) {
		if len(occurrences) >= limit {
			break
		}
		if class.IsDateDeleted(anchor) {
			continue
		}
		start := anchor
		if override := class.OverrideFor(anchor); override != nil {
			start = override.NewStart
		}
		occ := s.materializeAt(class, start)
		if class.IsDateCancelled(anchor) {
			occ.IsCancelled = true
			if class.IsAccessible {
				occ.BackgroundColor = models.OccurrenceColorCancelled
			}
		}
		occurrences = append(occurrences, occ)
	}

	return occurrences
}

// NowMarker builds the synthetic background occurrence representing "now" as a
// shaded region up to the current instant. It carries no class UID so that
// IsReal filters it out of business iteration.
func (s *MaterializerService) NowMarker(now time.Time) models.Occurrence {
	return models.Occurrence{
		ID:           uuid.New().String(),
		Start:        time.Time{},
		End:          now,
		IsBackground: true,
	}
}

// materializeAt builds a single occurrence of the class starting at the given
// instant. The ID is synthetic and must never be used for business identity;
// callers compare by ScheduledClassUID and Start.
func (s *MaterializerService) materializeAt(class *models.ScheduledClass, start time.Time) models.Occurrence {
	color := models.OccurrenceColorDefault
	if class.IsCanceled {
		color = models.OccurrenceColorCancelled
	}
	if !class.IsAccessible {
		// Visible on the calendar but not interactable, regardless of
		// cancellation state.
		color = models.OccurrenceColorInaccessible
	}

	return models.Occurrence{
		ID:                uuid.New().String(),
		ScheduledClassUID: class.UID,
		Title:             class.Title,
		ClassType:         class.ClassType,
		Start:             start,
		End:               start.Add(time.Duration(class.Duration) * time.Minute),
		BackgroundColor:   color,
		// Webex-backed occurrences can never be drag-edited: their start time
		// is governed by the conferencing API, which requires an explicit
		// authenticated mutation.
		Editable:    class.ClassType != models.ClassTypeWebex && class.IsAccessible,
		IsCancelled: class.IsCanceled,
	}
}

// Compile-time interface check
var _ domain.Materializer = (*MaterializerService)(nil)
