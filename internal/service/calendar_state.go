// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"sync"
	"time"

	"github.com/televeda/scheduling-service/internal/domain"
	"github.com/televeda/scheduling-service/internal/domain/models"
)

// CalendarState is the explicit state store for a materialized calendar
// window. The resolver services stay pure; every mutation of the window goes
// through this store, which applies optimistic patches, reverts them on
// failure, and enforces a single in-flight mutation per occurrence.
type CalendarState struct {
	mu       sync.Mutex
	events   []models.Occurrence
	selected *models.Occurrence
	pending  map[string]bool // occurrence ID -> mutation in flight
}

// NewCalendarState creates an empty calendar state store.
func NewCalendarState() *CalendarState {
	return &CalendarState{
		pending: make(map[string]bool),
	}
}

// SetWindow replaces the materialized window contents. Any selection that no
// longer resolves to a real occurrence is cleared; in-flight guards are reset
// because the occurrence IDs they referenced are regenerated.
func (s *CalendarState) SetWindow(events []models.Occurrence) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = events
	s.pending = make(map[string]bool)
	if s.selected != nil {
		s.selected = s.findByClassAndStart(s.selected.ScheduledClassUID, s.selected.Start)
	}
}

// Events returns a snapshot copy of the window contents.
func (s *CalendarState) Events() []models.Occurrence {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Occurrence, len(s.events))
	copy(out, s.events)
	return out
}

// Select marks the occurrence with the given synthetic ID as selected.
func (s *CalendarState) Select(occurrenceID string) *models.Occurrence {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == occurrenceID && s.events[i].IsReal() {
			s.selected = &s.events[i]
			return s.selected
		}
	}
	s.selected = nil
	return nil
}

// Selected returns the currently selected occurrence, or nil.
func (s *CalendarState) Selected() *models.Occurrence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// ApplyPatch optimistically moves an occurrence to its post-drag position and
// marks it as having a mutation in flight. A second mutation against the same
// occurrence while one is pending is rejected with a conflict error.
func (s *CalendarState) ApplyPatch(patch OptimisticPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending[patch.OccurrenceID] {
		return domain.NewConflictError("a mutation is already in flight for this occurrence")
	}

	for i := range s.events {
		if s.events[i].ID == patch.OccurrenceID {
			s.events[i].Start = patch.NewStart
			s.events[i].End = patch.NewEnd
			s.pending[patch.OccurrenceID] = true
			return nil
		}
	}
	return domain.NewNotFoundError("occurrence not found in calendar window")
}

// RevertPatch restores the pre-drag position of a patched occurrence after a
// rejected mutation and clears its in-flight guard.
func (s *CalendarState) RevertPatch(patch OptimisticPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.events {
		if s.events[i].ID == patch.OccurrenceID {
			s.events[i].Start = patch.PrevStart
			s.events[i].End = patch.PrevEnd
			break
		}
	}
	delete(s.pending, patch.OccurrenceID)
}

// Refetch replaces the window via the given fetch function. Recurring
// mutations are always followed by a refetch rather than a local patch,
// because an After/All scope can ripple into occurrences outside the
// materialized set.
func (s *CalendarState) Refetch(ctx context.Context, from, to time.Time, fetch func(ctx context.Context, from, to time.Time) ([]models.Occurrence, error)) error {
	events, err := fetch(ctx, from, to)
	if err != nil {
		return err
	}
	s.SetWindow(events)
	return nil
}

// HasPending reports whether a mutation is in flight for the occurrence.
func (s *CalendarState) HasPending(occurrenceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[occurrenceID]
}

// findByClassAndStart resolves an occurrence by business identity. Synthetic
// IDs are regenerated per materialization, so identity is the class UID plus
// the start instant.
func (s *CalendarState) findByClassAndStart(classUID string, start time.Time) *models.Occurrence {
	for i := range s.events {
		if s.events[i].ScheduledClassUID == classUID && s.events[i].Start.Equal(start) {
			return &s.events[i]
		}
	}
	return nil
}
