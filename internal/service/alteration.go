// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package service

import (
	"time"

	"github.com/televeda/scheduling-service/internal/domain"
	"github.com/televeda/scheduling-service/internal/domain/models"
)

// AlterationIntent is the destructive intent behind a scope resolution. The
// default preselected scope differs by intent: cancellation is low-risk and
// scoped narrowly by default, deletion is high-risk and defaults to the
// broadest scope so the user must actively narrow it.
type AlterationIntent string

const (
	IntentDelete     AlterationIntent = "delete"
	IntentCancel     AlterationIntent = "cancel"
	IntentReschedule AlterationIntent = "reschedule"
)

// ReschedulePath distinguishes a direct calendar drag from an edit of the
// series template. A drag always starts from a Single scope and only
// escalates when the user explicitly confirms; a template edit resolves to
// the whole series.
type ReschedulePath string

const (
	PathDrag         ReschedulePath = "drag"
	PathTemplateEdit ReschedulePath = "template-edit"
)

// ScopeAllAdvisory is the non-blocking warning shown when a reschedule is
// confirmed with the All scope. It is informational only; the mutation
// proceeds regardless of acknowledgement.
const ScopeAllAdvisory = "The whole occurrence start time will be changed to the new time."

// OptimisticPatch captures the pre-mutation position of a dragged occurrence
// so the calendar can be reverted if the server rejects the mutation.
type OptimisticPatch struct {
	OccurrenceID      string
	ScheduledClassUID string
	PrevStart         time.Time
	PrevEnd           time.Time
	NewStart          time.Time
	NewEnd            time.Time
}

// RescheduleResolution is the outcome of resolving a reschedule action: the
// mutation to send, the optimistic calendar patch, and an advisory message
// when the scope ripples across the whole series.
type RescheduleResolution struct {
	Request  *models.RescheduleRequest
	Patch    OptimisticPatch
	Advisory string
}

// AlterationService resolves user actions on occurrences into mutation
// requests. All methods are pure functions over definition snapshots.
type AlterationService struct{}

// NewAlterationService creates a new AlterationService.
func NewAlterationService() *AlterationService {
	return &AlterationService{}
}

// ResolveScope returns the effective alteration scope for a class. A
// non-recurring class has no series to apply "after" or "all" to, so the
// scope is forced to Single regardless of what was requested.
func (s *AlterationService) ResolveScope(class *models.ScheduledClass, requested models.AlterationScope) models.AlterationScope {
	if class == nil || !class.IsRecurring {
		return models.ScopeSingle
	}
	if !requested.IsValid() {
		return models.ScopeSingle
	}
	return requested
}

// DefaultScope returns the scope preselected for a recurring class given the
// destructive intent. Deletion defaults to All; cancellation and reschedule
// default to Single.
func (s *AlterationService) DefaultScope(class *models.ScheduledClass, intent AlterationIntent) models.AlterationScope {
	if class == nil || !class.IsRecurring {
		return models.ScopeSingle
	}
	if intent == IntentDelete {
		return models.ScopeAll
	}
	return models.ScopeSingle
}

// DefaultReschedulePathScope returns the scope a reschedule starts from for
// the given path, before any user confirmation.
func (s *AlterationService) DefaultReschedulePathScope(class *models.ScheduledClass, path ReschedulePath) models.AlterationScope {
	if class == nil || !class.IsRecurring {
		return models.ScopeSingle
	}
	if path == PathTemplateEdit {
		return models.ScopeAll
	}
	return models.ScopeSingle
}

// ResolveReschedule turns a drag (or template edit) of an occurrence into the
// reschedule mutation and its optimistic patch. currentTimezone is the name
// of the caller's local timezone; the server needs both it and the class's
// scheduled timezone to re-anchor the recurrence rule correctly.
func (s *AlterationService) ResolveReschedule(
	class *models.ScheduledClass,
	occurrence *models.Occurrence,
	newStart time.Time,
	scopeChoice models.AlterationScope,
	currentTimezone string,
) (*RescheduleResolution, error) {
	if class == nil || occurrence == nil || !occurrence.IsReal() {
		return nil, domain.NewValidationError("a scheduled class occurrence is required")
	}
	if newStart.IsZero() {
		return nil, domain.NewValidationError("a new start time is required")
	}

	scope := s.ResolveScope(class, scopeChoice)
	duration := occurrence.End.Sub(occurrence.Start)

	req := &models.RescheduleRequest{
		ClassUID: class.UID,
		Scope:    scope,
		OldDate:  occurrence.Start,
		NewStart: newStart,
		Timezone: models.TimezonePair{
			Requested: class.Timezone.Requested,
			Current:   currentTimezone,
		},
	}
	if err := req.Validate(); err != nil {
		return nil, domain.NewValidationError("invalid reschedule request", err)
	}

	resolution := &RescheduleResolution{
		Request: req,
		Patch: OptimisticPatch{
			OccurrenceID:      occurrence.ID,
			ScheduledClassUID: occurrence.ScheduledClassUID,
			PrevStart:         occurrence.Start,
			PrevEnd:           occurrence.End,
			NewStart:          newStart,
			NewEnd:            newStart.Add(duration),
		},
	}
	if scope == models.ScopeAll {
		resolution.Advisory = ScopeAllAdvisory
	}
	return resolution, nil
}

// ResolveDelete turns a delete action on an occurrence into the delete
// mutation. Webex-backed classes route through the webex-class resource so
// that the external conferencing room is cancelled alongside; scope semantics
// are identical across both branches.
func (s *AlterationService) ResolveDelete(
	class *models.ScheduledClass,
	occurrence *models.Occurrence,
	scopeChoice models.AlterationScope,
	now time.Time,
) (*models.DeleteRequest, error) {
	if class == nil || occurrence == nil || !occurrence.IsReal() {
		return nil, domain.NewValidationError("a scheduled class occurrence is required")
	}

	resource := models.ResourceScheduledClass
	if class.ClassType == models.ClassTypeWebex {
		resource = models.ResourceWebexClass
	}

	req := &models.DeleteRequest{
		ClassUID:     class.UID,
		Resource:     resource,
		Scope:        s.ResolveScope(class, scopeChoice),
		StartDate:    occurrence.Start,
		CurrentDate:  now,
		Title:        class.Title,
		CommunityUID: class.CommunityUID,
	}
	if err := req.Validate(); err != nil {
		return nil, domain.NewValidationError("invalid delete request", err)
	}
	return req, nil
}

// ResolveCancel turns a cancel (or restore) action on an occurrence into the
// cancel mutation.
func (s *AlterationService) ResolveCancel(
	class *models.ScheduledClass,
	occurrence *models.Occurrence,
	scopeChoice models.AlterationScope,
	shouldCancel bool,
	now time.Time,
) (*models.CancelRequest, error) {
	if class == nil || occurrence == nil || !occurrence.IsReal() {
		return nil, domain.NewValidationError("a scheduled class occurrence is required")
	}

	req := &models.CancelRequest{
		ClassUID:     class.UID,
		Scope:        s.ResolveScope(class, scopeChoice),
		Title:        class.Title,
		Date:         occurrence.Start,
		CurrentDate:  now,
		ShouldCancel: shouldCancel,
	}
	if err := req.Validate(); err != nil {
		return nil, domain.NewValidationError("invalid cancel request", err)
	}
	return req, nil
}
