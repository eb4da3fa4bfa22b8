// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/akamensky/base58"
	"github.com/google/uuid"

	"github.com/televeda/scheduling-service/internal/domain"
	"github.com/televeda/scheduling-service/internal/domain/models"
	"github.com/televeda/scheduling-service/internal/logging"
	"github.com/televeda/scheduling-service/pkg/concurrent"
	"github.com/televeda/scheduling-service/pkg/constants"
	"github.com/televeda/scheduling-service/pkg/utils"
)

// ScheduledClassService orchestrates scheduled class mutations against the
// store, the conferencing providers, and the message bus.
type ScheduledClassService struct {
	ClassRepository     domain.ScheduledClassRepository
	ExceptionRepository domain.ExceptionRepository
	CommunityRepository domain.CommunityRepository
	MessageBuilder      domain.MessageBuilder
	ProviderRegistry    domain.ProviderRegistry
	Materializer        domain.Materializer
	Config              ServiceConfig
}

// NewScheduledClassService creates a new ScheduledClassService.
func NewScheduledClassService(
	classRepository domain.ScheduledClassRepository,
	exceptionRepository domain.ExceptionRepository,
	communityRepository domain.CommunityRepository,
	messageBuilder domain.MessageBuilder,
	providerRegistry domain.ProviderRegistry,
	materializer domain.Materializer,
	config ServiceConfig,
) *ScheduledClassService {
	return &ScheduledClassService{
		ClassRepository:     classRepository,
		ExceptionRepository: exceptionRepository,
		CommunityRepository: communityRepository,
		MessageBuilder:      messageBuilder,
		ProviderRegistry:    providerRegistry,
		Materializer:        materializer,
		Config:              config,
	}
}

// writeRevision returns the revision enforced on a store write. Zero disables
// the optimistic-concurrency check; see ServiceConfig.SkipRevisionValidation.
func (s *ScheduledClassService) writeRevision(revision uint64) uint64 {
	if s.Config.SkipRevisionValidation {
		return 0
	}
	return revision
}

// ServiceReady checks if the service is ready for use.
func (s *ScheduledClassService) ServiceReady() bool {
	return s.ClassRepository != nil &&
		s.ExceptionRepository != nil &&
		s.CommunityRepository != nil &&
		s.MessageBuilder != nil &&
		s.ProviderRegistry != nil &&
		s.Materializer != nil
}

// CalendarQuery filters a calendar window request.
type CalendarQuery struct {
	From               time.Time
	To                 time.Time
	CommunityUIDs      []string
	ClassTypes         []models.ClassType
	HostUID            string
	ViewerCommunityUID string
}

// RescheduleResult is the outcome of a reschedule mutation. SplitClass is set
// when an After-scoped reschedule split the series. OnDemandUpdates lists
// downstream on-demand classes linked to the rescheduled class; it is
// advisory only and never rolls back the primary mutation.
type RescheduleResult struct {
	Class           *models.ScheduledClass
	SplitClass      *models.ScheduledClass
	OnDemandUpdates []string
}

func (s *ScheduledClassService) validateCreatePayload(ctx context.Context, class *models.ScheduledClass) error {
	if class == nil {
		return domain.ErrValidationFailed
	}
	if class.Title == "" {
		slog.WarnContext(ctx, "scheduled class title is required")
		return domain.NewValidationError("title is required")
	}
	if class.CommunityUID == "" {
		return domain.NewValidationError("community UID is required")
	}
	if !class.ClassType.IsValid() {
		return domain.NewValidationError("invalid class type")
	}
	if class.StartTime.IsZero() {
		return domain.NewValidationError("start time is required")
	}
	if class.Duration <= 0 {
		return domain.NewValidationError("duration must be positive")
	}
	if class.Duration > constants.MaxClassDurationMinutes {
		return domain.NewValidationError("duration exceeds the maximum class length")
	}
	if class.IsRecurring && class.Recurrence == nil {
		return domain.NewValidationError("recurring class requires a recurrence descriptor")
	}
	return nil
}

// CreateScheduledClass creates a new scheduled class, provisioning an external
// conferencing room when the class type requires one.
func (s *ScheduledClassService) CreateScheduledClass(ctx context.Context, class *models.ScheduledClass) (*models.ScheduledClass, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.ErrServiceUnavailable
	}

	if err := s.validateCreatePayload(ctx, class); err != nil {
		return nil, err
	}

	uid := uuid.New()
	class.UID = uid.String()
	if class.Visibility == "" {
		class.Visibility = models.VisibilityCommunity
	}
	if class.Visibility == models.VisibilityPublic && class.PublicSlug == "" {
		class.PublicSlug = base58.Encode(uid[:])
	}
	now := utils.TimePtr(time.Now().UTC())
	class.CreatedAt = now
	class.UpdatedAt = now

	ctx = logging.AppendCtx(ctx, slog.String("class_uid", class.UID))

	if provider, err := s.ProviderRegistry.GetProvider(class.ClassType); err == nil && provider != nil {
		roomID, joinURL, err := provider.CreateRoom(ctx, class)
		if err != nil {
			slog.ErrorContext(ctx, "error creating conferencing room", logging.ErrKey, err)
			return nil, domain.NewInternalError("failed to create conferencing room", err)
		}
		class.WebexConfig = &models.WebexConfig{RoomID: roomID, JoinURL: joinURL}
	}

	if err := s.ClassRepository.Create(ctx, class); err != nil {
		return nil, err
	}

	if err := s.MessageBuilder.SendIndexScheduledClass(ctx, models.ActionCreated, *class); err != nil {
		slog.ErrorContext(ctx, "error sending class index message", logging.ErrKey, err)
	}

	slog.DebugContext(ctx, "created scheduled class", "class_type", class.ClassType)

	return class, nil
}

// GetScheduledClass fetches one scheduled class.
func (s *ScheduledClassService) GetScheduledClass(ctx context.Context, classUID string) (*models.ScheduledClass, error) {
	if !s.ServiceReady() {
		return nil, domain.ErrServiceUnavailable
	}
	return s.ClassRepository.Get(ctx, classUID)
}

// GetCalendarWindow materializes the calendar window for the query: the
// matching class definitions expanded into occurrences, decorated with their
// visibility exceptions, plus the synthetic now-marker.
func (s *ScheduledClassService) GetCalendarWindow(ctx context.Context, query CalendarQuery) ([]models.Occurrence, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.ErrServiceUnavailable
	}
	if query.To.Before(query.From) {
		return nil, domain.NewValidationError("window end precedes window start")
	}

	classes, err := s.ClassRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	limit := s.Config.MaterializationLimit
	if limit <= 0 {
		limit = DefaultMaterializationLimit
	}

	occurrences := []models.Occurrence{}
	for _, class := range classes {
		if !s.matchesQuery(class, query) {
			continue
		}
		for _, occ := range s.Materializer.MaterializeWindow(class, query.From, query.To, limit) {
			decorated, err := s.decorateWithExceptions(ctx, class, occ, query.ViewerCommunityUID)
			if err != nil {
				return nil, err
			}
			occurrences = append(occurrences, decorated)
		}
	}

	occurrences = append(occurrences, s.Materializer.NowMarker(time.Now().UTC()))

	slog.DebugContext(ctx, "materialized calendar window", "occurrences", len(occurrences))

	return occurrences, nil
}

func (s *ScheduledClassService) matchesQuery(class *models.ScheduledClass, query CalendarQuery) bool {
	if class == nil {
		return false
	}
	if len(query.CommunityUIDs) > 0 && !slices.Contains(query.CommunityUIDs, class.CommunityUID) {
		return false
	}
	if len(query.ClassTypes) > 0 && !slices.Contains(query.ClassTypes, class.ClassType) {
		return false
	}
	if query.HostUID != "" && class.HostUID != query.HostUID {
		return false
	}
	return true
}

// decorateWithExceptions attaches the occurrence's exception communities and
// derives its hidden state for the viewing community. Only public classes
// carry per-community overrides.
func (s *ScheduledClassService) decorateWithExceptions(ctx context.Context, class *models.ScheduledClass, occ models.Occurrence, viewerCommunityUID string) (models.Occurrence, error) {
	if class.Visibility != models.VisibilityPublic {
		return occ, nil
	}

	exceptions, err := s.ExceptionRepository.ListByClassDate(ctx, class.UID, occ.Start)
	if err != nil {
		return occ, err
	}

	for _, e := range exceptions {
		occ.ExceptionCommunities = append(occ.ExceptionCommunities, e.Ref())
		if viewerCommunityUID != "" && e.CommunityUID == viewerCommunityUID {
			occ.IsHidden = true
		}
	}
	return occ, nil
}

// Reschedule applies a reschedule mutation. Scope semantics:
//   - Single on a recurring series stores an occurrence override anchored at
//     OldDate; on a non-recurring class it moves the start time.
//   - After splits the series: the existing class ends before OldDate and a
//     new class carries the remainder from NewStart.
//   - All re-anchors the whole series at NewStart.
func (s *ScheduledClassService) Reschedule(ctx context.Context, req *models.RescheduleRequest) (*RescheduleResult, error) {
	if !s.ServiceReady() {
		return nil, domain.ErrServiceUnavailable
	}
	if req == nil {
		return nil, domain.ErrValidationFailed
	}
	if err := req.Validate(); err != nil {
		return nil, domain.NewValidationError("invalid reschedule request", err)
	}

	ctx = logging.AppendCtx(ctx, slog.String("class_uid", req.ClassUID))

	class, revision, err := s.ClassRepository.GetWithRevision(ctx, req.ClassUID)
	if err != nil {
		return nil, err
	}

	scope := req.Scope
	if !class.IsRecurring {
		scope = models.ScopeSingle
	}

	result := &RescheduleResult{Class: class}

	var split *models.ScheduledClass
	switch scope {
	case models.ScopeAll:
		class.StartTime = req.NewStart
		class.Overrides = nil
	case models.ScopeAfter:
		split, err = s.splitSeries(ctx, class, req)
		if err != nil {
			return nil, err
		}
		result.SplitClass = split
	case models.ScopeSingle:
		if class.IsRecurring {
			s.upsertOverride(class, req.OldDate, req.NewStart)
		} else {
			class.StartTime = req.NewStart
		}
	}

	if class.ClassType == models.ClassTypeWebex && class.WebexConfig != nil && class.WebexConfig.RoomID != "" {
		provider, err := s.ProviderRegistry.GetProvider(class.ClassType)
		if err != nil {
			s.releaseSplitRoom(ctx, split)
			return nil, err
		}
		if err := provider.UpdateRoom(ctx, class.WebexConfig.RoomID, class); err != nil {
			slog.ErrorContext(ctx, "error updating conferencing room", logging.ErrKey, err)
			s.releaseSplitRoom(ctx, split)
			return nil, domain.NewInternalError("failed to update conferencing room", err)
		}
	}

	// The original's trim is persisted before the split exists in the store, so
	// a failed update never leaves both series materializing the same tail.
	class.UpdatedAt = utils.TimePtr(time.Now().UTC())
	if err := s.ClassRepository.Update(ctx, class, s.writeRevision(revision)); err != nil {
		s.releaseSplitRoom(ctx, split)
		return nil, err
	}

	if split != nil {
		if err := s.ClassRepository.Create(ctx, split); err != nil {
			s.releaseSplitRoom(ctx, split)
			return nil, err
		}
		if err := s.MessageBuilder.SendIndexScheduledClass(ctx, models.ActionCreated, *split); err != nil {
			slog.ErrorContext(ctx, "error sending split class index message", logging.ErrKey, err)
		}
	}

	result.OnDemandUpdates, err = s.linkedOnDemandTitles(ctx, class.UID)
	if err != nil {
		// Advisory only: the primary mutation already succeeded.
		slog.WarnContext(ctx, "error resolving linked on-demand classes", logging.ErrKey, err)
		err = nil
	}

	pool := concurrent.NewWorkerPool(2)
	err = pool.Run(ctx,
		func() error {
			return s.MessageBuilder.SendIndexScheduledClass(ctx, models.ActionUpdated, *class)
		},
		func() error {
			return s.MessageBuilder.SendClassRescheduled(ctx, models.ClassRescheduledMessage{
				ClassUID: class.UID,
				Scope:    scope,
				OldDate:  req.OldDate.Format(time.RFC3339),
				NewStart: req.NewStart.Format(time.RFC3339),
			})
		},
	)
	if err != nil {
		slog.ErrorContext(ctx, "error publishing reschedule messages", logging.ErrKey, err)
	}

	return result, nil
}

// splitSeries ends the class's recurrence before the targeted occurrence and
// builds a new class carrying the remainder of the series from the new start.
// A provider-backed class gets its own fresh conferencing room for the split:
// the two series must never share one room, or cancelling either would tear
// down the other's. The caller persists the split after the original's trim
// is stored.
func (s *ScheduledClassService) splitSeries(ctx context.Context, class *models.ScheduledClass, req *models.RescheduleRequest) (*models.ScheduledClass, error) {
	if class.Recurrence == nil {
		return nil, domain.NewValidationError("cannot split a class without a recurrence")
	}

	splitUID := uuid.New()
	split := *class
	split.UID = splitUID.String()
	split.StartTime = req.NewStart
	split.Overrides = nil
	split.CancelledDates = nil
	split.DeletedDates = nil
	split.WebexConfig = nil
	if class.PublicSlug != "" {
		split.PublicSlug = base58.Encode(splitUID[:])
	}
	splitRecurrence := *class.Recurrence
	split.Recurrence = &splitRecurrence
	now := utils.TimePtr(time.Now().UTC())
	split.CreatedAt = now
	split.UpdatedAt = now

	if class.ClassType == models.ClassTypeWebex && class.WebexConfig != nil && class.WebexConfig.RoomID != "" {
		provider, err := s.ProviderRegistry.GetProvider(class.ClassType)
		if err != nil {
			return nil, err
		}
		roomID, joinURL, err := provider.CreateRoom(ctx, &split)
		if err != nil {
			slog.ErrorContext(ctx, "error creating conferencing room for split series", logging.ErrKey, err)
			return nil, domain.NewInternalError("failed to create conferencing room for split series", err)
		}
		split.WebexConfig = &models.WebexConfig{RoomID: roomID, JoinURL: joinURL}
	}

	endBefore := req.OldDate.Add(-time.Second)
	trimmed := *class.Recurrence
	trimmed.EndType = models.RecurrenceEndDate
	trimmed.EndDate = &endBefore
	trimmed.EndTimes = 0
	class.Recurrence = &trimmed

	return &split, nil
}

// releaseSplitRoom cancels the conferencing room provisioned for a split
// whose persistence was abandoned. Best effort.
func (s *ScheduledClassService) releaseSplitRoom(ctx context.Context, split *models.ScheduledClass) {
	if split == nil || split.WebexConfig == nil || split.WebexConfig.RoomID == "" {
		return
	}
	provider, err := s.ProviderRegistry.GetProvider(split.ClassType)
	if err != nil {
		return
	}
	if err := provider.CancelRoom(ctx, split.WebexConfig.RoomID); err != nil {
		slog.WarnContext(ctx, "error cancelling conferencing room for abandoned split", logging.ErrKey, err)
	}
}

func (s *ScheduledClassService) upsertOverride(class *models.ScheduledClass, oldDate, newStart time.Time) {
	for i := range class.Overrides {
		if class.Overrides[i].OriginalStart.Equal(oldDate) {
			class.Overrides[i].NewStart = newStart
			return
		}
	}
	class.Overrides = append(class.Overrides, models.OccurrenceOverride{
		OriginalStart: oldDate,
		NewStart:      newStart,
	})
}

// linkedOnDemandTitles lists the titles of on-demand classes linked to the
// given source class.
func (s *ScheduledClassService) linkedOnDemandTitles(ctx context.Context, classUID string) ([]string, error) {
	classes, err := s.ClassRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	titles := []string{}
	for _, c := range classes {
		if c.LinkedClassUID == classUID && c.ClassType == models.ClassTypeOnDemand {
			titles = append(titles, c.Title)
		}
	}
	return titles, nil
}

// Delete applies a delete mutation. The request's resource must match the
// class type: webex-backed classes route through the webex-class resource so
// the conferencing room is cancelled alongside the series.
func (s *ScheduledClassService) Delete(ctx context.Context, req *models.DeleteRequest) error {
	if !s.ServiceReady() {
		return domain.ErrServiceUnavailable
	}
	if req == nil {
		return domain.ErrValidationFailed
	}
	if err := req.Validate(); err != nil {
		return domain.NewValidationError("invalid delete request", err)
	}

	ctx = logging.AppendCtx(ctx, slog.String("class_uid", req.ClassUID))

	class, revision, err := s.ClassRepository.GetWithRevision(ctx, req.ClassUID)
	if err != nil {
		return err
	}

	expectedResource := models.ResourceScheduledClass
	if class.ClassType == models.ClassTypeWebex {
		expectedResource = models.ResourceWebexClass
	}
	if req.Resource != expectedResource {
		return domain.NewValidationError("mutation resource does not match class type")
	}

	scope := req.Scope
	if !class.IsRecurring {
		scope = models.ScopeSingle
	}

	// Deleting a single occurrence of a non-recurring class removes the class.
	if !class.IsRecurring || scope == models.ScopeAll {
		return s.deleteSeries(ctx, class, revision)
	}

	switch scope {
	case models.ScopeAfter:
		endBefore := req.StartDate.Add(-time.Second)
		trimmed := models.Recurrence{}
		if class.Recurrence != nil {
			trimmed = *class.Recurrence
		}
		trimmed.EndType = models.RecurrenceEndDate
		trimmed.EndDate = &endBefore
		trimmed.EndTimes = 0
		class.Recurrence = &trimmed
	case models.ScopeSingle:
		if !class.IsDateDeleted(req.StartDate) {
			class.DeletedDates = append(class.DeletedDates, req.StartDate)
		}
		if err := s.deleteExceptionsForDate(ctx, class.UID, req.StartDate); err != nil {
			slog.WarnContext(ctx, "error cleaning up exceptions for deleted occurrence", logging.ErrKey, err)
		}
	}

	class.UpdatedAt = utils.TimePtr(time.Now().UTC())
	if err := s.ClassRepository.Update(ctx, class, s.writeRevision(revision)); err != nil {
		return err
	}

	if err := s.MessageBuilder.SendIndexScheduledClass(ctx, models.ActionUpdated, *class); err != nil {
		slog.ErrorContext(ctx, "error sending class index message", logging.ErrKey, err)
	}
	return nil
}

// deleteSeries removes the whole class: conferencing room, stored exceptions,
// the class record, and the index entry.
func (s *ScheduledClassService) deleteSeries(ctx context.Context, class *models.ScheduledClass, revision uint64) error {
	if class.ClassType == models.ClassTypeWebex && class.WebexConfig != nil && class.WebexConfig.RoomID != "" {
		provider, err := s.ProviderRegistry.GetProvider(class.ClassType)
		if err != nil {
			return err
		}
		if err := provider.CancelRoom(ctx, class.WebexConfig.RoomID); err != nil {
			slog.ErrorContext(ctx, "error cancelling conferencing room", logging.ErrKey, err)
			return domain.NewInternalError("failed to cancel conferencing room", err)
		}
	}

	if err := s.ClassRepository.Delete(ctx, class.UID, s.writeRevision(revision)); err != nil {
		return err
	}

	exceptions, err := s.ExceptionRepository.ListByClass(ctx, class.UID)
	if err != nil {
		slog.WarnContext(ctx, "error listing exceptions for deleted class", logging.ErrKey, err)
		exceptions = nil
	}
	if len(exceptions) > 0 {
		pool := concurrent.NewWorkerPool(5)
		deletions := make([]func() error, 0, len(exceptions))
		for _, e := range exceptions {
			deletions = append(deletions, func() error {
				return s.ExceptionRepository.Delete(ctx, e.ClassUID, e.Date, e.CommunityUID)
			})
		}
		for _, err := range pool.RunAll(ctx, deletions...) {
			slog.WarnContext(ctx, "error deleting class exception", logging.ErrKey, err)
		}
	}

	pool := concurrent.NewWorkerPool(2)
	err = pool.Run(ctx,
		func() error {
			return s.MessageBuilder.SendDeleteIndexScheduledClass(ctx, class.UID)
		},
		func() error {
			return s.MessageBuilder.SendClassDeleted(ctx, class.UID)
		},
	)
	if err != nil {
		slog.ErrorContext(ctx, "error publishing class deletion messages", logging.ErrKey, err)
	}
	return nil
}

func (s *ScheduledClassService) deleteExceptionsForDate(ctx context.Context, classUID string, date time.Time) error {
	exceptions, err := s.ExceptionRepository.ListByClassDate(ctx, classUID, date)
	if err != nil {
		return err
	}
	for _, e := range exceptions {
		if err := s.ExceptionRepository.Delete(ctx, e.ClassUID, e.Date, e.CommunityUID); err != nil {
			return err
		}
	}
	return nil
}

// Cancel applies a soft-cancel (or restore) mutation. Cancellation is a
// reversible flag flip, never a deletion.
func (s *ScheduledClassService) Cancel(ctx context.Context, req *models.CancelRequest) (*models.ScheduledClass, error) {
	if !s.ServiceReady() {
		return nil, domain.ErrServiceUnavailable
	}
	if req == nil {
		return nil, domain.ErrValidationFailed
	}
	if err := req.Validate(); err != nil {
		return nil, domain.NewValidationError("invalid cancel request", err)
	}

	ctx = logging.AppendCtx(ctx, slog.String("class_uid", req.ClassUID))

	class, revision, err := s.ClassRepository.GetWithRevision(ctx, req.ClassUID)
	if err != nil {
		return nil, err
	}

	scope := req.Scope
	if !class.IsRecurring {
		scope = models.ScopeAll
	}

	switch scope {
	case models.ScopeAll:
		class.IsCanceled = req.ShouldCancel
		if !req.ShouldCancel {
			class.CancelledDates = nil
			class.CancelledFrom = nil
		}
	case models.ScopeAfter:
		if req.ShouldCancel {
			from := req.Date
			class.CancelledFrom = &from
		} else {
			class.CancelledFrom = nil
		}
	case models.ScopeSingle:
		if req.ShouldCancel {
			if !class.IsDateCancelled(req.Date) {
				class.CancelledDates = append(class.CancelledDates, req.Date)
			}
		} else {
			dates := class.CancelledDates[:0]
			for _, d := range class.CancelledDates {
				if !d.Equal(req.Date) {
					dates = append(dates, d)
				}
			}
			class.CancelledDates = dates
		}
	}

	class.UpdatedAt = utils.TimePtr(time.Now().UTC())
	if err := s.ClassRepository.Update(ctx, class, s.writeRevision(revision)); err != nil {
		return nil, err
	}

	if err := s.MessageBuilder.SendIndexScheduledClass(ctx, models.ActionUpdated, *class); err != nil {
		slog.ErrorContext(ctx, "error sending class index message", logging.ErrKey, err)
	}
	return class, nil
}

// ToggleVisibility hides or shows one occurrence of a public class for the
// requested communities by creating or deleting visibility exceptions.
func (s *ScheduledClassService) ToggleVisibility(ctx context.Context, req *models.VisibilityToggleRequest) error {
	if !s.ServiceReady() {
		return domain.ErrServiceUnavailable
	}
	if req == nil {
		return domain.ErrValidationFailed
	}
	if err := req.Validate(); err != nil {
		return domain.NewValidationError("invalid visibility toggle request", err)
	}

	ctx = logging.AppendCtx(ctx, slog.String("class_uid", req.ClassUID))

	class, err := s.ClassRepository.Get(ctx, req.ClassUID)
	if err != nil {
		return err
	}
	if class.Visibility != models.VisibilityPublic {
		// Per-community overrides only exist for public classes.
		return domain.NewValidationError("visibility exceptions require a public class")
	}
	if req.Hide && slices.Contains(req.CommunityUIDs, class.CommunityUID) {
		return domain.NewValidationError("cannot hide a class from its own community")
	}

	for _, communityUID := range req.CommunityUIDs {
		if req.Hide {
			community, err := s.CommunityRepository.Get(ctx, communityUID)
			if err != nil {
				return err
			}
			exception := &models.VisibilityException{
				ClassUID:     req.ClassUID,
				Date:         req.Date,
				CommunityUID: community.UID,
				Community:    community.Name,
				CreatedAt:    utils.TimePtr(time.Now().UTC()),
			}
			if err := s.ExceptionRepository.Create(ctx, exception); err != nil {
				return err
			}
		} else {
			if err := s.ExceptionRepository.Delete(ctx, req.ClassUID, req.Date, communityUID); err != nil {
				return err
			}
		}
	}

	slog.DebugContext(ctx, "toggled occurrence visibility",
		"hide", req.Hide,
		"communities", len(req.CommunityUIDs),
	)
	return nil
}

// SweepOrphanedExceptions deletes visibility exceptions whose scheduled class
// no longer exists. It runs on a schedule; see cmd/scheduling-api.
func (s *ScheduledClassService) SweepOrphanedExceptions(ctx context.Context) (int, error) {
	if !s.ServiceReady() {
		return 0, domain.ErrServiceUnavailable
	}

	exceptions, err := s.ExceptionRepository.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, e := range exceptions {
		exists, err := s.ClassRepository.Exists(ctx, e.ClassUID)
		if err != nil {
			return removed, err
		}
		if exists {
			continue
		}
		if err := s.ExceptionRepository.Delete(ctx, e.ClassUID, e.Date, e.CommunityUID); err != nil {
			return removed, err
		}
		removed++
	}

	if removed > 0 {
		slog.InfoContext(ctx, "swept orphaned visibility exceptions", "removed", removed)
	}
	return removed, nil
}
