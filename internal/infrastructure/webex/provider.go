// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

// Package webex implements the Webex conferencing provider.
package webex

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/televeda/scheduling-service/internal/domain"
	"github.com/televeda/scheduling-service/internal/domain/models"
	"github.com/televeda/scheduling-service/internal/infrastructure/webex/api"
	"github.com/televeda/scheduling-service/internal/logging"
)

// Provider implements the ConferencingProvider interface for Webex-backed
// classes. A Webex class is the one class type whose start time cannot be
// changed without an authenticated call to the external platform.
type Provider struct {
	client api.ClientAPI
}

// Ensure Provider implements ConferencingProvider
var _ domain.ConferencingProvider = (*Provider)(nil)

// NewProvider creates a new Webex conferencing provider
func NewProvider(client api.ClientAPI) *Provider {
	return &Provider{
		client: client,
	}
}

// CreateRoom creates a Webex meeting for the class and returns its ID and join URL.
func (p *Provider) CreateRoom(ctx context.Context, class *models.ScheduledClass) (string, string, error) {
	request := &api.CreateMeetingRequest{
		Title:                 class.Title,
		Agenda:                class.Description,
		Start:                 formatStart(class),
		End:                   formatEnd(class),
		Timezone:              class.Timezone.Requested,
		Recurrence:            recurrenceRule(class),
		EnabledJoinBeforeHost: true,
		JoinBeforeHostMinutes: 5,
		SendEmail:             false,
	}

	resp, err := p.client.CreateMeeting(ctx, request)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create Webex meeting",
			logging.ErrKey, err, "class_uid", class.UID)
		return "", "", fmt.Errorf("failed to create Webex meeting: %w", err)
	}

	slog.InfoContext(ctx, "created Webex meeting",
		"class_uid", class.UID,
		"webex_meeting_id", resp.ID,
	)

	return resp.ID, resp.WebLink, nil
}

// UpdateRoom pushes the class's current schedule to the existing Webex meeting.
func (p *Provider) UpdateRoom(ctx context.Context, roomID string, class *models.ScheduledClass) error {
	request := &api.UpdateMeetingRequest{
		Title:      class.Title,
		Agenda:     class.Description,
		Start:      formatStart(class),
		End:        formatEnd(class),
		Timezone:   class.Timezone.Requested,
		Recurrence: recurrenceRule(class),
		SendEmail:  false,
	}

	err := p.client.UpdateMeeting(ctx, roomID, request)
	if err != nil {
		slog.ErrorContext(ctx, "failed to update Webex meeting",
			logging.ErrKey, err, "class_uid", class.UID, "webex_meeting_id", roomID)
		return fmt.Errorf("failed to update Webex meeting: %w", err)
	}

	slog.InfoContext(ctx, "updated Webex meeting",
		"class_uid", class.UID,
		"webex_meeting_id", roomID,
	)

	return nil
}

// CancelRoom deletes the Webex meeting.
func (p *Provider) CancelRoom(ctx context.Context, roomID string) error {
	err := p.client.DeleteMeeting(ctx, roomID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete Webex meeting",
			logging.ErrKey, err, "webex_meeting_id", roomID)
		return fmt.Errorf("failed to delete Webex meeting: %w", err)
	}

	slog.InfoContext(ctx, "deleted Webex meeting", "webex_meeting_id", roomID)
	return nil
}

func formatStart(class *models.ScheduledClass) string {
	return class.StartTime.In(class.Location()).Format(time.RFC3339)
}

func formatEnd(class *models.ScheduledClass) string {
	end := class.StartTime.Add(time.Duration(class.Duration) * time.Minute)
	return end.In(class.Location()).Format(time.RFC3339)
}

// recurrenceRule renders the class recurrence as the RRULE string Webex
// expects, or empty for a one-off class.
func recurrenceRule(class *models.ScheduledClass) string {
	if !class.IsRecurring || class.Recurrence == nil {
		return ""
	}
	rule, err := class.Recurrence.ToRRule(class.StartTime)
	if err != nil {
		return ""
	}
	return rule.String()
}
