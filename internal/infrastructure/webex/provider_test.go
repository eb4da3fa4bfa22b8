// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package webex

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/televeda/scheduling-service/internal/domain/models"
	"github.com/televeda/scheduling-service/internal/infrastructure/webex/api"
)

func newWebexClass() *models.ScheduledClass {
	return &models.ScheduledClass{
		UID:         "class-1",
		Title:       "Tai Chi",
		Description: "Gentle movement",
		ClassType:   models.ClassTypeWebex,
		StartTime:   time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC),
		Duration:    45,
		Timezone:    models.TimezonePair{Requested: "UTC", Current: "UTC"},
	}
}

func TestProviderCreateRoom(t *testing.T) {
	client := &MockClientAPI{}
	provider := NewProvider(client)

	client.On("CreateMeeting", mock.Anything, mock.MatchedBy(func(req *api.CreateMeetingRequest) bool {
		return req.Title == "Tai Chi" &&
			req.Start == "2025-03-10T15:00:00Z" &&
			req.End == "2025-03-10T15:45:00Z" &&
			req.Recurrence == ""
	})).Return(&api.MeetingResponse{
		ID:      "webex-123",
		WebLink: "https://example.webex.com/join/webex-123",
	}, nil)

	roomID, joinURL, err := provider.CreateRoom(context.Background(), newWebexClass())
	require.NoError(t, err)
	assert.Equal(t, "webex-123", roomID)
	assert.Equal(t, "https://example.webex.com/join/webex-123", joinURL)
	client.AssertExpectations(t)
}

func TestProviderCreateRoomRecurring(t *testing.T) {
	client := &MockClientAPI{}
	provider := NewProvider(client)

	class := newWebexClass()
	class.IsRecurring = true
	class.Recurrence = &models.Recurrence{
		RepeatEvery: 1,
		RepeatUnit:  models.RepeatUnitWeek,
		EndType:     models.RecurrenceEndCount,
		EndTimes:    10,
	}

	client.On("CreateMeeting", mock.Anything, mock.MatchedBy(func(req *api.CreateMeetingRequest) bool {
		return req.Recurrence != ""
	})).Return(&api.MeetingResponse{ID: "webex-123"}, nil)

	_, _, err := provider.CreateRoom(context.Background(), class)
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestProviderCreateRoomError(t *testing.T) {
	client := &MockClientAPI{}
	provider := NewProvider(client)

	client.On("CreateMeeting", mock.Anything, mock.Anything).Return(nil, errors.New("webex unavailable"))

	_, _, err := provider.CreateRoom(context.Background(), newWebexClass())
	require.Error(t, err)
}

func TestProviderUpdateRoom(t *testing.T) {
	client := &MockClientAPI{}
	provider := NewProvider(client)

	class := newWebexClass()
	class.StartTime = time.Date(2025, 3, 11, 16, 0, 0, 0, time.UTC)

	client.On("UpdateMeeting", mock.Anything, "webex-123", mock.MatchedBy(func(req *api.UpdateMeetingRequest) bool {
		return req.Start == "2025-03-11T16:00:00Z"
	})).Return(nil)

	require.NoError(t, provider.UpdateRoom(context.Background(), "webex-123", class))
	client.AssertExpectations(t)
}

func TestProviderCancelRoom(t *testing.T) {
	client := &MockClientAPI{}
	provider := NewProvider(client)

	client.On("DeleteMeeting", mock.Anything, "webex-123").Return(nil)

	require.NoError(t, provider.CancelRoom(context.Background(), "webex-123"))
	client.AssertExpectations(t)
}

func TestProviderCancelRoomError(t *testing.T) {
	client := &MockClientAPI{}
	provider := NewProvider(client)

	client.On("DeleteMeeting", mock.Anything, "webex-123").Return(errors.New("not found"))

	require.Error(t, provider.CancelRoom(context.Background(), "webex-123"))
}
