// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package webex

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/televeda/scheduling-service/internal/infrastructure/webex/api"
)

// MockClientAPI implements api.ClientAPI for testing
type MockClientAPI struct {
	mock.Mock
}

func (m *MockClientAPI) CreateMeeting(ctx context.Context, request *api.CreateMeetingRequest) (*api.MeetingResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.MeetingResponse), args.Error(1)
}

func (m *MockClientAPI) UpdateMeeting(ctx context.Context, meetingID string, request *api.UpdateMeetingRequest) error {
	args := m.Called(ctx, meetingID, request)
	return args.Error(0)
}

func (m *MockClientAPI) DeleteMeeting(ctx context.Context, meetingID string) error {
	args := m.Called(ctx, meetingID)
	return args.Error(0)
}
