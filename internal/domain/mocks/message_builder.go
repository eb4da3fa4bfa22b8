// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/televeda/scheduling-service/internal/domain/models"
)

// MockMessageBuilder implements MessageBuilder for testing
type MockMessageBuilder struct {
	mock.Mock
}

func (m *MockMessageBuilder) SendIndexScheduledClass(ctx context.Context, action models.MessageAction, data models.ScheduledClass) error {
	args := m.Called(ctx, action, data)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendDeleteIndexScheduledClass(ctx context.Context, classUID string) error {
	args := m.Called(ctx, classUID)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendClassDeleted(ctx context.Context, classUID string) error {
	args := m.Called(ctx, classUID)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendClassRescheduled(ctx context.Context, data models.ClassRescheduledMessage) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}
