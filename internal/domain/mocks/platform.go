// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/televeda/scheduling-service/internal/domain"
	"github.com/televeda/scheduling-service/internal/domain/models"
)

// MockConferencingProvider implements ConferencingProvider for testing
type MockConferencingProvider struct {
	mock.Mock
}

func (m *MockConferencingProvider) CreateRoom(ctx context.Context, class *models.ScheduledClass) (string, string, error) {
	args := m.Called(ctx, class)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockConferencingProvider) UpdateRoom(ctx context.Context, roomID string, class *models.ScheduledClass) error {
	args := m.Called(ctx, roomID, class)
	return args.Error(0)
}

func (m *MockConferencingProvider) CancelRoom(ctx context.Context, roomID string) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

// MockProviderRegistry implements ProviderRegistry for testing
type MockProviderRegistry struct {
	mock.Mock
}

func (m *MockProviderRegistry) GetProvider(classType models.ClassType) (domain.ConferencingProvider, error) {
	args := m.Called(classType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.ConferencingProvider), args.Error(1)
}

func (m *MockProviderRegistry) RegisterProvider(classType models.ClassType, provider domain.ConferencingProvider) {
	m.Called(classType, provider)
}
