// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/televeda/scheduling-service/internal/domain/models"
)

// MockCommunityRepository implements CommunityRepository for testing
type MockCommunityRepository struct {
	mock.Mock
}

func (m *MockCommunityRepository) Get(ctx context.Context, communityUID string) (*models.Community, error) {
	args := m.Called(ctx, communityUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Community), args.Error(1)
}

func (m *MockCommunityRepository) ListAll(ctx context.Context) ([]*models.Community, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Community), args.Error(1)
}

func (m *MockCommunityRepository) ListManagedBy(ctx context.Context, userUID string) ([]*models.Community, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Community), args.Error(1)
}
