// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/televeda/scheduling-service/internal/domain/models"
)

// MockScheduledClassRepository implements ScheduledClassRepository for testing
type MockScheduledClassRepository struct {
	mock.Mock
}

func (m *MockScheduledClassRepository) Create(ctx context.Context, class *models.ScheduledClass) error {
	args := m.Called(ctx, class)
	return args.Error(0)
}

func (m *MockScheduledClassRepository) Exists(ctx context.Context, classUID string) (bool, error) {
	args := m.Called(ctx, classUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockScheduledClassRepository) Get(ctx context.Context, classUID string) (*models.ScheduledClass, error) {
	args := m.Called(ctx, classUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduledClass), args.Error(1)
}

func (m *MockScheduledClassRepository) GetWithRevision(ctx context.Context, classUID string) (*models.ScheduledClass, uint64, error) {
	args := m.Called(ctx, classUID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(uint64), args.Error(2)
	}
	return args.Get(0).(*models.ScheduledClass), args.Get(1).(uint64), args.Error(2)
}

func (m *MockScheduledClassRepository) Update(ctx context.Context, class *models.ScheduledClass, revision uint64) error {
	args := m.Called(ctx, class, revision)
	return args.Error(0)
}

func (m *MockScheduledClassRepository) Delete(ctx context.Context, classUID string, revision uint64) error {
	args := m.Called(ctx, classUID, revision)
	return args.Error(0)
}

func (m *MockScheduledClassRepository) ListAll(ctx context.Context) ([]*models.ScheduledClass, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ScheduledClass), args.Error(1)
}

func (m *MockScheduledClassRepository) ListByCommunity(ctx context.Context, communityUID string) ([]*models.ScheduledClass, error) {
	args := m.Called(ctx, communityUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ScheduledClass), args.Error(1)
}
