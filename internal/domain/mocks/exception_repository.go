// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/televeda/scheduling-service/internal/domain/models"
)

// MockExceptionRepository implements ExceptionRepository for testing
type MockExceptionRepository struct {
	mock.Mock
}

func (m *MockExceptionRepository) Create(ctx context.Context, exception *models.VisibilityException) error {
	args := m.Called(ctx, exception)
	return args.Error(0)
}

func (m *MockExceptionRepository) Delete(ctx context.Context, classUID string, date time.Time, communityUID string) error {
	args := m.Called(ctx, classUID, date, communityUID)
	return args.Error(0)
}

func (m *MockExceptionRepository) ListByClassDate(ctx context.Context, classUID string, date time.Time) ([]*models.VisibilityException, error) {
	args := m.Called(ctx, classUID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.VisibilityException), args.Error(1)
}

func (m *MockExceptionRepository) ListByClass(ctx context.Context, classUID string) ([]*models.VisibilityException, error) {
	args := m.Called(ctx, classUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.VisibilityException), args.Error(1)
}

func (m *MockExceptionRepository) ListAll(ctx context.Context) ([]*models.VisibilityException, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.VisibilityException), args.Error(1)
}
