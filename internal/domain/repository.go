// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"
	"time"

	"github.com/televeda/scheduling-service/internal/domain/models"
)

// ScheduledClassRepository defines the interface for scheduled class storage
// operations. This interface can be implemented by different storage backends
// (NATS KV, PostgreSQL, etc.)
type ScheduledClassRepository interface {
	Create(ctx context.Context, class *models.ScheduledClass) error
	Exists(ctx context.Context, classUID string) (bool, error)
	Get(ctx context.Context, classUID string) (*models.ScheduledClass, error)
	GetWithRevision(ctx context.Context, classUID string) (*models.ScheduledClass, uint64, error)
	Update(ctx context.Context, class *models.ScheduledClass, revision uint64) error
	Delete(ctx context.Context, classUID string, revision uint64) error
	ListAll(ctx context.Context) ([]*models.ScheduledClass, error)
	ListByCommunity(ctx context.Context, communityUID string) ([]*models.ScheduledClass, error)
}

// ExceptionRepository defines the interface for visibility exception storage
// operations. Exceptions are keyed by (class UID, occurrence date, community UID).
type ExceptionRepository interface {
	Create(ctx context.Context, exception *models.VisibilityException) error
	Delete(ctx context.Context, classUID string, date time.Time, communityUID string) error
	ListByClassDate(ctx context.Context, classUID string, date time.Time) ([]*models.VisibilityException, error)
	ListByClass(ctx context.Context, classUID string) ([]*models.VisibilityException, error)
	ListAll(ctx context.Context) ([]*models.VisibilityException, error)
}

// CommunityRepository defines the interface for community storage operations.
type CommunityRepository interface {
	Get(ctx context.Context, communityUID string) (*models.Community, error)
	ListAll(ctx context.Context) ([]*models.Community, error)
	ListManagedBy(ctx context.Context, userUID string) ([]*models.Community, error)
}
