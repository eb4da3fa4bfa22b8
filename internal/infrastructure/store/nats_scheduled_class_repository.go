// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/televeda/scheduling-service/internal/domain"
	"github.com/televeda/scheduling-service/internal/domain/models"
)

var _ domain.ScheduledClassRepository = (*NatsScheduledClassRepository)(nil)

// NatsScheduledClassRepository is the NATS KV store repository for scheduled
// classes. Classes are keyed directly by their UID.
type NatsScheduledClassRepository struct {
	*NatsBaseRepository[models.ScheduledClass]
}

// NewNatsScheduledClassRepository creates a new NATS KV store repository for scheduled classes.
func NewNatsScheduledClassRepository(kvStore INatsKeyValue) *NatsScheduledClassRepository {
	return &NatsScheduledClassRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.ScheduledClass](kvStore, "scheduled class"),
	}
}

func (r *NatsScheduledClassRepository) Create(ctx context.Context, class *models.ScheduledClass) error {
	return r.NatsBaseRepository.Create(ctx, class.UID, class)
}

func (r *NatsScheduledClassRepository) Update(ctx context.Context, class *models.ScheduledClass, revision uint64) error {
	return r.NatsBaseRepository.Update(ctx, class.UID, class, revision)
}

func (r *NatsScheduledClassRepository) ListAll(ctx context.Context) ([]*models.ScheduledClass, error) {
	return r.ListEntities(ctx, "")
}

// ListByCommunity returns every class owned by the given community. Classes
// are not indexed by community, so this scans the bucket; bucket sizes are
// bounded by the number of live class definitions, not occurrences.
func (r *NatsScheduledClassRepository) ListByCommunity(ctx context.Context, communityUID string) ([]*models.ScheduledClass, error) {
	classes, err := r.ListEntities(ctx, "")
	if err != nil {
		return nil, err
	}

	var owned []*models.ScheduledClass
	for _, class := range classes {
		if class.CommunityUID == communityUID {
			owned = append(owned, class)
		}
	}
	return owned, nil
}
