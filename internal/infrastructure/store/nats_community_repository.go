// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/televeda/scheduling-service/internal/domain"
	"github.com/televeda/scheduling-service/internal/domain/models"
)

var _ domain.CommunityRepository = (*NatsCommunityRepository)(nil)

// NatsCommunityRepository is the NATS KV store repository for communities.
// The communities bucket is a read replica maintained by the community
// service; this repository never writes to it.
type NatsCommunityRepository struct {
	*NatsBaseRepository[models.Community]
}

// NewNatsCommunityRepository creates a new NATS KV store repository for communities.
func NewNatsCommunityRepository(kvStore INatsKeyValue) *NatsCommunityRepository {
	return &NatsCommunityRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Community](kvStore, "community"),
	}
}

func (r *NatsCommunityRepository) ListAll(ctx context.Context) ([]*models.Community, error) {
	return r.ListEntities(ctx, "")
}

// ListManagedBy returns the communities a user manages.
func (r *NatsCommunityRepository) ListManagedBy(ctx context.Context, userUID string) ([]*models.Community, error) {
	communities, err := r.ListEntities(ctx, "")
	if err != nil {
		return nil, err
	}

	var managed []*models.Community
	for _, community := range communities {
		if community.ManagedBy(userUID) {
			managed = append(managed, community)
		}
	}
	return managed, nil
}
