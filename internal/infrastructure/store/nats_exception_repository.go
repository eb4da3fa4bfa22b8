// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"time"

	"github.com/televeda/scheduling-service/internal/domain"
	"github.com/televeda/scheduling-service/internal/domain/models"
)

var _ domain.ExceptionRepository = (*NatsExceptionRepository)(nil)

// NatsExceptionRepository is the NATS KV store repository for visibility
// exceptions. Exception keys embed the class UID, occurrence date and
// community UID, so lookups by occurrence are key-pattern scans rather than
// secondary indexes.
type NatsExceptionRepository struct {
	*NatsBaseRepository[models.VisibilityException]
	keyBuilder *KeyBuilder
}

// NewNatsExceptionRepository creates a new NATS KV store repository for visibility exceptions.
func NewNatsExceptionRepository(kvStore INatsKeyValue) *NatsExceptionRepository {
	return &NatsExceptionRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.VisibilityException](kvStore, "visibility exception"),
		keyBuilder:         NewKeyBuilder(""),
	}
}

func (r *NatsExceptionRepository) Create(ctx context.Context, exception *models.VisibilityException) error {
	key := r.keyBuilder.ExceptionKey(exception.ClassUID, exception.Date, exception.CommunityUID)
	return r.NatsBaseRepository.Create(ctx, key, exception)
}

// Delete removes one exception. Exceptions are toggled, not versioned, so no
// revision check applies.
func (r *NatsExceptionRepository) Delete(ctx context.Context, classUID string, date time.Time, communityUID string) error {
	key := r.keyBuilder.ExceptionKey(classUID, date, communityUID)
	return r.DeleteWithoutRevision(ctx, key)
}

// ListByClassDate returns the exceptions for one occurrence of a class, one
// per excepted community.
func (r *NatsExceptionRepository) ListByClassDate(ctx context.Context, classUID string, date time.Time) ([]*models.VisibilityException, error) {
	pattern := r.keyBuilder.ExceptionClassDatePattern(classUID, date)
	return r.ListEntitiesEncoded(ctx, pattern, r.keyBuilder)
}

// ListByClass returns every exception recorded for a class across all
// occurrence dates.
func (r *NatsExceptionRepository) ListByClass(ctx context.Context, classUID string) ([]*models.VisibilityException, error) {
	pattern := r.keyBuilder.ExceptionClassPattern(classUID)
	return r.ListEntitiesEncoded(ctx, pattern, r.keyBuilder)
}

func (r *NatsExceptionRepository) ListAll(ctx context.Context) ([]*models.VisibilityException, error) {
	return r.ListEntitiesEncoded(ctx, "", r.keyBuilder)
}
