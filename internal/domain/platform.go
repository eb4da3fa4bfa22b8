// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/televeda/scheduling-service/internal/domain/models"
)

// ConferencingProvider defines the interface for external video-conferencing
// integrations. A class backed by a provider cannot be silently drag-edited:
// every start-time change needs an explicit authenticated mutation against the
// provider's API.
type ConferencingProvider interface {
	// CreateRoom creates a conferencing room for the class on the external
	// platform. Returns the platform-specific room ID and join URL.
	CreateRoom(ctx context.Context, class *models.ScheduledClass) (roomID string, joinURL string, err error)

	// UpdateRoom updates an existing room on the external platform, e.g. after
	// a reschedule.
	UpdateRoom(ctx context.Context, roomID string, class *models.ScheduledClass) error

	// CancelRoom deletes the room and deauthorizes it on the external platform.
	CancelRoom(ctx context.Context, roomID string) error
}

// ProviderRegistry manages conferencing providers by class type.
type ProviderRegistry interface {
	// GetProvider returns the conferencing provider for the given class type.
	GetProvider(classType models.ClassType) (ConferencingProvider, error)

	// RegisterProvider registers a conferencing provider for a class type.
	RegisterProvider(classType models.ClassType, provider ConferencingProvider)
}
