// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

// Package platform manages conferencing provider registration by class type.
package platform

import (
	"fmt"
	"sync"

	"github.com/televeda/scheduling-service/internal/domain"
	"github.com/televeda/scheduling-service/internal/domain/models"
)

// Registry implements the ProviderRegistry interface
type Registry struct {
	providers map[models.ClassType]domain.ConferencingProvider
	mu        sync.RWMutex
}

// NewRegistry creates a new conferencing provider registry
func NewRegistry() domain.ProviderRegistry {
	return &Registry{
		providers: make(map[models.ClassType]domain.ConferencingProvider),
	}
}

// GetProvider returns the conferencing provider for the specified class type
func (r *Registry) GetProvider(classType models.ClassType) (domain.ConferencingProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[classType]
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.NewNotFoundError("conferencing provider not found"), classType)
	}

	return provider, nil
}

// RegisterProvider registers a conferencing provider for a class type
func (r *Registry) RegisterProvider(classType models.ClassType, provider domain.ConferencingProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[classType] = provider
}
