// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

// Package service contains the domain logic of the scheduling service: the
// occurrence materializer, the visibility/exception resolver, the occurrence
// alteration resolver, the undoable action registry, and the scheduled class
// service orchestrating them against the store.
package service

type Service interface {
	ServiceReady() bool
}

// ServiceConfig is the configuration for the Services.
type ServiceConfig struct {
	// SkipRevisionValidation skips optimistic-concurrency revision checks -
	// only meant for local development.
	SkipRevisionValidation bool
	// MaterializationLimit caps how many occurrences a single window query may
	// expand a recurring series into.
	MaterializationLimit int
}

// DefaultMaterializationLimit bounds open-ended recurrences.
const DefaultMaterializationLimit = 200
