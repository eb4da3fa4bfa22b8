// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package domain

import (
	"time"

	"github.com/televeda/scheduling-service/internal/domain/models"
)

// Materializer defines the interface for converting scheduled class
// definitions into concrete calendar occurrences.
type Materializer interface {
	// Materialize converts a class definition into the occurrence anchored at
	// the definition's start time, with computed color and editability.
	Materialize(class *models.ScheduledClass) models.Occurrence

	// MaterializeWindow expands a (possibly recurring) class definition into
	// all occurrences falling inside [from, to), up to limit. Deleted
	// occurrence dates are skipped; overrides and per-date cancellations are
	// applied.
	MaterializeWindow(class *models.ScheduledClass, from, to time.Time, limit int) []models.Occurrence

	// NowMarker builds the synthetic background occurrence shading the
	// calendar up to the current instant. It carries no class UID and must be
	// excluded from business logic.
	NowMarker(now time.Time) models.Occurrence
}
