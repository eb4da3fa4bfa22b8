// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package constants

// Scheduled class time constraints
const (
	// MaxClassDurationMinutes is the maximum duration of a scheduled class in minutes
	MaxClassDurationMinutes = 600

	// DefaultUndoTimeoutSeconds is the default undo window for destructive bulk actions
	DefaultUndoTimeoutSeconds = 5
)
