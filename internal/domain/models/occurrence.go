// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package models

import "time"

// Calendar colors for materialized occurrences.
const (
	// OccurrenceColorDefault is the base color of a calendar occurrence.
	OccurrenceColorDefault = "#3788D8"
	// OccurrenceColorCancelled is the color of a cancelled occurrence.
	OccurrenceColorCancelled = "gray"
	// OccurrenceColorInaccessible marks an occurrence that is visible on the
	// calendar but cannot be opened by the viewing user (e.g. host-only).
	// It takes precedence over the cancelled color.
	OccurrenceColorInaccessible = "#660404"
)

// Occurrence is one concrete calendar-displayable instance of a (possibly
// recurring) scheduled class. Occurrences are ephemeral: they are derived from
// the class definition on every materialization and never persisted.
//
// The ID is synthetic and regenerated per materialization. Callers must
// compare occurrences by ScheduledClassUID and Start, never by ID.
type Occurrence struct {
	ID                   string         `json:"id"`
	ScheduledClassUID    string         `json:"scheduled_class_uid,omitempty"`
	Title                string         `json:"title,omitempty"`
	ClassType            ClassType      `json:"class_type,omitempty"`
	Start                time.Time      `json:"start"`
	End                  time.Time      `json:"end"`
	BackgroundColor      string         `json:"background_color,omitempty"`
	Editable             bool           `json:"editable"`
	IsCancelled          bool           `json:"is_cancelled"`
	IsHidden             bool           `json:"is_hidden"`
	IsBackground         bool           `json:"is_background,omitempty"`
	ExceptionCommunities []CommunityRef `json:"exception_communities,omitempty"`
}

// IsReal reports whether the occurrence is backed by a scheduled class, as
// opposed to the synthetic now-marker appended for calendar rendering.
// Business logic iterating occurrences must skip non-real ones.
func (o *Occurrence) IsReal() bool {
	return o != nil && !o.IsBackground && o.ScheduledClassUID != ""
}
