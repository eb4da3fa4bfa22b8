// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package models

import "time"

// VisibilityException suppresses a single occurrence of a public scheduled
// class for one community. The exception is keyed by
// (class UID, occurrence date, community UID); occurrences themselves are
// never persisted, so the exception list is the only per-occurrence state the
// store carries.
//
// Exceptions are only meaningful for classes with VisibilityPublic: a
// community-only or hidden class has no network visibility to carve out of.
type VisibilityException struct {
	ClassUID     string     `json:"class_uid"`
	Date         time.Time  `json:"date"` // occurrence start this exception applies to
	CommunityUID string     `json:"community_uid"`
	Community    string     `json:"community_name,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// Ref returns the community reference embedded in the exception.
func (e *VisibilityException) Ref() CommunityRef {
	if e == nil {
		return CommunityRef{}
	}
	return CommunityRef{UID: e.CommunityUID, Name: e.Community}
}
