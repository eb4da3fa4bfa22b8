// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package models

import (
	"fmt"
	"time"
)

// AlterationScope describes how a delete/cancel/reschedule mutation propagates
// across a recurring series: just the targeted occurrence, the targeted
// occurrence and all later ones, or the entire series.
//
// The scope is only meaningful for recurring classes. For a non-recurring
// class the scope is always ScopeSingle.
type AlterationScope string

const (
	ScopeSingle AlterationScope = "single"
	ScopeAfter  AlterationScope = "after"
	ScopeAll    AlterationScope = "all"
)

// IsValid checks whether the scope is one of the supported values.
func (s AlterationScope) IsValid() bool {
	switch s {
	case ScopeSingle, ScopeAfter, ScopeAll:
		return true
	}
	return false
}

// Mutation resource targets. Webex-backed classes route through a distinct
// resource because their deletion must also cancel the external conferencing
// room.
const (
	ResourceScheduledClass = "scheduled-class"
	ResourceWebexClass     = "webex-class"
)

// MutationRequest is the interface implemented by every tagged mutation
// variant. Validation happens before dispatch; an invalid request is never
// sent to the store or the conferencing provider.
type MutationRequest interface {
	Validate() error
	mutationRequest()
}

// RescheduleRequest moves an occurrence (or series, per Scope) to a new start
// time. OldDate is the anchor the server uses to identify which occurrence in
// a recurring series is being altered, since series are not materialized
// beyond their rule.
type RescheduleRequest struct {
	ClassUID string          `json:"class_uid"`
	Scope    AlterationScope `json:"type"`
	OldDate  time.Time       `json:"old_date"`
	NewStart time.Time       `json:"edit_to"`
	Timezone TimezonePair    `json:"timezone"`
}

func (r *RescheduleRequest) mutationRequest() {}

func (r *RescheduleRequest) Validate() error {
	if r.ClassUID == "" {
		return fmt.Errorf("class UID is required")
	}
	if !r.Scope.IsValid() {
		return fmt.Errorf("invalid alteration scope %q", r.Scope)
	}
	if r.OldDate.IsZero() {
		return fmt.Errorf("old date is required")
	}
	if r.NewStart.IsZero() {
		return fmt.Errorf("new start time is required")
	}
	if r.Timezone.Current == "" {
		return fmt.Errorf("current timezone is required")
	}
	return nil
}

// DeleteRequest removes an occurrence (or series, per Scope) permanently.
type DeleteRequest struct {
	ClassUID     string          `json:"class_uid"`
	Resource     string          `json:"-"` // scheduled-class or webex-class
	Scope        AlterationScope `json:"type"`
	StartDate    time.Time       `json:"start_date"` // targeted occurrence start
	CurrentDate  time.Time       `json:"current_date"`
	Title        string          `json:"title"`
	CommunityUID string          `json:"community_uid"`
}

func (r *DeleteRequest) mutationRequest() {}

func (r *DeleteRequest) Validate() error {
	if r.ClassUID == "" {
		return fmt.Errorf("class UID is required")
	}
	if r.Resource != ResourceScheduledClass && r.Resource != ResourceWebexClass {
		return fmt.Errorf("invalid mutation resource %q", r.Resource)
	}
	if !r.Scope.IsValid() {
		return fmt.Errorf("invalid alteration scope %q", r.Scope)
	}
	if r.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	return nil
}

// CancelRequest soft-cancels (or restores) an occurrence or series. Unlike
// deletion this is a reversible flag flip.
type CancelRequest struct {
	ClassUID     string          `json:"class_uid"`
	Scope        AlterationScope `json:"type"`
	Title        string          `json:"title"`
	Date         time.Time       `json:"date"` // targeted occurrence start
	CurrentDate  time.Time       `json:"current_date"`
	ShouldCancel bool            `json:"should_cancel"`
}

func (r *CancelRequest) mutationRequest() {}

func (r *CancelRequest) Validate() error {
	if r.ClassUID == "" {
		return fmt.Errorf("class UID is required")
	}
	if !r.Scope.IsValid() {
		return fmt.Errorf("invalid alteration scope %q", r.Scope)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}

// VisibilityToggleRequest hides or shows one occurrence of a public class for
// a set of communities by creating or deleting visibility exceptions.
type VisibilityToggleRequest struct {
	ClassUID      string    `json:"class_uid"`
	Date          time.Time `json:"date"` // targeted occurrence start
	CommunityUIDs []string  `json:"community_ids"`
	Hide          bool      `json:"-"` // true: remove-from-calendar, false: show-to-calendar
}

func (r *VisibilityToggleRequest) mutationRequest() {}

func (r *VisibilityToggleRequest) Validate() error {
	if r.ClassUID == "" {
		return fmt.Errorf("class UID is required")
	}
	if r.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if len(r.CommunityUIDs) == 0 {
		return fmt.Errorf("at least one community is required")
	}
	return nil
}

// Compile-time checks that every variant implements MutationRequest.
var (
	_ MutationRequest = (*RescheduleRequest)(nil)
	_ MutationRequest = (*DeleteRequest)(nil)
	_ MutationRequest = (*CancelRequest)(nil)
	_ MutationRequest = (*VisibilityToggleRequest)(nil)
)
