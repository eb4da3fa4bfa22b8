// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

// Package utils provides small shared helpers.
package utils

import "time"

// TimePtr converts a time.Time to a pointer to a time.Time.
func TimePtr(t time.Time) *time.Time {
	return &t
}

// TimeValue safely dereferences a time.Time pointer, returning zero time if nil.
func TimeValue(t *time.Time) time.Time {
	if t != nil {
		return *t
	}
	return time.Time{}
}
