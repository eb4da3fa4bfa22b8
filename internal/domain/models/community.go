// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package models

import "time"

// Community is the key-value store representation of a community.
type Community struct {
	UID         string     `json:"uid"`
	Name        string     `json:"name"`
	Timezone    string     `json:"timezone,omitempty"`
	ManagerUIDs []string   `json:"manager_uids,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ManagedBy reports whether the given user administers this community.
func (c *Community) ManagedBy(userUID string) bool {
	if c == nil {
		return false
	}
	for _, uid := range c.ManagerUIDs {
		if uid == userUID {
			return true
		}
	}
	return false
}

// CommunityRef is a lightweight reference to a community, embedded in
// occurrences and exception records so that callers do not need a second
// lookup to render a community name.
type CommunityRef struct {
	UID  string `json:"uid"`
	Name string `json:"name,omitempty"`
}
