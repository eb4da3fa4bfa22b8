// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package models

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// ClassType is the delivery mechanism of a scheduled class.
type ClassType string

const (
	ClassTypeLocal    ClassType = "local"
	ClassTypeExternal ClassType = "external"
	ClassTypeEmbedded ClassType = "embedded"
	ClassTypeOnDemand ClassType = "on-demand"
	ClassTypeBingo    ClassType = "bingo"
	ClassTypeInPerson ClassType = "in-person"
	ClassTypeWebex    ClassType = "webex"
	ClassTypeVTC      ClassType = "vtc"
)

// IsValid checks whether the class type is one of the supported values.
func (t ClassType) IsValid() bool {
	switch t {
	case ClassTypeLocal, ClassTypeExternal, ClassTypeEmbedded, ClassTypeOnDemand,
		ClassTypeBingo, ClassTypeInPerson, ClassTypeWebex, ClassTypeVTC:
		return true
	}
	return false
}

// VisibilityType controls which communities see a scheduled class by default.
type VisibilityType string

const (
	// VisibilityPublic means the class is visible to every community in the
	// network, subject to per-occurrence visibility exceptions.
	VisibilityPublic VisibilityType = "public"
	// VisibilityCommunity means the class is visible only to its owning community.
	VisibilityCommunity VisibilityType = "community"
	// VisibilityHidden means the class is not shown on any public calendar.
	VisibilityHidden VisibilityType = "hidden"
)

// RepeatUnit is the unit of a recurrence period.
type RepeatUnit string

const (
	RepeatUnitDay   RepeatUnit = "day"
	RepeatUnitWeek  RepeatUnit = "week"
	RepeatUnitMonth RepeatUnit = "month"
)

// RecurrenceEndType describes how a recurring series terminates.
type RecurrenceEndType string

const (
	RecurrenceEndNever RecurrenceEndType = "never"
	RecurrenceEndDate  RecurrenceEndType = "date"
	RecurrenceEndCount RecurrenceEndType = "count"
)

// Recurrence is the recurrence descriptor of a scheduled class.
type Recurrence struct {
	RepeatEvery int               `json:"repeat_every"`
	RepeatUnit  RepeatUnit        `json:"repeat_unit"`
	EndType     RecurrenceEndType `json:"end_type"`
	EndDate     *time.Time        `json:"end_date,omitempty"`
	EndTimes    int               `json:"end_times,omitempty"`
}

// ToRRule converts the recurrence descriptor into an RRULE anchored at dtstart.
func (r *Recurrence) ToRRule(dtstart time.Time) (*rrule.RRule, error) {
	if r == nil {
		return nil, fmt.Errorf("recurrence is nil")
	}

	interval := r.RepeatEvery
	if interval <= 0 {
		interval = 1
	}

	var freq rrule.Frequency
	switch r.RepeatUnit {
	case RepeatUnitDay:
		freq = rrule.DAILY
	case RepeatUnitWeek:
		freq = rrule.WEEKLY
	case RepeatUnitMonth:
		freq = rrule.MONTHLY
	default:
		return nil, fmt.Errorf("unsupported repeat unit %q", r.RepeatUnit)
	}

	opts := rrule.ROption{
		Freq:     freq,
		Interval: interval,
		Dtstart:  dtstart,
	}

	switch r.EndType {
	case RecurrenceEndDate:
		if r.EndDate == nil {
			return nil, fmt.Errorf("recurrence end type is %q but end date is not set", RecurrenceEndDate)
		}
		opts.Until = *r.EndDate
	case RecurrenceEndCount:
		if r.EndTimes <= 0 {
			return nil, fmt.Errorf("recurrence end type is %q but end times is not positive", RecurrenceEndCount)
		}
		opts.Count = r.EndTimes
	case RecurrenceEndNever, "":
		// open-ended series
	default:
		return nil, fmt.Errorf("unsupported recurrence end type %q", r.EndType)
	}

	return rrule.NewRRule(opts)
}

// TimezonePair carries the timezone the class was scheduled in alongside the
// timezone of the client performing a mutation, so that a recurrence rule can
// be re-anchored correctly regardless of the caller's local timezone.
type TimezonePair struct {
	Requested string `json:"requested"`
	Current   string `json:"current"`
}

// OccurrenceOverride moves a single occurrence of a recurring series to a new
// start time without altering the rest of the series.
type OccurrenceOverride struct {
	OriginalStart time.Time `json:"original_start"`
	NewStart      time.Time `json:"new_start"`
}

// ScheduledClass is the key-value store representation of a scheduled class.
type ScheduledClass struct {
	UID            string               `json:"uid"`
	Title          string               `json:"title"`
	Description    string               `json:"description,omitempty"`
	CommunityUID   string               `json:"community_uid"`
	ClassType      ClassType            `json:"class_type"`
	StartTime      time.Time            `json:"start_time"`
	Duration       int                  `json:"duration"` // minutes
	Timezone       TimezonePair         `json:"timezone"`
	IsRecurring    bool                 `json:"is_recurring"`
	Recurrence     *Recurrence          `json:"recurrence,omitempty"`
	IsCanceled     bool                 `json:"is_canceled"`
	IsAccessible   bool                 `json:"is_accessible"`
	Visibility     VisibilityType       `json:"visibility"`
	PublicSlug     string               `json:"public_slug,omitempty"`
	HostUID        string               `json:"host_uid,omitempty"`
	LinkedClassUID string               `json:"linked_class_uid,omitempty"` // source class for on-demand recordings
	WebexConfig    *WebexConfig         `json:"webex_config,omitempty"`
	Overrides      []OccurrenceOverride `json:"overrides,omitempty"`
	CancelledDates []time.Time          `json:"cancelled_dates,omitempty"`
	CancelledFrom  *time.Time           `json:"cancelled_from,omitempty"` // cancels this date and all later occurrences
	DeletedDates   []time.Time          `json:"deleted_dates,omitempty"`
	CreatedAt      *time.Time           `json:"created_at,omitempty"`
	UpdatedAt      *time.Time           `json:"updated_at,omitempty"`
}

// WebexConfig is the Webex-specific configuration for a scheduled class.
type WebexConfig struct {
	RoomID  string `json:"room_id,omitempty"`
	JoinURL string `json:"join_url,omitempty"`
	HostKey string `json:"host_key,omitempty"`
}

// Location loads the timezone the class was scheduled in, falling back to UTC.
func (c *ScheduledClass) Location() *time.Location {
	if c == nil || c.Timezone.Requested == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone.Requested)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsDateDeleted reports whether a single occurrence date has been removed from
// the series.
func (c *ScheduledClass) IsDateDeleted(date time.Time) bool {
	for _, d := range c.DeletedDates {
		if d.Equal(date) {
			return true
		}
	}
	return false
}

// IsDateCancelled reports whether a single occurrence date has been soft-cancelled,
// either individually or by a cancel with the After scope.
func (c *ScheduledClass) IsDateCancelled(date time.Time) bool {
	if c.CancelledFrom != nil && !date.Before(*c.CancelledFrom) {
		return true
	}
	for _, d := range c.CancelledDates {
		if d.Equal(date) {
			return true
		}
	}
	return false
}

// OverrideFor returns the occurrence override anchored at the given original
// start, if any.
func (c *ScheduledClass) OverrideFor(date time.Time) *OccurrenceOverride {
	for i := range c.Overrides {
		if c.Overrides[i].OriginalStart.Equal(date) {
			return &c.Overrides[i]
		}
	}
	return nil
}

// Tags generates a consistent set of tags for the scheduled class. Indexing
// consumers search on these tags, so changes here affect them.
func (c *ScheduledClass) Tags() []string {
	tags := []string{}

	if c == nil {
		return nil
	}

	if c.UID != "" {
		// without prefix
		tags = append(tags, c.UID)
		// with prefix
		tags = append(tags, fmt.Sprintf("class_uid:%s", c.UID))
	}

	if c.CommunityUID != "" {
		tags = append(tags, fmt.Sprintf("community_uid:%s", c.CommunityUID))
	}

	if c.ClassType != "" {
		tags = append(tags, fmt.Sprintf("class_type:%s", c.ClassType))
	}

	if c.Title != "" {
		tags = append(tags, fmt.Sprintf("title:%s", c.Title))
	}

	return tags
}
