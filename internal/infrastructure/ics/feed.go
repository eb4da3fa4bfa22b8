// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

// Package ics generates iCalendar feeds for community calendars.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/televeda/scheduling-service/internal/domain/models"
	"github.com/televeda/scheduling-service/pkg/utils"
)

// Feed constants for consistent values across all generated feeds
const (
	FeedProdID = "-//Televeda//Scheduling Service//EN"

	// uidDomain suffixes event UIDs so they are globally unique across feeds
	uidDomain = "scheduling.televeda.com"
)

// FeedGenerator renders a community's visible classes as an iCalendar feed.
// One VEVENT is emitted per class definition; recurring series are carried as
// RRULEs with EXDATEs for deleted, cancelled and community-excepted dates, so
// the feed stays small regardless of how far the series extends.
type FeedGenerator struct{}

// NewFeedGenerator creates a new feed generator
func NewFeedGenerator() *FeedGenerator {
	return &FeedGenerator{}
}

// GenerateCommunityFeed builds the ICS feed for one community. The classes
// slice should contain every class that might be visible; filtering by
// visibility happens here. Exceptions are the visibility exceptions affecting
// the community.
func (g *FeedGenerator) GenerateCommunityFeed(
	community *models.Community,
	classes []*models.ScheduledClass,
	exceptions []*models.VisibilityException,
) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(FeedProdID)
	cal.SetName(fmt.Sprintf("%s Classes", community.Name))

	// Group exception dates by class for quick lookup
	exceptedDates := make(map[string][]time.Time)
	for _, exception := range exceptions {
		if exception.CommunityUID != community.UID {
			continue
		}
		exceptedDates[exception.ClassUID] = append(exceptedDates[exception.ClassUID], exception.Date)
	}

	now := time.Now().UTC()
	for _, class := range classes {
		if !visibleTo(class, community.UID) {
			continue
		}
		if class.ClassType == models.ClassTypeOnDemand {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("%s@%s", class.UID, uidDomain))
		stamp := utils.TimeValue(class.UpdatedAt)
		if stamp.IsZero() {
			stamp = now
		}
		event.SetDtStampTime(stamp)
		event.SetSummary(class.Title)
		if class.Description != "" {
			event.SetDescription(class.Description)
		}
		event.SetStartAt(class.StartTime)
		event.SetEndAt(class.StartTime.Add(time.Duration(class.Duration) * time.Minute))
		if class.IsCanceled {
			event.SetStatus(ical.ObjectStatusCancelled)
		}

		if class.IsRecurring && class.Recurrence != nil {
			if err := g.applyRecurrence(event, class, exceptedDates[class.UID]); err != nil {
				return "", fmt.Errorf("class %s: %w", class.UID, err)
			}
		}
	}

	return cal.Serialize(), nil
}

// applyRecurrence writes the RRULE and EXDATE properties for a recurring class.
func (g *FeedGenerator) applyRecurrence(event *ical.VEvent, class *models.ScheduledClass, excepted []time.Time) error {
	recurrence := *class.Recurrence

	// A cancel with the After scope truncates the visible series. Open-ended
	// series get an UNTIL; bounded series keep their bound and the cancelled
	// tail is excluded date by date below.
	var cancelledTail []time.Time
	if class.CancelledFrom != nil {
		if recurrence.EndType == models.RecurrenceEndNever || recurrence.EndType == "" {
			cutoff := class.CancelledFrom.Add(-time.Second)
			recurrence.EndType = models.RecurrenceEndDate
			recurrence.EndDate = &cutoff
		} else {
			rule, err := class.Recurrence.ToRRule(class.StartTime)
			if err != nil {
				return err
			}
			for _, occurrence := range rule.All() {
				if !occurrence.Before(*class.CancelledFrom) {
					cancelledTail = append(cancelledTail, occurrence)
				}
			}
		}
	}

	rule, err := recurrence.ToRRule(class.StartTime)
	if err != nil {
		return err
	}
	event.AddRrule(rule.String())

	seen := make(map[string]bool)
	addExdate := func(date time.Time) {
		formatted := date.UTC().Format("20060102T150405Z")
		if seen[formatted] {
			return
		}
		seen[formatted] = true
		event.AddExdate(formatted)
	}

	for _, date := range class.DeletedDates {
		addExdate(date)
	}
	for _, date := range class.CancelledDates {
		addExdate(date)
	}
	for _, date := range cancelledTail {
		addExdate(date)
	}
	for _, date := range excepted {
		addExdate(date)
	}

	return nil
}

// visibleTo reports whether a class belongs on the community's calendar. A
// community always sees its own non-hidden classes; classes from the rest of
// the network are visible only when public.
func visibleTo(class *models.ScheduledClass, communityUID string) bool {
	if class.CommunityUID == communityUID {
		return class.Visibility != models.VisibilityHidden
	}
	return class.Visibility == models.VisibilityPublic
}
