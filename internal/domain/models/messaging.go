// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package models

// NATS subjects that the scheduling service sends messages about.
const (
	// IndexScheduledClassSubject is the subject for scheduled class indexing.
	// The subject is of the form: televeda.index.scheduled_class
	IndexScheduledClassSubject = "televeda.index.scheduled_class"

	// ClassDeletedSubject is the subject for scheduled class deletion events.
	// The subject is of the form: televeda.scheduling-api.class_deleted
	ClassDeletedSubject = "televeda.scheduling-api.class_deleted"

	// ClassRescheduledSubject is the subject for scheduled class reschedule events.
	// The subject is of the form: televeda.scheduling-api.class_rescheduled
	ClassRescheduledSubject = "televeda.scheduling-api.class_rescheduled"
)

// NATS wildcard subjects that the scheduling service handles messages about.
const (
	// SchedulingAPIQueue is the queue name for the scheduling API.
	// The subject is of the form: televeda.scheduling-api.queue
	SchedulingAPIQueue = "televeda.scheduling-api.queue"
)

// NATS specific subjects that the scheduling service handles messages about.
const (
	// ClassGetTitleSubject is the subject for the scheduled class get title request.
	// The subject is of the form: televeda.scheduling-api.get_title
	ClassGetTitleSubject = "televeda.scheduling-api.get_title"

	// CommunityDeletedSubject is the subject for community deletion events.
	// The subject is of the form: televeda.scheduling-api.community_deleted
	CommunityDeletedSubject = "televeda.scheduling-api.community_deleted"
)

// MessageAction is a type for the action of a scheduling message.
type MessageAction string

// MessageAction constants for the action of a scheduling message.
const (
	ActionCreated MessageAction = "created"
	ActionUpdated MessageAction = "updated"
	ActionDeleted MessageAction = "deleted"
)

// SchedulingIndexerMessage is the message sent to the indexer service about a
// scheduled class mutation.
type SchedulingIndexerMessage struct {
	Action  MessageAction     `json:"action"`
	Headers map[string]string `json:"headers"`
	Data    any               `json:"data"`
	Tags    []string          `json:"tags"`
}

// ClassRescheduledMessage is the event payload published when a class is
// rescheduled. Downstream consumers (e.g. the on-demand library) use it to
// re-link dependent resources.
type ClassRescheduledMessage struct {
	ClassUID string          `json:"class_uid"`
	Scope    AlterationScope `json:"scope"`
	OldDate  string          `json:"old_date"`
	NewStart string          `json:"new_start"`
}
