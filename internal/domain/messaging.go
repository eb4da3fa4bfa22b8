// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/televeda/scheduling-service/internal/domain/models"
)

// Message represents a domain message interface
type Message interface {
	Subject() string
	Data() []byte
	Respond(data []byte) error
	HasReply() bool
}

// MessageHandler defines how the service handles incoming messages
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg Message)
	HandlerReady() bool
}

// ClassIndexSender handles indexing operations for scheduled classes.
type ClassIndexSender interface {
	SendIndexScheduledClass(ctx context.Context, action models.MessageAction, data models.ScheduledClass) error
	SendDeleteIndexScheduledClass(ctx context.Context, classUID string) error
}

// ClassEventSender publishes scheduling lifecycle events for downstream
// consumers.
type ClassEventSender interface {
	SendClassDeleted(ctx context.Context, classUID string) error
	SendClassRescheduled(ctx context.Context, data models.ClassRescheduledMessage) error
}

// MessageBuilder is the aggregate publishing interface used by the services.
type MessageBuilder interface {
	ClassIndexSender
	ClassEventSender
}
