// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

// Package handlers contains the NATS message handlers for the scheduling service.
package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/televeda/scheduling-service/internal/domain"
	"github.com/televeda/scheduling-service/internal/domain/models"
	"github.com/televeda/scheduling-service/internal/logging"
	"github.com/televeda/scheduling-service/internal/service"
	"github.com/televeda/scheduling-service/pkg/concurrent"
)

// SchedulingHandler handles scheduling-related messages and events.
type SchedulingHandler struct {
	classService *service.ScheduledClassService
}

var _ domain.MessageHandler = (*SchedulingHandler)(nil)

// NewSchedulingHandler creates a new SchedulingHandler.
func NewSchedulingHandler(classService *service.ScheduledClassService) *SchedulingHandler {
	return &SchedulingHandler{
		classService: classService,
	}
}

func (s *SchedulingHandler) HandlerReady() bool {
	return s.classService.ServiceReady()
}

// HandleMessage implements domain.MessageHandler interface
func (s *SchedulingHandler) HandleMessage(ctx context.Context, msg domain.Message) {
	subject := msg.Subject()
	ctx = logging.AppendCtx(ctx, slog.String("subject", subject))
	slog.DebugContext(ctx, "handling NATS message")

	var response []byte
	var err error

	handlers := map[string]func(ctx context.Context, msg domain.Message) ([]byte, error){
		models.ClassGetTitleSubject:    s.HandleClassGetTitle,
		models.CommunityDeletedSubject: s.HandleCommunityDeleted,
	}

	handler, ok := handlers[subject]
	if !ok {
		slog.WarnContext(ctx, "unknown subject")
		if msg.HasReply() {
			err = msg.Respond(nil)
			if err != nil {
				slog.ErrorContext(ctx, "error responding to NATS message", logging.ErrKey, err)
			}
		}
		return
	}

	response, err = handler(ctx, msg)
	if err != nil {
		slog.ErrorContext(ctx, "error handling message",
			logging.ErrKey, err,
		)
		if msg.HasReply() {
			err = msg.Respond(nil)
			if err != nil {
				slog.ErrorContext(ctx, "error responding to NATS message", logging.ErrKey, err)
			}
		}
		return
	}

	if msg.HasReply() {
		err = msg.Respond(response)
		if err != nil {
			slog.ErrorContext(ctx, "error responding to NATS message", logging.ErrKey, err)
			return
		}
		slog.DebugContext(ctx, "responded to NATS message", "response", response)
	} else {
		slog.DebugContext(ctx, "handled NATS message (no reply expected)")
	}
}

// HandleClassGetTitle is the message handler for the class get-title subject.
// The message data is the class UID; the reply is its title.
func (s *SchedulingHandler) HandleClassGetTitle(ctx context.Context, msg domain.Message) ([]byte, error) {
	if !s.classService.ServiceReady() {
		slog.ErrorContext(ctx, "NATS KV store not initialized")
		return nil, fmt.Errorf("NATS KV store not initialized")
	}

	classUID := string(msg.Data())
	ctx = logging.AppendCtx(ctx, slog.String("class_uid", classUID))

	// Validate that the class UID is a valid UUID.
	_, err := uuid.Parse(classUID)
	if err != nil {
		slog.ErrorContext(ctx, "error parsing class UID", logging.ErrKey, err)
		return nil, err
	}

	class, err := s.classService.GetScheduledClass(ctx, classUID)
	if err != nil {
		slog.ErrorContext(ctx, "error getting scheduled class from NATS KV", logging.ErrKey, err)
		return nil, err
	}

	return []byte(class.Title), nil
}

// HandleCommunityDeleted is the message handler for the community-deleted
// subject. It removes every visibility exception recorded for the deleted
// community; the exceptions are meaningless once the community is gone.
func (s *SchedulingHandler) HandleCommunityDeleted(ctx context.Context, msg domain.Message) ([]byte, error) {
	if !s.classService.ServiceReady() {
		slog.ErrorContext(ctx, "service not ready")
		return nil, fmt.Errorf("service not ready")
	}

	communityUID := string(msg.Data())
	if communityUID == "" {
		return nil, fmt.Errorf("community UID is required")
	}
	ctx = logging.AppendCtx(ctx, slog.String("community_uid", communityUID))

	exceptions, err := s.classService.ExceptionRepository.ListAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "error listing visibility exceptions", logging.ErrKey, err)
		return nil, err
	}

	deletions := make([]func() error, 0)
	for _, e := range exceptions {
		if e.CommunityUID != communityUID {
			continue
		}
		deletions = append(deletions, func() error {
			return s.classService.ExceptionRepository.Delete(ctx, e.ClassUID, e.Date, e.CommunityUID)
		})
	}

	if len(deletions) > 0 {
		pool := concurrent.NewWorkerPool(5)
		errs := pool.RunAll(ctx, deletions...)
		for _, err := range errs {
			slog.ErrorContext(ctx, "error deleting community exception", logging.ErrKey, err)
		}
		if len(errs) > 0 {
			return nil, fmt.Errorf("failed to delete %d of %d exceptions", len(errs), len(deletions))
		}
	}

	slog.InfoContext(ctx, "cleaned up visibility exceptions for deleted community",
		"deleted_count", len(deletions),
	)
	return nil, nil
}
