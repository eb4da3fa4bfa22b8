// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/televeda/scheduling-service/internal/domain/mocks"
	"github.com/televeda/scheduling-service/internal/domain/models"
	"github.com/televeda/scheduling-service/internal/service"
)

// mockMessage implements domain.Message for testing
type mockMessage struct {
	subject   string
	data      []byte
	hasReply  bool
	responses [][]byte
}

func (m *mockMessage) Subject() string { return m.subject }
func (m *mockMessage) Data() []byte    { return m.data }
func (m *mockMessage) HasReply() bool  { return m.hasReply }
func (m *mockMessage) Respond(data []byte) error {
	m.responses = append(m.responses, data)
	return nil
}

func newTestHandler() (*SchedulingHandler, *mocks.MockScheduledClassRepository, *mocks.MockExceptionRepository) {
	classRepo := &mocks.MockScheduledClassRepository{}
	exceptionRepo := &mocks.MockExceptionRepository{}
	classService := service.NewScheduledClassService(
		classRepo,
		exceptionRepo,
		&mocks.MockCommunityRepository{},
		&mocks.MockMessageBuilder{},
		&mocks.MockProviderRegistry{},
		service.NewMaterializerService(),
		service.ServiceConfig{},
	)
	return NewSchedulingHandler(classService), classRepo, exceptionRepo
}

func TestHandlerReady(t *testing.T) {
	handler, _, _ := newTestHandler()
	assert.True(t, handler.HandlerReady())
}

func TestHandleClassGetTitle(t *testing.T) {
	handler, classRepo, _ := newTestHandler()

	classUID := "7cad5a8d-19fb-41ee-ad82-fcb1716cf0f4"
	classRepo.On("Get", mock.Anything, classUID).Return(&models.ScheduledClass{
		UID:   classUID,
		Title: "Chair Yoga",
	}, nil)

	msg := &mockMessage{
		subject:  models.ClassGetTitleSubject,
		data:     []byte(classUID),
		hasReply: true,
	}
	handler.HandleMessage(context.Background(), msg)

	require.Len(t, msg.responses, 1)
	assert.Equal(t, "Chair Yoga", string(msg.responses[0]))
}

func TestHandleClassGetTitleInvalidUID(t *testing.T) {
	handler, _, _ := newTestHandler()

	msg := &mockMessage{
		subject:  models.ClassGetTitleSubject,
		data:     []byte("not-a-uuid"),
		hasReply: true,
	}
	handler.HandleMessage(context.Background(), msg)

	// Handler responds with nil payload on error
	require.Len(t, msg.responses, 1)
	assert.Nil(t, msg.responses[0])
}

func TestHandleCommunityDeleted(t *testing.T) {
	handler, _, exceptionRepo := newTestHandler()

	date := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	exceptionRepo.On("ListAll", mock.Anything).Return([]*models.VisibilityException{
		{ClassUID: "class-1", Date: date, CommunityUID: "community-1"},
		{ClassUID: "class-2", Date: date, CommunityUID: "community-1"},
		{ClassUID: "class-1", Date: date, CommunityUID: "community-2"},
	}, nil)
	exceptionRepo.On("Delete", mock.Anything, "class-1", date, "community-1").Return(nil)
	exceptionRepo.On("Delete", mock.Anything, "class-2", date, "community-1").Return(nil)

	msg := &mockMessage{
		subject: models.CommunityDeletedSubject,
		data:    []byte("community-1"),
	}
	handler.HandleMessage(context.Background(), msg)

	exceptionRepo.AssertNumberOfCalls(t, "Delete", 2)
	exceptionRepo.AssertNotCalled(t, "Delete", mock.Anything, "class-1", date, "community-2")
}

func TestHandleMessageUnknownSubject(t *testing.T) {
	handler, _, _ := newTestHandler()

	msg := &mockMessage{
		subject:  "televeda.scheduling-api.unknown",
		hasReply: true,
	}
	handler.HandleMessage(context.Background(), msg)

	require.Len(t, msg.responses, 1)
	assert.Nil(t, msg.responses[0])
}
