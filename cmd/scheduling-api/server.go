// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/televeda/scheduling-service/internal/domain"
	"github.com/televeda/scheduling-service/internal/domain/models"
	"github.com/televeda/scheduling-service/internal/handlers"
	"github.com/televeda/scheduling-service/internal/infrastructure/ics"
	"github.com/televeda/scheduling-service/internal/logging"
	"github.com/televeda/scheduling-service/internal/middleware"
	"github.com/televeda/scheduling-service/internal/service"
	"github.com/televeda/scheduling-service/pkg/constants"
)

// SchedulingAPI is the HTTP surface of the scheduling service.
type SchedulingAPI struct {
	classService *service.ScheduledClassService
	natsHandler  *handlers.SchedulingHandler
	feedGen      *ics.FeedGenerator
}

// NewSchedulingAPI creates a new SchedulingAPI.
func NewSchedulingAPI(classService *service.ScheduledClassService, natsHandler *handlers.SchedulingHandler) *SchedulingAPI {
	return &SchedulingAPI{
		classService: classService,
		natsHandler:  natsHandler,
		feedGen:      ics.NewFeedGenerator(),
	}
}

// setupHTTPServer configures and starts the HTTP server
func setupHTTPServer(flags flags, api *SchedulingAPI, gracefulCloseWG *sync.WaitGroup) *http.Server {
	r := chi.NewRouter()

	// Note: Order matters - RequestIDMiddleware should come first in the chain.
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLoggerMiddleware())
	r.Use(authContextMiddleware)

	r.Get("/livez", api.handleLivez)
	r.Get("/readyz", api.handleReadyz)

	r.Get("/calendar", api.handleGetCalendar)

	r.Route("/scheduled-classes", func(r chi.Router) {
		r.Post("/", api.handleCreateClass)
		r.Get("/{uid}", api.handleGetClass)
		r.Delete("/{uid}", api.handleDeleteClass)
		r.Post("/{uid}/reschedule", api.handleReschedule)
		r.Post("/{uid}/cancel", api.handleCancel)
		r.Post("/{uid}/remove-from-calendar", api.handleRemoveFromCalendar)
		r.Post("/{uid}/show-to-calendar", api.handleShowToCalendar)
	})

	r.Get("/communities/{uid}/calendar.ics", api.handleCommunityFeed)

	// Set up http listener in a goroutine using provided command line parameters.
	var addr string
	if flags.Bind == "*" {
		addr = ":" + flags.Port
	} else {
		addr = flags.Bind + ":" + flags.Port
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 3 * time.Second,
	}
	gracefulCloseWG.Add(1)
	go func() {
		slog.With("addr", addr).Debug("starting http server, listening on port " + flags.Port)
		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			slog.With(logging.ErrKey, err).Error("http listener error")
			os.Exit(1)
		}
		// Because ErrServerClosed is *immediately* returned when Shutdown is
		// called, not when Shutdown completes, this must not yet decrement
		// the wait group.
	}()

	return httpServer
}

// authContextMiddleware copies the caller's authorization header and on-behalf
// principal onto the context so that downstream indexer messages carry them.
func authContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if auth := r.Header.Get(constants.AuthorizationHeader); auth != "" {
			ctx = context.WithValue(ctx, constants.AuthorizationContextID, auth)
		}
		if principal := r.Header.Get(constants.XOnBehalfOfHeader); principal != "" {
			ctx = context.WithValue(ctx, constants.PrincipalContextID, principal)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *SchedulingAPI) handleLivez(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (a *SchedulingAPI) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if !a.natsHandler.HandlerReady() {
		writeError(r.Context(), w, domain.NewUnavailableError("service not ready"))
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (a *SchedulingAPI) handleGetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query, err := parseCalendarQuery(r)
	if err != nil {
		writeError(ctx, w, domain.NewValidationError("invalid calendar query", err))
		return
	}

	occurrences, err := a.classService.GetCalendarWindow(ctx, query)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, occurrences)
}

func parseCalendarQuery(r *http.Request) (service.CalendarQuery, error) {
	var query service.CalendarQuery
	var err error

	if from := r.URL.Query().Get("from"); from != "" {
		query.From, err = time.Parse(time.RFC3339, from)
		if err != nil {
			return query, err
		}
	}
	if to := r.URL.Query().Get("to"); to != "" {
		query.To, err = time.Parse(time.RFC3339, to)
		if err != nil {
			return query, err
		}
	}
	if communities := r.URL.Query().Get("communities"); communities != "" {
		query.CommunityUIDs = strings.Split(communities, ",")
	}
	if classTypes := r.URL.Query().Get("class_types"); classTypes != "" {
		for _, classType := range strings.Split(classTypes, ",") {
			query.ClassTypes = append(query.ClassTypes, models.ClassType(classType))
		}
	}
	query.HostUID = r.URL.Query().Get("host")
	query.ViewerCommunityUID = r.URL.Query().Get("viewer_community")

	return query, nil
}

func (a *SchedulingAPI) handleCreateClass(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var class models.ScheduledClass
	if err := json.NewDecoder(r.Body).Decode(&class); err != nil {
		writeError(ctx, w, domain.NewValidationError("invalid request body", err))
		return
	}

	created, err := a.classService.CreateScheduledClass(ctx, &class)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, created)
}

func (a *SchedulingAPI) handleGetClass(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	class, err := a.classService.GetScheduledClass(ctx, chi.URLParam(r, "uid"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, class)
}

func (a *SchedulingAPI) handleDeleteClass(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, domain.NewValidationError("invalid request body", err))
		return
	}
	req.ClassUID = chi.URLParam(r, "uid")
	req.Resource = r.URL.Query().Get("resource")
	if req.Resource == "" {
		req.Resource = models.ResourceScheduledClass
	}

	if err := a.classService.Delete(ctx, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *SchedulingAPI) handleReschedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, domain.NewValidationError("invalid request body", err))
		return
	}
	req.ClassUID = chi.URLParam(r, "uid")

	result, err := a.classService.Reschedule(ctx, &req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

func (a *SchedulingAPI) handleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, domain.NewValidationError("invalid request body", err))
		return
	}
	req.ClassUID = chi.URLParam(r, "uid")

	class, err := a.classService.Cancel(ctx, &req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, class)
}

func (a *SchedulingAPI) handleRemoveFromCalendar(w http.ResponseWriter, r *http.Request) {
	a.handleVisibilityToggle(w, r, true)
}

func (a *SchedulingAPI) handleShowToCalendar(w http.ResponseWriter, r *http.Request) {
	a.handleVisibilityToggle(w, r, false)
}

func (a *SchedulingAPI) handleVisibilityToggle(w http.ResponseWriter, r *http.Request, hide bool) {
	ctx := r.Context()

	var req models.VisibilityToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, domain.NewValidationError("invalid request body", err))
		return
	}
	req.ClassUID = chi.URLParam(r, "uid")
	req.Hide = hide

	if err := a.classService.ToggleVisibility(ctx, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *SchedulingAPI) handleCommunityFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	community, err := a.classService.CommunityRepository.Get(ctx, chi.URLParam(r, "uid"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	classes, err := a.classService.ClassRepository.ListAll(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	exceptions, err := a.classService.ExceptionRepository.ListAll(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	feed, err := a.feedGen.GenerateCommunityFeed(community, classes, exceptions)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(feed))
}

// errorResponse is the JSON body returned for failed requests.
type errorResponse struct {
	Message string `json:"message"`
}

// writeError maps a domain error to its HTTP status code.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch domain.GetErrorType(err) {
	case domain.ErrorTypeValidation:
		status = http.StatusBadRequest
	case domain.ErrorTypeNotFound:
		status = http.StatusNotFound
	case domain.ErrorTypeConflict:
		status = http.StatusConflict
	case domain.ErrorTypeUnavailable:
		status = http.StatusServiceUnavailable
	case domain.ErrorTypeInternal:
		status = http.StatusInternalServerError
	}

	writeJSON(ctx, w, status, errorResponse{Message: err.Error()})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(ctx, "error encoding response body", logging.ErrKey, err)
	}
}
