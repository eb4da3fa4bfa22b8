// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

// Package main is the scheduling service API that provides a RESTful API for
// managing scheduled classes and handles NATS messages for the scheduling
// service.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/televeda/scheduling-service/internal/domain/models"
	"github.com/televeda/scheduling-service/internal/handlers"
	"github.com/televeda/scheduling-service/internal/infrastructure/messaging"
	"github.com/televeda/scheduling-service/internal/infrastructure/platform"
	"github.com/televeda/scheduling-service/internal/infrastructure/webex"
	webexapi "github.com/televeda/scheduling-service/internal/infrastructure/webex/api"
	"github.com/televeda/scheduling-service/internal/logging"
	"github.com/televeda/scheduling-service/internal/service"
)

func main() {
	env := parseEnv()
	flags := parseFlags(env.Port)

	logging.InitStructureLogConfig()

	// Initialize conferencing providers.
	providerRegistry := platform.NewRegistry()
	if env.Webex.ClientID != "" && env.Webex.ClientSecret != "" {
		webexClient := webexapi.NewClient(webexapi.Config{
			ClientID:     env.Webex.ClientID,
			ClientSecret: env.Webex.ClientSecret,
		})
		providerRegistry.RegisterProvider(models.ClassTypeWebex, webex.NewProvider(webexClient))
		slog.Info("registered Webex conferencing provider")
	} else {
		slog.Warn("Webex credentials not configured, webex classes will not manage conferencing rooms")
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	gracefulCloseWG := sync.WaitGroup{}

	// Setup NATS connection
	natsConn, err := setupNATS(ctx, env, &gracefulCloseWG, done)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up NATS")
		return
	}

	// Get the key-value stores for the service.
	repos, err := getKeyValueStores(ctx, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error getting key-value stores")
		return
	}

	// Initialize services
	serviceConfig := service.ServiceConfig{
		SkipRevisionValidation: env.SkipRevisionValidation,
	}
	messageBuilder := messaging.NewMessageBuilder(natsConn)
	classService := service.NewScheduledClassService(
		repos.Class,
		repos.Exception,
		repos.Community,
		messageBuilder,
		providerRegistry,
		service.NewMaterializerService(),
		serviceConfig,
	)

	// Initialize handlers
	schedulingHandler := handlers.NewSchedulingHandler(classService)

	api := NewSchedulingAPI(classService, schedulingHandler)

	httpServer := setupHTTPServer(flags, api, &gracefulCloseWG)

	// Create NATS subscriptions for the service.
	err = createNatsSubscriptions(ctx, schedulingHandler, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error creating NATS subscriptions")
		return
	}

	// Sweep orphaned visibility exceptions on a schedule.
	sweeper, err := setupSweeper(ctx, env, classService)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up exception sweep job")
		return
	}

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done

	gracefulShutdown(httpServer, natsConn, sweeper, &gracefulCloseWG, cancel)
}

// setupSweeper schedules the orphaned-exception sweep. Exceptions whose class
// no longer exists are deleted so the exceptions bucket does not grow without
// bound. Exceptions of deleted communities are cleaned up by the NATS handler
// for community deletion events.
func setupSweeper(ctx context.Context, env environment, classService *service.ScheduledClassService) (*cron.Cron, error) {
	sweeper := cron.New()
	_, err := sweeper.AddFunc(env.SweepSchedule, func() {
		deleted, err := classService.SweepOrphanedExceptions(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "error sweeping orphaned exceptions", logging.ErrKey, err)
			return
		}
		slog.InfoContext(ctx, "swept orphaned visibility exceptions", "deleted_count", deleted)
	})
	if err != nil {
		return nil, err
	}
	sweeper.Start()
	return sweeper, nil
}
