// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/robfig/cron/v3"

	"github.com/televeda/scheduling-service/internal/domain"
	"github.com/televeda/scheduling-service/internal/domain/models"
	"github.com/televeda/scheduling-service/internal/handlers"
	"github.com/televeda/scheduling-service/internal/infrastructure/store"
	"github.com/televeda/scheduling-service/internal/logging"
)

const (
	natsConnectTimeout  = 10 * time.Second
	natsDrainTimeout    = 25 * time.Second
	gracefulShutdownMax = 25 * time.Second
)

// storeRepositories groups the NATS KV backed repositories used by the service.
type storeRepositories struct {
	Class     *store.NatsScheduledClassRepository
	Exception *store.NatsExceptionRepository
	Community *store.NatsCommunityRepository
}

// setupNATS connects to the NATS server. The connection participates in
// graceful shutdown: a closed connection releases the wait group and, if the
// close was not requested, signals the done channel so the process exits.
func setupNATS(ctx context.Context, env environment, gracefulCloseWG *sync.WaitGroup, done chan os.Signal) (*nats.Conn, error) {
	gracefulCloseWG.Add(1)
	natsConn, err := nats.Connect(
		env.NatsURL,
		nats.Timeout(natsConnectTimeout),
		nats.DrainTimeout(natsDrainTimeout),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "reconnected to NATS", "url", nc.ConnectedUrl())
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.WarnContext(ctx, "disconnected from NATS", logging.ErrKey, err)
			}
		}),
		nats.ErrorHandler(func(_ *nats.Conn, sub *nats.Subscription, err error) {
			if sub != nil {
				slog.ErrorContext(ctx, "async NATS error", logging.ErrKey, err, "subject", sub.Subject)
				return
			}
			slog.ErrorContext(ctx, "async NATS error", logging.ErrKey, err)
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "NATS connection closed")
			gracefulCloseWG.Done()
			// Wake up the main goroutine if the close was not part of a
			// requested shutdown.
			select {
			case done <- syscall.SIGTERM:
			default:
			}
		}),
	)
	if err != nil {
		gracefulCloseWG.Done()
		return nil, err
	}

	slog.InfoContext(ctx, "connected to NATS", "url", natsConn.ConnectedUrl())
	return natsConn, nil
}

// getKeyValueStores acquires the JetStream KV buckets backing the service and
// wraps them in repositories. Buckets missing on the server are created; the
// communities bucket is normally owned by the community service, so creating
// it here only matters for local development.
func getKeyValueStores(ctx context.Context, natsConn *nats.Conn) (*storeRepositories, error) {
	js, err := jetstream.New(natsConn)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]jetstream.KeyValue, 3)
	for _, bucket := range []string{
		store.KVStoreNameScheduledClasses,
		store.KVStoreNameExceptions,
		store.KVStoreNameCommunities,
	} {
		kv, err := js.KeyValue(ctx, bucket)
		if errors.Is(err, jetstream.ErrBucketNotFound) {
			kv, err = js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
				Bucket:  bucket,
				History: 20,
			})
		}
		if err != nil {
			slog.ErrorContext(ctx, "error getting KV bucket", logging.ErrKey, err, "bucket", bucket)
			return nil, err
		}
		buckets[bucket] = kv
	}

	return &storeRepositories{
		Class:     store.NewNatsScheduledClassRepository(buckets[store.KVStoreNameScheduledClasses]),
		Exception: store.NewNatsExceptionRepository(buckets[store.KVStoreNameExceptions]),
		Community: store.NewNatsCommunityRepository(buckets[store.KVStoreNameCommunities]),
	}, nil
}

// natsMessage adapts a *nats.Msg to the domain.Message interface.
type natsMessage struct {
	msg *nats.Msg
}

var _ domain.Message = (*natsMessage)(nil)

func (m *natsMessage) Subject() string { return m.msg.Subject }
func (m *natsMessage) Data() []byte    { return m.msg.Data }
func (m *natsMessage) HasReply() bool  { return m.msg.Reply != "" }
func (m *natsMessage) Respond(data []byte) error {
	return m.msg.Respond(data)
}

// createNatsSubscriptions subscribes the handler to the subjects the service
// answers on. All subscriptions share one queue group so that only one
// instance of the service processes each message.
func createNatsSubscriptions(ctx context.Context, handler *handlers.SchedulingHandler, natsConn *nats.Conn) error {
	subjects := []string{
		models.ClassGetTitleSubject,
		models.CommunityDeletedSubject,
	}

	for _, subject := range subjects {
		_, err := natsConn.QueueSubscribe(subject, models.SchedulingAPIQueue, func(msg *nats.Msg) {
			handler.HandleMessage(ctx, &natsMessage{msg: msg})
		})
		if err != nil {
			slog.ErrorContext(ctx, "error creating NATS subscription", logging.ErrKey, err, "subject", subject)
			return err
		}
		slog.DebugContext(ctx, "subscribed to NATS subject", "subject", subject, "queue", models.SchedulingAPIQueue)
	}

	return nil
}

// gracefulShutdown stops the sweep job, shuts down the HTTP server, and
// drains the NATS connection so in-flight messages finish before exit.
func gracefulShutdown(httpServer *http.Server, natsConn *nats.Conn, sweeper *cron.Cron, gracefulCloseWG *sync.WaitGroup, cancel context.CancelFunc) {
	slog.Info("shutting down gracefully")
	cancel()

	ctx, ctxCancel := context.WithTimeout(context.Background(), gracefulShutdownMax)
	defer ctxCancel()

	// Stop scheduling new sweep runs and wait for a running one to finish.
	select {
	case <-sweeper.Stop().Done():
	case <-ctx.Done():
		slog.Warn("timed out waiting for sweep job to finish")
	}

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.With(logging.ErrKey, err).Error("error shutting down http server")
	}
	// The http listener goroutine holds this until Shutdown completes.
	gracefulCloseWG.Done()

	// Drain lets in-flight subscription callbacks complete; the closed
	// handler releases the connection's wait group slot when done.
	if err := natsConn.Drain(); err != nil {
		slog.With(logging.ErrKey, err).Error("error draining NATS connection")
		natsConn.Close()
	}

	waitDone := make(chan struct{})
	go func() {
		gracefulCloseWG.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
	case <-ctx.Done():
		slog.Warn("timed out waiting for graceful shutdown")
	}
}
