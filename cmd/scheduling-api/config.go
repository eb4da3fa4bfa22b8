// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/nats-io/nats.go"

	"github.com/televeda/scheduling-service/internal/logging"
	"github.com/televeda/scheduling-service/pkg/utils"
)

// flags are the command line flags for the scheduling service.
type flags struct {
	Debug bool
	Port  string
	Bind  string
}

// environment are the environment variables for the scheduling service.
type environment struct {
	Port                   string
	NatsURL                string
	SkipRevisionValidation bool
	SweepSchedule          string
	Webex                  webexConfig
}

// webexConfig holds the Webex integration credentials. Both values must be
// set for the Webex conferencing provider to be registered.
type webexConfig struct {
	ClientID     string
	ClientSecret string
}

// parseFlags parses command line flags for the scheduling service
func parseFlags(defaultPort string) flags {
	var debug = flag.Bool("d", false, "enable debug logging")
	var port = flag.String("p", defaultPort, "listen port")
	var bind = flag.String("bind", "*", "interface to bind on")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by [logging.InitStructureLogConfig]
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug: *debug,
		Port:  *port,
		Bind:  *bind,
	}
}

// parseEnv parses environment variables for the scheduling service
func parseEnv() environment {
	return environment{
		Port:                   utils.CoalesceString(os.Getenv("PORT"), "8080"),
		NatsURL:                utils.CoalesceString(os.Getenv("NATS_URL"), nats.DefaultURL),
		SkipRevisionValidation: os.Getenv("SKIP_REVISION_VALIDATION") == "true",
		// Orphaned exception sweep runs nightly by default.
		SweepSchedule: utils.CoalesceString(os.Getenv("SWEEP_SCHEDULE"), "0 3 * * *"),
		Webex: webexConfig{
			ClientID:     os.Getenv("WEBEX_CLIENT_ID"),
			ClientSecret: os.Getenv("WEBEX_CLIENT_SECRET"),
		},
	}
}
