// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/televeda/scheduling-service/internal/logging"
	"github.com/televeda/scheduling-service/pkg/constants"
)

// RequestIDMiddleware propagates the caller's request ID, generating one when
// the header is absent. The ID is stored on the context and echoed back on the
// response so that clients and logs can be correlated.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(constants.RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := r.Context()
			ctx = logging.AppendCtx(ctx, slog.String("request_id", requestID))

			w.Header().Set(constants.RequestIDHeader, requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
