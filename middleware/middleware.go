// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/faceoff/auth"
	"github.com/danielhkuo/faceoff/models"
	"github.com/danielhkuo/faceoff/serr"
)

// WithLogging wraps a handler with request logging
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Info("request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
		)

		next(w, r)

		duration := time.Since(start)
		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", duration.Milliseconds(),
		)
	}
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a JSON error response
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// HandleServiceError maps a service-layer error to a client response. A
// *serr.ServiceError carries its own status code and message; anything else
// is logged and hidden behind a 500.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var se *serr.ServiceError
	if errors.As(err, &se) {
		ErrorResponse(w, se.StatusCode, se.Msg)
		return
	}

	slog.Error("request error",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
	)
	ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
}

// ParseJSONBody parses the request body into the given struct
func ParseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// CORS middleware allows cross-origin requests from the frontend
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type ctxKey struct{}

var userIDKey ctxKey

// RequireAuth returns a middleware that validates the bearer token on each
// request and puts the resolved user id into the request context. Handlers
// behind it never see an unauthenticated request.
func RequireAuth(validator *auth.TokenIssuer) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			raw = strings.TrimPrefix(raw, "Bearer ")
			if raw == "" {
				ErrorResponse(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			claims, err := validator.Validate(raw)
			if err != nil {
				slog.Info("rejected token", "error", err, "remote", r.RemoteAddr)
				ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
			next(w, r.WithContext(ctx))
		}
	}
}

// UserIDFromContext returns the user id placed by RequireAuth, or "".
func UserIDFromContext(ctx context.Context) string {
	uid, _ := ctx.Value(userIDKey).(string)
	return uid
}
