// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/faceoff/auth"
	"github.com/danielhkuo/faceoff/models"
	"github.com/danielhkuo/faceoff/serr"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestRequireAuth(t *testing.T) {
	issuer := auth.NewTokenIssuer([]byte("secret"), auth.TypeAccess, auth.AccessTTL)

	var seenUserID string
	handler := RequireAuth(issuer)(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("POST", "/polls", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/polls", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		handler(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		refresh := auth.NewTokenIssuer([]byte("secret"), auth.TypeRefresh, auth.RefreshTTL)
		tk, err := refresh.Issue("user-1", "")
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/polls", nil)
		req.Header.Set("Authorization", "Bearer "+tk)
		w := httptest.NewRecorder()
		handler(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		tk, err := issuer.Issue("user-1", "alice")
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/polls", nil)
		req.Header.Set("Authorization", "Bearer "+tk)
		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", seenUserID)
	})
}

func TestUserIDFromContextWithoutAuth(t *testing.T) {
	req := httptest.NewRequest("GET", "/polls", nil)
	assert.Empty(t, UserIDFromContext(req.Context()))
}

func TestHandleServiceError(t *testing.T) {
	t.Run("service error keeps its status and message", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/polls", nil)
		HandleServiceError(w, r, serr.New(nil, http.StatusConflict, "user has already voted on this poll"))

		assert.Equal(t, http.StatusConflict, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, "user has already voted on this poll", body.Message)
	})

	t.Run("wrapped service error is still unwrapped", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/polls", nil)
		wrapped := errors.Join(errors.New("outer"), serr.New(nil, http.StatusNotFound, "poll not found"))
		HandleServiceError(w, r, wrapped)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown errors become a 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/polls", nil)
		HandleServiceError(w, r, errors.New("disk on fire"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, "Internal server error", body.Message, "internal details must not leak")
	})
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/polls", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		CORS(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("normal requests pass through with headers", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/polls", nil)
		w := httptest.NewRecorder()
		CORS(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
