// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/faceoff/auth"
	"github.com/danielhkuo/faceoff/middleware"
	"github.com/danielhkuo/faceoff/models"
	"github.com/danielhkuo/faceoff/store"
)

// AuthHandler is the identity resolver's HTTP surface: registration, login,
// and token refresh. The poll core never sees credentials, only the user id
// the middleware resolves from an access token.
type AuthHandler struct {
	store   store.Store
	access  *auth.TokenIssuer
	refresh *auth.TokenIssuer
}

func NewAuthHandler(st store.Store, access, refresh *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{store: st, access: access, refresh: refresh}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	userID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate user ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	err = h.store.CreateUser(r.Context(), models.User{
		ID:           userID,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, store.ErrExists) {
			middleware.ErrorResponse(w, http.StatusConflict, "username or email already taken")
			return
		}
		slog.Error("failed to create user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("user registered", "user_id", userID, "username", req.Username)

	h.issueTokens(w, http.StatusCreated, userID, req.Username)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	u, err := h.store.UserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	slog.Info("user logged in", "user_id", u.ID)

	h.issueTokens(w, http.StatusOK, u.ID, u.Username)
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	claims, err := h.refresh.Validate(req.RefreshToken)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	u, err := h.store.UserByID(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Unknown user")
			return
		}
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	accessToken, err := h.access.Issue(u.ID, u.Username)
	if err != nil {
		slog.Error("failed to issue access token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

func (h *AuthHandler) issueTokens(w http.ResponseWriter, status int, userID, username string) {
	accessToken, err := h.access.Issue(userID, username)
	if err != nil {
		slog.Error("failed to issue access token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue tokens")
		return
	}

	refreshToken, err := h.refresh.Issue(userID, "")
	if err != nil {
		slog.Error("failed to issue refresh token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue tokens")
		return
	}

	middleware.JSONResponse(w, status, models.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	})
}
