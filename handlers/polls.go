// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/faceoff/middleware"
	"github.com/danielhkuo/faceoff/models"
	"github.com/danielhkuo/faceoff/poll"
)

type PollHandler struct {
	svc *poll.Service
}

func NewPollHandler(svc *poll.Service) *PollHandler {
	return &PollHandler{svc: svc}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Both option fields must be present; the service rejects any other count.
	options := []models.OptionInput{}
	if req.Option1 != nil {
		options = append(options, *req.Option1)
	}
	if req.Option2 != nil {
		options = append(options, *req.Option2)
	}

	created, err := h.svc.CreatePoll(r.Context(), poll.CreatePollRequest{
		Question: req.Question,
		Options:  options,
		OwnerID:  middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		middleware.HandleServiceError(w, r, err)
		return
	}

	slog.Info("poll created", "poll_id", created.Poll.ID, "owner_id", created.Poll.OwnerID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		Message: "Poll created",
		PollID:  created.Poll.ID,
	})
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	details, err := h.svc.GetPollDetails(r.Context(), pollID)
	if err != nil {
		middleware.HandleServiceError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, details)
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}

	result, err := h.svc.ListPolls(r.Context(), poll.ListPollsRequest{
		Page:   page,
		Filter: q.Get("filter"),
		Order:  q.Get("order"),
	})
	if err != nil {
		middleware.HandleServiceError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

// UpdatePoll handles PUT /polls/{id}
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := h.svc.UpdatePoll(r.Context(), poll.UpdatePollRequest{
		PollID:      pollID,
		RequesterID: middleware.UserIDFromContext(r.Context()),
		Question:    req.Question,
		Options:     req.Options,
	})
	if err != nil {
		middleware.HandleServiceError(w, r, err)
		return
	}

	slog.Info("poll updated", "poll_id", pollID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Poll updated"})
}

// ClosePoll handles POST /polls/{id}/close
func (h *PollHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	requesterID := middleware.UserIDFromContext(r.Context())
	if err := h.svc.ClosePoll(r.Context(), pollID, requesterID); err != nil {
		middleware.HandleServiceError(w, r, err)
		return
	}

	slog.Info("poll closed", "poll_id", pollID, "requester_id", requesterID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Poll closed"})
}
