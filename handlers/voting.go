// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/faceoff/middleware"
	"github.com/danielhkuo/faceoff/models"
	"github.com/danielhkuo/faceoff/poll"
)

type VotingHandler struct {
	svc *poll.Service
}

func NewVotingHandler(svc *poll.Service) *VotingHandler {
	return &VotingHandler{svc: svc}
}

// Vote handles POST /polls/{id}/vote
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.OptionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option_id is required")
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	if err := h.svc.RecordVote(r.Context(), pollID, req.OptionID, userID); err != nil {
		middleware.HandleServiceError(w, r, err)
		return
	}

	slog.Info("vote recorded", "poll_id", pollID, "option_id", req.OptionID, "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, models.VoteResponse{
		Result:   true,
		PollID:   pollID,
		OptionID: req.OptionID,
	})
}
