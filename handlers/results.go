// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/faceoff/middleware"
	"github.com/danielhkuo/faceoff/poll"
)

type ResultsHandler struct {
	svc *poll.Service
}

func NewResultsHandler(svc *poll.Service) *ResultsHandler {
	return &ResultsHandler{svc: svc}
}

// GetResults handles GET /polls/{id}/results
// Results are sealed until the poll is closed.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	view, err := h.svc.GetResults(r.Context(), pollID)
	if err != nil {
		middleware.HandleServiceError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}
