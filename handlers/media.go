// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/faceoff/media"
	"github.com/danielhkuo/faceoff/middleware"
	"github.com/danielhkuo/faceoff/models"
)

// Max upload size: 32 MiB
const maxUploadBytes = 32 << 20

type MediaHandler struct {
	media *media.Store
}

func NewMediaHandler(m *media.Store) *MediaHandler {
	return &MediaHandler{media: m}
}

// Upload handles POST /media/upload
// Accepts a multipart form with a "file" part and a "media_type" field, and
// returns the media id plus the URL a poll option can reference.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	kind := r.FormValue("media_type")
	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "No file part")
		return
	}
	defer file.Close()

	m, url, err := h.media.Save(r.Context(), kind, header.Filename, file)
	if err != nil {
		middleware.HandleServiceError(w, r, err)
		return
	}

	slog.Info("media uploaded", "media_id", m.ID, "media_type", kind)

	middleware.JSONResponse(w, http.StatusOK, models.UploadMediaResponse{
		MediaID: m.ID,
		URL:     url,
	})
}
