package controllers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"

	"yatube/app/logger"
	"yatube/app/models"
)

// MediaSource opens stored uploads.
type MediaSource interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MediaController serves uploaded post images.
type MediaController struct {
	media MediaSource
}

// NewMediaController creates a new MediaController
func NewMediaController(media MediaSource) *MediaController {
	return &MediaController{media: media}
}

// Serve writes the image stored under the key in the path.
func (mc *MediaController) Serve(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if !strings.HasPrefix(key, models.ImagePrefix) {
		sendError(w, http.StatusNotFound, "file not found")
		return
	}

	f, err := mc.media.Open(r.Context(), key)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", mimetype.Detect(data).String())
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(data); err != nil {
		logger.Debug().Err(err).Str("key", key).Msg("failed to write media")
	}
}
