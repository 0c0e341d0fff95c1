package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"yatube/app/apperrors"
	"yatube/app/logger"
	"yatube/app/services"
)

// maxFormMemory bounds the in-memory part of a multipart upload.
const maxFormMemory = 32 << 20

// ImageStore stores uploaded post images.
type ImageStore interface {
	SaveImage(ctx context.Context, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// PostController handles HTTP requests for posts
type PostController struct {
	posts  *services.PostService
	images ImageStore
}

// NewPostController creates a new PostController. images may be nil, in which
// case uploads are rejected.
func NewPostController(posts *services.PostService, images ImageStore) *PostController {
	return &PostController{posts: posts, images: images}
}

type postPayload struct {
	Text  string `json:"text"`
	Group *uint  `json:"group"`
}

// parseInput reads a post form from JSON, a urlencoded form or a multipart
// form carrying an image. A stored image key is returned in the input.
func (pc *PostController) parseInput(r *http.Request) (services.PostInput, error) {
	var in services.PostInput

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		var p postPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			return in, apperrors.NewFieldError("body", "invalid JSON: "+err.Error())
		}
		in.Text, in.GroupID = p.Text, p.Group
		return in, nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return in, apperrors.NewFieldError("body", "invalid form: "+err.Error())
		}

	default:
		if err := r.ParseForm(); err != nil {
			return in, apperrors.NewFieldError("body", "invalid form: "+err.Error())
		}
	}

	in.Text = r.FormValue("text")
	if raw := strings.TrimSpace(r.FormValue("group")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return in, apperrors.NewFieldError("group", "select a valid choice")
		}
		gid := uint(id)
		in.GroupID = &gid
	}

	if r.MultipartForm == nil {
		return in, nil
	}
	file, _, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil
	}
	if err != nil {
		return in, apperrors.NewFieldError("image", "upload failed")
	}
	defer file.Close()

	if pc.images == nil {
		return in, apperrors.NewFieldError("image", "uploads are disabled")
	}
	key, err := pc.images.SaveImage(r.Context(), file)
	if err != nil {
		return in, err
	}
	in.Image = key
	return in, nil
}

// discard removes an uploaded image the post did not end up keeping.
func (pc *PostController) discard(ctx context.Context, key string) {
	if key == "" || pc.images == nil {
		return
	}
	if err := pc.images.Delete(ctx, key); err != nil {
		logger.Warn().Err(err).Str("image", key).Msg("failed to discard upload")
	}
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	in, err := pc.parseInput(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	_, out, err := pc.posts.Create(r.Context(), actorOf(r), in)
	if err != nil || !out.Allowed {
		pc.discard(r.Context(), in.Image)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOutcome(w, out)
}

// Edit handles editing an existing post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		sendError(w, http.StatusNotFound, "post not found")
		return
	}

	in, err := pc.parseInput(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	_, out, err := pc.posts.Edit(r.Context(), actorOf(r), id, in)
	if err != nil || !out.Allowed {
		pc.discard(r.Context(), in.Image)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOutcome(w, out)
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		sendError(w, http.StatusNotFound, "post not found")
		return
	}

	out, err := pc.posts.Delete(r.Context(), actorOf(r), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOutcome(w, out)
}
