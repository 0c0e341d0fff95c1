package controllers

import (
	"encoding/json"
	"mime"
	"net/http"

	"yatube/app/apperrors"
	"yatube/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	comments *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(comments *services.CommentService) *CommentController {
	return &CommentController{comments: comments}
}

// Create handles adding a comment to a post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		sendError(w, http.StatusNotFound, "post not found")
		return
	}

	var text string
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var payload struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			respondError(w, r, apperrors.NewFieldError("body", "invalid JSON: "+err.Error()))
			return
		}
		text = payload.Text
	} else {
		text = r.FormValue("text")
	}

	_, out, err := cc.comments.Create(r.Context(), actorOf(r), postID, text)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOutcome(w, out)
}
