package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"yatube/app/services"
)

// FollowController handles subscription requests.
type FollowController struct {
	follows *services.FollowService
}

// NewFollowController creates a new FollowController
func NewFollowController(follows *services.FollowService) *FollowController {
	return &FollowController{follows: follows}
}

// Follow subscribes the actor to the author in the path.
func (fc *FollowController) Follow(w http.ResponseWriter, r *http.Request) {
	out, err := fc.follows.Follow(r.Context(), actorOf(r), mux.Vars(r)["username"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOutcome(w, out)
}

// Unfollow removes the actor's subscription to the author in the path.
func (fc *FollowController) Unfollow(w http.ResponseWriter, r *http.Request) {
	out, err := fc.follows.Unfollow(r.Context(), actorOf(r), mux.Vars(r)["username"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOutcome(w, out)
}
