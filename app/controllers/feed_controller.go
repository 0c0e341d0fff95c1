package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"yatube/app/cache"
	"yatube/app/services"
)

// FeedController serves the read-only post listings.
type FeedController struct {
	feed  *services.FeedService
	pages *cache.PageCache
}

// NewFeedController creates a new FeedController. pages may be nil to serve
// the index uncached.
func NewFeedController(feed *services.FeedService, pages *cache.PageCache) *FeedController {
	return &FeedController{feed: feed, pages: pages}
}

// Index serves the global feed. The rendered page is shared by every visitor
// for one cache window, whatever page they ask for.
func (fc *FeedController) Index(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	render := func() ([]byte, error) {
		feed, err := fc.feed.Global(r.Context(), page)
		if err != nil {
			return nil, err
		}
		return json.Marshal(feed)
	}

	var (
		body []byte
		err  error
	)
	if fc.pages != nil {
		body, err = fc.pages.Fetch(cache.IndexPageKey, render)
	} else {
		body, err = render()
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	sendRaw(w, body)
}

// Group serves one group's feed.
func (fc *FeedController) Group(w http.ResponseWriter, r *http.Request) {
	feed, err := fc.feed.Group(r.Context(), mux.Vars(r)["slug"], pageParam(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, feed)
}

// Profile serves one author's feed.
func (fc *FeedController) Profile(w http.ResponseWriter, r *http.Request) {
	feed, err := fc.feed.Profile(r.Context(), actorOf(r), mux.Vars(r)["username"], pageParam(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, feed)
}

// Followed serves the posts of the authors the actor follows.
func (fc *FeedController) Followed(w http.ResponseWriter, r *http.Request) {
	feed, out, err := fc.feed.Followed(r.Context(), actorOf(r), pageParam(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !out.Allowed {
		respondOutcome(w, out)
		return
	}
	sendJSON(w, http.StatusOK, feed)
}

type postDetailResponse struct {
	*services.PostDetail
	CanEdit bool `json:"can_edit"`
}

// PostDetail serves a post with its comments.
func (fc *FeedController) PostDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		sendError(w, http.StatusNotFound, "post not found")
		return
	}

	detail, err := fc.feed.PostDetail(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := postDetailResponse{PostDetail: detail}
	if actor := actorOf(r); !actor.IsAnonymous() {
		resp.CanEdit = detail.Post.IsAuthoredBy(actor.ID)
	}
	sendJSON(w, http.StatusOK, resp)
}
