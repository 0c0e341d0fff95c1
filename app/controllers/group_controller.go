package controllers

import (
	"net/http"

	"yatube/app/services"
)

// GroupController lists communities.
type GroupController struct {
	groups *services.GroupService
}

// NewGroupController creates a new GroupController
func NewGroupController(groups *services.GroupService) *GroupController {
	return &GroupController{groups: groups}
}

// List serves every group.
func (gc *GroupController) List(w http.ResponseWriter, r *http.Request) {
	groups, err := gc.groups.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"groups": groups})
}
