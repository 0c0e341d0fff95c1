package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"yatube/app/access"
	"yatube/app/apperrors"
	"yatube/app/logger"
	"yatube/app/middleware"
	"yatube/app/pagination"
)

// errorResponse is the body of every non-redirect failure.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func sendRaw(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logger.Debug().Err(err).Msg("failed to write response")
	}
}

func sendError(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, errorResponse{Error: message})
}

// respondError maps a service error onto a status code.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *apperrors.ValidationError
	switch {
	case errors.As(err, &verr):
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, apperrors.ErrResourceNotFound):
		sendError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		sendError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrUnauthenticated):
		middleware.Redirect(w, access.NewGuard("").LoginRedirect(r.URL.RequestURI()))
	default:
		logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		sendError(w, http.StatusInternalServerError, "internal server error")
	}
}

// respondOutcome sends the actor to the view a guarded operation chose.
func respondOutcome(w http.ResponseWriter, out access.Outcome) {
	middleware.Redirect(w, out.Redirect)
}

func pathID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func pageParam(r *http.Request) int {
	return pagination.ParsePage(r.URL.Query().Get("page"))
}

func actorOf(r *http.Request) *access.Actor {
	return access.FromContext(r.Context())
}
