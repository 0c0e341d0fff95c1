package controllers

import (
	"encoding/json"
	"net/http"

	"yatube/app/apperrors"
	"yatube/app/services"
)

// AccountController handles signup and login.
type AccountController struct {
	accounts *services.AccountService
}

// NewAccountController creates a new AccountController
func NewAccountController(accounts *services.AccountService) *AccountController {
	return &AccountController{accounts: accounts}
}

func decodeCredentials(r *http.Request) (services.Credentials, error) {
	var creds services.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		return creds, apperrors.NewFieldError("body", "invalid JSON: "+err.Error())
	}
	return creds, nil
}

// Signup registers a new user.
func (ac *AccountController) Signup(w http.ResponseWriter, r *http.Request) {
	creds, err := decodeCredentials(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	user, err := ac.accounts.Signup(r.Context(), creds)
	if err != nil {
		respondError(w, r, err)
		return
	}
	sendJSON(w, http.StatusCreated, user)
}

// Login issues a bearer token.
func (ac *AccountController) Login(w http.ResponseWriter, r *http.Request) {
	creds, err := decodeCredentials(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	session, err := ac.accounts.Login(r.Context(), creds)
	if err != nil {
		respondError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, session)
}

// LoginPage describes the login form the guard redirects anonymous actors to.
func (ac *AccountController) LoginPage(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"fields": []string{"username", "password"},
		"next":   r.URL.Query().Get("next"),
	})
}
