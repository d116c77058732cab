package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"yt-curator/internal/auth"
	"yt-curator/internal/middleware"
)

type authRequest struct {
	Action   string `json:"action"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Token    string `json:"token,omitempty"`
}

// Auth handles signup, login, verify and logout in one endpoint, the
// action named in the body.
func (h *Handlers) Auth(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	switch req.Action {
	case "signup":
		token, err := h.auth.Signup(ctx, req.Email, req.Password)
		if err != nil {
			writeAuthError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": token, "email": req.Email})
	case "login":
		token, err := h.auth.Login(ctx, req.Email, req.Password)
		if err != nil {
			writeAuthError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": token, "email": req.Email})
	case "verify":
		token := req.Token
		if token == "" {
			token = middleware.BearerToken(r)
		}
		principal, ok := h.auth.Verify(ctx, token)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]bool{"valid": false})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"valid": true, "email": principal.Email})
	case "logout":
		token := req.Token
		if token == "" {
			token = middleware.BearerToken(r)
		}
		h.auth.Logout(ctx, token)
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrMissingCredentials), errors.Is(err, auth.ErrWeakPassword):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrAccountExists):
		writeError(w, http.StatusConflict, "account already exists")
	case errors.Is(err, auth.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "account not found")
	case errors.Is(err, auth.ErrInvalidPassword):
		writeError(w, http.StatusUnauthorized, "invalid password")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
