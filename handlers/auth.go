package handlers

import (
	"net/http"

	"familyboard/services/auth"
)

// AuthHandler exposes the OAuth flow to the dashboard front end.
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login redirects the whole client to the provider consent screen.
// GET /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	consentURL, err := h.authService.AuthCodeURL()
	if err != nil {
		jsonError(w, "Failed to build consent URL: "+err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, consentURL, http.StatusFound)
}

// Callback receives the provider redirect, exchanges the authorization code
// and sends the client back to the dashboard root, which strips the code
// from the visible navigation state.
// GET /api/auth/callback?code=...&state=...
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		jsonError(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	if err := h.authService.HandleCallback(r.Context(), code, r.URL.Query().Get("state")); err != nil {
		jsonError(w, "Authorization failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// Status reports the current authentication state.
// GET /api/auth/status
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	state := h.authService.EnsureAuthenticated(r.Context())
	writeJSON(w, state)
}
