package handler

import (
	"fmt"
	"html"
	"net/http"

	"golang.org/x/oauth2"
)

// OAuthHandler serves the one-time OAuth bootstrap flow used to obtain
// a refresh token for the OAuth credential mode.
type OAuthHandler struct {
	oauthConfig *oauth2.Config
}

// NewOAuthHandler creates a new OAuth handler. oauthConfig may be nil
// when no OAuth client is configured.
func NewOAuthHandler(oauthConfig *oauth2.Config) *OAuthHandler {
	return &OAuthHandler{oauthConfig: oauthConfig}
}

// AuthURL handles GET /api/drive/auth-url
func (h *OAuthHandler) AuthURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.oauthConfig == nil || h.oauthConfig.ClientID == "" {
		SendError(w, "Google OAuth not configured", http.StatusServiceUnavailable)
		return
	}

	// Offline access with forced consent, so Google always hands back a
	// refresh token.
	url := h.oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	SendJSON(w, http.StatusOK, map[string]string{"authUrl": url})
}

// Callback handles GET /api/drive/oauth2callback?code=
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.oauthConfig == nil || h.oauthConfig.ClientID == "" {
		SendError(w, "Google OAuth not configured", http.StatusServiceUnavailable)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		SendError(w, "Authorization code is required", http.StatusBadRequest)
		return
	}

	token, err := h.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		SendError(w, "Failed to exchange authorization code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, callbackPage, html.EscapeString(token.RefreshToken))
}

const callbackPage = `<!DOCTYPE html>
<html>
<head><title>Authorization complete</title></head>
<body>
  <h1>Authorization complete</h1>
  <p>Set this refresh token as <code>GOOGLE_REFRESH_TOKEN</code> and restart the server:</p>
  <pre>%s</pre>
</body>
</html>
`
