package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/rs/xid"
	"github.com/Renan-Hawladar/OrbitAI/internal/apperror"
	"github.com/Renan-Hawladar/OrbitAI/internal/auth"
	"github.com/Renan-Hawladar/OrbitAI/internal/service"
)

// AuthHandler serves registration, password login, and the Google OAuth
// flow. Tokens are returned in the response body — the client holds them
// and sends them back as a bearer header; the server stores no session.
type AuthHandler struct {
	auths       *service.AuthService
	google      *auth.GoogleProvider // nil when Google login is not configured
	frontendURL string
	logger      *slog.Logger
}

// NewAuthHandler creates an AuthHandler. google may be nil; the routes for
// it are only mounted when it is configured.
func NewAuthHandler(auths *service.AuthService, google *auth.GoogleProvider, frontendURL string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auths:       auths,
		google:      google,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// credentialsRequest is the body for both register and login.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by every successful authentication. The client
// persists access_token and email together; they are the whole session.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Email       string `json:"email"`
}

// HandleRegister creates a password account.
//
// HTTP: POST /api/auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON in request body"))
		return
	}

	result, err := h.auths.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("user registered", slog.String("userID", result.User.ID))
	writeJSON(w, http.StatusCreated, tokenResponse(result))
}

// HandleLogin authenticates a password account.
//
// HTTP: POST /api/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON in request body"))
		return
	}

	result, err := h.auths.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse(result))
}

// HandleGoogleLogin starts the Google OAuth flow.
//
// HTTP: GET /auth/google/login
//
// The random state lives in a short-lived HttpOnly cookie and is verified
// on callback, which ties the callback to a login this server started.
func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10 minutes
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.google.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGoogleCallback completes the OAuth flow: verify state, exchange the
// code, upsert the user, then redirect to the frontend with the token in
// the URL fragment (fragments are not sent to servers, so the token never
// lands in access logs).
//
// HTTP: GET /auth/google/callback?code=xxx&state=yyy
func (h *AuthHandler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("oauth callback: state check failed")
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}

	// Single-use: clear the state cookie immediately.
	http.SetCookie(w, &http.Cookie{
		Name:   "oauth_state",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("oauth callback: user denied authorization", slog.String("error", errParam))
		http.Redirect(w, r, h.frontendURL+"/?auth=denied", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing OAuth code", http.StatusBadRequest)
		return
	}

	gUser, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("oauth callback: Google exchange failed", slog.String("error", err.Error()))
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	result, err := h.auths.LoginOrRegisterGoogle(r.Context(), gUser)
	if err != nil {
		h.logger.Error("oauth callback: upsert failed",
			slog.String("googleID", gUser.Sub),
			slog.String("error", err.Error()),
		)
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	h.logger.Info("user authenticated via Google", slog.String("userID", result.User.ID))

	fragment := url.Values{}
	fragment.Set("access_token", result.Token)
	fragment.Set("email", result.User.Email)
	http.Redirect(w, r, h.frontendURL+"/#"+fragment.Encode(), http.StatusSeeOther)
}

func tokenResponse(result *service.AuthResult) TokenResponse {
	return TokenResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
		Email:       result.User.Email,
	}
}
