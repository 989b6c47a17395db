package handlers

import (
	"net/http"

	"github.com/isdelr/movie-catalog-be/internal/auth"
	"github.com/isdelr/movie-catalog-be/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for accounts and tokens.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register handles new account registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := decodeStrict(r, &payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.service.Register(payload.Username, payload.Email, payload.Name, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed to register account")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, account)
}

// Token handles form-encoded logins and issues a bearer token.
func (h *UserHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid form body")
		return
	}
	username := r.PostForm.Get("username")

	_, token, err := h.service.Login(username, r.PostForm.Get("password"))
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("Failed authentication attempt")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// GetMe returns the authenticated account.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve account from context")
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// Deactivate clears the active flag of the authenticated account.
// The next successful login activates it again.
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve account from context")
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	updated, err := h.service.SetActive(account.Username, false)
	if err != nil {
		log.Error().Err(err).Str("username", account.Username).Msg("Failed to deactivate account")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
