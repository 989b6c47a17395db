package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/isdelr/movie-catalog-be/internal/models"
	"github.com/rs/zerolog/log"
)

// Authorizer resolves a bearer token to an active account.
type Authorizer interface {
	Authorize(token string) (models.Account, error)
}

type contextKey string

// AccountKey is the context key for the authenticated account.
const AccountKey = contextKey("account")

// AccountFromContext returns the account stored by Middleware.
func AccountFromContext(ctx context.Context) (models.Account, bool) {
	account, ok := ctx.Value(AccountKey).(models.Account)
	return account, ok
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Unauthorized writes a 401 with the bearer challenge header.
func Unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeDetail(w, http.StatusUnauthorized, detail)
}

// Middleware protects routes: the caller must present a valid token for an active account.
func Middleware(authorizer Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r.Header.Get("Authorization"))
			if !ok {
				Unauthorized(w, "not authenticated")
				return
			}

			account, err := authorizer.Authorize(token)
			switch {
			case err == nil:
			case IsTokenError(err), errors.Is(err, ErrInvalidCredentials):
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("Rejected bearer token")
				Unauthorized(w, ErrInvalidCredentials.Error())
				return
			case errors.Is(err, ErrInactiveAccount):
				writeDetail(w, http.StatusBadRequest, ErrInactiveAccount.Error())
				return
			default:
				log.Error().Err(err).Msg("Failed to authorize request")
				writeDetail(w, http.StatusInternalServerError, "internal error")
				return
			}

			ctx := context.WithValue(r.Context(), AccountKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
