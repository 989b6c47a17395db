package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/isdelr/movie-catalog-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthorizer struct {
	account models.Account
	err     error
	gotTok  string
}

func (f *fakeAuthorizer) Authorize(token string) (models.Account, error) {
	f.gotTok = token
	return f.account, f.err
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi", ok: true},
		{header: "bearer abc", want: "abc", ok: true},
		{header: "  Bearer   abc  ", want: "abc", ok: true},
		{header: "", ok: false},
		{header: "Bearer", ok: false},
		{header: "Bearer ", ok: false},
		{header: "Basic dXNlcjpwdw==", ok: false},
		{header: "abc.def.ghi", ok: false},
	}
	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, "header %q", tt.header)
		assert.Equal(t, tt.want, got, "header %q", tt.header)
	}
}

func serve(t *testing.T, authorizer Authorizer, header string) (*httptest.ResponseRecorder, *models.Account) {
	t.Helper()
	var seen *models.Account
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, ok := AccountFromContext(r.Context())
		require.True(t, ok)
		seen = &account
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/movies", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	Middleware(authorizer)(next).ServeHTTP(rec, req)
	return rec, seen
}

func TestMiddleware_Authorized(t *testing.T) {
	authorizer := &fakeAuthorizer{account: models.Account{Username: "ana", Active: true}}
	rec, seen := serve(t, authorizer, "Bearer tok")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "ana", seen.Username)
	assert.Equal(t, "tok", authorizer.gotTok)
}

func TestMiddleware_MissingHeader(t *testing.T) {
	authorizer := &fakeAuthorizer{}
	rec, seen := serve(t, authorizer, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	assert.Nil(t, seen)
	assert.Empty(t, authorizer.gotTok)
}

func TestMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "expired", err: ErrExpired, wantStatus: http.StatusUnauthorized, wantBody: "invalid credentials"},
		{name: "signature", err: ErrInvalidSignature, wantStatus: http.StatusUnauthorized, wantBody: "invalid credentials"},
		{name: "malformed", err: ErrMalformed, wantStatus: http.StatusUnauthorized, wantBody: "invalid credentials"},
		{name: "unknown account", err: ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantBody: "invalid credentials"},
		{name: "inactive", err: ErrInactiveAccount, wantStatus: http.StatusBadRequest, wantBody: "inactive account"},
		{name: "unexpected", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantBody: "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, seen := serve(t, &fakeAuthorizer{err: tt.err}, "Bearer tok")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.Nil(t, seen)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
