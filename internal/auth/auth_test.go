package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"task-manager/internal/logging"
	"task-manager/pkg/apperr"
	"task-manager/pkg/user"
)

var testHasher = Hasher{Cost: bcrypt.MinCost}

func TestHasher(t *testing.T) {
	digest, err := testHasher.Hash("qwerty")
	require.NoError(t, err)
	assert.NotEqual(t, "qwerty", digest)
	assert.True(t, testHasher.Compare(digest, "qwerty"))
	assert.False(t, testHasher.Compare(digest, "qwertz"))
}

func TestTokensRoundTrip(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	raw, err := tokens.Issue(Principal{UserID: 4, Email: "a@example.com"})
	require.NoError(t, err)

	p, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, Principal{UserID: 4, Email: "a@example.com"}, p)
	assert.Equal(t, "a@example.com", p.String())
}

func TestTokensRejects(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	raw, err := tokens.Issue(Principal{UserID: 4, Email: "a@example.com"})
	require.NoError(t, err)

	other := NewTokens("other", time.Hour)
	_, err = other.Verify(raw)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized), "wrong secret")

	later := NewTokens("secret", time.Hour)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = later.Verify(raw)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized), "expired")

	_, err = tokens.Verify("not-a-jwt")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized), "garbage")
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	users := user.NewMemStore()
	digest, err := testHasher.Hash("qwerty")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, &user.User{Email: "hexlet@example.com", PasswordDigest: digest}))

	tokens := NewTokens("secret", time.Hour)
	a := NewAuthenticator(users, testHasher, tokens, logging.Discard())

	raw, err := a.Login(ctx, "hexlet@example.com", "qwerty")
	require.NoError(t, err)
	p, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "hexlet@example.com", p.Email)

	_, err = a.Login(ctx, "hexlet@example.com", "wrong")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	_, err = a.Login(ctx, "nobody@example.com", "qwerty")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestMiddleware(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	raw, err := tokens.Issue(Principal{UserID: 1, Email: "a@example.com"})
	require.NoError(t, err)

	var seen Principal
	h := Middleware(tokens, logging.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = PrincipalFrom(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer abc", http.StatusUnauthorized},
		{"ok", "Bearer " + raw, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
	assert.Equal(t, int64(1), seen.UserID)
}
