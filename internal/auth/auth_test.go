package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestJWT() *JWTService {
	return NewJWTService(&JWTConfig{SecretKey: []byte("test-secret"), Issuer: "test"})
}

func TestJWTService_RoundTrip(t *testing.T) {
	s := newTestJWT()

	token, err := s.GenerateToken(42, time.Minute)
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
}

func TestJWTService_Rejects(t *testing.T) {
	s := newTestJWT()

	expired, err := s.GenerateToken(1, -time.Minute)
	require.NoError(t, err)
	_, err = s.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrExpiredToken)

	other := NewJWTService(&JWTConfig{SecretKey: []byte("other"), Issuer: "test"})
	forged, err := other.GenerateToken(1, time.Minute)
	require.NoError(t, err)
	_, err = s.ValidateToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer := NewJWTService(&JWTConfig{SecretKey: []byte("test-secret"), Issuer: "someone-else"})
	token, err := wrongIssuer.GenerateToken(1, time.Minute)
	require.NoError(t, err)
	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.ValidateToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractTokenFromBearer(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromBearer("Bearer abc"))
	assert.Equal(t, "abc", ExtractTokenFromBearer("bearer abc"))
	assert.Equal(t, "", ExtractTokenFromBearer("Basic abc"))
	assert.Equal(t, "", ExtractTokenFromBearer("Bearer "))
}

func TestMiddleware_RequireAuth(t *testing.T) {
	s := newTestJWT()
	m := NewMiddleware(s, nil, zap.NewNop())

	var gotID int64
	h := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Authorization required"}`, rec.Body.String())

	token, err := s.GenerateToken(7, time.Minute)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotID)
}

func TestMiddleware_OptionalAuth(t *testing.T) {
	s := newTestJWT()
	m := NewMiddleware(s, nil, zap.NewNop())

	var caller *int64
	h := m.OptionalAuth(func(w http.ResponseWriter, r *http.Request) {
		caller = CallerID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	h(httptest.NewRecorder(), req)
	assert.Nil(t, caller)

	token, err := s.GenerateToken(9, time.Minute)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	h(httptest.NewRecorder(), req)
	require.NotNil(t, caller)
	assert.Equal(t, int64(9), *caller)
}

func TestMiddleware_CORS(t *testing.T) {
	m := NewMiddleware(newTestJWT(), []string{"https://aidir.example"}, zap.NewNop())
	h := m.CORS(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/badge/click", nil)
	req.Header.Set("Origin", "https://aidir.example")
	rec := httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://aidir.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPost, "/api/badge/click", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
