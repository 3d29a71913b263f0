package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carelink-backend/config"
	"carelink-backend/internal/domain/entity"
	"carelink-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokens struct {
	valid bool
	err   error
}

func (s stubTokens) IsTokenValid(ctx context.Context, subjectID uuid.UUID, tokenID string) (bool, error) {
	return s.valid, s.err
}

func newJWT() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{Secret: "test", AccessExpiry: time.Minute, RefreshExpiry: time.Hour})
}

func echoCaller(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := GetUserEmailFromContext(r.Context())
		require.True(t, ok)
		w.Header().Set("X-Caller", email)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticate(t *testing.T) {
	svc := newJWT()
	access, _, err := svc.GenerateAccessToken(uuid.New(), "dr@example.com", entity.RoleDoctor)
	require.NoError(t, err)
	refresh, _, err := svc.GenerateRefreshToken(uuid.New(), "dr@example.com", entity.RoleDoctor)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		tokens stubTokens
		status int
	}{
		{"valid token", "Bearer " + access, stubTokens{valid: true}, http.StatusNoContent},
		{"missing header", "", stubTokens{valid: true}, http.StatusUnauthorized},
		{"wrong scheme", "Token " + access, stubTokens{valid: true}, http.StatusUnauthorized},
		{"garbage token", "Bearer abc", stubTokens{valid: true}, http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, stubTokens{valid: true}, http.StatusUnauthorized},
		{"revoked", "Bearer " + access, stubTokens{valid: false}, http.StatusUnauthorized},
		{"store down", "Bearer " + access, stubTokens{err: errors.New("redis down")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthMiddleware(svc, tt.tokens).Authenticate(echoCaller(t))

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusNoContent {
				assert.Equal(t, "dr@example.com", rec.Header().Get("X-Caller"))
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	serve := func(role string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/doctors/reports", nil)
		if role != "" {
			req = req.WithContext(context.WithValue(req.Context(), RoleKey, role))
		}
		rec := httptest.NewRecorder()
		RequireDoctor(ok).ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, serve(entity.RoleDoctor))
	assert.Equal(t, http.StatusForbidden, serve(entity.RolePatient))
	assert.Equal(t, http.StatusUnauthorized, serve(""))
}
