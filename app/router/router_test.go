package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frame-storefront/models"
	"frame-storefront/service"
)

type stubTokens struct{}

func (stubTokens) ParseToken(token string) (*service.Claims, error) {
	if token == "user-token" {
		return &service.Claims{UserID: "u-1", Role: models.RoleUser}, nil
	}
	return nil, service.ErrInvalidToken
}

func TestSetupRoutes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "users"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users", "a.jpg"), []byte("jpeg"), 0644))

	handler := SetupRoutes(&Controllers{}, Options{Tokens: stubTokens{}, StaticDir: dir})

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"ping", http.MethodGet, "/ping", "", http.StatusOK},
		{"static upload", http.MethodGet, UploadsPath + "/users/a.jpg", "", http.StatusOK},
		{"cart needs auth", http.MethodGet, "/cart", "", http.StatusUnauthorized},
		{"admin needs auth", http.MethodGet, "/admin/coupons", "", http.StatusUnauthorized},
		{"admin needs role", http.MethodGet, "/admin/coupons", "user-token", http.StatusForbidden},
		{"report needs role", http.MethodGet, "/admin/reports/frame-catalog", "user-token", http.StatusForbidden},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound},
		{"wrong method", http.MethodPost, "/ping", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
