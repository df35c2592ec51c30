package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/Konduru-Hemesh/secure-password-demo/internal/logger"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/mock"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/service"
	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

func TestRoutes_VaultRequiresAuthentication(t *testing.T) {
	ctrl := gomock.NewController(t)
	authService := mock.NewMockAuthService(ctrl)
	vaultService := mock.NewMockVaultService(ctrl)

	h := NewHandler(&service.Services{
		AuthService:  authService,
		VaultService: vaultService,
	}, logger.Nop())
	router := h.Init()

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/vault"},
		{http.MethodPost, "/api/vault/sync"},
	} {
		r := httptest.NewRequest(route.method, route.path, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestRoutes_AuthenticatedVaultAccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	authService := mock.NewMockAuthService(ctrl)
	vaultService := mock.NewMockVaultService(ctrl)

	authService.EXPECT().ParseToken(gomock.Any(), "valid-token").
		Return(models.Token{UserID: 42}, nil)
	vaultService.EXPECT().GetVault(gomock.Any(), int64(42)).
		Return(models.Vault{UserID: 42, VaultVersion: 0, Entries: []models.VaultEntry{}}, nil)

	h := NewHandler(&service.Services{
		AuthService:  authService,
		VaultService: vaultService,
	}, logger.Nop())
	router := h.Init()

	r := httptest.NewRequest(http.MethodGet, "/api/vault", nil)
	r.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
}
