package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Konduru-Hemesh/secure-password-demo/internal/logger"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/mock"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/service"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/store"
	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

func newAuthHandler(authService service.AuthService) *Handler {
	return &Handler{
		services: &service.Services{
			AuthService: authService,
		},
		logger: logger.Nop(),
	}
}

func TestRegister_SuccessSetsBearerToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	authService := mock.NewMockAuthService(ctrl)

	user := models.User{Login: "alice", Password: "secret"}
	registered := models.User{UserID: 1, Login: "alice"}

	authService.EXPECT().RegisterUser(gomock.Any(), user).Return(registered, nil)
	authService.EXPECT().CreateToken(gomock.Any(), registered).
		Return(models.Token{UserID: 1, SignedString: "signed-jwt"}, nil)

	h := newAuthHandler(authService)

	body, err := json.Marshal(user)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.register(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bearer signed-jwt", w.Header().Get("Authorization"))
}

func TestRegister_DuplicateLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	authService := mock.NewMockAuthService(ctrl)

	authService.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrLoginAlreadyExists)

	h := newAuthHandler(authService)

	body, err := json.Marshal(models.User{Login: "alice", Password: "secret"})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.register(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	authService := mock.NewMockAuthService(ctrl)

	h := newAuthHandler(authService)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("{")))
	w := httptest.NewRecorder()

	h.register(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_MissingCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	authService := mock.NewMockAuthService(ctrl)

	authService.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, service.ErrInvalidDataProvided)

	h := newAuthHandler(authService)

	body, err := json.Marshal(models.User{Login: "alice"})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.register(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_SuccessSetsBearerToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	authService := mock.NewMockAuthService(ctrl)

	user := models.User{Login: "alice", Password: "secret"}
	found := models.User{UserID: 1, Login: "alice"}

	authService.EXPECT().Login(gomock.Any(), user).Return(found, nil)
	authService.EXPECT().CreateToken(gomock.Any(), found).
		Return(models.Token{UserID: 1, SignedString: "signed-jwt"}, nil)

	h := newAuthHandler(authService)

	body, err := json.Marshal(user)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.login(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bearer signed-jwt", w.Header().Get("Authorization"))
}

func TestLogin_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	authService := mock.NewMockAuthService(ctrl)

	authService.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.User{}, service.ErrWrongPassword)

	h := newAuthHandler(authService)

	body, err := json.Marshal(models.User{Login: "alice", Password: "wrong"})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.login(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	authService := mock.NewMockAuthService(ctrl)

	authService.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrNoUserWasFound)

	h := newAuthHandler(authService)

	body, err := json.Marshal(models.User{Login: "bob", Password: "secret"})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.login(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
