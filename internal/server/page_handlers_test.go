package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"atelier/internal/config"
	"atelier/internal/middleware"
	"atelier/internal/models"
	"atelier/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStudioPage_RedirectsAnonymous(t *testing.T) {
	app := fiber.New()
	s := &Server{config: &config.Config{JWTSecret: "test_secret"}}
	app.Get("/studio", s.OptionalAuth(), middleware.RequireAuth("/login"), s.StudioPage)

	req := httptest.NewRequest(http.MethodGet, "/studio", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?return_to=%2Fstudio", resp.Header.Get("Location"))
}

func TestStudioPage_AuthenticatedPassesThrough(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByID", mock.Anything, uint(42)).
		Return(&models.User{ID: 42, Username: "designer"}, nil)

	app := fiber.New()
	s := &Server{config: &config.Config{JWTSecret: "test_secret"}}
	s.userService = service.NewUserService(mockRepo)
	app.Get("/studio", s.OptionalAuth(), middleware.RequireAuth("/login"), s.StudioPage)

	token, err := s.generateToken(42, "designer")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/studio", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginPage_RedirectsAuthenticatedToReturnPath(t *testing.T) {
	app := fiber.New()
	s := &Server{config: &config.Config{JWTSecret: "test_secret"}}
	app.Get("/login", s.OptionalAuth(), middleware.GuestOnly("/"), s.LoginPage)

	token, err := s.generateToken(42, "designer")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/login?return_to=%2Fstudio", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/studio", resp.Header.Get("Location"))
}

func TestLoginPage_AnonymousAllowed(t *testing.T) {
	app := fiber.New()
	s := &Server{config: &config.Config{JWTSecret: "test_secret"}}
	app.Get("/login", s.OptionalAuth(), middleware.GuestOnly("/"), s.LoginPage)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
