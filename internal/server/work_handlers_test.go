package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"atelier/internal/featureflags"
	"atelier/internal/models"
	"atelier/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newWorkTestApp(workRepo *MockWorkRepository, flags string) *fiber.App {
	app := fiber.New()
	s := &Server{}
	s.workService = service.NewWorkService(workRepo, featureflags.NewManager(flags), noAdmin)

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	app.Post("/works", s.CreateWork)
	app.Delete("/works/:id", s.DeleteWork)
	return app
}

func postWork(t *testing.T, app *fiber.App, body map[string]any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/works", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateWork_MissingTitle(t *testing.T) {
	workRepo := new(MockWorkRepository)
	app := newWorkTestApp(workRepo, "")

	resp := postWork(t, app, map[string]any{
		"title":       "   ",
		"description": "A description of the piece.",
		"images":      []string{"https://cdn.example.com/a.png"},
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Title is required", body["error"])

	workRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateWork_NoImages(t *testing.T) {
	workRepo := new(MockWorkRepository)
	app := newWorkTestApp(workRepo, "")

	resp := postWork(t, app, map[string]any{
		"title":       "Poster series",
		"description": "Three screen-printed posters.",
		"images":      []string{},
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "At least one image is required", body["error"])
}

func TestCreateWork_TruncatesImagesAndDedupesTags(t *testing.T) {
	workRepo := new(MockWorkRepository)
	app := newWorkTestApp(workRepo, "")

	var created *models.Work
	workRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.Work)
			created.ID = 5
		}).Return(nil)
	workRepo.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Work{ID: 5, Title: "Poster series", IsActive: true}, nil)

	images := []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7"}
	resp := postWork(t, app, map[string]any{
		"title":       "Poster series",
		"description": "Three screen-printed posters.",
		"tags":        []string{"print", "Print", "poster"},
		"images":      images,
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, created)
	assert.Len(t, created.Images, 5)
	assert.Len(t, created.Tags, 2)
}

func TestCreateWork_FeatureFlagOff(t *testing.T) {
	workRepo := new(MockWorkRepository)
	app := newWorkTestApp(workRepo, "work_sharing=off")

	resp := postWork(t, app, map[string]any{
		"title":       "Poster series",
		"description": "Three screen-printed posters.",
		"images":      []string{"u1"},
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	workRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeleteWork_NotOwner(t *testing.T) {
	workRepo := new(MockWorkRepository)
	app := newWorkTestApp(workRepo, "")

	workRepo.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Work{ID: 5, UserID: 2, IsActive: true}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/works/5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	workRepo.AssertNotCalled(t, "Deactivate", mock.Anything, uint(5))
}
