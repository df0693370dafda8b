package server

import (
	"bytes"
	"context"
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

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Comment, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint, currentUserID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, postID, currentUserID)
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListReplies(ctx context.Context, parentID uint, currentUserID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, parentID, currentUserID)
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByAuthor(ctx context.Context, userID uint, limit, offset int) ([]*models.Comment, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Deactivate(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepository) IsLiked(ctx context.Context, userID, commentID uint) (bool, error) {
	args := m.Called(ctx, userID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentRepository) Like(ctx context.Context, userID, commentID uint) error {
	args := m.Called(ctx, userID, commentID)
	return args.Error(0)
}

func (m *MockCommentRepository) Unlike(ctx context.Context, userID, commentID uint) error {
	args := m.Called(ctx, userID, commentID)
	return args.Error(0)
}

// newCommentTestApp wires a fiber app with an authenticated user and the
// comment handlers backed by the given mocks.
func newCommentTestApp(commentRepo *MockCommentRepository, postRepo *MockPostRepository, flags string) (*fiber.App, *Server) {
	app := fiber.New()
	s := &Server{featureFlags: featureflags.NewManager(flags)}
	s.commentService = service.NewCommentService(commentRepo, postRepo, nil, noAdmin)

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	return app, s
}

func postComment(t *testing.T, app *fiber.App, path string, body map[string]any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateComment_Success(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	app, s := newCommentTestApp(commentRepo, postRepo, "")
	app.Post("/posts/:id/comments", s.CreateComment)

	postRepo.On("GetByID", mock.Anything, uint(5), uint(0)).
		Return(&models.Post{ID: 5, UserID: 2, IsActive: true}, nil)
	commentRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.PostID == 5 && c.UserID == 1 && c.Content == "Lovely use of negative space."
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Comment).ID = 7
	})
	commentRepo.On("GetByID", mock.Anything, uint(7), uint(1)).
		Return(&models.Comment{ID: 7, PostID: 5, UserID: 1, Content: "Lovely use of negative space.", IsActive: true}, nil)

	resp := postComment(t, app, "/posts/5/comments", map[string]any{
		"content": "Lovely use of negative space.",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var got models.Comment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, uint(7), got.ID)
	commentRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestCreateComment_RemovedPost(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	app, s := newCommentTestApp(commentRepo, postRepo, "")
	app.Post("/posts/:id/comments", s.CreateComment)

	postRepo.On("GetByID", mock.Anything, uint(5), uint(0)).
		Return(&models.Post{ID: 5, UserID: 2, IsActive: false}, nil)

	resp := postComment(t, app, "/posts/5/comments", map[string]any{
		"content": "Too late to the thread.",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateComment_ReplyOnOtherPost(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	app, s := newCommentTestApp(commentRepo, postRepo, "")
	app.Post("/posts/:id/comments", s.CreateComment)

	postRepo.On("GetByID", mock.Anything, uint(5), uint(0)).
		Return(&models.Post{ID: 5, UserID: 2, IsActive: true}, nil)
	commentRepo.On("GetByID", mock.Anything, uint(9), uint(0)).
		Return(&models.Comment{ID: 9, PostID: 6, IsActive: true}, nil)

	resp := postComment(t, app, "/posts/5/comments", map[string]any{
		"content":           "Replying across threads.",
		"parent_comment_id": 9,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateComment_RepliesFlagOff(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	app, s := newCommentTestApp(commentRepo, postRepo, "nested_replies=off")
	app.Post("/posts/:id/comments", s.CreateComment)

	resp := postComment(t, app, "/posts/5/comments", map[string]any{
		"content":           "A reply while replies are paused.",
		"parent_comment_id": 9,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	// top-level comments are unaffected by the reply gate
	postRepo.On("GetByID", mock.Anything, uint(5), uint(0)).
		Return(&models.Post{ID: 5, UserID: 2, IsActive: true}, nil)
	commentRepo.On("Create", mock.Anything, mock.Anything).Return(nil).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Comment).ID = 3 })
	commentRepo.On("GetByID", mock.Anything, uint(3), uint(1)).
		Return(&models.Comment{ID: 3, PostID: 5, UserID: 1, IsActive: true}, nil)

	resp = postComment(t, app, "/posts/5/comments", map[string]any{
		"content": "A plain top-level comment.",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestLikeComment_Toggles(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	app, s := newCommentTestApp(commentRepo, postRepo, "")
	app.Post("/posts/:id/comments/:commentId/like", s.LikeComment)

	commentRepo.On("GetByID", mock.Anything, uint(7), uint(1)).
		Return(&models.Comment{ID: 7, PostID: 5, IsActive: true}, nil)
	commentRepo.On("IsLiked", mock.Anything, uint(1), uint(7)).Return(false, nil)
	commentRepo.On("Like", mock.Anything, uint(1), uint(7)).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/posts/5/comments/7/like", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	commentRepo.AssertCalled(t, "Like", mock.Anything, uint(1), uint(7))
	commentRepo.AssertNotCalled(t, "Unlike", mock.Anything, mock.Anything, mock.Anything)
}
