package repository

import (
	"context"
	"regexp"
	"testing"

	"atelier/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCommentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	comment := &models.Comment{Content: "Nice work", PostID: 1, UserID: 2}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, comment)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT comments\.\*, .+ FROM "comments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	comment, err := repo.GetByID(ctx, 42, 0)
	assert.Error(t, err)
	assert.Nil(t, comment)

	var appErr *models.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Deactivate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "comments" SET "is_active"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Deactivate(ctx, 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Like_Idempotent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO comment_likes`).
		WithArgs(2, 1).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO comment_likes`).
		WithArgs(2, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Like(ctx, 2, 1))
	assert.NoError(t, repo.Like(ctx, 2, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
