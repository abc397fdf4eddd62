package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"forkful/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_UpdateWithUser(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	profile := &models.Profile{
		ID:       1,
		UserID:   2,
		Image:    "abc.png",
		Location: "Lisbon",
		User: models.User{
			ID:       2,
			Username: "renamed",
			Email:    "renamed@example.com",
		},
	}

	t.Run("User And Profile Saved In One Transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "profiles" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdateWithUser(ctx, profile)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Profile Failure Rolls Back User Update", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "profiles" SET`)).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := repo.UpdateWithUser(ctx, profile)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Email Becomes Validation Error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET`)).
			WillReturnError(errors.New(`duplicate key value violates unique constraint "idx_users_email"`))
		mock.ExpectRollback()

		err := repo.UpdateWithUser(ctx, profile)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProfileRepository_GetByUserID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "user_id", "image", "location"}).
		AddRow(1, 2, "profilepic.jpg", "")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "profiles" WHERE user_id = $1`)).
		WithArgs(2, 1).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(2, "bob"))

	profile, err := repo.GetByUserID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, uint(1), profile.ID)
	assert.Equal(t, "bob", profile.User.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
