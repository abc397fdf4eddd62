package repository

import (
	"context"
	"regexp"
	"testing"

	"forkful/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRatingRepository_Upsert(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRatingRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT ("item_id") DO UPDATE SET "average"=`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Upsert(ctx, &models.Rating{ItemID: 4, Average: 4.2, Count: 17})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_GetByItemID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRatingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ratings" WHERE item_id = $1`)).
			WithArgs(4, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "item_id", "average", "count"}).
				AddRow(1, 4, 4.2, 17))

		rating, err := repo.GetByItemID(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, uint(4), rating.ItemID)
		assert.InDelta(t, 4.2, rating.Average, 0.001)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ratings"`)).
			WillReturnError(gorm.ErrRecordNotFound)

		rating, err := repo.GetByItemID(ctx, 99)
		assert.Nil(t, rating)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
