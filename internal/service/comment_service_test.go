package service

import (
	"context"
	"strings"
	"testing"

	"forkful/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listFn       func(context.Context, int, int) ([]*models.Comment, error)
	listByItemFn func(context.Context, uint) ([]*models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Comment, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *commentRepoStub) ListByItem(ctx context.Context, itemID uint) ([]*models.Comment, error) {
	return s.listByItemFn(ctx, itemID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listFn:       func(_ context.Context, _, _ int) ([]*models.Comment, error) { return nil, nil },
		listByItemFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

func TestCommentService_CreateComment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty text rejected", func(t *testing.T) {
		svc := NewCommentService(noopCommentRepo(), noopItemRepo())
		comment, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, ItemID: 2, Text: "   "})
		assert.Nil(t, comment)
		assertValidationError(t, err)
	})

	t.Run("text too long rejected", func(t *testing.T) {
		svc := NewCommentService(noopCommentRepo(), noopItemRepo())
		comment, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, ItemID: 2, Text: strings.Repeat("x", 2001)})
		assert.Nil(t, comment)
		assertValidationError(t, err)
	})

	t.Run("missing recipe surfaces not found", func(t *testing.T) {
		itemRepo := noopItemRepo()
		itemRepo.getByIDFn = func(_ context.Context, id uint) (*models.Item, error) {
			return nil, models.NewNotFoundError("Item", id)
		}
		svc := NewCommentService(noopCommentRepo(), itemRepo)
		comment, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, ItemID: 99, Text: "tasty"})
		assert.Nil(t, comment)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("trims text and saves", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.createFn = func(_ context.Context, comment *models.Comment) error {
			comment.ID = 7
			return nil
		}
		svc := NewCommentService(commentRepo, noopItemRepo())
		comment, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, ItemID: 2, Text: "  tasty  "})
		require.NoError(t, err)
		assert.Equal(t, uint(7), comment.ID)
		assert.Equal(t, "tasty", comment.Text)
	})
}

func TestCommentService_DeleteComment_Ownership(t *testing.T) {
	t.Parallel()

	deleted := false
	repo := noopCommentRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 3, ItemID: 2, Text: "mine"}, nil
	}
	repo.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}
	svc := NewCommentService(repo, noopItemRepo())
	ctx := context.Background()

	err := svc.DeleteComment(ctx, DeleteCommentInput{UserID: 4, CommentID: 9})
	assertForbiddenError(t, err)
	assert.False(t, deleted)

	err = svc.DeleteComment(ctx, DeleteCommentInput{UserID: 3, CommentID: 9})
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestCommentService_UpdateComment_Ownership(t *testing.T) {
	t.Parallel()

	repo := noopCommentRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 3, Text: "original"}, nil
	}
	svc := NewCommentService(repo, noopItemRepo())
	ctx := context.Background()

	comment, err := svc.UpdateComment(ctx, UpdateCommentInput{UserID: 4, CommentID: 9, Text: "stolen"})
	assert.Nil(t, comment)
	assertForbiddenError(t, err)

	comment, err = svc.UpdateComment(ctx, UpdateCommentInput{UserID: 3, CommentID: 9, Text: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", comment.Text)
}
