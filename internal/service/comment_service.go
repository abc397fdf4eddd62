package service

import (
	"context"
	"strings"

	"forkful/internal/authz"
	"forkful/internal/models"
	"forkful/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	itemRepo    repository.ItemRepository
}

type CreateCommentInput struct {
	UserID uint
	ItemID uint
	Text   string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Text      string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(commentRepo repository.CommentRepository, itemRepo repository.ItemRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, itemRepo: itemRepo}
}

const maxCommentLen = 2000

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	// The target recipe must exist; this also surfaces NOT_FOUND before
	// a foreign key violation would.
	if _, err := s.itemRepo.GetByID(ctx, in.ItemID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID: in.UserID,
		ItemID: in.ItemID,
		Text:   text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, limit, offset int) ([]*models.Comment, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.commentRepo.List(ctx, limit, offset)
}

func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	if !authz.CanMutate(in.UserID, comment) {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	comment.Text = text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}

	if !authz.CanMutate(in.UserID, comment) {
		return models.NewForbiddenError("You can only delete your own comments")
	}

	return s.commentRepo.Delete(ctx, in.CommentID)
}
