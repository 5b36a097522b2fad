package ports

import (
	"context"

	"github.com/worklock/worklock/internal/core/domain"
)

// CommentRepository persists assistance requests.
type CommentRepository interface {
	Insert(ctx context.Context, c *domain.Comment) error
	// List returns comments newest first.
	List(ctx context.Context) ([]domain.Comment, error)
}

// CommentService records and lists assistance requests.
type CommentService interface {
	Post(ctx context.Context, email, text string) (*domain.Comment, error)
	List(ctx context.Context) ([]domain.Comment, error)
}
