package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/worklock/worklock/internal/core/domain"
	"github.com/worklock/worklock/internal/core/ports"
)

// CommentService records assistance requests from employees and lists them
// for the admin console.
type CommentService struct {
	repo ports.CommentRepository
	log  zerolog.Logger
}

func NewCommentService(repo ports.CommentRepository, log zerolog.Logger) *CommentService {
	return &CommentService{repo: repo, log: log}
}

func (s *CommentService) Post(ctx context.Context, email, text string) (*domain.Comment, error) {
	c := &domain.Comment{
		Email:     email,
		Comment:   text,
		Timestamp: time.Now().Unix(),
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("failed to save comment")
		return nil, err
	}
	return c, nil
}

func (s *CommentService) List(ctx context.Context) ([]domain.Comment, error) {
	return s.repo.List(ctx)
}
