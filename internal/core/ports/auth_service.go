package ports

import (
	"context"

	"github.com/worklock/worklock/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, role, wallet string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ListEmployees(ctx context.Context) ([]domain.RosterEntry, error)
}
