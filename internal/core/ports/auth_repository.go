package ports

import (
	"context"

	"github.com/worklock/worklock/internal/core/domain"
)

// AuthRepository defines the credential-store boundary. The roster is owned
// here and treated as read-only input by the rest of the core.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// CountByWalletRole reports how many accounts share a wallet and role;
	// the same wallet may not hold two accounts with the same role.
	CountByWalletRole(ctx context.Context, wallet, role string) (int64, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// ListEmployees returns the roster ordered by email.
	ListEmployees(ctx context.Context) ([]domain.RosterEntry, error)
}
