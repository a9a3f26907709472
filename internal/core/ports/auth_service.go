package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

type AuthService interface {
	// Signup creates an account and returns it along with a signed identity token.
	Signup(ctx context.Context, email, password, name string) (*domain.User, string, error)
	// Login verifies credentials and returns the account and a signed identity token.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}
