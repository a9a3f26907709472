package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/blog-platform/internal/api/metrics"
	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
	"github.com/inkwell/blog-platform/internal/pkg/token"
)

// AuthService implements signup and login on top of bcrypt password hashing
// and the token codec.
type AuthService struct {
	repo  ports.AuthRepository
	codec *token.Codec
}

func NewAuthService(repo ports.AuthRepository, codec *token.Codec) *AuthService {
	return &AuthService{repo: repo, codec: codec}
}

func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	if email == "" || password == "" || name == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	signed, err := s.issueToken(created)
	if err != nil {
		return nil, "", err
	}

	metrics.SignupsTotal.Inc()
	return created, signed, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// Unknown account and wrong password are reported identically.
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}

	signed, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return user, signed, nil
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	return s.codec.Issue(map[string]any{
		"sub":   user.ID,
		"email": user.Email,
	})
}
