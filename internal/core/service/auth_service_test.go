package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/pkg/token"
)

type stubAuthRepo struct {
	users map[string]*domain.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = "id-" + user.Email
	}
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func newTestAuthService(repo *stubAuthRepo) *AuthService {
	return NewAuthService(repo, token.NewCodec("secret", time.Hour))
}

func TestAuthService_Signup_Success(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo())

	user, signed, err := svc.Signup(context.Background(), "alice@example.com", "pass123", "Alice")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if signed == "" {
		t.Fatal("expected token, got empty")
	}
	if user.PasswordHash == "pass123" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Signup_Validation(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo())

	if _, _, err := svc.Signup(context.Background(), "", "pass", "Bob"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Signup(context.Background(), "bob@example.com", "pass", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for missing name, got %v", err)
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo())

	if _, _, err := svc.Signup(context.Background(), "bob@example.com", "pass", "Bob"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, _, err := svc.Signup(context.Background(), "bob@example.com", "pass2", "Bobby"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_AfterSignup(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo())

	if _, _, err := svc.Signup(context.Background(), "a@x.com", "pw123", "Ann"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	user, signed, err := svc.Login(context.Background(), "a@x.com", "pw123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if signed == "" {
		t.Fatal("expected token, got empty")
	}
	if user == nil || user.Name != "Ann" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := token.NewCodec("secret", time.Hour).Verify(signed)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != user.ID {
		t.Fatalf("expected sub %s, got %v", user.ID, claims["sub"])
	}
	if claims["email"] != "a@x.com" {
		t.Fatalf("expected email claim, got %v", claims["email"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo())

	_, _, _ = svc.Signup(context.Background(), "dave@example.com", "goodpass", "Dave")
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo())

	// Unknown account must be indistinguishable from a wrong password.
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Signup_NoSecret(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), token.NewCodec("", time.Hour))

	if _, _, err := svc.Signup(context.Background(), "eve@example.com", "pass", "Eve"); !errors.Is(err, token.ErrNoSecret) {
		t.Fatalf("expected ErrNoSecret, got %v", err)
	}
}
