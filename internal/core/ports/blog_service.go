package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// CreateBlogInput carries all data needed to create a new post.
type CreateBlogInput struct {
	OwnerID string
	Title   string
	Content string
	Tags    []string
	// Status defaults to draft when empty.
	Status string
}

// UpdateBlogInput carries an edit to an existing post.
type UpdateBlogInput struct {
	ID      string
	OwnerID string
	Title   string
	Content string
	Tags    []string
	Status  string
}

// ListBlogsInput carries the parameters for the list endpoint.
type ListBlogsInput struct {
	OwnerID string
	// BypassCache forces a store read even when a fresh cached list exists.
	BypassCache bool
}

// BlogService defines use-case operations for posts. All operations are
// scoped to the authenticated owner.
type BlogService interface {
	Create(ctx context.Context, input CreateBlogInput) (*domain.Blog, error)
	Get(ctx context.Context, id, ownerID string) (*domain.Blog, error)
	List(ctx context.Context, input ListBlogsInput) ([]*domain.Blog, error)
	Update(ctx context.Context, input UpdateBlogInput) (*domain.Blog, error)
	Delete(ctx context.Context, id, ownerID string) error
}
