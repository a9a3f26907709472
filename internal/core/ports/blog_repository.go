package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// BlogUpdate carries the mutable fields applied on edit. Everything else on a
// post (owner, creation time) is immutable after create.
type BlogUpdate struct {
	Title   string
	Content string
	Status  domain.BlogStatus
	Tags    []string
}

// BlogRepository defines persistence operations for posts. Every single-post
// operation takes the caller's ownerID and folds it into the store query, so
// posts owned by other users surface as domain.ErrBlogNotFound.
type BlogRepository interface {
	Create(ctx context.Context, b *domain.Blog) (*domain.Blog, error)
	FindByID(ctx context.Context, id, ownerID string) (*domain.Blog, error)
	// ListByOwner returns the owner's posts, most recently updated first.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Blog, error)
	Update(ctx context.Context, id, ownerID string, upd BlogUpdate) (*domain.Blog, error)
	Delete(ctx context.Context, id, ownerID string) error
}
