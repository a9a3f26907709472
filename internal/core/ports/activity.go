package ports

import (
	"context"
	"time"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// ActivityInput is one mutation notification handed to the activity pipeline.
type ActivityInput struct {
	BlogID  string
	OwnerID string
	Action  string
	Title   string
	At      time.Time
}

// ActivityRepository defines persistence for the audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, e *domain.ActivityEvent) error
	// ListByBlog returns a post's audit trail, newest first. The query is
	// filtered by ownerID like every other per-post read.
	ListByBlog(ctx context.Context, blogID, ownerID string) ([]*domain.ActivityEvent, error)
}

// ActivityService processes queued mutation events and serves audit history.
type ActivityService interface {
	Process(ctx context.Context, in ActivityInput) error
	History(ctx context.Context, blogID, ownerID string) ([]*domain.ActivityEvent, error)
}
