package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/api/metrics"
	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService implementation persisting the
// audit trail of post mutations.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Process validates and persists a single mutation event.
func (s *activityService) Process(ctx context.Context, in ports.ActivityInput) error {
	switch in.Action {
	case domain.ActionCreated, domain.ActionUpdated, domain.ActionDeleted:
	default:
		metrics.ActivityErrorsTotal.WithLabelValues("invalid_action").Inc()
		return fmt.Errorf("process activity: unknown action %q", in.Action)
	}

	event := &domain.ActivityEvent{
		BlogID:  in.BlogID,
		OwnerID: in.OwnerID,
		Action:  in.Action,
		Title:   in.Title,
		At:      in.At,
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		metrics.ActivityErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("process activity: %w", err)
	}

	metrics.PostMutationsTotal.WithLabelValues(in.Action).Inc()
	s.log.Debug().
		Str("blog_id", in.BlogID).
		Str("action", in.Action).
		Msg("activity recorded")
	return nil
}

// History returns a post's audit trail, scoped to the owner.
func (s *activityService) History(ctx context.Context, blogID, ownerID string) ([]*domain.ActivityEvent, error) {
	return s.repo.ListByBlog(ctx, blogID, ownerID)
}
