package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/api/metrics"
	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

const defaultCacheTTL = 60 * time.Second

// ActivityRecorder enqueues audit events without blocking the request path.
type ActivityRecorder interface {
	Enqueue(event ports.ActivityInput)
}

// BlogService implements owner-scoped CRUD on posts with a read-through
// response cache. The cache is strictly best-effort: every mutation deletes
// the owner's list key and the post's detail key before returning.
type BlogService struct {
	repo     ports.BlogRepository
	cache    ports.ResponseCache
	recorder ActivityRecorder
	logger   zerolog.Logger
	cacheTTL time.Duration
}

// BlogOption customises a BlogService.
type BlogOption func(*BlogService)

// WithCacheTTL overrides the lifetime of cached list and detail entries.
func WithCacheTTL(ttl time.Duration) BlogOption {
	return func(s *BlogService) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

func NewBlogService(repo ports.BlogRepository, cache ports.ResponseCache, recorder ActivityRecorder, logger zerolog.Logger, opts ...BlogOption) *BlogService {
	s := &BlogService{repo: repo, cache: cache, recorder: recorder, logger: logger, cacheTTL: defaultCacheTTL}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BlogService) Create(ctx context.Context, input ports.CreateBlogInput) (*domain.Blog, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrInvalidBlog)
	}

	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	blog := &domain.Blog{
		Title:     title,
		Content:   input.Content,
		Tags:      domain.NormalizeTags(input.Tags),
		Status:    status,
		OwnerID:   input.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, blog)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", input.OwnerID).Msg("failed to create blog")
		return nil, err
	}

	s.invalidate(ctx, created.OwnerID, created.ID)
	s.record(created, domain.ActionCreated, now)
	metrics.PostsCreatedTotal.WithLabelValues(string(created.Status)).Inc()

	s.logger.Info().Str("blog_id", created.ID).Str("owner_id", created.OwnerID).Msg("blog created")
	return created, nil
}

func (s *BlogService) Get(ctx context.Context, id, ownerID string) (*domain.Blog, error) {
	key := detailKey(ownerID, id)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var blog domain.Blog
		if err := json.Unmarshal(raw, &blog); err == nil {
			metrics.CacheRequestsTotal.WithLabelValues("detail", "hit").Inc()
			return &blog, nil
		}
		s.cache.Delete(ctx, key)
	}
	metrics.CacheRequestsTotal.WithLabelValues("detail", "miss").Inc()

	blog, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(blog); err == nil {
		s.cache.Set(ctx, key, raw, s.cacheTTL)
	}
	return blog, nil
}

func (s *BlogService) List(ctx context.Context, input ports.ListBlogsInput) ([]*domain.Blog, error) {
	key := listKey(input.OwnerID)

	if input.BypassCache {
		metrics.CacheRequestsTotal.WithLabelValues("list", "bypass").Inc()
	} else if raw, ok := s.cache.Get(ctx, key); ok {
		var blogs []*domain.Blog
		if err := json.Unmarshal(raw, &blogs); err == nil {
			metrics.CacheRequestsTotal.WithLabelValues("list", "hit").Inc()
			return blogs, nil
		}
		s.cache.Delete(ctx, key)
	} else {
		metrics.CacheRequestsTotal.WithLabelValues("list", "miss").Inc()
	}

	blogs, err := s.repo.ListByOwner(ctx, input.OwnerID)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", input.OwnerID).Msg("failed to list blogs")
		return nil, err
	}

	if raw, err := json.Marshal(blogs); err == nil {
		s.cache.Set(ctx, key, raw, s.cacheTTL)
	}
	return blogs, nil
}

func (s *BlogService) Update(ctx context.Context, input ports.UpdateBlogInput) (*domain.Blog, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrInvalidBlog)
	}

	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, input.ID, input.OwnerID, ports.BlogUpdate{
		Title:   title,
		Content: input.Content,
		Status:  status,
		Tags:    domain.NormalizeTags(input.Tags),
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, input.OwnerID, input.ID)
	s.record(updated, domain.ActionUpdated, time.Now().UTC())

	s.logger.Info().Str("blog_id", input.ID).Str("owner_id", input.OwnerID).Msg("blog updated")
	return updated, nil
}

func (s *BlogService) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	s.invalidate(ctx, ownerID, id)
	s.record(&domain.Blog{ID: id, OwnerID: ownerID}, domain.ActionDeleted, time.Now().UTC())

	s.logger.Info().Str("blog_id", id).Str("owner_id", ownerID).Msg("blog deleted")
	return nil
}

func (s *BlogService) invalidate(ctx context.Context, ownerID, id string) {
	s.cache.Delete(ctx, listKey(ownerID), detailKey(ownerID, id))
}

func (s *BlogService) record(blog *domain.Blog, action string, at time.Time) {
	if s.recorder == nil {
		return
	}
	s.recorder.Enqueue(ports.ActivityInput{
		BlogID:  blog.ID,
		OwnerID: blog.OwnerID,
		Action:  action,
		Title:   blog.Title,
		At:      at,
	})
}

func resolveStatus(raw string) (domain.BlogStatus, error) {
	if raw == "" {
		return domain.StatusDraft, nil
	}
	status := domain.BlogStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", domain.ErrInvalidBlog, raw)
	}
	return status, nil
}

// Cache keys are scoped to the owner so one user's cached entries can never
// be served to another.
func listKey(ownerID string) string {
	return "blogs:" + ownerID
}

func detailKey(ownerID, id string) string {
	return "blog:" + ownerID + ":" + id
}
