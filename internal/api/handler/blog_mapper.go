package handler

import (
	"github.com/inkwell/blog-platform/internal/core/domain"
)

func toBlogResponse(b *domain.Blog) blogResponse {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return blogResponse{
		ID:        b.ID,
		Title:     b.Title,
		Content:   b.Content,
		Tags:      tags,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt.UTC(),
		UpdatedAt: b.UpdatedAt.UTC(),
	}
}

func toBlogListResponse(blogs []*domain.Blog) []blogResponse {
	out := make([]blogResponse, len(blogs))
	for i, b := range blogs {
		out[i] = toBlogResponse(b)
	}
	return out
}

func toActivityResponse(blogID string, events []*domain.ActivityEvent) activityResponse {
	items := make([]activityItemResponse, len(events))
	for i, e := range events {
		items[i] = activityItemResponse{
			Action: e.Action,
			Title:  e.Title,
			At:     e.At.UTC(),
		}
	}
	return activityResponse{BlogID: blogID, Events: items}
}
