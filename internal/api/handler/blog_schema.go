package handler

import (
	"encoding/json"
	"strings"
	"time"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// tagList accepts either a JSON array of strings or a single comma separated
// string, matching what the editor sends in each of its modes. Entries are
// normalized (trimmed, capped) later by the service.
type tagList []string

func (t *tagList) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = strings.Split(s, ",")
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*t = list
	return nil
}

// --- Request types ---

type createBlogRequest struct {
	Title   string  `json:"title"   validate:"required"`
	Content string  `json:"content" validate:"required"`
	Tags    tagList `json:"tags"`
	Status  string  `json:"status"  validate:"omitempty,oneof=draft published"`
}

type updateBlogRequest struct {
	Title   string  `json:"title"   validate:"required"`
	Content string  `json:"content" validate:"required"`
	Tags    tagList `json:"tags"`
	Status  string  `json:"status"  validate:"omitempty,oneof=draft published"`
}

// --- Response types ---
// Response-only types owned by the transport layer. These are intentionally
// separate from domain types so the JSON contract is not coupled to internal
// changes.

type blogResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type deleteBlogResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type activityItemResponse struct {
	Action string    `json:"action"`
	Title  string    `json:"title,omitempty"`
	At     time.Time `json:"at"`
}

type activityResponse struct {
	BlogID string                 `json:"blog_id"`
	Events []activityItemResponse `json:"events"`
}
