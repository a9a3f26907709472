package domain

import (
	"errors"
	"strings"
	"time"
)

// BlogStatus represents the publication state of a post.
type BlogStatus string

const (
	StatusDraft     BlogStatus = "draft"
	StatusPublished BlogStatus = "published"
)

// MaxTags caps how many tags are stored per post; extra entries are dropped.
const MaxTags = 10

var ErrBlogNotFound = errors.New("blog not found")
var ErrInvalidBlog = errors.New("invalid blog data")
var ErrStoreUnavailable = errors.New("store unavailable")

// Valid reports whether s is a known publication state.
func (s BlogStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Blog is the core aggregate: a post exclusively owned by one user. Reads,
// updates, and deletes always filter by both the post id and the owner id, so
// a post belonging to someone else is indistinguishable from a missing one.
type Blog struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Tags      []string   `json:"tags"`
	Status    BlogStatus `json:"status"`
	OwnerID   string     `json:"owner_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NormalizeTags trims whitespace from each tag, drops empty entries, and
// truncates the result to MaxTags.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
		if len(out) == MaxTags {
			break
		}
	}
	return out
}
