package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is attached to an item post. AuthorID is nil for system-authored
// comments such as match notifications, which are always top-level.
type Comment struct {
	ID             uuid.UUID  `json:"id"`
	PostID         uuid.UUID  `json:"postId"`
	AuthorID       *uuid.UUID `json:"authorId,omitempty"`
	AuthorUsername string     `json:"authorUsername"`
	Content        string     `json:"content"`
	ParentID       *uuid.UUID `json:"parentId,omitempty"`
	IsSystem       bool       `json:"isSystem"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
