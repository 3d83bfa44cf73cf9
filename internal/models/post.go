package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a lost or found item report created by a user.
type Post struct {
	ID            uuid.UUID        `json:"id"`
	OwnerID       uuid.UUID        `json:"ownerId"`
	OwnerUsername string           `json:"ownerUsername"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Location      string           `json:"location"`
	Status        PostStatus       `json:"status"`
	Resolution    ResolutionStatus `json:"resolution"`
	Archived      bool             `json:"archived"`
	CreatedAt     time.Time        `json:"createdAt"`

	// Set when the post leaves the Active resolution state.
	ResolvedBy     *uuid.UUID `json:"resolvedBy,omitempty"`
	ResolutionNote string     `json:"resolutionNote,omitempty"`
	ResolvedAt     *time.Time `json:"resolvedAt,omitempty"`
}
