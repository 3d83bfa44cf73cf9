package models

import (
	"time"

	"github.com/google/uuid"
)

// Report is a user-filed complaint against an item post. PostID becomes
// nil when the reported post is deleted by an admin.
type Report struct {
	ID            uuid.UUID    `json:"id"`
	PostID        *uuid.UUID   `json:"postId,omitempty"`
	ReporterID    uuid.UUID    `json:"reporterId"`
	Type          string       `json:"type"`
	Description   string       `json:"description"`
	Status        ReportStatus `json:"status"`
	AdminResponse string       `json:"adminResponse,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
