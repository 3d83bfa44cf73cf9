package models

import (
	"time"

	"github.com/google/uuid"
)

// Match pairs one lost post with one found post at a similarity score.
// At most one match exists per (LostID, FoundID) pair; the matches
// collection carries a unique compound index on the two IDs.
type Match struct {
	ID        uuid.UUID `json:"id"`
	LostID    uuid.UUID `json:"lostId"`
	FoundID   uuid.UUID `json:"foundId"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

// MatchWithPosts is a match expanded with its two post documents, as
// returned by the admin match listing.
type MatchWithPosts struct {
	Match
	Lost  *Post `json:"lost"`
	Found *Post `json:"found"`
}
