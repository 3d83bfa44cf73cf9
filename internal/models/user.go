package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID   `json:"id"`
	Username       string      `json:"username"`
	Email          string      `json:"email"`
	HashedPassword string      `json:"-"`
	Points         int         `json:"points"`
	Bio            string      `json:"bio"`
	StudentID      string      `json:"studentId"`
	IsVerified     bool        `json:"isVerified"`
	IsAdmin        bool        `json:"isAdmin"`
	Bookmarks      []uuid.UUID `json:"bookmarks"`
	CreatedAt      time.Time   `json:"createdAt"`
	LastActive     time.Time   `json:"lastActive"`
}

// LeaderboardEntry is the public projection of a user exposed by the
// leaderboard read path. No password hash, no bookmarks, no admin flag.
type LeaderboardEntry struct {
	Username   string `json:"username"`
	Bio        string `json:"bio"`
	Points     int    `json:"points"`
	StudentID  string `json:"studentId"`
	IsVerified bool   `json:"isVerified"`
	Email      string `json:"email"`
}
