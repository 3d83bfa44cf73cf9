// internal/database/store.go
package database

import (
	"context"

	"gator-find/internal/models"

	"github.com/google/uuid"
)

// The per-entity store interfaces below are what the actors depend on.
// Each actor takes only the stores it needs, so tests can inject in-memory
// fakes and the persistence backend stays swappable.

// UserStore covers user documents and the points ledger.
type UserStore interface {
	SaveUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserActivity(ctx context.Context, id uuid.UUID) error
	UpdateUserBookmarks(ctx context.Context, userID uuid.UUID, postID uuid.UUID, add bool) error

	// AddPoints applies delta to the user's balance, clamping the result at
	// zero, and returns the new balance. A missing user or a failed write
	// returns an error; callers must not swallow it.
	AddPoints(ctx context.Context, userID uuid.UUID, delta int) (int, error)

	// TopUsers returns up to limit users ordered by points descending,
	// restricted to public fields.
	TopUsers(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

// PostStore covers item post documents.
type PostStore interface {
	SavePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error)
	GetPostsByStatus(ctx context.Context, status models.PostStatus) ([]*models.Post, error)
	GetRecentPosts(ctx context.Context, limit int) ([]*models.Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
}

// CommentStore covers user and system comments on posts.
type CommentStore interface {
	SaveComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	GetPostComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
}

// MatchStore covers discovered lost/found pairs.
type MatchStore interface {
	// InsertMatchIfAbsent persists the match unless one already exists for
	// the same (lost, found) pair. It reports whether a new match was
	// created; a duplicate is not an error.
	InsertMatchIfAbsent(ctx context.Context, match *models.Match) (bool, error)
	GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)

	// GetMatches returns all matches sorted by score descending, then
	// creation time descending.
	GetMatches(ctx context.Context) ([]*models.Match, error)
}

// ReportStore covers moderation reports.
type ReportStore interface {
	SaveReport(ctx context.Context, report *models.Report) error
	GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error)
	GetReportsByStatus(ctx context.Context, status models.ReportStatus) ([]*models.Report, error)

	// ResolveReportsForPost bulk-resolves every report referencing the post
	// with the given admin response and detaches the post reference. This
	// cascade path never awards points. Returns the number of reports
	// touched.
	ResolveReportsForPost(ctx context.Context, postID uuid.UUID, adminResponse string) (int64, error)
}

// Store is the full persistence surface, implemented by MongoDB.
type Store interface {
	UserStore
	PostStore
	CommentStore
	MatchStore
	ReportStore
	Close(ctx context.Context) error
}

var _ Store = (*MongoDB)(nil)
