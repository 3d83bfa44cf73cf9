package actors

import (
	"context"
	"sort"
	"sync"
	"time"

	"gator-find/internal/models"
	"gator-find/internal/utils"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the Mongo repositories with the
// same error contracts. Individual operations can be forced to fail.
type fakeStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*models.User
	posts    map[uuid.UUID]*models.Post
	comments map[uuid.UUID]*models.Comment
	matches  map[uuid.UUID]*models.Match
	reports  map[uuid.UUID]*models.Report

	matchPairs map[[2]uuid.UUID]bool

	failAddPoints   error
	failInsertMatch error
	failSaveComment error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[uuid.UUID]*models.User),
		posts:      make(map[uuid.UUID]*models.Post),
		comments:   make(map[uuid.UUID]*models.Comment),
		matches:    make(map[uuid.UUID]*models.Match),
		reports:    make(map[uuid.UUID]*models.Report),
		matchPairs: make(map[[2]uuid.UUID]bool),
	}
}

func (f *fakeStore) SaveUser(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, utils.NewUserNotFoundError(id.String())
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found: "+email, nil)
}

func (f *fakeStore) UpdateUserActivity(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return utils.NewUserNotFoundError(id.String())
	}
	user.LastActive = time.Now()
	return nil
}

func (f *fakeStore) UpdateUserBookmarks(_ context.Context, userID uuid.UUID, postID uuid.UUID, add bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return utils.NewUserNotFoundError(userID.String())
	}
	if add {
		for _, id := range user.Bookmarks {
			if id == postID {
				return nil
			}
		}
		user.Bookmarks = append(user.Bookmarks, postID)
		return nil
	}
	kept := user.Bookmarks[:0]
	for _, id := range user.Bookmarks {
		if id != postID {
			kept = append(kept, id)
		}
	}
	user.Bookmarks = kept
	return nil
}

func (f *fakeStore) AddPoints(_ context.Context, userID uuid.UUID, delta int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAddPoints != nil {
		return 0, f.failAddPoints
	}
	user, ok := f.users[userID]
	if !ok {
		return 0, utils.NewUserNotFoundError(userID.String())
	}
	balance := user.Points + delta
	if balance < 0 {
		balance = 0
	}
	user.Points = balance
	return balance, nil
}

func (f *fakeStore) TopUsers(_ context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]*models.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Points != users[j].Points {
			return users[i].Points > users[j].Points
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	entries := make([]*models.LeaderboardEntry, 0, len(users))
	for _, user := range users {
		entries = append(entries, &models.LeaderboardEntry{
			Username:   user.Username,
			Bio:        user.Bio,
			Points:     user.Points,
			StudentID:  user.StudentID,
			IsVerified: user.IsVerified,
			Email:      user.Email,
		})
	}
	return entries, nil
}

func (f *fakeStore) SavePost(_ context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *post
	f.posts[post.ID] = &copied
	return nil
}

func (f *fakeStore) GetPost(_ context.Context, id uuid.UUID) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, utils.NewPostNotFoundError(id.String())
	}
	copied := *post
	return &copied, nil
}

func (f *fakeStore) GetPostsByStatus(_ context.Context, status models.PostStatus) ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	posts := make([]*models.Post, 0)
	for _, post := range f.posts {
		if post.Status == status {
			copied := *post
			posts = append(posts, &copied)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.Before(posts[j].CreatedAt) })
	return posts, nil
}

func (f *fakeStore) GetRecentPosts(_ context.Context, limit int) ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	posts := make([]*models.Post, 0, len(f.posts))
	for _, post := range f.posts {
		copied := *post
		posts = append(posts, &copied)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (f *fakeStore) DeletePost(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return utils.NewPostNotFoundError(id.String())
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeStore) SaveComment(_ context.Context, comment *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSaveComment != nil {
		return f.failSaveComment
	}
	copied := *comment
	f.comments[comment.ID] = &copied
	return nil
}

func (f *fakeStore) GetComment(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Comment not found: "+id.String(), nil)
	}
	copied := *comment
	return &copied, nil
}

func (f *fakeStore) GetPostComments(_ context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comments := make([]*models.Comment, 0)
	for _, comment := range f.comments {
		if comment.PostID == postID {
			copied := *comment
			comments = append(comments, &copied)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.Before(comments[j].CreatedAt) })
	return comments, nil
}

func (f *fakeStore) DeleteComment(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[id]; !ok {
		return utils.NewAppError(utils.ErrNotFound, "Comment not found: "+id.String(), nil)
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeStore) InsertMatchIfAbsent(_ context.Context, match *models.Match) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsertMatch != nil {
		return false, f.failInsertMatch
	}
	pair := [2]uuid.UUID{match.LostID, match.FoundID}
	if f.matchPairs[pair] {
		return false, nil
	}
	f.matchPairs[pair] = true
	copied := *match
	f.matches[match.ID] = &copied
	return true, nil
}

func (f *fakeStore) GetMatch(_ context.Context, id uuid.UUID) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	match, ok := f.matches[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrMatchNotFound, "Match not found: "+id.String(), nil)
	}
	copied := *match
	return &copied, nil
}

func (f *fakeStore) GetMatches(_ context.Context) ([]*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matches := make([]*models.Match, 0, len(f.matches))
	for _, match := range f.matches {
		copied := *match
		matches = append(matches, &copied)
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches, nil
}

func (f *fakeStore) SaveReport(_ context.Context, report *models.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *report
	f.reports[report.ID] = &copied
	return nil
}

func (f *fakeStore) GetReport(_ context.Context, id uuid.UUID) (*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrReportNotFound, "Report not found: "+id.String(), nil)
	}
	copied := *report
	return &copied, nil
}

func (f *fakeStore) GetReportsByStatus(_ context.Context, status models.ReportStatus) ([]*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reports := make([]*models.Report, 0)
	for _, report := range f.reports {
		if status == "" || report.Status == status {
			copied := *report
			reports = append(reports, &copied)
		}
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].CreatedAt.After(reports[j].CreatedAt) })
	return reports, nil
}

func (f *fakeStore) ResolveReportsForPost(_ context.Context, postID uuid.UUID, adminResponse string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var touched int64
	for _, report := range f.reports {
		if report.PostID != nil && *report.PostID == postID {
			report.Status = models.ReportResolved
			report.AdminResponse = adminResponse
			report.PostID = nil
			report.UpdatedAt = time.Now()
			touched++
		}
	}
	return touched, nil
}

// Test fixtures

func seedUser(f *fakeStore, username string, points int) *models.User {
	user := &models.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     username + "@test.edu",
		Points:    points,
		Bookmarks: make([]uuid.UUID, 0),
		CreatedAt: time.Now(),
	}
	f.users[user.ID] = user
	return user
}

func seedPost(f *fakeStore, owner *models.User, status models.PostStatus, title, description string) *models.Post {
	post := &models.Post{
		ID:            uuid.New(),
		OwnerID:       owner.ID,
		OwnerUsername: owner.Username,
		Title:         title,
		Description:   description,
		Location:      "Marston Library",
		Status:        status,
		Resolution:    models.ResolutionActive,
		CreatedAt:     time.Now(),
	}
	f.posts[post.ID] = post
	return post
}
