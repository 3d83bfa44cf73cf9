// internal/database/user_repository.go
package database

import (
	"context"
	"fmt"
	"time"

	"gator-find/internal/models"
	"gator-find/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserDocument represents the MongoDB schema for a user
type UserDocument struct {
	ID             string    `bson:"_id"`
	Username       string    `bson:"username"`
	Email          string    `bson:"email"`
	HashedPassword string    `bson:"hashedPassword"`
	Points         int       `bson:"points"`
	Bio            string    `bson:"bio"`
	StudentID      string    `bson:"studentId"`
	IsVerified     bool      `bson:"isVerified"`
	IsAdmin        bool      `bson:"isAdmin"`
	Bookmarks      []string  `bson:"bookmarks"`
	CreatedAt      time.Time `bson:"createdAt"`
	LastActive     time.Time `bson:"lastActive"`
}

func documentToUser(doc *UserDocument) (*models.User, error) {
	userID, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in database: %v", err)
	}

	bookmarks := make([]uuid.UUID, len(doc.Bookmarks))
	for i, idStr := range doc.Bookmarks {
		postID, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid bookmark ID in database: %v", err)
		}
		bookmarks[i] = postID
	}

	return &models.User{
		ID:             userID,
		Username:       doc.Username,
		Email:          doc.Email,
		HashedPassword: doc.HashedPassword,
		Points:         doc.Points,
		Bio:            doc.Bio,
		StudentID:      doc.StudentID,
		IsVerified:     doc.IsVerified,
		IsAdmin:        doc.IsAdmin,
		Bookmarks:      bookmarks,
		CreatedAt:      doc.CreatedAt,
		LastActive:     doc.LastActive,
	}, nil
}

// SaveUser creates or updates a user in MongoDB
func (m *MongoDB) SaveUser(ctx context.Context, user *models.User) error {
	doc := UserDocument{
		ID:             user.ID.String(),
		Username:       user.Username,
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
		Points:         user.Points,
		Bio:            user.Bio,
		StudentID:      user.StudentID,
		IsVerified:     user.IsVerified,
		IsAdmin:        user.IsAdmin,
		Bookmarks:      make([]string, len(user.Bookmarks)),
		CreatedAt:      user.CreatedAt,
		LastActive:     user.LastActive,
	}

	for i, postID := range user.Bookmarks {
		doc.Bookmarks[i] = postID.String()
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": user.ID.String()}
	update := bson.M{"$set": doc}

	_, err := m.Users.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetUser retrieves a user from MongoDB by their ID
func (m *MongoDB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", err)
	}
	if err != nil {
		return nil, err
	}

	return documentToUser(&doc)
}

// GetUserByEmail retrieves a user from MongoDB by their email address
func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", err)
	}
	if err != nil {
		return nil, err
	}

	return documentToUser(&doc)
}

// AddPoints applies delta to the user's point balance with a floor of zero
// and returns the stored balance. A missing points field counts as zero.
func (m *MongoDB) AddPoints(ctx context.Context, userID uuid.UUID, delta int) (int, error) {
	user, err := m.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	balance := user.Points + delta
	if balance < 0 {
		balance = 0
	}

	filter := bson.M{"_id": userID.String()}
	update := bson.M{"$set": bson.M{"points": balance}}

	result, err := m.Users.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, utils.NewAppError(utils.ErrDatabase, "Failed to persist point balance", err)
	}
	if result.MatchedCount == 0 {
		return 0, utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
	}
	return balance, nil
}

// UpdateUserActivity updates a user's last active time
func (m *MongoDB) UpdateUserActivity(ctx context.Context, userID uuid.UUID) error {
	filter := bson.M{"_id": userID.String()}
	update := bson.M{"$set": bson.M{"lastActive": time.Now()}}

	result, err := m.Users.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
	}
	return nil
}

// UpdateUserBookmarks adds or removes a post from a user's bookmarks
func (m *MongoDB) UpdateUserBookmarks(ctx context.Context, userID uuid.UUID, postID uuid.UUID, add bool) error {
	filter := bson.M{"_id": userID.String()}
	var update bson.M

	if add {
		update = bson.M{"$addToSet": bson.M{"bookmarks": postID.String()}}
	} else {
		update = bson.M{"$pull": bson.M{"bookmarks": postID.String()}}
	}

	result, err := m.Users.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
	}
	return nil
}

// TopUsers retrieves the leaderboard: users sorted by points descending,
// public fields only.
func (m *MongoDB) TopUsers(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	pipeline := []bson.M{
		{"$sort": bson.D{
			{Key: "points", Value: -1},
			{Key: "createdAt", Value: 1},
		}},
		{"$limit": limit},
		{"$project": bson.M{
			"_id":        0,
			"username":   1,
			"bio":        1,
			"points":     1,
			"studentId":  1,
			"isVerified": 1,
			"email":      1,
		}},
	}

	cursor, err := m.Users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %v", err)
	}
	defer cursor.Close(ctx)

	var entries []*models.LeaderboardEntry
	for cursor.Next(ctx) {
		var doc struct {
			Username   string `bson:"username"`
			Bio        string `bson:"bio"`
			Points     int    `bson:"points"`
			StudentID  string `bson:"studentId"`
			IsVerified bool   `bson:"isVerified"`
			Email      string `bson:"email"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding leaderboard entry: %v", err)
		}
		entries = append(entries, &models.LeaderboardEntry{
			Username:   doc.Username,
			Bio:        doc.Bio,
			Points:     doc.Points,
			StudentID:  doc.StudentID,
			IsVerified: doc.IsVerified,
			Email:      doc.Email,
		})
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error reading leaderboard: %v", err)
	}

	return entries, nil
}
