// internal/database/match_repository.go
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"gator-find/internal/models"
	"gator-find/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MatchDocument represents the MongoDB schema for a lost/found match.
// The collection carries a unique compound index on (lostid, foundid)
// so a pair can only ever be recorded once.
type MatchDocument struct {
	ID        string    `bson:"_id"`
	LostID    string    `bson:"lostid"`
	FoundID   string    `bson:"foundid"`
	Score     float64   `bson:"score"`
	CreatedAt time.Time `bson:"createdat"`
}

func documentToMatch(doc *MatchDocument) (*models.Match, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid match ID in database: %v", err)
	}
	lostID, err := uuid.Parse(doc.LostID)
	if err != nil {
		return nil, fmt.Errorf("invalid lost post ID in database: %v", err)
	}
	foundID, err := uuid.Parse(doc.FoundID)
	if err != nil {
		return nil, fmt.Errorf("invalid found post ID in database: %v", err)
	}

	return &models.Match{
		ID:        id,
		LostID:    lostID,
		FoundID:   foundID,
		Score:     doc.Score,
		CreatedAt: doc.CreatedAt,
	}, nil
}

// InsertMatchIfAbsent inserts a match record, relying on the unique
// (lostid, foundid) index to reject pairs recorded by an earlier run.
// It returns true when the record was newly inserted and false when the
// pair already existed.
func (m *MongoDB) InsertMatchIfAbsent(ctx context.Context, match *models.Match) (bool, error) {
	doc := MatchDocument{
		ID:        match.ID.String(),
		LostID:    match.LostID.String(),
		FoundID:   match.FoundID.String(),
		Score:     match.Score,
		CreatedAt: match.CreatedAt,
	}

	_, err := m.Matches.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, utils.NewAppError(utils.ErrDatabase, "Failed to record match", err)
	}
	return true, nil
}

// GetMatch retrieves a single match by ID
func (m *MongoDB) GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	var doc MatchDocument

	err := m.Matches.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrMatchNotFound, "Match not found", err)
	}
	if err != nil {
		return nil, err
	}

	return documentToMatch(&doc)
}

// GetMatches retrieves all recorded matches, best score first
func (m *MongoDB) GetMatches(ctx context.Context) ([]*models.Match, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "score", Value: -1},
		{Key: "createdat", Value: -1},
	})

	cursor, err := m.Matches.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %v", err)
	}
	defer cursor.Close(ctx)

	var matches []*models.Match
	for cursor.Next(ctx) {
		var doc MatchDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Printf("Error decoding match document: %v", err)
			continue
		}
		match, err := documentToMatch(&doc)
		if err != nil {
			log.Printf("Error converting match document: %v", err)
			continue
		}
		matches = append(matches, match)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error reading matches: %v", err)
	}

	return matches, nil
}
