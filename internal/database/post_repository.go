// internal/database/post_repository.go
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

// PostDocument represents the MongoDB schema for an item post.
type PostDocument struct {
	ID             string     `bson:"_id"`
	OwnerID        string     `bson:"ownerid"`
	OwnerUsername  string     `bson:"ownerusername"`
	Title          string     `bson:"title"`
	Description    string     `bson:"description"`
	Location       string     `bson:"location"`
	Status         string     `bson:"status"`
	Resolution     string     `bson:"resolution"`
	Archived       bool       `bson:"archived"`
	CreatedAt      time.Time  `bson:"createdat"`
	ResolvedBy     *string    `bson:"resolvedby,omitempty"`
	ResolutionNote string     `bson:"resolutionnote,omitempty"`
	ResolvedAt     *time.Time `bson:"resolvedat,omitempty"`
}

func postToDocument(post *models.Post) *PostDocument {
	doc := &PostDocument{
		ID:             post.ID.String(),
		OwnerID:        post.OwnerID.String(),
		OwnerUsername:  post.OwnerUsername,
		Title:          post.Title,
		Description:    post.Description,
		Location:       post.Location,
		Status:         string(post.Status),
		Resolution:     string(post.Resolution),
		Archived:       post.Archived,
		CreatedAt:      post.CreatedAt,
		ResolutionNote: post.ResolutionNote,
		ResolvedAt:     post.ResolvedAt,
	}
	if post.ResolvedBy != nil {
		s := post.ResolvedBy.String()
		doc.ResolvedBy = &s
	}
	return doc
}

func documentToPost(doc *PostDocument) (*models.Post, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID: %v", err)
	}

	ownerID, err := uuid.Parse(doc.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner ID: %v", err)
	}

	post := &models.Post{
		ID:             id,
		OwnerID:        ownerID,
		OwnerUsername:  doc.OwnerUsername,
		Title:          doc.Title,
		Description:    doc.Description,
		Location:       doc.Location,
		Status:         models.PostStatus(doc.Status),
		Resolution:     models.ResolutionStatus(doc.Resolution),
		Archived:       doc.Archived,
		CreatedAt:      doc.CreatedAt,
		ResolutionNote: doc.ResolutionNote,
		ResolvedAt:     doc.ResolvedAt,
	}
	if doc.ResolvedBy != nil {
		resolverID, err := uuid.Parse(*doc.ResolvedBy)
		if err != nil {
			return nil, fmt.Errorf("invalid resolver ID: %v", err)
		}
		post.ResolvedBy = &resolverID
	}
	return post, nil
}

// SavePost creates or updates an item post in MongoDB.
func (m *MongoDB) SavePost(ctx context.Context, post *models.Post) error {
	doc := postToDocument(post)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": post.ID.String()}
	update := bson.M{"$set": doc}

	_, err := m.Posts.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetPost retrieves an item post by its ID.
func (m *MongoDB) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var doc PostDocument

	err := m.Posts.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrPostNotFound, "Post not found", err)
	}
	if err != nil {
		return nil, err
	}

	return documentToPost(&doc)
}

// GetPostsByStatus retrieves all posts with the given lifecycle status
// ("lost" or "found"). No archival or resolution filter is applied; the
// matching engine scans the full pools.
func (m *MongoDB) GetPostsByStatus(ctx context.Context, status models.PostStatus) ([]*models.Post, error) {
	cursor, err := m.Posts.Find(ctx, bson.M{"status": string(status)})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	var posts []*models.Post
	for cursor.Next(ctx) {
		var doc PostDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Printf("Error decoding post document: %v", err)
			continue
		}

		post, err := documentToPost(&doc)
		if err != nil {
			log.Printf("Error converting document to model: %v", err)
			continue
		}
		posts = append(posts, post)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return posts, nil
}

// GetRecentPosts retrieves the newest posts across the board.
func (m *MongoDB) GetRecentPosts(ctx context.Context, limit int) ([]*models.Post, error) {
	pipeline := []bson.M{
		{"$sort": bson.D{{Key: "createdat", Value: -1}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.M{"$limit": limit})
	}

	cursor, err := m.Posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent posts: %v", err)
	}
	defer cursor.Close(ctx)

	var posts []*models.Post
	for cursor.Next(ctx) {
		var doc PostDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Printf("Error decoding post: %v", err)
			continue
		}

		post, err := documentToPost(&doc)
		if err != nil {
			log.Printf("Error converting document to model: %v", err)
			continue
		}
		posts = append(posts, post)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error reading recent posts: %v", err)
	}

	return posts, nil
}

// DeletePost removes an item post. Callers are responsible for the report
// cascade (ResolveReportsForPost).
func (m *MongoDB) DeletePost(ctx context.Context, id uuid.UUID) error {
	result, err := m.Posts.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return utils.NewAppError(utils.ErrPostNotFound, "Post not found", nil)
	}
	return nil
}
