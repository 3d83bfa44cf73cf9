// internal/database/comment_repository.go
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

// CommentDocument represents the MongoDB schema for a comment
type CommentDocument struct {
	ID             string    `bson:"_id"`
	PostID         string    `bson:"postid"`
	AuthorID       *string   `bson:"authorid,omitempty"`
	AuthorUsername string    `bson:"authorusername"`
	Content        string    `bson:"content"`
	ParentID       *string   `bson:"parentid,omitempty"`
	IsSystem       bool      `bson:"issystem"`
	CreatedAt      time.Time `bson:"createdat"`
	UpdatedAt      time.Time `bson:"updatedat"`
}

func commentToDocument(comment *models.Comment) *CommentDocument {
	doc := &CommentDocument{
		ID:             comment.ID.String(),
		PostID:         comment.PostID.String(),
		AuthorUsername: comment.AuthorUsername,
		Content:        comment.Content,
		IsSystem:       comment.IsSystem,
		CreatedAt:      comment.CreatedAt,
		UpdatedAt:      comment.UpdatedAt,
	}
	if comment.AuthorID != nil {
		s := comment.AuthorID.String()
		doc.AuthorID = &s
	}
	if comment.ParentID != nil {
		s := comment.ParentID.String()
		doc.ParentID = &s
	}
	return doc
}

func documentToComment(doc *CommentDocument) (*models.Comment, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID in database: %v", err)
	}
	postID, err := uuid.Parse(doc.PostID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID in database: %v", err)
	}

	comment := &models.Comment{
		ID:             id,
		PostID:         postID,
		AuthorUsername: doc.AuthorUsername,
		Content:        doc.Content,
		IsSystem:       doc.IsSystem,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
	if doc.AuthorID != nil {
		authorID, err := uuid.Parse(*doc.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("invalid author ID in database: %v", err)
		}
		comment.AuthorID = &authorID
	}
	if doc.ParentID != nil {
		parentID, err := uuid.Parse(*doc.ParentID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent comment ID in database: %v", err)
		}
		comment.ParentID = &parentID
	}
	return comment, nil
}

// SaveComment creates or updates a comment in MongoDB
func (m *MongoDB) SaveComment(ctx context.Context, comment *models.Comment) error {
	doc := commentToDocument(comment)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	_, err := m.Comments.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save comment: %v", err)
	}
	return nil
}

// GetComment retrieves a single comment by ID
func (m *MongoDB) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var doc CommentDocument

	err := m.Comments.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "Comment not found", err)
	}
	if err != nil {
		return nil, err
	}

	return documentToComment(&doc)
}

// GetPostComments retrieves all comments on a post, oldest first
func (m *MongoDB) GetPostComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdat", Value: 1}})

	cursor, err := m.Comments.Find(ctx, bson.M{"postid": postID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %v", err)
	}
	defer cursor.Close(ctx)

	var comments []*models.Comment
	for cursor.Next(ctx) {
		var doc CommentDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Printf("Error decoding comment document: %v", err)
			continue
		}
		comment, err := documentToComment(&doc)
		if err != nil {
			log.Printf("Error converting comment document: %v", err)
			continue
		}
		comments = append(comments, comment)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error reading comments: %v", err)
	}

	return comments, nil
}

// DeleteComment removes a comment by ID
func (m *MongoDB) DeleteComment(ctx context.Context, id uuid.UUID) error {
	result, err := m.Comments.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %v", err)
	}
	if result.DeletedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Comment not found", nil)
	}
	return nil
}
