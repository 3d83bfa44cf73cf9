package actors

import (
	stdctx "context"
	"gator-find/internal/database"
	"gator-find/internal/models"
	"gator-find/internal/utils"
	"log"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for CommentActor
type (
	CreateCommentMsg struct {
		Content  string     `json:"content"`
		AuthorID uuid.UUID  `json:"authorId"`
		PostID   uuid.UUID  `json:"postId"`
		ParentID *uuid.UUID `json:"parentId,omitempty"`
	}

	EditCommentMsg struct {
		CommentID uuid.UUID `json:"commentId"`
		AuthorID  uuid.UUID `json:"authorId"`
		Content   string    `json:"content"`
	}

	DeleteCommentMsg struct {
		CommentID uuid.UUID `json:"commentId"`
		AuthorID  uuid.UUID `json:"authorId"`
		IsAdmin   bool      `json:"isAdmin"`
	}

	GetCommentMsg struct {
		CommentID uuid.UUID `json:"commentId"`
	}

	GetCommentsForPostMsg struct {
		PostID uuid.UUID `json:"postId"`
	}
)

// CommentActor manages comment operations
type CommentActor struct {
	comments  map[uuid.UUID]*models.Comment
	store     database.CommentStore
	posts     database.PostStore
	users     database.UserStore
	userCache map[uuid.UUID]string // Simple cache for usernames
}

func NewCommentActor(store database.CommentStore, posts database.PostStore, users database.UserStore) actor.Actor {
	return &CommentActor{
		comments:  make(map[uuid.UUID]*models.Comment),
		store:     store,
		posts:     posts,
		users:     users,
		userCache: make(map[uuid.UUID]string),
	}
}

func (a *CommentActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("CommentActor started with PID: %v", context.Self())

	case *CreateCommentMsg:
		a.handleCreateComment(context, msg)

	case *EditCommentMsg:
		a.handleEditComment(context, msg)

	case *DeleteCommentMsg:
		a.handleDeleteComment(context, msg)

	case *GetCommentMsg:
		a.handleGetComment(context, msg)

	case *GetCommentsForPostMsg:
		a.handleGetPostComments(context, msg)

	default:
		log.Printf("CommentActor: Unknown message type %T", msg)
	}
}

// Helper function to get username, using cache first
func (a *CommentActor) getUsername(ctx stdctx.Context, userID uuid.UUID) (string, error) {
	if username, ok := a.userCache[userID]; ok {
		return username, nil
	}

	user, err := a.users.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}

	a.userCache[userID] = user.Username
	return user.Username, nil
}

func (a *CommentActor) handleCreateComment(context actor.Context, msg *CreateCommentMsg) {
	if msg.Content == "" {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Comment content is required", nil))
		return
	}

	ctx := stdctx.Background()

	// The parent post must exist
	if _, err := a.posts.GetPost(ctx, msg.PostID); err != nil {
		log.Printf("Error fetching post %s for comment: %v", msg.PostID, err)
		context.Respond(err)
		return
	}

	username, err := a.getUsername(ctx, msg.AuthorID)
	if err != nil {
		log.Printf("Error fetching comment author %s: %v", msg.AuthorID, err)
		context.Respond(err)
		return
	}

	if msg.ParentID != nil {
		parent, err := a.store.GetComment(ctx, *msg.ParentID)
		if err != nil {
			context.Respond(err)
			return
		}
		if parent.PostID != msg.PostID {
			context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Parent comment belongs to a different post", nil))
			return
		}
	}

	now := time.Now()
	authorID := msg.AuthorID
	newComment := &models.Comment{
		ID:             uuid.New(),
		PostID:         msg.PostID,
		AuthorID:       &authorID,
		AuthorUsername: username,
		Content:        msg.Content,
		ParentID:       msg.ParentID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := a.store.SaveComment(ctx, newComment); err != nil {
		log.Printf("Error saving comment: %v", err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save comment", err))
		return
	}

	a.comments[newComment.ID] = newComment
	log.Printf("Created comment %s on post %s by user %s", newComment.ID, msg.PostID, msg.AuthorID)
	context.Respond(newComment)
}

func (a *CommentActor) handleEditComment(context actor.Context, msg *EditCommentMsg) {
	if msg.Content == "" {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Comment content is required", nil))
		return
	}

	ctx := stdctx.Background()
	comment, err := a.store.GetComment(ctx, msg.CommentID)
	if err != nil {
		context.Respond(err)
		return
	}

	if comment.IsSystem {
		context.Respond(utils.NewAppError(utils.ErrForbidden, "System comments cannot be edited", nil))
		return
	}
	if comment.AuthorID == nil || *comment.AuthorID != msg.AuthorID {
		context.Respond(utils.NewUnauthorizedError("not the comment author"))
		return
	}

	comment.Content = msg.Content
	comment.UpdatedAt = time.Now()

	if err := a.store.SaveComment(ctx, comment); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to update comment", err))
		return
	}

	a.comments[comment.ID] = comment
	context.Respond(comment)
}

func (a *CommentActor) handleDeleteComment(context actor.Context, msg *DeleteCommentMsg) {
	ctx := stdctx.Background()

	comment, err := a.store.GetComment(ctx, msg.CommentID)
	if err != nil {
		context.Respond(err)
		return
	}

	isAuthor := comment.AuthorID != nil && *comment.AuthorID == msg.AuthorID
	if !isAuthor && !msg.IsAdmin {
		context.Respond(utils.NewUnauthorizedError("not authorized to delete this comment"))
		return
	}
	if comment.IsSystem && !msg.IsAdmin {
		context.Respond(utils.NewAppError(utils.ErrForbidden, "System comments can only be removed by an admin", nil))
		return
	}

	if err := a.store.DeleteComment(ctx, msg.CommentID); err != nil {
		context.Respond(err)
		return
	}

	delete(a.comments, msg.CommentID)
	log.Printf("Deleted comment %s", msg.CommentID)
	context.Respond(&models.StatusResponse{Success: true, Message: "Comment deleted successfully"})
}

func (a *CommentActor) handleGetComment(context actor.Context, msg *GetCommentMsg) {
	// Try cache first
	if comment, exists := a.comments[msg.CommentID]; exists {
		context.Respond(comment)
		return
	}

	ctx := stdctx.Background()
	comment, err := a.store.GetComment(ctx, msg.CommentID)
	if err != nil {
		context.Respond(err)
		return
	}

	a.comments[comment.ID] = comment
	context.Respond(comment)
}

func (a *CommentActor) handleGetPostComments(context actor.Context, msg *GetCommentsForPostMsg) {
	ctx := stdctx.Background()

	comments, err := a.store.GetPostComments(ctx, msg.PostID)
	if err != nil {
		log.Printf("Error fetching comments for post %s: %v", msg.PostID, err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch comments", err))
		return
	}
	if comments == nil {
		comments = make([]*models.Comment, 0)
	}

	context.Respond(comments)
}
