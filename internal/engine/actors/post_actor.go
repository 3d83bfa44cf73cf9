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

// deletedPostReportResponse is recorded on every open report attached to a
// post that an admin removes. The cascade never awards points.
const deletedPostReportResponse = "The reported post has been removed by an administrator."

// Message types for Post operations
type (
	CreatePostMsg struct {
		Title       string
		Description string
		Location    string
		Status      models.PostStatus
		OwnerID     uuid.UUID
	}

	GetPostMsg struct {
		PostID uuid.UUID
	}

	GetPostsByStatusMsg struct {
		Status models.PostStatus
	}

	GetRecentPostsMsg struct {
		Limit int
	}

	EditPostMsg struct {
		PostID      uuid.UUID
		EditorID    uuid.UUID
		IsAdmin     bool
		Title       string
		Description string
		Location    string
	}

	ResolvePostMsg struct {
		PostID     uuid.UUID
		ResolverID uuid.UUID
		IsAdmin    bool
		Resolution models.ResolutionStatus
		Note       string
	}

	ArchivePostMsg struct {
		PostID      uuid.UUID
		RequesterID uuid.UUID
		IsAdmin     bool
		Archived    bool
	}

	DeletePostMsg struct {
		PostID      uuid.UUID
		RequesterID uuid.UUID
		IsAdmin     bool
	}

	GetCountsMsg struct{}
)

// PostActor handles lost and found item posts
type PostActor struct {
	postsByID map[uuid.UUID]*models.Post
	metrics   *utils.MetricsCollector
	posts     database.PostStore
	users     database.UserStore
	reports   database.ReportStore
}

// NewPostActor creates a new PostActor instance
func NewPostActor(metrics *utils.MetricsCollector, posts database.PostStore, users database.UserStore, reports database.ReportStore) actor.Actor {
	return &PostActor{
		postsByID: make(map[uuid.UUID]*models.Post),
		metrics:   metrics,
		posts:     posts,
		users:     users,
		reports:   reports,
	}
}

// Receive handles incoming messages
func (a *PostActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("PostActor started")

	case *actor.Stopping:
		log.Printf("PostActor stopping")

	case *actor.Stopped:
		log.Printf("PostActor stopped")

	case *actor.Restarting:
		log.Printf("PostActor restarting")

	case *CreatePostMsg:
		a.handleCreatePost(context, msg)
	case *GetPostMsg:
		a.handleGetPost(context, msg)
	case *GetPostsByStatusMsg:
		a.handleGetPostsByStatus(context, msg)
	case *GetRecentPostsMsg:
		a.handleGetRecentPosts(context, msg)
	case *EditPostMsg:
		a.handleEditPost(context, msg)
	case *ResolvePostMsg:
		a.handleResolvePost(context, msg)
	case *ArchivePostMsg:
		a.handleArchivePost(context, msg)
	case *DeletePostMsg:
		a.handleDeletePost(context, msg)
	case *GetCountsMsg:
		context.Respond(len(a.postsByID))
	default:
		log.Printf("PostActor: Unknown message type: %T", msg)
	}
}

func (a *PostActor) handleCreatePost(context actor.Context, msg *CreatePostMsg) {
	startTime := time.Now()

	if msg.Title == "" || msg.Description == "" {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Title and description are required", nil))
		return
	}
	if msg.Status != models.PostLost && msg.Status != models.PostFound {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Status must be lost or found", nil))
		return
	}

	// Fetch the owner so the post can carry their username
	ctx := stdctx.Background()
	owner, err := a.users.GetUser(ctx, msg.OwnerID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrUserNotFound) {
			context.Respond(utils.NewAppError(utils.ErrUserNotFound, "Post owner not found", err))
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch post owner", err))
		return
	}

	newPost := &models.Post{
		ID:            uuid.New(),
		OwnerID:       msg.OwnerID,
		OwnerUsername: owner.Username,
		Title:         msg.Title,
		Description:   msg.Description,
		Location:      msg.Location,
		Status:        msg.Status,
		Resolution:    models.ResolutionActive,
		CreatedAt:     time.Now(),
	}

	log.Printf("PostActor: Creating new %s post %s by user %s", newPost.Status, newPost.ID, newPost.OwnerID)

	if err := a.posts.SavePost(ctx, newPost); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save post", err))
		return
	}

	a.postsByID[newPost.ID] = newPost

	a.metrics.AddOperationLatency("create_post", time.Since(startTime))
	context.Respond(newPost)
}

func (a *PostActor) handleGetPost(context actor.Context, msg *GetPostMsg) {
	ctx := stdctx.Background()
	post, err := a.posts.GetPost(ctx, msg.PostID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrPostNotFound) {
			context.Respond(utils.NewPostNotFoundError(msg.PostID.String()))
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch post", err))
		return
	}

	a.postsByID[post.ID] = post
	context.Respond(post)
}

func (a *PostActor) handleGetPostsByStatus(context actor.Context, msg *GetPostsByStatusMsg) {
	if msg.Status != models.PostLost && msg.Status != models.PostFound {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Status must be lost or found", nil))
		return
	}

	ctx := stdctx.Background()
	posts, err := a.posts.GetPostsByStatus(ctx, msg.Status)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch posts", err))
		return
	}
	context.Respond(posts)
}

func (a *PostActor) handleGetRecentPosts(context actor.Context, msg *GetRecentPostsMsg) {
	startTime := time.Now()

	limit := msg.Limit
	if limit <= 0 {
		limit = 20
	}

	ctx := stdctx.Background()
	posts, err := a.posts.GetRecentPosts(ctx, limit)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch recent posts", err))
		return
	}

	a.metrics.AddOperationLatency("get_recent_posts", time.Since(startTime))
	context.Respond(posts)
}

func (a *PostActor) handleEditPost(context actor.Context, msg *EditPostMsg) {
	ctx := stdctx.Background()
	post, err := a.posts.GetPost(ctx, msg.PostID)
	if err != nil {
		context.Respond(err)
		return
	}

	if post.OwnerID != msg.EditorID && !msg.IsAdmin {
		context.Respond(utils.NewUnauthorizedError("only the post owner can edit this post"))
		return
	}

	if msg.Title != "" {
		post.Title = msg.Title
	}
	if msg.Description != "" {
		post.Description = msg.Description
	}
	if msg.Location != "" {
		post.Location = msg.Location
	}

	if err := a.posts.SavePost(ctx, post); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to update post", err))
		return
	}

	a.postsByID[post.ID] = post
	context.Respond(post)
}

func (a *PostActor) handleResolvePost(context actor.Context, msg *ResolvePostMsg) {
	if msg.Resolution != models.ResolutionResolved && msg.Resolution != models.ResolutionUnresolved {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Resolution must be Resolved or Unresolved", nil))
		return
	}

	ctx := stdctx.Background()
	post, err := a.posts.GetPost(ctx, msg.PostID)
	if err != nil {
		context.Respond(err)
		return
	}

	if post.OwnerID != msg.ResolverID && !msg.IsAdmin {
		context.Respond(utils.NewUnauthorizedError("only the post owner can resolve this post"))
		return
	}

	now := time.Now()
	resolverID := msg.ResolverID
	post.Resolution = msg.Resolution
	post.ResolvedBy = &resolverID
	post.ResolutionNote = msg.Note
	post.ResolvedAt = &now

	if err := a.posts.SavePost(ctx, post); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to resolve post", err))
		return
	}

	a.postsByID[post.ID] = post
	log.Printf("PostActor: Post %s marked %s by user %s", post.ID, post.Resolution, msg.ResolverID)
	context.Respond(post)
}

func (a *PostActor) handleArchivePost(context actor.Context, msg *ArchivePostMsg) {
	ctx := stdctx.Background()
	post, err := a.posts.GetPost(ctx, msg.PostID)
	if err != nil {
		context.Respond(err)
		return
	}

	if post.OwnerID != msg.RequesterID && !msg.IsAdmin {
		context.Respond(utils.NewUnauthorizedError("only the post owner can archive this post"))
		return
	}

	post.Archived = msg.Archived

	if err := a.posts.SavePost(ctx, post); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to archive post", err))
		return
	}

	a.postsByID[post.ID] = post
	context.Respond(post)
}

// handleDeletePost removes a post and resolves every report attached to it
// with a stock response. Reporters get no points through this path.
func (a *PostActor) handleDeletePost(context actor.Context, msg *DeletePostMsg) {
	startTime := time.Now()

	ctx := stdctx.Background()
	post, err := a.posts.GetPost(ctx, msg.PostID)
	if err != nil {
		context.Respond(err)
		return
	}

	if post.OwnerID != msg.RequesterID && !msg.IsAdmin {
		context.Respond(utils.NewUnauthorizedError("only the post owner or an admin can delete this post"))
		return
	}

	resolved, err := a.reports.ResolveReportsForPost(ctx, msg.PostID, deletedPostReportResponse)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to resolve reports for deleted post", err))
		return
	}
	if resolved > 0 {
		log.Printf("PostActor: Resolved %d reports attached to deleted post %s", resolved, msg.PostID)
	}

	if err := a.posts.DeletePost(ctx, msg.PostID); err != nil {
		context.Respond(err)
		return
	}

	delete(a.postsByID, msg.PostID)

	a.metrics.AddOperationLatency("delete_post", time.Since(startTime))
	context.Respond(&models.StatusResponse{Success: true, Message: "Post deleted successfully"})
}
