package actors

import (
	"testing"
	"time"

	"gator-find/internal/models"
	"gator-find/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func spawnCommentActor(system *actor.ActorSystem, store *fakeStore) *actor.PID {
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewCommentActor(store, store, store)
	})
	return system.Root.Spawn(props)
}

func TestCommentActor(t *testing.T) {
	system := actor.NewActorSystem()
	store := newFakeStore()
	pid := spawnCommentActor(system, store)

	author := seedUser(store, "albert", 0)
	post := seedPost(store, author, models.PostLost, "Lost wallet", "Black leather wallet")

	// Test creating a comment
	createMsg := &CreateCommentMsg{
		Content:  "I saw one like that at the Reitz lost and found",
		AuthorID: author.ID,
		PostID:   post.ID,
	}

	future := system.Root.RequestFuture(pid, createMsg, 5*time.Second)
	result, err := future.Result()
	assert.NoError(t, err)

	comment := result.(*models.Comment)
	assert.Equal(t, createMsg.Content, comment.Content)
	assert.Equal(t, author.ID, *comment.AuthorID)
	assert.Equal(t, "albert", comment.AuthorUsername)
	assert.False(t, comment.IsSystem)

	// Test editing a comment
	editMsg := &EditCommentMsg{
		CommentID: comment.ID,
		AuthorID:  author.ID,
		Content:   "Correction: it was at Marston",
	}

	future = system.Root.RequestFuture(pid, editMsg, 5*time.Second)
	result, err = future.Result()
	assert.NoError(t, err)

	updatedComment := result.(*models.Comment)
	assert.Equal(t, "Correction: it was at Marston", updatedComment.Content)

	// Test nested comments
	replyMsg := &CreateCommentMsg{
		Content:  "Thanks, checking there now",
		AuthorID: author.ID,
		PostID:   post.ID,
		ParentID: &comment.ID,
	}

	future = system.Root.RequestFuture(pid, replyMsg, 5*time.Second)
	result, err = future.Result()
	assert.NoError(t, err)

	reply := result.(*models.Comment)
	assert.Equal(t, comment.ID, *reply.ParentID)

	// Test getting comments for a post
	getMsg := &GetCommentsForPostMsg{
		PostID: post.ID,
	}

	future = system.Root.RequestFuture(pid, getMsg, 5*time.Second)
	result, err = future.Result()
	assert.NoError(t, err)

	comments := result.([]*models.Comment)
	assert.Equal(t, 2, len(comments))
}

func TestCommentOnMissingPost(t *testing.T) {
	system := actor.NewActorSystem()
	store := newFakeStore()
	pid := spawnCommentActor(system, store)

	author := seedUser(store, "albert", 0)

	future := system.Root.RequestFuture(pid, &CreateCommentMsg{
		Content:  "Hello?",
		AuthorID: author.ID,
		PostID:   uuid.New(),
	}, 5*time.Second)
	result, err := future.Result()
	assert.NoError(t, err)

	appErr := result.(*utils.AppError)
	assert.Equal(t, utils.ErrPostNotFound, appErr.Code)
}

func TestReplyAcrossPostsRejected(t *testing.T) {
	system := actor.NewActorSystem()
	store := newFakeStore()
	pid := spawnCommentActor(system, store)

	author := seedUser(store, "albert", 0)
	postA := seedPost(store, author, models.PostLost, "Lost wallet", "Black leather wallet")
	postB := seedPost(store, author, models.PostFound, "Found keys", "Toyota fob")

	future := system.Root.RequestFuture(pid, &CreateCommentMsg{
		Content:  "Top level on A",
		AuthorID: author.ID,
		PostID:   postA.ID,
	}, 5*time.Second)
	result, err := future.Result()
	assert.NoError(t, err)
	parent := result.(*models.Comment)

	future = system.Root.RequestFuture(pid, &CreateCommentMsg{
		Content:  "Reply from B",
		AuthorID: author.ID,
		PostID:   postB.ID,
		ParentID: &parent.ID,
	}, 5*time.Second)
	result, err = future.Result()
	assert.NoError(t, err)

	appErr := result.(*utils.AppError)
	assert.Equal(t, utils.ErrInvalidInput, appErr.Code)
}

func TestSystemCommentsAreProtected(t *testing.T) {
	system := actor.NewActorSystem()
	store := newFakeStore()
	pid := spawnCommentActor(system, store)

	author := seedUser(store, "albert", 0)
	post := seedPost(store, author, models.PostLost, "Lost wallet", "Black leather wallet")

	now := time.Now()
	sysComment := &models.Comment{
		ID:             uuid.New(),
		PostID:         post.ID,
		AuthorUsername: "GatorFind",
		Content:        "A possible found item looks like a 72% match for this post",
		IsSystem:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	assert.NoError(t, store.SaveComment(nil, sysComment))

	// Nobody edits system comments
	future := system.Root.RequestFuture(pid, &EditCommentMsg{
		CommentID: sysComment.ID,
		AuthorID:  author.ID,
		Content:   "vandalism",
	}, 5*time.Second)
	result, err := future.Result()
	assert.NoError(t, err)
	appErr := result.(*utils.AppError)
	assert.Equal(t, utils.ErrForbidden, appErr.Code)

	// Only admins delete them
	future = system.Root.RequestFuture(pid, &DeleteCommentMsg{
		CommentID: sysComment.ID,
		AuthorID:  author.ID,
	}, 5*time.Second)
	result, err = future.Result()
	assert.NoError(t, err)
	appErr = result.(*utils.AppError)
	assert.Equal(t, utils.ErrUnauthorized, appErr.Code)

	future = system.Root.RequestFuture(pid, &DeleteCommentMsg{
		CommentID: sysComment.ID,
		AuthorID:  author.ID,
		IsAdmin:   true,
	}, 5*time.Second)
	result, err = future.Result()
	assert.NoError(t, err)
	status := result.(*models.StatusResponse)
	assert.True(t, status.Success)
}
