package actors

import (
	stdctx "context"
	"fmt"
	"gator-find/internal/database"
	"gator-find/internal/models"
	"gator-find/internal/similarity"
	"gator-find/internal/utils"
	"gator-find/internal/websocket"
	"log"
	"math"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for the matching engine
type (
	// RunMatchingMsg scores every lost post against every found post and
	// records the pairs at or above the similarity threshold. Responds
	// with the matches created by this run only.
	RunMatchingMsg struct{}

	// ListMatchesMsg returns all recorded matches, best score first, each
	// expanded with its two posts.
	ListMatchesMsg struct{}

	// NotifyMatchMsg posts a system comment on both sides of a match,
	// telling each owner about the counterpart post. Verified marks the
	// notification as admin-confirmed rather than automatic.
	NotifyMatchMsg struct {
		MatchID  uuid.UUID
		Verified bool
	}
)

// MatchActor runs the lost/found similarity engine
type MatchActor struct {
	threshold float64
	metrics   *utils.MetricsCollector
	posts     database.PostStore
	matches   database.MatchStore
	comments  database.CommentStore
	hub       *websocket.Hub
}

// NewMatchActor creates a new MatchActor instance. The hub may be nil when
// no live feed is attached.
func NewMatchActor(threshold float64, metrics *utils.MetricsCollector, posts database.PostStore, matches database.MatchStore, comments database.CommentStore, hub *websocket.Hub) actor.Actor {
	return &MatchActor{
		threshold: threshold,
		metrics:   metrics,
		posts:     posts,
		matches:   matches,
		comments:  comments,
		hub:       hub,
	}
}

func (a *MatchActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("MatchActor started with threshold %.2f", a.threshold)
	case *RunMatchingMsg:
		a.handleRunMatching(context)
	case *ListMatchesMsg:
		a.handleListMatches(context)
	case *NotifyMatchMsg:
		a.handleNotifyMatch(context, msg)
	default:
		log.Printf("MatchActor: Unknown message type: %T", msg)
	}
}

func postText(post *models.Post) similarity.ItemText {
	return similarity.ItemText{
		Title:       post.Title,
		Description: post.Description,
		Location:    post.Location,
	}
}

// handleRunMatching scores the full lost x found cross product. Pairs
// already recorded by an earlier run are skipped via the unique index on
// (lostid, foundid); a persistence failure aborts the run but matches
// inserted before the failure stay recorded.
func (a *MatchActor) handleRunMatching(context actor.Context) {
	startTime := time.Now()
	ctx := stdctx.Background()

	lostPosts, err := a.posts.GetPostsByStatus(ctx, models.PostLost)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch lost posts", err))
		return
	}

	foundPosts, err := a.posts.GetPostsByStatus(ctx, models.PostFound)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch found posts", err))
		return
	}

	log.Printf("MatchActor: Matching run over %d lost x %d found posts", len(lostPosts), len(foundPosts))

	newMatches := make([]*models.Match, 0)
	for _, lost := range lostPosts {
		for _, found := range foundPosts {
			score := similarity.Score(postText(lost), postText(found))
			if score < a.threshold {
				continue
			}

			match := &models.Match{
				ID:        uuid.New(),
				LostID:    lost.ID,
				FoundID:   found.ID,
				Score:     score,
				CreatedAt: time.Now(),
			}

			inserted, err := a.matches.InsertMatchIfAbsent(ctx, match)
			if err != nil {
				log.Printf("MatchActor: Aborting run, failed to record match %s/%s: %v", lost.ID, found.ID, err)
				context.Respond(utils.NewAppError(utils.ErrDatabase, "Matching run aborted by a persistence failure", err))
				return
			}
			if !inserted {
				continue
			}

			newMatches = append(newMatches, match)
			if a.hub != nil {
				a.hub.BroadcastMatchEvent(&websocket.MatchEvent{
					Type:      "match_created",
					MatchID:   match.ID,
					LostID:    match.LostID,
					FoundID:   match.FoundID,
					Score:     match.Score,
					CreatedAt: match.CreatedAt,
				})
			}
		}
	}

	log.Printf("MatchActor: Matching run recorded %d new matches in %v", len(newMatches), time.Since(startTime))
	a.metrics.AddOperationLatency("run_matching", time.Since(startTime))
	context.Respond(newMatches)
}

func (a *MatchActor) handleListMatches(context actor.Context) {
	ctx := stdctx.Background()

	matches, err := a.matches.GetMatches(ctx)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch matches", err))
		return
	}

	expanded := make([]*models.MatchWithPosts, 0, len(matches))
	for _, match := range matches {
		lost, err := a.posts.GetPost(ctx, match.LostID)
		if err != nil {
			log.Printf("MatchActor: Skipping match %s, lost post %s unavailable: %v", match.ID, match.LostID, err)
			continue
		}
		found, err := a.posts.GetPost(ctx, match.FoundID)
		if err != nil {
			log.Printf("MatchActor: Skipping match %s, found post %s unavailable: %v", match.ID, match.FoundID, err)
			continue
		}
		expanded = append(expanded, &models.MatchWithPosts{
			Match: *match,
			Lost:  lost,
			Found: found,
		})
	}

	context.Respond(expanded)
}

// handleNotifyMatch writes one system comment on each side of the match.
// If the first comment saves and the second fails, the first stays; the
// error is reported to the caller, who can retry the notification.
func (a *MatchActor) handleNotifyMatch(context actor.Context, msg *NotifyMatchMsg) {
	ctx := stdctx.Background()

	match, err := a.matches.GetMatch(ctx, msg.MatchID)
	if err != nil {
		context.Respond(err)
		return
	}

	lost, err := a.posts.GetPost(ctx, match.LostID)
	if err != nil {
		context.Respond(err)
		return
	}
	found, err := a.posts.GetPost(ctx, match.FoundID)
	if err != nil {
		context.Respond(err)
		return
	}

	percent := int(math.Round(match.Score * 100))

	lostComment := a.buildSystemComment(lost.ID, fmt.Sprintf(
		"%s found item looks like a %d%% match for this post: \"%s\" at /post?id=%s",
		notificationLead(msg.Verified), percent, found.Title, found.ID))
	foundComment := a.buildSystemComment(found.ID, fmt.Sprintf(
		"%s lost item looks like a %d%% match for this post: \"%s\" at /post?id=%s",
		notificationLead(msg.Verified), percent, lost.Title, lost.ID))

	if err := a.comments.SaveComment(ctx, lostComment); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to post match notification", err))
		return
	}
	if err := a.comments.SaveComment(ctx, foundComment); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to post match notification", err))
		return
	}

	log.Printf("MatchActor: Notified both posts of match %s (verified=%v)", match.ID, msg.Verified)
	context.Respond(&models.StatusResponse{Success: true, Message: "Match notification posted"})
}

func notificationLead(verified bool) string {
	if verified {
		return "An admin confirmed that a"
	}
	return "A possible"
}

func (a *MatchActor) buildSystemComment(postID uuid.UUID, content string) *models.Comment {
	now := time.Now()
	return &models.Comment{
		ID:             uuid.New(),
		PostID:         postID,
		AuthorUsername: "GatorFind",
		Content:        content,
		IsSystem:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
