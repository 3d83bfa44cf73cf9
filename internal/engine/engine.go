package engine

import (
	"gator-find/internal/config"
	"gator-find/internal/database"
	"gator-find/internal/engine/actors"
	"gator-find/internal/utils"
	"gator-find/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
)

// Engine owns the actor topology and coordinates communication between actors
type Engine struct {
	userSupervisor  *actor.PID
	postActor       *actor.PID
	commentActor    *actor.PID
	matchActor      *actor.PID
	moderationActor *actor.PID
}

// NewEngine spawns all domain actors against the given store. The hub may
// be nil when no live feed is attached.
func NewEngine(system *actor.ActorSystem, metrics *utils.MetricsCollector, store database.Store, cfg *config.Config, hub *websocket.Hub) *Engine {
	context := system.Root

	userProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewUserSupervisor(store, store)
	})
	userPID := context.Spawn(userProps)

	postProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewPostActor(metrics, store, store, store)
	})
	postPID := context.Spawn(postProps)

	commentProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewCommentActor(store, store, store)
	})
	commentPID := context.Spawn(commentProps)

	matchProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewMatchActor(cfg.Matching.Threshold, metrics, store, store, store, hub)
	})
	matchPID := context.Spawn(matchProps)

	moderationProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewModerationActor(cfg.Moderation.ReportReward, cfg.Moderation.ExemptType, metrics, store, store, store)
	})
	moderationPID := context.Spawn(moderationProps)

	return &Engine{
		userSupervisor:  userPID,
		postActor:       postPID,
		commentActor:    commentPID,
		matchActor:      matchPID,
		moderationActor: moderationPID,
	}
}

// GetUserSupervisor returns the PID of the user supervisor
func (e *Engine) GetUserSupervisor() *actor.PID {
	return e.userSupervisor
}

// GetPostActor returns the PID of the post actor
func (e *Engine) GetPostActor() *actor.PID {
	return e.postActor
}

// GetCommentActor returns the PID of the comment actor
func (e *Engine) GetCommentActor() *actor.PID {
	return e.commentActor
}

// GetMatchActor returns the PID of the match actor
func (e *Engine) GetMatchActor() *actor.PID {
	return e.matchActor
}

// GetModerationActor returns the PID of the moderation actor
func (e *Engine) GetModerationActor() *actor.PID {
	return e.moderationActor
}
