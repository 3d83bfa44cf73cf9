package actors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"gator-find/internal/models"
	"gator-find/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func spawnMatchActor(system *actor.ActorSystem, store *fakeStore) *actor.PID {
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewMatchActor(0.3, utils.NewMetricsCollector(), store, store, store, nil)
	})
	return system.Root.Spawn(props)
}

func TestRunMatchingRecordsSimilarPairs(t *testing.T) {
	system := actor.NewActorSystem()
	store := newFakeStore()
	pid := spawnMatchActor(system, store)

	owner := seedUser(store, "owner", 0)
	lost := seedPost(store, owner, models.PostLost, "Lost blue water bottle", "Blue Hydro Flask with stickers")
	found := seedPost(store, owner, models.PostFound, "Found blue water bottle", "Blue Hydro Flask covered in stickers")
	unrelated := seedPost(store, owner, models.PostFound, "Found car keys", "Toyota fob on a red lanyard")
	unrelated.Location = "Norman Hall parking garage"

	future := system.Root.RequestFuture(pid, &RunMatchingMsg{}, 5*time.Second)
	result, err := future.Result()
	assert.NoError(t, err)

	matches := result.([]*models.Match)
	assert.Len(t, matches, 1)
	assert.Equal(t, lost.ID, matches[0].LostID)
	assert.Equal(t, found.ID, matches[0].FoundID)
	assert.GreaterOrEqual(t, matches[0].Score, 0.3)
}

func TestRunMatchingWalletPair(t *testing.T) {
	system := actor.NewActorSystem()
	store := newFakeStore()
	pid := spawnMatchActor(system, store)

	owner := seedUser(store, "owner", 0)
	lost := seedPost(store, owner, models.PostLost, "Black Wallet", "lost near library")
	seedPost(store, owner, models.PostFound, "Black Wallet", "found near library")

	future := system.Root.RequestFuture(pid, &RunMatchingMsg{}, 5*time.Second)
	result, err := future.Result()
	assert.NoError(t, err)

	matches := result.([]*models.Match)
	assert.Len(t, matches, 1)
	assert.Equal(t, lost.ID, matches[0].LostID)
	assert.GreaterOrEqual(t, matches[0].Score, 0.3)
}

func TestRunMatchingUnrelatedItems(t *testing.T) {
	system := actor.NewActorSystem()
	store := newFakeStore()
	pid := spawnMatchActor(system, store)

	owner := seedUser(store, "owner", 0)
	bike := seedPost(store, owner, models.PostLost, "Red Bicycle", "")
	bike.Location = "Bike rack"
	book := seedPost(store, owner, models.PostFound, "Math Textbook", "")
	book.Location = "Norman Hall"

	future := system.Root.RequestFuture(pid, &RunMatchingMsg{}, 5*time.Second)
	result, err := future.Result()
	assert.NoError(t, err)
	assert.Len(t, result.([]*models.Match), 0)
}

func TestRunMatchingSkipsKnownPairs(t *testing.T) {
	system := actor.NewActorSystem()
	store := newFakeStore()
	pid := spawnMatchActor(system, store)

	owner := seedUser(store, "owner", 0)
	seedPost(store, owner, models.PostLost, "Lost blue water bottle", "Blue Hydro Flask with stickers")
	seedPost(store, owner, models.PostFound, "Found blue water bottle", "Blue Hydro Flask covered in stickers")

	future := system.Root.RequestFuture(pid, &RunMatchingMsg{}, 5*time.Second)
	result, err := future.Result()
	assert.NoError(t, err)
	assert.Len(t, result.([]*models.Match), 1)

	// Second run rediscovers the same pair but records nothing new
	future = system.Root.RequestFuture(pid, &RunMatchingMsg{}, 5*time.Second)
	result, err = future.Result()
	assert.NoError(t, err)
	assert.Len(t, result.([]*models.Match), 0)

	stored, err := store.GetMatches(nil)
	assert.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestRunMatchingAbortsOnPersistenceFailure(t *testing.T) {
	system := actor.NewActorSystem()
	store := newFakeStore()
	pid := spawnMatchActor(system, store)

	owner := seedUser(store, "owner", 0)
	seedPost(store, owner, models.PostLost, "Lost blue water bottle", "Blue Hydro Flask with stickers")
	seedPost(store, owner, models.PostFound, "Found blue water bottle", "Blue Hydro Flask covered in stickers")

	store.failInsertMatch = errors.New("connection reset")

	future := system.Root.RequestFuture(pid, &RunMatchingMsg{}, 5*time.Second)
	result, err := future.Result()
	assert.NoError(t, err)

	appErr := result.(*utils.AppError)
	assert.Equal(t, utils.ErrDatabase, appErr.Code)
}

func TestListMatchesExpandsPosts(t *testing.T) {
	system := actor.NewActorSystem()
	store := newFakeStore()
	pid := spawnMatchActor(system, store)

	owner := seedUser(store, "owner", 0)
	lost := seedPost(store, owner, models.PostLost, "Lost blue water bottle", "Blue Hydro Flask with stickers")
	found := seedPost(store, owner, models.PostFound, "Found blue water bottle", "Blue Hydro Flask covered in stickers")

	future := system.Root.RequestFuture(pid, &RunMatchingMsg{}, 5*time.Second)
	_, err := future.Result()
	assert.NoError(t, err)

	future = system.Root.RequestFuture(pid, &ListMatchesMsg{}, 5*time.Second)
	result, err := future.Result()
	assert.NoError(t, err)

	expanded := result.([]*models.MatchWithPosts)
	assert.Len(t, expanded, 1)
	assert.Equal(t, lost.ID, expanded[0].Lost.ID)
	assert.Equal(t, found.ID, expanded[0].Found.ID)
}

func TestNotifyMatchPostsSystemComments(t *testing.T) {
	system := actor.NewActorSystem()
	store := newFakeStore()
	pid := spawnMatchActor(system, store)

	owner := seedUser(store, "owner", 0)
	lost := seedPost(store, owner, models.PostLost, "Lost blue water bottle", "Blue Hydro Flask with stickers")
	found := seedPost(store, owner, models.PostFound, "Found blue water bottle", "Blue Hydro Flask covered in stickers")

	future := system.Root.RequestFuture(pid, &RunMatchingMsg{}, 5*time.Second)
	result, err := future.Result()
	assert.NoError(t, err)
	match := result.([]*models.Match)[0]

	future = system.Root.RequestFuture(pid, &NotifyMatchMsg{MatchID: match.ID, Verified: true}, 5*time.Second)
	result, err = future.Result()
	assert.NoError(t, err)

	status := result.(*models.StatusResponse)
	assert.True(t, status.Success)

	lostComments, err := store.GetPostComments(nil, lost.ID)
	assert.NoError(t, err)
	assert.Len(t, lostComments, 1)
	assert.True(t, lostComments[0].IsSystem)
	assert.Nil(t, lostComments[0].AuthorID)
	assert.Contains(t, lostComments[0].Content, "An admin confirmed")
	assert.Contains(t, lostComments[0].Content, fmt.Sprintf("/post?id=%s", found.ID))
	assert.True(t, strings.Contains(lostComments[0].Content, "% match"))

	foundComments, err := store.GetPostComments(nil, found.ID)
	assert.NoError(t, err)
	assert.Len(t, foundComments, 1)
	assert.Contains(t, foundComments[0].Content, fmt.Sprintf("/post?id=%s", lost.ID))
}

func TestNotifyMatchUnknownMatch(t *testing.T) {
	system := actor.NewActorSystem()
	store := newFakeStore()
	pid := spawnMatchActor(system, store)

	future := system.Root.RequestFuture(pid, &NotifyMatchMsg{MatchID: uuid.New()}, 5*time.Second)
	result, err := future.Result()
	assert.NoError(t, err)

	appErr := result.(*utils.AppError)
	assert.Equal(t, utils.ErrMatchNotFound, appErr.Code)
}
