package actors

import (
	"errors"
	"testing"
	"time"

	"gator-find/internal/models"
	"gator-find/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
)

func spawnModerationActor(system *actor.ActorSystem, store *fakeStore) *actor.PID {
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewModerationActor(5, models.ReportTypeItemClaim, utils.NewMetricsCollector(), store, store, store)
	})
	return system.Root.Spawn(props)
}

func TestSubmitReport(t *testing.T) {
	system := actor.NewActorSystem()
	store := newFakeStore()
	pid := spawnModerationActor(system, store)

	owner := seedUser(store, "owner", 0)
	reporter := seedUser(store, "reporter", 0)
	post := seedPost(store, owner, models.PostLost, "Lost wallet", "Black leather wallet")

	future := system.Root.RequestFuture(pid, &SubmitReportMsg{
		PostID:      post.ID,
		ReporterID:  reporter.ID,
		Type:        "Spam",
		Description: "Duplicate post",
	}, 5*time.Second)
	result, err := future.Result()
	assert.NoError(t, err)

	report := result.(*models.Report)
	assert.Equal(t, models.ReportPending, report.Status)
	assert.Equal(t, reporter.ID, report.ReporterID)
	assert.Equal(t, post.ID, *report.PostID)

	// Missing type or description is rejected
	future = system.Root.RequestFuture(pid, &SubmitReportMsg{
		PostID:     post.ID,
		ReporterID: reporter.ID,
		Type:       "Spam",
	}, 5*time.Second)
	result, err = future.Result()
	assert.NoError(t, err)
	appErr := result.(*utils.AppError)
	assert.Equal(t, utils.ErrInvalidInput, appErr.Code)
}

func TestResolveReportAwardsPoints(t *testing.T) {
	system := actor.NewActorSystem()
	store := newFakeStore()
	pid := spawnModerationActor(system, store)

	owner := seedUser(store, "owner", 0)
	reporter := seedUser(store, "reporter", 0)
	post := seedPost(store, owner, models.PostLost, "Lost wallet", "Black leather wallet")

	future := system.Root.RequestFuture(pid, &SubmitReportMsg{
		PostID:      post.ID,
		ReporterID:  reporter.ID,
		Type:        "Spam",
		Description: "Duplicate post",
	}, 5*time.Second)
	result, err := future.Result()
	assert.NoError(t, err)
	report := result.(*models.Report)

	future = system.Root.RequestFuture(pid, &ResolveReportMsg{
		ReportID:      report.ID,
		AdminResponse: "Post removed, thanks",
	}, 5*time.Second)
	result, err = future.Result()
	assert.NoError(t, err)

	resolved := result.(*models.Report)
	assert.Equal(t, models.ReportResolved, resolved.Status)
	assert.Equal(t, "Post removed, thanks", resolved.AdminResponse)

	user, err := store.GetUser(nil, reporter.ID)
	assert.NoError(t, err)
	assert.Equal(t, 5, user.Points)
}

func TestResolveReportNoDoubleAward(t *testing.T) {
	system := actor.NewActorSystem()
	store := newFakeStore()
	pid := spawnModerationActor(system, store)

	owner := seedUser(store, "owner", 0)
	reporter := seedUser(store, "reporter", 0)
	post := seedPost(store, owner, models.PostLost, "Lost wallet", "Black leather wallet")

	future := system.Root.RequestFuture(pid, &SubmitReportMsg{
		PostID:      post.ID,
		ReporterID:  reporter.ID,
		Type:        "Spam",
		Description: "Duplicate post",
	}, 5*time.Second)
	result, _ := future.Result()
	report := result.(*models.Report)

	// Resolve twice; the second pass updates the response but pays nothing
	for _, response := range []string{"First pass", "Second pass"} {
		future = system.Root.RequestFuture(pid, &ResolveReportMsg{
			ReportID:      report.ID,
			AdminResponse: response,
		}, 5*time.Second)
		result, err := future.Result()
		assert.NoError(t, err)
		assert.IsType(t, &models.Report{}, result)
	}

	user, err := store.GetUser(nil, reporter.ID)
	assert.NoError(t, err)
	assert.Equal(t, 5, user.Points)
}

func TestResolveItemClaimEarnsNothing(t *testing.T) {
	system := actor.NewActorSystem()
	store := newFakeStore()
	pid := spawnModerationActor(system, store)

	owner := seedUser(store, "owner", 0)
	claimant := seedUser(store, "claimant", 0)
	post := seedPost(store, owner, models.PostFound, "Found wallet", "Black leather wallet")

	future := system.Root.RequestFuture(pid, &SubmitReportMsg{
		PostID:      post.ID,
		ReporterID:  claimant.ID,
		Type:        models.ReportTypeItemClaim,
		Description: "That is my wallet, I can describe the contents",
	}, 5*time.Second)
	result, _ := future.Result()
	report := result.(*models.Report)

	future = system.Root.RequestFuture(pid, &ResolveReportMsg{
		ReportID:      report.ID,
		AdminResponse: "Claim verified, pickup arranged",
	}, 5*time.Second)
	result, err := future.Result()
	assert.NoError(t, err)

	resolved := result.(*models.Report)
	assert.Equal(t, models.ReportResolved, resolved.Status)

	user, err := store.GetUser(nil, claimant.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, user.Points)
}

func TestResolveReportAwardFailurePropagates(t *testing.T) {
	system := actor.NewActorSystem()
	store := newFakeStore()
	pid := spawnModerationActor(system, store)

	owner := seedUser(store, "owner", 0)
	reporter := seedUser(store, "reporter", 0)
	post := seedPost(store, owner, models.PostLost, "Lost wallet", "Black leather wallet")

	future := system.Root.RequestFuture(pid, &SubmitReportMsg{
		PostID:      post.ID,
		ReporterID:  reporter.ID,
		Type:        "Spam",
		Description: "Duplicate post",
	}, 5*time.Second)
	result, _ := future.Result()
	report := result.(*models.Report)

	store.failAddPoints = errors.New("connection reset")

	future = system.Root.RequestFuture(pid, &ResolveReportMsg{
		ReportID:      report.ID,
		AdminResponse: "Post removed",
	}, 5*time.Second)
	result, err := future.Result()
	assert.NoError(t, err)

	appErr := result.(*utils.AppError)
	assert.Equal(t, utils.ErrPointsAward, appErr.Code)

	// The report is already Resolved even though the award failed
	saved, err := store.GetReport(nil, report.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.ReportResolved, saved.Status)
}

func TestAddPointsFloorsAtZero(t *testing.T) {
	store := newFakeStore()
	user := seedUser(store, "debtor", 3)

	balance, err := store.AddPoints(nil, user.ID, -10)
	assert.NoError(t, err)
	assert.Equal(t, 0, balance)
}

func TestListReportsByStatus(t *testing.T) {
	system := actor.NewActorSystem()
	store := newFakeStore()
	pid := spawnModerationActor(system, store)

	owner := seedUser(store, "owner", 0)
	reporter := seedUser(store, "reporter", 0)
	post := seedPost(store, owner, models.PostLost, "Lost wallet", "Black leather wallet")

	for i := 0; i < 3; i++ {
		future := system.Root.RequestFuture(pid, &SubmitReportMsg{
			PostID:      post.ID,
			ReporterID:  reporter.ID,
			Type:        "Spam",
			Description: "Duplicate post",
		}, 5*time.Second)
		_, err := future.Result()
		assert.NoError(t, err)
	}

	future := system.Root.RequestFuture(pid, &ListReportsMsg{Status: models.ReportPending}, 5*time.Second)
	result, err := future.Result()
	assert.NoError(t, err)
	assert.Len(t, result.([]*models.Report), 3)

	future = system.Root.RequestFuture(pid, &ListReportsMsg{Status: models.ReportResolved}, 5*time.Second)
	result, err = future.Result()
	assert.NoError(t, err)
	assert.Len(t, result.([]*models.Report), 0)
}
