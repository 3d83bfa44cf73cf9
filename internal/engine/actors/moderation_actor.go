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

// Message types for moderation
type (
	SubmitReportMsg struct {
		PostID      uuid.UUID
		ReporterID  uuid.UUID
		Type        string
		Description string
	}

	// ResolveReportMsg closes a report with an admin response. The
	// reporter is awarded points only when the report actually moves
	// from Pending to Resolved and its type is not exempt.
	ResolveReportMsg struct {
		ReportID      uuid.UUID
		AdminResponse string
	}

	ListReportsMsg struct {
		Status models.ReportStatus
	}

	GetReportMsg struct {
		ReportID uuid.UUID
	}
)

// ModerationActor owns the report ledger and the reporter point awards
type ModerationActor struct {
	reward     int
	exemptType string
	metrics    *utils.MetricsCollector
	reports    database.ReportStore
	posts      database.PostStore
	users      database.UserStore
}

func NewModerationActor(reward int, exemptType string, metrics *utils.MetricsCollector, reports database.ReportStore, posts database.PostStore, users database.UserStore) actor.Actor {
	return &ModerationActor{
		reward:     reward,
		exemptType: exemptType,
		metrics:    metrics,
		reports:    reports,
		posts:      posts,
		users:      users,
	}
}

func (a *ModerationActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("ModerationActor started with reward %d, exempt type %q", a.reward, a.exemptType)
	case *SubmitReportMsg:
		a.handleSubmitReport(context, msg)
	case *ResolveReportMsg:
		a.handleResolveReport(context, msg)
	case *ListReportsMsg:
		a.handleListReports(context, msg)
	case *GetReportMsg:
		a.handleGetReport(context, msg)
	default:
		log.Printf("ModerationActor: Unknown message type: %T", msg)
	}
}

func (a *ModerationActor) handleSubmitReport(context actor.Context, msg *SubmitReportMsg) {
	startTime := time.Now()

	if msg.Type == "" || msg.Description == "" {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Report type and description are required", nil))
		return
	}

	ctx := stdctx.Background()
	if _, err := a.posts.GetPost(ctx, msg.PostID); err != nil {
		if utils.IsErrorCode(err, utils.ErrPostNotFound) {
			context.Respond(utils.NewPostNotFoundError(msg.PostID.String()))
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to verify reported post", err))
		return
	}

	now := time.Now()
	postID := msg.PostID
	report := &models.Report{
		ID:          uuid.New(),
		PostID:      &postID,
		ReporterID:  msg.ReporterID,
		Type:        msg.Type,
		Description: msg.Description,
		Status:      models.ReportPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := a.reports.SaveReport(ctx, report); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save report", err))
		return
	}

	log.Printf("ModerationActor: Report %s filed against post %s by user %s", report.ID, msg.PostID, msg.ReporterID)
	a.metrics.AddOperationLatency("submit_report", time.Since(startTime))
	context.Respond(report)
}

func (a *ModerationActor) handleResolveReport(context actor.Context, msg *ResolveReportMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	report, err := a.reports.GetReport(ctx, msg.ReportID)
	if err != nil {
		context.Respond(err)
		return
	}

	wasPending := report.Status == models.ReportPending

	report.Status = models.ReportResolved
	report.AdminResponse = msg.AdminResponse
	report.UpdatedAt = time.Now()

	if err := a.reports.SaveReport(ctx, report); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to update report", err))
		return
	}

	// Points go out on the Pending -> Resolved transition only, so an
	// admin re-resolving a closed report never pays twice. Item claims
	// earn nothing.
	if wasPending && report.ReporterID != uuid.Nil && report.Type != a.exemptType {
		balance, err := a.users.AddPoints(ctx, report.ReporterID, a.reward)
		if err != nil {
			log.Printf("ModerationActor: Report %s resolved but point award failed for user %s: %v", report.ID, report.ReporterID, err)
			context.Respond(utils.NewPointsAwardError(report.ReporterID.String(), a.reward, err))
			return
		}
		log.Printf("ModerationActor: Awarded %d points to user %s (balance now %d) for report %s", a.reward, report.ReporterID, balance, report.ID)
	}

	a.metrics.AddOperationLatency("resolve_report", time.Since(startTime))
	context.Respond(report)
}

func (a *ModerationActor) handleListReports(context actor.Context, msg *ListReportsMsg) {
	ctx := stdctx.Background()

	reports, err := a.reports.GetReportsByStatus(ctx, msg.Status)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch reports", err))
		return
	}
	context.Respond(reports)
}

func (a *ModerationActor) handleGetReport(context actor.Context, msg *GetReportMsg) {
	ctx := stdctx.Background()

	report, err := a.reports.GetReport(ctx, msg.ReportID)
	if err != nil {
		context.Respond(err)
		return
	}
	context.Respond(report)
}
