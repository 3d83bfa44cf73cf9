// internal/database/report_repository.go
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

// ReportDocument represents the MongoDB schema for a report.
// PostID is a pointer because admin post deletion detaches reports
// from the removed post while keeping the ledger entry.
type ReportDocument struct {
	ID            string    `bson:"_id"`
	PostID        *string   `bson:"postid,omitempty"`
	ReporterID    string    `bson:"reporterid"`
	Type          string    `bson:"type"`
	Description   string    `bson:"description"`
	Status        string    `bson:"status"`
	AdminResponse string    `bson:"adminresponse"`
	CreatedAt     time.Time `bson:"createdat"`
	UpdatedAt     time.Time `bson:"updatedat"`
}

func reportToDocument(report *models.Report) *ReportDocument {
	doc := &ReportDocument{
		ID:            report.ID.String(),
		ReporterID:    report.ReporterID.String(),
		Type:          report.Type,
		Description:   report.Description,
		Status:        string(report.Status),
		AdminResponse: report.AdminResponse,
		CreatedAt:     report.CreatedAt,
		UpdatedAt:     report.UpdatedAt,
	}
	if report.PostID != nil {
		s := report.PostID.String()
		doc.PostID = &s
	}
	return doc
}

func documentToReport(doc *ReportDocument) (*models.Report, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid report ID in database: %v", err)
	}
	reporterID, err := uuid.Parse(doc.ReporterID)
	if err != nil {
		return nil, fmt.Errorf("invalid reporter ID in database: %v", err)
	}

	report := &models.Report{
		ID:            id,
		ReporterID:    reporterID,
		Type:          doc.Type,
		Description:   doc.Description,
		Status:        models.ReportStatus(doc.Status),
		AdminResponse: doc.AdminResponse,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
	if doc.PostID != nil {
		postID, err := uuid.Parse(*doc.PostID)
		if err != nil {
			return nil, fmt.Errorf("invalid post ID in database: %v", err)
		}
		report.PostID = &postID
	}
	return report, nil
}

// SaveReport creates or updates a report in MongoDB
func (m *MongoDB) SaveReport(ctx context.Context, report *models.Report) error {
	doc := reportToDocument(report)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	_, err := m.Reports.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save report: %v", err)
	}
	return nil
}

// GetReport retrieves a single report by ID
func (m *MongoDB) GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var doc ReportDocument

	err := m.Reports.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrReportNotFound, "Report not found", err)
	}
	if err != nil {
		return nil, err
	}

	return documentToReport(&doc)
}

// GetReportsByStatus retrieves reports filtered by status, newest first.
// An empty status returns the full ledger.
func (m *MongoDB) GetReportsByStatus(ctx context.Context, status models.ReportStatus) ([]*models.Report, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdat", Value: -1}})

	cursor, err := m.Reports.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %v", err)
	}
	defer cursor.Close(ctx)

	var reports []*models.Report
	for cursor.Next(ctx) {
		var doc ReportDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Printf("Error decoding report document: %v", err)
			continue
		}
		report, err := documentToReport(&doc)
		if err != nil {
			log.Printf("Error converting report document: %v", err)
			continue
		}
		reports = append(reports, report)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error reading reports: %v", err)
	}

	return reports, nil
}

// ResolveReportsForPost bulk-resolves every report attached to a post and
// detaches them from it. Used when an admin deletes a post; no points are
// awarded through this path.
func (m *MongoDB) ResolveReportsForPost(ctx context.Context, postID uuid.UUID, adminResponse string) (int64, error) {
	filter := bson.M{"postid": postID.String()}
	update := bson.M{"$set": bson.M{
		"status":        string(models.ReportResolved),
		"adminresponse": adminResponse,
		"postid":        nil,
		"updatedat":     time.Now(),
	}}

	result, err := m.Reports.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve reports for post: %v", err)
	}
	return result.ModifiedCount, nil
}
