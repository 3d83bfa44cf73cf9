package handlers

import (
	"encoding/json"
	"gator-find/internal/engine/actors"
	"gator-find/internal/middleware"
	"gator-find/internal/models"
	"net/http"

	"github.com/google/uuid"
)

// SubmitReportRequest represents a request to report a post
type SubmitReportRequest struct {
	PostID      string `json:"postId"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ResolveReportRequest represents an admin's resolution of a report
type ResolveReportRequest struct {
	ReportID      string `json:"reportId"`
	AdminResponse string `json:"adminResponse"`
}

// HandleReport handles report submission and lookup
func (s *Server) HandleReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			s.handleSubmitReport(w, r)
		case http.MethodGet:
			s.handleGetReport(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req SubmitReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.PostID == "" || req.Type == "" || req.Description == "" {
		http.Error(w, "Post ID, type and description are required", http.StatusBadRequest)
		return
	}

	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		http.Error(w, "Invalid post ID format", http.StatusBadRequest)
		return
	}

	future := s.Context.RequestFuture(s.Engine.GetModerationActor(), &actors.SubmitReportMsg{
		PostID:      postID,
		ReporterID:  callerID,
		Type:        req.Type,
		Description: req.Description,
	}, s.RequestTimeout)

	result, err := future.Result()
	if err != nil {
		http.Error(w, "Failed to submit report", http.StatusInternalServerError)
		return
	}

	respondWithActorResult(w, result)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	reportIDStr := r.URL.Query().Get("id")
	if reportIDStr == "" {
		http.Error(w, "Report ID required", http.StatusBadRequest)
		return
	}

	reportID, err := uuid.Parse(reportIDStr)
	if err != nil {
		http.Error(w, "Invalid report ID format", http.StatusBadRequest)
		return
	}

	future := s.Context.RequestFuture(s.Engine.GetModerationActor(),
		&actors.GetReportMsg{ReportID: reportID},
		s.RequestTimeout)

	result, err := future.Result()
	if err != nil {
		http.Error(w, "Failed to fetch report", http.StatusInternalServerError)
		return
	}

	respondWithActorResult(w, result)
}

// HandleListReports returns reports filtered by status (admin only)
func (s *Server) HandleListReports() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		status := models.ReportStatus(r.URL.Query().Get("status"))
		if status != "" && status != models.ReportPending && status != models.ReportResolved {
			http.Error(w, "Invalid report status", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(s.Engine.GetModerationActor(),
			&actors.ListReportsMsg{Status: status},
			s.RequestTimeout)

		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to fetch reports", http.StatusInternalServerError)
			return
		}

		respondWithActorResult(w, result)
	}
}

// HandleResolveReport closes a report with an admin response (admin only)
func (s *Server) HandleResolveReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req ResolveReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		reportID, err := uuid.Parse(req.ReportID)
		if err != nil {
			http.Error(w, "Invalid report ID format", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(s.Engine.GetModerationActor(), &actors.ResolveReportMsg{
			ReportID:      reportID,
			AdminResponse: req.AdminResponse,
		}, s.RequestTimeout)

		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to resolve report", http.StatusInternalServerError)
			return
		}

		respondWithActorResult(w, result)
	}
}
