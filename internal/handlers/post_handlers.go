package handlers

import (
	"encoding/json"
	"fmt"
	"gator-find/internal/engine/actors"
	"gator-find/internal/middleware"
	"gator-find/internal/models"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CreatePostRequest represents a request to create a lost or found post
type CreatePostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Status      string `json:"status"` // "lost" or "found"
}

// EditPostRequest represents a request to edit an existing post
type EditPostRequest struct {
	PostID      string `json:"postId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// ResolvePostRequest represents a request to close out a post
type ResolvePostRequest struct {
	PostID     string `json:"postId"`
	Resolution string `json:"resolution"` // "Resolved" or "Unresolved"
	Note       string `json:"note"`
}

// ArchivePostRequest represents a request to archive or unarchive a post
type ArchivePostRequest struct {
	PostID   string `json:"postId"`
	Archived bool   `json:"archived"`
}

// HandlePost handles post creation, lookup, editing and deletion
func (s *Server) HandlePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			s.handleCreatePost(w, r)
		case http.MethodGet:
			s.handleGetPost(w, r)
		case http.MethodPut:
			s.handleEditPost(w, r)
		case http.MethodDelete:
			s.handleDeletePost(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Title == "" || req.Description == "" {
		http.Error(w, "Title and description are required", http.StatusBadRequest)
		return
	}

	future := s.Context.RequestFuture(s.Engine.GetPostActor(), &actors.CreatePostMsg{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Status:      models.PostStatus(req.Status),
		OwnerID:     callerID,
	}, s.RequestTimeout)

	result, err := future.Result()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create post: %v", err), http.StatusInternalServerError)
		return
	}

	respondWithActorResult(w, result)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	postID := r.URL.Query().Get("id")
	status := r.URL.Query().Get("status")

	if postID != "" {
		id, err := uuid.Parse(postID)
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(s.Engine.GetPostActor(),
			&actors.GetPostMsg{PostID: id},
			s.RequestTimeout)

		result, err := future.Result()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get post: %v", err), http.StatusInternalServerError)
			return
		}

		respondWithActorResult(w, result)
		return
	}

	if status != "" {
		future := s.Context.RequestFuture(s.Engine.GetPostActor(),
			&actors.GetPostsByStatusMsg{Status: models.PostStatus(status)},
			s.RequestTimeout)

		result, err := future.Result()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get posts: %v", err), http.StatusInternalServerError)
			return
		}

		respondWithActorResult(w, result)
		return
	}

	http.Error(w, "Either post ID or status is required", http.StatusBadRequest)
}

func (s *Server) handleEditPost(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req EditPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		http.Error(w, "Invalid post ID format", http.StatusBadRequest)
		return
	}

	future := s.Context.RequestFuture(s.Engine.GetPostActor(), &actors.EditPostMsg{
		PostID:      postID,
		EditorID:    callerID,
		IsAdmin:     middleware.IsAdminFromContext(r.Context()),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
	}, s.RequestTimeout)

	result, err := future.Result()
	if err != nil {
		http.Error(w, "Failed to edit post", http.StatusInternalServerError)
		return
	}

	respondWithActorResult(w, result)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	postIDStr := r.URL.Query().Get("id")
	if postIDStr == "" {
		http.Error(w, "Post ID required", http.StatusBadRequest)
		return
	}

	postID, err := uuid.Parse(postIDStr)
	if err != nil {
		http.Error(w, "Invalid post ID format", http.StatusBadRequest)
		return
	}

	future := s.Context.RequestFuture(s.Engine.GetPostActor(), &actors.DeletePostMsg{
		PostID:      postID,
		RequesterID: callerID,
		IsAdmin:     middleware.IsAdminFromContext(r.Context()),
	}, s.RequestTimeout)

	result, err := future.Result()
	if err != nil {
		http.Error(w, "Failed to delete post", http.StatusInternalServerError)
		return
	}

	respondWithActorResult(w, result)
}

// HandleResolvePost marks a post Resolved or Unresolved
func (s *Server) HandleResolvePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		callerID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		var req ResolvePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		postID, err := uuid.Parse(req.PostID)
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(s.Engine.GetPostActor(), &actors.ResolvePostMsg{
			PostID:     postID,
			ResolverID: callerID,
			IsAdmin:    middleware.IsAdminFromContext(r.Context()),
			Resolution: models.ResolutionStatus(req.Resolution),
			Note:       req.Note,
		}, s.RequestTimeout)

		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to resolve post", http.StatusInternalServerError)
			return
		}

		respondWithActorResult(w, result)
	}
}

// HandleArchivePost archives or unarchives a post
func (s *Server) HandleArchivePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		callerID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		var req ArchivePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		postID, err := uuid.Parse(req.PostID)
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(s.Engine.GetPostActor(), &actors.ArchivePostMsg{
			PostID:      postID,
			RequesterID: callerID,
			IsAdmin:     middleware.IsAdminFromContext(r.Context()),
			Archived:    req.Archived,
		}, s.RequestTimeout)

		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to archive post", http.StatusInternalServerError)
			return
		}

		respondWithActorResult(w, result)
	}
}

// HandleRecentPosts returns the most recent posts of either status
func (s *Server) HandleRecentPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		limit := 20 // Default limit
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			fmt.Sscanf(limitStr, "%d", &limit)
		}

		future := s.Context.RequestFuture(
			s.Engine.GetPostActor(),
			&actors.GetRecentPostsMsg{Limit: limit},
			s.RequestTimeout,
		)

		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to fetch recent posts", http.StatusInternalServerError)
			return
		}

		respondWithActorResult(w, result)
	}
}

// HandleHealth handles health check requests
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		requests, errors, uptime := s.Metrics.Snapshot()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":         "healthy",
			"total_requests": requests,
			"total_errors":   errors,
			"uptime":         uptime.String(),
			"server_time":    time.Now(),
		})
	}
}
