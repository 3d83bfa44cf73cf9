package handlers

import (
	"encoding/json"
	"gator-find/internal/engine/actors"
	"gator-find/internal/middleware"
	"net/http"

	"github.com/google/uuid"
)

// CreateCommentRequest represents a request to create a new comment
type CreateCommentRequest struct {
	PostID   string  `json:"postId"`
	Content  string  `json:"content"`
	ParentID *string `json:"parentId,omitempty"`
}

// EditCommentRequest represents a request to edit an existing comment
type EditCommentRequest struct {
	CommentID string `json:"commentId"`
	Content   string `json:"content"`
}

// HandleComment handles comment creation, editing and deletion
func (s *Server) HandleComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			s.handleCreateComment(w, r)
		case http.MethodPut:
			s.handleEditComment(w, r)
		case http.MethodDelete:
			s.handleDeleteComment(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		http.Error(w, "Invalid post ID format", http.StatusBadRequest)
		return
	}

	var parentID *uuid.UUID
	if req.ParentID != nil {
		parsed, err := uuid.Parse(*req.ParentID)
		if err != nil {
			http.Error(w, "Invalid parent comment ID format", http.StatusBadRequest)
			return
		}
		parentID = &parsed
	}

	future := s.Context.RequestFuture(s.Engine.GetCommentActor(), &actors.CreateCommentMsg{
		Content:  req.Content,
		AuthorID: callerID,
		PostID:   postID,
		ParentID: parentID,
	}, s.RequestTimeout)

	result, err := future.Result()
	if err != nil {
		http.Error(w, "Failed to create comment", http.StatusInternalServerError)
		return
	}

	respondWithActorResult(w, result)
}

func (s *Server) handleEditComment(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req EditCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	commentID, err := uuid.Parse(req.CommentID)
	if err != nil {
		http.Error(w, "Invalid comment ID format", http.StatusBadRequest)
		return
	}

	future := s.Context.RequestFuture(s.Engine.GetCommentActor(), &actors.EditCommentMsg{
		CommentID: commentID,
		AuthorID:  callerID,
		Content:   req.Content,
	}, s.RequestTimeout)

	result, err := future.Result()
	if err != nil {
		http.Error(w, "Failed to edit comment", http.StatusInternalServerError)
		return
	}

	respondWithActorResult(w, result)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	commentIDStr := r.URL.Query().Get("id")
	if commentIDStr == "" {
		http.Error(w, "Comment ID required", http.StatusBadRequest)
		return
	}

	commentID, err := uuid.Parse(commentIDStr)
	if err != nil {
		http.Error(w, "Invalid comment ID format", http.StatusBadRequest)
		return
	}

	future := s.Context.RequestFuture(s.Engine.GetCommentActor(), &actors.DeleteCommentMsg{
		CommentID: commentID,
		AuthorID:  callerID,
		IsAdmin:   middleware.IsAdminFromContext(r.Context()),
	}, s.RequestTimeout)

	result, err := future.Result()
	if err != nil {
		http.Error(w, "Failed to delete comment", http.StatusInternalServerError)
		return
	}

	respondWithActorResult(w, result)
}

// HandlePostComments returns the comments on a post, oldest first
func (s *Server) HandlePostComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		postIDStr := r.URL.Query().Get("postId")
		if postIDStr == "" {
			http.Error(w, "Post ID required", http.StatusBadRequest)
			return
		}

		postID, err := uuid.Parse(postIDStr)
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(s.Engine.GetCommentActor(),
			&actors.GetCommentsForPostMsg{PostID: postID},
			s.RequestTimeout)

		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to fetch comments", http.StatusInternalServerError)
			return
		}

		respondWithActorResult(w, result)
	}
}
