package handlers

import (
	"encoding/json"
	"fmt"
	"gator-find/internal/engine/actors"
	"gator-find/internal/middleware"
	"gator-find/internal/types"
	"log"
	"net/http"

	"github.com/google/uuid"
)

// RegisterUserRequest represents a request to register a new user
type RegisterUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	StudentID string `json:"studentId"`
}

// LoginRequest represents a request to log in a user
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents a request to update the caller's profile
type UpdateProfileRequest struct {
	Bio       string `json:"bio"`
	StudentID string `json:"studentId"`
}

// BookmarkRequest represents a request to toggle a bookmark
type BookmarkRequest struct {
	PostID string `json:"postId"`
}

// HandleUserRegistration handles requests to register a new user
func (s *Server) HandleUserRegistration() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req RegisterUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(
			s.Engine.GetUserSupervisor(),
			&actors.RegisterUserMsg{
				Username:  req.Username,
				Email:     req.Email,
				Password:  req.Password,
				StudentID: req.StudentID,
			},
			s.RequestTimeout,
		)

		result, err := future.Result()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to register user: %v", err), http.StatusInternalServerError)
			return
		}

		respondWithActorResult(w, result)
	}
}

// HandleUserLogin handles requests to log in a user
func (s *Server) HandleUserLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		log.Printf("HTTP Handler: Received login request for email: %s", req.Email)

		future := s.Context.RequestFuture(
			s.Engine.GetUserSupervisor(),
			&actors.LoginMsg{
				Email:    req.Email,
				Password: req.Password,
			},
			s.RequestTimeout,
		)

		result, err := future.Result()
		if err != nil {
			log.Printf("HTTP Handler: Error getting login result: %v", err)
			http.Error(w, "Failed to process login", http.StatusInternalServerError)
			return
		}

		loginResp, ok := result.(*types.LoginResponse)
		if !ok {
			log.Printf("HTTP Handler: Invalid response type: %T", result)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		// Only mint the session token when the credentials checked out
		if loginResp.Success {
			userID, err := uuid.Parse(loginResp.UserID)
			if err != nil {
				log.Printf("HTTP Handler: Invalid user ID format: %v", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			token, err := middleware.GenerateToken(userID, loginResp.IsAdmin)
			if err != nil {
				log.Printf("HTTP Handler: Failed to generate token: %v", err)
				http.Error(w, "Failed to generate auth token", http.StatusInternalServerError)
				return
			}

			loginResp.Token = token
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(loginResp); err != nil {
			log.Printf("HTTP Handler: Failed to encode response: %v", err)
		}
	}
}

// HandleUserProfile handles profile reads and updates
func (s *Server) HandleUserProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			userIDStr := r.URL.Query().Get("userId")

			var userID uuid.UUID
			if userIDStr == "" {
				// Default to the authenticated caller
				callerID, ok := middleware.GetUserIDFromContext(r.Context())
				if !ok {
					http.Error(w, "User ID required", http.StatusBadRequest)
					return
				}
				userID = callerID
			} else {
				parsed, err := uuid.Parse(userIDStr)
				if err != nil {
					http.Error(w, "Invalid user ID format", http.StatusBadRequest)
					return
				}
				userID = parsed
			}

			future := s.Context.RequestFuture(
				s.Engine.GetUserSupervisor(),
				&actors.GetUserProfileMsg{UserID: userID},
				s.RequestTimeout,
			)

			result, err := future.Result()
			if err != nil {
				http.Error(w, "Failed to get user profile", http.StatusInternalServerError)
				return
			}

			respondWithActorResult(w, result)

		case http.MethodPut:
			callerID, ok := middleware.GetUserIDFromContext(r.Context())
			if !ok {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			var req UpdateProfileRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}

			future := s.Context.RequestFuture(
				s.Engine.GetUserSupervisor(),
				&actors.UpdateProfileMsg{
					UserID:    callerID,
					Bio:       req.Bio,
					StudentID: req.StudentID,
				},
				s.RequestTimeout,
			)

			result, err := future.Result()
			if err != nil {
				http.Error(w, "Failed to update profile", http.StatusInternalServerError)
				return
			}

			respondWithActorResult(w, result)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// HandleBookmark toggles a post in the caller's bookmarks
func (s *Server) HandleBookmark() http.HandlerFunc {
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

		var req BookmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		postID, err := uuid.Parse(req.PostID)
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(
			s.Engine.GetUserSupervisor(),
			&actors.ToggleBookmarkMsg{
				UserID: callerID,
				PostID: postID,
			},
			s.RequestTimeout,
		)

		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to toggle bookmark", http.StatusInternalServerError)
			return
		}

		respondWithActorResult(w, result)
	}
}

// HandleLeaderboard returns the top users by points
func (s *Server) HandleLeaderboard(defaultLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		limit := defaultLimit
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			var parsed int
			if _, err := fmt.Sscanf(limitStr, "%d", &parsed); err == nil && parsed > 0 && parsed < defaultLimit {
				limit = parsed
			}
		}

		future := s.Context.RequestFuture(
			s.Engine.GetUserSupervisor(),
			&actors.GetLeaderboardMsg{Limit: limit},
			s.RequestTimeout,
		)

		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to fetch leaderboard", http.StatusInternalServerError)
			return
		}

		respondWithActorResult(w, result)
	}
}
