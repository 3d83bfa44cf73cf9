package handlers

import (
	"encoding/json"
	"gator-find/internal/engine/actors"
	"net/http"

	"github.com/google/uuid"
)

// NotifyMatchRequest represents a request to notify both sides of a match
type NotifyMatchRequest struct {
	MatchID  string `json:"matchId"`
	Verified bool   `json:"verified"`
}

// HandleRunMatching triggers a matching run over all posts (admin only)
func (s *Server) HandleRunMatching() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		future := s.Context.RequestFuture(s.Engine.GetMatchActor(),
			&actors.RunMatchingMsg{},
			s.RequestTimeout)

		result, err := future.Result()
		if err != nil {
			http.Error(w, "Matching run failed", http.StatusInternalServerError)
			return
		}

		respondWithActorResult(w, result)
	}
}

// HandleListMatches returns all recorded matches with their posts (admin only)
func (s *Server) HandleListMatches() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		future := s.Context.RequestFuture(s.Engine.GetMatchActor(),
			&actors.ListMatchesMsg{},
			s.RequestTimeout)

		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to fetch matches", http.StatusInternalServerError)
			return
		}

		respondWithActorResult(w, result)
	}
}

// HandleNotifyMatch posts system comments on both sides of a match (admin only)
func (s *Server) HandleNotifyMatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req NotifyMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		matchID, err := uuid.Parse(req.MatchID)
		if err != nil {
			http.Error(w, "Invalid match ID format", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(s.Engine.GetMatchActor(), &actors.NotifyMatchMsg{
			MatchID:  matchID,
			Verified: req.Verified,
		}, s.RequestTimeout)

		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to notify match", http.StatusInternalServerError)
			return
		}

		respondWithActorResult(w, result)
	}
}
