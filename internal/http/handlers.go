package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthlasserre/perf-tracker-api/internal/club"
	"github.com/anthlasserre/perf-tracker-api/internal/player"
	"github.com/anthlasserre/perf-tracker-api/internal/pubsub"
	"github.com/anthlasserre/perf-tracker-api/internal/storage"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) StorageHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Storage.HealthCheck(r.Context()); err != nil {
			log.Error("Object store health check failed", "error", err)
			http.Error(w, storage.UserMessage(err), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recordID := r.URL.Query().Get("recordID")
		if recordID != "" {
			log.Info("Received request to clear a specific record", "recordID", recordID)
			s.Matches.Delete(recordID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared record %s from store!", recordID)
			log.Info("Successfully cleared record from store", "recordID", recordID)
		} else {
			log.Info("Received request to clear entire store")
			s.Matches.Clear()
			s.Clubs.Clear()
			s.Players.Clear()
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Store cleared!")
			log.Info("Store cleared successfully")
		}
	}
}

// respondJSON is a helper to write a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token  string         `json:"token"`
	Player *player.Player `json:"player"`
}

func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || !strings.Contains(req.Email, "@") {
			http.Error(w, "A valid email is required", http.StatusBadRequest)
			return
		}
		if len(req.Password) < 8 {
			http.Error(w, "Password must be at least 8 characters", http.StatusBadRequest)
			return
		}

		if existing, err := s.Players.GetByEmail(req.Email); err == nil && existing != nil {
			http.Error(w, "Email is already registered", http.StatusConflict)
			return
		}

		hash, err := s.Auth.HashPassword(req.Password)
		if err != nil {
			log.Error("Failed to hash password", "error", err)
			http.Error(w, "Failed to register", http.StatusInternalServerError)
			return
		}

		p := &player.Player{
			ID:           uuid.NewString(),
			Email:        req.Email,
			PasswordHash: hash,
			CreatedAt:    time.Now().Unix(),
		}
		if err := s.Players.Create(p); err != nil {
			log.Error("Failed to create player", "error", err)
			http.Error(w, "Failed to register", http.StatusInternalServerError)
			return
		}

		token, err := s.Auth.IssueToken(p.ID)
		if err != nil {
			log.Error("Failed to issue token", "error", err)
			http.Error(w, "Failed to register", http.StatusInternalServerError)
			return
		}

		log.Info("Registered new player", "playerID", p.ID)
		respondJSON(w, http.StatusCreated, authResponse{Token: token, Player: p})
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))

		p, err := s.Players.GetByEmail(req.Email)
		if err != nil || !s.Auth.CheckPassword(p.PasswordHash, req.Password) {
			// Same response for unknown email and wrong password.
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		token, err := s.Auth.IssueToken(p.ID)
		if err != nil {
			log.Error("Failed to issue token", "error", err)
			http.Error(w, "Failed to log in", http.StatusInternalServerError)
			return
		}

		respondJSON(w, http.StatusOK, authResponse{Token: token, Player: p})
	}
}

func (s *Server) OnboardingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := playerIDFromContext(r)

		var profile player.OnboardingProfile
		if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(profile.Name) == "" {
			http.Error(w, "Name is required", http.StatusBadRequest)
			return
		}

		if err := s.Players.CompleteOnboarding(playerID, profile); err != nil {
			log.Error("Failed to complete onboarding", "error", err, "playerID", playerID)
			http.Error(w, "Failed to complete onboarding", http.StatusInternalServerError)
			return
		}

		p, err := s.Players.Get(playerID)
		if err != nil {
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

func (s *Server) GetPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.Players.Get(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

func (s *Server) CreateClubHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := playerIDFromContext(r)

		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			http.Error(w, "Club name is required", http.StatusBadRequest)
			return
		}

		c := &club.Club{
			ID:        uuid.NewString(),
			Name:      strings.TrimSpace(req.Name),
			OwnerID:   playerID,
			CreatedAt: time.Now().Unix(),
		}
		if err := s.Clubs.Create(c); err != nil {
			log.Error("Failed to create club", "error", err)
			http.Error(w, "Failed to create club", http.StatusInternalServerError)
			return
		}

		// The owner joins their own club immediately.
		if err := s.Players.SetClub(playerID, c.ID); err != nil {
			log.Error("Failed to add owner to club", "error", err, "clubID", c.ID)
		}

		log.Info("Created club", "clubID", c.ID, "owner", playerID)
		respondJSON(w, http.StatusCreated, c)
	}
}

func (s *Server) GetClubHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := s.Clubs.Get(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Club not found", http.StatusNotFound)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

func (s *Server) ClubMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := s.Players.ByClub(r.PathValue("id"))
		if err != nil {
			log.Error("Failed to get club members", "error", err)
			http.Error(w, "Failed to get club members", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, members)
	}
}

func (s *Server) CreateInvitationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := playerIDFromContext(r)
		clubID := r.PathValue("id")
		isDryRun := isDryRunFromContext(r)

		c, err := s.Clubs.Get(clubID)
		if err != nil {
			http.Error(w, "Club not found", http.StatusNotFound)
			return
		}
		if c.OwnerID != playerID {
			http.Error(w, "Only the club owner can send invitations", http.StatusForbidden)
			return
		}

		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || !strings.Contains(req.Email, "@") {
			http.Error(w, "A valid email is required", http.StatusBadRequest)
			return
		}

		now := time.Now()
		inv := &club.Invitation{
			ID:        uuid.NewString(),
			ClubID:    clubID,
			Email:     req.Email,
			Token:     uuid.NewString(),
			Status:    club.InvitationPending,
			CreatedAt: now.Unix(),
			ExpiresAt: now.Add(club.InvitationTTL).Unix(),
		}
		if err := s.Clubs.CreateInvitation(inv); err != nil {
			log.Error("Failed to create invitation", "error", err)
			http.Error(w, "Failed to create invitation", http.StatusInternalServerError)
			return
		}

		if !isDryRun {
			s.pubsub.SendMessage(pubsub.EventInvitationSent, inv)
		}
		if err := s.Notifier.SendInvitation(inv, c.Name, isDryRun); err != nil {
			log.Error("Failed to send invitation notification", "error", err, "invitationID", inv.ID)
		}

		log.Info("Created invitation", "invitationID", inv.ID, "clubID", clubID)
		respondJSON(w, http.StatusCreated, inv)
	}
}

func (s *Server) AcceptInvitationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := playerIDFromContext(r)

		var req struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Token == "" {
			http.Error(w, "Token is required", http.StatusBadRequest)
			return
		}

		inv, err := s.Clubs.AcceptInvitation(req.Token, time.Now().Unix())
		if err != nil {
			switch {
			case errors.Is(err, club.ErrInvitationExpired):
				http.Error(w, "Invitation has expired", http.StatusGone)
			case errors.Is(err, club.ErrInvitationConsumed):
				http.Error(w, "Invitation is no longer valid", http.StatusConflict)
			default:
				http.Error(w, "Invitation not found", http.StatusNotFound)
			}
			return
		}

		if err := s.Players.SetClub(playerID, inv.ClubID); err != nil {
			log.Error("Failed to add player to club", "error", err, "playerID", playerID, "clubID", inv.ClubID)
			http.Error(w, "Failed to join club", http.StatusInternalServerError)
			return
		}

		log.Info("Invitation accepted", "invitationID", inv.ID, "playerID", playerID)
		respondJSON(w, http.StatusOK, inv)
	}
}
