package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/anthlasserre/perf-tracker-api/internal/match"
	"github.com/anthlasserre/perf-tracker-api/internal/pubsub"
	"github.com/anthlasserre/perf-tracker-api/internal/stats"
	"github.com/anthlasserre/perf-tracker-api/internal/storage"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	maxVideoUploadBytes = 512 << 20
	defaultSignedURLTTL = 15 * time.Minute
	maxSignedURLTTL     = 24 * time.Hour
)

type createMatchRequest struct {
	ID                string         `json:"id"`
	Opponent          string         `json:"opponent"`
	Position          string         `json:"position"`
	PlayTime          int            `json:"playTime"`
	PerformanceRating *int           `json:"performanceRating"`
	Actions           []match.Action `json:"actions"`
	Attributes        map[string]any `json:"attributes"`
	CreatedAt         int64          `json:"createdAt"`
}

func (s *Server) CreateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := playerIDFromContext(r)
		isDryRun := isDryRunFromContext(r)

		var req createMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if req.PlayTime < 0 {
			http.Error(w, "playTime must not be negative", http.StatusBadRequest)
			return
		}
		// A missing rating means the player skipped the question, not a zero.
		rating := 5
		if req.PerformanceRating != nil {
			rating = *req.PerformanceRating
			if rating < 1 || rating > 10 {
				http.Error(w, "performanceRating must be between 1 and 10", http.StatusBadRequest)
				return
			}
		}

		p, err := s.Players.Get(playerID)
		if err != nil {
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}

		rec := &match.Record{
			ID:                req.ID,
			PlayerID:          p.ID,
			ClubID:            p.ClubID,
			PlayerName:        p.Name,
			Opponent:          req.Opponent,
			Position:          req.Position,
			PlayTime:          req.PlayTime,
			PerformanceRating: rating,
			Actions:           req.Actions,
			Attributes:        req.Attributes,
			ProcessingStatus:  match.StatusNew,
			CreatedAt:         req.CreatedAt,
		}
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		if rec.Position == "" {
			rec.Position = p.Position
		}
		if rec.CreatedAt == 0 {
			rec.CreatedAt = time.Now().Unix()
		}

		if isDryRun {
			log.Info("[Dry Run] Would upsert match record", "recordID", rec.ID)
			respondJSON(w, http.StatusCreated, rec)
			return
		}

		if err := s.Matches.Upsert(rec); err != nil {
			log.Error("Failed to upsert match record", "error", err)
			http.Error(w, "Failed to save match record", http.StatusInternalServerError)
			return
		}
		s.Metrics.IncRecordsUpserted()

		log.Info("Recorded match", "recordID", rec.ID, "playerID", p.ID)
		respondJSON(w, http.StatusCreated, rec)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "playerID is required", http.StatusBadRequest)
			return
		}

		order := match.OrderDesc
		if r.URL.Query().Get("order") == "asc" {
			order = match.OrderAsc
		}

		limit := 0
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 0 {
				http.Error(w, "Invalid limit", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		records, err := s.Matches.ByPlayer(playerID, order, limit)
		if err != nil {
			log.Error("Failed to get match records", "error", err)
			http.Error(w, "Failed to get match records", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, records)
	}
}

func (s *Server) PlayerStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.PathValue("id")

		records, err := s.Matches.ByPlayer(playerID, match.OrderDesc, 0)
		if err != nil {
			log.Error("Failed to get match records", "error", err, "playerID", playerID)
			http.Error(w, "Failed to get match records", http.StatusInternalServerError)
			return
		}

		start := time.Now()
		aggregated := stats.Aggregate(records)
		s.Metrics.ObserveAggregationDuration(time.Since(start).Seconds())
		s.Metrics.IncStatQueries()

		respondJSON(w, http.StatusOK, aggregated)
	}
}

func (s *Server) PlayerProgressHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.PathValue("id")

		// Progress points fold cumulatively, so records must arrive oldest first.
		records, err := s.Matches.ByPlayer(playerID, match.OrderAsc, 0)
		if err != nil {
			log.Error("Failed to get match records", "error", err, "playerID", playerID)
			http.Error(w, "Failed to get match records", http.StatusInternalServerError)
			return
		}

		start := time.Now()
		progress := stats.Progress(records)
		s.Metrics.ObserveAggregationDuration(time.Since(start).Seconds())
		s.Metrics.IncStatQueries()

		respondJSON(w, http.StatusOK, progress)
	}
}

func (s *Server) ClubStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubID := r.PathValue("id")

		records, err := s.Matches.ByClub(clubID)
		if err != nil {
			log.Error("Failed to get club records", "error", err, "clubID", clubID)
			http.Error(w, "Failed to get club records", http.StatusInternalServerError)
			return
		}

		start := time.Now()
		totals := stats.ClubTotals(records)
		s.Metrics.ObserveAggregationDuration(time.Since(start).Seconds())
		s.Metrics.IncStatQueries()

		respondJSON(w, http.StatusOK, totals)
	}
}

func (s *Server) UploadVideoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recordID := r.PathValue("id")
		isDryRun := isDryRunFromContext(r)

		rec, err := s.Matches.Get(recordID)
		if err != nil {
			http.Error(w, "Match record not found", http.StatusNotFound)
			return
		}

		if err := r.ParseMultipartForm(maxVideoUploadBytes); err != nil {
			http.Error(w, "Invalid multipart form", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("video")
		if err != nil {
			http.Error(w, "A 'video' file part is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		if isDryRun {
			log.Info("[Dry Run] Would upload video", "recordID", recordID, "size", header.Size)
			fmt.Fprint(w, "OK")
			return
		}

		obj, err := s.Storage.Upload(r.Context(), file, header.Size, header.Header.Get("Content-Type"))
		if err != nil {
			s.Metrics.IncUploadsFailed()
			log.Error("Failed to upload video", "error", err, "recordID", recordID)
			http.Error(w, storage.UserMessage(err), http.StatusBadGateway)
			return
		}
		s.Metrics.IncUploadsSucceeded()

		if err := s.Matches.AttachVideo(recordID, obj.Key, obj.URL); err != nil {
			log.Error("Failed to attach video to record", "error", err, "recordID", recordID)
			http.Error(w, "Failed to attach video", http.StatusInternalServerError)
			return
		}
		rec.VideoKey = obj.Key
		rec.VideoURL = obj.URL

		s.pubsub.SendMessage(pubsub.EventVideoUploaded, rec)

		log.Info("Uploaded match video", "recordID", recordID, "key", obj.Key)
		respondJSON(w, http.StatusCreated, obj)
	}
}

func (s *Server) VideoURLHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recordID := r.PathValue("id")

		rec, err := s.Matches.Get(recordID)
		if err != nil {
			http.Error(w, "Match record not found", http.StatusNotFound)
			return
		}
		if rec.VideoKey == "" {
			http.Error(w, "Record has no video", http.StatusNotFound)
			return
		}

		ttl := defaultSignedURLTTL
		if ttlStr := r.URL.Query().Get("ttl"); ttlStr != "" {
			parsed, err := time.ParseDuration(ttlStr)
			if err != nil || parsed <= 0 {
				http.Error(w, "Invalid ttl", http.StatusBadRequest)
				return
			}
			ttl = parsed
		}
		if ttl > maxSignedURLTTL {
			ttl = maxSignedURLTTL
		}

		url, err := s.Storage.SignedURL(r.Context(), rec.VideoKey, ttl)
		if err != nil {
			log.Error("Failed to sign video URL", "error", err, "recordID", recordID)
			http.Error(w, storage.UserMessage(err), http.StatusBadGateway)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"url":       url,
			"expiresIn": int64(ttl.Seconds()),
		})
	}
}
