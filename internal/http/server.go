package http

import (
	"net/http"

	"github.com/anthlasserre/perf-tracker-api/internal/auth"
	"github.com/anthlasserre/perf-tracker-api/internal/club"
	"github.com/anthlasserre/perf-tracker-api/internal/config"
	"github.com/anthlasserre/perf-tracker-api/internal/match"
	"github.com/anthlasserre/perf-tracker-api/internal/metrics"
	"github.com/anthlasserre/perf-tracker-api/internal/notifier"
	"github.com/anthlasserre/perf-tracker-api/internal/player"
	"github.com/anthlasserre/perf-tracker-api/internal/processor"
	"github.com/anthlasserre/perf-tracker-api/internal/pubsub"
	"github.com/anthlasserre/perf-tracker-api/internal/storage"
)

func NewServer(players player.Store, clubs club.Store, matches match.Store, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, objectStore storage.ObjectStore, authSvc *auth.Service, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.Client) *Server {
	server := &Server{
		Players:        players,
		Clubs:          clubs,
		Matches:        matches,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Storage:        objectStore,
		Auth:           authSvc,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Authenticated routes add authMiddleware on top of the common params handling.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /storage/health", Chain(s.StorageHealthHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))

	s.Router.Handle("POST /auth/register", Chain(s.RegisterHandler(), paramsMiddleware))
	s.Router.Handle("POST /auth/login", Chain(s.LoginHandler(), paramsMiddleware))

	s.Router.Handle("POST /players/onboarding", Chain(s.OnboardingHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("GET /players/{id}", Chain(s.GetPlayerHandler(), paramsMiddleware))
	s.Router.Handle("GET /players/{id}/stats", Chain(s.PlayerStatsHandler(), paramsMiddleware))
	s.Router.Handle("GET /players/{id}/progress", Chain(s.PlayerProgressHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches", Chain(s.CreateMatchHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("GET /matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/video", Chain(s.UploadVideoHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("GET /matches/{id}/video-url", Chain(s.VideoURLHandler(), paramsMiddleware))

	s.Router.Handle("POST /clubs", Chain(s.CreateClubHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("GET /clubs/{id}", Chain(s.GetClubHandler(), paramsMiddleware))
	s.Router.Handle("GET /clubs/{id}/members", Chain(s.ClubMembersHandler(), paramsMiddleware))
	s.Router.Handle("GET /clubs/{id}/stats", Chain(s.ClubStatsHandler(), paramsMiddleware))
	s.Router.Handle("POST /clubs/{id}/invitations", Chain(s.CreateInvitationHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("POST /invitations/accept", Chain(s.AcceptInvitationHandler(), paramsMiddleware, s.authMiddleware))

	s.Router.Handle("POST /process", Chain(s.ProcessRecordsHandler(), paramsMiddleware))
	s.Router.Handle("POST /pubsub/notify-match", Chain(s.NotifyMatchHandler(), paramsMiddleware))
	s.Router.Handle("POST /pubsub/notify-video", Chain(s.NotifyVideoHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
