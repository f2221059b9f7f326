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

type Server struct {
	Players        player.Store
	Clubs          club.Store
	Matches        match.Store
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Storage        storage.ObjectStore
	Auth           *auth.Service
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.Client
}
