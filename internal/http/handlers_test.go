package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anthlasserre/perf-tracker-api/internal/auth"
	"github.com/anthlasserre/perf-tracker-api/internal/club"
	"github.com/anthlasserre/perf-tracker-api/internal/config"
	"github.com/anthlasserre/perf-tracker-api/internal/database"
	"github.com/anthlasserre/perf-tracker-api/internal/match"
	"github.com/anthlasserre/perf-tracker-api/internal/metrics"
	"github.com/anthlasserre/perf-tracker-api/internal/notifier"
	"github.com/anthlasserre/perf-tracker-api/internal/player"
	"github.com/anthlasserre/perf-tracker-api/internal/processor"
	"github.com/anthlasserre/perf-tracker-api/internal/pubsub"
	"github.com/anthlasserre/perf-tracker-api/internal/stats"
	"github.com/anthlasserre/perf-tracker-api/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type testDeps struct {
	notifier *notifier.Mock
	storage  *storage.MockStore
	pubsub   *pubsub.MockClient
}

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T) (*Server, *testDeps, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	players := player.New(db)
	clubs := club.New(db)
	matches := match.New(db)

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)

	deps := &testDeps{
		notifier: notifier.NewMock(),
		storage:  storage.NewMock(),
		pubsub:   pubsub.NewMock(),
	}

	authSvc := auth.New("test-secret", time.Hour)
	proc := processor.New(matches, deps.notifier, metricsSvc, deps.pubsub)
	server := NewServer(players, clubs, matches, metricsSvc, metricsHandler, config.Config{}, deps.storage, authSvc, deps.notifier, proc, deps.pubsub)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return server, deps, teardown
}

// registerTestPlayer registers a player through the API and returns the id and bearer token.
func registerTestPlayer(t *testing.T, server *Server, email string) (string, string) {
	t.Helper()

	body := fmt.Sprintf(`{"email":%q,"password":"secret-password"}`, email)
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, "registration should succeed: %s", rr.Body.String())

	var resp struct {
		Token  string `json:"token"`
		Player struct {
			ID string `json:"id"`
		} `json:"player"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Player.ID, resp.Token
}

// doJSON performs a JSON request against the server, optionally authenticated.
func doJSON(server *Server, method, target, token string, body any) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	rr := doJSON(server, "GET", "/health", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestStorageHealthHandler(t *testing.T) {
	server, deps, teardown := setupTestServer(t)
	defer teardown()

	t.Run("healthy", func(t *testing.T) {
		rr := doJSON(server, "GET", "/storage/health", "", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unhealthy", func(t *testing.T) {
		deps.storage.HealthCheckFunc = func(_ context.Context) error {
			return fmt.Errorf("%w: bucket probe failed", storage.ErrAccessDenied)
		}
		defer func() { deps.storage.HealthCheckFunc = nil }()

		rr := doJSON(server, "GET", "/storage/health", "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Contains(t, rr.Body.String(), "denied")
	})
}

func TestRegisterHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	t.Run("registers a new player", func(t *testing.T) {
		id, token := registerTestPlayer(t, server, "dupont@example.com")
		assert.NotEmpty(t, id)
		assert.NotEmpty(t, token)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		body := `{"email":"dupont@example.com","password":"secret-password"}`
		req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("rejects short password", func(t *testing.T) {
		body := `{"email":"other@example.com","password":"short"}`
		req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		body := `{"email":"not-an-email","password":"secret-password"}`
		req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()
	registerTestPlayer(t, server, "dupont@example.com")

	t.Run("logs in with correct credentials", func(t *testing.T) {
		rr := doJSON(server, "POST", "/auth/login", "", map[string]string{
			"email":    "Dupont@Example.com",
			"password": "secret-password",
		})
		assert.Equal(t, http.StatusOK, rr.Code, "email matching should be case-insensitive")
		assert.Contains(t, rr.Body.String(), "token")
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		rr := doJSON(server, "POST", "/auth/login", "", map[string]string{
			"email":    "dupont@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("rejects unknown email", func(t *testing.T) {
		rr := doJSON(server, "POST", "/auth/login", "", map[string]string{
			"email":    "nobody@example.com",
			"password": "secret-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAuthMiddleware(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	t.Run("rejects missing token", func(t *testing.T) {
		rr := doJSON(server, "POST", "/matches", "", map[string]any{"opponent": "RC Toulon"})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		rr := doJSON(server, "POST", "/matches", "not-a-jwt", map[string]any{"opponent": "RC Toulon"})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestOnboardingHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()
	id, token := registerTestPlayer(t, server, "dupont@example.com")

	rr := doJSON(server, "POST", "/players/onboarding", token, player.OnboardingProfile{
		Name:     "Antoine Dupont",
		Position: "scrum-half",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	p, err := server.Players.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Antoine Dupont", p.Name)
	assert.Equal(t, "scrum-half", p.Position)
	assert.True(t, p.OnboardingCompleted)

	t.Run("rejects empty name", func(t *testing.T) {
		rr := doJSON(server, "POST", "/players/onboarding", token, player.OnboardingProfile{Name: "  "})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCreateMatchHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()
	id, token := registerTestPlayer(t, server, "dupont@example.com")
	rr := doJSON(server, "POST", "/players/onboarding", token, player.OnboardingProfile{Name: "Antoine Dupont", Position: "scrum-half"})
	require.Equal(t, http.StatusOK, rr.Code)

	t.Run("creates a record with defaults", func(t *testing.T) {
		rr := doJSON(server, "POST", "/matches", token, map[string]any{
			"opponent": "RC Toulon",
			"playTime": 63,
			"actions":  []map[string]string{{"type": "try"}, {"type": "conversion"}},
		})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		var rec match.Record
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
		assert.Equal(t, id, rec.PlayerID)
		assert.Equal(t, "Antoine Dupont", rec.PlayerName)
		assert.Equal(t, "scrum-half", rec.Position, "position falls back to the player profile")
		assert.Equal(t, 5, rec.PerformanceRating, "missing rating defaults to 5")
		assert.Equal(t, match.StatusNew, rec.ProcessingStatus)
		assert.NotEmpty(t, rec.ID)
		assert.NotZero(t, rec.CreatedAt)

		stored, err := server.Matches.Get(rec.ID)
		require.NoError(t, err)
		require.Len(t, stored.Actions, 2)
		assert.Equal(t, match.ActionTry, stored.Actions[0].Kind)
	})

	t.Run("passes attributes through opaquely", func(t *testing.T) {
		rr := doJSON(server, "POST", "/matches", token, map[string]any{
			"opponent":   "RC Toulon",
			"attributes": map[string]any{"physicalForm": 7, "notes": "windy day"},
		})
		require.Equal(t, http.StatusCreated, rr.Code)

		var rec match.Record
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
		stored, err := server.Matches.Get(rec.ID)
		require.NoError(t, err)
		assert.Equal(t, "windy day", stored.Attributes["notes"])
	})

	t.Run("rejects out-of-range rating", func(t *testing.T) {
		rr := doJSON(server, "POST", "/matches", token, map[string]any{
			"opponent":          "RC Toulon",
			"performanceRating": 11,
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = doJSON(server, "POST", "/matches", token, map[string]any{
			"opponent":          "RC Toulon",
			"performanceRating": 0,
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects negative play time", func(t *testing.T) {
		rr := doJSON(server, "POST", "/matches", token, map[string]any{
			"opponent": "RC Toulon",
			"playTime": -5,
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("dry run does not persist", func(t *testing.T) {
		rr := doJSON(server, "POST", "/matches?dry_run=true", token, map[string]any{
			"id":       "dry-run-record",
			"opponent": "RC Toulon",
		})
		require.Equal(t, http.StatusCreated, rr.Code)

		_, err := server.Matches.Get("dry-run-record")
		assert.Error(t, err)
	})
}

// seedRecord writes a match record directly through the store.
func seedRecord(t *testing.T, server *Server, rec *match.Record) {
	t.Helper()
	if rec.ProcessingStatus == "" {
		rec.ProcessingStatus = match.StatusNew
	}
	require.NoError(t, server.Matches.Upsert(rec))
}

func TestPlayerStatsHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()
	id, token := registerTestPlayer(t, server, "dupont@example.com")
	doJSON(server, "POST", "/players/onboarding", token, player.OnboardingProfile{Name: "Antoine Dupont"})

	seedRecord(t, server, &match.Record{
		ID: "r1", PlayerID: id, PlayerName: "Antoine Dupont", Opponent: "RC Toulon",
		PlayTime: 60, PerformanceRating: 7, CreatedAt: 100,
		Actions: []match.Action{{Kind: match.ActionTry}, {Kind: match.ActionConversion}, {Kind: match.ActionFault}},
	})
	seedRecord(t, server, &match.Record{
		ID: "r2", PlayerID: id, PlayerName: "Antoine Dupont", Opponent: "Stade Français",
		PlayTime: 80, PerformanceRating: 9, CreatedAt: 200,
		Actions: []match.Action{{Kind: match.ActionPenalty}},
	})

	rr := doJSON(server, "GET", "/players/"+id+"/stats", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var agg stats.Aggregated
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &agg))
	assert.Equal(t, 2, agg.MatchesPlayed)
	assert.Equal(t, 140, agg.MinutesPlayed)
	assert.Equal(t, 1, agg.Tries)
	assert.Equal(t, 1, agg.Conversions)
	assert.Equal(t, 1, agg.Penalties)
	assert.Equal(t, 10, agg.Points)
	assert.Equal(t, 1, agg.Faults)
}

func TestPlayerProgressHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()
	id, token := registerTestPlayer(t, server, "dupont@example.com")
	doJSON(server, "POST", "/players/onboarding", token, player.OnboardingProfile{Name: "Antoine Dupont"})

	// Inserted newest-first to prove the handler re-orders by created_at.
	seedRecord(t, server, &match.Record{
		ID: "r2", PlayerID: id, CreatedAt: 200, PerformanceRating: 9,
		Actions: []match.Action{{Kind: match.ActionPassNegative}},
	})
	seedRecord(t, server, &match.Record{
		ID: "r1", PlayerID: id, CreatedAt: 100, PerformanceRating: 7,
		Actions: []match.Action{{Kind: match.ActionPassPositive}},
	})

	rr := doJSON(server, "GET", "/players/"+id+"/progress", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var points []stats.ProgressPoint
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &points))
	require.Len(t, points, 2)
	assert.Equal(t, int64(100), points[0].Date)
	assert.Equal(t, int64(200), points[1].Date)
	require.NotNil(t, points[0].PassesAccuracy)
	assert.Equal(t, 100.0, *points[0].PassesAccuracy)
	require.NotNil(t, points[1].PassesAccuracy)
	assert.Equal(t, 50.0, *points[1].PassesAccuracy)
}

func TestClubStatsHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()
	ownerID, ownerToken := registerTestPlayer(t, server, "owner@example.com")
	doJSON(server, "POST", "/players/onboarding", ownerToken, player.OnboardingProfile{Name: "Antoine Dupont"})

	rr := doJSON(server, "POST", "/clubs", ownerToken, map[string]string{"name": "RC Toulon"})
	require.Equal(t, http.StatusCreated, rr.Code)
	var c club.Club
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &c))

	seedRecord(t, server, &match.Record{
		ID: "r1", PlayerID: ownerID, ClubID: c.ID, PlayerName: "Antoine Dupont", CreatedAt: 100,
		Actions: []match.Action{{Kind: match.ActionTry}, {Kind: match.ActionConversion}},
	})

	rr = doJSON(server, "GET", "/clubs/"+c.ID+"/stats", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var totals []stats.PlayerTotals
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &totals))
	require.Len(t, totals, 1)
	assert.Equal(t, ownerID, totals[0].PlayerID)
	assert.Equal(t, "Antoine", totals[0].FirstName)
	assert.Equal(t, "Dupont", totals[0].LastName)
	assert.Equal(t, 7, totals[0].Stats.Points)
}

func TestInvitationFlow(t *testing.T) {
	server, deps, teardown := setupTestServer(t)
	defer teardown()
	_, ownerToken := registerTestPlayer(t, server, "owner@example.com")
	joinerID, joinerToken := registerTestPlayer(t, server, "joiner@example.com")

	rr := doJSON(server, "POST", "/clubs", ownerToken, map[string]string{"name": "RC Toulon"})
	require.Equal(t, http.StatusCreated, rr.Code)
	var c club.Club
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &c))

	t.Run("only the owner can invite", func(t *testing.T) {
		rr := doJSON(server, "POST", "/clubs/"+c.ID+"/invitations", joinerToken, map[string]string{"email": "joiner@example.com"})
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	var inv club.Invitation
	t.Run("owner invites a player", func(t *testing.T) {
		rr := doJSON(server, "POST", "/clubs/"+c.ID+"/invitations", ownerToken, map[string]string{"email": "joiner@example.com"})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &inv))
		assert.Equal(t, club.InvitationPending, inv.Status)
		assert.NotEmpty(t, inv.Token)

		require.Len(t, deps.notifier.SendInvitationCalls, 1)
		assert.Equal(t, "RC Toulon", deps.notifier.SendInvitationCalls[0].ClubName)
		require.Len(t, deps.pubsub.SendMessageCalls, 1)
		assert.Equal(t, pubsub.EventInvitationSent, deps.pubsub.SendMessageCalls[0].Topic)
	})

	t.Run("invited player joins the club", func(t *testing.T) {
		rr := doJSON(server, "POST", "/invitations/accept", joinerToken, map[string]string{"token": inv.Token})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		p, err := server.Players.Get(joinerID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, p.ClubID)
	})

	t.Run("token cannot be reused", func(t *testing.T) {
		rr := doJSON(server, "POST", "/invitations/accept", joinerToken, map[string]string{"token": inv.Token})
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("unknown token is a 404", func(t *testing.T) {
		rr := doJSON(server, "POST", "/invitations/accept", joinerToken, map[string]string{"token": "nope"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestUploadVideoHandler(t *testing.T) {
	server, deps, teardown := setupTestServer(t)
	defer teardown()
	id, token := registerTestPlayer(t, server, "dupont@example.com")
	seedRecord(t, server, &match.Record{ID: "r1", PlayerID: id, CreatedAt: 100})

	newUpload := func(t *testing.T, target string) *httptest.ResponseRecorder {
		t.Helper()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("video", "match.mp4")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake video bytes"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest("POST", target, &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("uploads and attaches a video", func(t *testing.T) {
		rr := newUpload(t, "/matches/r1/video")
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		require.Len(t, deps.storage.UploadCalls, 1)

		rec, err := server.Matches.Get("r1")
		require.NoError(t, err)
		assert.Equal(t, "videos/mock", rec.VideoKey)
		assert.Equal(t, "https://cdn.example.com/videos/mock", rec.VideoURL)

		require.Len(t, deps.pubsub.SendMessageCalls, 1)
		assert.Equal(t, pubsub.EventVideoUploaded, deps.pubsub.SendMessageCalls[0].Topic)
	})

	t.Run("404 for unknown record", func(t *testing.T) {
		rr := newUpload(t, "/matches/nope/video")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("maps storage denial to a gateway error", func(t *testing.T) {
		deps.storage.UploadFunc = func(_ context.Context, _ io.Reader, _ int64, _ string) (storage.Object, error) {
			return storage.Object{}, storage.ErrAccessDenied
		}
		defer func() { deps.storage.UploadFunc = nil }()

		rr := newUpload(t, "/matches/r1/video")
		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})
}

func TestVideoURLHandler(t *testing.T) {
	server, deps, teardown := setupTestServer(t)
	defer teardown()
	id, _ := registerTestPlayer(t, server, "dupont@example.com")
	seedRecord(t, server, &match.Record{ID: "r1", PlayerID: id, CreatedAt: 100})
	require.NoError(t, server.Matches.AttachVideo("r1", "videos/abc.mp4", "https://cdn.example.com/videos/abc.mp4"))
	seedRecord(t, server, &match.Record{ID: "r2", PlayerID: id, CreatedAt: 200})

	t.Run("returns a signed url with the default ttl", func(t *testing.T) {
		rr := doJSON(server, "GET", "/matches/r1/video-url", "", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "signed=1")
		require.Len(t, deps.storage.SignedURLCalls, 1)
		assert.Equal(t, "videos/abc.mp4", deps.storage.SignedURLCalls[0].Key)
		assert.Equal(t, defaultSignedURLTTL, deps.storage.SignedURLCalls[0].TTL)
	})

	t.Run("caps the requested ttl", func(t *testing.T) {
		rr := doJSON(server, "GET", "/matches/r1/video-url?ttl=48h", "", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, deps.storage.SignedURLCalls, 2)
		assert.Equal(t, maxSignedURLTTL, deps.storage.SignedURLCalls[1].TTL)
	})

	t.Run("rejects an unparsable ttl", func(t *testing.T) {
		rr := doJSON(server, "GET", "/matches/r1/video-url?ttl=soon", "", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("404 when the record has no video", func(t *testing.T) {
		rr := doJSON(server, "GET", "/matches/r2/video-url", "", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListMatchesHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()
	id, _ := registerTestPlayer(t, server, "dupont@example.com")
	seedRecord(t, server, &match.Record{ID: "r1", PlayerID: id, CreatedAt: 100})
	seedRecord(t, server, &match.Record{ID: "r2", PlayerID: id, CreatedAt: 200})

	t.Run("requires playerID", func(t *testing.T) {
		rr := doJSON(server, "GET", "/matches", "", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("defaults to newest first", func(t *testing.T) {
		rr := doJSON(server, "GET", "/matches?playerID="+id, "", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var records []match.Record
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
		require.Len(t, records, 2)
		assert.Equal(t, "r2", records[0].ID)
	})

	t.Run("honours order and limit", func(t *testing.T) {
		rr := doJSON(server, "GET", "/matches?playerID="+id+"&order=asc&limit=1", "", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var records []match.Record
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
		require.Len(t, records, 1)
		assert.Equal(t, "r1", records[0].ID)
	})
}

func TestProcessRecordsHandler(t *testing.T) {
	server, deps, teardown := setupTestServer(t)
	defer teardown()
	id, _ := registerTestPlayer(t, server, "dupont@example.com")
	seedRecord(t, server, &match.Record{
		ID: "r1", PlayerID: id, PlayerName: "Antoine Dupont",
		CreatedAt: time.Now().Unix(), ProcessingStatus: match.StatusNew,
	})

	rr := doJSON(server, "POST", "/process", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	require.Len(t, deps.notifier.SendMatchRecordedCalls, 1)
	rec, err := server.Matches.Get("r1")
	require.NoError(t, err)
	assert.Equal(t, match.StatusNotified, rec.ProcessingStatus)
}

// pushBody builds the Pub/Sub push envelope around a msgpack-encoded record.
func pushBody(t *testing.T, rec *match.Record) string {
	t.Helper()
	raw, err := msgpack.Marshal(rec)
	require.NoError(t, err)
	envelope := map[string]any{
		"subscription": "test-sub",
		"message":      map[string]string{"data": base64.StdEncoding.EncodeToString(raw)},
	}
	encoded, err := json.Marshal(envelope)
	require.NoError(t, err)
	return string(encoded)
}

func TestNotifyMatchHandler(t *testing.T) {
	server, deps, teardown := setupTestServer(t)
	defer teardown()

	rec := &match.Record{ID: "r1", PlayerName: "Antoine Dupont", CreatedAt: time.Now().Unix()}
	req := httptest.NewRequest("POST", "/pubsub/notify-match", strings.NewReader(pushBody(t, rec)))
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Len(t, deps.notifier.SendMatchRecordedCalls, 1)
	assert.Equal(t, "r1", deps.notifier.SendMatchRecordedCalls[0].Record.ID)

	t.Run("rejects invalid base64", func(t *testing.T) {
		body := `{"subscription":"s","message":{"data":"%%%"}}`
		req := httptest.NewRequest("POST", "/pubsub/notify-match", strings.NewReader(body))
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestNotifyVideoHandler(t *testing.T) {
	server, deps, teardown := setupTestServer(t)
	defer teardown()

	rec := &match.Record{ID: "r1", VideoURL: "https://cdn.example.com/videos/abc.mp4"}
	req := httptest.NewRequest("POST", "/pubsub/notify-video", strings.NewReader(pushBody(t, rec)))
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Len(t, deps.notifier.SendVideoUploadedCalls, 1)
	assert.Equal(t, "r1", deps.notifier.SendVideoUploadedCalls[0].Record.ID)
}

func TestClearStoreHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()
	id, _ := registerTestPlayer(t, server, "dupont@example.com")
	seedRecord(t, server, &match.Record{ID: "r1", PlayerID: id, CreatedAt: 100})
	seedRecord(t, server, &match.Record{ID: "r2", PlayerID: id, CreatedAt: 200})

	t.Run("clears a single record", func(t *testing.T) {
		rr := doJSON(server, "POST", "/clear?recordID=r1", "", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		_, err := server.Matches.Get("r1")
		assert.Error(t, err)
		_, err = server.Matches.Get("r2")
		assert.NoError(t, err)
	})
}
