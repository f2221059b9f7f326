package player_test

import (
	"database/sql"
	"testing"

	"github.com/anthlasserre/perf-tracker-api/internal/database"
	"github.com/anthlasserre/perf-tracker-api/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (player.Store, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return player.New(db), db, dbTeardown
}

func TestCreateAndGet(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	p := &player.Player{
		ID:           "p1",
		Email:        "Antoine@Example.com",
		PasswordHash: "hash",
		Name:         "Antoine Dupont",
		CreatedAt:    1700000000,
	}
	require.NoError(t, store.Create(p))

	got, err := store.Get("p1")
	require.NoError(t, err)
	assert.Equal(t, "antoine@example.com", got.Email) // normalized to lower case
	assert.Equal(t, "Antoine Dupont", got.Name)
	assert.False(t, got.OnboardingCompleted)

	byEmail, err := store.GetByEmail("ANTOINE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "p1", byEmail.ID)
}

func TestCreateDuplicateEmail(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.Create(&player.Player{ID: "p1", Email: "a@example.com", PasswordHash: "x"}))
	assert.Error(t, store.Create(&player.Player{ID: "p2", Email: "a@example.com", PasswordHash: "x"}))
}

func TestGetNotFound(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.Get("missing")
	assert.Error(t, err)
	_, err = store.GetByEmail("missing@example.com")
	assert.Error(t, err)
}

func TestCompleteOnboarding(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.Create(&player.Player{ID: "p1", Email: "a@example.com", PasswordHash: "x"}))

	err := store.CompleteOnboarding("p1", player.OnboardingProfile{Name: "Antoine Dupont", Position: "scrum-half"})
	require.NoError(t, err)

	got, err := store.Get("p1")
	require.NoError(t, err)
	assert.True(t, got.OnboardingCompleted)
	assert.Equal(t, "scrum-half", got.Position)

	assert.Error(t, store.CompleteOnboarding("missing", player.OnboardingProfile{}))
}

func TestSetClubAndByClub(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.Create(&player.Player{ID: "p1", Email: "a@example.com", PasswordHash: "x", Name: "Bravo"}))
	require.NoError(t, store.Create(&player.Player{ID: "p2", Email: "b@example.com", PasswordHash: "x", Name: "Alpha"}))
	_, err := db.Exec(`INSERT INTO clubs (id, name, owner_id) VALUES ('c1', 'RC Test', 'p1')`)
	require.NoError(t, err)

	require.NoError(t, store.SetClub("p1", "c1"))
	require.NoError(t, store.SetClub("p2", "c1"))

	members, err := store.ByClub("c1")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Alpha", members[0].Name) // ordered by name
	assert.Equal(t, "Bravo", members[1].Name)

	assert.Error(t, store.SetClub("missing", "c1"))
}
