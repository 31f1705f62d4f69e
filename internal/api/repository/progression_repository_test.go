package repository

import (
	"context"
	"ctchen222/Chord-Dictionary/internal/api/models"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgression(userID int64, name string, public bool, at time.Time, chords ...string) *models.Progression {
	return &models.Progression{
		UserID:    userID,
		Name:      name,
		Chords:    chords,
		IsPublic:  public,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func TestProgressionRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	alice := seedUser(t, NewUserRepository(conn), "alice")
	repo := NewProgressionRepository(conn)

	p := newProgression(alice.ID, "Blues", false, baseTime, "E", "A", "B7")
	require.NoError(t, repo.Create(ctx, p))
	require.NotZero(t, p.ID)

	got, err := repo.GetVisible(ctx, p.ID, &alice.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Blues", got.Name)
	assert.Equal(t, models.Chords{"E", "A", "B7"}, got.Chords)
	assert.False(t, got.IsPublic)
	assert.Equal(t, "alice", got.CreatedBy)
}

func TestProgressionRepository_Visibility(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	users := NewUserRepository(conn)
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")
	repo := NewProgressionRepository(conn)

	private := newProgression(alice.ID, "Private", false, baseTime, "C")
	public := newProgression(alice.ID, "Public", true, baseTime, "G")
	require.NoError(t, repo.Create(ctx, private))
	require.NoError(t, repo.Create(ctx, public))

	tests := []struct {
		name      string
		id        int64
		requester *int64
		visible   bool
	}{
		{"owner sees private", private.ID, &alice.ID, true},
		{"other user cannot see private", private.ID, &bob.ID, false},
		{"anonymous cannot see private", private.ID, nil, false},
		{"anonymous sees public", public.ID, nil, true},
		{"other user sees public", public.ID, &bob.ID, true},
		{"missing id", 9999, &alice.ID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetVisible(ctx, tt.id, tt.requester)
			require.NoError(t, err)
			assert.Equal(t, tt.visible, got != nil)
		})
	}
}

func TestProgressionRepository_UpdateAndDeleteAreOwnerScoped(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	users := NewUserRepository(conn)
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")
	repo := NewProgressionRepository(conn)

	p := newProgression(alice.ID, "Blues", false, baseTime, "E", "A", "B7")
	require.NoError(t, repo.Create(ctx, p))

	hijack := newProgression(bob.ID, "Mine now", true, baseTime.Add(time.Minute), "C")
	hijack.ID = p.ID
	matched, err := repo.Update(ctx, hijack)
	require.NoError(t, err)
	assert.False(t, matched)

	matched, err = repo.Delete(ctx, p.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, matched)

	got, err := repo.GetVisible(ctx, p.ID, &alice.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Blues", got.Name)

	update := newProgression(alice.ID, "Slow Blues", true, baseTime.Add(time.Hour), "E7", "A7")
	update.ID = p.ID
	matched, err = repo.Update(ctx, update)
	require.NoError(t, err)
	assert.True(t, matched)

	got, err = repo.GetVisible(ctx, p.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Slow Blues", got.Name)
	assert.Equal(t, models.Chords{"E7", "A7"}, got.Chords)
	assert.True(t, got.UpdatedAt.Equal(baseTime.Add(time.Hour)))
	assert.True(t, got.CreatedAt.Equal(baseTime))

	matched, err = repo.Delete(ctx, p.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = repo.Delete(ctx, p.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestProgressionRepository_Lists(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	users := NewUserRepository(conn)
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")
	repo := NewProgressionRepository(conn)

	require.NoError(t, repo.Create(ctx, newProgression(alice.ID, "old", true, baseTime, "C")))
	require.NoError(t, repo.Create(ctx, newProgression(alice.ID, "new", false, baseTime.Add(2*time.Hour), "D")))
	require.NoError(t, repo.Create(ctx, newProgression(bob.ID, "bob's", true, baseTime.Add(time.Hour), "E")))

	mine, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "new", mine[0].Name)
	assert.Equal(t, "old", mine[1].Name)

	public, err := repo.ListPublic(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, public, 2)
	assert.Equal(t, "bob's", public[0].Name)
	assert.Equal(t, "bob", public[0].CreatedBy)
	assert.Equal(t, "old", public[1].Name)
	assert.Equal(t, "alice", public[1].CreatedBy)

	page, err := repo.ListPublic(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "old", page[0].Name)

	none, err := repo.ListByUser(ctx, 4242)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestProgressionRepository_WrapsDriverErrors(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewProgressionRepository(sqlx.NewDb(mockDB, "sqlite"))
	cause := errors.New("disk I/O error")

	mock.ExpectExec("UPDATE saved_progressions").WillReturnError(cause)
	mock.ExpectExec("DELETE FROM saved_progressions").WillReturnResult(sqlmock.NewErrorResult(cause))
	mock.ExpectQuery("SELECT (.+) FROM saved_progressions").WillReturnError(cause)

	_, err = repo.Update(context.Background(), newProgression(1, "x", false, baseTime, "C"))
	assert.ErrorIs(t, err, cause)

	_, err = repo.Delete(context.Background(), 1, 1)
	assert.ErrorIs(t, err, cause)

	_, err = repo.ListByUser(context.Background(), 1)
	assert.ErrorIs(t, err, cause)

	assert.NoError(t, mock.ExpectationsWereMet())
}
