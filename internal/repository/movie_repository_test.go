package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/filmes-api/internal/database/dbtest"
	"github.com/iliyamo/filmes-api/internal/model"
)

func seed(t *testing.T, r *MovieRepo, titles ...string) []model.Movie {
	t.Helper()
	out := make([]model.Movie, 0, len(titles))
	for _, title := range titles {
		m := &model.Movie{Title: title, Genre: "Drama", Duration: 100}
		require.NoError(t, r.Create(context.Background(), m))
		out = append(out, *m)
	}
	return out
}

func TestCreateAssignsFreshIDs(t *testing.T) {
	r := NewMovieRepo(dbtest.Open(t))
	ms := seed(t, r, "A", "B", "C")

	seen := map[uint64]bool{}
	for _, m := range ms {
		assert.NotZero(t, m.ID)
		assert.False(t, seen[m.ID], "duplicate id %d", m.ID)
		seen[m.ID] = true
	}
}

func TestCreateIgnoresCallerID(t *testing.T) {
	r := NewMovieRepo(dbtest.Open(t))
	first := seed(t, r, "A")[0]

	m := &model.Movie{ID: first.ID, Title: "B", Genre: "Drama", Duration: 90}
	require.NoError(t, r.Create(context.Background(), m))
	assert.NotEqual(t, first.ID, m.ID)
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	r := NewMovieRepo(dbtest.Open(t))
	m := &model.Movie{Title: "Matrix", Genre: "Sci-Fi", Duration: 136}
	require.NoError(t, r.Create(ctx, m))

	got, err := r.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, *m, *got)

	_, err = r.GetByID(ctx, m.ID+100)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestListPaginates(t *testing.T) {
	ctx := context.Background()
	r := NewMovieRepo(dbtest.Open(t))
	ms := seed(t, r, "A", "B", "C", "D", "E")

	got, err := r.List(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, ms[1:4], got)

	got, err = r.List(ctx, 4, 10)
	require.NoError(t, err)
	assert.Equal(t, ms[4:], got)

	got, err = r.List(ctx, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListEmptyStore(t *testing.T) {
	r := NewMovieRepo(dbtest.Open(t))
	got, err := r.List(context.Background(), 0, 50)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateSavesMutation(t *testing.T) {
	ctx := context.Background()
	r := NewMovieRepo(dbtest.Open(t))
	m := seed(t, r, "A")[0]

	err := r.Update(ctx, m.ID, func(cur *model.Movie) error {
		cur.Apply(model.UpdateMovieInput{Title: "Z", Genre: "Horror", Duration: 80})
		return nil
	})
	require.NoError(t, err)

	got, err := r.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Movie{ID: m.ID, Title: "Z", Genre: "Horror", Duration: 80}, *got)
}

func TestUpdateRollsBackOnMutateError(t *testing.T) {
	ctx := context.Background()
	r := NewMovieRepo(dbtest.Open(t))
	m := seed(t, r, "A")[0]
	boom := errors.New("boom")

	err := r.Update(ctx, m.ID, func(cur *model.Movie) error {
		cur.Title = "changed"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := r.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m, *got)
}

func TestUpdateCannotChangeID(t *testing.T) {
	ctx := context.Background()
	r := NewMovieRepo(dbtest.Open(t))
	m := seed(t, r, "A")[0]

	require.NoError(t, r.Update(ctx, m.ID, func(cur *model.Movie) error {
		cur.ID = 999
		cur.Title = "B"
		return nil
	}))

	got, err := r.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Title)
	_, err = r.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestUpdateMissing(t *testing.T) {
	r := NewMovieRepo(dbtest.Open(t))
	called := false
	err := r.Update(context.Background(), 42, func(*model.Movie) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrMovieNotFound)
	assert.False(t, called)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	r := NewMovieRepo(dbtest.Open(t))
	ms := seed(t, r, "A", "B")

	deleted, err := r.Delete(ctx, ms[0].ID)
	require.NoError(t, err)
	assert.Equal(t, ms[0], *deleted)
	_, err = r.GetByID(ctx, ms[0].ID)
	assert.ErrorIs(t, err, ErrMovieNotFound)

	// deleting twice is not a silent success
	_, err = r.Delete(ctx, ms[0].ID)
	assert.ErrorIs(t, err, ErrMovieNotFound)

	rest, err := r.List(ctx, 0, 50)
	require.NoError(t, err)
	assert.Equal(t, ms[1:], rest)
}
