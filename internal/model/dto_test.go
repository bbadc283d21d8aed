package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMovieHasNoID(t *testing.T) {
	m := NewMovie(CreateMovieInput{Title: "A", Genre: "B", Duration: 10})
	assert.Equal(t, Movie{Title: "A", Genre: "B", Duration: 10}, *m)
}

func TestApplyKeepsID(t *testing.T) {
	m := &Movie{ID: 7, Title: "A", Genre: "B", Duration: 10}
	m.Apply(UpdateMovieInput{Title: "C", Genre: "D", Duration: 20})
	assert.Equal(t, Movie{ID: 7, Title: "C", Genre: "D", Duration: 20}, *m)
	assert.Equal(t, UpdateMovieInput{Title: "C", Genre: "D", Duration: 20}, ToUpdateInput(m))
}

func TestViewWireShape(t *testing.T) {
	bs, err := json.Marshal(ToView(&Movie{ID: 1, Title: "Matrix", Genre: "Sci-Fi", Duration: 136}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"title":"Matrix","genre":"Sci-Fi","duration":136}`, string(bs))
}

func TestToViewsEmptyEncodesAsArray(t *testing.T) {
	bs, err := json.Marshal(ToViews(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(bs))
}
