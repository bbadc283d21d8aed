package model

// CreateMovieInput is the request body accepted by POST /filme.  It carries
// no identifier because the store assigns one on insert.
type CreateMovieInput struct {
	Title    string `json:"title" validate:"required,max=255"`
	Genre    string `json:"genre" validate:"required,max=50"`
	Duration int    `json:"duration" validate:"required,gt=0"`
}

// UpdateMovieInput is the request body accepted by PUT /filme/:id and the
// working copy that PATCH operations are applied to.
type UpdateMovieInput struct {
	Title    string `json:"title" validate:"required,max=255"`
	Genre    string `json:"genre" validate:"required,max=50"`
	Duration int    `json:"duration" validate:"required,gt=0"`
}

// MovieView is the read projection returned by the API.
type MovieView struct {
	ID       uint64 `json:"id"`
	Title    string `json:"title"`
	Genre    string `json:"genre"`
	Duration int    `json:"duration"`
}

// NewMovie maps a create request onto a fresh, not yet persisted Movie.
func NewMovie(in CreateMovieInput) *Movie {
	return &Movie{
		Title:    in.Title,
		Genre:    in.Genre,
		Duration: in.Duration,
	}
}

// ToView projects a stored Movie into its wire shape.
func ToView(m *Movie) MovieView {
	return MovieView{
		ID:       m.ID,
		Title:    m.Title,
		Genre:    m.Genre,
		Duration: m.Duration,
	}
}

// ToViews projects a slice of movies.  The result is never nil so that an
// empty page encodes as [] rather than null.
func ToViews(ms []Movie) []MovieView {
	out := make([]MovieView, 0, len(ms))
	for i := range ms {
		out = append(out, ToView(&ms[i]))
	}
	return out
}

// ToUpdateInput copies the mutable fields of m into an update-shaped value.
func ToUpdateInput(m *Movie) UpdateMovieInput {
	return UpdateMovieInput{
		Title:    m.Title,
		Genre:    m.Genre,
		Duration: m.Duration,
	}
}

// Apply overwrites every mutable field of m with the values of in.  The
// identifier is left untouched.
func (m *Movie) Apply(in UpdateMovieInput) {
	m.Title = in.Title
	m.Genre = in.Genre
	m.Duration = in.Duration
}
