package handler

import (
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/filmes-api/internal/model"
	"github.com/iliyamo/filmes-api/internal/patch"
	"github.com/iliyamo/filmes-api/internal/queue"
)

// Paging defaults for GET /filme.
const (
	DefaultTake = 50
	DefaultMax  = 100
)

// MovieHandler serves the /filme resource.
type MovieHandler struct {
	Store     MovieStore
	Events    EventPublisher // optional; nil disables event publishing
	Validator *model.Validator
	MaxTake   int // upper bound for the take query parameter
}

// NewMovieHandler constructs a MovieHandler and panics if store is nil.
// A maxTake below 1 falls back to DefaultMax.
func NewMovieHandler(store MovieStore, events EventPublisher, maxTake int) *MovieHandler {
	if store == nil {
		panic("nil store passed to NewMovieHandler")
	}
	if maxTake < 1 {
		maxTake = DefaultMax
	}
	return &MovieHandler{
		Store:     store,
		Events:    events,
		Validator: model.NewValidator(),
		MaxTake:   maxTake,
	}
}

// Create handles POST /filme.
func (h *MovieHandler) Create(c echo.Context) error {
	var in model.CreateMovieInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.Validator.Validate(in); err != nil {
		return writeError(c, err)
	}

	m := model.NewMovie(in)
	if err := h.Store.Create(c.Request().Context(), m); err != nil {
		return serverError(c, err)
	}
	h.publish(c, queue.MovieCreated, m)

	c.Response().Header().Set(echo.HeaderLocation, path.Join(c.Request().URL.Path, fmt.Sprint(m.ID)))
	return c.JSON(http.StatusCreated, model.ToView(m))
}

// List handles GET /filme?skip=&take=.
func (h *MovieHandler) List(c echo.Context) error {
	skip, take := 0, DefaultTake
	if err := echo.QueryParamsBinder(c).
		Int("skip", &skip).
		Int("take", &take).
		BindError(); err != nil {
		return badRequest(c, "skip and take must be integers")
	}
	if skip < 0 {
		return badRequest(c, "skip must not be negative")
	}
	if take < 1 {
		return badRequest(c, "take must be positive")
	}
	if take > h.MaxTake {
		take = h.MaxTake
	}

	items, err := h.Store.List(c.Request().Context(), skip, take)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, model.ToViews(items))
}

// Get handles GET /filme/:id.
func (h *MovieHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	m, err := h.Store.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, model.ToView(m))
}

// Replace handles PUT /filme/:id.  The body is validated before the row is
// looked up; the lookup and the overwrite share one transaction.
func (h *MovieHandler) Replace(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	var in model.UpdateMovieInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.Validator.Validate(in); err != nil {
		return writeError(c, err)
	}

	var saved model.Movie
	err := h.Store.Update(c.Request().Context(), id, func(m *model.Movie) error {
		m.Apply(in)
		saved = *m
		return nil
	})
	if err != nil {
		return writeError(c, err)
	}
	h.publish(c, queue.MovieUpdated, &saved)
	return c.NoContent(http.StatusNoContent)
}

// Patch handles PATCH /filme/:id with an RFC 6902 body.  The operations are
// applied to an UpdateMovieInput copy of the row, the copy is validated, and
// only then are its fields written back.  Any failure leaves the row as it
// was.
func (h *MovieHandler) Patch(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(c, "invalid request body")
	}
	doc, err := patch.Decode(raw)
	if err != nil {
		return writeError(c, err)
	}

	var saved model.Movie
	err = h.Store.Update(c.Request().Context(), id, func(m *model.Movie) error {
		working, err := patch.Apply(doc, model.ToUpdateInput(m))
		if err != nil {
			return err
		}
		if err := h.Validator.Validate(working); err != nil {
			return err
		}
		m.Apply(working)
		saved = *m
		return nil
	})
	if err != nil {
		return writeError(c, err)
	}
	h.publish(c, queue.MovieUpdated, &saved)
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /filme/:id.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	m, err := h.Store.Delete(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	h.publish(c, queue.MovieDeleted, m)
	return c.NoContent(http.StatusNoContent)
}

// publish sends an event for a committed write.  Failures are logged and
// never change the response.
func (h *MovieHandler) publish(c echo.Context, typ string, m *model.Movie) {
	if h.Events == nil {
		return
	}
	if err := h.Events.Publish(c.Request().Context(), queue.NewMovieEvent(typ, m)); err != nil {
		c.Logger().Warnf("publish %s for movie %d: %v", typ, m.ID, err)
	}
}
