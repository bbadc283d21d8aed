package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/filmes-api/internal/model"
	"github.com/iliyamo/filmes-api/internal/patch"
	"github.com/iliyamo/filmes-api/internal/queue"
	"github.com/iliyamo/filmes-api/internal/repository"
)

// MovieStore is the persistence the movie handler needs.  *repository.MovieRepo
// satisfies it.
type MovieStore interface {
	Create(ctx context.Context, m *model.Movie) error
	List(ctx context.Context, skip, take int) ([]model.Movie, error)
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
	Update(ctx context.Context, id uint64, mutate func(*model.Movie) error) error
	Delete(ctx context.Context, id uint64) (*model.Movie, error)
}

// EventPublisher delivers movie events after a write has been committed.
// Publish is called on the request goroutine and must not wait on a broker.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.MovieEvent) error
}

// parseID reads the :id path parameter.  ok is false for anything that
// cannot name a stored movie (non-numeric, negative, zero).
func parseID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}

func validationFailed(c echo.Context, verr *model.ValidationError) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": verr.Fields,
	})
}

func serverError(c echo.Context, err error) error {
	c.Logger().Errorf("request_id=%s %s %s: %v",
		c.Response().Header().Get(echo.HeaderXRequestID), c.Request().Method, c.Request().URL.Path, err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// writeError maps an error returned by the store or a mutation callback to
// its HTTP response.
func writeError(c echo.Context, err error) error {
	var verr *model.ValidationError
	var perr *patch.Error
	switch {
	case errors.Is(err, repository.ErrMovieNotFound):
		return c.NoContent(http.StatusNotFound)
	case errors.As(err, &verr):
		return validationFailed(c, verr)
	case errors.As(err, &perr):
		return badRequest(c, perr.Error())
	default:
		return serverError(c, err)
	}
}
