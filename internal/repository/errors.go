// Package repository defines error types that are reused by the data
// access layer.  Handlers compare against these sentinels with errors.Is to
// choose the HTTP status of a failed request.
package repository

import "errors"

// ErrMovieNotFound is returned when no movie row matches the requested id.
// Handlers should translate this into an HTTP 404 response.
var ErrMovieNotFound = errors.New("movie not found")
