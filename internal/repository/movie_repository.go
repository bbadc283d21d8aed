// Package repository contains data access logic separated from HTTP handlers.
// This file defines the movie repository backed by gorm.  Every write runs in
// its own transaction so that a request either commits completely or leaves
// the row untouched.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/iliyamo/filmes-api/internal/model"
)

// MovieRepo encapsulates all database queries related to movies.  It
// depends on a gorm session which should be configured elsewhere.
type MovieRepo struct {
	db *gorm.DB // db is the underlying gorm session
}

// NewMovieRepo constructs a MovieRepo with the provided gorm handle.
func NewMovieRepo(db *gorm.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// Create inserts a new movie.  On success m.ID holds the identifier
// generated by the database.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	m.ID = 0 // the store owns identity
	return r.db.WithContext(ctx).Create(m).Error
}

// List returns up to take movies after skipping the first skip rows,
// ordered by id (insertion order).
func (r *MovieRepo) List(ctx context.Context, skip, take int) ([]model.Movie, error) {
	var out []model.Movie
	err := r.db.WithContext(ctx).
		Order("id").
		Offset(skip).
		Limit(take).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a movie by id.  It returns ErrMovieNotFound if no row
// matches.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	return first(r.db.WithContext(ctx), id)
}

// Update loads the movie with the given id, hands it to mutate and saves
// the result, all inside one transaction.  If mutate returns an error the
// transaction is rolled back and that error is returned unchanged.
func (r *MovieRepo) Update(ctx context.Context, id uint64, mutate func(*model.Movie) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := first(tx, id)
		if err != nil {
			return err
		}
		if err := mutate(m); err != nil {
			return err
		}
		m.ID = id // mutate may not re-key the row
		return tx.Save(m).Error
	})
}

// Delete removes the movie permanently and returns the row as it was
// before deletion.  It returns ErrMovieNotFound when the id does not exist,
// including when it was already deleted.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) (*model.Movie, error) {
	var deleted *model.Movie
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := first(tx, id)
		if err != nil {
			return err
		}
		res := tx.Delete(&model.Movie{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrMovieNotFound
		}
		deleted = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func first(db *gorm.DB, id uint64) (*model.Movie, error) {
	var m model.Movie
	if err := db.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}
