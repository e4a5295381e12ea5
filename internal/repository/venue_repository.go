// Package repository contains data access logic separated from HTTP
// handlers. This file holds repository methods for venues, including the
// two-phase delete that removes a venue's shows before the venue itself.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/showbill/internal/model"
)

// VenueRepo encapsulates all database queries related to venues. It
// depends on a sql.DB connection which should be configured elsewhere.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

const venueColumns = `id, name, city, state, address, phone, genres,
	image_link, facebook_link, website, seeking_talent, seeking_description`

func scanVenue(row interface{ Scan(...any) error }, v *model.Venue) error {
	var genres string
	if err := row.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone,
		&genres, &v.ImageLink, &v.FacebookLink, &v.Website,
		&v.SeekingTalent, &v.SeekingDescription); err != nil {
		return err
	}
	return decodeGenres(genres, &v.Genres)
}

// Create inserts a new venue. On success the venue's ID field is populated
// with the auto-generated value.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	genres, err := encodeGenres(v.Genres)
	if err != nil {
		return err
	}
	const q = `INSERT INTO venues (name, city, state, address, phone, genres,
		image_link, facebook_link, website, seeking_talent, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address,
		v.Phone, genres, v.ImageLink, v.FacebookLink, v.Website,
		v.SeekingTalent, v.SeekingDescription)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// GetByID fetches a venue by its ID. It returns ErrVenueNotFound if no row
// is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM venues WHERE id = ?`
	var v model.Venue
	if err := scanVenue(r.db.QueryRowContext(ctx, q, id), &v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// ListAll returns every venue ordered by id, so listings and groupings see
// rows in first-created order.
func (r *VenueRepo) ListAll(ctx context.Context) ([]model.Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM venues ORDER BY id`
	return r.queryVenues(ctx, q)
}

// SearchByName returns venues whose name contains term as a
// case-insensitive substring. An empty term matches every venue.
func (r *VenueRepo) SearchByName(ctx context.Context, term string) ([]model.Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM venues
		WHERE LOWER(name) LIKE ? ORDER BY id`
	return r.queryVenues(ctx, q, "%"+strings.ToLower(term)+"%")
}

func (r *VenueRepo) queryVenues(ctx context.Context, q string, args ...any) ([]model.Venue, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Venue
	for rows.Next() {
		var v model.Venue
		if err := scanVenue(rows, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites every editable field of the venue identified by v.ID.
// It returns ErrVenueNotFound when the row does not exist. MySQL reports
// zero affected rows for a no-op update, so a follow-up existence check
// separates "missing" from "unchanged".
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	genres, err := encodeGenres(v.Genres)
	if err != nil {
		return err
	}
	const q = `UPDATE venues
		SET name = ?, city = ?, state = ?, address = ?, phone = ?, genres = ?,
		    image_link = ?, facebook_link = ?, website = ?,
		    seeking_talent = ?, seeking_description = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address,
		v.Phone, genres, v.ImageLink, v.FacebookLink, v.Website,
		v.SeekingTalent, v.SeekingDescription, v.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ? LIMIT 1`, v.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	}
	return nil // row exists, values were already identical
}

// DeleteWithShows removes a venue and all of its shows. The schema does not
// cascade, so both deletes run inside one transaction: either the venue and
// every dependent show disappear together or nothing changes. It returns
// ErrVenueNotFound when the venue does not exist.
func (r *VenueRepo) DeleteWithShows(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrVenueNotFound
		return err
	}
	return nil
}
