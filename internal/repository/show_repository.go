package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/showbill/internal/model"
)

// ShowRepo manages persistence for shows. A show is an association record
// between one venue and one artist; the foreign-key constraints reject
// inserts referencing missing rows, which is the only integrity check the
// booking form relies on.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

const showColumns = `id, venue_id, artist_id, start_time`

// Create inserts a new show and populates its generated ID. A violated
// foreign key (unknown venue_id or artist_id) comes back as a driver error
// and the caller reports a generic failure.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (venue_id, artist_id, start_time) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.VenueID, s.ArtistID, s.StartTime)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID fetches a show by ID, returning ErrShowNotFound when absent.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*model.Show, error) {
	const q = `SELECT ` + showColumns + ` FROM shows WHERE id = ?`
	var s model.Show
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.VenueID, &s.ArtistID, &s.StartTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListAll returns every show ordered by id.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.Show, error) {
	const q = `SELECT ` + showColumns + ` FROM shows ORDER BY id`
	return r.queryShows(ctx, q)
}

// ListByVenue returns the shows booked at one venue in id order.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.Show, error) {
	const q = `SELECT ` + showColumns + ` FROM shows WHERE venue_id = ? ORDER BY id`
	return r.queryShows(ctx, q, venueID)
}

// ListByArtist returns the shows booked for one artist in id order.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]model.Show, error) {
	const q = `SELECT ` + showColumns + ` FROM shows WHERE artist_id = ? ORDER BY id`
	return r.queryShows(ctx, q, artistID)
}

func (r *ShowRepo) queryShows(ctx context.Context, q string, args ...any) ([]model.Show, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Show
	for rows.Next() {
		var s model.Show
		if err := rows.Scan(&s.ID, &s.VenueID, &s.ArtistID, &s.StartTime); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a single show. It returns ErrShowNotFound when no row was
// deleted.
func (r *ShowRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shows WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShowNotFound
	}
	return nil
}
