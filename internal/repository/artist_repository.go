package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/showbill/internal/model"
)

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

const artistColumns = `id, name, city, state, phone, genres,
	image_link, facebook_link, website, seeking_venue, seeking_description`

func scanArtist(row interface{ Scan(...any) error }, a *model.Artist) error {
	var genres string
	if err := row.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone,
		&genres, &a.ImageLink, &a.FacebookLink, &a.Website,
		&a.SeekingVenue, &a.SeekingDescription); err != nil {
		return err
	}
	return decodeGenres(genres, &a.Genres)
}

// Create inserts a new artist and populates its generated ID.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	genres, err := encodeGenres(a.Genres)
	if err != nil {
		return err
	}
	const q = `INSERT INTO artists (name, city, state, phone, genres,
		image_link, facebook_link, website, seeking_venue, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone,
		genres, a.ImageLink, a.FacebookLink, a.Website,
		a.SeekingVenue, a.SeekingDescription)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByID fetches an artist by ID, returning ErrArtistNotFound when absent.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	const q = `SELECT ` + artistColumns + ` FROM artists WHERE id = ?`
	var a model.Artist
	if err := scanArtist(r.db.QueryRowContext(ctx, q, id), &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListAll returns every artist ordered by id.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]model.Artist, error) {
	const q = `SELECT ` + artistColumns + ` FROM artists ORDER BY id`
	return r.queryArtists(ctx, q)
}

// SearchByName returns artists whose name contains term as a
// case-insensitive substring. An empty term matches every artist.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string) ([]model.Artist, error) {
	const q = `SELECT ` + artistColumns + ` FROM artists
		WHERE LOWER(name) LIKE ? ORDER BY id`
	return r.queryArtists(ctx, q, "%"+strings.ToLower(term)+"%")
}

func (r *ArtistRepo) queryArtists(ctx context.Context, q string, args ...any) ([]model.Artist, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Artist
	for rows.Next() {
		var a model.Artist
		if err := scanArtist(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites every editable field of the artist identified by a.ID.
// It returns ErrArtistNotFound when the row does not exist.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	genres, err := encodeGenres(a.Genres)
	if err != nil {
		return err
	}
	const q = `UPDATE artists
		SET name = ?, city = ?, state = ?, phone = ?, genres = ?,
		    image_link = ?, facebook_link = ?, website = ?,
		    seeking_venue = ?, seeking_description = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone,
		genres, a.ImageLink, a.FacebookLink, a.Website,
		a.SeekingVenue, a.SeekingDescription, a.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ? LIMIT 1`, a.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrArtistNotFound
		}
		return err
	}
	return nil
}

// DeleteWithShows removes an artist and all of its shows inside one
// transaction, mirroring the venue delete. It returns ErrArtistNotFound
// when the artist does not exist.
func (r *ArtistRepo) DeleteWithShows(ctx context.Context, id uint64) error {
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

	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE artist_id = ?`, id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrArtistNotFound
		return err
	}
	return nil
}
