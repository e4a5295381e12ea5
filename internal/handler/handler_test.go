package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/showbill/internal/handler"
	"github.com/iliyamo/showbill/internal/model"
	"github.com/iliyamo/showbill/internal/queue"
	"github.com/iliyamo/showbill/internal/repository"
	"github.com/iliyamo/showbill/internal/router"
	"github.com/iliyamo/showbill/internal/view"
)

// memDB backs in-memory store fakes that mirror the repository contract:
// ids assigned on insert, list order by id, lowercase substring search,
// sentinel errors for missing rows and foreign-key failures on show insert.
type memDB struct {
	venues  map[uint64]model.Venue
	artists map[uint64]model.Artist
	shows   map[uint64]model.Show
	nextID  uint64

	failVenueCreate bool
}

func newMemDB() *memDB {
	return &memDB{
		venues:  map[uint64]model.Venue{},
		artists: map[uint64]model.Artist{},
		shows:   map[uint64]model.Show{},
	}
}

func (db *memDB) id() uint64 {
	db.nextID++
	return db.nextID
}

func sortByID[T any](m map[uint64]T) []T {
	ids := make([]uint64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

type memVenues struct{ db *memDB }

func (s memVenues) Create(_ context.Context, v *model.Venue) error {
	if s.db.failVenueCreate {
		return errors.New("storage down")
	}
	v.ID = s.db.id()
	s.db.venues[v.ID] = *v
	return nil
}

func (s memVenues) GetByID(_ context.Context, id uint64) (*model.Venue, error) {
	v, ok := s.db.venues[id]
	if !ok {
		return nil, repository.ErrVenueNotFound
	}
	return &v, nil
}

func (s memVenues) ListAll(context.Context) ([]model.Venue, error) {
	return sortByID(s.db.venues), nil
}

func (s memVenues) SearchByName(_ context.Context, term string) ([]model.Venue, error) {
	term = strings.ToLower(term)
	var out []model.Venue
	for _, v := range sortByID(s.db.venues) {
		if strings.Contains(strings.ToLower(v.Name), term) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s memVenues) Update(_ context.Context, v *model.Venue) error {
	if _, ok := s.db.venues[v.ID]; !ok {
		return repository.ErrVenueNotFound
	}
	s.db.venues[v.ID] = *v
	return nil
}

func (s memVenues) DeleteWithShows(_ context.Context, id uint64) error {
	if _, ok := s.db.venues[id]; !ok {
		return repository.ErrVenueNotFound
	}
	for sid, sh := range s.db.shows {
		if sh.VenueID == id {
			delete(s.db.shows, sid)
		}
	}
	delete(s.db.venues, id)
	return nil
}

type memArtists struct{ db *memDB }

func (s memArtists) Create(_ context.Context, a *model.Artist) error {
	a.ID = s.db.id()
	s.db.artists[a.ID] = *a
	return nil
}

func (s memArtists) GetByID(_ context.Context, id uint64) (*model.Artist, error) {
	a, ok := s.db.artists[id]
	if !ok {
		return nil, repository.ErrArtistNotFound
	}
	return &a, nil
}

func (s memArtists) ListAll(context.Context) ([]model.Artist, error) {
	return sortByID(s.db.artists), nil
}

func (s memArtists) SearchByName(_ context.Context, term string) ([]model.Artist, error) {
	term = strings.ToLower(term)
	var out []model.Artist
	for _, a := range sortByID(s.db.artists) {
		if strings.Contains(strings.ToLower(a.Name), term) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s memArtists) Update(_ context.Context, a *model.Artist) error {
	if _, ok := s.db.artists[a.ID]; !ok {
		return repository.ErrArtistNotFound
	}
	s.db.artists[a.ID] = *a
	return nil
}

func (s memArtists) DeleteWithShows(_ context.Context, id uint64) error {
	if _, ok := s.db.artists[id]; !ok {
		return repository.ErrArtistNotFound
	}
	for sid, sh := range s.db.shows {
		if sh.ArtistID == id {
			delete(s.db.shows, sid)
		}
	}
	delete(s.db.artists, id)
	return nil
}

type memShows struct{ db *memDB }

func (s memShows) Create(_ context.Context, sh *model.Show) error {
	if _, ok := s.db.venues[sh.VenueID]; !ok {
		return errors.New("foreign key violation")
	}
	if _, ok := s.db.artists[sh.ArtistID]; !ok {
		return errors.New("foreign key violation")
	}
	sh.ID = s.db.id()
	s.db.shows[sh.ID] = *sh
	return nil
}

func (s memShows) GetByID(_ context.Context, id uint64) (*model.Show, error) {
	sh, ok := s.db.shows[id]
	if !ok {
		return nil, repository.ErrShowNotFound
	}
	return &sh, nil
}

func (s memShows) ListAll(context.Context) ([]model.Show, error) {
	return sortByID(s.db.shows), nil
}

func (s memShows) ListByVenue(_ context.Context, venueID uint64) ([]model.Show, error) {
	var out []model.Show
	for _, sh := range sortByID(s.db.shows) {
		if sh.VenueID == venueID {
			out = append(out, sh)
		}
	}
	return out, nil
}

func (s memShows) ListByArtist(_ context.Context, artistID uint64) ([]model.Show, error) {
	var out []model.Show
	for _, sh := range sortByID(s.db.shows) {
		if sh.ArtistID == artistID {
			out = append(out, sh)
		}
	}
	return out, nil
}

func (s memShows) Delete(_ context.Context, id uint64) error {
	if _, ok := s.db.shows[id]; !ok {
		return repository.ErrShowNotFound
	}
	delete(s.db.shows, id)
	return nil
}

// app wires the real routes, renderer and error handler over the fakes.
type app struct {
	db     *memDB
	e      *echo.Echo
	events []queue.ShowEvent
}

func newApp(t *testing.T) *app {
	t.Helper()

	r, err := view.NewRenderer()
	require.NoError(t, err)

	a := &app{db: newMemDB()}
	h := handler.New(memVenues{a.db}, memArtists{a.db}, memShows{a.db},
		func(_ context.Context, ev queue.ShowEvent) error {
			a.events = append(a.events, ev)
			return nil
		})

	e := echo.New()
	e.Renderer = r
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	passthrough := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	router.RegisterRoutes(e, h, passthrough, passthrough)
	a.e = e
	return a
}

func (a *app) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *app) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// flashMessage extracts the flash left on a response, if any.
func flashMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == view.FlashCookie && ck.Value != "" {
			msg, err := url.QueryUnescape(ck.Value)
			require.NoError(t, err)
			return msg
		}
	}
	return ""
}

func (a *app) seedVenue(name, city, state string) uint64 {
	id := a.db.id()
	a.db.venues[id] = model.Venue{ID: id, Name: name, City: city, State: state, Address: "1 Main St"}
	return id
}

func (a *app) seedArtist(name string) uint64 {
	id := a.db.id()
	a.db.artists[id] = model.Artist{ID: id, Name: name, City: "Austin", State: "TX"}
	return id
}

func (a *app) seedShow(venueID, artistID uint64, start time.Time) uint64 {
	id := a.db.id()
	a.db.shows[id] = model.Show{ID: id, VenueID: venueID, ArtistID: artistID, StartTime: start}
	return id
}

func TestSearchVenues(t *testing.T) {
	a := newApp(t)
	a.seedVenue("The Musical Hop", "San Francisco", "CA")
	a.seedVenue("Park Square Live Music & Coffee", "San Francisco", "CA")
	a.seedVenue("The Dueling Pianos Bar", "New York", "NY")

	rec := a.postForm("/venues/search", url.Values{"search_term": {"MUSIC"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "The Musical Hop")
	assert.Contains(t, body, "Park Square Live Music &amp; Coffee")
	assert.NotContains(t, body, "Dueling Pianos")
	assert.Contains(t, body, "2 venue(s) matching")

	// An empty term matches everything.
	rec = a.postForm("/venues/search", url.Values{"search_term": {""}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "3 venue(s) matching")
}

func TestSearchArtists(t *testing.T) {
	a := newApp(t)
	a.seedArtist("Guns N Petals")
	a.seedArtist("The Wild Sax Band")

	rec := a.postForm("/artists/search", url.Values{"search_term": {"band"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "The Wild Sax Band")
	assert.NotContains(t, rec.Body.String(), "Guns N Petals")
}

func TestShowVenueSplitsShows(t *testing.T) {
	a := newApp(t)
	venueID := a.seedVenue("The Dive", "Austin", "TX")
	pastArtist := a.seedArtist("Played Already")
	futureArtist := a.seedArtist("Booked Ahead")
	a.seedShow(venueID, pastArtist, time.Now().Add(-48*time.Hour))
	a.seedShow(venueID, futureArtist, time.Now().Add(48*time.Hour))

	rec := a.get("/venues/" + itoa(venueID))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "1 past show(s)")
	assert.Contains(t, body, "1 upcoming show(s)")
	assert.Contains(t, body, "Played Already")
	assert.Contains(t, body, "Booked Ahead")
}

func TestShowVenueNotFound(t *testing.T) {
	a := newApp(t)
	assert.Equal(t, http.StatusNotFound, a.get("/venues/42").Code)
	assert.Equal(t, http.StatusNotFound, a.get("/venues/not-a-number").Code)
}

func TestCreateVenue(t *testing.T) {
	a := newApp(t)

	rec := a.postForm("/venues/create", url.Values{
		"name":           {"The Dive"},
		"city":           {"Austin"},
		"state":          {"TX"},
		"address":        {"1 Main St"},
		"genres":         {"Jazz", "Soul"},
		"seeking_talent": {"true"},
	})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "Venue The Dive was successfully listed!", flashMessage(t, rec))

	require.Len(t, a.db.venues, 1)
	for _, v := range a.db.venues {
		assert.Equal(t, "The Dive", v.Name)
		assert.Equal(t, []string{"Jazz", "Soul"}, v.Genres)
		assert.True(t, v.SeekingTalent)
	}
}

func TestCreateVenueMissingFields(t *testing.T) {
	a := newApp(t)

	rec := a.postForm("/venues/create", url.Values{"name": {"The Dive"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please fill in: city, state, address")
	// The submitted name survives the re-render.
	assert.Contains(t, rec.Body.String(), `value="The Dive"`)
	assert.Empty(t, a.db.venues)
}

func TestCreateVenueStorageFailure(t *testing.T) {
	a := newApp(t)
	a.db.failVenueCreate = true

	rec := a.postForm("/venues/create", url.Values{
		"name": {"The Dive"}, "city": {"Austin"}, "state": {"TX"}, "address": {"1 Main St"},
	})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "An error occurred. Venue The Dive could not be listed.", flashMessage(t, rec))
	assert.Empty(t, a.db.venues)
}

func TestUpdateVenue(t *testing.T) {
	a := newApp(t)
	id := a.seedVenue("Old Name", "Austin", "TX")

	rec := a.postForm("/venues/"+itoa(id)+"/edit", url.Values{
		"name": {"New Name"}, "city": {"Dallas"}, "state": {"TX"}, "address": {"2 Side St"},
	})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/venues/"+itoa(id), rec.Header().Get(echo.HeaderLocation))
	v := a.db.venues[id]
	assert.Equal(t, "New Name", v.Name)
	assert.Equal(t, "Dallas", v.City)
	// Fields absent from the form are replaced, not merged.
	assert.Empty(t, v.Phone)
}

func TestDeleteVenueCascades(t *testing.T) {
	a := newApp(t)
	venueID := a.seedVenue("The Dive", "Austin", "TX")
	otherID := a.seedVenue("Elsewhere", "Dallas", "TX")
	artistID := a.seedArtist("Night Cap")
	a.seedShow(venueID, artistID, time.Now())
	a.seedShow(venueID, artistID, time.Now().Add(time.Hour))
	kept := a.seedShow(otherID, artistID, time.Now())

	rec := a.postForm("/venues/"+itoa(venueID), nil)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/venues", rec.Header().Get(echo.HeaderLocation))
	assert.NotContains(t, a.db.venues, venueID)
	require.Len(t, a.db.shows, 1)
	assert.Contains(t, a.db.shows, kept)

	// The page is gone afterwards.
	assert.Equal(t, http.StatusNotFound, a.get("/venues/"+itoa(venueID)).Code)
	// Deleting again reports missing.
	assert.Equal(t, http.StatusNotFound, a.postForm("/venues/"+itoa(venueID), nil).Code)
}

func TestDeleteArtistCascades(t *testing.T) {
	a := newApp(t)
	venueID := a.seedVenue("The Dive", "Austin", "TX")
	artistID := a.seedArtist("Night Cap")
	a.seedShow(venueID, artistID, time.Now())

	rec := a.postForm("/artists/"+itoa(artistID), nil)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.NotContains(t, a.db.artists, artistID)
	assert.Empty(t, a.db.shows)
}

func TestListVenuesGroups(t *testing.T) {
	a := newApp(t)
	a.seedVenue("The Musical Hop", "San Francisco", "CA")
	a.seedVenue("The Dueling Pianos Bar", "New York", "NY")
	a.seedVenue("Park Square Live Music", "San Francisco", "CA")

	rec := a.get("/venues")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "San Francisco, CA")
	assert.Contains(t, body, "New York, NY")
	// One heading per area even with two venues in it.
	assert.Equal(t, 1, strings.Count(body, "San Francisco, CA"))
}

func TestCreateShow(t *testing.T) {
	a := newApp(t)
	venueID := a.seedVenue("The Dive", "Austin", "TX")
	artistID := a.seedArtist("Night Cap")

	rec := a.postForm("/shows/create", url.Values{
		"venue_id":   {itoa(venueID)},
		"artist_id":  {itoa(artistID)},
		"start_time": {"2026-09-01T20:00"},
	})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "Show was successfully listed!", flashMessage(t, rec))
	require.Len(t, a.db.shows, 1)

	require.Len(t, a.events, 1)
	ev := a.events[0]
	assert.Equal(t, queue.KindListed, ev.Kind)
	assert.Equal(t, venueID, ev.VenueID)
	assert.Equal(t, "The Dive", ev.VenueName)
	assert.Equal(t, "Night Cap", ev.ArtistName)
	assert.Equal(t, "2026-09-01T20:00:00Z", ev.StartTime)
}

func TestCreateShowBadInput(t *testing.T) {
	a := newApp(t)

	rec := a.postForm("/shows/create", url.Values{
		"venue_id": {"x"}, "artist_id": {"1"}, "start_time": {"2026-09-01T20:00"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "valid artist ID, venue ID and start time")
	assert.Empty(t, a.db.shows)
	assert.Empty(t, a.events)
}

func TestCreateShowUnknownVenue(t *testing.T) {
	a := newApp(t)
	artistID := a.seedArtist("Night Cap")

	rec := a.postForm("/shows/create", url.Values{
		"venue_id":   {"99"},
		"artist_id":  {itoa(artistID)},
		"start_time": {"2026-09-01T20:00"},
	})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "An error occurred. Show could not be listed.", flashMessage(t, rec))
	assert.Empty(t, a.db.shows)
	assert.Empty(t, a.events)
}

func TestListShows(t *testing.T) {
	a := newApp(t)
	venueID := a.seedVenue("The Dive", "Austin", "TX")
	artistID := a.seedArtist("Night Cap")
	a.seedShow(venueID, artistID, time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC))

	rec := a.get("/shows")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "The Dive")
	assert.Contains(t, body, "Night Cap")
	assert.Contains(t, body, `href="/venues/`+itoa(venueID)+`"`)
	assert.Contains(t, body, `href="/artists/`+itoa(artistID)+`"`)
}

func TestDeleteShow(t *testing.T) {
	a := newApp(t)
	venueID := a.seedVenue("The Dive", "Austin", "TX")
	artistID := a.seedArtist("Night Cap")
	showID := a.seedShow(venueID, artistID, time.Now())

	rec := a.postForm("/shows/delete/"+itoa(showID), nil)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/shows", rec.Header().Get(echo.HeaderLocation))
	assert.Empty(t, a.db.shows)
	require.Len(t, a.events, 1)
	assert.Equal(t, queue.KindCancelled, a.events[0].Kind)

	assert.Equal(t, http.StatusNotFound, a.postForm("/shows/delete/"+itoa(showID), nil).Code)
}

func TestHealth(t *testing.T) {
	a := newApp(t)
	rec := a.get("/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
