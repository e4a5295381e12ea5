package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formContext(t *testing.T, form url.Values) echo.Context {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestParseFlagExplicitValues(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"on", true},
		{"y", true},
		{"1", true},
		{"TRUE", true},
		{"false", false},
		{"0", false},
		{"", false}, // present but empty is still false
	}
	for _, tc := range cases {
		c := formContext(t, url.Values{"seeking_talent": {tc.value}})
		assert.Equal(t, tc.want, parseFlag(c, "seeking_talent"), "value %q", tc.value)
	}

	// Absent field means false; presence alone is not enough.
	c := formContext(t, url.Values{})
	assert.False(t, parseFlag(c, "seeking_talent"))
}

func TestGenreValuesKeepsOrder(t *testing.T) {
	c := formContext(t, url.Values{"genres": {"Jazz", "Funk", " ", "Soul"}})
	assert.Equal(t, []string{"Jazz", "Funk", "Soul"}, genreValues(c))
}

func TestParseStartTimeLayouts(t *testing.T) {
	want := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2026-09-01T20:00:00Z",
		"2026-09-01T20:00",
		"2026-09-01 20:00:00",
		"2026-09-01 20:00",
	} {
		got, err := parseStartTime(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	_, err := parseStartTime("next tuesday")
	assert.Error(t, err)
}

func TestMissingRequired(t *testing.T) {
	c := formContext(t, url.Values{"name": {"The Dive"}, "city": {"  "}})
	assert.Equal(t, []string{"city", "state"}, missingRequired(c, "name", "city", "state"))

	c = formContext(t, url.Values{"name": {"The Dive"}, "city": {"Austin"}, "state": {"TX"}})
	assert.Empty(t, missingRequired(c, "name", "city", "state"))
}
