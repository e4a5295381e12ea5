package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Form parsing helpers shared by the venue, artist and show handlers.

// parseID converts a path parameter into a record id.
func parseID(c echo.Context, param string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(c.Param(param)), 10, 64)
}

// parseID64 converts a form field into a record id.
func parseID64(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 10, 64)
}

// parseFlag reads a boolean form field by explicit value, not by mere
// presence: "true", "on", "y" and "1" mean true, anything else (including
// an absent field) means false. Checkbox submissions send value="true".
func parseFlag(c echo.Context, field string) bool {
	switch strings.ToLower(strings.TrimSpace(c.FormValue(field))) {
	case "true", "on", "y", "1":
		return true
	}
	return false
}

// genreValues returns the multi-select genres field in submission order.
func genreValues(c echo.Context) []string {
	form, err := c.FormParams()
	if err != nil {
		return nil
	}
	var out []string
	for _, g := range form["genres"] {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// startTimeLayouts are the formats the booking form accepts. Browsers with
// datetime-local inputs post the first two; the placeholder suggests RFC3339.
var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseStartTime parses a submitted show start time, trying each accepted
// layout in order.
func parseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range startTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// missingRequired returns the names of required form fields that are empty
// after trimming.
func missingRequired(c echo.Context, fields ...string) []string {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(c.FormValue(f)) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}
