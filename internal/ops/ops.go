// Package ops implements the operations shared by the CLI, the MCP server,
// and the web API: each operation is a plain function taking a database
// handle, the config, and a typed input, returning a typed output.
package ops

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ssanyal/graha/internal/config"
	"github.com/ssanyal/graha/internal/errors"
	"github.com/ssanyal/graha/internal/zodiac"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Record kinds stored in the analyses table.
const (
	KindNumerology = "numerology"
	KindChart      = "chart"
	KindDignity    = "dignity"
	KindAnalysis   = "analysis"
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// clampPagination applies defaults and caps to caller-supplied paging.
func clampPagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// BirthInput is the common birth data accepted by every chart-bearing
// operation. Zero-value fields fall back to the config defaults.
type BirthInput struct {
	BirthTime string   `json:"birth_datetime"` // RFC3339, or local forms resolved in the default zone
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Ayanamsa  string   `json:"ayanamsa,omitempty"`
}

// birthTimeLayouts are tried in order for timestamps without an explicit
// zone; such timestamps are interpreted in the config default timezone.
var birthTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// resolveBirth validates and defaults a BirthInput against the config.
func resolveBirth(cfg *config.Config, in BirthInput) (time.Time, float64, float64, zodiac.AyanamsaSystem, error) {
	birth, err := parseBirthTime(cfg, in.BirthTime)
	if err != nil {
		return time.Time{}, 0, 0, "", err
	}

	lat := cfg.DefaultLatitude
	if in.Latitude != nil {
		lat = *in.Latitude
	}
	lon := cfg.DefaultLongitude
	if in.Longitude != nil {
		lon = *in.Longitude
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return time.Time{}, 0, 0, "", errors.NewInvalidCoordinates(lat, lon)
	}

	system, err := resolveAyanamsa(cfg, in.Ayanamsa)
	if err != nil {
		return time.Time{}, 0, 0, "", err
	}
	return birth, lat, lon, system, nil
}

// parseBirthTime parses a birth timestamp. RFC3339 is authoritative; the
// zoneless layouts are resolved in the config default timezone.
func parseBirthTime(cfg *config.Config, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.NewValidation("birth_datetime is required")
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	loc, err := time.LoadLocation(cfg.DefaultTimezone)
	if err != nil {
		return time.Time{}, errors.NewValidationf("invalid default timezone %q: %v", cfg.DefaultTimezone, err)
	}
	for _, layout := range birthTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			// A bare date resolves to local noon, not midnight: midnight
			// sits before sunrise and would shift the Vedic day.
			if layout == "2006-01-02" {
				t = time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, loc)
			}
			return t, nil
		}
	}
	return time.Time{}, errors.NewValidationf("unparseable birth_datetime %q (use RFC3339 or YYYY-MM-DDTHH:MM)", raw)
}

// resolveAyanamsa parses a system name, defaulting to the configured one.
func resolveAyanamsa(cfg *config.Config, name string) (zodiac.AyanamsaSystem, error) {
	if strings.TrimSpace(name) == "" {
		name = cfg.AyanamsaSystem
	}
	return zodiac.ParseAyanamsa(name)
}

// parseDate parses a YYYY-MM-DD date in UTC.
func parseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, errors.NewValidationf("unparseable %s %q (use YYYY-MM-DD)", field, raw)
	}
	return t, nil
}
