package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hjnengare/sayso-web-sub011/internal/adapters/provider"
	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

// ErrUnresolvable is returned when every provider rejects every address
// candidate. Callers treat geocoding as best-effort.
var ErrUnresolvable = domain.ErrAddressUnresolvable

// Chain geocodes through a paid primary provider, falling back to a free one.
// Each provider is tried with progressively looser address candidates before
// moving on.
type Chain struct {
	primary  *provider.Client // nil when no key is configured
	fallback *provider.Client
}

func NewChain(primaryBase, primaryKey, fallbackBase string) *Chain {
	c := &Chain{
		fallback: provider.New("geocode_free", fallbackBase, "", "", 1),
	}
	if primaryKey != "" {
		c.primary = provider.New("geocode_paid", primaryBase, "Authorization", "Bearer "+primaryKey, 10)
	}
	return c
}

func (c *Chain) Geocode(ctx context.Context, address string) (domain.Coords, error) {
	cands := Candidates(address)
	if len(cands) == 0 {
		return domain.Coords{}, ErrUnresolvable
	}

	if c.primary != nil {
		for _, cand := range cands {
			pt, err := c.searchPrimary(ctx, cand)
			if err == nil {
				return pt, nil
			}
			if !retriableMiss(err) {
				return domain.Coords{}, err
			}
		}
		log.Debug().Str("address", address).Msg("primary geocoder exhausted, falling back")
	}

	for _, cand := range cands {
		pt, err := c.searchFallback(ctx, cand)
		if err == nil {
			return pt, nil
		}
		if !retriableMiss(err) {
			return domain.Coords{}, err
		}
	}
	return domain.Coords{}, ErrUnresolvable
}

// retriableMiss reports whether the next candidate/provider is worth trying.
func retriableMiss(err error) bool {
	return errors.Is(err, provider.ErrNotFound) || errors.Is(err, errNoMatch)
}

var errNoMatch = errors.New("geocode: no match")

// primary speaks a GeoJSON search API: /search?text=... -> {"features":[...]}.
func (c *Chain) searchPrimary(ctx context.Context, q string) (domain.Coords, error) {
	var out struct {
		Features []struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"` // [lon, lat]
			} `json:"geometry"`
		} `json:"features"`
	}
	path := "/search?size=1&text=" + url.QueryEscape(q)
	if err := c.primary.GetJSON(ctx, path, &out); err != nil {
		return domain.Coords{}, err
	}
	if len(out.Features) == 0 || len(out.Features[0].Geometry.Coordinates) < 2 {
		return domain.Coords{}, errNoMatch
	}
	co := out.Features[0].Geometry.Coordinates
	return domain.Coords{Lat: co[1], Lon: co[0]}, nil
}

// fallback speaks the Nominatim search API, which stringifies coordinates.
func (c *Chain) searchFallback(ctx context.Context, q string) (domain.Coords, error) {
	var out []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	path := "/search?format=json&limit=1&q=" + url.QueryEscape(q)
	if err := c.fallback.GetJSON(ctx, path, &out); err != nil {
		return domain.Coords{}, err
	}
	if len(out) == 0 {
		return domain.Coords{}, errNoMatch
	}
	lat, err1 := strconv.ParseFloat(out[0].Lat, 64)
	lon, err2 := strconv.ParseFloat(out[0].Lon, 64)
	if err1 != nil || err2 != nil {
		return domain.Coords{}, fmt.Errorf("geocode: bad coords %q,%q", out[0].Lat, out[0].Lon)
	}
	return domain.Coords{Lat: lat, Lon: lon}, nil
}

// Candidates returns normalized variants of an address, most specific first:
// the raw address, a punctuation-cleaned form, then the tail comma segments
// (dropping the street line, then everything but the last two segments).
func Candidates(address string) []string {
	raw := collapseSpaces(address)
	if raw == "" {
		return nil
	}

	var out []string
	seen := map[string]struct{}{}
	add := func(s string) {
		s = collapseSpaces(s)
		if s == "" {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(raw)
	add(stripPunct(raw))

	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) > 2 {
		add(strings.Join(parts[1:], ", ")) // drop the street line
		add(strings.Join(parts[len(parts)-2:], ", "))
	} else if len(parts) == 2 {
		add(parts[1])
	}
	return out
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
}

// stripPunct drops everything except letters, digits, spaces and commas.
func stripPunct(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == ',' || r == ' ':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r > 127: // keep non-ASCII letters (street names)
			b.WriteRune(r)
		}
	}
	return b.String()
}
