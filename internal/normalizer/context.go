// Package normalizer resolves candidate records into Artist, Venue, and Event
// entities. Resolution is order-dependent: the first occurrence of a name
// creates the entity, later occurrences merge into it, so records must be
// processed in source order.
package normalizer

import (
	"sort"
	"time"

	"showlist/internal/contentid"
	"showlist/internal/models"
	"showlist/internal/textnorm"
)

// Context carries the per-run mutable state: the artist and venue registries,
// the seen-event set used for dedup, and the run's clock anchors. One Context
// is created per ingestion run and passed through every stage.
type Context struct {
	artists    map[string]*models.Artist // keyed by normalized name
	venues     map[string]*models.Venue  // keyed by normalized name + "|" + city
	venueOrder []string
	seenEvents map[string]int // dedup key -> line of first occurrence

	now       time.Time
	reference time.Time // "upcoming" cutoff
}

// NewContext creates the run state. reference is the cutoff for upcoming-event
// counts; now stamps createdAt/updatedAt on new entities.
func NewContext(now, reference time.Time) *Context {
	return &Context{
		artists:    make(map[string]*models.Artist),
		venues:     make(map[string]*models.Venue),
		seenEvents: make(map[string]int),
		now:        now,
		reference:  reference,
	}
}

// ResolveArtist returns the artist for a display name, creating it on first
// sight. A different raw spelling of an already-known normalized name is
// recorded as an alias.
func (c *Context) ResolveArtist(name string) *models.Artist {
	norm := textnorm.NormalizeName(name)

	if existing, ok := c.artists[norm]; ok {
		if name != existing.Name && !containsString(existing.Aliases, name) {
			existing.Aliases = append(existing.Aliases, name)
		}

		return existing
	}

	artist := &models.Artist{
		ID:             contentid.ArtistID(norm),
		Name:           name,
		Slug:           textnorm.Slugify(name),
		NormalizedName: norm,
		Aliases:        []string{},
		CreatedAt:      c.now,
		UpdatedAt:      c.now,
	}
	c.artists[norm] = artist

	return artist
}

// ResolveVenue returns the venue for a name + city pair, creating it on first
// sight. The second return reports whether the venue was created by this call.
func (c *Context) ResolveVenue(name, city string) (*models.Venue, bool) {
	norm := textnorm.NormalizeName(name)
	key := norm + "|" + textnorm.NormalizeName(city)

	if existing, ok := c.venues[key]; ok {
		return existing, false
	}

	venue := &models.Venue{
		ID:             contentid.VenueID(norm, city),
		Name:           name,
		Slug:           textnorm.Slugify(name),
		NormalizedName: norm,
		City:           city,
	}
	c.venues[key] = venue
	c.venueOrder = append(c.venueOrder, key)

	return venue, true
}

// VenueByName finds the earliest-created venue with the given normalized name,
// regardless of city. The venue directory file carries no separate city field,
// so merging matches on name alone.
func (c *Context) VenueByName(norm string) *models.Venue {
	for _, key := range c.venueOrder {
		if v := c.venues[key]; v.NormalizedName == norm {
			return v
		}
	}

	return nil
}

// MarkEventSeen records a dedup key, returning false (and the line of the
// first occurrence) when the key was already present.
func (c *Context) MarkEventSeen(key string, line int) (int, bool) {
	if first, ok := c.seenEvents[key]; ok {
		return first, false
	}

	c.seenEvents[key] = line

	return line, true
}

// IsUpcoming reports whether a date counts toward upcoming-event totals.
func (c *Context) IsUpcoming(date time.Time) bool {
	return !date.Before(c.reference)
}

// Artists finalizes the registry into a slice sorted by normalized name.
func (c *Context) Artists() []models.Artist {
	out := make([]models.Artist, 0, len(c.artists))
	for _, a := range c.artists {
		out = append(out, *a)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].NormalizedName < out[j].NormalizedName })

	return out
}

// Venues finalizes the registry into a slice sorted by normalized name, city
// breaking ties.
func (c *Context) Venues() []models.Venue {
	out := make([]models.Venue, 0, len(c.venues))
	for _, v := range c.venues {
		out = append(out, *v)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].NormalizedName != out[j].NormalizedName {
			return out[i].NormalizedName < out[j].NormalizedName
		}

		return out[i].City < out[j].City
	})

	return out
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}

	return false
}
