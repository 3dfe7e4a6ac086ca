// Package contentid derives the deterministic, content-addressed identifiers
// that make re-ingestion stable: identical normalized content always receives
// the same ID across independent runs.
//
// This is a compatibility contract, version 1:
//   - inputs are normalized first (see textnorm.NormalizeName);
//   - each field is written length-prefixed into a sha256, so field boundaries
//     are unambiguous;
//   - IDs are a one-letter kind prefix plus the first 16 hex characters of the
//     digest.
//
// Changing any of the above changes every ID in the dataset and must bump the
// version string baked into the hash.
package contentid

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strings"
)

// Hash version strings. Bump on any change to normalization or encoding.
const (
	artistVersion = "artist/v1"
	venueVersion  = "venue/v1"
	eventVersion  = "event/v1"
)

const idHexLen = 16

func hash(parts ...string) string {
	h := sha256.New()

	var lenBuf [8]byte

	for _, p := range parts {
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(p)))
		h.Write(lenBuf[:])
		h.Write([]byte(p))
	}

	return hex.EncodeToString(h.Sum(nil))[:idHexLen]
}

// ArtistID derives an artist ID from the normalized artist name.
func ArtistID(normalizedName string) string {
	return "a" + hash(artistVersion, normalizedName)
}

// VenueID derives a venue ID from the normalized venue name and canonical city.
func VenueID(normalizedName, city string) string {
	return "v" + hash(venueVersion, normalizedName, strings.ToLower(city))
}

// EventID derives an event ID from the ISO date, the headliner's artist ID,
// and the venue ID.
func EventID(isoDate, headlinerArtistID, venueID string) string {
	return "e" + hash(eventVersion, isoDate, headlinerArtistID, venueID)
}

// EventDedupKey builds the canonical (date, venue, headliner) key used to
// detect duplicate records within a single run. It is not hashed: it never
// leaves the run and the readable form helps diagnostics.
func EventDedupKey(isoDate, normalizedVenue, normalizedHeadliner string) string {
	return isoDate + "|" + normalizedVenue + "|" + normalizedHeadliner
}
