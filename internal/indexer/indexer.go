// Package indexer partitions normalized events into month chunks and builds
// the cross-reference tables the consuming loader uses for incremental access
// and substring search.
package indexer

import (
	"sort"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"

	"showlist/internal/models"
)

// minSearchTokenLen filters out single-character noise tokens.
const minSearchTokenLen = 2

// BuildChunks groups events into month-keyed chunks. Chunk membership is a
// pure function of the event date (the YYYY-MM of its dateEpochMs, which is
// the prefix of the ISO date string by construction); every event lands in
// exactly one chunk. Events are sorted by date within a chunk, chunks by id.
func BuildChunks(events []models.Event) []models.EventChunk {
	byMonth := make(map[string][]models.Event)

	for _, event := range events {
		chunkID := event.Date[:7]
		byMonth[chunkID] = append(byMonth[chunkID], event)
	}

	chunks := make([]models.EventChunk, 0, len(byMonth))

	for chunkID, members := range byMonth {
		sort.Slice(members, func(i, j int) bool {
			if members[i].DateEpochMs != members[j].DateEpochMs {
				return members[i].DateEpochMs < members[j].DateEpochMs
			}

			return members[i].ID < members[j].ID
		})

		chunks = append(chunks, models.EventChunk{
			ChunkID: chunkID,
			DateRange: models.DateRange{
				Start: members[0].Date,
				End:   members[len(members)-1].Date,
			},
			Events: members,
		})
	}

	sort.Slice(chunks, func(i, j int) bool { return chunks[i].ChunkID < chunks[j].ChunkID })

	return chunks
}

// BuildIndexes builds the lookup tables: date/artist/venue to event ids,
// normalized-name to entity id, and the search-term index. All id lists are
// sorted so repeated runs produce identical artifacts.
func BuildIndexes(events []models.Event, artists []models.Artist, venues []models.Venue) *models.Indexes {
	idx := &models.Indexes{
		ByDate:      make(map[string][]string),
		ByArtist:    make(map[string][]string),
		ByVenue:     make(map[string][]string),
		ArtistNames: make(map[string]string, len(artists)),
		VenueNames:  make(map[string]string, len(venues)),
		SearchTerms: make(map[string][]string),
	}

	for _, event := range events {
		idx.ByDate[event.Date] = append(idx.ByDate[event.Date], event.ID)
		idx.ByVenue[event.VenueID] = append(idx.ByVenue[event.VenueID], event.ID)

		for _, artistID := range event.ArtistIDs {
			idx.ByArtist[artistID] = append(idx.ByArtist[artistID], event.ID)
		}
	}

	terms := make(map[string]map[string]bool)

	addTerms := func(text, id string) {
		for _, token := range searchTokens(text) {
			if terms[token] == nil {
				terms[token] = make(map[string]bool)
			}

			terms[token][id] = true
		}
	}

	for _, artist := range artists {
		idx.ArtistNames[artist.NormalizedName] = artist.ID
		addTerms(artist.Name, artist.ID)

		for _, alias := range artist.Aliases {
			addTerms(alias, artist.ID)
		}
	}

	for _, venue := range venues {
		idx.VenueNames[venue.NormalizedName] = venue.ID
		addTerms(venue.Name, venue.ID)
		addTerms(venue.City, venue.ID)
	}

	for token, ids := range terms {
		idx.SearchTerms[token] = sortedKeys(ids)
	}

	for _, m := range []map[string][]string{idx.ByDate, idx.ByArtist, idx.ByVenue} {
		for key, ids := range m {
			sort.Strings(ids)
			m[key] = ids
		}
	}

	return idx
}

// searchTokens segments a display name into lowercased word tokens.
func searchTokens(text string) []string {
	var tokens []string

	segs := words.FromString(strings.ToLower(text))
	for segs.Next() {
		token := strings.TrimSpace(segs.Value())
		if len([]rune(token)) < minSearchTokenLen || !hasAlnum(token) {
			continue
		}

		tokens = append(tokens, token)
	}

	return tokens
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}

	return false
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
