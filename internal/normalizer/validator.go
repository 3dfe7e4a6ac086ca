package normalizer

import (
	"errors"
	"fmt"

	"showlist/internal/models"
)

// Validation errors.
var (
	ErrEventMissingID        = errors.New("event missing id")
	ErrEventMissingDate      = errors.New("event missing date")
	ErrEventMissingVenue     = errors.New("event missing venue id")
	ErrEventNoArtists        = errors.New("event has no artists")
	ErrHeadlinerNotOnEvent   = errors.New("headliner is not among the event's artists")
	ErrInvalidStatus         = errors.New("invalid event status")
	ErrInconsistentPriceSpan = errors.New("priceMin exceeds priceMax")
	ErrFreeEventWithPrice    = errors.New("free event carries a price")
)

// Validator checks emitted events against the output contract before they
// reach the indexer.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks a single normalized event.
func (v *Validator) Validate(event *models.Event) error {
	if event.ID == "" {
		return ErrEventMissingID
	}

	if event.Date == "" || event.DateEpochMs == 0 {
		return fmt.Errorf("%w: %s", ErrEventMissingDate, event.ID)
	}

	if event.VenueID == "" {
		return fmt.Errorf("%w: %s", ErrEventMissingVenue, event.ID)
	}

	if len(event.ArtistIDs) == 0 {
		return fmt.Errorf("%w: %s", ErrEventNoArtists, event.ID)
	}

	found := false

	for _, id := range event.ArtistIDs {
		if id == event.HeadlinerArtistID {
			found = true

			break
		}
	}

	if !found {
		return fmt.Errorf("%w: %s", ErrHeadlinerNotOnEvent, event.ID)
	}

	if event.Status != models.StatusConfirmed && event.Status != models.StatusSoldOut {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, event.Status)
	}

	if event.PriceMin != nil && event.PriceMax != nil && *event.PriceMin > *event.PriceMax {
		return fmt.Errorf("%w: %s", ErrInconsistentPriceSpan, event.ID)
	}

	if event.IsFree && event.PriceMin != nil {
		return fmt.Errorf("%w: %s", ErrFreeEventWithPrice, event.ID)
	}

	return nil
}
