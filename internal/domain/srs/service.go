package srs

import (
	"fmt"
	"time"

	"github.com/phrazzld/scry-fsrs/internal/domain"
)

// Service defines the interface for scheduler operations.
//
// Every method is a pure computation: input cards are never modified and the
// same inputs always produce the same outputs (apart from review log IDs).
// Implementations are safe for concurrent use.
type Service interface {
	// Review applies a rating to a card at the given time and returns the new
	// card snapshot together with the log of the transition.
	Review(
		card domain.Card,
		rating domain.Rating,
		now time.Time,
	) (domain.Card, domain.ReviewLog, error)

	// Preview reports what each of the four ratings would do to the card.
	Preview(card domain.Card, now time.Time) (Preview, error)

	// Postpone pushes the next review of a scheduled card forward by days.
	Postpone(card domain.Card, days int) (domain.Card, error)

	// Queue builds the review queue for a population of cards keyed by
	// concept ID. today selects the calendar date; now is used to measure
	// retrievability.
	Queue(cards map[string]domain.Card, today, now time.Time) Queue

	// Params returns a copy of the parameters the service schedules with.
	Params() Params
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// Verify interface compliance at compile time
var _ Service = (*defaultService)(nil)

// NewDefaultService creates a new SRS service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters.
// A nil params falls back to the defaults.
func NewServiceWithParams(params *Params) Service {
	if params == nil {
		params = NewDefaultParams()
	}
	return &defaultService{
		params: params,
	}
}

// Review implements Service.Review.
func (s *defaultService) Review(
	card domain.Card,
	rating domain.Rating,
	now time.Time,
) (domain.Card, domain.ReviewLog, error) {
	if !rating.IsValid() {
		return domain.Card{}, domain.ReviewLog{}, fmt.Errorf("%w: %d (must be 1-4)", domain.ErrInvalidRating, int(rating))
	}
	if err := card.Validate(); err != nil {
		return domain.Card{}, domain.ReviewLog{}, err
	}

	return calculateNextCard(card, rating, now, s.params)
}

// Preview implements Service.Preview.
func (s *defaultService) Preview(card domain.Card, now time.Time) (Preview, error) {
	if err := card.Validate(); err != nil {
		return nil, err
	}

	return calculatePreview(card, now, s.params)
}

// Postpone implements Service.Postpone.
func (s *defaultService) Postpone(card domain.Card, days int) (domain.Card, error) {
	if days < 1 {
		return domain.Card{}, ErrInvalidDays
	}
	if err := card.Validate(); err != nil {
		return domain.Card{}, err
	}
	if card.State == domain.StateNew {
		return domain.Card{}, ErrCardNotScheduled
	}

	return calculatePostponed(card, days), nil
}

// Queue implements Service.Queue.
func (s *defaultService) Queue(cards map[string]domain.Card, today, now time.Time) Queue {
	return buildQueue(cards, today, now)
}

// Params implements Service.Params.
func (s *defaultService) Params() Params {
	return *s.params
}
