package domain

import (
	"fmt"
	"time"
)

// Difficulty bounds shared by every card that has left StateNew.
const (
	MinDifficulty = 1.0
	MaxDifficulty = 10.0
)

// Card is the memory snapshot of a single concept.
//
// Card is a value: scheduler operations take a Card and return a new one, so a
// snapshot held by a caller never changes underneath it. Due and LastReview are
// the zero time while the card is in StateNew.
type Card struct {
	State         State
	Stability     float64 // Days until retrievability decays to 90%
	Difficulty    float64 // 1 (easiest) to 10 (hardest)
	Due           time.Time
	LastReview    time.Time
	ElapsedDays   int
	ScheduledDays int
	Reps          int // Completed reviews
	Lapses        int // Again ratings received in StateReview
}

// CardSource is anything that can be materialized into a Card.
// Both Card and CardRecord implement it.
type CardSource interface {
	ToCard() (Card, error)
}

// Verify interface compliance at compile time
var (
	_ CardSource = Card{}
	_ CardSource = CardRecord{}
)

// NewCard returns a card that has never been reviewed.
func NewCard() Card {
	return Card{State: StateNew}
}

// ToCard returns c unchanged.
func (c Card) ToCard() (Card, error) {
	return c, nil
}

// IsScheduled reports whether both Due and LastReview are set.
func (c Card) IsScheduled() bool {
	return !c.Due.IsZero() && !c.LastReview.IsZero()
}

// Validate checks that the card is consistent enough to be reviewed.
// Returns an error wrapping ErrInvalidCard describing the first violation found.
func (c Card) Validate() error {
	if !c.State.IsValid() {
		return fmt.Errorf("%w: %w", ErrInvalidCard, ErrInvalidState)
	}

	if c.State == StateNew {
		if !c.Due.IsZero() || !c.LastReview.IsZero() {
			return fmt.Errorf("%w: new card must not have due or last_review set", ErrInvalidCard)
		}
	} else {
		if !c.IsScheduled() {
			return fmt.Errorf("%w: %s card must have due and last_review set", ErrInvalidCard, c.State)
		}
		if c.Difficulty < MinDifficulty || c.Difficulty > MaxDifficulty {
			return fmt.Errorf("%w: difficulty %g outside [1, 10]", ErrInvalidCard, c.Difficulty)
		}
		if c.Stability < 0 {
			return fmt.Errorf("%w: stability %g is negative", ErrInvalidCard, c.Stability)
		}
		// Learning steps restart from the initial stability; review cards cannot.
		if c.State == StateReview && c.Stability == 0 {
			return fmt.Errorf("%w: review card must have positive stability", ErrInvalidCard)
		}
	}

	if c.ElapsedDays < 0 || c.ScheduledDays < 0 || c.Reps < 0 || c.Lapses < 0 {
		return fmt.Errorf("%w: counters must not be negative", ErrInvalidCard)
	}

	return nil
}

// Equal reports whether c and o hold the same values. Timestamps are compared
// as instants.
func (c Card) Equal(o Card) bool {
	return c.State == o.State &&
		c.Stability == o.Stability &&
		c.Difficulty == o.Difficulty &&
		c.Due.Equal(o.Due) &&
		c.LastReview.Equal(o.LastReview) &&
		c.ElapsedDays == o.ElapsedDays &&
		c.ScheduledDays == o.ScheduledDays &&
		c.Reps == o.Reps &&
		c.Lapses == o.Lapses
}
