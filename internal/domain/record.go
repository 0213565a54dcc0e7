package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CardRecord is the flat key-value form of a Card as exchanged with external
// stores. Missing keys decode to their zero values, which is a new card.
type CardRecord struct {
	State         int     `json:"state"`
	Stability     float64 `json:"stability"`
	Difficulty    float64 `json:"difficulty"`
	Due           *string `json:"due"`
	LastReview    *string `json:"last_review"`
	ElapsedDays   int     `json:"elapsed_days"`
	ScheduledDays int     `json:"scheduled_days"`
	Reps          int     `json:"reps"`
	Lapses        int     `json:"lapses"`
}

// ReviewLogRecord is the flat form of a ReviewLog.
type ReviewLogRecord struct {
	ID            string `json:"id"`
	Rating        int    `json:"rating"`
	StateBefore   int    `json:"state_before"`
	StateAfter    int    `json:"state_after"`
	ElapsedDays   int    `json:"elapsed_days"`
	ScheduledDays int    `json:"scheduled_days"`
	ReviewDate    string `json:"review_date"`
}

// ToRecord converts c to its flat form. Floats are written at full precision
// so that the record converts back to an identical Card.
func (c Card) ToRecord() CardRecord {
	return CardRecord{
		State:         int(c.State),
		Stability:     c.Stability,
		Difficulty:    c.Difficulty,
		Due:           optionalTimestamp(c.Due),
		LastReview:    optionalTimestamp(c.LastReview),
		ElapsedDays:   c.ElapsedDays,
		ScheduledDays: c.ScheduledDays,
		Reps:          c.Reps,
		Lapses:        c.Lapses,
	}
}

// ToCard parses r into a Card. It fails on an unknown state code or an
// unparseable timestamp; invariant checks are left to Card.Validate.
func (r CardRecord) ToCard() (Card, error) {
	state, err := ParseState(r.State)
	if err != nil {
		return Card{}, err
	}

	card := Card{
		State:         state,
		Stability:     r.Stability,
		Difficulty:    r.Difficulty,
		ElapsedDays:   r.ElapsedDays,
		ScheduledDays: r.ScheduledDays,
		Reps:          r.Reps,
		Lapses:        r.Lapses,
	}

	if r.Due != nil {
		if card.Due, err = ParseOptionalTimestamp(*r.Due); err != nil {
			return Card{}, fmt.Errorf("due: %w", err)
		}
	}
	if r.LastReview != nil {
		if card.LastReview, err = ParseOptionalTimestamp(*r.LastReview); err != nil {
			return Card{}, fmt.Errorf("last_review: %w", err)
		}
	}

	return card, nil
}

// ToRecord converts l to its flat form.
func (l ReviewLog) ToRecord() ReviewLogRecord {
	return ReviewLogRecord{
		ID:            l.ID.String(),
		Rating:        int(l.Rating),
		StateBefore:   int(l.StateBefore),
		StateAfter:    int(l.StateAfter),
		ElapsedDays:   l.ElapsedDays,
		ScheduledDays: l.ScheduledDays,
		ReviewDate:    FormatTimestamp(l.ReviewDate),
	}
}

// ToReviewLog parses r into a ReviewLog.
func (r ReviewLogRecord) ToReviewLog() (ReviewLog, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return ReviewLog{}, fmt.Errorf("%w: review log id %q", ErrValidation, r.ID)
	}
	rating, err := ParseRating(r.Rating)
	if err != nil {
		return ReviewLog{}, err
	}
	before, err := ParseState(r.StateBefore)
	if err != nil {
		return ReviewLog{}, err
	}
	after, err := ParseState(r.StateAfter)
	if err != nil {
		return ReviewLog{}, err
	}
	reviewDate, err := ParseTimestamp(r.ReviewDate)
	if err != nil {
		return ReviewLog{}, fmt.Errorf("review_date: %w", err)
	}

	return ReviewLog{
		ID:            id,
		Rating:        rating,
		StateBefore:   before,
		StateAfter:    after,
		ElapsedDays:   r.ElapsedDays,
		ScheduledDays: r.ScheduledDays,
		ReviewDate:    reviewDate,
	}, nil
}

func optionalTimestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := FormatTimestamp(t)
	return &s
}
