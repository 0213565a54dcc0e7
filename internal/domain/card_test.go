package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewCard(t *testing.T) {
	t.Parallel() // Enable parallel execution

	card := NewCard()

	if card.State != StateNew {
		t.Errorf("Expected state %s, got %s", StateNew, card.State)
	}
	if card.IsScheduled() {
		t.Error("Expected new card to be unscheduled")
	}
	if err := card.Validate(); err != nil {
		t.Errorf("Expected new card to be valid, got %v", err)
	}
}

func TestCardValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	valid := Card{
		State:         StateReview,
		Stability:     3.2,
		Difficulty:    5.3,
		Due:           now.AddDate(0, 0, 3),
		LastReview:    now,
		ScheduledDays: 3,
		Reps:          1,
	}

	testCases := []struct {
		name    string
		mutate  func(c *Card)
		wantErr bool
	}{
		{name: "valid review card", mutate: func(c *Card) {}},
		{name: "zero stability is allowed while learning", mutate: func(c *Card) { c.State = StateLearning; c.Stability = 0 }},
		{name: "zero stability is allowed while relearning", mutate: func(c *Card) { c.State = StateRelearning; c.Stability = 0 }},
		{name: "zero stability in review", mutate: func(c *Card) { c.Stability = 0 }, wantErr: true},
		{name: "unknown state", mutate: func(c *Card) { c.State = State(4) }, wantErr: true},
		{name: "missing due", mutate: func(c *Card) { c.Due = time.Time{} }, wantErr: true},
		{name: "missing last review", mutate: func(c *Card) { c.LastReview = time.Time{} }, wantErr: true},
		{name: "new card with due", mutate: func(c *Card) { c.State = StateNew; c.LastReview = time.Time{} }, wantErr: true},
		{name: "difficulty below range", mutate: func(c *Card) { c.Difficulty = 0.5 }, wantErr: true},
		{name: "difficulty above range", mutate: func(c *Card) { c.Difficulty = 10.5 }, wantErr: true},
		{name: "negative stability", mutate: func(c *Card) { c.Stability = -1 }, wantErr: true},
		{name: "negative reps", mutate: func(c *Card) { c.Reps = -1 }, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			card := valid
			tc.mutate(&card)

			err := card.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidCard) {
					t.Errorf("Expected ErrInvalidCard, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestCardEqual(t *testing.T) {
	t.Parallel() // Enable parallel execution
	utc := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	offset := utc.In(time.FixedZone("", 2*60*60))

	a := Card{State: StateReview, Stability: 1, Difficulty: 2, Due: utc, LastReview: utc}
	b := a
	b.Due = offset

	if !a.Equal(b) {
		t.Error("Expected cards with the same instants to be equal")
	}

	b.Lapses = 1
	if a.Equal(b) {
		t.Error("Expected cards with different lapses to differ")
	}
}

func TestRatingAndState(t *testing.T) {
	t.Parallel() // Enable parallel execution

	for code := 1; code <= 4; code++ {
		if _, err := ParseRating(code); err != nil {
			t.Errorf("Expected rating %d to parse, got %v", code, err)
		}
	}
	for _, code := range []int{0, 5, -3} {
		if _, err := ParseRating(code); !errors.Is(err, ErrInvalidRating) {
			t.Errorf("Expected ErrInvalidRating for %d, got %v", code, err)
		}
	}

	for code := 0; code <= 3; code++ {
		if _, err := ParseState(code); err != nil {
			t.Errorf("Expected state %d to parse, got %v", code, err)
		}
	}
	if _, err := ParseState(4); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState, got %v", err)
	}

	if RatingGood.String() != "good" || Rating(9).String() != "rating(9)" {
		t.Errorf("Unexpected rating names: %s, %s", RatingGood, Rating(9))
	}
	if StateRelearning.String() != "relearning" || State(-1).String() != "state(-1)" {
		t.Errorf("Unexpected state names: %s, %s", StateRelearning, State(-1))
	}
}
