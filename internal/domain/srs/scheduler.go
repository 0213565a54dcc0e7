package srs

import (
	"fmt"
	"time"

	"github.com/phrazzld/scry-fsrs/internal/domain"
)

// PreviewOutcome is the result a single rating would have on a card.
type PreviewOutcome struct {
	Interval  int       // scheduled_days after the review
	NextDue   time.Time // due after the review
	Stability float64   // stability after the review
}

// Preview maps every rating to the outcome it would produce.
type Preview map[domain.Rating]PreviewOutcome

// calculateNextCard runs the review state machine for one card and rating.
//
// It returns a new card and the log entry describing the transition; card is
// never modified. Retrievability fed to the update formulas is computed from
// the elapsed days and the stability the card had before this review.
//
// Transitions:
//   - New + Again/Hard: Learning, due now
//   - New + Good/Easy: Review, due after Interval(S)
//   - Learning/Relearning + Again: same state, stability reset to S0(Again), due now
//   - Learning/Relearning + Hard/Good/Easy: Review, due after Interval(S)
//   - Review + Again: Relearning, lapses + 1, due now
//   - Review + Hard/Good/Easy: Review, due after Interval(S)
//
// The rating must already be valid.
func calculateNextCard(
	card domain.Card,
	rating domain.Rating,
	now time.Time,
	params *Params,
) (domain.Card, domain.ReviewLog, error) {
	w := &params.Weights
	next := card

	switch card.State {
	case domain.StateNew:
		next.Stability = initialStability(w, rating)
		next.Difficulty = initialDifficulty(w, rating)
		next.ElapsedDays = 0
		next.Reps = 1

		if rating == domain.RatingAgain || rating == domain.RatingHard {
			next.State = domain.StateLearning
			next = scheduleNow(next, now)
		} else {
			next.State = domain.StateReview
			next = scheduleInterval(next, now, params)
		}

	case domain.StateLearning, domain.StateRelearning:
		elapsed := elapsedDays(card, now)
		r := Retrievability(elapsed, card.Stability)

		next.ElapsedDays = elapsed
		next.Difficulty = nextDifficulty(w, card.Difficulty, rating)
		next.Reps = card.Reps + 1

		if rating == domain.RatingAgain {
			next.Stability = initialStability(w, domain.RatingAgain)
			next = scheduleNow(next, now)
		} else {
			if card.Stability > 0 {
				next.Stability = nextStabilitySuccess(w, card.Difficulty, card.Stability, r, rating)
			} else {
				next.Stability = initialStability(w, rating)
			}
			next.State = domain.StateReview
			next = scheduleInterval(next, now, params)
		}

	case domain.StateReview:
		elapsed := elapsedDays(card, now)
		r := Retrievability(elapsed, card.Stability)

		next.ElapsedDays = elapsed
		next.Difficulty = nextDifficulty(w, card.Difficulty, rating)
		next.Reps = card.Reps + 1

		if rating == domain.RatingAgain {
			next.Stability = nextStabilityFail(w, card.Difficulty, card.Stability, r)
			next.State = domain.StateRelearning
			next.Lapses = card.Lapses + 1
			next = scheduleNow(next, now)
		} else {
			next.Stability = nextStabilitySuccess(w, card.Difficulty, card.Stability, r, rating)
			next.State = domain.StateReview
			next = scheduleInterval(next, now, params)
		}

	default:
		return domain.Card{}, domain.ReviewLog{}, fmt.Errorf("%w: %d", domain.ErrInvalidState, int(card.State))
	}

	next.LastReview = now

	log := domain.NewReviewLog(
		rating,
		card.State,
		next.State,
		next.ElapsedDays,
		next.ScheduledDays,
		now,
	)

	return next, log, nil
}

// calculatePreview runs the state machine once per rating, each time starting
// from the same snapshot.
func calculatePreview(card domain.Card, now time.Time, params *Params) (Preview, error) {
	preview := make(Preview, len(domain.Ratings))
	for _, rating := range domain.Ratings {
		next, _, err := calculateNextCard(card, rating, now, params)
		if err != nil {
			return nil, err
		}
		preview[rating] = PreviewOutcome{
			Interval:  next.ScheduledDays,
			NextDue:   next.Due,
			Stability: next.Stability,
		}
	}
	return preview, nil
}

// calculatePostponed pushes the due date of a scheduled card forward by days
// and records the extra days in scheduled_days.
func calculatePostponed(card domain.Card, days int) domain.Card {
	next := card
	next.Due = card.Due.AddDate(0, 0, days)
	next.ScheduledDays = card.ScheduledDays + days
	return next
}

// scheduleNow makes the card due again in the same session.
func scheduleNow(card domain.Card, now time.Time) domain.Card {
	card.ScheduledDays = 0
	card.Due = now
	return card
}

// scheduleInterval makes the card due after Interval(card.Stability) days.
func scheduleInterval(card domain.Card, now time.Time, params *Params) domain.Card {
	interval := params.Interval(card.Stability)
	card.ScheduledDays = interval
	card.Due = now.AddDate(0, 0, interval)
	return card
}

func elapsedDays(card domain.Card, now time.Time) int {
	if card.LastReview.IsZero() {
		return 0
	}
	return domain.DaysBetween(card.LastReview, now)
}
