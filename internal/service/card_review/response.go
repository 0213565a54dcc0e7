package card_review

import (
	"math"

	"github.com/phrazzld/scry-fsrs/internal/domain"
	"github.com/phrazzld/scry-fsrs/internal/domain/srs"
)

func newPreviewResponse(preview srs.Preview) *PreviewResponse {
	return &PreviewResponse{
		Again: newPreviewOutcome(preview[domain.RatingAgain]),
		Hard:  newPreviewOutcome(preview[domain.RatingHard]),
		Good:  newPreviewOutcome(preview[domain.RatingGood]),
		Easy:  newPreviewOutcome(preview[domain.RatingEasy]),
	}
}

func newPreviewOutcome(outcome srs.PreviewOutcome) PreviewOutcome {
	return PreviewOutcome{
		Interval:  outcome.Interval,
		NextDue:   domain.FormatTimestamp(outcome.NextDue),
		Stability: round(outcome.Stability, 2),
	}
}

func newQueueResponse(queue srs.Queue) *QueueResponse {
	resp := &QueueResponse{
		Due:      make([]DueEntry, 0, len(queue.Due)),
		Upcoming: make([]UpcomingEntry, 0, len(queue.Upcoming)),
		Stats: QueueStats{
			TotalActiveCards:      queue.Stats.TotalActiveCards,
			DueToday:              queue.Stats.DueToday,
			DueThisWeek:           queue.Stats.DueThisWeek,
			AverageRetrievability: round(queue.Stats.AverageRetrievability, 4),
		},
	}

	for _, e := range queue.Due {
		resp.Due = append(resp.Due, DueEntry{
			ConceptID:      e.ConceptID,
			DueDate:        domain.FormatDate(e.DueDate),
			OverdueDays:    e.OverdueDays,
			Stability:      round(e.Stability, 2),
			Difficulty:     round(e.Difficulty, 2),
			Retrievability: round(e.Retrievability, 4),
			State:          e.State,
		})
	}
	for _, e := range queue.Upcoming {
		resp.Upcoming = append(resp.Upcoming, UpcomingEntry{
			ConceptID: e.ConceptID,
			DueDate:   domain.FormatDate(e.DueDate),
			Stability: round(e.Stability, 2),
		})
	}

	return resp
}

// round rounds x to the given number of decimal places.
func round(x float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(x*scale) / scale
}
