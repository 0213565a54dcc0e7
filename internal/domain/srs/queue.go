package srs

import (
	"cmp"
	"slices"
	"time"

	"github.com/phrazzld/scry-fsrs/internal/domain"
)

// UpcomingWindowDays is how far past today a card may be due and still be
// listed as upcoming.
const UpcomingWindowDays = 7

// QueueEntry describes one card in the review queue.
type QueueEntry struct {
	ConceptID      string
	State          domain.State
	DueDate        time.Time // calendar date of Due, midnight UTC
	OverdueDays    int       // days between DueDate and today; 0 for upcoming cards
	Stability      float64
	Difficulty     float64
	Retrievability float64 // at the time the queue was built
}

// QueueStats aggregates the population a queue was built from.
type QueueStats struct {
	TotalActiveCards      int     // cards that have left StateNew
	DueToday              int     // len(Due)
	DueThisWeek           int     // len(Due) + len(Upcoming)
	AverageRetrievability float64 // over cards with a computable retrievability
}

// Queue is the ordered review queue for a population of cards.
type Queue struct {
	Due      []QueueEntry
	Upcoming []QueueEntry
	Stats    QueueStats
}

// buildQueue classifies cards into due and upcoming lists.
//
// Cards in StateNew are never queued. Cards that have left StateNew but lack a
// due or last_review timestamp count as active but are otherwise skipped.
// Retrievability is measured at now; due dates are compared to today as
// calendar dates.
//
// Due entries are ordered Relearning first, then by descending overdue days.
// Upcoming entries are ordered by ascending due date. Ties keep concept ID
// order so that the result does not depend on map iteration.
func buildQueue(cards map[string]domain.Card, today, now time.Time) Queue {
	today = domain.DateOf(today)
	horizon := today.AddDate(0, 0, UpcomingWindowDays)

	queue := Queue{
		Due:      []QueueEntry{},
		Upcoming: []QueueEntry{},
	}

	var totalRetrievability float64
	var measured int

	for _, conceptID := range sortedKeys(cards) {
		card := cards[conceptID]
		if card.State == domain.StateNew {
			continue
		}
		queue.Stats.TotalActiveCards++

		if !card.IsScheduled() {
			continue
		}

		r := Retrievability(domain.DaysBetween(card.LastReview, now), card.Stability)
		totalRetrievability += r
		measured++

		dueDate := domain.DateOf(card.Due)
		entry := QueueEntry{
			ConceptID:      conceptID,
			State:          card.State,
			DueDate:        dueDate,
			Stability:      card.Stability,
			Difficulty:     card.Difficulty,
			Retrievability: r,
		}

		switch {
		case !dueDate.After(today):
			entry.OverdueDays = domain.DaysBetween(dueDate, today)
			queue.Due = append(queue.Due, entry)
		case !dueDate.After(horizon):
			queue.Upcoming = append(queue.Upcoming, entry)
		}
	}

	slices.SortStableFunc(queue.Due, func(a, b QueueEntry) int {
		if c := cmp.Compare(relearningRank(a), relearningRank(b)); c != 0 {
			return c
		}
		return cmp.Compare(b.OverdueDays, a.OverdueDays)
	})
	slices.SortStableFunc(queue.Upcoming, func(a, b QueueEntry) int {
		return a.DueDate.Compare(b.DueDate)
	})

	queue.Stats.DueToday = len(queue.Due)
	queue.Stats.DueThisWeek = len(queue.Due) + len(queue.Upcoming)
	if measured > 0 {
		queue.Stats.AverageRetrievability = totalRetrievability / float64(measured)
	}

	return queue
}

func relearningRank(e QueueEntry) int {
	if e.State == domain.StateRelearning {
		return 0
	}
	return 1
}

func sortedKeys(cards map[string]domain.Card) []string {
	keys := make([]string, 0, len(cards))
	for k := range cards {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
