package srs

import (
	"testing"
	"time"

	"github.com/phrazzld/scry-fsrs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var queueToday = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

// dueCard builds a card due the given number of days relative to queueToday.
func dueCard(state domain.State, dueOffset int) domain.Card {
	due := queueToday.Add(9*time.Hour).AddDate(0, 0, dueOffset)
	return domain.Card{
		State:         state,
		Stability:     5,
		Difficulty:    5,
		Due:           due,
		LastReview:    due.AddDate(0, 0, -5),
		ScheduledDays: 5,
		Reps:          2,
	}
}

func conceptIDs(entries []QueueEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ConceptID)
	}
	return ids
}

func TestBuildQueueOrdering(t *testing.T) {
	t.Parallel() // Enable parallel execution

	t.Run("relearning sorts before review at equal overdue", func(t *testing.T) {
		cards := map[string]domain.Card{
			"a-review":     dueCard(domain.StateReview, -3),
			"b-relearning": dueCard(domain.StateRelearning, -3),
		}

		queue := buildQueue(cards, queueToday, queueToday)

		assert.Equal(t, []string{"b-relearning", "a-review"}, conceptIDs(queue.Due))
	})

	t.Run("more overdue sorts first", func(t *testing.T) {
		cards := map[string]domain.Card{
			"two":  dueCard(domain.StateReview, -2),
			"five": dueCard(domain.StateReview, -5),
		}

		queue := buildQueue(cards, queueToday, queueToday)

		require.Len(t, queue.Due, 2)
		assert.Equal(t, []string{"five", "two"}, conceptIDs(queue.Due))
		assert.Equal(t, 5, queue.Due[0].OverdueDays)
		assert.Equal(t, 2, queue.Due[1].OverdueDays)
	})

	t.Run("relearning first even when less overdue", func(t *testing.T) {
		cards := map[string]domain.Card{
			"review":     dueCard(domain.StateReview, -10),
			"relearning": dueCard(domain.StateRelearning, 0),
			"learning":   dueCard(domain.StateLearning, -1),
		}

		queue := buildQueue(cards, queueToday, queueToday)

		assert.Equal(t, []string{"relearning", "review", "learning"}, conceptIDs(queue.Due))
	})

	t.Run("upcoming sorted by due date", func(t *testing.T) {
		cards := map[string]domain.Card{
			"in-six":   dueCard(domain.StateReview, 6),
			"tomorrow": dueCard(domain.StateReview, 1),
			"in-three": dueCard(domain.StateRelearning, 3),
		}

		queue := buildQueue(cards, queueToday, queueToday)

		assert.Empty(t, queue.Due)
		assert.Equal(t, []string{"tomorrow", "in-three", "in-six"}, conceptIDs(queue.Upcoming))
	})
}

func TestBuildQueueClassification(t *testing.T) {
	t.Parallel() // Enable parallel execution

	malformed := dueCard(domain.StateReview, -1)
	malformed.LastReview = time.Time{}

	cards := map[string]domain.Card{
		"new":        domain.NewCard(),
		"malformed":  malformed,
		"due-today":  dueCard(domain.StateReview, 0),
		"overdue":    dueCard(domain.StateReview, -4),
		"in-seven":   dueCard(domain.StateReview, 7),
		"in-eight":   dueCard(domain.StateReview, 8),
		"far-future": dueCard(domain.StateReview, 60),
	}

	queue := buildQueue(cards, queueToday, queueToday)

	assert.Equal(t, []string{"overdue", "due-today"}, conceptIDs(queue.Due))
	assert.Equal(t, []string{"in-seven"}, conceptIDs(queue.Upcoming))

	assert.Equal(t, 6, queue.Stats.TotalActiveCards, "malformed cards still count as active")
	assert.Equal(t, 2, queue.Stats.DueToday)
	assert.Equal(t, 3, queue.Stats.DueThisWeek)
}

func TestBuildQueueRetrievability(t *testing.T) {
	t.Parallel() // Enable parallel execution

	now := queueToday.Add(12 * time.Hour)
	a := dueCard(domain.StateReview, -1)
	b := dueCard(domain.StateReview, 2)
	b.Stability = 0

	queue := buildQueue(map[string]domain.Card{"a": a, "b": b}, queueToday, now)

	ra := Retrievability(domain.DaysBetween(a.LastReview, now), a.Stability)
	require.Len(t, queue.Due, 1)
	assert.InDelta(t, ra, queue.Due[0].Retrievability, 1e-12)
	require.Len(t, queue.Upcoming, 1)
	assert.Equal(t, 0.0, queue.Upcoming[0].Retrievability)
	assert.InDelta(t, ra/2, queue.Stats.AverageRetrievability, 1e-12, "zero-stability cards count toward the average")
}

func TestBuildQueueEmpty(t *testing.T) {
	t.Parallel() // Enable parallel execution

	queue := buildQueue(map[string]domain.Card{"new": domain.NewCard()}, queueToday, queueToday)

	assert.NotNil(t, queue.Due)
	assert.NotNil(t, queue.Upcoming)
	assert.Empty(t, queue.Due)
	assert.Equal(t, QueueStats{}, queue.Stats)
}

func TestBuildQueueUsesDueDateInOwnOffset(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// 23:30 on the 15th at -05:00 is already the 16th in UTC
	eastern := time.FixedZone("", -5*60*60)
	card := dueCard(domain.StateReview, 0)
	card.Due = time.Date(2024, 3, 15, 23, 30, 0, 0, eastern)

	queue := buildQueue(map[string]domain.Card{"late": card}, queueToday, queueToday)

	require.Len(t, queue.Due, 1)
	assert.Equal(t, 0, queue.Due[0].OverdueDays)
}
