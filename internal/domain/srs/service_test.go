package srs

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/scry-fsrs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultService(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service := NewDefaultService()
	if service == nil {
		t.Fatal("Expected non-nil service")
	}

	// Check if default params are present
	defaultService, ok := service.(*defaultService)
	if !ok {
		t.Fatal("Expected *defaultService type")
	}

	if defaultService.params == nil {
		t.Fatal("Expected non-nil params")
	}
	assert.Equal(t, *NewDefaultParams(), service.Params())
}

func TestNewServiceWithParams(t *testing.T) {
	t.Parallel() // Enable parallel execution

	params, err := NewParams(ParamsConfig{MaximumInterval: 2})
	require.NoError(t, err)

	service := NewServiceWithParams(params)
	next, _, err := service.Review(domain.NewCard(), domain.RatingEasy, reviewStart)
	require.NoError(t, err)
	assert.Equal(t, 2, next.ScheduledDays, "custom maximum interval should apply")

	fallback := NewServiceWithParams(nil)
	assert.Equal(t, *NewDefaultParams(), fallback.Params())
}

func TestServiceReview(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service := NewDefaultService()
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	t.Run("new card rated Good", func(t *testing.T) {
		card := domain.NewCard()

		next, log, err := service.Review(card, domain.RatingGood, now)
		require.NoError(t, err)

		assert.Equal(t, domain.StateReview, next.State)
		assert.Equal(t, 3.173, next.Stability)
		assert.Equal(t, 3, next.ScheduledDays)
		assert.True(t, next.Due.Equal(now.AddDate(0, 0, 3)))
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", log.ID.String())
		assert.True(t, card.Equal(domain.NewCard()), "Original card was modified")
	})

	t.Run("invalid ratings are rejected", func(t *testing.T) {
		for _, rating := range []domain.Rating{0, 5, -1} {
			_, _, err := service.Review(domain.NewCard(), rating, now)
			assert.True(t, errors.Is(err, domain.ErrInvalidRating), "rating %d: %v", rating, err)
		}
	})

	t.Run("inconsistent cards are rejected", func(t *testing.T) {
		card := domain.Card{State: domain.StateReview, Stability: 3, Difficulty: 5}

		_, _, err := service.Review(card, domain.RatingGood, now)
		assert.True(t, errors.Is(err, domain.ErrInvalidCard), "unexpected error: %v", err)
	})

	t.Run("review card without stability is rejected", func(t *testing.T) {
		card := domain.Card{
			State:         domain.StateReview,
			Stability:     0,
			Difficulty:    5,
			Due:           now,
			LastReview:    now.AddDate(0, 0, -3),
			ScheduledDays: 3,
			Reps:          2,
		}

		next, _, err := service.Review(card, domain.RatingGood, now)
		assert.True(t, errors.Is(err, domain.ErrInvalidCard), "unexpected error: %v", err)
		assert.Equal(t, domain.Card{}, next)
	})

	t.Run("failures are deterministic", func(t *testing.T) {
		_, _, first := service.Review(domain.NewCard(), 7, now)
		_, _, second := service.Review(domain.NewCard(), 7, now)
		require.Error(t, first)
		assert.Equal(t, first.Error(), second.Error())
	})
}

func TestServicePreview(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service := NewDefaultService()

	card, _, err := service.Review(domain.NewCard(), domain.RatingGood, reviewStart)
	require.NoError(t, err)
	before := card

	preview, err := service.Preview(card, reviewStart.Add(days(3)))
	require.NoError(t, err)

	assert.Len(t, preview, 4)
	assert.Equal(t, 0, preview[domain.RatingAgain].Interval)
	assert.Less(t, preview[domain.RatingHard].Interval, preview[domain.RatingGood].Interval)
	assert.Less(t, preview[domain.RatingGood].Interval, preview[domain.RatingEasy].Interval)
	assert.True(t, card.Equal(before), "preview modified the card")

	_, err = service.Preview(domain.Card{State: domain.State(7)}, reviewStart)
	assert.ErrorIs(t, err, domain.ErrInvalidCard)
}

func TestServicePostpone(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service := NewDefaultService()

	card := scheduledCard(domain.StateReview, 10, 5, reviewStart, 10)

	// Test valid postponement
	updated, err := service.Postpone(card, 7)
	require.NoError(t, err)
	assert.True(t, updated.Due.Equal(reviewStart.AddDate(0, 0, 17)))

	// Test invalid days
	_, err = service.Postpone(card, 0)
	assert.ErrorIs(t, err, ErrInvalidDays)

	_, err = service.Postpone(card, -1)
	assert.ErrorIs(t, err, ErrInvalidDays)

	// New cards have nothing to postpone
	_, err = service.Postpone(domain.NewCard(), 3)
	assert.ErrorIs(t, err, ErrCardNotScheduled)
}

func TestServiceQueue(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service := NewDefaultService()

	cards := map[string]domain.Card{
		"due":      dueCard(domain.StateReview, -1),
		"upcoming": dueCard(domain.StateReview, 2),
	}

	queue := service.Queue(cards, queueToday, queueToday)

	assert.Equal(t, []string{"due"}, conceptIDs(queue.Due))
	assert.Equal(t, []string{"upcoming"}, conceptIDs(queue.Upcoming))
	assert.Equal(t, 2, queue.Stats.TotalActiveCards)
}

func TestServiceConcurrentReviews(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service := NewDefaultService()

	var wg sync.WaitGroup
	results := make([]domain.Card, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rating := domain.Ratings[i%len(domain.Ratings)]
			next, _, err := service.Review(domain.NewCard(), rating, reviewStart)
			if err == nil {
				results[i] = next
			}
		}(i)
	}
	wg.Wait()

	for i, card := range results {
		expected, _, err := calculateNextCard(domain.NewCard(), domain.Ratings[i%len(domain.Ratings)], reviewStart, NewDefaultParams())
		require.NoError(t, err)
		assert.True(t, card.Equal(expected), "result %d differs", i)
	}
}
