package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewLog records one review transition. It is created once per review and
// never modified afterwards.
type ReviewLog struct {
	ID            uuid.UUID
	Rating        Rating
	StateBefore   State
	StateAfter    State
	ElapsedDays   int
	ScheduledDays int
	ReviewDate    time.Time
}

// NewReviewLog creates a ReviewLog with a freshly generated ID.
func NewReviewLog(
	rating Rating,
	before, after State,
	elapsedDays, scheduledDays int,
	reviewDate time.Time,
) ReviewLog {
	return ReviewLog{
		ID:            uuid.New(),
		Rating:        rating,
		StateBefore:   before,
		StateAfter:    after,
		ElapsedDays:   elapsedDays,
		ScheduledDays: scheduledDays,
		ReviewDate:    reviewDate,
	}
}
