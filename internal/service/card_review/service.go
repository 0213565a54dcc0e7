package card_review

import (
	"context"
	"fmt"
	"time"

	"github.com/phrazzld/scry-fsrs/internal/domain"
	"github.com/phrazzld/scry-fsrs/internal/domain/srs"
)

// CardReviewService is the record-level entry point to the scheduler.
//
// It accepts flat card records or materialized cards, ISO-8601 timestamps as
// strings and optional parameter overrides, and returns flat records ready to
// be serialized. Timestamps that are omitted default to the service clock.
type CardReviewService interface {
	// Review applies a rating to a card.
	//
	// Returns:
	//   - (*ReviewResponse, nil): the new card record, its review log and next due timestamp
	//   - (nil, error): a *ServiceError wrapping domain.ErrInvalidRating, domain.ErrInvalidCard,
	//     domain.ErrInvalidTimestamp or srs.ErrInvalidParams
	//
	// The input card is never modified.
	Review(ctx context.Context, req ReviewRequest) (*ReviewResponse, error)

	// Preview reports the outcome of each of the four ratings without
	// committing any of them.
	Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error)

	// Queue builds the review queue for a population of cards keyed by concept ID.
	//
	// Cards that cannot be materialized are left out of the queue; they are
	// logged but do not fail the call. Only a malformed Today fails.
	Queue(ctx context.Context, req QueueRequest) (*QueueResponse, error)

	// Postpone pushes the next review of a scheduled card forward by whole days.
	//
	// Returns a *ServiceError wrapping srs.ErrInvalidDays when Days < 1 and
	// srs.ErrCardNotScheduled when the card has never been reviewed.
	Postpone(ctx context.Context, req PostponeRequest) (*PostponeResponse, error)
}

// ReviewRequest is the input to CardReviewService.Review.
type ReviewRequest struct {
	Card   domain.CardSource `validate:"required"`
	Rating int               `validate:"min=1,max=4"`
	// ReviewDate is an ISO-8601 timestamp; empty means now.
	ReviewDate string
	// Params optionally overrides the service parameters. It is validated when applied.
	Params *srs.ParamsConfig `validate:"-"`
}

// ReviewResponse is the result of a review.
type ReviewResponse struct {
	Card    domain.CardRecord      `json:"card"`
	Log     domain.ReviewLogRecord `json:"log"`
	NextDue string                 `json:"next_due"`
}

// PreviewRequest is the input to CardReviewService.Preview.
type PreviewRequest struct {
	Card       domain.CardSource `validate:"required"`
	ReviewDate string
	Params     *srs.ParamsConfig `validate:"-"`
}

// PreviewOutcome is what a single rating would do to the card.
type PreviewOutcome struct {
	Interval  int     `json:"interval"`
	NextDue   string  `json:"next_due"`
	Stability float64 `json:"stability"` // rounded to 2 decimals
}

// PreviewResponse holds one outcome per rating.
type PreviewResponse struct {
	Again PreviewOutcome `json:"again"`
	Hard  PreviewOutcome `json:"hard"`
	Good  PreviewOutcome `json:"good"`
	Easy  PreviewOutcome `json:"easy"`
}

// QueueRequest is the input to CardReviewService.Queue.
//
// The queue date is taken from Date when it is set, otherwise from Today
// (an ISO-8601 date or date-time), otherwise from the service clock.
type QueueRequest struct {
	Cards map[string]domain.CardSource
	Today string
	Date  time.Time
}

// DueEntry is a card due today or earlier.
type DueEntry struct {
	ConceptID      string       `json:"concept_id"`
	DueDate        string       `json:"due_date"`
	OverdueDays    int          `json:"overdue_days"`
	Stability      float64      `json:"stability"`
	Difficulty     float64      `json:"difficulty"`
	Retrievability float64      `json:"retrievability"`
	State          domain.State `json:"state"`
}

// UpcomingEntry is a card due within the upcoming window.
type UpcomingEntry struct {
	ConceptID string  `json:"concept_id"`
	DueDate   string  `json:"due_date"`
	Stability float64 `json:"stability"`
}

// QueueStats summarizes the population a queue was built from.
type QueueStats struct {
	TotalActiveCards      int     `json:"total_active_cards"`
	DueToday              int     `json:"due_today"`
	DueThisWeek           int     `json:"due_this_week"`
	AverageRetrievability float64 `json:"average_retrievability"`
}

// QueueResponse is the review queue.
type QueueResponse struct {
	Due      []DueEntry      `json:"due"`
	Upcoming []UpcomingEntry `json:"upcoming"`
	Stats    QueueStats      `json:"stats"`
}

// PostponeRequest is the input to CardReviewService.Postpone.
type PostponeRequest struct {
	Card domain.CardSource `validate:"required"`
	Days int               `validate:"min=1"`
}

// PostponeResponse is the card after postponement.
type PostponeResponse struct {
	Card    domain.CardRecord `json:"card"`
	NextDue string            `json:"next_due"`
}

// ServiceError wraps errors from the card review service with additional context.
// This allows consumers to differentiate between different types of service errors
// using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "review", "queue")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewReviewError returns a new ServiceError for the review operation.
func NewReviewError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "review",
		Message:   message,
		Err:       err,
	}
}

// NewPreviewError returns a new ServiceError for the preview operation.
func NewPreviewError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "preview",
		Message:   message,
		Err:       err,
	}
}

// NewQueueError returns a new ServiceError for the queue operation.
func NewQueueError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "queue",
		Message:   message,
		Err:       err,
	}
}

// NewPostponeError returns a new ServiceError for the postpone operation.
func NewPostponeError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "postpone",
		Message:   message,
		Err:       err,
	}
}
