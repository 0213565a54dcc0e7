package card_review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scry-fsrs/internal/domain"
	"github.com/phrazzld/scry-fsrs/internal/domain/srs"
	"github.com/phrazzld/scry-fsrs/internal/platform/logger"
)

// Verify interface compliance at compile time
var _ CardReviewService = (*cardReviewServiceImpl)(nil)

var validate = validator.New()

// Option configures a CardReviewService.
type Option func(*cardReviewServiceImpl)

// WithClock replaces the source of the current time used when a request
// omits its timestamp.
func WithClock(clock func() time.Time) Option {
	return func(s *cardReviewServiceImpl) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// cardReviewServiceImpl implements the CardReviewService interface.
type cardReviewServiceImpl struct {
	srsService srs.Service
	logger     *slog.Logger
	clock      func() time.Time
}

// NewCardReviewService creates a new CardReviewService implementation.
// Requests without parameter overrides are scheduled by srsService.
func NewCardReviewService(
	srsService srs.Service,
	logger *slog.Logger,
	opts ...Option,
) CardReviewService {
	if srsService == nil {
		panic("srsService cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	s := &cardReviewServiceImpl{
		srsService: srsService,
		logger:     logger.With(slog.String("component", "card_review_service")),
		clock:      utcNow,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Review implements CardReviewService.Review.
func (s *cardReviewServiceImpl) Review(ctx context.Context, req ReviewRequest) (*ReviewResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validateRequest(req); err != nil {
		log.Warn("invalid review request", slog.String("error", err.Error()))
		return nil, NewReviewError("invalid request", err)
	}

	card, err := materialize(req.Card)
	if err != nil {
		log.Warn("invalid card record", slog.String("error", err.Error()))
		return nil, NewReviewError("invalid card record", err)
	}

	now, err := s.timestamp(req.ReviewDate)
	if err != nil {
		log.Warn("invalid review date",
			slog.String("review_date", req.ReviewDate),
			slog.String("error", err.Error()))
		return nil, NewReviewError("invalid review date", err)
	}

	scheduler, err := s.schedulerFor(req.Params)
	if err != nil {
		log.Warn("invalid parameter override", slog.String("error", err.Error()))
		return nil, NewReviewError("invalid parameters", err)
	}

	rating := domain.Rating(req.Rating)
	next, reviewLog, err := scheduler.Review(card, rating, now)
	if err != nil {
		log.Warn("failed to apply rating",
			slog.String("rating", rating.String()),
			slog.String("error", err.Error()))
		return nil, NewReviewError("failed to apply rating", err)
	}

	log.Debug("review applied",
		slog.String("rating", rating.String()),
		slog.String("state_before", card.State.String()),
		slog.String("state_after", next.State.String()),
		slog.Int("scheduled_days", next.ScheduledDays))

	return &ReviewResponse{
		Card:    next.ToRecord(),
		Log:     reviewLog.ToRecord(),
		NextDue: domain.FormatTimestamp(next.Due),
	}, nil
}

// Preview implements CardReviewService.Preview.
func (s *cardReviewServiceImpl) Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validateRequest(req); err != nil {
		log.Warn("invalid preview request", slog.String("error", err.Error()))
		return nil, NewPreviewError("invalid request", err)
	}

	card, err := materialize(req.Card)
	if err != nil {
		log.Warn("invalid card record", slog.String("error", err.Error()))
		return nil, NewPreviewError("invalid card record", err)
	}

	now, err := s.timestamp(req.ReviewDate)
	if err != nil {
		log.Warn("invalid review date",
			slog.String("review_date", req.ReviewDate),
			slog.String("error", err.Error()))
		return nil, NewPreviewError("invalid review date", err)
	}

	scheduler, err := s.schedulerFor(req.Params)
	if err != nil {
		log.Warn("invalid parameter override", slog.String("error", err.Error()))
		return nil, NewPreviewError("invalid parameters", err)
	}

	preview, err := scheduler.Preview(card, now)
	if err != nil {
		log.Warn("failed to preview card", slog.String("error", err.Error()))
		return nil, NewPreviewError("failed to preview card", err)
	}

	log.Debug("preview computed", slog.String("state", card.State.String()))

	return newPreviewResponse(preview), nil
}

// Queue implements CardReviewService.Queue.
func (s *cardReviewServiceImpl) Queue(ctx context.Context, req QueueRequest) (*QueueResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := s.clock()
	today, err := queueDate(req, now)
	if err != nil {
		log.Warn("invalid queue date",
			slog.String("today", req.Today),
			slog.String("error", err.Error()))
		return nil, NewQueueError("invalid date", err)
	}

	cards := make(map[string]domain.Card, len(req.Cards))
	for conceptID, source := range req.Cards {
		card, err := materialize(source)
		if err != nil {
			log.Warn("skipping malformed card",
				slog.String("concept_id", conceptID),
				slog.String("error", err.Error()))
			continue
		}
		cards[conceptID] = card
	}

	queue := s.srsService.Queue(cards, today, now)

	log.Debug("queue built",
		slog.String("today", domain.FormatDate(today)),
		slog.Int("cards", len(cards)),
		slog.Int("due", len(queue.Due)),
		slog.Int("upcoming", len(queue.Upcoming)))

	return newQueueResponse(queue), nil
}

// Postpone implements CardReviewService.Postpone.
func (s *cardReviewServiceImpl) Postpone(ctx context.Context, req PostponeRequest) (*PostponeResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validateRequest(req); err != nil {
		log.Warn("invalid postpone request", slog.String("error", err.Error()))
		return nil, NewPostponeError("invalid request", err)
	}

	card, err := materialize(req.Card)
	if err != nil {
		log.Warn("invalid card record", slog.String("error", err.Error()))
		return nil, NewPostponeError("invalid card record", err)
	}

	postponed, err := s.srsService.Postpone(card, req.Days)
	if err != nil {
		log.Warn("failed to postpone card",
			slog.Int("days", req.Days),
			slog.String("error", err.Error()))
		return nil, NewPostponeError("failed to postpone card", err)
	}

	log.Debug("card postponed",
		slog.Int("days", req.Days),
		slog.String("next_due", domain.FormatTimestamp(postponed.Due)))

	return &PostponeResponse{
		Card:    postponed.ToRecord(),
		NextDue: domain.FormatTimestamp(postponed.Due),
	}, nil
}

// schedulerFor returns the scheduler for a request. A nil override reuses
// the service scheduler; otherwise the override is applied over its parameters.
func (s *cardReviewServiceImpl) schedulerFor(override *srs.ParamsConfig) (srs.Service, error) {
	if override == nil {
		return s.srsService, nil
	}

	base := s.srsService.Params()
	params, err := base.With(*override)
	if err != nil {
		return nil, err
	}
	return srs.NewServiceWithParams(params), nil
}

// timestamp parses an optional ISO-8601 timestamp, defaulting to the clock.
func (s *cardReviewServiceImpl) timestamp(value string) (time.Time, error) {
	if value == "" {
		return s.clock(), nil
	}
	return domain.ParseTimestamp(value)
}

func queueDate(req QueueRequest, now time.Time) (time.Time, error) {
	switch {
	case !req.Date.IsZero():
		return domain.DateOf(req.Date), nil
	case req.Today != "":
		t, err := domain.ParseTimestamp(req.Today)
		if err != nil {
			return time.Time{}, err
		}
		return domain.DateOf(t), nil
	default:
		return domain.DateOf(now), nil
	}
}

func materialize(source domain.CardSource) (domain.Card, error) {
	if source == nil {
		return domain.Card{}, fmt.Errorf("%w: missing card", domain.ErrInvalidCard)
	}
	card, err := source.ToCard()
	if err != nil {
		return domain.Card{}, fmt.Errorf("%w: %w", domain.ErrInvalidCard, err)
	}
	return card, nil
}

// validateRequest runs the struct tags of a request and maps the first
// failure onto the matching domain error.
func validateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	fieldErr := validationErrors[0]
	switch fieldErr.StructField() {
	case "Rating":
		return fmt.Errorf("%w: %v (must be 1-4)", domain.ErrInvalidRating, fieldErr.Value())
	case "Days":
		return fmt.Errorf("%w: %v", srs.ErrInvalidDays, fieldErr.Value())
	case "Card":
		return fmt.Errorf("%w: card is required", domain.ErrInvalidCard)
	default:
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
}
