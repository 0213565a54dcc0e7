package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-fsrs/internal/service/card_review"
)

// Verify interface compliance at compile time
var _ card_review.CardReviewService = (*MockCardReviewService)(nil)

// MockCardReviewService implements card_review.CardReviewService for testing
type MockCardReviewService struct {
	// Custom behavior functions
	ReviewFn   func(ctx context.Context, req card_review.ReviewRequest) (*card_review.ReviewResponse, error)
	PreviewFn  func(ctx context.Context, req card_review.PreviewRequest) (*card_review.PreviewResponse, error)
	QueueFn    func(ctx context.Context, req card_review.QueueRequest) (*card_review.QueueResponse, error)
	PostponeFn func(ctx context.Context, req card_review.PostponeRequest) (*card_review.PostponeResponse, error)

	// Default response values
	ReviewResponse   *card_review.ReviewResponse
	PreviewResponse  *card_review.PreviewResponse
	QueueResponse    *card_review.QueueResponse
	PostponeResponse *card_review.PostponeResponse
	Err              error

	// Call tracking for verification
	mu               sync.Mutex
	ReviewRequests   []card_review.ReviewRequest
	PreviewRequests  []card_review.PreviewRequest
	QueueRequests    []card_review.QueueRequest
	PostponeRequests []card_review.PostponeRequest
	Contexts         []context.Context
}

// Review implements the card_review.CardReviewService interface
func (m *MockCardReviewService) Review(
	ctx context.Context,
	req card_review.ReviewRequest,
) (*card_review.ReviewResponse, error) {
	m.mu.Lock()
	m.ReviewRequests = append(m.ReviewRequests, req)
	m.Contexts = append(m.Contexts, ctx)
	m.mu.Unlock()

	if m.ReviewFn != nil {
		return m.ReviewFn(ctx, req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ReviewResponse, nil
}

// Preview implements the card_review.CardReviewService interface
func (m *MockCardReviewService) Preview(
	ctx context.Context,
	req card_review.PreviewRequest,
) (*card_review.PreviewResponse, error) {
	m.mu.Lock()
	m.PreviewRequests = append(m.PreviewRequests, req)
	m.Contexts = append(m.Contexts, ctx)
	m.mu.Unlock()

	if m.PreviewFn != nil {
		return m.PreviewFn(ctx, req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.PreviewResponse, nil
}

// Queue implements the card_review.CardReviewService interface
func (m *MockCardReviewService) Queue(
	ctx context.Context,
	req card_review.QueueRequest,
) (*card_review.QueueResponse, error) {
	m.mu.Lock()
	m.QueueRequests = append(m.QueueRequests, req)
	m.Contexts = append(m.Contexts, ctx)
	m.mu.Unlock()

	if m.QueueFn != nil {
		return m.QueueFn(ctx, req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.QueueResponse, nil
}

// Postpone implements the card_review.CardReviewService interface
func (m *MockCardReviewService) Postpone(
	ctx context.Context,
	req card_review.PostponeRequest,
) (*card_review.PostponeResponse, error) {
	m.mu.Lock()
	m.PostponeRequests = append(m.PostponeRequests, req)
	m.Contexts = append(m.Contexts, ctx)
	m.mu.Unlock()

	if m.PostponeFn != nil {
		return m.PostponeFn(ctx, req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.PostponeResponse, nil
}

// CallCount returns the total number of calls across all methods.
func (m *MockCardReviewService) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Contexts)
}

// Reset resets the call tracking state
func (m *MockCardReviewService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReviewRequests = nil
	m.PreviewRequests = nil
	m.QueueRequests = nil
	m.PostponeRequests = nil
	m.Contexts = nil
}

// Functional option pattern for configuring mock

// MockOption is a function type that configures a MockCardReviewService
type MockOption func(*MockCardReviewService)

// WithReviewResponse sets the default response returned from Review
func WithReviewResponse(resp *card_review.ReviewResponse) MockOption {
	return func(m *MockCardReviewService) {
		m.ReviewResponse = resp
	}
}

// WithQueueResponse sets the default response returned from Queue
func WithQueueResponse(resp *card_review.QueueResponse) MockOption {
	return func(m *MockCardReviewService) {
		m.QueueResponse = resp
	}
}

// WithError sets the default error returned from every method
func WithError(err error) MockOption {
	return func(m *MockCardReviewService) {
		m.Err = err
	}
}

// NewMockCardReviewService creates a new MockCardReviewService with the given options
func NewMockCardReviewService(opts ...MockOption) *MockCardReviewService {
	mock := &MockCardReviewService{}

	// Apply all options
	for _, opt := range opts {
		opt(mock)
	}

	return mock
}
