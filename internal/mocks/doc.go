// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized mock implementations can be reused across packages.
//
// Usage:
//
//	svc := mocks.NewMockCardReviewService(
//	    mocks.WithReviewResponse(&card_review.ReviewResponse{NextDue: "2024-01-04T10:00:00+00:00"}),
//	)
//	// Pass svc wherever a card_review.CardReviewService is expected, then
//	// inspect svc.ReviewRequests.
package mocks
