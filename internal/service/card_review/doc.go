// Package card_review exposes the scheduler to callers that speak in flat
// card records and ISO-8601 strings.
//
// The service parses and validates its input once, delegates every
// computation to an srs.Service, and formats the results for serialization.
// The current time is read from an injectable clock so that callers and tests
// can pin it.
package card_review
