package domain

import "fmt"

// Rating is the learner's assessment of recall quality for a single review.
// The numeric codes are part of the record format and must not change.
type Rating int

// Possible rating values
const (
	RatingAgain Rating = 1 // Failed to recall
	RatingHard  Rating = 2 // Recalled with significant effort
	RatingGood  Rating = 3 // Recalled with some effort
	RatingEasy  Rating = 4 // Recalled effortlessly
)

// Ratings lists every valid rating in ascending order.
var Ratings = [...]Rating{RatingAgain, RatingHard, RatingGood, RatingEasy}

var ratingNames = [...]string{
	RatingAgain: "again",
	RatingHard:  "hard",
	RatingGood:  "good",
	RatingEasy:  "easy",
}

// IsValid reports whether r is one of Again, Hard, Good or Easy.
func (r Rating) IsValid() bool {
	return r >= RatingAgain && r <= RatingEasy
}

// String returns the lower-case rating name, or "rating(n)" for invalid values.
func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("rating(%d)", int(r))
}

// ParseRating converts an integer code to a Rating.
func ParseRating(code int) (Rating, error) {
	r := Rating(code)
	if !r.IsValid() {
		return 0, fmt.Errorf("%w: %d (must be 1-4)", ErrInvalidRating, code)
	}
	return r, nil
}
