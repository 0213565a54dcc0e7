package domain

import "fmt"

// State is the lifecycle stage of a card.
//
// A card starts in StateNew, moves through StateLearning or straight to
// StateReview on its first review, and from then on cycles between
// StateReview and StateRelearning. No state is terminal.
type State int

// Possible state values. The numeric codes are part of the record format.
const (
	StateNew        State = 0
	StateLearning   State = 1
	StateReview     State = 2
	StateRelearning State = 3
)

var stateNames = [...]string{
	StateNew:        "new",
	StateLearning:   "learning",
	StateReview:     "review",
	StateRelearning: "relearning",
}

// IsValid reports whether s is a known state.
func (s State) IsValid() bool {
	return s >= StateNew && s <= StateRelearning
}

// String returns the lower-case state name, or "state(n)" for invalid values.
func (s State) String() string {
	if s.IsValid() {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ParseState converts an integer code to a State.
func ParseState(code int) (State, error) {
	s := State(code)
	if !s.IsValid() {
		return 0, fmt.Errorf("%w: %d (must be 0-3)", ErrInvalidState, code)
	}
	return s, nil
}
