// Package srs implements the FSRS-5 spaced repetition scheduler.
//
// Memory is modelled with three variables: difficulty, stability and
// retrievability. After each review the scheduler updates difficulty and
// stability with closed-form formulas and picks the next interval so that
// retrievability at the due date equals the desired retention.
//
// All functions in this package are pure. Time is always passed in, never
// read from the wall clock.
package srs
