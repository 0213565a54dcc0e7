// Package domain contains the core entities of the scheduler: the per-concept
// memory snapshot (Card), the review log, the rating and state enumerations,
// and the flat record forms used to exchange them with external stores.
// It is independent of any specific persistence or delivery mechanism.
package domain
