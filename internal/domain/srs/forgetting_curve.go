package srs

import "math"

// Power forgetting curve constants. Factor is chosen so that R(S, S) = 0.9.
const (
	Factor = 19.0 / 81.0
	Decay  = -0.5
)

// Retrievability returns the probability of recall after elapsedDays for a
// memory of the given stability:
//
//	R(t, S) = (1 + Factor * t / S) ^ Decay
//
// A card without stability (S <= 0) has retrievability 0.
func Retrievability(elapsedDays int, stability float64) float64 {
	if stability <= 0 {
		return 0
	}
	return math.Pow(1+Factor*float64(elapsedDays)/stability, Decay)
}

// Interval returns the number of days after which retrievability falls to the
// desired retention, rounded half to even and clamped to [1, MaximumInterval].
func (p *Params) Interval(stability float64) int {
	days := (stability / Factor) * (math.Pow(p.DesiredRetention, 1/Decay) - 1)
	days = math.RoundToEven(days)

	if math.IsNaN(days) || days < 1 {
		return 1
	}
	if days > float64(p.MaximumInterval) {
		return p.MaximumInterval
	}
	return int(days)
}
