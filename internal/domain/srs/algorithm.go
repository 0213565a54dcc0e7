package srs

import (
	"math"

	"github.com/phrazzld/scry-fsrs/internal/domain"
)

// initialStability returns the stability of a card after its first review.
//
//	S0(G) = w[G-1]
func initialStability(w *Weights, rating domain.Rating) float64 {
	return w[rating-1]
}

// initialDifficulty returns the difficulty of a card after its first review.
//
//	D0(G) = clamp(w4 - exp(w5 * (G - 1)) + 1, 1, 10)
//
// Again yields w4 exactly; each better rating lowers the starting difficulty.
func initialDifficulty(w *Weights, rating domain.Rating) float64 {
	d := w[4] - math.Exp(w[5]*float64(rating-1)) + 1
	return clampDifficulty(d)
}

// nextStabilitySuccess determines the new stability after a successful recall
// (Hard, Good or Easy).
//
// Parameters:
//   - d: The card's difficulty before the review
//   - s: The card's stability before the review
//   - r: Retrievability at review time, computed from the prior stability
//   - rating: The rating given by the learner
//
// Returns:
//   - S * alpha, where
//     alpha = 1 + (11 - D) * S^(-w9) * (exp(w10 * (1 - R)) - 1) * hard * easy * exp(w8)
//
// Algorithm behavior:
//   - Lower retrievability at review time gives a larger increase
//   - Hard multiplies the growth term by w15, Easy by w16
//   - The S^(-w9) term gives diminishing returns for already stable memories
func nextStabilitySuccess(w *Weights, d, s, r float64, rating domain.Rating) float64 {
	hardPenalty := 1.0
	if rating == domain.RatingHard {
		hardPenalty = w[15]
	}
	easyBonus := 1.0
	if rating == domain.RatingEasy {
		easyBonus = w[16]
	}

	alpha := 1 + (11-d)*
		math.Pow(s, -w[9])*
		(math.Exp(w[10]*(1-r))-1)*
		hardPenalty*easyBonus*
		math.Exp(w[8])

	return s * alpha
}

// nextStabilityFail determines the new stability after a lapse.
//
//	S' = min(w11 * D^(-w12) * ((S + 1)^w13 - 1) * exp(w14 * (1 - R)), S)
//
// A lapse never increases stability.
func nextStabilityFail(w *Weights, d, s, r float64) float64 {
	newS := w[11] *
		math.Pow(d, -w[12]) *
		(math.Pow(s+1, w[13]) - 1) *
		math.Exp(w[14]*(1-r))
	return math.Min(newS, s)
}

// nextDifficulty applies the rating to the difficulty and then reverts it
// toward D0(Easy) by the mean reversion weight w7. The step shrinks linearly as
// difficulty approaches 10.
func nextDifficulty(w *Weights, d float64, rating domain.Rating) float64 {
	delta := -w[6] * float64(rating-3)
	dPrime := d + delta*(10-d)/9
	dNew := w[7]*initialDifficulty(w, domain.RatingEasy) + (1-w[7])*dPrime
	return clampDifficulty(dNew)
}

func clampDifficulty(d float64) float64 {
	return math.Max(domain.MinDifficulty, math.Min(domain.MaxDifficulty, d))
}
