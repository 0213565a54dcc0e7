package srs

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// WeightCount is the length of the FSRS-5 weight vector.
const WeightCount = 19

// Weights is the FSRS-5 model weight vector w0..w18.
type Weights [WeightCount]float64

// DefaultWeights are the FSRS-5 default weights, trained on a large corpus of
// reviews. w17 and w18 belong to the short-term stability model, which this
// scheduler does not implement; they are kept so weight vectors stay
// interchangeable with other FSRS-5 tooling.
var DefaultWeights = Weights{
	0.40255, 1.18385, 3.173, 15.69105, // w0-w3: initial stability per rating
	7.1949,  // w4: initial difficulty baseline
	0.5345,  // w5: initial difficulty rating scaling
	1.4604,  // w6: difficulty delta scaling
	0.0046,  // w7: difficulty mean reversion rate
	1.54575, // w8: stability increase base factor
	0.1192,  // w9: stability increase, prior stability penalty
	1.01925, // w10: stability increase, retrievability bonus
	1.9395,  // w11: post-lapse stability base
	0.11,    // w12: post-lapse difficulty factor
	0.29605, // w13: post-lapse stability factor
	2.2698,  // w14: post-lapse retrievability factor
	0.2315,  // w15: hard rating penalty
	2.9898,  // w16: easy rating bonus
	0.51655, // w17: short-term stability (unused)
	0.6621,  // w18: short-term stability (unused)
}

// Default values for the non-weight parameters.
const (
	DefaultDesiredRetention = 0.9
	DefaultMaximumInterval  = 365
)

var validate = validator.New()

// Params defines all configurable parameters for the scheduler.
// A Params value is immutable once built; use With to derive a variant.
type Params struct {
	Weights          Weights
	DesiredRetention float64 // Target recall probability used to size intervals, in (0, 1]
	MaximumInterval  int     // Upper bound for scheduled_days, at least 1

	// EnableFuzz is accepted for compatibility with existing configurations.
	// Intervals are never fuzzed.
	EnableFuzz bool
}

// ParamsConfig allows overriding the default parameters. Zero-valued fields
// keep the value of the Params being overridden. The JSON keys match the
// parameter blocks found in learner state files.
type ParamsConfig struct {
	Weights          []float64 `json:"w"                 validate:"omitempty,len=19"`
	DesiredRetention float64   `json:"request_retention" validate:"omitempty,gt=0,lte=1"`
	MaximumInterval  int       `json:"maximum_interval"  validate:"omitempty,gte=1"`
	EnableFuzz       *bool     `json:"enable_fuzz"`
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		Weights:          DefaultWeights,
		DesiredRetention: DefaultDesiredRetention,
		MaximumInterval:  DefaultMaximumInterval,
		EnableFuzz:       true,
	}
}

// NewParams creates a new Params instance with custom configuration applied
// over the defaults. It returns an error wrapping ErrInvalidParams when the
// configuration is out of range.
func NewParams(config ParamsConfig) (*Params, error) {
	return NewDefaultParams().With(config)
}

// With returns a copy of p with the non-zero fields of config applied.
// p itself is left untouched.
func (p *Params) With(config ParamsConfig) (*Params, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	params := *p

	if len(config.Weights) > 0 {
		copy(params.Weights[:], config.Weights)
	}
	if config.DesiredRetention > 0 {
		params.DesiredRetention = config.DesiredRetention
	}
	if config.MaximumInterval > 0 {
		params.MaximumInterval = config.MaximumInterval
	}
	if config.EnableFuzz != nil {
		params.EnableFuzz = *config.EnableFuzz
	}

	return &params, nil
}
