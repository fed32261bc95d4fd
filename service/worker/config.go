package worker

import (
	"fmt"
	"math/rand"
	"time"
)

// Delay is a closed interval a simulated latency is drawn from uniformly
type Delay struct {
	Min time.Duration `json:"min" yaml:"min"`
	Max time.Duration `json:"max" yaml:"max"`
}

// Pick draws a duration from the interval
func (d Delay) Pick(rnd *rand.Rand) time.Duration {
	if d.Max <= d.Min {
		return d.Min
	}
	return d.Min + time.Duration(rnd.Int63n(int64(d.Max-d.Min)+1))
}

// Validate checks interval bounds
func (d Delay) Validate() error {
	if d.Min < 0 || d.Max < d.Min {
		return fmt.Errorf("invalid delay [%v,%v]", d.Min, d.Max)
	}
	return nil
}

// Config represents worker timing and behaviour
type Config struct {
	// Review is the per-line rubric review latency; it elapses while the rubric lock is held.
	Review Delay `json:"review" yaml:"review"`

	// Marking is the latency of marking one claimed question, outside any lock.
	Marking Delay `json:"marking" yaml:"marking"`

	// Retry is the back-off after finding the current exam not fully marked.
	Retry Delay `json:"retry" yaml:"retry"`

	// CorrectionRate is the probability a reviewed line gets a correction attempt.
	CorrectionRate float64 `json:"correctionRate" yaml:"correctionRate"`
}

// DefaultConfig returns the default worker configuration
func DefaultConfig() Config {
	return Config{
		Review:         Delay{Min: 500 * time.Millisecond, Max: 1000 * time.Millisecond},
		Marking:        Delay{Min: 1000 * time.Millisecond, Max: 2000 * time.Millisecond},
		Retry:          Delay{Min: 300 * time.Millisecond, Max: 600 * time.Millisecond},
		CorrectionRate: 0.5,
	}
}

// Validate returns an error describing the first invalid setting
func (c Config) Validate() error {
	if err := c.Review.Validate(); err != nil {
		return fmt.Errorf("review: %w", err)
	}
	if err := c.Marking.Validate(); err != nil {
		return fmt.Errorf("marking: %w", err)
	}
	if err := c.Retry.Validate(); err != nil {
		return fmt.Errorf("retry: %w", err)
	}
	if c.CorrectionRate < 0 || c.CorrectionRate > 1 {
		return fmt.Errorf("correctionRate must be within [0,1]: %v", c.CorrectionRate)
	}
	return nil
}
