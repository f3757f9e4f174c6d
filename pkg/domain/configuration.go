package domain

import "fmt"

// DefaultTolerance is the absolute tolerance used by the conservation checks.
const DefaultTolerance = 1e-9

// Configuration describes the tank bank a State lives in.
type Configuration struct {
	// NumTanks is the number of tank slots. Every tank has capacity 1/NumTanks.
	NumTanks int

	// Adjacency prunes transfer candidates. Nil means Contiguous().
	Adjacency Adjacency

	// Distribution applies to multi-tank destinations. Empty means replicate.
	Distribution Distribution

	// Tolerance for the conservation checks. Zero means DefaultTolerance.
	Tolerance float64
}

// NewConfiguration returns a configuration with default policies.
func NewConfiguration(numTanks int) Configuration {
	return Configuration{NumTanks: numTanks}
}

// Validate reports whether the configuration can describe a tank bank.
func (c Configuration) Validate() error {
	if c.NumTanks < 1 {
		return fmt.Errorf("%w: number of tanks must be >= 1, got %d", ErrInvalidConfiguration, c.NumTanks)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must be >= 0, got %g", ErrInvalidConfiguration, c.Tolerance)
	}
	if _, err := ParseDistribution(string(c.Distribution)); err != nil {
		return err
	}
	return nil
}

// TankSize is the uniform per-tank capacity.
func (c Configuration) TankSize() float64 {
	return 1.0 / float64(c.NumTanks)
}

// withDefaults fills in unset policies.
func (c Configuration) withDefaults() Configuration {
	if c.Adjacency == nil {
		c.Adjacency = Contiguous()
	}
	if c.Distribution == "" {
		c.Distribution = DistributeReplicate
	}
	if c.Tolerance == 0 {
		c.Tolerance = DefaultTolerance
	}
	return c
}
