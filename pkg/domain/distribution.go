package domain

import (
	"fmt"
	"strings"
)

// Distribution controls how the combined mix of a transfer is written into
// a destination group of more than one tank.
type Distribution string

const (
	// DistributeReplicate writes the full combined mix into every destination tank.
	DistributeReplicate Distribution = "replicate"
	// DistributeSplit writes an equal share (combined / size) into each destination tank.
	DistributeSplit Distribution = "split"
)

// ParseDistribution resolves a distribution name; empty means replicate.
func ParseDistribution(name string) (Distribution, error) {
	switch d := Distribution(strings.ToLower(strings.TrimSpace(name))); d {
	case "":
		return DistributeReplicate, nil
	case DistributeReplicate, DistributeSplit:
		return d, nil
	default:
		return "", fmt.Errorf("%w: unknown distribution %q", ErrInvalidConfiguration, name)
	}
}

// share returns the mix each of n destination tanks receives.
func (d Distribution) share(combined *Mix, n int) *Mix {
	if d == DistributeSplit && n > 1 {
		return combined.Div(float64(n))
	}
	return combined
}
