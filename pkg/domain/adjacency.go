package domain

import (
	"fmt"
	"strings"
)

// Adjacency decides whether a destination group is close enough to a source
// group to be offered as a transfer candidate. It prunes the candidate space;
// it is not a validity check.
type Adjacency interface {
	Adjacent(from, to TankGroup) bool
}

// AdjacencyFunc adapts a plain function to Adjacency.
type AdjacencyFunc func(from, to TankGroup) bool

// Adjacent calls f(from, to).
func (f AdjacencyFunc) Adjacent(from, to TankGroup) bool { return f(from, to) }

// Adjacency policy names accepted by ParseAdjacency.
const (
	AdjacencyContiguous = "contiguous"
	AdjacencyWindow     = "window"
	AdjacencyAny        = "any"
)

// WindowAdjacency accepts a destination when every destination tank lies
// within Reach positions of some source tank.
type WindowAdjacency struct {
	Reach int
}

// Adjacent implements Adjacency.
func (w WindowAdjacency) Adjacent(from, to TankGroup) bool {
	for _, j := range to.tanks {
		near := false
		for _, i := range from.tanks {
			if d := abs(i - j); d >= 1 && d <= w.Reach {
				near = true
				break
			}
		}
		if !near {
			return false
		}
	}
	return true
}

// Contiguous only offers neighbouring tanks: index distance exactly one.
func Contiguous() Adjacency { return WindowAdjacency{Reach: 1} }

// AnyAdjacency offers every destination.
type AnyAdjacency struct{}

// Adjacent implements Adjacency.
func (AnyAdjacency) Adjacent(TankGroup, TankGroup) bool { return true }

// ParseAdjacency resolves a policy name. reach is only used by "window".
func ParseAdjacency(name string, reach int) (Adjacency, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", AdjacencyContiguous:
		return Contiguous(), nil
	case AdjacencyWindow:
		if reach < 1 {
			return nil, fmt.Errorf("%w: window reach must be >= 1, got %d", ErrInvalidConfiguration, reach)
		}
		return WindowAdjacency{Reach: reach}, nil
	case AdjacencyAny:
		return AnyAdjacency{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown adjacency %q", ErrInvalidConfiguration, name)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
