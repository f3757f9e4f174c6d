package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// TankGroup is an ordered set of tank indices treated as one transfer endpoint.
// Indices are strictly increasing. The zero value is the empty group.
type TankGroup struct {
	tanks []int
}

// NewTankGroup validates and builds a group. The slice is copied.
func NewTankGroup(tanks ...int) (TankGroup, error) {
	g := TankGroup{tanks: slices.Clone(tanks)}
	if !g.IsValid() {
		return TankGroup{}, fmt.Errorf("%w: %v", ErrMalformedTankGroup, tanks)
	}
	return g, nil
}

// MustTankGroup is like NewTankGroup but panics on malformed input.
func MustTankGroup(tanks ...int) TankGroup {
	g, err := NewTankGroup(tanks...)
	if err != nil {
		panic(err)
	}
	return g
}

// Size is the number of tanks in the group, which is also its volume in tank units.
func (g TankGroup) Size() int { return len(g.tanks) }

// At returns the i-th tank index.
func (g TankGroup) At(i int) int { return g.tanks[i] }

// Last returns the highest tank index, or -1 for the empty group.
func (g TankGroup) Last() int {
	if len(g.tanks) == 0 {
		return -1
	}
	return g.tanks[len(g.tanks)-1]
}

// Indices returns a copy of the tank indices.
func (g TankGroup) Indices() []int { return slices.Clone(g.tanks) }

// Has reports whether tank n belongs to the group.
func (g TankGroup) Has(n int) bool {
	_, found := slices.BinarySearch(g.tanks, n)
	return found
}

// IsValid reports whether indices are non-negative and strictly increasing.
// The empty group is valid.
func (g TankGroup) IsValid() bool {
	for i, t := range g.tanks {
		if t < 0 {
			return false
		}
		if i > 0 && t <= g.tanks[i-1] {
			return false
		}
	}
	return true
}

// Overlaps reports whether the two groups share a tank.
func (g TankGroup) Overlaps(other TankGroup) bool {
	for _, t := range g.tanks {
		if other.Has(t) {
			return true
		}
	}
	return false
}

// Equal reports whether both groups hold the same indices.
func (g TankGroup) Equal(other TankGroup) bool {
	return slices.Equal(g.tanks, other.tanks)
}

func (g TankGroup) String() string {
	parts := make([]string, len(g.tanks))
	for i, t := range g.tanks {
		parts[i] = strconv.Itoa(t)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// MarshalJSON encodes the group as an array of tank indices.
func (g TankGroup) MarshalJSON() ([]byte, error) {
	if g.tanks == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(g.tanks)
}

// UnmarshalJSON decodes an array of tank indices, rejecting malformed groups.
func (g *TankGroup) UnmarshalJSON(data []byte) error {
	var tanks []int
	if err := json.Unmarshal(data, &tanks); err != nil {
		return err
	}
	parsed, err := NewTankGroup(tanks...)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
