package domain

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"
)

// State is an immutable snapshot of every tank in the bank plus the number
// of transfers applied since the initial state.
//
// States are never modified after construction; Apply and WithMix return new
// states. A *State is therefore safe to share between goroutines.
type State struct {
	config    Configuration
	contents  []*Mix
	depth     int
	id        StateID
	usedTanks int
	totalWine float64
}

// NewState returns the initial state: every tank empty, depth 0.
func NewState(config Configuration) (*State, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return newState(config.withDefaults(), make([]*Mix, config.NumTanks), 0), nil
}

// NewStateWithContents builds a state from explicit contents. The slice is copied;
// its length must equal NumTanks and all mixes must share one width.
func NewStateWithContents(config Configuration, contents []*Mix, depth int) (*State, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if len(contents) != config.NumTanks {
		return nil, fmt.Errorf("%w: %d contents for %d tanks", ErrInvalidConfiguration, len(contents), config.NumTanks)
	}
	if depth < 0 {
		return nil, fmt.Errorf("%w: negative depth %d", ErrInvalidConfiguration, depth)
	}
	width := -1
	for i, m := range contents {
		if m == nil {
			continue
		}
		if width < 0 {
			width = m.Count()
		} else if m.Count() != width {
			return nil, fmt.Errorf("tank %d: %w", i, &DimensionError{Op: "contents", Left: width, Right: m.Count()})
		}
	}
	return newState(config.withDefaults(), slices.Clone(contents), depth), nil
}

// newState takes ownership of contents.
func newState(config Configuration, contents []*Mix, depth int) *State {
	s := &State{
		config:   config,
		contents: contents,
		depth:    depth,
	}
	for _, m := range contents {
		if m != nil {
			s.usedTanks++
			s.totalWine += m.Sum()
		}
	}
	s.id = computeStateID(contents)
	return s
}

// Configuration returns the tank bank description, with defaults applied.
func (s *State) Configuration() Configuration { return s.config }

// NumTanks is the number of tank slots.
func (s *State) NumTanks() int { return s.config.NumTanks }

// Depth is the number of transfers applied since the initial state.
func (s *State) Depth() int { return s.depth }

// ID is the content identity of the state.
func (s *State) ID() StateID { return s.id }

// UsedTanks is the number of occupied tanks.
func (s *State) UsedTanks() int { return s.usedTanks }

// TotalWine is the sum of every resident mix.
func (s *State) TotalWine() float64 { return s.totalWine }

// TankSize is the capacity of tank i. All tanks share the same capacity.
func (s *State) TankSize(int) float64 { return s.config.TankSize() }

// Volume is the capacity of the whole bank.
func (s *State) Volume() float64 {
	return float64(s.config.NumTanks) * s.TankSize(0)
}

// Contents returns a copy of the per-tank mixes; empty tanks are nil.
func (s *State) Contents() []*Mix { return slices.Clone(s.contents) }

// Mix returns the mix in tank i, or nil when it is empty.
func (s *State) Mix(i int) *Mix { return s.contents[i] }

// Mixes yields every occupied tank and its mix, in tank order.
func (s *State) Mixes() iter.Seq2[int, *Mix] {
	return func(yield func(int, *Mix) bool) {
		for i, m := range s.contents {
			if m != nil && !yield(i, m) {
				return
			}
		}
	}
}

// IsOccupied reports whether tank i holds a mix. Out-of-range tanks are not occupied.
func (s *State) IsOccupied(i int) bool {
	return s.inRange(i) && s.contents[i] != nil
}

// IsGroupOccupied reports whether every tank in g exists and holds a mix.
func (s *State) IsGroupOccupied(g TankGroup) bool {
	for _, i := range g.tanks {
		if !s.IsOccupied(i) {
			return false
		}
	}
	return true
}

// IsGroupUnoccupied reports whether every tank in g exists and is empty.
func (s *State) IsGroupUnoccupied(g TankGroup) bool {
	for _, i := range g.tanks {
		if !s.inRange(i) || s.contents[i] != nil {
			return false
		}
	}
	return true
}

func (s *State) inRange(i int) bool {
	return i >= 0 && i < len(s.contents)
}

// WithMix returns a copy of the state with tank i set to m (nil empties it).
// The depth is unchanged; it is meant for seeding initial states.
func (s *State) WithMix(i int, m *Mix) (*State, error) {
	if !s.inRange(i) {
		return nil, fmt.Errorf("%w: tank %d out of range [0,%d)", ErrInvalidConfiguration, i, s.NumTanks())
	}
	contents := slices.Clone(s.contents)
	contents[i] = m
	return NewStateWithContents(s.config, contents, s.depth)
}

// OccupiedGroups yields a singleton group for every occupied tank.
// Only single tanks are offered as transfer sources.
func (s *State) OccupiedGroups() iter.Seq[TankGroup] {
	return func(yield func(TankGroup) bool) {
		for i, m := range s.contents {
			if m != nil && !yield(TankGroup{tanks: []int{i}}) {
				return
			}
		}
	}
}

// UnoccupiedGroups yields every strictly increasing combination of size
// empty tanks. Size 0 yields the empty group once. Each call to the returned
// sequence starts over, and only one group is built per step.
func (s *State) UnoccupiedGroups(size int) iter.Seq[TankGroup] {
	return func(yield func(TankGroup) bool) {
		var free []int
		for i, m := range s.contents {
			if m == nil {
				free = append(free, i)
			}
		}
		combinations(free, size, yield)
	}
}

// combinations walks the size-k subsets of pool in lexicographic order using
// an index cursor.
func combinations(pool []int, k int, yield func(TankGroup) bool) {
	n := len(pool)
	if k < 0 || k > n {
		return
	}
	cursor := make([]int, k)
	for i := range cursor {
		cursor[i] = i
	}
	for {
		tanks := make([]int, k)
		for i, c := range cursor {
			tanks[i] = pool[c]
		}
		if !yield(TankGroup{tanks: tanks}) {
			return
		}
		// Rightmost position that can still move.
		i := k - 1
		for i >= 0 && cursor[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		cursor[i]++
		for j := i + 1; j < k; j++ {
			cursor[j] = cursor[j-1] + 1
		}
	}
}

// Transfers yields candidate transfers: each occupied group paired with every
// unoccupied group of the same size that the adjacency policy accepts.
// Candidates still have to pass IsTransferValid.
func (s *State) Transfers() iter.Seq[Transfer] {
	return func(yield func(Transfer) bool) {
		for from := range s.OccupiedGroups() {
			for to := range s.UnoccupiedGroups(from.Size()) {
				if !s.config.Adjacency.Adjacent(from, to) {
					continue
				}
				if !yield(Transfer{From: from, To: to}) {
					return
				}
			}
		}
	}
}

// ComputeTransfers collects Transfers into a slice.
func (s *State) ComputeTransfers() []Transfer {
	return slices.Collect(s.Transfers())
}

// IsTransferValid reports whether t can be applied: well formed, every
// source tank occupied and every destination tank empty.
func (s *State) IsTransferValid(t Transfer) bool {
	return t.Validate() == nil && s.IsGroupOccupied(t.From) && s.IsGroupUnoccupied(t.To)
}

// CombinedMix sums the mixes held by g. It returns nil for an empty group.
func (s *State) CombinedMix(g TankGroup) *Mix {
	var combined *Mix
	for _, i := range g.tanks {
		m := s.contents[i]
		if m == nil {
			continue
		}
		if combined == nil {
			combined = m
		} else {
			combined = combined.Add(m)
		}
	}
	return combined
}

// Apply moves the contents of t.From into t.To and returns the resulting
// state one level deeper. The receiver is left untouched.
func (s *State) Apply(t Transfer) (*State, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if !s.IsGroupOccupied(t.From) {
		return nil, fmt.Errorf("%w: %v: source tanks are not all occupied", ErrInvalidTransfer, t)
	}
	if !s.IsGroupUnoccupied(t.To) {
		return nil, fmt.Errorf("%w: %v: destination tanks are not all empty", ErrInvalidTransfer, t)
	}

	combined := s.CombinedMix(t.From)
	contents := slices.Clone(s.contents)
	for _, i := range t.From.tanks {
		contents[i] = nil
	}
	if t.To.Size() > 0 {
		share := s.config.Distribution.share(combined, t.To.Size())
		for _, i := range t.To.tanks {
			contents[i] = share
		}
	}
	return newState(s.config, contents, s.depth+1), nil
}

// GetNextStates yields the state produced by every valid candidate transfer,
// in candidate order. The sequence is finite and can be ranged over again.
func (s *State) GetNextStates() iter.Seq[*State] {
	return func(yield func(*State) bool) {
		for next := range s.NextSteps() {
			if !yield(next.State) {
				return
			}
		}
	}
}

// Step pairs a successor state with the transfer that produced it.
type Step struct {
	Transfer Transfer
	State    *State
}

// NextSteps is GetNextStates with the producing transfer attached.
func (s *State) NextSteps() iter.Seq[Step] {
	return func(yield func(Step) bool) {
		for t := range s.Transfers() {
			if !s.IsTransferValid(t) {
				continue
			}
			next, err := s.Apply(t)
			if err != nil {
				// IsTransferValid and Apply agree; reaching here is a bug.
				panic(err)
			}
			if !yield(Step{Transfer: t, State: next}) {
				return
			}
		}
	}
}

// TargetDistance measures how far a mix is from filling the whole bank.
func TargetDistance(m *Mix) float64 {
	return math.Abs(m.Sum() - 1)
}

// BestMix returns the resident mix whose volume is closest to 1.
// Ties keep the lowest tank index. It returns nil when every tank is empty.
func (s *State) BestMix() *Mix {
	var best *Mix
	lowest := math.Inf(1)
	for _, m := range s.Mixes() {
		if d := TargetDistance(m); d < lowest {
			best, lowest = m, d
		}
	}
	return best
}

// CheckTotalWine fails when the wine in the state differs from the bank's
// capacity by more than the configured tolerance.
func (s *State) CheckTotalWine() error {
	expected := float64(s.config.NumTanks) * s.config.TankSize()
	if math.Abs(s.totalWine-expected) > s.config.Tolerance {
		return &InvariantError{Tank: -1, Expected: expected, Actual: s.totalWine}
	}
	return nil
}

// CheckTankAmounts fails on the first tank whose volume differs from its
// capacity by more than the configured tolerance. Empty tanks hold 0.
func (s *State) CheckTankAmounts() error {
	for i, m := range s.contents {
		amount := 0.0
		if m != nil {
			amount = m.Sum()
		}
		if size := s.TankSize(i); math.Abs(amount-size) > s.config.Tolerance {
			return &InvariantError{Tank: i, Expected: size, Actual: amount}
		}
	}
	return nil
}

// Validate runs both conservation checks.
func (s *State) Validate() error {
	return errors.Join(s.CheckTotalWine(), s.CheckTankAmounts())
}

func (s *State) String() string {
	return fmt.Sprintf("State(%s depth=%d used=%d wine=%g)", s.id.Short(), s.depth, s.usedTanks, s.totalWine)
}
