/*
Package domain contains the core model of the blending engine.

A bank of NumTanks tanks each holds either nothing or a Mix, a vector with
one amount per source wine. A Transfer empties one group of occupied tanks
into an equal-sized group of empty tanks, producing a new State. The package
is pure: no I/O, no persistence, no goroutines.

# Key Entities

  - Mix: immutable composition vector with add, subtract, scale, normalize,
    lerp and distance operations.
  - TankGroup: strictly increasing set of tank indices used as a transfer endpoint.
  - Transfer: a (From, To) pair of equal-sized, disjoint tank groups.
  - State: immutable snapshot of the bank plus its depth. It enumerates
    candidate transfers (OccupiedGroups, UnoccupiedGroups, Transfers), gates
    them (IsTransferValid), applies them (Apply) and exposes the one-step
    expansion used by search drivers (GetNextStates).

# Policies

Which destinations are offered for a source is decided by an Adjacency
policy (Contiguous by default). How a combined mix lands in a multi-tank
destination is decided by a Distribution (replicate by default).

# Capacity

Every tank has capacity 1/NumTanks, so a full bank holds exactly 1.0.
CheckTotalWine and CheckTankAmounts verify that convention within the
configured tolerance and return an *InvariantError otherwise.
*/
package domain
