package http

import (
	"fmt"

	"github.com/Victor-Leroy/winemix/pkg/domain"
)

// ConfigDTO is the wire form of domain.Configuration.
type ConfigDTO struct {
	Tanks        int     `json:"tanks"`
	Adjacency    string  `json:"adjacency,omitempty"`
	Reach        int     `json:"reach,omitempty"`
	Distribution string  `json:"distribution,omitempty"`
	Tolerance    float64 `json:"tolerance,omitempty"`
}

// StateRequest describes a state to operate on. A null entry in Contents is an empty tank.
type StateRequest struct {
	Config   ConfigDTO   `json:"config"`
	Contents [][]float64 `json:"contents"`
	Depth    int         `json:"depth,omitempty"`
}

// TransferDTO is the wire form of domain.Transfer.
type TransferDTO struct {
	From []int `json:"from"`
	To   []int `json:"to"`
}

// ApplyRequest applies one transfer to a state.
type ApplyRequest struct {
	State    StateRequest `json:"state"`
	Transfer TransferDTO  `json:"transfer"`
}

// StateDTO is the read contract of a state.
type StateDTO struct {
	ID        string      `json:"id"`
	Depth     int         `json:"depth"`
	Volume    float64     `json:"volume"`
	UsedTanks int         `json:"used_tanks"`
	TotalWine float64     `json:"total_wine"`
	Contents  [][]float64 `json:"contents"`
}

// StepDTO is one successor with the transfer that produced it.
type StepDTO struct {
	Transfer TransferDTO `json:"transfer"`
	State    StateDTO    `json:"state"`
}

// NextResponse lists successors in generation order.
// Truncated is set when the list was cut at the server's step limit.
type NextResponse struct {
	Steps     []StepDTO `json:"steps"`
	Truncated bool      `json:"truncated,omitempty"`
}

// BestResponse carries the best mix, or null when every tank is empty.
type BestResponse struct {
	Mix            []float64 `json:"mix"`
	Tank           int       `json:"tank"`
	TargetDistance *float64  `json:"target_distance,omitempty"`
}

// ValidateResponse reports the conservation checks.
type ValidateResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func (c ConfigDTO) toDomain() (domain.Configuration, error) {
	adj, err := domain.ParseAdjacency(c.Adjacency, max(c.Reach, 1))
	if err != nil {
		return domain.Configuration{}, err
	}
	dist, err := domain.ParseDistribution(c.Distribution)
	if err != nil {
		return domain.Configuration{}, err
	}
	return domain.Configuration{
		NumTanks:     c.Tanks,
		Adjacency:    adj,
		Distribution: dist,
		Tolerance:    c.Tolerance,
	}, nil
}

func (r StateRequest) toDomain(maxTanks int) (*domain.State, error) {
	if r.Config.Tanks > maxTanks || len(r.Contents) > maxTanks {
		return nil, fmt.Errorf("%w: at most %d tanks are served, got %d", domain.ErrInvalidConfiguration, maxTanks, max(r.Config.Tanks, len(r.Contents)))
	}
	cfg, err := r.Config.toDomain()
	if err != nil {
		return nil, err
	}
	contents := make([]*domain.Mix, len(r.Contents))
	for i, v := range r.Contents {
		if v == nil {
			continue
		}
		for w, amount := range v {
			if amount < 0 {
				return nil, fmt.Errorf("%w: tank %d wine %d: negative amount %g", domain.ErrInvalidConfiguration, i, w, amount)
			}
		}
		contents[i] = domain.NewMix(v...)
	}
	return domain.NewStateWithContents(cfg, contents, r.Depth)
}

func (t TransferDTO) toDomain() (domain.Transfer, error) {
	from, err := domain.NewTankGroup(t.From...)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("from: %w", err)
	}
	to, err := domain.NewTankGroup(t.To...)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("to: %w", err)
	}
	return domain.Transfer{From: from, To: to}, nil
}

func transferFromDomain(t domain.Transfer) TransferDTO {
	return TransferDTO{From: t.From.Indices(), To: t.To.Indices()}
}

func stateFromDomain(s *domain.State) StateDTO {
	contents := make([][]float64, s.NumTanks())
	for i, m := range s.Contents() {
		if m != nil {
			contents[i] = m.Values()
		}
	}
	return StateDTO{
		ID:        s.ID().String(),
		Depth:     s.Depth(),
		Volume:    s.Volume(),
		UsedTanks: s.UsedTanks(),
		TotalWine: s.TotalWine(),
		Contents:  contents,
	}
}
