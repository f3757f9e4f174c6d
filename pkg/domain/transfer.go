package domain

import "fmt"

// Transfer moves the contents of one tank group into another of equal size.
type Transfer struct {
	From TankGroup `json:"from"`
	To   TankGroup `json:"to"`
}

// NewTransfer builds a transfer and checks it with Validate.
func NewTransfer(from, to TankGroup) (Transfer, error) {
	t := Transfer{From: from, To: to}
	if err := t.Validate(); err != nil {
		return Transfer{}, err
	}
	return t, nil
}

// Size is the number of tanks on each side of the transfer.
func (t Transfer) Size() int { return t.From.Size() }

// IsEmpty reports whether the transfer moves nothing.
func (t Transfer) IsEmpty() bool { return t.From.Size() == 0 && t.To.Size() == 0 }

// Validate checks the shape of the transfer independently of any state:
// both groups well formed, equal in size, and disjoint.
func (t Transfer) Validate() error {
	if !t.From.IsValid() || !t.To.IsValid() {
		return fmt.Errorf("%w: %v: %v", ErrInvalidTransfer, t, ErrMalformedTankGroup)
	}
	if t.From.Size() != t.To.Size() {
		return fmt.Errorf("%w: %v: size %d != %d", ErrInvalidTransfer, t, t.From.Size(), t.To.Size())
	}
	if t.From.Overlaps(t.To) {
		return fmt.Errorf("%w: %v: groups overlap", ErrInvalidTransfer, t)
	}
	return nil
}

func (t Transfer) String() string {
	return t.From.String() + " -> " + t.To.String()
}
