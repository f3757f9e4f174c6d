package domain

import (
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// StateID is the BLAKE3 content hash of a state's tank contents.
// Two states with the same contents share an ID regardless of depth.
type StateID [32]byte

// stateDomainKey separates state hashes from any other BLAKE3 use.
var stateDomainKey = [32]byte{
	'w', 'i', 'n', 'e', 'm', 'i', 'x', '.', 's', 't', 'a', 't', 'e',
}

// contentsEncMode uses Core Deterministic Encoding so equal contents
// always produce identical bytes.
var contentsEncMode cbor.EncMode

func init() {
	var err error
	contentsEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("domain: CBOR encoder initialization failed: " + err.Error())
	}
}

func (id StateID) String() string { return hex.EncodeToString(id[:]) }

// Short is the first eight hex characters, enough for logs.
func (id StateID) Short() string { return hex.EncodeToString(id[:4]) }

// IsZero reports whether the ID is unset.
func (id StateID) IsZero() bool { return id == StateID{} }

// MarshalText encodes the ID as hex.
func (id StateID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText decodes a hex ID.
func (id *StateID) UnmarshalText(text []byte) error {
	var out StateID
	if hex.DecodedLen(len(text)) != len(out) {
		return fmt.Errorf("state id: want %d hex characters, got %d", 2*len(out), len(text))
	}
	if _, err := hex.Decode(out[:], text); err != nil {
		return err
	}
	*id = out
	return nil
}

// computeStateID hashes the contents. Empty tanks encode as CBOR null.
func computeStateID(contents []*Mix) StateID {
	payload := make([][]float64, len(contents))
	for i, m := range contents {
		if m != nil {
			payload[i] = m.values
		}
	}
	data, err := contentsEncMode.Marshal(payload)
	if err != nil {
		panic("domain: encoding state contents: " + err.Error())
	}
	hasher, err := blake3.NewKeyed(stateDomainKey[:])
	if err != nil {
		panic("domain: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var id StateID
	copy(id[:], hasher.Sum(nil))
	return id
}
