package inter

import (
	"github.com/pkg/errors"

	"github.com/rony4d/go-edgeware-genesis/inter/validatorpk"
	"github.com/rony4d/go-edgeware-genesis/utils/num"
)

// SessionKeysLength is the size of the concatenated session key encoding:
// consensus (33) || finality (32) || online (32).
const SessionKeysLength = validatorpk.Secp256k1Length + 2*validatorpk.Ed25519Length

// ErrInvalidSessionKeys is returned when a concatenated session key blob cannot be split.
var ErrInvalidSessionKeys = errors.New("invalid session keys")

// AllocationEntry is a balance credited to an account at genesis.
type AllocationEntry struct {
	Account AccountID   `json:"account"`
	Balance num.Balance `json:"balance"`
}

// VestingEntry locks part of an account's balance until the schedule elapses.
// Duration is always positive in a valid snapshot.
type VestingEntry struct {
	Account  AccountID   `json:"account"`
	Start    BlockNumber `json:"start"`
	Duration BlockNumber `json:"duration"`
	Locked   num.Balance `json:"locked"`
}

// SessionKeys are a validator's role-specific authority keys.
type SessionKeys struct {
	// Consensus signs produced blocks.
	Consensus validatorpk.PubKey `json:"consensus"`
	// Finality votes in the finality gadget.
	Finality validatorpk.PubKey `json:"finality"`
	// Online attests liveness.
	Online validatorpk.PubKey `json:"online"`
}

// All returns the keys in role order.
func (k SessionKeys) All() []validatorpk.PubKey {
	return []validatorpk.PubKey{k.Consensus, k.Finality, k.Online}
}

// Validate checks every key against its scheme.
func (k SessionKeys) Validate() error {
	for i, pk := range k.All() {
		if err := pk.Validate(); err != nil {
			return errors.Wrapf(err, "%s key", SessionKeyRoles[i])
		}
	}
	return nil
}

// Bytes returns the concatenated raw keys, the inverse of SessionKeysFromBytes.
func (k SessionKeys) Bytes() []byte {
	out := make([]byte, 0, SessionKeysLength)
	out = append(out, k.Consensus.Raw...)
	out = append(out, k.Finality.Raw...)
	return append(out, k.Online.Raw...)
}

// SessionKeyRoles names the roles in the order used by SessionKeys.All.
var SessionKeyRoles = [3]string{"consensus", "finality", "online"}

// SessionKeysFromBytes splits a SessionKeysLength blob into typed keys.
func SessionKeysFromBytes(b []byte) (SessionKeys, error) {
	if len(b) != SessionKeysLength {
		return SessionKeys{}, errors.Wrapf(ErrInvalidSessionKeys, "want %d bytes, got %d", SessionKeysLength, len(b))
	}
	c := validatorpk.Secp256k1Length
	f := c + validatorpk.Ed25519Length
	keys := SessionKeys{
		Consensus: validatorpk.NewSecp256k1(b[:c]),
		Finality:  validatorpk.NewEd25519(b[c:f]),
		Online:    validatorpk.NewEd25519(b[f:]),
	}
	if err := keys.Validate(); err != nil {
		return SessionKeys{}, errors.Wrap(ErrInvalidSessionKeys, err.Error())
	}
	return keys, nil
}

// ValidatorRecord is a genesis validator: the stash holds the stake and the
// controller issues operational decisions. Stash and Controller differ.
type ValidatorRecord struct {
	Stash      AccountID   `json:"stash"`
	Controller AccountID   `json:"controller"`
	Keys       SessionKeys `json:"keys"`
	Stake      num.Balance `json:"stake"`
}

// Perbill is a fraction expressed in parts per billion.
type Perbill uint32

// PerbillOne is 100%.
const PerbillOne Perbill = 1_000_000_000

// PerbillFromPercent returns p percent, saturating at 100%.
func PerbillFromPercent(p uint32) Perbill {
	if p > 100 {
		p = 100
	}
	return Perbill(p) * (PerbillOne / 100)
}

// StakerStatus is the role a staker takes at genesis.
type StakerStatus uint8

const (
	// StakerIdle bonds without participating.
	StakerIdle StakerStatus = iota
	// StakerValidator intends to validate.
	StakerValidator
	// StakerNominator backs other validators.
	StakerNominator
)

// String returns the lowercase role name.
func (s StakerStatus) String() string {
	switch s {
	case StakerIdle:
		return "idle"
	case StakerValidator:
		return "validator"
	case StakerNominator:
		return "nominator"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s StakerStatus) MarshalText() ([]byte, error) {
	if s > StakerNominator {
		return nil, errors.Errorf("unknown staker status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *StakerStatus) UnmarshalText(input []byte) error {
	switch string(input) {
	case "idle":
		*s = StakerIdle
	case "validator":
		*s = StakerValidator
	case "nominator":
		*s = StakerNominator
	default:
		return errors.Errorf("unknown staker status %q", string(input))
	}
	return nil
}
