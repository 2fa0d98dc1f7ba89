// Package validatorpk provides typed validator public keys.
// A PubKey carries a scheme tag next to the raw key bytes, so the genesis
// packages can hold secp256k1 consensus keys and ed25519 finality and
// liveness keys side by side and still compare, validate and serialize them
// uniformly.

package validatorpk

import (
	"crypto/ed25519"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

const (
	// Secp256k1Length is the size of a compressed secp256k1 public key.
	Secp256k1Length = 33
	// Ed25519Length is the size of an ed25519 public key.
	Ed25519Length = ed25519.PublicKeySize
)

var (
	// ErrEmptyPubKey is returned when decoding zero bytes.
	ErrEmptyPubKey = errors.New("empty pubkey")
	// ErrInvalidPubKey is returned by Validate for malformed keys.
	ErrInvalidPubKey = errors.New("invalid pubkey")
)

// PubKey represents a validator's public key.
type PubKey struct {
	// Type identifies the signature scheme, one of Types.
	Type uint8
	// Raw contains the key bytes in the scheme's canonical encoding.
	Raw []byte
}

// Types defines the supported public key types.
var Types = struct {
	Secp256k1 uint8
	Ed25519   uint8
}{
	Secp256k1: 0xc0,
	Ed25519:   0xed,
}

// NewSecp256k1 wraps a compressed secp256k1 key. The bytes are copied.
func NewSecp256k1(raw []byte) PubKey {
	return PubKey{Type: Types.Secp256k1, Raw: common.CopyBytes(raw)}
}

// NewEd25519 wraps an ed25519 key. The bytes are copied.
func NewEd25519(raw []byte) PubKey {
	return PubKey{Type: Types.Ed25519, Raw: common.CopyBytes(raw)}
}

// Empty checks if the public key is uninitialized.
func (pk PubKey) Empty() bool {
	return len(pk.Raw) == 0 && pk.Type == 0
}

// Validate checks that Raw is a well-formed key of the tagged scheme.
// Secp256k1 keys must decompress to a curve point.
func (pk PubKey) Validate() error {
	switch pk.Type {
	case Types.Secp256k1:
		if len(pk.Raw) != Secp256k1Length {
			return errors.Wrapf(ErrInvalidPubKey, "secp256k1 key has %d bytes", len(pk.Raw))
		}
		if _, err := crypto.DecompressPubkey(pk.Raw); err != nil {
			return errors.Wrapf(ErrInvalidPubKey, "secp256k1 key %s: %v", pk, err)
		}
	case Types.Ed25519:
		if len(pk.Raw) != Ed25519Length {
			return errors.Wrapf(ErrInvalidPubKey, "ed25519 key has %d bytes", len(pk.Raw))
		}
	default:
		return errors.Wrapf(ErrInvalidPubKey, "unknown key type 0x%x", pk.Type)
	}
	return nil
}

// Equal reports whether both keys have the same type and bytes.
func (pk PubKey) Equal(other PubKey) bool {
	return pk.Type == other.Type && string(pk.Raw) == string(other.Raw)
}

// String returns the 0x-prefixed hex of Bytes.
func (pk PubKey) String() string {
	return "0x" + common.Bytes2Hex(pk.Bytes())
}

// Bytes returns [Type] + Raw.
func (pk PubKey) Bytes() []byte {
	return append([]byte{pk.Type}, pk.Raw...)
}

// Copy returns a deep copy of the key.
func (pk PubKey) Copy() PubKey {
	return PubKey{
		Type: pk.Type,
		Raw:  common.CopyBytes(pk.Raw),
	}
}

// FromString parses a hex string (with or without "0x" prefix) produced by String.
func FromString(str string) (PubKey, error) {
	return FromBytes(common.FromHex(str))
}

// FromBytes is the inverse of Bytes.
func FromBytes(b []byte) (PubKey, error) {
	if len(b) == 0 {
		return PubKey{}, ErrEmptyPubKey
	}
	return PubKey{b[0], common.CopyBytes(b[1:])}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (pk PubKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (pk *PubKey) UnmarshalText(input []byte) error {
	res, err := FromString(string(input))
	if err != nil {
		return err
	}
	*pk = res
	return nil
}
