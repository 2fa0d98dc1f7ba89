// Package inter defines the records that make up a genesis snapshot: account
// identifiers, balance and vesting entries, validator records and the small
// numeric types shared by the genesis packages.
package inter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// AccountIDLength is the size of an account identifier in bytes.
const AccountIDLength = 32

var (
	// ErrInvalidAccountID is returned when hex input does not decode to exactly AccountIDLength bytes.
	ErrInvalidAccountID = errors.New("invalid account id")
	// ErrInvalidBlockNumber is returned for block numbers outside the 32-bit range or not in base 10.
	ErrInvalidBlockNumber = errors.New("invalid block number")
)

// AccountID is an opaque public-key-derived account identifier.
// Equality is byte equality.
type AccountID [AccountIDLength]byte

// BytesToAccountID converts b to an AccountID, failing unless len(b) == AccountIDLength.
func BytesToAccountID(b []byte) (AccountID, error) {
	var id AccountID
	if len(b) != AccountIDLength {
		return id, errors.Wrapf(ErrInvalidAccountID, "want %d bytes, got %d", AccountIDLength, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// HexToAccountID decodes a hex string with or without the 0x prefix.
func HexToAccountID(s string) (AccountID, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return AccountID{}, errors.Wrapf(ErrInvalidAccountID, "%q: %v", s, err)
	}
	return BytesToAccountID(b)
}

// Bytes returns a copy of the identifier bytes.
func (a AccountID) Bytes() []byte {
	return append([]byte(nil), a[:]...)
}

// Hex returns the 0x-prefixed lowercase hex form.
func (a AccountID) Hex() string {
	return hexutil.Encode(a[:])
}

// String implements fmt.Stringer.
func (a AccountID) String() string {
	return a.Hex()
}

// IsZero reports whether every byte is zero.
func (a AccountID) IsZero() bool {
	return a == AccountID{}
}

// Less orders identifiers bytewise.
func (a AccountID) Less(b AccountID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

// MarshalText implements encoding.TextMarshaler.
func (a AccountID) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AccountID) UnmarshalText(input []byte) error {
	id, err := HexToAccountID(string(input))
	if err != nil {
		return err
	}
	*a = id
	return nil
}

// BlockNumber is a block height counted from genesis.
type BlockNumber = idx.Block

// MaxBlockNumber is the largest block number accepted in genesis input.
const MaxBlockNumber = BlockNumber(1<<32 - 1)

// ParseBlockNumber parses a base-10 block number within the 32-bit range.
func ParseBlockNumber(s string) (BlockNumber, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidBlockNumber, "%q: %v", s, err)
	}
	return BlockNumber(n), nil
}

// FormatBlockNumber is the inverse of ParseBlockNumber.
func FormatBlockNumber(n BlockNumber) string {
	return fmt.Sprintf("%d", uint64(n))
}
