// Package num provides the ledger's native balance type.
//
// Balances are unsigned integers of the ledger's smallest currency unit. The
// ledger stores them in 128 bits, so every arithmetic operation here is
// checked against that width and reports overflow or underflow instead of
// wrapping. The value is held in a holiman/uint256 word, which leaves head room
// for the intermediate products computed before the range check.
//
// Usage:
//
//	stake, err := num.ParseBalance("1000000000000000000000")
//	bond, err := stake.Sub(num.NewBalance(10))
//	total, err := num.Sum(a, b, c)
package num

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// BalanceBits is the storage width of a balance on the ledger.
const BalanceBits = 128

var (
	// ErrOverflow is returned when a result does not fit in BalanceBits.
	ErrOverflow = errors.New("balance overflow")
	// ErrUnderflow is returned when a subtraction would go below zero.
	ErrUnderflow = errors.New("balance underflow")
	// ErrInvalidBalance is returned for strings that are not plain decimal numbers.
	ErrInvalidBalance = errors.New("invalid balance")
)

// maxBalance is 2^128 - 1.
var maxBalance = func() uint256.Int {
	var m uint256.Int
	m.Lsh(uint256.NewInt(1), BalanceBits)
	m.SubUint64(&m, 1)
	return m
}()

// Balance is an immutable amount of the native currency.
// The zero value is a valid zero balance.
type Balance struct {
	v uint256.Int
}

// NewBalance returns a balance holding v units.
func NewBalance(v uint64) Balance {
	return Balance{v: *uint256.NewInt(v)}
}

// MaxBalance returns the largest representable balance.
func MaxBalance() Balance {
	return Balance{v: maxBalance}
}

// ParseBalance parses a base-10 string of ASCII digits. Signs, spaces,
// prefixes and values above MaxBalance are rejected.
func ParseBalance(s string) (Balance, error) {
	if s == "" {
		return Balance{}, fmt.Errorf("%w: empty string", ErrInvalidBalance)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return Balance{}, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidBalance, s)
		}
	}
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Balance{}, fmt.Errorf("%w: %q", ErrInvalidBalance, s)
	}
	return FromBig(b)
}

// FromBig converts a big integer, failing if it is negative or too large.
func FromBig(b *big.Int) (Balance, error) {
	if b.Sign() < 0 {
		return Balance{}, ErrUnderflow
	}
	u, overflow := uint256.FromBig(b)
	if overflow {
		return Balance{}, ErrOverflow
	}
	return checked(*u)
}

func checked(v uint256.Int) (Balance, error) {
	if v.Gt(&maxBalance) {
		return Balance{}, ErrOverflow
	}
	return Balance{v: v}, nil
}

// Add returns b + o.
func (b Balance) Add(o Balance) (Balance, error) {
	var r uint256.Int
	if _, overflow := r.AddOverflow(&b.v, &o.v); overflow {
		return Balance{}, ErrOverflow
	}
	return checked(r)
}

// Sub returns b - o.
func (b Balance) Sub(o Balance) (Balance, error) {
	var r uint256.Int
	if _, underflow := r.SubOverflow(&b.v, &o.v); underflow {
		return Balance{}, ErrUnderflow
	}
	return Balance{v: r}, nil
}

// Mul returns b * o.
func (b Balance) Mul(o Balance) (Balance, error) {
	var r uint256.Int
	if _, overflow := r.MulOverflow(&b.v, &o.v); overflow {
		return Balance{}, ErrOverflow
	}
	return checked(r)
}

// MulUint64 returns b * n.
func (b Balance) MulUint64(n uint64) (Balance, error) {
	return b.Mul(NewBalance(n))
}

// Sum adds all values, failing on the first overflow.
func Sum(vals ...Balance) (Balance, error) {
	var total Balance
	for _, v := range vals {
		var err error
		if total, err = total.Add(v); err != nil {
			return Balance{}, err
		}
	}
	return total, nil
}

// Must unwraps the result of a checked operation on values known at compile
// time. It panics on error.
func Must(b Balance, err error) Balance {
	if err != nil {
		panic(err)
	}
	return b
}

// Cmp compares b and o and returns -1, 0 or +1.
func (b Balance) Cmp(o Balance) int {
	return b.v.Cmp(&o.v)
}

// IsZero reports whether the balance is zero.
func (b Balance) IsZero() bool {
	return b.v.IsZero()
}

// BigInt returns the balance as a new big integer.
func (b Balance) BigInt() *big.Int {
	return b.v.ToBig()
}

// String returns the base-10 representation.
func (b Balance) String() string {
	return b.v.ToBig().String()
}

// MarshalText encodes the balance as a decimal string so JSON consumers never
// see it as a lossy float.
func (b Balance) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Balance) UnmarshalText(input []byte) error {
	res, err := ParseBalance(string(input))
	if err != nil {
		return err
	}
	*b = res
	return nil
}

// EncodeRLP writes the balance as an RLP big integer.
func (b Balance) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, b.v.ToBig())
}

// DecodeRLP implements rlp.Decoder.
func (b *Balance) DecodeRLP(s *rlp.Stream) error {
	bi := new(big.Int)
	if err := s.Decode(bi); err != nil {
		return err
	}
	res, err := FromBig(bi)
	if err != nil {
		return err
	}
	*b = res
	return nil
}
