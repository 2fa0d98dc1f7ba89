// Package network defines the network profiles a genesis can be built for and
// the consensus-critical parameters attached to each of them.
//
// This package provides:
//   - The Profile tag (Development, LocalTestnet, PublicTestnet, PublicMainnet)
//   - Currency units expressed in the ledger's smallest unit
//   - Block-time based duration units
//   - Params per profile: staking, elections, identity, signaling, treasury
//   - Display properties that accompany the chain spec
package network

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownProfile is returned by ParseProfile for unrecognized names.
var ErrUnknownProfile = errors.New("unknown network profile")

// Profile selects which data sources feed the genesis and which parameters apply.
// The zero value is not a valid profile.
type Profile uint8

const (
	// Development is a single-authority chain with derived keys.
	Development Profile = iota + 1
	// LocalTestnet is a multi-authority local chain with derived keys.
	LocalTestnet
	// PublicTestnet uses built-in fixtures and an equalized allocation file.
	PublicTestnet
	// PublicMainnet uses built-in fixtures and the allocation file as is.
	PublicMainnet
)

// Profiles lists every valid profile in declaration order.
var Profiles = []Profile{Development, LocalTestnet, PublicTestnet, PublicMainnet}

var profileNames = map[Profile]string{
	Development:   "dev",
	LocalTestnet:  "local",
	PublicTestnet: "testnet",
	PublicMainnet: "mainnet",
}

// ParseProfile accepts the canonical profile names and their common aliases.
func ParseProfile(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dev", "development":
		return Development, nil
	case "local", "local_testnet", "local-testnet":
		return LocalTestnet, nil
	case "testnet", "edgeware-testnet", "edgeware_testnet":
		return PublicTestnet, nil
	case "mainnet", "edgeware", "edgeware-mainnet":
		return PublicMainnet, nil
	default:
		return 0, errors.Wrapf(ErrUnknownProfile, "%q", name)
	}
}

// String returns the canonical name.
func (p Profile) String() string {
	if name, ok := profileNames[p]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether p is one of Profiles.
func (p Profile) Valid() bool {
	_, ok := profileNames[p]
	return ok
}

// IsPublic reports whether the profile is built from fixtures rather than derived keys.
func (p Profile) IsPublic() bool {
	return p == PublicTestnet || p == PublicMainnet
}

// MarshalText implements encoding.TextMarshaler.
func (p Profile) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, errors.Wrapf(ErrUnknownProfile, "%d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Profile) UnmarshalText(input []byte) error {
	res, err := ParseProfile(string(input))
	if err != nil {
		return err
	}
	*p = res
	return nil
}
