package keyring

import (
	"github.com/rony4d/go-edgeware-genesis/inter"
)

// Authority is a derived validator identity: the stash comes from seed//stash,
// the controller and the session keys from seed itself.
type Authority struct {
	Seed       string
	Stash      inter.AccountID
	Controller inter.AccountID
	Keys       inter.SessionKeys
}

// NewAuthority derives the authority identity of seed.
func NewAuthority(seed string) (Authority, error) {
	stash, err := AccountID(StashSeed(seed))
	if err != nil {
		return Authority{}, err
	}
	controller, err := AccountID(seed)
	if err != nil {
		return Authority{}, err
	}
	keys, err := SessionKeys(seed)
	if err != nil {
		return Authority{}, err
	}
	return Authority{
		Seed:       seed,
		Stash:      stash,
		Controller: controller,
		Keys:       keys,
	}, nil
}

// Authorities derives one authority per seed, in order.
func Authorities(seeds ...string) ([]Authority, error) {
	out := make([]Authority, 0, len(seeds))
	for _, seed := range seeds {
		a, err := NewAuthority(seed)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// MustAuthorities is Authorities for seeds known to be valid. It panics on error.
func MustAuthorities(seeds ...string) []Authority {
	out, err := Authorities(seeds...)
	if err != nil {
		panic(err)
	}
	return out
}
