// Package keyring derives development identities from human readable seeds.
//
// Every derivation expands the seed with blake2b-256, keyed by the well-known
// development phrase and domain-separated by a per-scheme tag, so the same seed
// yields unrelated material for the account key and for each authority role:
//
//	digest = blake2b-256(key: blake2b-256(DevPhrase), tag || attempt || "//" || seed)
//
// Account ids are the blake2b-256 digest of the compressed secp256k1 account
// key. Consensus keys are secp256k1, finality and online keys are ed25519.
//
// The derived keys are public knowledge. They must only ever back development
// and local test networks.
package keyring

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"strings"
	"unicode/utf8"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/rony4d/go-edgeware-genesis/inter"
	"github.com/rony4d/go-edgeware-genesis/inter/validatorpk"
)

// DevPhrase is the publicly known development mnemonic all seeds hang off.
const DevPhrase = "bottom drive obey lake curtain smoke basket hold race lonely fit walk"

// StashSuffix is appended to a seed to derive the paired stash identity.
const StashSuffix = "//stash"

// ErrInvalidSeedEncoding is returned for seeds that are empty, not UTF-8 or
// contain an empty "//" junction.
var ErrInvalidSeedEncoding = errors.New("invalid seed encoding")

// Scheme tags. Changing one changes every derived identity.
type scheme uint32

const (
	schemeAccount scheme = iota + 1
	schemeConsensus
	schemeFinality
	schemeOnline
)

// maxAttempts bounds the retries for digests that are not valid secp256k1 scalars.
const maxAttempts = 256

var phraseKey = blake2b.Sum256([]byte(DevPhrase))

// CheckSeed validates a seed string.
func CheckSeed(seed string) error {
	if seed == "" {
		return errors.Wrap(ErrInvalidSeedEncoding, "empty seed")
	}
	if !utf8.ValidString(seed) {
		return errors.Wrapf(ErrInvalidSeedEncoding, "%q is not UTF-8", seed)
	}
	junctions := strings.Split(seed, "//")
	for _, j := range junctions[1:] {
		if j == "" {
			return errors.Wrapf(ErrInvalidSeedEncoding, "%q has an empty junction", seed)
		}
	}
	return nil
}

func expand(tag scheme, attempt uint32, seed string) [32]byte {
	h, err := blake2b.New256(phraseKey[:])
	if err != nil {
		// a 32 byte key is always accepted
		panic(err)
	}
	h.Write(bigendian.Uint32ToBytes(uint32(tag)))
	h.Write(bigendian.Uint32ToBytes(attempt))
	h.Write([]byte("//"))
	h.Write([]byte(seed))

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func secp256k1Key(tag scheme, seed string) (*ecdsa.PrivateKey, error) {
	if err := CheckSeed(seed); err != nil {
		return nil, err
	}
	for attempt := uint32(0); attempt < maxAttempts; attempt++ {
		digest := expand(tag, attempt, seed)
		if key, err := crypto.ToECDSA(digest[:]); err == nil {
			return key, nil
		}
	}
	return nil, errors.Errorf("no valid secp256k1 scalar for seed %q", seed)
}

func ed25519Key(tag scheme, seed string) (ed25519.PrivateKey, error) {
	if err := CheckSeed(seed); err != nil {
		return nil, err
	}
	digest := expand(tag, 0, seed)
	return ed25519.NewKeyFromSeed(digest[:]), nil
}

// AccountKey returns the account signing key for seed.
func AccountKey(seed string) (*ecdsa.PrivateKey, error) {
	return secp256k1Key(schemeAccount, seed)
}

// AccountID derives the account identifier of seed.
func AccountID(seed string) (inter.AccountID, error) {
	key, err := AccountKey(seed)
	if err != nil {
		return inter.AccountID{}, err
	}
	return PubkeyToAccountID(&key.PublicKey), nil
}

// PubkeyToAccountID hashes a compressed secp256k1 public key into an account id.
func PubkeyToAccountID(pub *ecdsa.PublicKey) inter.AccountID {
	return inter.AccountID(blake2b.Sum256(crypto.CompressPubkey(pub)))
}

// ConsensusKey derives the block production key of seed.
func ConsensusKey(seed string) (validatorpk.PubKey, error) {
	key, err := secp256k1Key(schemeConsensus, seed)
	if err != nil {
		return validatorpk.PubKey{}, err
	}
	return validatorpk.NewSecp256k1(crypto.CompressPubkey(&key.PublicKey)), nil
}

// FinalityKey derives the finality voting key of seed.
func FinalityKey(seed string) (validatorpk.PubKey, error) {
	return edPublic(schemeFinality, seed)
}

// OnlineKey derives the liveness attestation key of seed.
func OnlineKey(seed string) (validatorpk.PubKey, error) {
	return edPublic(schemeOnline, seed)
}

func edPublic(tag scheme, seed string) (validatorpk.PubKey, error) {
	key, err := ed25519Key(tag, seed)
	if err != nil {
		return validatorpk.PubKey{}, err
	}
	return validatorpk.NewEd25519(key.Public().(ed25519.PublicKey)), nil
}

// SessionKeys derives all authority keys of seed.
func SessionKeys(seed string) (inter.SessionKeys, error) {
	var (
		keys inter.SessionKeys
		err  error
	)
	if keys.Consensus, err = ConsensusKey(seed); err != nil {
		return inter.SessionKeys{}, err
	}
	if keys.Finality, err = FinalityKey(seed); err != nil {
		return inter.SessionKeys{}, err
	}
	if keys.Online, err = OnlineKey(seed); err != nil {
		return inter.SessionKeys{}, err
	}
	return keys, nil
}

// StashSeed returns the seed of the stash identity paired with seed.
func StashSeed(seed string) string {
	return seed + StashSuffix
}
