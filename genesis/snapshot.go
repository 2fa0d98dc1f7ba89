// Package genesis defines the genesis snapshot: the complete ledger state at
// block height zero, grouped by the runtime module that consumes it.
//
// A Snapshot is built once by the assembler, validated, and never mutated
// afterwards, so it can be shared read-only between goroutines. Its canonical
// form is the RLP encoding of the struct; Hash digests that encoding, and the
// JSON form round-trips to the same hash.
package genesis

import (
	"crypto/sha256"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/rony4d/go-edgeware-genesis/inter"
	"github.com/rony4d/go-edgeware-genesis/inter/validatorpk"
	"github.com/rony4d/go-edgeware-genesis/utils/num"
)

// Snapshot is the aggregate genesis state. Field order is part of the
// canonical encoding.
type Snapshot struct {
	Balances       BalancesConfig       `json:"balances"`
	Indices        IndicesConfig        `json:"indices"`
	Session        SessionConfig        `json:"session"`
	Grandpa        GrandpaConfig        `json:"grandpa"`
	Staking        StakingConfig        `json:"staking"`
	Democracy      DemocracyConfig      `json:"democracy"`
	Council        CouncilConfig        `json:"council"`
	Elections      ElectionsConfig      `json:"elections"`
	Contracts      ContractsConfig      `json:"contracts"`
	Sudo           SudoConfig           `json:"sudo"`
	Identity       IdentityConfig       `json:"identity"`
	Signaling      SignalingConfig      `json:"signaling"`
	TreasuryReward TreasuryRewardConfig `json:"treasuryReward"`
}

// BalancesConfig holds every credit and vesting schedule. An account may be
// credited several times; its balance is the sum.
type BalancesConfig struct {
	Balances []inter.AllocationEntry `json:"balances"`
	Vesting  []inter.VestingEntry    `json:"vesting"`
}

// IndicesConfig lists the accounts registered for short index addressing.
// Duplicates are allowed and registered once.
type IndicesConfig struct {
	IDs []inter.AccountID `json:"ids"`
}

// SessionKeyEntry binds session keys to a validator stash.
type SessionKeyEntry struct {
	Account inter.AccountID   `json:"account"`
	Keys    inter.SessionKeys `json:"keys"`
}

// SessionConfig holds the session keys of the genesis validators.
type SessionConfig struct {
	Keys []SessionKeyEntry `json:"keys"`
}

// GrandpaAuthority is a weighted finality voter.
type GrandpaAuthority struct {
	Key    validatorpk.PubKey `json:"key"`
	Weight uint64             `json:"weight"`
}

// GrandpaConfig is the genesis finality authority set.
type GrandpaConfig struct {
	Authorities []GrandpaAuthority `json:"authorities"`
}

// Staker is a genesis bond.
type Staker struct {
	Stash      inter.AccountID    `json:"stash"`
	Controller inter.AccountID    `json:"controller"`
	Bond       num.Balance        `json:"bond"`
	Status     inter.StakerStatus `json:"status"`
}

// StakingConfig configures the staking module.
type StakingConfig struct {
	CurrentEra            uint32            `json:"currentEra"`
	ValidatorCount        uint32            `json:"validatorCount"`
	MinimumValidatorCount uint32            `json:"minimumValidatorCount"`
	Stakers               []Staker          `json:"stakers"`
	Invulnerables         []inter.AccountID `json:"invulnerables"`
	SlashRewardFraction   inter.Perbill     `json:"slashRewardFraction"`
}

// DemocracyConfig starts democracy with its runtime defaults.
type DemocracyConfig struct{}

// CouncilConfig lists the genesis council.
type CouncilConfig struct {
	Members []inter.AccountID `json:"members"`
}

// ElectionMember is a seated council member and the block its term ends.
type ElectionMember struct {
	Account inter.AccountID   `json:"account"`
	Term    inter.BlockNumber `json:"term"`
}

// ElectionsConfig configures council elections.
type ElectionsConfig struct {
	Members              []ElectionMember  `json:"members"`
	DesiredSeats         uint32            `json:"desiredSeats"`
	PresentationDuration inter.BlockNumber `json:"presentationDuration"`
	TermDuration         inter.BlockNumber `json:"termDuration"`
}

// ContractsConfig configures the contracts module.
type ContractsConfig struct {
	GasPrice num.Balance `json:"gasPrice"`
}

// SudoConfig names the superuser.
type SudoConfig struct {
	Key inter.AccountID `json:"key"`
}

// IdentityConfig configures identity attestation.
type IdentityConfig struct {
	Verifiers        []inter.AccountID `json:"verifiers"`
	ExpirationLength inter.BlockNumber `json:"expirationLength"`
	RegistrationBond num.Balance       `json:"registrationBond"`
}

// SignalingConfig configures signaling proposals.
type SignalingConfig struct {
	VotingLength         inter.BlockNumber `json:"votingLength"`
	ProposalCreationBond num.Balance       `json:"proposalCreationBond"`
}

// TreasuryRewardConfig configures the recurring treasury payout.
type TreasuryRewardConfig struct {
	CurrentPayout   num.Balance       `json:"currentPayout"`
	MintingInterval inter.BlockNumber `json:"mintingInterval"`
}

// Bytes returns the canonical RLP encoding.
func (s *Snapshot) Bytes() ([]byte, error) {
	return rlp.EncodeToBytes(s)
}

// Hash returns the sha256 digest of the canonical encoding.
func (s *Snapshot) Hash() hash.Hash {
	hasher := sha256.New()
	err := rlp.Encode(hasher, s)
	if err != nil {
		panic("can't hash: " + err.Error())
	}
	return hash.BytesToHash(hasher.Sum(nil))
}

// DecodeSnapshot parses a canonical encoding.
func DecodeSnapshot(b []byte) (*Snapshot, error) {
	s := new(Snapshot)
	if err := rlp.DecodeBytes(b, s); err != nil {
		return nil, err
	}
	return s, nil
}

// TotalIssuance sums every balance entry.
func (s *Snapshot) TotalIssuance() (num.Balance, error) {
	var total num.Balance
	for _, e := range s.Balances.Balances {
		var err error
		if total, err = total.Add(e.Balance); err != nil {
			return num.Balance{}, err
		}
	}
	return total, nil
}

// Validators returns the session validator stashes in session order.
func (s *Snapshot) Validators() []inter.AccountID {
	out := make([]inter.AccountID, len(s.Session.Keys))
	for i, k := range s.Session.Keys {
		out[i] = k.Account
	}
	return out
}

// EffectiveBalances sums entries per account.
func EffectiveBalances(entries []inter.AllocationEntry) (map[inter.AccountID]num.Balance, error) {
	out := make(map[inter.AccountID]num.Balance, len(entries))
	for _, e := range entries {
		sum, err := out[e.Account].Add(e.Balance)
		if err != nil {
			return nil, Invariant(ErrIssuanceOverflow, "balance of %s", e.Account)
		}
		out[e.Account] = sum
	}
	return out, nil
}
