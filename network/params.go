package network

import (
	"encoding/json"

	"github.com/rony4d/go-edgeware-genesis/inter"
	"github.com/rony4d/go-edgeware-genesis/utils/num"
)

// Params describes the genesis parameters of one network profile.
// Balances are expressed in the smallest unit and durations in blocks.
type Params struct {
	Profile Profile

	// ChainName is the human readable chain name.
	ChainName string
	// ChainID is the machine readable chain identifier.
	ChainID string

	// EqualizeBalances replaces loaded allocation amounts with a constant by default.
	EqualizeBalances bool
	// AllocationValidators admits validator candidates from the allocation file.
	AllocationValidators bool

	Endowment EndowmentParams
	Staking   StakingParams
	Elections ElectionsParams
	Contracts ContractsParams
	Identity  IdentityParams
	Signaling SignalingParams
	Treasury  TreasuryParams
}

// EndowmentParams are the uniform credits of the derived-key profiles.
type EndowmentParams struct {
	// Amount credited to every extra account, stash and controller.
	Amount num.Balance
	// Staked is the bond of every derived validator.
	Staked num.Balance
	// ExtraAccounts are seeds of funded accounts that are not authorities.
	ExtraAccounts []string
}

// StakingParams configures the staking module.
type StakingParams struct {
	ValidatorCount        uint32
	MinimumValidatorCount uint32
	SlashRewardFraction   inter.Perbill
	// InvulnerableAuthorities marks every initial validator as invulnerable.
	InvulnerableAuthorities bool
	// BondReserve is kept liquid on fixture stashes: bond = stake - BondReserve.
	BondReserve num.Balance
}

// ElectionsParams configures council elections.
type ElectionsParams struct {
	// DesiredSeats is a fixed seat count, or an addend to the authority count
	// when SeatsPerAuthority is set.
	DesiredSeats         uint32
	SeatsPerAuthority    bool
	PresentationDuration inter.BlockNumber
	TermDuration         inter.BlockNumber
	// MemberTerm is the term of the genesis council members.
	MemberTerm inter.BlockNumber
}

// ContractsParams configures the contracts module.
type ContractsParams struct {
	GasPrice num.Balance
}

// IdentityParams configures identity attestations.
type IdentityParams struct {
	ExpirationLength inter.BlockNumber
	RegistrationBond num.Balance
}

// SignalingParams configures signaling proposals.
type SignalingParams struct {
	VotingLength         inter.BlockNumber
	ProposalCreationBond num.Balance
}

// TreasuryParams configures the recurring treasury payout.
type TreasuryParams struct {
	CurrentPayout   num.Balance
	MintingInterval inter.BlockNumber
}

// DevelopmentExtraAccounts are funded on derived-key profiles.
var DevelopmentExtraAccounts = []string{"Aaron", "Abigail", "Adam", "Alan", "Albert", "Alex"}

// ParamsFor returns the parameters of p. Unknown profiles yield ok == false.
func ParamsFor(p Profile) (params Params, ok bool) {
	switch p {
	case Development:
		return DevelopmentParams(), true
	case LocalTestnet:
		return LocalTestnetParams(), true
	case PublicTestnet:
		return TestnetParams(), true
	case PublicMainnet:
		return MainnetParams(), true
	default:
		return Params{}, false
	}
}

// DevelopmentParams returns the single-authority development chain parameters.
// Timers are short and every authority is invulnerable.
func DevelopmentParams() Params {
	return Params{
		Profile:   Development,
		ChainName: "Development",
		ChainID:   "dev",
		Endowment: DefaultEndowmentParams(),
		Staking: StakingParams{
			ValidatorCount:          7,
			MinimumValidatorCount:   4,
			SlashRewardFraction:     inter.PerbillFromPercent(10),
			InvulnerableAuthorities: true,
		},
		Elections: ElectionsParams{
			DesiredSeats:         2, // on top of the authorities
			SeatsPerAuthority:    true,
			PresentationDuration: 1 * Days,
			TermDuration:         28 * Days,
			MemberTerm:           1_000_000,
		},
		Contracts: DefaultContractsParams(),
		Identity: IdentityParams{
			ExpirationLength: 1 * Days,
			RegistrationBond: Dollars(1),
		},
		Signaling: SignalingParams{
			VotingLength:         3 * Days,
			ProposalCreationBond: Dollars(100),
		},
		Treasury: TreasuryParams{
			CurrentPayout:   Dollars(158),
			MintingInterval: 1,
		},
	}
}

// LocalTestnetParams returns the multi-authority local chain parameters.
// They match DevelopmentParams apart from the chain identity.
func LocalTestnetParams() Params {
	p := DevelopmentParams()
	p.Profile = LocalTestnet
	p.ChainName = "Local Testnet"
	p.ChainID = "local_testnet"
	return p
}

// TestnetParams returns the public testnet parameters.
// Allocation amounts are equalized by default.
func TestnetParams() Params {
	return Params{
		Profile:          PublicTestnet,
		ChainName:        "Edgeware Testnet",
		ChainID:          "edgeware-testnet",
		EqualizeBalances: true,
		Staking:          DefaultPublicStakingParams(),
		Elections: ElectionsParams{
			DesiredSeats:         4,
			PresentationDuration: 1 * Days,
			TermDuration:         30 * Days,
			MemberTerm:           6 * 28 * Days,
		},
		Contracts: DefaultContractsParams(),
		Identity:  DefaultPublicIdentityParams(),
		Signaling: DefaultPublicSignalingParams(),
		Treasury:  DefaultPublicTreasuryParams(),
	}
}

// MainnetParams returns the public mainnet parameters.
// Validator candidates from the allocation file join the fixture validators.
func MainnetParams() Params {
	return Params{
		Profile:              PublicMainnet,
		ChainName:            "Edgeware",
		ChainID:              "edgeware",
		AllocationValidators: true,
		Staking:              DefaultPublicStakingParams(),
		Elections: ElectionsParams{
			DesiredSeats:         11,
			PresentationDuration: 3 * Days,
			TermDuration:         180 * Days,
			MemberTerm:           6 * 28 * Days,
		},
		Contracts: DefaultContractsParams(),
		Identity:  DefaultPublicIdentityParams(),
		Signaling: DefaultPublicSignalingParams(),
		Treasury:  DefaultPublicTreasuryParams(),
	}
}

// DefaultEndowmentParams returns the derived-key profile endowments.
func DefaultEndowmentParams() EndowmentParams {
	return EndowmentParams{
		Amount:        Dollars(10_000_000),
		Staked:        Dollars(9_000_000),
		ExtraAccounts: append([]string(nil), DevelopmentExtraAccounts...),
	}
}

// DefaultPublicStakingParams returns the staking parameters shared by public networks.
func DefaultPublicStakingParams() StakingParams {
	return StakingParams{
		ValidatorCount:        60,
		MinimumValidatorCount: 0,
		SlashRewardFraction:   inter.PerbillFromPercent(0),
		BondReserve:           Dollars(10),
	}
}

// DefaultContractsParams returns the contracts parameters shared by all profiles.
func DefaultContractsParams() ContractsParams {
	return ContractsParams{
		GasPrice: Millicents(1),
	}
}

// DefaultPublicIdentityParams returns the identity parameters of public networks.
func DefaultPublicIdentityParams() IdentityParams {
	return IdentityParams{
		ExpirationLength: 7 * Days,
		RegistrationBond: Dollars(1),
	}
}

// DefaultPublicSignalingParams returns the signaling parameters of public networks.
func DefaultPublicSignalingParams() SignalingParams {
	return SignalingParams{
		VotingLength:         14 * Days,
		ProposalCreationBond: Dollars(100),
	}
}

// DefaultPublicTreasuryParams returns the treasury parameters of public networks.
func DefaultPublicTreasuryParams() TreasuryParams {
	return TreasuryParams{
		CurrentPayout:   Dollars(95),
		MintingInterval: 1,
	}
}

// Copy returns a deep copy of the params.
func (p Params) Copy() Params {
	cp := p
	cp.Endowment.ExtraAccounts = append([]string(nil), p.Endowment.ExtraAccounts...)
	return cp
}

// String returns the params as JSON.
func (p Params) String() string {
	b, _ := json.Marshal(&p)
	return string(b)
}
