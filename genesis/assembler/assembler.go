// Package assembler builds the genesis snapshot of a network profile.
//
// Derived-key profiles (Development, LocalTestnet) credit a fixed set of
// authorities and extra accounts with a uniform endowment. Public profiles
// (PublicTestnet, PublicMainnet) merge the built-in community allocation,
// fixture validator credits and the participant allocation file. Either way
// the finished snapshot is validated before it is returned; on any error no
// snapshot is returned at all.
package assembler

import (
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/Fantom-foundation/lachesis-base/inter/pos"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-edgeware-genesis/genesis"
	"github.com/rony4d/go-edgeware-genesis/genesis/allocation"
	"github.com/rony4d/go-edgeware-genesis/genesis/fixtures"
	"github.com/rony4d/go-edgeware-genesis/genesis/keyring"
	"github.com/rony4d/go-edgeware-genesis/inter"
	"github.com/rony4d/go-edgeware-genesis/network"
	"github.com/rony4d/go-edgeware-genesis/utils/num"
)

// Config holds the inputs shared by every build.
type Config struct {
	// AllocationPath is the participant allocation file. Empty means allocation.DefaultPath.
	AllocationPath string
	// EqualizedBalance overrides allocation.DefaultEqualizedBalance when non-zero.
	EqualizedBalance num.Balance
}

// Request selects what to build.
type Request struct {
	Profile network.Profile
	// Authorities are the initial validators of derived-key profiles.
	Authorities []keyring.Authority
	// Equalize overrides the profile's equalization default when set.
	Equalize *bool
}

// Assembler builds genesis snapshots from an immutable fixture table.
type Assembler struct {
	table *fixtures.Table
	cfg   Config
	log   logrus.FieldLogger
}

// New returns an assembler. A nil logger means the standard logrus logger.
func New(table *fixtures.Table, cfg Config, logger logrus.FieldLogger) *Assembler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Assembler{
		table: table,
		cfg:   cfg,
		log:   logger,
	}
}

// Build assembles and validates the snapshot of req.Profile.
func (a *Assembler) Build(req Request) (*genesis.Snapshot, error) {
	params, ok := network.ParamsFor(req.Profile)
	if !ok {
		return nil, genesis.NewError(genesis.ErrConfiguration, network.ErrUnknownProfile,
			fmt.Sprintf("profile %d", uint8(req.Profile)), nil)
	}

	var (
		s   *genesis.Snapshot
		err error
	)
	switch req.Profile {
	case network.Development, network.LocalTestnet:
		s, err = a.buildDerived(params, req.Authorities)
	case network.PublicTestnet, network.PublicMainnet:
		s, err = a.buildPublic(params, req.Equalize)
	default:
		return nil, genesis.Configuration(network.ErrUnknownProfile, req.Profile.String())
	}
	if err != nil {
		return nil, err
	}

	if err := genesis.Validate(s); err != nil {
		return nil, err
	}

	issuance, _ := s.TotalIssuance()
	a.log.WithFields(logrus.Fields{
		"profile":    req.Profile,
		"validators": len(s.Session.Keys),
		"accounts":   len(s.Indices.IDs),
		"vesting":    len(s.Balances.Vesting),
		"issuance":   issuance.String(),
		"hash":       s.Hash().Hex(),
	}).Info("Assembled genesis snapshot")

	return s, nil
}

// buildDerived assembles the development and local testnet genesis.
func (a *Assembler) buildDerived(params network.Params, auths []keyring.Authority) (*genesis.Snapshot, error) {
	if len(auths) == 0 {
		return nil, genesis.Configuration(nil, fmt.Sprintf("%s profile needs at least one authority", params.Profile))
	}

	extras := make([]inter.AccountID, 0, len(params.Endowment.ExtraAccounts))
	for _, seed := range params.Endowment.ExtraAccounts {
		id, err := keyring.AccountID(seed)
		if err != nil {
			return nil, genesis.NewError(genesis.ErrConfiguration, nil, "extra account "+seed, err)
		}
		extras = append(extras, id)
	}

	validators := make([]inter.ValidatorRecord, len(auths))
	stashes := make([]inter.AccountID, len(auths))
	controllers := make([]inter.AccountID, len(auths))
	for i, au := range auths {
		validators[i] = inter.ValidatorRecord{
			Stash:      au.Stash,
			Controller: au.Controller,
			Keys:       copyKeys(au.Keys),
			Stake:      params.Endowment.Staked,
		}
		stashes[i], controllers[i] = au.Stash, au.Controller
	}

	amount := params.Endowment.Amount
	ledger, err := allocation.Merge(
		allocation.Uniform("extra", extras, amount),
		allocation.Uniform("stash", stashes, amount),
		allocation.Uniform("controller", controllers, amount),
	)
	if err != nil {
		return nil, err
	}
	root := auths[0].Stash
	verifiers := []inter.AccountID{auths[0].Controller}
	ledger.EnsureIndexed(root)
	ledger.EnsureIndexed(verifiers...)

	stakers := make([]genesis.Staker, len(validators))
	for i, v := range validators {
		stakers[i] = genesis.Staker{
			Stash:      v.Stash,
			Controller: v.Controller,
			Bond:       v.Stake,
			Status:     inter.StakerValidator,
		}
	}
	invulnerables := []inter.AccountID{}
	if params.Staking.InvulnerableAuthorities {
		invulnerables = append(invulnerables, stashes...)
	}

	s := &genesis.Snapshot{
		Balances: genesis.BalancesConfig{
			Balances: ledger.Balances,
			Vesting:  []inter.VestingEntry{},
		},
		Indices:   genesis.IndicesConfig{IDs: ledger.Index},
		Session:   sessionConfig(validators),
		Grandpa:   finalityAuthorities(validators),
		Staking:   stakingConfig(params.Staking, stakers, invulnerables),
		Council:   genesis.CouncilConfig{Members: append([]inter.AccountID{}, controllers...)},
		Elections: electionsConfig(params.Elections, controllers, seats(params.Elections, len(auths))),
		Sudo:      genesis.SudoConfig{Key: root},
	}
	fillModuleParams(s, params, verifiers)
	return s, nil
}

// buildPublic assembles the public testnet and mainnet genesis.
func (a *Assembler) buildPublic(params network.Params, equalize *bool) (*genesis.Snapshot, error) {
	if a.table == nil {
		return nil, genesis.Configuration(nil, "no fixture table")
	}
	fixture, err := a.table.For(params.Profile)
	if err != nil {
		return nil, err
	}

	loader := allocation.Loader{
		Path:             a.cfg.AllocationPath,
		Equalize:         params.EqualizeBalances,
		EqualizedBalance: a.cfg.EqualizedBalance,
		Log:              a.log,
	}
	if equalize != nil {
		loader.Equalize = *equalize
	}
	alloc, err := loader.Load()
	if err != nil {
		return nil, err
	}

	credited := fixture.Validators
	validators := make([]inter.ValidatorRecord, 0, len(credited)+len(alloc.Validators))
	for _, v := range credited {
		v.Keys = copyKeys(v.Keys)
		validators = append(validators, v)
	}
	if params.AllocationValidators {
		validators = append(validators, alloc.Validators...)
	} else if len(alloc.Validators) != 0 {
		a.log.WithField("count", len(alloc.Validators)).Debug("Ignoring allocation file validators")
	}

	stashCredits := make([]inter.AllocationEntry, len(credited))
	controllers := make([]inter.AccountID, len(credited))
	for i, v := range credited {
		stashCredits[i] = inter.AllocationEntry{Account: v.Stash, Balance: v.Stake}
		controllers[i] = v.Controller
	}

	ledger, err := allocation.Merge(
		allocation.Source{Name: "community", Entries: fixture.CommunityAllocation},
		allocation.Source{Name: "stash", Entries: stashCredits},
		allocation.Uniform("controller", controllers, fixture.ControllerEndowment),
		allocation.Source{Name: "participant", Entries: alloc.Balances},
	)
	if err != nil {
		return nil, err
	}
	for _, v := range validators {
		ledger.EnsureIndexed(v.Stash, v.Controller)
	}
	ledger.EnsureIndexed(fixture.RootKey)
	ledger.EnsureIndexed(fixture.IdentityVerifiers...)
	ledger.EnsureIndexed(fixture.ElectionMembers...)

	stakers := make([]genesis.Staker, len(validators))
	for i, v := range validators {
		// keep some balance liquid on every stash
		bond, err := v.Stake.Sub(params.Staking.BondReserve)
		if err != nil {
			return nil, genesis.NewError(genesis.ErrInvariantViolation, genesis.ErrInvalidParameter,
				fmt.Sprintf("stake of %s is below the %s bond reserve", v.Stash, params.Staking.BondReserve), err)
		}
		stakers[i] = genesis.Staker{
			Stash:      v.Stash,
			Controller: v.Controller,
			Bond:       bond,
			Status:     inter.StakerValidator,
		}
	}

	members := append([]inter.AccountID{}, fixture.ElectionMembers...)
	s := &genesis.Snapshot{
		Balances: genesis.BalancesConfig{
			Balances: ledger.Balances,
			Vesting:  append([]inter.VestingEntry{}, alloc.Vesting...),
		},
		Indices:   genesis.IndicesConfig{IDs: ledger.Index},
		Session:   sessionConfig(validators),
		Grandpa:   finalityAuthorities(validators),
		Staking:   stakingConfig(params.Staking, stakers, []inter.AccountID{}),
		Council:   genesis.CouncilConfig{Members: members},
		Elections: electionsConfig(params.Elections, members, seats(params.Elections, len(validators))),
		Sudo:      genesis.SudoConfig{Key: fixture.RootKey},
	}
	fillModuleParams(s, params, append([]inter.AccountID{}, fixture.IdentityVerifiers...))
	return s, nil
}

func copyKeys(k inter.SessionKeys) inter.SessionKeys {
	return inter.SessionKeys{
		Consensus: k.Consensus.Copy(),
		Finality:  k.Finality.Copy(),
		Online:    k.Online.Copy(),
	}
}

func sessionConfig(validators []inter.ValidatorRecord) genesis.SessionConfig {
	keys := make([]genesis.SessionKeyEntry, len(validators))
	for i, v := range validators {
		keys[i] = genesis.SessionKeyEntry{Account: v.Stash, Keys: v.Keys}
	}
	return genesis.SessionConfig{Keys: keys}
}

// finalityAuthorities gives every validator an equal finality weight, ordered
// by validator id.
func finalityAuthorities(validators []inter.ValidatorRecord) genesis.GrandpaConfig {
	builder := pos.NewBuilder()
	for i := range validators {
		builder.Set(idx.ValidatorID(i+1), 1)
	}
	vv := builder.Build()

	authorities := make([]genesis.GrandpaAuthority, 0, len(validators))
	for _, id := range vv.SortedIDs() {
		authorities = append(authorities, genesis.GrandpaAuthority{
			Key:    validators[id-1].Keys.Finality.Copy(),
			Weight: uint64(vv.Get(id)),
		})
	}
	return genesis.GrandpaConfig{Authorities: authorities}
}

func stakingConfig(p network.StakingParams, stakers []genesis.Staker, invulnerables []inter.AccountID) genesis.StakingConfig {
	return genesis.StakingConfig{
		CurrentEra:            0,
		ValidatorCount:        p.ValidatorCount,
		MinimumValidatorCount: p.MinimumValidatorCount,
		Stakers:               stakers,
		Invulnerables:         invulnerables,
		SlashRewardFraction:   p.SlashRewardFraction,
	}
}

func seats(p network.ElectionsParams, authorities int) uint32 {
	if p.SeatsPerAuthority {
		return uint32(authorities) + p.DesiredSeats
	}
	return p.DesiredSeats
}

func electionsConfig(p network.ElectionsParams, members []inter.AccountID, desiredSeats uint32) genesis.ElectionsConfig {
	out := make([]genesis.ElectionMember, len(members))
	for i, m := range members {
		out[i] = genesis.ElectionMember{Account: m, Term: p.MemberTerm}
	}
	return genesis.ElectionsConfig{
		Members:              out,
		DesiredSeats:         desiredSeats,
		PresentationDuration: p.PresentationDuration,
		TermDuration:         p.TermDuration,
	}
}

// fillModuleParams sets the modules that only carry profile parameters.
func fillModuleParams(s *genesis.Snapshot, params network.Params, verifiers []inter.AccountID) {
	s.Contracts = genesis.ContractsConfig{GasPrice: params.Contracts.GasPrice}
	s.Identity = genesis.IdentityConfig{
		Verifiers:        verifiers,
		ExpirationLength: params.Identity.ExpirationLength,
		RegistrationBond: params.Identity.RegistrationBond,
	}
	s.Signaling = genesis.SignalingConfig{
		VotingLength:         params.Signaling.VotingLength,
		ProposalCreationBond: params.Signaling.ProposalCreationBond,
	}
	s.TreasuryReward = genesis.TreasuryRewardConfig{
		CurrentPayout:   params.Treasury.CurrentPayout,
		MintingInterval: params.Treasury.MintingInterval,
	}
}
