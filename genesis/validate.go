package genesis

import (
	"github.com/hashicorp/go-multierror"

	"github.com/rony4d/go-edgeware-genesis/inter"
	"github.com/rony4d/go-edgeware-genesis/utils/num"
)

// Validate checks the cross-module invariants of a snapshot and reports every
// violation, each as an *Error of kind ErrInvariantViolation. A nil result
// means the snapshot may be handed to the execution engine.
func Validate(s *Snapshot) error {
	v := validator{s: s}
	v.issuance()
	v.index()
	v.session()
	v.staking()
	v.vesting()
	v.params()
	return v.errs.ErrorOrNil()
}

type validator struct {
	s         *Snapshot
	errs      *multierror.Error
	effective map[inter.AccountID]num.Balance
	indexed   map[inter.AccountID]struct{}
}

func (v *validator) fail(reason error, format string, args ...interface{}) {
	v.errs = multierror.Append(v.errs, Invariant(reason, format, args...))
}

func (v *validator) funded(id inter.AccountID) bool {
	b, ok := v.effective[id]
	return ok && !b.IsZero()
}

func (v *validator) issuance() {
	if _, err := v.s.TotalIssuance(); err != nil {
		v.fail(ErrIssuanceOverflow, "total issuance")
	}
	effective, err := EffectiveBalances(v.s.Balances.Balances)
	if err != nil {
		v.errs = multierror.Append(v.errs, err)
		effective = map[inter.AccountID]num.Balance{}
	}
	v.effective = effective
}

// index checks that every referenced account is registered.
func (v *validator) index() {
	v.indexed = make(map[inter.AccountID]struct{}, len(v.s.Indices.IDs))
	for _, id := range v.s.Indices.IDs {
		v.indexed[id] = struct{}{}
	}

	check := func(where string, id inter.AccountID) {
		if _, ok := v.indexed[id]; !ok {
			v.fail(ErrAccountNotIndexed, "%s %s", where, id)
		}
	}
	s := v.s
	for _, e := range s.Balances.Balances {
		check("balance", e.Account)
	}
	for _, e := range s.Balances.Vesting {
		check("vesting", e.Account)
	}
	for _, e := range s.Session.Keys {
		check("session", e.Account)
	}
	for _, st := range s.Staking.Stakers {
		check("staker stash", st.Stash)
		check("staker controller", st.Controller)
	}
	for _, id := range s.Staking.Invulnerables {
		check("invulnerable", id)
	}
	for _, id := range s.Council.Members {
		check("council member", id)
	}
	for _, m := range s.Elections.Members {
		check("election member", m.Account)
	}
	check("sudo key", s.Sudo.Key)
	for _, id := range s.Identity.Verifiers {
		check("identity verifier", id)
	}
}

// session checks validator funding and authority key uniqueness.
func (v *validator) session() {
	stashes := make(map[inter.AccountID]int, len(v.s.Session.Keys))
	owners := make(map[string]int)

	for i, e := range v.s.Session.Keys {
		if j, ok := stashes[e.Account]; ok {
			v.fail(ErrDuplicateValidator, "session[%d] and session[%d]: %s", j, i, e.Account)
			continue
		}
		stashes[e.Account] = i

		if !v.funded(e.Account) {
			v.fail(ErrUnfundedValidator, "session %s", e.Account)
		}
		if err := e.Keys.Validate(); err != nil {
			v.errs = multierror.Append(v.errs, NewError(ErrInvariantViolation, ErrInvalidParameter, "session "+e.Account.String(), err))
		}
		for r, pk := range e.Keys.All() {
			k := pk.String()
			if j, ok := owners[k]; ok && j != i {
				v.fail(ErrDuplicateAuthorityKey, "%s key %s of %s already used by %s",
					inter.SessionKeyRoles[r], k, e.Account, v.s.Session.Keys[j].Account)
				continue
			}
			owners[k] = i
		}
	}

	for i, a := range v.s.Grandpa.Authorities {
		if a.Weight == 0 {
			v.fail(ErrInvalidParameter, "grandpa authority %d has zero weight", i)
		}
		if err := a.Key.Validate(); err != nil {
			v.errs = multierror.Append(v.errs, NewError(ErrInvariantViolation, ErrInvalidParameter, "grandpa authority "+a.Key.String(), err))
		}
	}
}

func (v *validator) staking() {
	stashes := make(map[inter.AccountID]struct{}, len(v.s.Staking.Stakers))
	for _, st := range v.s.Staking.Stakers {
		if st.Stash == st.Controller {
			v.fail(ErrStashIsController, "staker %s", st.Stash)
		}
		if _, ok := stashes[st.Stash]; ok {
			v.fail(ErrDuplicateValidator, "staker %s", st.Stash)
		}
		stashes[st.Stash] = struct{}{}

		if !v.funded(st.Stash) {
			v.fail(ErrUnfundedValidator, "staker stash %s", st.Stash)
		} else if st.Bond.Cmp(v.effective[st.Stash]) > 0 {
			v.fail(ErrBondExceedsBalance, "staker %s bonds %s of %s", st.Stash, st.Bond, v.effective[st.Stash])
		}
		if !v.funded(st.Controller) {
			v.fail(ErrUnfundedValidator, "staker controller %s", st.Controller)
		}
	}
}

// vesting checks every schedule against the account's summed balance.
func (v *validator) vesting() {
	for i, e := range v.s.Balances.Vesting {
		if e.Duration == 0 {
			v.fail(ErrZeroVestingDuration, "vesting[%d] %s", i, e.Account)
		}
		if !v.funded(e.Account) {
			v.fail(ErrUnfundedVesting, "vesting[%d] %s", i, e.Account)
			continue
		}
		if e.Locked.Cmp(v.effective[e.Account]) > 0 {
			v.fail(ErrVestingExceedsBalance, "vesting[%d] %s locks %s of %s", i, e.Account, e.Locked, v.effective[e.Account])
		}
	}
}

func (v *validator) params() {
	s := v.s
	if s.Staking.ValidatorCount == 0 {
		v.fail(ErrInvalidParameter, "staking validator count is zero")
	}
	if s.Staking.MinimumValidatorCount > s.Staking.ValidatorCount {
		v.fail(ErrInvalidParameter, "staking minimum validator count %d above %d",
			s.Staking.MinimumValidatorCount, s.Staking.ValidatorCount)
	}
	if s.Staking.SlashRewardFraction > inter.PerbillOne {
		v.fail(ErrInvalidParameter, "slash reward fraction %d above one", s.Staking.SlashRewardFraction)
	}
	if s.Elections.DesiredSeats == 0 {
		v.fail(ErrInvalidParameter, "elections desired seats is zero")
	}
	if s.Elections.PresentationDuration == 0 {
		v.fail(ErrInvalidParameter, "elections presentation duration is zero")
	}
	if s.Elections.TermDuration == 0 {
		v.fail(ErrInvalidParameter, "elections term duration is zero")
	}
	if s.Identity.ExpirationLength == 0 {
		v.fail(ErrInvalidParameter, "identity expiration length is zero")
	}
	if s.Signaling.VotingLength == 0 {
		v.fail(ErrInvalidParameter, "signaling voting length is zero")
	}
	if s.TreasuryReward.MintingInterval == 0 {
		v.fail(ErrInvalidParameter, "treasury minting interval is zero")
	}
	if s.Sudo.Key.IsZero() {
		v.fail(ErrInvalidParameter, "sudo key is unset")
	}
}
