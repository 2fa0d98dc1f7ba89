// Package fixtures holds the built-in data of the public networks: validator
// sets, root keys, identity verifiers, council members, bootnodes and the
// community allocation.
//
// The data is embedded in the binary and parsed into an immutable Table that
// is passed explicitly to the assembler. Nothing in this package is mutable
// package state.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/rony4d/go-edgeware-genesis/genesis"
	"github.com/rony4d/go-edgeware-genesis/inter"
	"github.com/rony4d/go-edgeware-genesis/inter/validatorpk"
	"github.com/rony4d/go-edgeware-genesis/network"
	"github.com/rony4d/go-edgeware-genesis/utils/num"
)

var (
	//go:embed testnet.json
	testnetJSON []byte
	//go:embed mainnet.json
	mainnetJSON []byte
)

// Fixture is the built-in data of one public network. It must not be modified.
type Fixture struct {
	RootKey             inter.AccountID
	IdentityVerifiers   []inter.AccountID
	ElectionMembers     []inter.AccountID
	Bootnodes           []string
	ControllerEndowment num.Balance
	CommunityAllocation []inter.AllocationEntry
	Validators          []inter.ValidatorRecord
}

// Table holds the fixtures of every public network.
type Table struct {
	Testnet *Fixture
	Mainnet *Fixture
}

// Builtin parses the embedded fixtures.
func Builtin() (*Table, error) {
	testnet, err := Parse("testnet", testnetJSON)
	if err != nil {
		return nil, err
	}
	mainnet, err := Parse("mainnet", mainnetJSON)
	if err != nil {
		return nil, err
	}
	return &Table{Testnet: testnet, Mainnet: mainnet}, nil
}

// MustBuiltin is Builtin for callers that treat broken embedded data as a build defect.
func MustBuiltin() *Table {
	t, err := Builtin()
	if err != nil {
		panic(err)
	}
	return t
}

// For returns the fixture of a public profile.
func (t *Table) For(p network.Profile) (*Fixture, error) {
	if t == nil {
		return nil, genesis.Configuration(nil, "no fixture table")
	}
	var f *Fixture
	switch p {
	case network.PublicTestnet:
		f = t.Testnet
	case network.PublicMainnet:
		f = t.Mainnet
	default:
		return nil, genesis.Configuration(nil, fmt.Sprintf("no fixture for profile %s", p))
	}
	if f == nil {
		return nil, genesis.Configuration(nil, fmt.Sprintf("fixture for profile %s is missing", p))
	}
	return f, nil
}

type rawValidator struct {
	Stash        string `json:"stash"`
	Controller   string `json:"controller"`
	ConsensusKey string `json:"consensusKey"`
	FinalityKey  string `json:"finalityKey"`
	OnlineKey    string `json:"onlineKey"`
	Stake        string `json:"stake"`
}

type rawFixture struct {
	RootKey             string         `json:"rootKey"`
	IdentityVerifiers   []string       `json:"identityVerifiers"`
	ElectionMembers     []string       `json:"electionMembers"`
	Bootnodes           []string       `json:"bootnodes"`
	ControllerEndowment string         `json:"controllerEndowment"`
	CommunityAllocation [][2]string    `json:"communityAllocation"`
	Validators          []rawValidator `json:"validators"`
}

// Parse decodes one fixture document. Every failure is a genesis.ErrConfiguration.
func Parse(name string, data []byte) (*Fixture, error) {
	fail := func(field string, err error) error {
		return genesis.NewError(genesis.ErrConfiguration, nil, name+" fixture: "+field, err)
	}

	var raw rawFixture
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fail("document", err)
	}
	if raw.RootKey == "" {
		return nil, fail("rootKey", errors.New("missing root key"))
	}
	if len(raw.Validators) == 0 {
		return nil, fail("validators", errors.New("no validators"))
	}

	var (
		f   Fixture
		err error
	)
	if f.RootKey, err = inter.HexToAccountID(raw.RootKey); err != nil {
		return nil, fail("rootKey", err)
	}
	if f.IdentityVerifiers, err = accounts(raw.IdentityVerifiers); err != nil {
		return nil, fail("identityVerifiers", err)
	}
	if f.ElectionMembers, err = accounts(raw.ElectionMembers); err != nil {
		return nil, fail("electionMembers", err)
	}
	f.Bootnodes = append([]string{}, raw.Bootnodes...)
	if f.ControllerEndowment, err = num.ParseBalance(raw.ControllerEndowment); err != nil {
		return nil, fail("controllerEndowment", err)
	}

	f.CommunityAllocation = make([]inter.AllocationEntry, 0, len(raw.CommunityAllocation))
	for i, rec := range raw.CommunityAllocation {
		var e inter.AllocationEntry
		if e.Account, err = inter.HexToAccountID(rec[0]); err != nil {
			return nil, fail(fmt.Sprintf("communityAllocation[%d]", i), err)
		}
		if e.Balance, err = num.ParseBalance(rec[1]); err != nil {
			return nil, fail(fmt.Sprintf("communityAllocation[%d]", i), err)
		}
		f.CommunityAllocation = append(f.CommunityAllocation, e)
	}

	f.Validators = make([]inter.ValidatorRecord, 0, len(raw.Validators))
	for i, rv := range raw.Validators {
		v, err := rv.decode()
		if err != nil {
			return nil, fail(fmt.Sprintf("validators[%d]", i), err)
		}
		f.Validators = append(f.Validators, v)
	}
	return &f, nil
}

func (rv rawValidator) decode() (inter.ValidatorRecord, error) {
	var (
		v   inter.ValidatorRecord
		err error
	)
	if v.Stash, err = inter.HexToAccountID(rv.Stash); err != nil {
		return v, errors.Wrap(err, "stash")
	}
	if v.Controller, err = inter.HexToAccountID(rv.Controller); err != nil {
		return v, errors.Wrap(err, "controller")
	}
	if v.Stash == v.Controller {
		return v, errors.New("stash and controller are the same account")
	}
	consensus, err := hexutil.Decode(rv.ConsensusKey)
	if err != nil {
		return v, errors.Wrap(err, "consensusKey")
	}
	finality, err := hexutil.Decode(rv.FinalityKey)
	if err != nil {
		return v, errors.Wrap(err, "finalityKey")
	}
	online, err := hexutil.Decode(rv.OnlineKey)
	if err != nil {
		return v, errors.Wrap(err, "onlineKey")
	}
	v.Keys = inter.SessionKeys{
		Consensus: validatorpk.NewSecp256k1(consensus),
		Finality:  validatorpk.NewEd25519(finality),
		Online:    validatorpk.NewEd25519(online),
	}
	if err := v.Keys.Validate(); err != nil {
		return v, err
	}
	if v.Stake, err = num.ParseBalance(rv.Stake); err != nil {
		return v, errors.Wrap(err, "stake")
	}
	return v, nil
}

func accounts(hexes []string) ([]inter.AccountID, error) {
	out := make([]inter.AccountID, 0, len(hexes))
	for i, h := range hexes {
		id, err := inter.HexToAccountID(h)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		out = append(out, id)
	}
	return out, nil
}
