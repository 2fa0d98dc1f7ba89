// Package integration ties network profiles, the fixture table and the
// assembler together into named presets that produce complete chain specs.
//
// Usage:
//
//	preset, _ := integration.PresetByName("local")
//	spec, err := integration.BuildChainSpec(preset, asm, fixtures.MustBuiltin())
package integration

import (
	"github.com/pkg/errors"

	"github.com/rony4d/go-edgeware-genesis/genesis"
	"github.com/rony4d/go-edgeware-genesis/genesis/assembler"
	"github.com/rony4d/go-edgeware-genesis/genesis/fixtures"
	"github.com/rony4d/go-edgeware-genesis/genesis/keyring"
	"github.com/rony4d/go-edgeware-genesis/network"
)

// Preset is a named build request.
type Preset struct {
	Name    string
	Profile network.Profile
	// Authorities are the seeds of the initial validators. Public profiles ignore them.
	Authorities []string
	// Equalize overrides the profile's equalization default when set.
	Equalize *bool
}

// DevelopmentPreset is a single-authority chain for local hacking.
func DevelopmentPreset() Preset {
	return Preset{
		Name:        "dev",
		Profile:     network.Development,
		Authorities: []string{"Alice"},
	}
}

// LocalTestnetPreset is a two-authority chain for multi-node testing on one machine.
func LocalTestnetPreset() Preset {
	return Preset{
		Name:        "local",
		Profile:     network.LocalTestnet,
		Authorities: []string{"Alice", "Bob"},
	}
}

// TestnetPreset builds the public testnet from the built-in fixtures.
func TestnetPreset() Preset {
	return Preset{
		Name:    "testnet",
		Profile: network.PublicTestnet,
	}
}

// MainnetPreset builds the public mainnet from the built-in fixtures.
func MainnetPreset() Preset {
	return Preset{
		Name:    "mainnet",
		Profile: network.PublicMainnet,
	}
}

// PresetByName looks up a preset by profile name or alias.
func PresetByName(name string) (Preset, error) {
	profile, err := network.ParseProfile(name)
	if err != nil {
		return Preset{}, err
	}
	switch profile {
	case network.Development:
		return DevelopmentPreset(), nil
	case network.LocalTestnet:
		return LocalTestnetPreset(), nil
	case network.PublicTestnet:
		return TestnetPreset(), nil
	case network.PublicMainnet:
		return MainnetPreset(), nil
	default:
		return Preset{}, errors.Wrapf(network.ErrUnknownProfile, "%q", name)
	}
}

// ApplyOverrides replaces the preset's authorities when seeds is non-empty and
// its equalization default when equalize is set.
func ApplyOverrides(target *Preset, seeds []string, equalize *bool) {
	if len(seeds) != 0 {
		target.Authorities = append([]string(nil), seeds...)
	}
	if equalize != nil {
		v := *equalize
		target.Equalize = &v
	}
}

// Request converts the preset into an assembler request, deriving the authority keys.
func (p Preset) Request() (assembler.Request, error) {
	req := assembler.Request{
		Profile:  p.Profile,
		Equalize: p.Equalize,
	}
	if p.Profile.IsPublic() {
		return req, nil
	}
	auths, err := keyring.Authorities(p.Authorities...)
	if err != nil {
		return req, genesis.NewError(genesis.ErrConfiguration, nil, "authority seeds", err)
	}
	req.Authorities = auths
	return req, nil
}

// BuildChainSpec assembles the snapshot of the preset and wraps it with the
// chain identity of its profile. Public profiles take bootnodes from table.
func BuildChainSpec(p Preset, asm *assembler.Assembler, table *fixtures.Table) (*genesis.ChainSpec, error) {
	params, ok := network.ParamsFor(p.Profile)
	if !ok {
		return nil, genesis.Configuration(network.ErrUnknownProfile, p.Name)
	}

	req, err := p.Request()
	if err != nil {
		return nil, err
	}
	snapshot, err := asm.Build(req)
	if err != nil {
		return nil, err
	}

	var bootnodes []string
	if p.Profile.IsPublic() {
		fixture, err := table.For(p.Profile)
		if err != nil {
			return nil, err
		}
		bootnodes = fixture.Bootnodes
	}
	return genesis.NewChainSpec(params, bootnodes, snapshot), nil
}
