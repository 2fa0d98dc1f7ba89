package integration

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-edgeware-genesis/genesis"
	"github.com/rony4d/go-edgeware-genesis/genesis/assembler"
	"github.com/rony4d/go-edgeware-genesis/genesis/fixtures"
	"github.com/rony4d/go-edgeware-genesis/network"
)

func testAssembler(table *fixtures.Table) *assembler.Assembler {
	cfg := assembler.Config{
		AllocationPath: filepath.Join("..", "genesis", "assembler", "testdata", "lockdrop_allocations.json"),
	}
	return assembler.New(table, cfg, nil)
}

func TestPresetByName(t *testing.T) {
	tests := []struct {
		name    string
		profile network.Profile
		seeds   []string
	}{
		{"dev", network.Development, []string{"Alice"}},
		{"development", network.Development, []string{"Alice"}},
		{"local", network.LocalTestnet, []string{"Alice", "Bob"}},
		{"testnet", network.PublicTestnet, nil},
		{"edgeware", network.PublicMainnet, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := PresetByName(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.profile, p.Profile)
			require.Equal(t, tt.seeds, p.Authorities)
		})
	}

	_, err := PresetByName("fakenet")
	require.ErrorIs(t, err, network.ErrUnknownProfile)
}

func TestApplyOverrides(t *testing.T) {
	require := require.New(t)

	p := LocalTestnetPreset()
	ApplyOverrides(&p, nil, nil)
	require.Equal(LocalTestnetPreset(), p)

	eq := false
	seeds := []string{"Charlie"}
	ApplyOverrides(&p, seeds, &eq)
	seeds[0] = "Dave"
	eq = true
	require.Equal([]string{"Charlie"}, p.Authorities)
	require.NotNil(p.Equalize)
	require.False(*p.Equalize)
}

func TestBuildChainSpec(t *testing.T) {
	table := fixtures.MustBuiltin()
	asm := testAssembler(table)

	tests := []struct {
		preset     Preset
		name       string
		id         string
		bootnodes  int
		telemetry  int
		validators int
	}{
		{DevelopmentPreset(), "Development", "dev", 0, 0, 1},
		{LocalTestnetPreset(), "Local Testnet", "local_testnet", 0, 0, 2},
		{TestnetPreset(), "Edgeware Testnet", "edgeware-testnet", 2, 1, 4},
		{MainnetPreset(), "Edgeware", "edgeware", 3, 1, 7},
	}

	for _, tt := range tests {
		t.Run(tt.preset.Name, func(t *testing.T) {
			require := require.New(t)

			spec, err := BuildChainSpec(tt.preset, asm, table)
			require.NoError(err)
			require.Equal(tt.name, spec.Name)
			require.Equal(tt.id, spec.ID)
			require.Equal(network.ProtocolID, spec.ProtocolID)
			require.Len(spec.Bootnodes, tt.bootnodes)
			require.Len(spec.TelemetryEndpoints, tt.telemetry)
			require.Len(spec.Genesis.Session.Keys, tt.validators)
			require.Equal(spec.Genesis.Hash().Hex(), spec.GenesisHash)

			var buf bytes.Buffer
			_, err = spec.WriteTo(&buf)
			require.NoError(err)
			back, err := genesis.ReadChainSpec(&buf)
			require.NoError(err)
			require.Equal(spec.Hash(), back.Hash())
		})
	}
}

func TestBuildChainSpecBadSeed(t *testing.T) {
	p := DevelopmentPreset()
	ApplyOverrides(&p, []string{"Alice//"}, nil)

	table := fixtures.MustBuiltin()
	_, err := BuildChainSpec(p, testAssembler(table), table)
	require.ErrorIs(t, err, genesis.ErrConfiguration)
}

func TestBuildChainSpecWithoutFixtures(t *testing.T) {
	_, err := BuildChainSpec(MainnetPreset(), testAssembler(nil), nil)
	require.ErrorIs(t, err, genesis.ErrConfiguration)
}
