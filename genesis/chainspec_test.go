package genesis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-edgeware-genesis/network"
)

func TestChainSpecRoundTrip(t *testing.T) {
	require := require.New(t)

	s := testSnapshot(t)
	spec := NewChainSpec(network.LocalTestnetParams(), nil, s)
	require.Equal("Local Testnet", spec.Name)
	require.Equal("local_testnet", spec.ID)
	require.Equal("edg", spec.ProtocolID)
	require.Equal("EDG", spec.Properties.TokenSymbol)
	require.Empty(spec.TelemetryEndpoints)
	require.Equal(s.Hash().Hex(), spec.GenesisHash)

	var buf bytes.Buffer
	_, err := spec.WriteTo(&buf)
	require.NoError(err)
	require.Contains(buf.String(), `"tokenDecimals": 18`)

	back, err := ReadChainSpec(&buf)
	require.NoError(err)
	require.Equal(spec.Hash(), back.Hash())
	require.Equal(spec.Name, back.Name)
}

func TestChainSpecPublicTelemetry(t *testing.T) {
	spec := NewChainSpec(network.MainnetParams(), []string{"/ip4/1.2.3.4/tcp/30333/p2p/x"}, testSnapshot(t))
	require.Len(t, spec.TelemetryEndpoints, 1)
	require.Equal(t, network.TelemetryURL, spec.TelemetryEndpoints[0].URL)
	require.Equal(t, "edgeware", spec.ID)
	require.Len(t, spec.Bootnodes, 1)
}

func TestReadChainSpecDetectsTampering(t *testing.T) {
	require := require.New(t)

	spec := NewChainSpec(network.DevelopmentParams(), nil, testSnapshot(t))
	var buf bytes.Buffer
	_, err := spec.WriteTo(&buf)
	require.NoError(err)

	tampered := strings.Replace(buf.String(), `"mintingInterval": 1`, `"mintingInterval": 2`, 1)
	require.NotEqual(buf.String(), tampered)
	_, err = ReadChainSpec(strings.NewReader(tampered))
	require.Error(err)

	_, err = ReadChainSpec(strings.NewReader(`{"name":"x"}`))
	require.Error(err)
	_, err = ReadChainSpec(strings.NewReader(`{`))
	require.Error(err)
}
