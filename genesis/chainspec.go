package genesis

import (
	"encoding/json"
	"io"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/pkg/errors"

	"github.com/rony4d/go-edgeware-genesis/network"
)

// TelemetryEndpoint is a telemetry sink and the verbosity it receives.
type TelemetryEndpoint struct {
	URL       string `json:"url"`
	Verbosity uint8  `json:"verbosity"`
}

// ChainSpec is the document handed to a node at launch: chain identity,
// network bootstrap metadata and the genesis snapshot.
type ChainSpec struct {
	Name               string              `json:"name"`
	ID                 string              `json:"id"`
	Bootnodes          []string            `json:"bootNodes"`
	TelemetryEndpoints []TelemetryEndpoint `json:"telemetryEndpoints"`
	ProtocolID         string              `json:"protocolId"`
	Properties         network.Properties  `json:"properties"`
	// GenesisHash is informational; ReadChainSpec checks it against Genesis.
	GenesisHash string    `json:"genesisHash"`
	Genesis     *Snapshot `json:"genesis"`
}

// NewChainSpec wraps a snapshot with the metadata of params.
func NewChainSpec(params network.Params, bootnodes []string, snapshot *Snapshot) *ChainSpec {
	spec := &ChainSpec{
		Name:       params.ChainName,
		ID:         params.ChainID,
		Bootnodes:  append([]string{}, bootnodes...),
		ProtocolID: network.ProtocolID,
		Properties: network.DefaultProperties(),
		Genesis:    snapshot,
	}
	if params.Profile.IsPublic() {
		spec.TelemetryEndpoints = []TelemetryEndpoint{{URL: network.TelemetryURL, Verbosity: 0}}
	} else {
		spec.TelemetryEndpoints = []TelemetryEndpoint{}
	}
	if snapshot != nil {
		spec.GenesisHash = snapshot.Hash().Hex()
	}
	return spec
}

// Hash returns the genesis snapshot hash.
func (c *ChainSpec) Hash() hash.Hash {
	return c.Genesis.Hash()
}

// WriteTo writes the chain spec as indented JSON.
func (c *ChainSpec) WriteTo(w io.Writer) (int64, error) {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return 0, err
	}
	b = append(b, '\n')
	n, err := w.Write(b)
	return int64(n), err
}

// ReadChainSpec decodes a chain spec and verifies its recorded genesis hash.
func ReadChainSpec(r io.Reader) (*ChainSpec, error) {
	spec := new(ChainSpec)
	if err := json.NewDecoder(r).Decode(spec); err != nil {
		return nil, errors.Wrap(err, "decode chain spec")
	}
	if spec.Genesis == nil {
		return nil, errors.New("chain spec has no genesis")
	}
	if spec.GenesisHash != "" && spec.GenesisHash != spec.Genesis.Hash().Hex() {
		return nil, errors.Errorf("chain spec genesis hash %s does not match content %s",
			spec.GenesisHash, spec.Genesis.Hash().Hex())
	}
	return spec, nil
}
