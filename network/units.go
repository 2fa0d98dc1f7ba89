package network

import (
	"github.com/rony4d/go-edgeware-genesis/inter"
	"github.com/rony4d/go-edgeware-genesis/utils/num"
)

// Currency units in the ledger's smallest unit.
const (
	Dollar    uint64 = 1_000_000_000_000_000_000 // 10^18, one whole token
	Cent      uint64 = Dollar / 100
	Millicent uint64 = Cent / 1000
)

// Time units in blocks.
const (
	MillisecsPerBlock = 6000

	Minutes inter.BlockNumber = 60_000 / MillisecsPerBlock
	Hours   inter.BlockNumber = Minutes * 60
	Days    inter.BlockNumber = Hours * 24
)

// Dollars returns n whole tokens. Any uint64 fits in a balance.
func Dollars(n uint64) num.Balance {
	return num.Must(num.NewBalance(n).MulUint64(Dollar))
}

// Cents returns n hundredths of a token.
func Cents(n uint64) num.Balance {
	return num.Must(num.NewBalance(n).MulUint64(Cent))
}

// Millicents returns n thousandths of a cent.
func Millicents(n uint64) num.Balance {
	return num.Must(num.NewBalance(n).MulUint64(Millicent))
}

// Properties is display metadata shipped with the chain spec.
// It has no effect on consensus state.
type Properties struct {
	TokenSymbol   string `json:"tokenSymbol"`
	TokenDecimals uint8  `json:"tokenDecimals"`
}

// DefaultProperties returns the native token's display metadata.
func DefaultProperties() Properties {
	return Properties{
		TokenSymbol:   "EDG",
		TokenDecimals: 18,
	}
}

// Chain spec metadata shared by all profiles.
const (
	ProtocolID   = "edg"
	TelemetryURL = "wss://telemetry.polkadot.io/submit/"
)
