package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// NetworkFlags select the network profile and its genesis inputs.
func NetworkFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "chain",
			Usage: "Network profile (dev|local|testnet|mainnet)",
			Value: "dev",
		},
		cli.StringSliceFlag{
			Name:  "authority",
			Usage: "Seed of an initial authority on dev and local chains; repeat for more",
		},
		cli.StringFlag{
			Name:  "allocation",
			Usage: "Participant allocation file of public networks",
			Value: "lockdrop_allocations.json",
		},
		cli.BoolFlag{
			Name:  "allocation.equalize",
			Usage: "Replace every allocation amount with the equalized balance (default: profile setting)",
		},
		cli.StringFlag{
			Name:  "allocation.balance",
			Usage: "Equalized balance in the smallest unit",
		},
	}
}
