package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// OutputFlags control where and how a chain spec is written.
func OutputFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "out",
			Usage: "Write the chain spec to this file instead of stdout",
		},
		cli.BoolFlag{
			Name:  "raw",
			Usage: "Write the genesis snapshot as hex-encoded RLP",
		},
	}
}

// KeyFlags configure key inspection.
func KeyFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "seed",
			Usage: "Seed to derive keys from, e.g. Alice or Alice//stash",
		},
	}
}
