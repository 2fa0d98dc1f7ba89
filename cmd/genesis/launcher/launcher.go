package launcher

import (
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-edgeware-genesis/flags"
)

func commandFlags(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	out = append(out, flags.CommonFlags()...)
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// NewApp returns the command-line application.
func NewApp() *cli.App {
	app := flags.NewApp()
	app.Commands = []cli.Command{
		{
			Name:   "build",
			Usage:  "Assemble the genesis of a network and write its chain spec",
			Flags:  commandFlags(flags.NetworkFlags(), flags.OutputFlags()),
			Action: action(buildCommand),
		},
		{
			Name:   "hash",
			Usage:  "Print the genesis snapshot hash of a network",
			Flags:  commandFlags(flags.NetworkFlags()),
			Action: action(hashCommand),
		},
		{
			Name:      "verify",
			Usage:     "Rebuild the genesis of a network and compare it with a chain spec file",
			ArgsUsage: "<chainspec.json>",
			Flags:     commandFlags(flags.NetworkFlags()),
			Action:    action(verifyCommand),
		},
		{
			Name:  "key",
			Usage: "Development key utilities",
			Subcommands: []cli.Command{
				{
					Name:      "inspect",
					Usage:     "Show the identities derived from a seed",
					ArgsUsage: "[seed]",
					Flags:     commandFlags(flags.KeyFlags()),
					Action:    action(keyInspectCommand),
				},
			},
		},
		{
			Name:   "dumpconfig",
			Usage:  "Print the effective configuration as TOML",
			Flags:  commandFlags(flags.NetworkFlags(), flags.OutputFlags()),
			Action: action(dumpConfigCommand),
		},
	}
	return app
}

// Launch runs the application with the given command line.
func Launch(args []string) error {
	return NewApp().Run(args)
}
