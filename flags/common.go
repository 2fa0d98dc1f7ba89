package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// CommonFlags returns the flags shared by every command: config file and logging.
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "TOML configuration file",
		},
		cli.StringFlag{
			Name:  "log.format",
			Usage: "Log output format (text|json)",
			Value: "text",
		},
		cli.IntFlag{
			Name:  "log.verbosity",
			Usage: "Logging verbosity (0=panic,1=fatal,2=error,3=warn,4=info,5=debug)",
			Value: 4,
		},
		cli.BoolFlag{
			Name:  "log.color",
			Usage: "Force colored log output",
		},
		cli.StringFlag{
			Name:  "sentry.dsn",
			Usage: "Report errors to the Sentry project at this DSN",
		},
	}
}
