package flags

import (
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

// NewApp returns the bare application; the launcher adds commands and flags.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "edgeware-genesis"
	app.Usage = "Edgeware genesis and chain spec builder"
	app.Version = "0.1.0"
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	return app
}
