package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nspcc-dev/tokenmart/cli/trade"
	"github.com/nspcc-dev/tokenmart/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "TokenMart\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates a TokenMart instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "tokenmart"
	ctl.Version = config.Version
	ctl.Usage = "Multi-token marketplace registry with escrowed settlement"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, trade.NewCommands()...)
	return ctl
}
