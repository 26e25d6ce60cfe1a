// Package commands assembles the subcommands of the parampool command.
package commands

import (
	"github.com/urfave/cli/v2"

	"github.com/gruntwork-io/parampool/cli/commands/get"
	"github.com/gruntwork-io/parampool/cli/commands/paths"
	"github.com/gruntwork-io/parampool/cli/commands/render"
	"github.com/gruntwork-io/parampool/options"
)

// NewCommands returns the commands sorted by name.
func NewCommands(opts *options.ParampoolOptions) []*cli.Command {
	return []*cli.Command{
		get.NewCommand(opts),
		paths.NewCommand(opts),
		render.NewCommand(opts),
	}
}
