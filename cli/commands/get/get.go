// Package get provides the command printing the value of one data item.
package get

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/gruntwork-io/parampool/internal/errors"
	"github.com/gruntwork-io/parampool/options"
	"github.com/gruntwork-io/parampool/pkg/pool/cmdline"
)

const (
	CommandName = "get"

	AllFlagName = "all"
)

var ErrNoName = errors.New("get requires the name of a data item")

func NewCommand(opts *options.ParampoolOptions) *cli.Command {
	var all bool

	return &cli.Command{
		Name:      CommandName,
		Usage:     "Print the value and unit of a data item.",
		UsageText: "parampool get [--all] <name> [-- --name value ...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        AllFlagName,
				Destination: &all,
				Usage:       "Print every value of the data item, one per line.",
			},
		},
		Action: func(ctx *cli.Context) error {
			if !ctx.Args().Present() {
				return errors.New(ErrNoName)
			}

			opts.Assignments = ctx.Args().Tail()

			return Run(ctx.Context, opts, ctx.Args().First(), all)
		},
	}
}

// Run prints the value of the data item name after applying the assignments.
func Run(_ context.Context, opts *options.ParampoolOptions, name string, all bool) error {
	p, err := opts.LoadPool()
	if err != nil {
		return err
	}

	if err := cmdline.SetValuesFromCommandLine(p, opts.Assignments); err != nil {
		return err
	}

	item, err := p.Get(name)
	if err != nil {
		return err
	}

	lines := []string{item.ValueWithUnit("")}

	if all {
		lines = lines[:0]

		for _, value := range item.Values() {
			line := fmt.Sprintf("%v", value)
			if item.Unit() != "" {
				line += " " + item.Unit()
			}

			lines = append(lines, line)
		}
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(opts.Writer, line); err != nil {
			return errors.New(err)
		}
	}

	return nil
}
