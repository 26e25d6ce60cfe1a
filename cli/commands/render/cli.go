// Package render provides the command writing the pool, with values given on the command
// line applied, as a pool file, HCL or JSON.
package render

import (
	"slices"

	"github.com/urfave/cli/v2"

	"github.com/gruntwork-io/parampool/cli/flags"
	"github.com/gruntwork-io/parampool/internal/errors"
	"github.com/gruntwork-io/parampool/options"
)

const (
	CommandName = "render"

	FormatFlagName = "format"
	OutFlagName    = "out"
)

var formats = []string{options.FormatText, options.FormatHCL, options.FormatJSON}

func NewFlags(opts *options.ParampoolOptions) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        FormatFlagName,
			EnvVars:     flags.EnvVars(CommandName + "-" + FormatFlagName),
			Destination: &opts.OutputFormat,
			Value:       options.FormatText,
			Usage:       "The output format: text, hcl or json.",
			Action: func(_ *cli.Context, value string) error {
				if !slices.Contains(formats, value) {
					return errors.Errorf("invalid format %q, supported formats: text, hcl, json", value)
				}

				return nil
			},
		},
		&cli.StringFlag{
			Name:        OutFlagName,
			EnvVars:     flags.EnvVars(CommandName + "-" + OutFlagName),
			Destination: &opts.OutputPath,
			Usage:       "Write to the given file instead of stdout.",
		},
	}
}

func NewCommand(opts *options.ParampoolOptions) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Usage:     "Render the pool with its current values.",
		UsageText: "parampool render [--format text|hcl|json] [--out path] [-- --name value ...]",
		Flags:     NewFlags(opts),
		Action: func(ctx *cli.Context) error {
			opts.Assignments = ctx.Args().Slice()

			return Run(ctx.Context, opts)
		},
	}
}
