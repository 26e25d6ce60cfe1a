// Package paths provides the command listing the command-line options of a pool.
package paths

import (
	"context"
	"fmt"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"github.com/urfave/cli/v2"

	"github.com/gruntwork-io/parampool/internal/errors"
	"github.com/gruntwork-io/parampool/options"
	"github.com/gruntwork-io/parampool/pkg/pool/cmdline"
)

const (
	CommandName = "paths"

	helpWidth  = 72
	helpIndent = "    "
)

func NewCommand(opts *options.ParampoolOptions) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Usage:     "List the command-line option of every data item with its value and help.",
		UsageText: "parampool paths",
		Action: func(ctx *cli.Context) error {
			return Run(ctx.Context, opts)
		},
	}
}

// Run writes `--<option> = <value> <unit>` per item, followed by the wrapped help.
func Run(_ context.Context, opts *options.ParampoolOptions) error {
	p, err := opts.LoadPool()
	if err != nil {
		return err
	}

	var sb strings.Builder

	for path, item := range p.Items() {
		fmt.Fprintf(&sb, "%s%s = %s\n", cmdline.OptionPrefix, cmdline.OptionName(path), item.ValueWithUnit(""))

		if help := item.Help(); help != "" {
			for _, line := range strings.Split(wordwrap.WrapString(help, helpWidth), "\n") {
				sb.WriteString(helpIndent + line + "\n")
			}
		}
	}

	if _, err := fmt.Fprint(opts.Writer, sb.String()); err != nil {
		return errors.New(err)
	}

	return nil
}
