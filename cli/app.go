// Package cli assembles the parampool command-line application.
package cli

import (
	"context"

	"github.com/gruntwork-io/go-commons/version"
	"github.com/urfave/cli/v2"

	"github.com/gruntwork-io/parampool/cli/commands"
	"github.com/gruntwork-io/parampool/cli/flags"
	"github.com/gruntwork-io/parampool/options"
	"github.com/gruntwork-io/parampool/pkg/log"
)

const AppName = "parampool"

// App is the parampool CLI app.
type App struct {
	*cli.App
	opts *options.ParampoolOptions
}

// NewApp creates the parampool CLI app.
func NewApp(opts *options.ParampoolOptions) *App {
	app := &cli.App{
		Name:                 AppName,
		Usage:                "Inspect and render hierarchical pools of typed, unit-aware parameters.",
		UsageText:            "parampool [global options] <command> [command options] [-- --name value ...]",
		Version:              version.GetVersion(),
		Writer:               opts.Writer,
		ErrWriter:            opts.ErrWriter,
		Flags:                flags.NewGlobalFlags(opts),
		Commands:             commands.NewCommands(opts),
		EnableBashCompletion: true,
		HideHelpCommand:      true,
		// Errors are logged by the caller.
		ExitErrHandler: func(*cli.Context, error) {},
	}

	return &App{App: app, opts: opts}
}

// RunContext runs the app with a context carrying the logger and the options.
func (app *App) RunContext(ctx context.Context, args []string) error {
	ctx = log.ContextWithLogger(ctx, app.opts.Logger)
	ctx = context.WithValue(ctx, options.ContextKey, app.opts)

	return app.App.RunContext(ctx, args)
}

// Run is RunContext with a background context.
func (app *App) Run(args []string) error {
	return app.RunContext(context.Background(), args)
}
