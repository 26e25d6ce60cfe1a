// Package flags declares the global flags of the parampool command.
package flags

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/gruntwork-io/parampool/options"
	"github.com/gruntwork-io/parampool/pkg/log"
)

const (
	EnvVarPrefix = "PARAMPOOL_"

	LogLevelFlagName     = "log-level"
	FileFlagName         = "file"
	FileAliasFlagName    = "f"
	DefaultsFileFlagName = "defaults-file"
)

// EnvVars returns the environment variable read for the flag name, e.g. PARAMPOOL_LOG_LEVEL.
func EnvVars(name string) []string {
	return []string{EnvVarPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))}
}

// NewGlobalFlags returns the flags accepted before the command name.
func NewGlobalFlags(opts *options.ParampoolOptions) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        LogLevelFlagName,
			EnvVars:     EnvVars(LogLevelFlagName),
			Usage:       "Sets the logging level: " + log.AllLevels.String() + ".",
			DefaultText: opts.LogLevel.String(),
			Action: func(_ *cli.Context, value string) error {
				level, err := log.ParseLevel(value)
				if err != nil {
					return err
				}

				opts.LogLevel = level
				opts.Logger.SetOptions(log.WithLevel(level))

				return nil
			},
		},
		&cli.StringFlag{
			Name:        FileFlagName,
			Aliases:     []string{FileAliasFlagName},
			EnvVars:     EnvVars(FileFlagName),
			Destination: &opts.PoolFile,
			Usage:       "The pool file declaring the data items.",
		},
		&cli.StringFlag{
			Name:        DefaultsFileFlagName,
			EnvVars:     EnvVars(DefaultsFileFlagName),
			Destination: &opts.DefaultsFile,
			Usage:       "A pool file whose values replace the defaults of the declared data items.",
		},
	}
}
