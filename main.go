package main

import (
	"os"

	"github.com/gruntwork-io/parampool/cli"
	"github.com/gruntwork-io/parampool/internal/errors"
	"github.com/gruntwork-io/parampool/options"
	"github.com/gruntwork-io/parampool/pkg/log"
)

// The main entrypoint for parampool
func main() {
	opts := options.NewParampoolOptions()

	defer errors.Recover(checkForErrorsAndExit(opts.Logger))

	app := cli.NewApp(opts)
	err := app.Run(os.Args)

	checkForErrorsAndExit(opts.Logger)(err)
}

// If there is an error, display it in the console and exit with a non-zero exit code. Otherwise, exit 0.
func checkForErrorsAndExit(logger log.Logger) func(error) {
	return func(err error) {
		if err == nil {
			os.Exit(0)
		}

		logger.Error(err.Error())

		if errStack := errors.ErrorStack(err); errStack != "" {
			logger.Trace(errStack)
		}

		os.Exit(1)
	}
}
