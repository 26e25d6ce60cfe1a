// Package options holds the runtime settings of the parampool command.
package options

import (
	"context"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"

	"github.com/gruntwork-io/parampool/internal/errors"
	"github.com/gruntwork-io/parampool/pkg/log"
	"github.com/gruntwork-io/parampool/pkg/pool"
	"github.com/gruntwork-io/parampool/pkg/pool/poolfile"
)

const ContextKey ctxKey = iota

const (
	FormatText = "text"
	FormatHCL  = "hcl"
	FormatJSON = "json"

	defaultLogLevel = log.InfoLevel
)

type ctxKey byte

// ParampoolOptions represents options that configure the behavior of the parampool command.
type ParampoolOptions struct {
	Logger    log.Logger
	Writer    io.Writer
	ErrWriter io.Writer

	// PoolFile declares the pool the commands work on.
	PoolFile string

	// DefaultsFile, when set, replaces the defaults of the declared items.
	DefaultsFile string

	// OutputFormat is one of FormatText, FormatHCL and FormatJSON.
	OutputFormat string

	// OutputPath is the file the render command writes to, stdout when empty.
	OutputPath string

	// Assignments are the `--name value` arguments given after "--".
	Assignments []string

	Defaults pool.Defaults
	LogLevel log.Level
}

// NewParampoolOptions writes to stdout and logs to stderr.
func NewParampoolOptions() *ParampoolOptions {
	return NewParampoolOptionsWithWriters(os.Stdout, os.Stderr)
}

func NewParampoolOptionsWithWriters(stdout, stderr io.Writer) *ParampoolOptions {
	return &ParampoolOptions{
		Logger:       log.New(log.WithOutput(stderr), log.WithLevel(defaultLogLevel), log.WithFormatter(log.NewTextFormatter(stderr))),
		Writer:       stdout,
		ErrWriter:    stderr,
		OutputFormat: FormatText,
		Defaults:     pool.DefaultDefaults(),
		LogLevel:     defaultLogLevel,
	}
}

// OptionsFromContext tries to retrieve options from context, otherwise, returns its own instance.
func (opts *ParampoolOptions) OptionsFromContext(ctx context.Context) *ParampoolOptions {
	if val := ctx.Value(ContextKey); val != nil {
		if opts, ok := val.(*ParampoolOptions); ok {
			return opts
		}
	}

	return opts
}

// Clone returns a copy with its own logger and assignments.
func (opts *ParampoolOptions) Clone() *ParampoolOptions {
	cloned := *opts
	cloned.Logger = opts.Logger.Clone()
	cloned.Assignments = append([]string(nil), opts.Assignments...)

	return &cloned
}

// LoadPool reads PoolFile, then DefaultsFile when given, and returns the updated pool.
// A leading "~" in either path is the home directory.
func (opts *ParampoolOptions) LoadPool() (*pool.Pool, error) {
	if opts.PoolFile == "" {
		return nil, errors.New(ErrPoolFileNotSet)
	}

	filename, err := homedir.Expand(opts.PoolFile)
	if err != nil {
		return nil, errors.New(err)
	}

	p, err := poolfile.Load(filename, pool.WithLogger(opts.Logger), pool.WithDefaults(opts.Defaults))
	if err != nil {
		return nil, err
	}

	if opts.DefaultsFile != "" {
		defaultsFile, err := homedir.Expand(opts.DefaultsFile)
		if err != nil {
			return nil, errors.New(err)
		}

		if err := poolfile.ReadFile(defaultsFile, p, poolfile.ModeSetDefaults); err != nil {
			return nil, err
		}
	}

	opts.Logger.Debugf("Loaded %d data items from %s", len(p.Paths()), opts.PoolFile)

	return p, nil
}

var ErrPoolFileNotSet = errors.New("no pool file given, use --file or PARAMPOOL_FILE")
