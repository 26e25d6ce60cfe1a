// Package cmdline sets values and defaults of pool items from command-line arguments.
//
// Every item is an option named by its path with spaces replaced by underscores, and
// any unique trailing part of that path is accepted:
//
//	prog --rho 1.3 --body/mass '430 g' --Initial_velocity 5
package cmdline

import (
	"strings"

	"github.com/gruntwork-io/parampool/internal/errors"
	"github.com/gruntwork-io/parampool/pkg/pool"
	"github.com/gruntwork-io/parampool/pkg/pool/poolfile"
	"github.com/gruntwork-io/parampool/pkg/tree"
)

const (
	OptionPrefix = "--"

	// DefaultFileFlag names the pool file read by SetDefaultsFromFile.
	DefaultFileFlag = "--poolfile"
)

// OptionName turns an item path into its option name.
func OptionName(path string) string {
	return strings.ReplaceAll(path, " ", "_")
}

// Binder maps option names to the items of a pool.
type Binder struct {
	pool  *pool.Pool
	index *tree.Index[*pool.DataItem]
}

// NewBinder updates the pool and indexes its items by option name.
func NewBinder(p *pool.Pool) *Binder {
	p.Update()

	return &Binder{
		pool:  p,
		index: p.Index().Rename(OptionName),
	}
}

// Options returns the option names without prefix, in declaration order.
func (binder *Binder) Options() []string {
	return binder.index.Paths()
}

// Lookup returns the item the option abbreviates. name may carry the "--" prefix.
func (binder *Binder) Lookup(name string) (*pool.DataItem, error) {
	item, err := binder.index.Get(strings.TrimPrefix(name, OptionPrefix))
	if err != nil {
		return nil, errors.New(UnknownOptionError{Option: name, Candidates: binder.Options(), Err: err})
	}

	return item, nil
}

// SetValues scans args for options and assigns the following argument to the item of
// each, or replaces its default when setDefault is true. Other arguments are ignored.
func (binder *Binder) SetValues(args []string, setDefault bool) error {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, OptionPrefix) || arg == OptionPrefix {
			continue
		}

		item, err := binder.Lookup(arg)
		if err != nil {
			return err
		}

		if i+1 >= len(args) {
			return errors.New(MissingValueError{Option: arg})
		}

		i++

		if setDefault {
			err = item.SetDefault(args[i])
		} else {
			err = item.SetValue(args[i])
		}

		if err != nil {
			return err
		}

		binder.pool.Logger().Debugf("Option %s set %s to %v", arg, item.Name(), args[i])
	}

	return nil
}

// SetValuesFromString is SetValues for a command line given as one string.
func (binder *Binder) SetValuesFromString(line string, setDefault bool) error {
	args, err := SplitArgs(line)
	if err != nil {
		return err
	}

	return binder.SetValues(args, setDefault)
}

// SetDefaultsFromCommandLine replaces the defaults of the items named in args.
func SetDefaultsFromCommandLine(p *pool.Pool, args []string) error {
	return NewBinder(p).SetValues(args, true)
}

// SetValuesFromCommandLine assigns the items named in args.
func SetValuesFromCommandLine(p *pool.Pool, args []string) error {
	return NewBinder(p).SetValues(args, false)
}

// SetDefaultsFromFile reads the pool file given after flag, DefaultFileFlag when empty,
// in set-defaults mode. It returns args without the flag and its value.
func SetDefaultsFromFile(p *pool.Pool, args []string, flag string) ([]string, error) {
	if flag == "" {
		flag = DefaultFileFlag
	}

	i := Args(args).Index(flag)
	if i < 0 {
		return args, nil
	}

	if i+1 >= len(args) {
		return nil, errors.New(MissingValueError{Option: flag})
	}

	if err := poolfile.ReadFile(args[i+1], p, poolfile.ModeSetDefaults); err != nil {
		return nil, err
	}

	return Args(args).Remove(i, 2), nil
}
