package cmdline

import (
	"slices"
	"strings"

	"github.com/google/shlex"

	"github.com/gruntwork-io/parampool/internal/errors"
)

// Args is a command line without the program name.
type Args []string

// SplitArgs splits a command line the way a POSIX shell does.
func SplitArgs(line string) (Args, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "cannot split %q", line)
	}

	return args, nil
}

// Get returns the argument at index i or an empty string.
func (args Args) Get(i int) string {
	if i < 0 || i >= len(args) {
		return ""
	}

	return args[i]
}

func (args Args) First() string {
	return args.Get(0)
}

// Tail returns all arguments but the first.
func (args Args) Tail() Args {
	if len(args) < 2 {
		return Args{}
	}

	return slices.Clone(args[1:])
}

// Index returns the position of arg, or -1.
func (args Args) Index(arg string) int {
	return slices.Index(args, arg)
}

func (args Args) Contains(arg string) bool {
	return args.Index(arg) >= 0
}

// Remove returns a copy without the n arguments starting at i.
func (args Args) Remove(i, n int) Args {
	if i < 0 || i >= len(args) {
		return slices.Clone(args)
	}

	return slices.Delete(slices.Clone(args), i, min(i+n, len(args)))
}

// Split returns the arguments before and after the first "--".
func (args Args) Split() (Args, Args) {
	i := args.Index("--")
	if i < 0 {
		return slices.Clone(args), Args{}
	}

	return slices.Clone(args[:i]), slices.Clone(args[i+1:])
}

func (args Args) String() string {
	return strings.Join(args, " ")
}
