package cmdline

import (
	"fmt"
	"strings"
)

// MissingValueError is an option given as the last argument.
type MissingValueError struct {
	Option string
}

func (err MissingValueError) Error() string {
	return "no value for command-line option " + err.Option
}

// UnknownOptionError is an option that does not abbreviate exactly one item.
type UnknownOptionError struct {
	Err        error
	Option     string
	Candidates []string
}

func (err UnknownOptionError) Error() string {
	candidates := make([]string, 0, len(err.Candidates))
	for _, candidate := range err.Candidates {
		candidates = append(candidates, OptionPrefix+candidate)
	}

	return fmt.Sprintf("%s is not a unique data item name among\n%s", err.Option, strings.Join(candidates, ", "))
}

func (err UnknownOptionError) Unwrap() error {
	return err.Err
}
