package poolfile

import "fmt"

// GrammarError is a line of a pool file that does not follow the grammar.
type GrammarError struct {
	File   string
	Reason string
	Text   string
	Line   int
}

func (err GrammarError) Error() string {
	return fmt.Sprintf("wrong syntax in %s, line %d: %s\n%s", err.File, err.Line, err.Reason, err.Text)
}
