package log

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// NewTextFormatter returns the formatter used by the CLI. Colors are only enabled when
// out is a terminal.
func NewTextFormatter(out io.Writer) *logrus.TextFormatter {
	return &logrus.TextFormatter{
		DisableColors:    !isTerminal(out),
		DisableTimestamp: true,
		PadLevelText:     true,
	}
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
