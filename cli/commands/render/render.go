package render

import (
	"context"
	"io"
	"os"

	"github.com/gruntwork-io/parampool/internal/errors"
	"github.com/gruntwork-io/parampool/options"
	"github.com/gruntwork-io/parampool/pkg/pool"
	"github.com/gruntwork-io/parampool/pkg/pool/cmdline"
	"github.com/gruntwork-io/parampool/pkg/pool/poolfile"
	"github.com/gruntwork-io/parampool/pkg/pool/render"
)

// Run loads the pool, applies the assignments and writes it in the chosen format.
func Run(_ context.Context, opts *options.ParampoolOptions) error {
	p, err := opts.LoadPool()
	if err != nil {
		return err
	}

	if err := cmdline.SetValuesFromCommandLine(p, opts.Assignments); err != nil {
		return err
	}

	if opts.OutputPath == "" {
		return write(opts.Writer, p, opts.OutputFormat)
	}

	file, err := os.Create(opts.OutputPath)
	if err != nil {
		return errors.New(err)
	}
	defer file.Close()

	if err := write(file, p, opts.OutputFormat); err != nil {
		return err
	}

	opts.Logger.Infof("Rendered %s to %s", opts.PoolFile, opts.OutputPath)

	return nil
}

func write(writer io.Writer, p *pool.Pool, format string) error {
	switch format {
	case options.FormatHCL:
		return render.HCL(writer, p)
	case options.FormatJSON:
		return render.JSON(writer, p)
	}

	if _, err := io.WriteString(writer, poolfile.Write(p)); err != nil {
		return errors.New(err)
	}

	return nil
}
