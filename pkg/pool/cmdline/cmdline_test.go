package cmdline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruntwork-io/parampool/internal/errors"
	"github.com/gruntwork-io/parampool/pkg/pool"
	"github.com/gruntwork-io/parampool/pkg/pool/cmdline"
	"github.com/gruntwork-io/parampool/pkg/tree"
)

func newTestPool(t *testing.T) *pool.Pool {
	t.Helper()

	p, err := pool.FromListTree([]any{
		"Main pool", []any{
			"Initial motion data", []any{
				map[string]any{"name": "Initial velocity", "default": 5.0, "unit": "m/s"},
				map[string]any{"name": "Initial angle", "default": 45.0, "minmax": []float64{0, 90}},
			},
			"Body and environment data", []any{
				map[string]any{"name": "mass", "default": 0.43, "unit": "kg"},
				map[string]any{"name": "air mass", "default": 1.0, "unit": "kg"},
			},
		},
	})
	require.NoError(t, err)

	return p
}

func value(t *testing.T, p *pool.Pool, name string) any {
	t.Helper()

	value, err := p.GetValue(name)
	require.NoError(t, err)

	return value
}

func TestOptions(t *testing.T) {
	t.Parallel()

	binder := cmdline.NewBinder(newTestPool(t))

	expected := []string{
		"/Main_pool/Initial_motion_data/Initial_velocity",
		"/Main_pool/Initial_motion_data/Initial_angle",
		"/Main_pool/Body_and_environment_data/mass",
		"/Main_pool/Body_and_environment_data/air_mass",
	}
	assert.Equal(t, expected, binder.Options())
}

func TestSetValues(t *testing.T) {
	t.Parallel()

	p := newTestPool(t)
	binder := cmdline.NewBinder(p)

	err := binder.SetValues([]string{"prog", "--Initial_velocity", "18 km/h", "--angle", "30", "--data/mass", "430 g"}, false)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, value(t, p, "Initial velocity"), 1e-12)
	assert.Equal(t, 30.0, value(t, p, "Initial angle"))
	assert.InDelta(t, 0.43, value(t, p, "data/mass"), 1e-12)

	err = binder.SetValuesFromString(`--Initial_velocity '2 & 3' --angle 10`, false)
	require.NoError(t, err)

	values, err := p.GetValues("Initial velocity")
	require.NoError(t, err)
	assert.Equal(t, []any{2.0, 3.0}, values)
}

func TestSetDefaults(t *testing.T) {
	t.Parallel()

	p := newTestPool(t)
	require.NoError(t, cmdline.SetDefaultsFromCommandLine(p, []string{"--angle", "60"}))

	item, err := p.Get("Initial angle")
	require.NoError(t, err)
	assert.Equal(t, 60.0, item.Default())
	assert.False(t, item.Assigned())

	require.NoError(t, cmdline.SetValuesFromCommandLine(p, []string{"--angle", "70"}))
	assert.Equal(t, 60.0, item.Default())
	assert.Equal(t, 70.0, item.Value())
}

func TestSetValuesErrors(t *testing.T) {
	t.Parallel()

	binder := cmdline.NewBinder(newTestPool(t))

	err := binder.SetValues([]string{"--mass", "1"}, false)

	var unknownOpt cmdline.UnknownOptionError
	require.True(t, errors.As(err, &unknownOpt))
	assert.Contains(t, err.Error(), "--/Main_pool/Body_and_environment_data/air_mass")

	var ambiguous tree.AmbiguousPathError
	require.True(t, errors.As(err, &ambiguous))

	err = binder.SetValues([]string{"--velocity_of_light", "1"}, false)

	var unknown tree.UnknownPathError
	require.True(t, errors.As(err, &unknown))

	err = binder.SetValues([]string{"--angle"}, false)

	var missing cmdline.MissingValueError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "--angle", missing.Option)

	err = binder.SetValues([]string{"--angle", "95"}, false)
	assert.True(t, pool.IsRangeOrOptionError(err))

	err = binder.SetValuesFromString(`--angle "30`, false)
	require.Error(t, err)
}

func TestSetDefaultsFromFile(t *testing.T) {
	t.Parallel()

	filename := filepath.Join(t.TempDir(), "defaults.pool")
	content := `group Main pool
    group Initial motion data
        Initial angle = 20
    end
end
`
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))

	p := newTestPool(t)

	args, err := cmdline.SetDefaultsFromFile(p, []string{"prog", "--poolfile", filename, "--mass", "2"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"prog", "--mass", "2"}, args)

	item, err := p.Get("Initial angle")
	require.NoError(t, err)
	assert.Equal(t, 20.0, item.Default())

	args, err = cmdline.SetDefaultsFromFile(p, []string{"prog"}, "--defaults")
	require.NoError(t, err)
	assert.Equal(t, []string{"prog"}, args)

	_, err = cmdline.SetDefaultsFromFile(p, []string{"prog", "--poolfile"}, "")

	var missing cmdline.MissingValueError
	require.True(t, errors.As(err, &missing))
}

func TestArgs(t *testing.T) {
	t.Parallel()

	args, err := cmdline.SplitArgs(`render --out "my pool.hcl" -- --rho 1.3`)
	require.NoError(t, err)
	assert.Equal(t, cmdline.Args{"render", "--out", "my pool.hcl", "--", "--rho", "1.3"}, args)

	assert.Equal(t, "render", args.First())
	assert.Equal(t, "", args.Get(10))
	assert.Equal(t, 3, args.Index("--"))
	assert.True(t, args.Contains("--rho"))

	before, after := args.Split()
	assert.Equal(t, cmdline.Args{"render", "--out", "my pool.hcl"}, before)
	assert.Equal(t, cmdline.Args{"--rho", "1.3"}, after)

	assert.Equal(t, cmdline.Args{"render", "--", "--rho", "1.3"}, args.Remove(1, 2))
	assert.Equal(t, cmdline.Args{"--out", "my pool.hcl", "--", "--rho", "1.3"}, args.Tail())
	assert.Len(t, args, 6, "args are not modified")
}
