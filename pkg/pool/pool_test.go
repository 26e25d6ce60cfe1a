package pool_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/gruntwork-io/parampool/internal/errors"
	"github.com/gruntwork-io/parampool/pkg/log"
	"github.com/gruntwork-io/parampool/pkg/pool"
	"github.com/gruntwork-io/parampool/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addItem(t *testing.T, p *pool.Pool, attrs pool.Attributes) {
	t.Helper()

	_, err := p.AddItem(attrs)
	require.NoError(t, err)
}

func newTestPool(t *testing.T) *pool.Pool {
	t.Helper()

	p, err := pool.New()
	require.NoError(t, err)

	addItem(t, p, pool.Attributes{Name: "item1", Default: 1.0})
	assert.Equal(t, "main", p.Locator().Name())
	assert.Equal(t, "item1", p.Locator().Last().Name())

	addItem(t, p, pool.Attributes{Name: "item2", Default: 2.0})
	require.NoError(t, p.Subpool("sub1"))
	assert.Equal(t, "sub1", p.Locator().Name())

	addItem(t, p, pool.Attributes{Name: "item3", Default: 3})
	require.NoError(t, p.Subpool("../sub2"))
	addItem(t, p, pool.Attributes{Name: "item4", Default: 4})
	assert.Equal(t, "sub2", p.Locator().Name())
	assert.Equal(t, `[DataItem "item4"]`, p.Locator().String())

	parent, err := p.Locator().Parent()
	require.NoError(t, err)
	assert.Equal(t, "main", parent.Name())

	require.NoError(t, p.Subpool("sub3"))
	addItem(t, p, pool.Attributes{Name: "item5", Default: 5})
	require.NoError(t, p.Subpool("sub4"))

	for i, name := range []string{"item6", "item7", "item8", "item9"} {
		addItem(t, p, pool.Attributes{Name: name, Default: 6 + i})
	}

	require.NoError(t, p.Subpool(".."))
	assert.Equal(t, "sub3", p.Locator().Name())

	addItem(t, p, pool.Attributes{Name: "item10", Default: 10})
	require.NoError(t, p.Subpool("sub4"))
	require.NoError(t, p.Subpool("../../sub5"))
	addItem(t, p, pool.Attributes{Name: "item11", Default: 11})
	require.NoError(t, p.Subpool("/sub2/sub3/sub4"))
	addItem(t, p, pool.Attributes{Name: "item12", Default: 12})
	p.Update()

	return p
}

func TestPoolString(t *testing.T) {
	t.Parallel()

	p := newTestPool(t)

	expected := `item1
item2
sub pool "sub1" (level=0)
    item3
sub pool "sub2" (level=0)
    item4
    subsub pool "sub3" (level=1)
        item5
        subsubsub pool "sub4" (level=2)
            item6
            item7
            item8
            item9
            item12
        item10
    subsub pool "sub5" (level=1)
        item11`
	assert.Equal(t, expected, p.String())
	assert.Contains(t, p.Dump(), `        DataItem "item5": value=5 default=5, str2type=int, widget=textline`)

	value, err := p.GetValue("item12")
	require.NoError(t, err)
	assert.Equal(t, 12, value)

	item, err := p.SetValue("sub5/item11", "42")
	require.NoError(t, err)
	assert.Equal(t, "item11", item.Name())
	assert.Equal(t, 42, item.Value())
}

func TestPoolAmbiguousName(t *testing.T) {
	t.Parallel()

	p, err := pool.New()
	require.NoError(t, err)

	require.NoError(t, p.DeclareGroup("body"))
	addItem(t, p, pool.Attributes{Name: "mass", Default: 0.43, Unit: "kg"})
	require.NoError(t, p.ChangeGroup(".."))
	require.NoError(t, p.DeclareGroup("wind"))
	addItem(t, p, pool.Attributes{Name: "mass", Default: 1.2, Unit: "kg"})
	p.Update()

	assert.Equal(t, []string{"/body/mass", "/wind/mass"}, p.Paths())

	_, err = p.Get("mass")

	var ambiguous tree.AmbiguousPathError
	require.True(t, errors.As(err, &ambiguous))
	assert.Equal(t, []string{"/body/mass", "/wind/mass"}, ambiguous.Candidates)

	item, err := p.Get("body/mass")
	require.NoError(t, err)
	assert.Equal(t, 0.43, item.Value())

	_, err = p.Get("velocity")

	var unknown tree.UnknownPathError
	require.True(t, errors.As(err, &unknown))

	assert.Equal(t, "fallback", p.GetValueOr("mass", "fallback"))
	assert.Equal(t, 1.2, p.GetValueOr("wind/mass", "fallback"))
}

func TestPoolNotFinalized(t *testing.T) {
	t.Parallel()

	p, err := pool.New()
	require.NoError(t, err)

	addItem(t, p, pool.Attributes{Name: "a", Default: 1})

	_, err = p.Get("a")

	var notFinalized pool.NotFinalizedError
	require.True(t, errors.As(err, &notFinalized))

	p.Update()

	value, err := p.GetValue("a")
	require.NoError(t, err)
	assert.Equal(t, 1, value)

	addItem(t, p, pool.Attributes{Name: "b", Default: 2})

	_, err = p.Get("b")
	require.Error(t, err, "index is a snapshot until the next Update")

	p.Update()

	_, err = p.Get("b")
	require.NoError(t, err)
}

func TestPoolEndToEnd(t *testing.T) {
	t.Parallel()

	p, err := pool.New()
	require.NoError(t, err)

	require.NoError(t, p.DeclareGroup("main"))
	addItem(t, p, pool.Attributes{Name: "rho", Default: 1.2, Unit: "kg/m**3", Help: "density"})
	require.NoError(t, p.DeclareGroup("body"))
	addItem(t, p, pool.Attributes{Name: "mass", Default: 0.43, Unit: "kg", Help: "mass"})
	p.Update()

	rho, err := p.GetValue("rho")
	require.NoError(t, err)
	assert.Equal(t, 1.2, rho)

	_, err = p.SetValue("mass", "430 g")
	require.NoError(t, err)

	mass, err := p.GetValue("mass")
	require.NoError(t, err)
	assert.InDelta(t, 0.43, mass, 1e-12)

	unit, err := p.GetUnit("/main/rho")
	require.NoError(t, err)
	assert.Equal(t, "kg/m**3", unit)

	withUnit, err := p.GetValueWithUnit("rho")
	require.NoError(t, err)
	assert.Equal(t, "1.2 kg/m**3", withUnit)

	quantity, err := p.GetQuantity("rho")
	require.NoError(t, err)
	assert.Equal(t, 1.2, quantity.Value())

	_, err = p.SetValue("rho", "1 kg")

	var unitErr pool.UnitIncompatibilityError
	require.True(t, errors.As(err, &unitErr))

	values, err := p.GetValues("rho")
	require.NoError(t, err)
	assert.Equal(t, []any{1.2}, values)
}

func TestPoolSetValues(t *testing.T) {
	t.Parallel()

	p, err := pool.New()
	require.NoError(t, err)

	addItem(t, p, pool.Attributes{Name: "angle", Default: 10.0, MinMax: []float64{0, 90}})
	addItem(t, p, pool.Attributes{Name: "n", Default: 1})
	addItem(t, p, pool.Attributes{Name: "verbose", Default: false})
	p.Update()

	err = p.SetValues(map[string]string{
		"angle":   "95",
		"n":       "3",
		"verbose": "maybe",
	})
	require.Error(t, err)

	var multiErr *errors.MultiError
	require.True(t, errors.As(err, &multiErr))
	assert.Equal(t, 2, multiErr.Len())
	assert.Contains(t, err.Error(), "2 errors occurred")

	assert.Equal(t, 10.0, p.GetValueOr("angle", nil))
	assert.Equal(t, 3, p.GetValueOr("n", nil))

	require.NoError(t, p.SetValues(map[string]string{"angle": "45", "verbose": "on"}))
	assert.Equal(t, true, p.GetValueOr("verbose", nil))
}

func TestPoolGetQuantityWithoutUnit(t *testing.T) {
	t.Parallel()

	p, err := pool.New()
	require.NoError(t, err)

	addItem(t, p, pool.Attributes{Name: "C_D", Default: 0.2})
	p.Update()

	_, err = p.GetQuantity("C_D")

	var noUnit pool.NoUnitError
	require.True(t, errors.As(err, &noUnit))
}

func TestPoolItemsAndTraverse(t *testing.T) {
	t.Parallel()

	p := newTestPool(t)

	var names []string

	for path, item := range p.Items() {
		assert.Equal(t, item.Name(), tree.ParsePath(path).Base())
		names = append(names, item.Name())
	}

	assert.Len(t, names, 12)
	assert.Equal(t, "/sub2/sub3/sub4/item12", p.Paths()[9])

	sum := 0

	pool.Traverse(p, tree.Visitor[*int]{
		Leaf: func(_ []string, _ int, leaf tree.Item, sum *int) {
			if value, ok := leaf.(*pool.DataItem).Value().(int); ok {
				*sum += value
			}
		},
	}, &sum)

	assert.Equal(t, 3+4+5+6+7+8+9+10+11+12, sum)
}

func TestPoolSetAttribute(t *testing.T) {
	t.Parallel()

	p := newTestPool(t)

	require.NoError(t, p.SetAttribute("widget_size", 30))

	for _, item := range p.Items() {
		assert.Equal(t, 30, item.WidgetSize())
	}
}

func TestPoolDefaults(t *testing.T) {
	t.Parallel()

	p, err := pool.New(pool.WithDefaults(pool.Defaults{WidgetSize: 20, MinMax: []float64{0, 1}}), pool.WithRootName("root"))
	require.NoError(t, err)
	assert.Equal(t, "root", p.Root().Name())

	item, err := p.AddItem(pool.Attributes{Name: "x", Default: 0.5})
	require.NoError(t, err)
	assert.Equal(t, 20, item.WidgetSize())
	assert.Equal(t, []float64{0, 1}, item.MinMaxOrDefault())
	assert.InDelta(t, 0.01, item.RangeStep(), 1e-12)
	assert.InDelta(t, 0.001, item.NumberStep(), 1e-12)

	_, err = pool.New(pool.WithDefaults(pool.Defaults{MinMax: []float64{1, 0}}))
	require.Error(t, err)
}

func TestPoolLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := log.New(log.WithOutput(&buf), log.WithLevel(log.DebugLevel), log.WithFormatter(log.NewTextFormatter(&buf)))

	p, err := pool.New(pool.WithLogger(logger))
	require.NoError(t, err)

	addItem(t, p, pool.Attributes{Name: "L", Default: 1.0})
	p.Update()

	_, err = p.SetValue("L", "2 km")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Registered unit km")
	assert.Contains(t, buf.String(), "Indexed 1 data items")
	assert.Contains(t, buf.String(), "item=L")
}

func TestMenu(t *testing.T) {
	t.Parallel()

	m, err := pool.NewMenu()
	require.NoError(t, err)

	_, err = m.AddItem(pool.Attributes{Name: "item1", Default: 1.0})
	require.NoError(t, err)
	require.NoError(t, m.Submenu("sub1"))
	_, err = m.AddItem(pool.Attributes{Name: "item2", Default: math.Pi})
	require.NoError(t, err)
	require.NoError(t, m.ChangeSubmenu("/"))
	m.Update()

	assert.Equal(t, "item1\nsub menu \"sub1\" (level=0)\n    item2", m.String())

	err = m.ChangeSubmenu("/missing")

	var nonExisting tree.NonExistingSubtreeError
	require.True(t, errors.As(err, &nonExisting))
}

func TestFromListTree(t *testing.T) {
	t.Parallel()

	list := []any{
		"main", []any{
			map[string]any{"name": "print intermediate results", "default": false},
			map[string]any{"name": "U", "default": 120, "unit": "km/h", "help": "velocity of body", "str2type": "eval"},
			"fluid properties", []any{
				map[string]any{"name": "rho", "default": 1.2, "unit": "kg/m**3", "help": "density"},
				map[string]any{"name": "mu", "default": 2e-5, "help": "viscosity"},
			},
			"body properties", []any{
				map[string]any{"name": "m", "default": 0.43, "unit": "kg", "help": "mass"},
				pool.Attributes{Name: "C_D", Default: 0.2, MinMax: []float64{0, 1}, Help: "drag coefficient"},
			},
			map[string]any{"name": "dt", "default": 0.1, "unit": "s"},
		},
	}

	p, err := pool.FromListTree(list)
	require.NoError(t, err)

	expected := `sub pool "main" (level=0)
    print intermediate results
    U
    subsub pool "fluid properties" (level=1)
        rho
        mu
    subsub pool "body properties" (level=1)
        m
        C_D
    dt`
	assert.Equal(t, expected, p.String())

	_, err = p.SetValue("C_D", "1.5")
	assert.True(t, pool.IsRangeOrOptionError(err))

	_, err = p.SetValue("U", "10 m/s")
	require.NoError(t, err)
	assert.InDelta(t, 36.0, p.GetValueOr("U", nil), 1e-9)

	_, err = pool.FromListTree([]any{"main", map[string]any{"name": "x"}})
	require.Error(t, err)

	_, err = pool.FromListTree([]any{42})
	require.Error(t, err)
}
