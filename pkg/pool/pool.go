// Package pool holds typed, unit-aware parameters in a tree of named groups.
//
// A pool is built top-down: declare groups, add items to the current group and navigate
// with relative or absolute paths. Update then freezes the set of addressable items and
// every item can be reached by its full path or by any unique trailing part of it:
//
//	p := pool.New()
//	p.AddItem(pool.Attributes{Name: "rho", Default: 1.2, Unit: "kg/m**3"})
//	p.Subpool("body")
//	p.AddItem(pool.Attributes{Name: "mass", Default: 0.43, Unit: "kg"})
//	p.Update()
//	p.SetValue("mass", "430 g") // stores 0.43
package pool

import (
	"iter"
	"maps"
	"slices"

	"github.com/gruntwork-io/parampool/internal/errors"
	"github.com/gruntwork-io/parampool/pkg/log"
	"github.com/gruntwork-io/parampool/pkg/tree"
	"github.com/gruntwork-io/parampool/pkg/units"
)

const (
	DefaultRootName = "main"
	noun            = "pool"
)

// Pool is a tree of groups and data items.
type Pool struct {
	*tree.Tree

	logger   log.Logger
	index    *tree.Index[*DataItem]
	rootName string
	defaults Defaults
}

// Option configures a Pool.
type Option func(pool *Pool)

// WithRootName names the root group, "main" by default.
func WithRootName(name string) Option {
	return func(pool *Pool) {
		pool.rootName = name
	}
}

// WithDefaults sets the defaults handed to every item. Zero fields keep their default.
func WithDefaults(defaults Defaults) Option {
	return func(pool *Pool) {
		pool.defaults = defaults
	}
}

// WithLogger sets the logger, the pool is silent otherwise.
func WithLogger(logger log.Logger) Option {
	return func(pool *Pool) {
		pool.logger = logger
	}
}

// New returns an empty pool. It fails only when the given defaults are inconsistent.
func New(opts ...Option) (*Pool, error) {
	pool := &Pool{
		rootName: DefaultRootName,
		defaults: DefaultDefaults(),
		logger:   log.Discard(),
	}

	for _, opt := range opts {
		opt(pool)
	}

	defaults, err := pool.defaults.Complete()
	if err != nil {
		return nil, err
	}

	pool.defaults = defaults
	pool.Tree = tree.New(pool.rootName)
	pool.SetNoun(noun)

	return pool, nil
}

// Defaults returns the defaults handed to items.
func (pool *Pool) Defaults() Defaults {
	return pool.defaults
}

func (pool *Pool) Logger() log.Logger {
	return pool.logger
}

// Subpool enters the group at path, creating missing groups.
func (pool *Pool) Subpool(path string) error {
	if err := pool.Subtree(path); err != nil {
		return err
	}

	pool.logger.Debugf("Entered group %q", pool.Locator().Name())

	return nil
}

// ChangeSubpool enters the existing group at path.
func (pool *Pool) ChangeSubpool(path string) error {
	return pool.ChangeSubtree(path)
}

// DeclareGroup enters the group name below the current group, creating it if needed.
func (pool *Pool) DeclareGroup(name string) error {
	return pool.Subpool(name)
}

// ChangeGroup is ChangeSubpool.
func (pool *Pool) ChangeGroup(path string) error {
	return pool.ChangeSubpool(path)
}

func (pool *Pool) itemOptions() []ItemOption {
	return []ItemOption{WithItemDefaults(pool.defaults), WithItemLogger(pool.logger)}
}

// AddItem declares a data item in the current group.
func (pool *Pool) AddItem(attrs Attributes) (*DataItem, error) {
	item, err := NewDataItem(attrs, pool.itemOptions()...)
	if err != nil {
		return nil, err
	}

	pool.AddLeaf(item)
	pool.logger.Debugf("Declared %s in %q", item, pool.Locator().Name())

	return item, nil
}

// AddItemFromMap declares a data item from attributes keyed by name, see DecodeAttributes.
func (pool *Pool) AddItemFromMap(input map[string]any) (*DataItem, error) {
	attrs, err := DecodeAttributes(input)
	if err != nil {
		return nil, err
	}

	return pool.AddItem(attrs)
}

// Update builds the index of item paths. Items added later are not visible to Get
// until Update runs again.
func (pool *Pool) Update() {
	pool.index = tree.NewIndex[*DataItem](pool.Root())
	pool.logger.Debugf("Indexed %d data items", pool.index.Len())
}

// Index returns the index built by the last Update, nil before.
func (pool *Pool) Index() *tree.Index[*DataItem] {
	return pool.index
}

// Get returns the item whose path ends with name.
func (pool *Pool) Get(name string) (*DataItem, error) {
	if pool.index == nil {
		return nil, errors.New(NotFinalizedError{Name: name})
	}

	return pool.index.Get(name)
}

// GetValue returns the first value of the item.
func (pool *Pool) GetValue(name string) (any, error) {
	item, err := pool.Get(name)
	if err != nil {
		return nil, err
	}

	return item.Value(), nil
}

// GetValueOr returns the first value of the item, or fallback when name does not resolve.
func (pool *Pool) GetValueOr(name string, fallback any) any {
	value, err := pool.GetValue(name)
	if err != nil {
		return fallback
	}

	return value
}

// GetValues returns all values of the item.
func (pool *Pool) GetValues(name string) ([]any, error) {
	item, err := pool.Get(name)
	if err != nil {
		return nil, err
	}

	return item.Values(), nil
}

// SetValue assigns raw to the item and returns it.
func (pool *Pool) SetValue(name, raw string) (*DataItem, error) {
	item, err := pool.Get(name)
	if err != nil {
		return nil, err
	}

	if err := item.SetValue(raw); err != nil {
		return item, err
	}

	return item, nil
}

// SetValues assigns every entry, in name order, and reports all failures together.
func (pool *Pool) SetValues(values map[string]string) error {
	var errs *errors.MultiError

	for _, name := range slices.Sorted(maps.Keys(values)) {
		if _, err := pool.SetValue(name, values[name]); err != nil {
			errs = errs.Append(err)
		}
	}

	return errs.ErrorOrNil()
}

// GetUnit returns the registered unit of the item, empty when it has none.
func (pool *Pool) GetUnit(name string) (string, error) {
	item, err := pool.Get(name)
	if err != nil {
		return "", err
	}

	return item.Unit(), nil
}

// GetValueWithUnit returns "value unit".
func (pool *Pool) GetValueWithUnit(name string) (string, error) {
	item, err := pool.Get(name)
	if err != nil {
		return "", err
	}

	return item.ValueWithUnit(""), nil
}

// GetQuantity returns the value of the item with its unit.
func (pool *Pool) GetQuantity(name string) (units.Quantity, error) {
	item, err := pool.Get(name)
	if err != nil {
		return units.Quantity{}, err
	}

	return item.Quantity()
}

// Paths returns the full paths of all items in declaration order.
func (pool *Pool) Paths() []string {
	var paths []string

	for path := range pool.Items() {
		paths = append(paths, path)
	}

	return paths
}

// Items iterates over the full paths and items in declaration order.
func (pool *Pool) Items() iter.Seq2[string, *DataItem] {
	return func(yield func(string, *DataItem) bool) {
		for event := range pool.Walk() {
			item, ok := event.Item.(*DataItem)
			if event.Kind != tree.LeafEvent || !ok {
				continue
			}

			if !yield(tree.LeafPath(event.Path, item.Name()), item) {
				return
			}
		}
	}
}

// Walk returns the depth-first events of the pool.
func (pool *Pool) Walk() iter.Seq[tree.Event] {
	return tree.Walk(pool.Root())
}

// SetAttribute sets a descriptive attribute on every item, e.g. "widget_size".
func (pool *Pool) SetAttribute(name string, value any) error {
	for _, item := range pool.Items() {
		if err := item.SetAttribute(name, value); err != nil {
			return err
		}
	}

	return nil
}

// Traverse calls visitor for every group and item of the pool, threading data through.
func Traverse[T any](pool *Pool, visitor tree.Visitor[T], data T) {
	tree.Traverse(pool.Root(), visitor, data)
}
