package pool

import (
	"slices"

	"github.com/gruntwork-io/parampool/internal/errors"
	"github.com/gruntwork-io/parampool/pkg/tree"
)

// FromListTree builds a pool from a nested list. A string names a group and must be
// followed by a []any holding the content of the group. Items are given as
// map[string]any (see DecodeAttributes) or Attributes:
//
//	[]any{
//		"main", []any{
//			map[string]any{"name": "U", "default": 120, "unit": "km/h"},
//			"fluid properties", []any{
//				map[string]any{"name": "rho", "default": 1.2, "unit": "kg/m**3"},
//			},
//		},
//	}
//
// The returned pool is already updated.
func FromListTree(list []any, opts ...Option) (*Pool, error) {
	pool, err := New(opts...)
	if err != nil {
		return nil, err
	}

	if err := pool.addListTree(list, nil); err != nil {
		return nil, err
	}

	pool.Update()

	return pool, nil
}

func (pool *Pool) addListTree(list []any, groups []string) error {
	for i := 0; i < len(list); i++ {
		switch elem := list[i].(type) {
		case string:
			if i+1 >= len(list) {
				return errors.Errorf("group %q is not followed by a list", elem)
			}

			children, ok := list[i+1].([]any)
			if !ok {
				return errors.Errorf("group %q is followed by %T, not a list", elem, list[i+1])
			}

			i++

			subgroups := append(slices.Clone(groups), elem)

			if err := pool.Subpool(tree.NewPath(subgroups...).String()); err != nil {
				return err
			}

			if err := pool.addListTree(children, subgroups); err != nil {
				return err
			}

			if err := pool.ChangeSubpool(tree.NewPath(groups...).String()); err != nil {
				return err
			}
		case map[string]any:
			if _, err := pool.AddItemFromMap(elem); err != nil {
				return err
			}
		case Attributes:
			if _, err := pool.AddItem(elem); err != nil {
				return err
			}
		default:
			return errors.Errorf("wrong type %T in list tree, value %v", elem, elem)
		}
	}

	return nil
}
