package tree

import (
	"github.com/gruntwork-io/parampool/internal/errors"
)

// LeafPath returns the absolute path of a leaf given the names of its enclosing subtrees.
func LeafPath(groups []string, name string) string {
	return NewPath(groups...).Join(name).String()
}

// AllPaths returns the absolute path of every leaf below root, in traversal order.
func AllPaths(root *SubTree) []string {
	var paths []string

	for event := range Walk(root) {
		if event.Kind == LeafEvent {
			paths = append(paths, LeafPath(event.Path, event.Item.Name()))
		}
	}

	return paths
}

// UniqueShortName returns the one path in paths whose trailing substring of len(short)
// characters equals short.
func UniqueShortName(short string, paths []string) (string, error) {
	var matches []string

	if short != "" {
		for _, path := range paths {
			if len(path) >= len(short) && path[len(path)-len(short):] == short {
				matches = append(matches, path)
			}
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", errors.New(UnknownPathError{Path: short, Known: paths})
	default:
		return "", errors.New(AmbiguousPathError{Path: short, Candidates: matches})
	}
}

// Index maps the absolute paths of all leaves of type L to the leaves. It is a snapshot:
// it has to be rebuilt after the tree changes.
type Index[L Item] struct {
	leaves map[string]L
	paths  []string
}

// NewIndex collects every leaf of type L below root. Leaves of other types are skipped.
func NewIndex[L Item](root *SubTree) *Index[L] {
	index := &Index[L]{leaves: make(map[string]L)}

	for event := range Walk(root) {
		if event.Kind != LeafEvent {
			continue
		}

		leaf, ok := event.Item.(L)
		if !ok {
			continue
		}

		index.add(LeafPath(event.Path, leaf.Name()), leaf)
	}

	return index
}

// Rename returns a copy of the index with every path passed through fn.
func (index *Index[L]) Rename(fn func(path string) string) *Index[L] {
	renamed := &Index[L]{leaves: make(map[string]L, len(index.leaves))}

	for _, path := range index.paths {
		renamed.add(fn(path), index.leaves[path])
	}

	return renamed
}

// Duplicated paths stay in the path list, which makes every abbreviation of them ambiguous.
func (index *Index[L]) add(path string, leaf L) {
	index.paths = append(index.paths, path)

	if _, ok := index.leaves[path]; !ok {
		index.leaves[path] = leaf
	}
}

// Paths returns all absolute paths in traversal order.
func (index *Index[L]) Paths() []string {
	return append([]string(nil), index.paths...)
}

func (index *Index[L]) Len() int {
	return len(index.paths)
}

// Lookup returns the leaf stored under the exact absolute path.
func (index *Index[L]) Lookup(path string) (L, bool) {
	leaf, ok := index.leaves[path]
	return leaf, ok
}

// Resolve returns the absolute path that short uniquely abbreviates.
func (index *Index[L]) Resolve(short string) (string, error) {
	return UniqueShortName(short, index.paths)
}

// Get returns the leaf that short uniquely abbreviates.
func (index *Index[L]) Get(short string) (L, error) {
	path, err := index.Resolve(short)
	if err != nil {
		var zero L
		return zero, err
	}

	return index.leaves[path], nil
}
