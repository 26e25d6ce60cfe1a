package tree

import (
	"fmt"
	"strings"

	"github.com/gruntwork-io/parampool/internal/errors"
)

const DefaultNoun = "tree"

// Tree is a root subtree plus a locator pointing at the current subtree.
type Tree struct {
	root    *SubTree
	locator *SubTree
	noun    string
}

// New creates a tree with an empty root named rootName.
func New(rootName string) *Tree {
	return NewWithRoot(NewSubTree(rootName, nil))
}

// NewWithRoot creates a tree around an existing root.
func NewWithRoot(root *SubTree) *Tree {
	return &Tree{
		root:    root,
		locator: root,
		noun:    DefaultNoun,
	}
}

// SetNoun changes the word used by String for subtrees, e.g. "pool" gives `sub pool "x"`.
func (tree *Tree) SetNoun(noun string) {
	tree.noun = noun
}

// LevelName returns "sub tree" for level 0, "subsub tree" for level 1 and so on.
func (tree *Tree) LevelName(level int) string {
	return strings.Repeat("sub", level+1) + " " + tree.noun
}

func (tree *Tree) Root() *SubTree {
	return tree.root
}

// Locator returns the current subtree.
func (tree *Tree) Locator() *SubTree {
	return tree.locator
}

// Subtree moves the locator along path, creating every missing subtree on the way.
func (tree *Tree) Subtree(path string) error {
	return tree.walk(ParsePath(path), true)
}

// ChangeSubtree moves the locator along path. Nothing is created: a missing subtree
// returns NonExistingSubtreeError and the locator is left where it was.
func (tree *Tree) ChangeSubtree(path string) error {
	return tree.walk(ParsePath(path), false)
}

// CreateSubtree adds a new subtree at the current location and moves into it.
func (tree *Tree) CreateSubtree(name string) *SubTree {
	subtree := NewSubTree(name, tree.locator)

	tree.locator.Add(subtree)
	tree.locator = subtree

	return subtree
}

// AddLeaf adds a leaf at the current location.
func (tree *Tree) AddLeaf(leaf Item) {
	tree.locator.Add(leaf)
}

func (tree *Tree) walk(path Path, create bool) error {
	original := tree.locator

	if path.IsAbsolute() {
		tree.locator = tree.root
	}

	for _, name := range path.segments {
		switch name {
		case CurDir:
			continue
		case ParentDir:
			if tree.locator.parent == nil {
				tree.locator = original
				return errors.New(OutOfTreeError{Path: path.String()})
			}

			tree.locator = tree.locator.parent
		default:
			if child := tree.locator.Child(name); child != nil {
				tree.locator = child
				continue
			}

			if !create {
				tree.locator = original
				return errors.New(NonExistingSubtreeError{Path: path.String(), Name: name})
			}

			tree.CreateSubtree(name)
		}
	}

	return nil
}

// String returns the names of subtrees and leaves, indented by level.
func (tree *Tree) String() string {
	return tree.format(func(leaf Item) string { return leaf.Name() })
}

// Dump works like String but prints leaves with their own String method when available.
func (tree *Tree) Dump() string {
	return tree.format(func(leaf Item) string {
		if stringer, ok := leaf.(fmt.Stringer); ok {
			return stringer.String()
		}

		return leaf.Name()
	})
}

func (tree *Tree) format(leafString func(Item) string) string {
	var lines []string

	Traverse(tree.root, Visitor[*[]string]{
		Leaf: func(_ []string, level int, leaf Item, lines *[]string) {
			*lines = append(*lines, indent(level)+leafString(leaf))
		},
		SubtreeStart: func(path []string, level int, _ *SubTree, lines *[]string) {
			*lines = append(*lines, fmt.Sprintf("%s%s %q (level=%d)", indent(level), tree.LevelName(level), path[len(path)-1], level))
		},
	}, &lines)

	return strings.Join(lines, "\n")
}

func indent(level int) string {
	return strings.Repeat("    ", level)
}
