package tree

import (
	"fmt"
	"strings"

	"github.com/gruntwork-io/parampool/internal/errors"
)

// Item is anything stored in a SubTree: a leaf or another *SubTree.
type Item interface {
	Name() string
}

// SubTree is a named group holding an ordered list of leaves and subtrees.
// The parent link is only used for upward navigation.
type SubTree struct {
	name   string
	items  []Item
	parent *SubTree
}

// NewSubTree creates an empty subtree, parent is nil for a root.
func NewSubTree(name string, parent *SubTree) *SubTree {
	return &SubTree{name: name, parent: parent}
}

func (subtree *SubTree) Name() string {
	return subtree.name
}

// Add appends a leaf or subtree, keeping insertion order.
func (subtree *SubTree) Add(item Item) {
	if child, ok := item.(*SubTree); ok && child.parent == nil {
		child.parent = subtree
	}

	subtree.items = append(subtree.items, item)
}

// Parent returns the enclosing subtree.
func (subtree *SubTree) Parent() (*SubTree, error) {
	if subtree.parent == nil {
		return nil, errors.New(OutOfTreeError{Path: subtree.name + Separator + ParentDir})
	}

	return subtree.parent, nil
}

// IsRoot returns true if the subtree has no parent.
func (subtree *SubTree) IsRoot() bool {
	return subtree.parent == nil
}

// Items returns the children in insertion order.
func (subtree *SubTree) Items() []Item {
	return append([]Item(nil), subtree.items...)
}

// Len returns the number of children.
func (subtree *SubTree) Len() int {
	return len(subtree.items)
}

// Last returns the most recently added child, or nil.
func (subtree *SubTree) Last() Item {
	if len(subtree.items) == 0 {
		return nil
	}

	return subtree.items[len(subtree.items)-1]
}

// Child returns the first child subtree with the given name.
func (subtree *SubTree) Child(name string) *SubTree {
	for _, item := range subtree.items {
		if child, ok := item.(*SubTree); ok && child.name == name {
			return child
		}
	}

	return nil
}

// Kind implements the optional `Kind() string` method used by String.
func (subtree *SubTree) Kind() string {
	return "SubTree"
}

// String returns `[DataItem "a", SubTree "b"]`.
func (subtree *SubTree) String() string {
	strs := make([]string, 0, len(subtree.items))

	for _, item := range subtree.items {
		strs = append(strs, fmt.Sprintf("%s %q", kindOf(item), item.Name()))
	}

	return "[" + strings.Join(strs, ", ") + "]"
}

func kindOf(item Item) string {
	if kinded, ok := item.(interface{ Kind() string }); ok {
		return kinded.Kind()
	}

	return "Leaf"
}
