package tree

import (
	"iter"
	"slices"
)

// Visitor holds the optional callbacks invoked by Traverse. path lists the names of
// the enclosing subtrees; for SubtreeStart and SubtreeEnd it ends with the subtree itself.
type Visitor[T any] struct {
	Leaf         func(path []string, level int, leaf Item, data T)
	SubtreeStart func(path []string, level int, subtree *SubTree, data T)
	SubtreeEnd   func(path []string, level int, subtree *SubTree, data T)
}

// Traverse walks the subtree depth-first in insertion order, threading data through every callback.
func Traverse[T any](root *SubTree, visitor Visitor[T], data T) {
	traverse(root, visitor, 0, nil, data)
}

func traverse[T any](subtree *SubTree, visitor Visitor[T], level int, path []string, data T) {
	for _, item := range subtree.items {
		child, ok := item.(*SubTree)
		if !ok {
			if visitor.Leaf != nil {
				visitor.Leaf(slices.Clone(path), level, item, data)
			}

			continue
		}

		childPath := append(slices.Clone(path), child.name)

		if visitor.SubtreeStart != nil {
			visitor.SubtreeStart(childPath, level, child, data)
		}

		traverse(child, visitor, level+1, childPath, data)

		if visitor.SubtreeEnd != nil {
			visitor.SubtreeEnd(childPath, level, child, data)
		}
	}
}

type EventKind byte

const (
	EnterGroup EventKind = iota
	LeafEvent
	ExitGroup
)

func (kind EventKind) String() string {
	switch kind {
	case EnterGroup:
		return "enter"
	case LeafEvent:
		return "leaf"
	case ExitGroup:
		return "exit"
	}

	return ""
}

// Event is produced by Walk. Item is the leaf for LeafEvent, otherwise the *SubTree.
type Event struct {
	Item  Item
	Path  []string
	Kind  EventKind
	Level int
}

// Walk returns the same depth-first order as Traverse as a lazy sequence of events.
func Walk(root *SubTree) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		walk(root, 0, nil, yield)
	}
}

func walk(subtree *SubTree, level int, path []string, yield func(Event) bool) bool {
	for _, item := range subtree.items {
		child, ok := item.(*SubTree)
		if !ok {
			if !yield(Event{Kind: LeafEvent, Path: slices.Clone(path), Level: level, Item: item}) {
				return false
			}

			continue
		}

		childPath := append(slices.Clone(path), child.name)

		if !yield(Event{Kind: EnterGroup, Path: childPath, Level: level, Item: child}) {
			return false
		}

		if !walk(child, level+1, childPath, yield) {
			return false
		}

		if !yield(Event{Kind: ExitGroup, Path: childPath, Level: level, Item: child}) {
			return false
		}
	}

	return true
}
