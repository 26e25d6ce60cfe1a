package tree

import (
	"fmt"
	"strings"
)

// OutOfTreeError is returned when a path walks above the root.
type OutOfTreeError struct {
	Path string
}

func (err OutOfTreeError) Error() string {
	return fmt.Sprintf("path %s walks out of the tree", err.Path)
}

// NonExistingSubtreeError is returned by ChangeSubtree when a group on the path does not exist.
type NonExistingSubtreeError struct {
	Path string
	Name string
}

func (err NonExistingSubtreeError) Error() string {
	return fmt.Sprintf("subtree %q of path %s was not found", err.Name, err.Path)
}

// AmbiguousPathError is returned when an abbreviated path matches more than one leaf.
type AmbiguousPathError struct {
	Path       string
	Candidates []string
}

func (err AmbiguousPathError) Error() string {
	return fmt.Sprintf("%s is not a unique name, it matches %s", err.Path, strings.Join(err.Candidates, ", "))
}

// UnknownPathError is returned when an abbreviated path matches no leaf.
type UnknownPathError struct {
	Path  string
	Known []string
}

func (err UnknownPathError) Error() string {
	return fmt.Sprintf("%s does not match any name among\n%s", err.Path, strings.Join(err.Known, ", "))
}
