// Package tree implements an ordered tree of named groups (subtrees) and leaves.
//
// A Tree keeps a locator that works like the current directory of a shell: groups are
// entered with Subtree (creating missing ones, like `mkdir -p; cd`), left with
// relative paths such as "..", and leaves are added at the current location.
// Leaves are addressed by absolute paths ("/main/body/mass") or by any trailing
// substring of that path that is unique across the whole tree ("mass", "body/mass").
//
// Suffix matching is a plain string comparison and is not aware of path segments:
// "ss" matches "/main/body/mass" as long as no other leaf path ends with "ss".
package tree
