package tree

import "strings"

const (
	Separator = "/"
	ParentDir = ".."
	CurDir    = "."
)

// Path is a sequence of names from the root (absolute) or from the current location (relative).
type Path struct {
	segments []string
	absolute bool
}

// ParsePath parses "/a/b/c", "a/b", "../c". Empty segments are dropped.
func ParsePath(str string) Path {
	path := Path{absolute: strings.HasPrefix(str, Separator)}

	for _, segment := range strings.Split(str, Separator) {
		if segment != "" {
			path.segments = append(path.segments, segment)
		}
	}

	return path
}

// NewPath returns an absolute path made of the given names.
func NewPath(segments ...string) Path {
	return Path{segments: append([]string(nil), segments...), absolute: true}
}

// Segments returns a copy of the names of the path.
func (path Path) Segments() []string {
	return append([]string(nil), path.segments...)
}

// Base returns the last name of the path, or an empty string.
func (path Path) Base() string {
	if len(path.segments) == 0 {
		return ""
	}

	return path.segments[len(path.segments)-1]
}

// Parent returns the path without its last name.
func (path Path) Parent() Path {
	if len(path.segments) == 0 {
		return path
	}

	return Path{segments: path.Segments()[:len(path.segments)-1], absolute: path.absolute}
}

// Join appends names to the path.
func (path Path) Join(names ...string) Path {
	return Path{segments: append(path.Segments(), names...), absolute: path.absolute}
}

func (path Path) IsAbsolute() bool {
	return path.absolute
}

func (path Path) IsRelative() bool {
	return !path.absolute
}

// String implements fmt.Stringer.
func (path Path) String() string {
	str := strings.Join(path.segments, Separator)
	if path.absolute {
		return Separator + str
	}

	return str
}
