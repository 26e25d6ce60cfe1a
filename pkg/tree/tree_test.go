package tree_test

import (
	"testing"

	"github.com/gruntwork-io/parampool/internal/errors"
	"github.com/gruntwork-io/parampool/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leaf struct {
	name  string
	deflt int
}

func (l *leaf) Name() string { return l.name }

func (l *leaf) Kind() string { return "Leaf" }

func (l *leaf) String() string { return `Leaf "` + l.name + `"` }

func newLeaf(name string, deflt int) *leaf {
	return &leaf{name: name, deflt: deflt}
}

func buildTestTree(t *testing.T) *tree.Tree {
	t.Helper()

	tr := tree.New("main")
	tr.AddLeaf(newLeaf("item1", 1))
	tr.AddLeaf(newLeaf("item2", 2))
	require.NoError(t, tr.Subtree("sub1"))
	tr.AddLeaf(newLeaf("item3", 3))
	require.NoError(t, tr.Subtree("../sub2"))
	tr.AddLeaf(newLeaf("item4", 4))
	require.NoError(t, tr.Subtree("sub3"))
	tr.AddLeaf(newLeaf("item5", 5))
	require.NoError(t, tr.Subtree("sub4"))
	tr.AddLeaf(newLeaf("item6", 6))
	tr.AddLeaf(newLeaf("item7", 7))
	tr.AddLeaf(newLeaf("item8", 8))
	tr.AddLeaf(newLeaf("item9", 9))
	require.NoError(t, tr.Subtree(".."))
	tr.AddLeaf(newLeaf("item10", 10))
	require.NoError(t, tr.Subtree("sub4"))
	require.NoError(t, tr.Subtree("../../sub5"))
	tr.AddLeaf(newLeaf("item11", 11))
	require.NoError(t, tr.Subtree("/sub2/sub3/sub4"))
	tr.AddLeaf(newLeaf("item12", 12))

	return tr
}

func TestTreeNavigation(t *testing.T) {
	t.Parallel()

	tr := tree.New("main")
	tr.AddLeaf(newLeaf("item1", 1))
	assert.Equal(t, "main", tr.Locator().Name())
	assert.Equal(t, "item1", tr.Locator().Last().Name())

	require.NoError(t, tr.Subtree("sub1"))
	assert.Equal(t, "sub1", tr.Locator().Name())

	require.NoError(t, tr.Subtree("../sub2"))
	tr.AddLeaf(newLeaf("item4", 4))
	assert.Equal(t, "sub2", tr.Locator().Name())
	assert.Equal(t, `[Leaf "item4"]`, tr.Locator().String())

	parent, err := tr.Locator().Parent()
	require.NoError(t, err)
	assert.Equal(t, "main", parent.Name())
}

func TestTreeString(t *testing.T) {
	t.Parallel()

	tr := buildTestTree(t)

	expected := `item1
item2
sub tree "sub1" (level=0)
    item3
sub tree "sub2" (level=0)
    item4
    subsub tree "sub3" (level=1)
        item5
        subsubsub tree "sub4" (level=2)
            item6
            item7
            item8
            item9
            item12
        item10
    subsub tree "sub5" (level=1)
        item11`
	assert.Equal(t, expected, tr.String())

	tr.SetNoun("pool")
	assert.Contains(t, tr.Dump(), `Leaf "item1"`)
	assert.Contains(t, tr.Dump(), `    subsub pool "sub3" (level=1)`)
}

func TestTreeOutOfTree(t *testing.T) {
	t.Parallel()

	tr := tree.New("main")
	require.NoError(t, tr.Subtree("a"))

	err := tr.Subtree("../..")
	require.Error(t, err)

	var outOfTree tree.OutOfTreeError
	require.True(t, errors.As(err, &outOfTree))
	assert.Equal(t, "../..", outOfTree.Path)
	assert.Equal(t, "a", tr.Locator().Name(), "locator must not move on failure")

	_, err = tr.Root().Parent()
	require.True(t, errors.As(err, &outOfTree))
}

func TestTreeChangeSubtreeDoesNotCreate(t *testing.T) {
	t.Parallel()

	tr := tree.New("main")
	require.NoError(t, tr.Subtree("a/b"))
	require.NoError(t, tr.ChangeSubtree("/a"))
	assert.Equal(t, "a", tr.Locator().Name())

	err := tr.ChangeSubtree("/a/missing")

	var nonExisting tree.NonExistingSubtreeError
	require.True(t, errors.As(err, &nonExisting))
	assert.Equal(t, "missing", nonExisting.Name)
	assert.Equal(t, "a", tr.Locator().Name())
	assert.Equal(t, 1, tr.Root().Len())
}

func TestSubtreeReusesExistingGroups(t *testing.T) {
	t.Parallel()

	tr := tree.New("main")
	require.NoError(t, tr.Subtree("a"))
	require.NoError(t, tr.Subtree("/a"))
	require.NoError(t, tr.Subtree("/a/./b"))

	assert.Equal(t, 1, tr.Root().Len())
	assert.Equal(t, "b", tr.Locator().Name())
}

func TestPath(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		str      string
		expected string
		base     string
		absolute bool
	}{
		{"/main/body/mass", "/main/body/mass", "mass", true},
		{"../sub2", "../sub2", "sub2", false},
		{"mass", "mass", "mass", false},
		{"//a//b/", "/a/b", "b", true},
	}

	for _, tc := range testCases {
		t.Run(tc.str, func(t *testing.T) {
			t.Parallel()

			path := tree.ParsePath(tc.str)
			assert.Equal(t, tc.expected, path.String())
			assert.Equal(t, tc.base, path.Base())
			assert.Equal(t, tc.absolute, path.IsAbsolute())
			assert.Equal(t, !tc.absolute, path.IsRelative())
		})
	}

	assert.Equal(t, "/a/b", tree.NewPath("a", "b", "c").Parent().String())
	assert.Equal(t, "/a/b/c", tree.NewPath("a").Join("b", "c").String())
}
