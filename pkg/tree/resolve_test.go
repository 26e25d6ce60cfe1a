package tree_test

import (
	"strings"
	"testing"

	"github.com/gruntwork-io/parampool/internal/errors"
	"github.com/gruntwork-io/parampool/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildMassTree(t *testing.T) *tree.Tree {
	t.Helper()

	tr := tree.New("root")
	require.NoError(t, tr.Subtree("/main/body"))
	tr.AddLeaf(newLeaf("mass", 1))
	require.NoError(t, tr.Subtree("/main/wind"))
	tr.AddLeaf(newLeaf("mass", 2))
	tr.AddLeaf(newLeaf("RaD", 3))
	require.NoError(t, tr.Subtree("/main"))
	tr.AddLeaf(newLeaf("D", 4))

	return tr
}

func TestAllPaths(t *testing.T) {
	t.Parallel()

	tr := buildMassTree(t)
	assert.Equal(t, []string{
		"/main/body/mass",
		"/main/wind/mass",
		"/main/wind/RaD",
		"/main/D",
	}, tree.AllPaths(tr.Root()))
}

func TestUniqueShortName(t *testing.T) {
	t.Parallel()

	paths := tree.AllPaths(buildMassTree(t).Root())

	testCases := []struct {
		short     string
		expected  string
		ambiguous bool
		unknown   bool
	}{
		{short: "mass", ambiguous: true},
		{short: "body/mass", expected: "/main/body/mass"},
		{short: "/main/wind/mass", expected: "/main/wind/mass"},
		{short: "RaD", expected: "/main/wind/RaD"},
		// literal suffix comparison: "D" is the tail of both ".../RaD" and "/main/D"
		{short: "D", ambiguous: true},
		{short: "/D", expected: "/main/D"},
		// crosses a segment boundary but is still a unique literal suffix
		{short: "ind/RaD", expected: "/main/wind/RaD"},
		{short: "aD", expected: "/main/wind/RaD"},
		{short: "velocity", unknown: true},
		{short: "", unknown: true},
		{short: "/root/main/body/mass", unknown: true},
	}

	for _, tc := range testCases {
		t.Run(tc.short, func(t *testing.T) {
			t.Parallel()

			path, err := tree.UniqueShortName(tc.short, paths)

			switch {
			case tc.ambiguous:
				var ambiguous tree.AmbiguousPathError
				require.True(t, errors.As(err, &ambiguous), "%v", err)
				assert.Greater(t, len(ambiguous.Candidates), 1)

				for _, candidate := range ambiguous.Candidates {
					assert.True(t, strings.HasSuffix(candidate, tc.short))
					assert.Contains(t, err.Error(), candidate)
				}
			case tc.unknown:
				var unknown tree.UnknownPathError
				require.True(t, errors.As(err, &unknown), "%v", err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.expected, path)
			}
		})
	}
}

func TestIndex(t *testing.T) {
	t.Parallel()

	tr := buildMassTree(t)
	index := tree.NewIndex[*leaf](tr.Root())

	assert.Equal(t, 4, index.Len())

	body, err := index.Get("body/mass")
	require.NoError(t, err)
	assert.Equal(t, 1, body.deflt)

	_, err = index.Get("mass")
	require.Error(t, err)

	exact, ok := index.Lookup("/main/wind/mass")
	require.True(t, ok)
	assert.Equal(t, 2, exact.deflt)

	renamed := index.Rename(strings.ToUpper)
	upper, err := renamed.Get("WIND/RAD")
	require.NoError(t, err)
	assert.Equal(t, 3, upper.deflt)
}

func TestIndexDuplicatePathsAreAmbiguous(t *testing.T) {
	t.Parallel()

	tr := tree.New("root")
	tr.AddLeaf(newLeaf("x", 1))
	tr.AddLeaf(newLeaf("x", 2))

	index := tree.NewIndex[*leaf](tr.Root())

	_, err := index.Get("/x")

	var ambiguous tree.AmbiguousPathError
	require.True(t, errors.As(err, &ambiguous))
}
