package urltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimplePaths(t *testing.T) {
	s := NewDefaultSerializer()

	t.Run("root", func(t *testing.T) {
		tree, err := s.Parse("/")
		require.NoError(t, err)
		assert.False(t, tree.Root.HasChildren())
		assert.Empty(t, tree.QueryParams)
		assert.Empty(t, tree.Fragment)
	})

	t.Run("single segment", func(t *testing.T) {
		tree, err := s.Parse("/users")
		require.NoError(t, err)
		primary := tree.Root.PrimaryChild()
		require.NotNil(t, primary)
		require.Len(t, primary.Segments, 1)
		assert.Equal(t, "users", primary.Segments[0].Path)
	})

	t.Run("nested segments", func(t *testing.T) {
		tree, err := s.Parse("/users/42/profile")
		require.NoError(t, err)
		primary := tree.Root.PrimaryChild()
		require.NotNil(t, primary)
		require.Len(t, primary.Segments, 3)
		assert.Equal(t, "42", primary.Segments[1].Path)
	})
}

func TestParseMatrixParams(t *testing.T) {
	s := NewDefaultSerializer()

	tree, err := s.Parse("/users;role=admin;team=core/list")
	require.NoError(t, err)

	primary := tree.Root.PrimaryChild()
	require.NotNil(t, primary)
	require.Len(t, primary.Segments, 2)
	assert.Equal(t, map[string]string{"role": "admin", "team": "core"}, primary.Segments[0].Parameters)
	assert.Empty(t, primary.Segments[1].Parameters)
}

func TestParseQueryParamsAndFragment(t *testing.T) {
	s := NewDefaultSerializer()

	tree, err := s.Parse("/search?q=routing&tag=a&tag=b#results")
	require.NoError(t, err)

	assert.Equal(t, []string{"routing"}, tree.QueryParams["q"])
	assert.Equal(t, []string{"a", "b"}, tree.QueryParams["tag"])
	assert.Equal(t, "results", tree.Fragment)
}

func TestParseAuxiliaryOutlets(t *testing.T) {
	s := NewDefaultSerializer()

	t.Run("secondary outlet", func(t *testing.T) {
		tree, err := s.Parse("/inbox(popup:compose)")
		require.NoError(t, err)

		primary := tree.Root.PrimaryChild()
		require.NotNil(t, primary)
		require.Len(t, primary.Segments, 1)
		assert.Equal(t, "inbox", primary.Segments[0].Path)

		popup := tree.Root.Children["popup"]
		require.NotNil(t, popup)
		require.Len(t, popup.Segments, 1)
		assert.Equal(t, "compose", popup.Segments[0].Path)
	})

	t.Run("outlet at root", func(t *testing.T) {
		tree, err := s.Parse("/(left:nav//right:tools)")
		require.NoError(t, err)

		assert.NotNil(t, tree.Root.Children["left"])
		assert.NotNil(t, tree.Root.Children["right"])
	})
}

func TestParseErrors(t *testing.T) {
	s := NewDefaultSerializer()

	for _, bad := range []string{
		"/users)",       // stray closing paren
		"/users;=value", // matrix parameter without a key
		"/;a=b",         // empty segment with parameters
	} {
		_, err := s.Parse(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	s := NewDefaultSerializer()

	for _, url := range []string{
		"/",
		"/users",
		"/users/42/profile",
		"/users;role=admin/list",
		"/search?q=routing",
		"/search?q=a%20b&tag=x&tag=y#frag",
		"/inbox(popup:compose)",
		"/team/33;expand=true(aux:chat;open=yes)",
	} {
		tree, err := s.Parse(url)
		require.NoError(t, err, "parse %q", url)

		serialized := s.Serialize(tree)
		reparsed, err := s.Parse(serialized)
		require.NoError(t, err, "reparse %q", serialized)
		assert.True(t, tree.Equal(reparsed), "round trip of %q via %q", url, serialized)
	}
}

func TestSerializeEncodesSpecialCharacters(t *testing.T) {
	s := NewDefaultSerializer()

	tree := NewTree()
	tree.Root.Children[PrimaryOutlet] = &SegmentGroup{
		Segments: []Segment{{Path: "a b/c"}},
	}
	tree.QueryParams = map[string][]string{"q": {"x&y"}}

	serialized := s.Serialize(tree)
	reparsed, err := s.Parse(serialized)
	require.NoError(t, err)
	assert.True(t, tree.Equal(reparsed))
}

func TestTreeEqual(t *testing.T) {
	s := NewDefaultSerializer()

	a, err := s.Parse("/users/42?q=x#top")
	require.NoError(t, err)
	b, err := s.Parse("/users/42?q=x#top")
	require.NoError(t, err)
	c, err := s.Parse("/users/43?q=x#top")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestTreeCopyIsIndependent(t *testing.T) {
	s := NewDefaultSerializer()

	original, err := s.Parse("/users/42?q=x")
	require.NoError(t, err)

	clone := original.Copy()
	clone.QueryParams["q"] = []string{"changed"}
	clone.Root.PrimaryChild().Segments[0].Path = "changed"

	assert.Equal(t, []string{"x"}, original.QueryParams["q"])
	assert.Equal(t, "users", original.Root.PrimaryChild().Segments[0].Path)
}
