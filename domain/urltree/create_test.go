package urltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, url string) *Tree {
	t.Helper()
	tree, err := NewDefaultSerializer().Parse(url)
	require.NoError(t, err)
	return tree
}

func TestCreateTreeFromRoot(t *testing.T) {
	tree, err := CreateTree([]interface{}{"team", "33", "user", "victor"}, CreateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "/team/33/user/victor", tree.String())
}

func TestCreateTreeAbsoluteCommand(t *testing.T) {
	base := mustParse(t, "/ignored/deep/path")
	tree, err := CreateTree([]interface{}{"/team/33"}, CreateOptions{RelativeTo: base})
	require.NoError(t, err)
	assert.Equal(t, "/team/33", tree.String())
}

func TestCreateTreeRelative(t *testing.T) {
	base := mustParse(t, "/team/33/user")

	t.Run("append", func(t *testing.T) {
		tree, err := CreateTree([]interface{}{"victor"}, CreateOptions{RelativeTo: base})
		require.NoError(t, err)
		assert.Equal(t, "/team/33/user/victor", tree.String())
	})

	t.Run("one level up", func(t *testing.T) {
		tree, err := CreateTree([]interface{}{"../admin"}, CreateOptions{RelativeTo: base})
		require.NoError(t, err)
		assert.Equal(t, "/team/33/admin", tree.String())
	})

	t.Run("current level marker is skipped", func(t *testing.T) {
		tree, err := CreateTree([]interface{}{"./victor"}, CreateOptions{RelativeTo: base})
		require.NoError(t, err)
		assert.Equal(t, "/team/33/user/victor", tree.String())
	})

	t.Run("too many levels up", func(t *testing.T) {
		_, err := CreateTree([]interface{}{"../../../../x"}, CreateOptions{RelativeTo: base})
		assert.Error(t, err)
	})
}

func TestCreateTreeMatrixParams(t *testing.T) {
	tree, err := CreateTree([]interface{}{"team", "33", map[string]string{"expand": "true"}}, CreateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "/team/33;expand=true", tree.String())
}

func TestCreateTreeInvalidCommands(t *testing.T) {
	t.Run("nil command", func(t *testing.T) {
		_, err := CreateTree([]interface{}{"team", nil}, CreateOptions{})
		assert.Error(t, err)
	})

	t.Run("leading matrix params", func(t *testing.T) {
		_, err := CreateTree([]interface{}{map[string]string{"a": "b"}}, CreateOptions{})
		assert.Error(t, err)
	})

	t.Run("unsupported command type", func(t *testing.T) {
		_, err := CreateTree([]interface{}{42}, CreateOptions{})
		assert.Error(t, err)
	})

	t.Run("double dots after segments", func(t *testing.T) {
		_, err := CreateTree([]interface{}{"team/../33"}, CreateOptions{})
		assert.Error(t, err)
	})
}

func TestCreateTreeQueryParamsHandling(t *testing.T) {
	base := mustParse(t, "/list?page=2&sort=name")

	t.Run("default replaces", func(t *testing.T) {
		tree, err := CreateTree([]interface{}{"list"}, CreateOptions{
			RelativeTo:  base,
			QueryParams: map[string][]string{"filter": {"on"}},
		})
		require.NoError(t, err)
		assert.Equal(t, map[string][]string{"filter": {"on"}}, tree.QueryParams)
	})

	t.Run("merge keeps existing", func(t *testing.T) {
		tree, err := CreateTree([]interface{}{"list"}, CreateOptions{
			RelativeTo:          base,
			QueryParams:         map[string][]string{"page": {"3"}},
			QueryParamsHandling: QueryParamsMerge,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"3"}, tree.QueryParams["page"])
		assert.Equal(t, []string{"name"}, tree.QueryParams["sort"])
	})

	t.Run("preserve ignores new", func(t *testing.T) {
		tree, err := CreateTree([]interface{}{"list"}, CreateOptions{
			RelativeTo:          base,
			QueryParams:         map[string][]string{"page": {"3"}},
			QueryParamsHandling: QueryParamsPreserve,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"2"}, tree.QueryParams["page"])
	})
}

func TestCreateTreeFragment(t *testing.T) {
	base := mustParse(t, "/docs#intro")

	t.Run("explicit fragment", func(t *testing.T) {
		tree, err := CreateTree([]interface{}{"docs"}, CreateOptions{RelativeTo: base, Fragment: "usage"})
		require.NoError(t, err)
		assert.Equal(t, "usage", tree.Fragment)
	})

	t.Run("preserve fragment", func(t *testing.T) {
		tree, err := CreateTree([]interface{}{"docs"}, CreateOptions{RelativeTo: base, PreserveFragment: true})
		require.NoError(t, err)
		assert.Equal(t, "intro", tree.Fragment)
	})
}

func TestCreateTreeNoCommandsCopiesBase(t *testing.T) {
	base := mustParse(t, "/team/33?x=1")
	tree, err := CreateTree(nil, CreateOptions{RelativeTo: base, QueryParams: map[string][]string{"y": {"2"}}})
	require.NoError(t, err)

	assert.Equal(t, "/team/33?y=2", tree.String())
	// the base tree is untouched
	assert.Equal(t, []string{"1"}, base.QueryParams["x"])
}
