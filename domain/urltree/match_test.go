package urltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsTreeExact(t *testing.T) {
	opts := ExactMatchOptions()

	t.Run("identical paths", func(t *testing.T) {
		container := mustParse(t, "/team/33/user")
		containee := mustParse(t, "/team/33/user")
		assert.True(t, ContainsTree(container, containee, opts))
	})

	t.Run("prefix is not exact", func(t *testing.T) {
		container := mustParse(t, "/team/33/user")
		containee := mustParse(t, "/team/33")
		assert.False(t, ContainsTree(container, containee, opts))
	})

	t.Run("query params must match", func(t *testing.T) {
		container := mustParse(t, "/team?x=1")
		assert.False(t, ContainsTree(container, mustParse(t, "/team"), opts))
		assert.True(t, ContainsTree(container, mustParse(t, "/team?x=1"), opts))
	})

	t.Run("fragment ignored by default", func(t *testing.T) {
		container := mustParse(t, "/team#a")
		containee := mustParse(t, "/team#b")
		assert.True(t, ContainsTree(container, containee, opts))
	})
}

func TestContainsTreeSubset(t *testing.T) {
	opts := SubsetMatchOptions()

	t.Run("prefix matches", func(t *testing.T) {
		container := mustParse(t, "/team/33/user/victor")
		containee := mustParse(t, "/team/33")
		assert.True(t, ContainsTree(container, containee, opts))
	})

	t.Run("divergent path does not", func(t *testing.T) {
		container := mustParse(t, "/team/33/user")
		containee := mustParse(t, "/team/44")
		assert.False(t, ContainsTree(container, containee, opts))
	})

	t.Run("containee longer than container", func(t *testing.T) {
		container := mustParse(t, "/team")
		containee := mustParse(t, "/team/33")
		assert.False(t, ContainsTree(container, containee, opts))
	})

	t.Run("query params subset", func(t *testing.T) {
		container := mustParse(t, "/team?x=1&y=2")
		assert.True(t, ContainsTree(container, mustParse(t, "/team?x=1"), opts))
		assert.False(t, ContainsTree(container, mustParse(t, "/team?x=9"), opts))
	})

	t.Run("auxiliary outlet containment", func(t *testing.T) {
		container := mustParse(t, "/inbox/detail(popup:compose)")
		assert.True(t, ContainsTree(container, mustParse(t, "/inbox"), opts))
		assert.True(t, ContainsTree(container, mustParse(t, "/inbox/detail(popup:compose)"), opts))
		assert.False(t, ContainsTree(container, mustParse(t, "/inbox(sidebar:nav)"), opts))
	})
}

func TestContainsTreeMatrixParamModes(t *testing.T) {
	container := mustParse(t, "/user;role=admin;team=core/list")

	t.Run("ignored", func(t *testing.T) {
		opts := SubsetMatchOptions()
		assert.True(t, ContainsTree(container, mustParse(t, "/user;role=other"), opts))
	})

	t.Run("subset", func(t *testing.T) {
		opts := SubsetMatchOptions()
		opts.MatrixParams = MatchSubset
		assert.True(t, ContainsTree(container, mustParse(t, "/user;role=admin"), opts))
		assert.False(t, ContainsTree(container, mustParse(t, "/user;role=other"), opts))
	})

	t.Run("exact", func(t *testing.T) {
		opts := SubsetMatchOptions()
		opts.MatrixParams = MatchExact
		assert.False(t, ContainsTree(container, mustParse(t, "/user;role=admin"), opts))
		assert.True(t, ContainsTree(container, mustParse(t, "/user;role=admin;team=core"), opts))
	})
}
