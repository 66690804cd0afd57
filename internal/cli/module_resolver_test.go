package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveModule(t *testing.T) {
	root := writeProject(t, map[string]string{"go.mod": goMod})

	module, err := ResolveModule("", root)
	require.NoError(t, err)
	assert.Equal(t, "example.com/app", module.Path)

	module, err = ResolveModule("example.com/custom", root)
	require.NoError(t, err)
	assert.Equal(t, "example.com/custom", module.Path)
	assert.Equal(t, root, module.Dir)
}
