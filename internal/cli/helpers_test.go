package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeProject creates files relative to a fresh temp directory and returns it
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func finalizedConfig(t *testing.T, root string) *Config {
	t.Helper()
	cfg := &Config{Root: root}
	require.NoError(t, cfg.Finalize())
	return cfg
}

const goMod = "module example.com/app\n\ngo 1.25\n"

const friendsDecl = `package api

// @route POST /api/friends
type AddFriend struct {
	Body struct {
		UserID string ` + "`json:\"userId\"`" + `
	}
	Response struct{}
}
`

const friendsImpl = `package friends

import "github.com/gin-gonic/gin"

func AddFriend(c *gin.Context) (any, error) { return nil, nil }
`

const usersDecl = `package api

// @route GET /api/users/:userId
type GetUser struct {
	Params struct {
		UserID string ` + "`uri:\"userId\"`" + `
	}
	Response User
}

type User struct {
	ID string
}
`

const usersImpl = `package users

import "github.com/gin-gonic/gin"

func GetUser(c *gin.Context) (any, error) { return nil, nil }
`
