package parser

import (
	stderrors "errors"
	"go/ast"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/routegen/internal/errors"
	"github.com/toyz/routegen/internal/models"
)

func extract(t *testing.T, src string) ([]models.RouteSpec, error) {
	t.Helper()
	project := NewProject()
	require.NoError(t, project.AddSource("controllers/api/users.go", src))
	return NewExtractor(project).Extract("controllers/api/users.go")
}

func TestExtractor_AddFriend(t *testing.T) {
	specs, err := extract(t, `package api

// AddFriend adds a friend.
//
// @route POST /api/friends
type AddFriend struct {
	Body struct {
		UserID string `+"`json:\"userId\"`"+`
	}
	Response struct{}
}
`)
	require.NoError(t, err)
	require.Len(t, specs, 1)

	spec := specs[0]
	assert.Equal(t, "AddFriend", spec.Name)
	assert.Equal(t, models.MethodPost, spec.Method)
	assert.Equal(t, "/api/friends", spec.FullPath)
	assert.Equal(t, 201, spec.Status)
	assert.True(t, spec.HasBody)
	assert.False(t, spec.HasParams)
	assert.False(t, spec.HasQuery)
	assert.Equal(t, 6, spec.Position.Line)
}

func TestExtractor_GetUser(t *testing.T) {
	specs, err := extract(t, `package api

// @route GET /api/users/:userId
type GetUser struct {
	Query struct {
		IsDeleted string
	}
	Params struct {
		UserID string
	}
	// @status 200
	Response User
}

type User struct {
	ID   string
	Name string
}
`)
	require.NoError(t, err)
	require.Len(t, specs, 1, "plain model types are not route declarations")

	spec := specs[0]
	assert.Equal(t, models.MethodGet, spec.Method)
	assert.Equal(t, "/api/users/:userId", spec.FullPath)
	assert.Equal(t, 200, spec.Status)
	assert.False(t, spec.HasBody)
	assert.True(t, spec.HasParams)
	assert.True(t, spec.HasQuery)
}

func TestExtractor_DefaultStatus(t *testing.T) {
	specs, err := extract(t, `package api

// @route GET /a
type A struct{ Response struct{} }

// @route POST /b
type B struct{ Response struct{} }

// @route PUT /c
type C struct{ Response struct{} }

// @route DELETE /d
type D struct{ Response struct{} }
`)
	require.NoError(t, err)
	require.Len(t, specs, 4)

	expected := map[string]int{"A": 200, "B": 201, "C": 201, "D": 201}
	for _, spec := range specs {
		assert.Equal(t, expected[spec.Name], spec.Status, spec.Name)
	}
}

func TestExtractor_PreservesDeclarationOrder(t *testing.T) {
	specs, err := extract(t, `package api

type (
	// @route GET /api/users/me
	Me struct{ Response struct{} }

	// @route GET /api/users/:userId
	GetUser struct{ Response struct{} }
)

// @route DELETE /api/users/:userId
type DeleteUser struct{ Response struct{} }
`)
	require.NoError(t, err)

	var names []string
	for _, spec := range specs {
		names = append(names, spec.Name)
	}
	assert.Equal(t, []string{"Me", "GetUser", "DeleteUser"}, names)
}

func TestExtractor_StatusOnLineComment(t *testing.T) {
	specs, err := extract(t, `package api

// @route DELETE /api/users/:userId
type DeleteUser struct {
	Params   struct{ UserID string }
	Response struct{} // @status 204
}
`)
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, 204, specs[0].Status)
}

func TestExtractor_UnexportedFieldsIgnored(t *testing.T) {
	_, err := extract(t, `package api

// @route POST /api/users
type CreateUser struct {
	body     struct{ Name string }
	response struct{}
}
`)
	require.Error(t, err)
	assert.Equal(t, errors.MissingResponseFieldCode, errors.CodeOf(err))
}

func TestExtractor_MethodWithoutPath(t *testing.T) {
	_, err := extract(t, `package api

// @route GET
type GetUser struct {
	Response struct{}
}
`)
	require.Error(t, err)

	var annotationErr *errors.AnnotationError
	require.True(t, stderrors.As(err, &annotationErr))
	assert.Equal(t, errors.MalformedRouteAnnotationCode, annotationErr.ErrorCode())
	assert.Equal(t, "GET", annotationErr.Raw)
	assert.Equal(t, "GetUser", annotationErr.Declaration)
	assert.Contains(t, err.Error(), `"GET"`)
	assert.Contains(t, err.Error(), "no path found")
	assert.NotEmpty(t, annotationErr.Suggestions())
}

func TestExtractor_UnknownMethod(t *testing.T) {
	_, err := extract(t, `package api

// @route FETCH /api/users
type ListUsers struct {
	Response struct{}
}
`)
	require.Error(t, err)
	assert.Equal(t, errors.MalformedRouteAnnotationCode, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "no method found")
	assert.Contains(t, err.Error(), "FETCH /api/users")
}

func TestExtractor_ResponseWithoutRoute(t *testing.T) {
	_, err := extract(t, `package api

// ListUsers lists users.
type ListUsers struct {
	Response []string
}
`)
	require.Error(t, err)
	assert.Equal(t, errors.MalformedRouteAnnotationCode, errors.CodeOf(err))
	assert.Equal(t, "controllers/api/users.go:4:6: ListUsers has a Response field but no @route annotation", err.Error())
	assert.NotContains(t, err.Error(), "in @route annotation")
}

func TestExtractor_RouteOnNonStructType(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"defined type", `package api

import "example.com/app/models"

// @route GET /api/users
type ListUsers models.ListUsers
`},
		{"alias", `package api

// @route GET /api/users
type ListUsers = Shared

type Shared struct {
	Response []string
}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs, err := extract(t, tt.src)
			assert.Nil(t, specs)
			require.Error(t, err)
			assert.Equal(t, errors.MalformedRouteAnnotationCode, errors.CodeOf(err))

			var annotationErr *errors.AnnotationError
			require.True(t, stderrors.As(err, &annotationErr))
			assert.Equal(t, "ListUsers", annotationErr.Declaration)
			assert.Equal(t, "GET /api/users", annotationErr.Raw)
			assert.Contains(t, err.Error(), "non-struct type")
		})
	}
}

func TestExtractor_MissingResponseField(t *testing.T) {
	_, err := extract(t, `package api

// @route GET /api/users
type ListUsers struct {
	Query struct{ Page int }
}
`)
	require.Error(t, err)
	assert.Equal(t, errors.MissingResponseFieldCode, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "ListUsers")
}

func TestExtractor_MalformedStatus(t *testing.T) {
	_, err := extract(t, `package api

// @route GET /api/users
type ListUsers struct {
	// @status ok
	Response []string
}
`)
	require.Error(t, err)
	assert.Equal(t, errors.MalformedStatusAnnotationCode, errors.CodeOf(err))
	assert.Contains(t, err.Error(), `"ok"`)
}

func TestExtractor_NoDeclarations(t *testing.T) {
	specs, err := extract(t, `package api

type User struct{ ID string }

func helper() {}
`)
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestExtractor_UnknownFile(t *testing.T) {
	_, err := NewExtractor(NewProject()).Extract("missing.go")
	assert.Error(t, err)
}

func TestProject_AddDirAndPackage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte("package users\n\nfunc B() {}\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package users\n\nfunc A() {}\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_test.go"), []byte("package users\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	project := NewProject()
	require.NoError(t, project.AddDir(dir))

	files, ok := project.Package(dir)
	require.True(t, ok)
	require.Len(t, files, 2)
	assert.Equal(t, "A", files[0].Decls[0].(*ast.FuncDecl).Name.Name)
}

func TestProject_AddDirMissing(t *testing.T) {
	err := NewProject().AddDir(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, errors.FileSystemErrorCode, errors.CodeOf(err))
}

func TestProject_SyntaxError(t *testing.T) {
	err := NewProject().AddSource("broken.go", "package api\n\ntype {")
	require.Error(t, err)
	assert.Equal(t, errors.SyntaxErrorCode, errors.CodeOf(err))
}
