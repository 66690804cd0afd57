package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/toyz/routegen/internal/errors"
	"github.com/toyz/routegen/internal/models"
	"github.com/toyz/routegen/internal/registry"
	"github.com/toyz/routegen/internal/templates"
	"github.com/toyz/routegen/internal/utils"
)

type GeneratorTestSuite struct {
	suite.Suite
	out bytes.Buffer
}

func (s *GeneratorTestSuite) newGenerator() *Generator {
	s.out.Reset()
	diag := utils.NewDiagnosticSystem(utils.DiagnosticVerbose)
	diag.SetOutput(&s.out, &s.out)
	return NewGenerator(diag)
}

func (s *GeneratorTestSuite) config(root string) *Config {
	cfg := &Config{Root: root}
	s.Require().NoError(cfg.Finalize())
	return cfg
}

func (s *GeneratorTestSuite) read(root, rel string) string {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	s.Require().NoError(err)
	return string(data)
}

func (s *GeneratorTestSuite) exists(root, rel string) bool {
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil
}

func (s *GeneratorTestSuite) TestGeneratesRouters() {
	root := writeProject(s.T(), map[string]string{
		"go.mod":                              goMod,
		"controllers/api/users.go":            usersDecl,
		"controllers/api/users/handlers.go":   usersImpl,
		"controllers/api/friends.go":          friendsDecl,
		"controllers/api/friends/handlers.go": friendsImpl,
	})

	g := s.newGenerator()
	s.Require().NoError(g.Run(context.Background(), s.config(root)))

	users := s.read(root, "routes/api/users.go")
	s.Contains(users, templates.GeneratedMarker)
	s.Contains(users, "// Source: controllers/api/users.go")
	s.Contains(users, "package api")
	s.Contains(users, `contract "example.com/app/controllers/api"`)
	s.Contains(users, `controller "example.com/app/controllers/api/users"`)
	s.Contains(users, `r.GET("/:userId",`)

	friends := s.read(root, "routes/api/friends.go")
	s.Contains(friends, `r.POST("",`)
	s.Contains(friends, "ginkit.Handle(201, controller.AddFriend)")

	summary := g.GetSummary()
	s.Equal(2, summary.Modules)
	s.Equal(2, summary.Routes)
	s.Equal(2, summary.Written)
	s.Equal(0, summary.Unchanged)
	s.Contains(s.out.String(), "Generation complete")
}

func (s *GeneratorTestSuite) TestIdempotentRerun() {
	root := writeProject(s.T(), map[string]string{
		"go.mod":                            goMod,
		"controllers/api/users.go":          usersDecl,
		"controllers/api/users/handlers.go": usersImpl,
	})

	s.Require().NoError(s.newGenerator().Run(context.Background(), s.config(root)))
	first := s.read(root, "routes/api/users.go")

	g := s.newGenerator()
	s.Require().NoError(g.Run(context.Background(), s.config(root)))
	s.Equal(first, s.read(root, "routes/api/users.go"))
	s.Equal(0, g.GetSummary().Written)
	s.Equal(1, g.GetSummary().Unchanged)
}

func (s *GeneratorTestSuite) TestFailureHaltsBatch() {
	root := writeProject(s.T(), map[string]string{
		"go.mod":                              goMod,
		"controllers/api/friends.go":          friendsDecl,
		"controllers/api/friends/handlers.go": friendsImpl + "\nfunc DeleteFriend(c *gin.Context) (any, error) { return nil, nil }\n",
		"controllers/api/users.go":            usersDecl,
		"controllers/api/users/handlers.go":   usersImpl,
	})

	g := s.newGenerator()
	err := g.Run(context.Background(), s.config(root))

	var handlerErr *errors.HandlerError
	s.Require().True(stderrors.As(err, &handlerErr))
	s.Equal([]string{"DeleteFriend"}, handlerErr.Names)

	s.False(s.exists(root, "routes/api/friends.go"), "no router is written for a failing module")
	s.False(s.exists(root, "routes/api/users.go"), "modules after the failure are not processed")
	s.Equal(1, g.GetSummary().Failed)
}

func (s *GeneratorTestSuite) TestContinueOnError() {
	root := writeProject(s.T(), map[string]string{
		"go.mod":                              goMod,
		"controllers/api/friends.go":          "package api\n\n// @route GET\ntype AddFriend struct {\n\tResponse struct{}\n}\n",
		"controllers/api/friends/handlers.go": friendsImpl,
		"controllers/api/orders.go":           "package api\n\n// @route GET /api/orders\ntype ListOrders struct {\n\tResponse []string\n}\n",
		"controllers/api/users.go":            usersDecl,
		"controllers/api/users/handlers.go":   usersImpl,
	})

	cfg := s.config(root)
	cfg.ContinueOnError = true

	g := s.newGenerator()
	err := g.Run(context.Background(), cfg)

	var merr *multierror.Error
	s.Require().True(stderrors.As(err, &merr))
	s.Len(merr.WrappedErrors(), 2)
	s.Equal(errors.MalformedRouteAnnotationCode, errors.CodeOf(merr.WrappedErrors()[0]))
	s.Equal(errors.MissingImplementationCode, errors.CodeOf(merr.WrappedErrors()[1]))

	s.False(s.exists(root, "routes/api/friends.go"))
	s.False(s.exists(root, "routes/api/orders.go"))
	s.True(s.exists(root, "routes/api/users.go"))
	s.Equal(2, g.GetSummary().Failed)
}

func (s *GeneratorTestSuite) TestSkipsPlainModelFiles() {
	root := writeProject(s.T(), map[string]string{
		"go.mod":                            goMod,
		"controllers/api/models.go":         "package api\n\ntype Address struct {\n\tStreet string\n}\n",
		"controllers/api/users.go":          usersDecl,
		"controllers/api/users/handlers.go": usersImpl,
	})

	g := s.newGenerator()
	s.Require().NoError(g.Run(context.Background(), s.config(root)))
	s.Equal(1, g.GetSummary().Skipped)
	s.False(s.exists(root, "routes/api/models.go"))
}

func (s *GeneratorTestSuite) TestCheckMode() {
	root := writeProject(s.T(), map[string]string{
		"go.mod":                            goMod,
		"controllers/api/users.go":          usersDecl,
		"controllers/api/users/handlers.go": usersImpl,
	})

	cfg := s.config(root)
	cfg.Check = true

	err := s.newGenerator().Run(context.Background(), cfg)
	s.Equal(errors.StaleOutputCode, errors.CodeOf(err))
	s.False(s.exists(root, "routes/api/users.go"), "check mode never writes")

	cfg.Check = false
	s.Require().NoError(s.newGenerator().Run(context.Background(), cfg))

	cfg.Check = true
	s.NoError(s.newGenerator().Run(context.Background(), cfg))

	path := filepath.Join(root, "routes", "api", "users.go")
	s.Require().NoError(os.WriteFile(path, []byte("// edited\n"), 0o644))
	s.Equal(errors.StaleOutputCode, errors.CodeOf(s.newGenerator().Run(context.Background(), cfg)))
	s.Contains(s.out.String(), "(on disk)")
}

func (s *GeneratorTestSuite) TestStaticLoader() {
	root := writeProject(s.T(), map[string]string{
		"controllers/api/users.go": usersDecl,
	})

	cfg := s.config(root)
	cfg.ModuleName = "example.com/custom"

	loader := registry.NewStaticLoader()
	s.Require().NoError(loader.Register(filepath.Join(root, "controllers", "api", "users"), &models.ControllerModule{
		Entries: []models.HandlerEntry{models.Chain("GetUser", 2)},
	}))

	s.Require().NoError(s.newGenerator().WithLoader(loader).Run(context.Background(), cfg))

	users := s.read(root, "routes/api/users.go")
	s.Contains(users, `controller "example.com/custom/controllers/api/users"`)
	s.Contains(users, "ginkit.Middleware(controller.GetUser[0])")
	s.Contains(users, "ginkit.Handle(200, controller.GetUser[1])")
}

func (s *GeneratorTestSuite) TestCancelledContext() {
	root := writeProject(s.T(), map[string]string{
		"go.mod":                            goMod,
		"controllers/api/users.go":          usersDecl,
		"controllers/api/users/handlers.go": usersImpl,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.newGenerator().Run(ctx, s.config(root))
	s.ErrorIs(err, context.Canceled)
	s.False(s.exists(root, "routes/api/users.go"))
}

func (s *GeneratorTestSuite) TestMissingGoMod() {
	root := writeProject(s.T(), map[string]string{
		"controllers/api/users.go": usersDecl,
	})

	err := s.newGenerator().Run(context.Background(), s.config(root))
	if err == nil {
		// a go.mod above the temp dir satisfied the lookup
		s.T().Skip("temp dir is inside a Go module")
	}
	s.Equal(errors.ConfigurationErrorCode, errors.CodeOf(err))
}

func TestGeneratorTestSuite(t *testing.T) {
	suite.Run(t, new(GeneratorTestSuite))
}

func TestCleaner(t *testing.T) {
	root := writeProject(t, map[string]string{
		"routes/api/users.go":  templates.GeneratedMarker + "\n\npackage api\n",
		"routes/api/manual.go": "package api\n",
		"routes/notes.txt":     templates.GeneratedMarker,
	})

	removed, err := NewCleaner(nil).CleanGeneratedFiles(finalizedConfig(t, root))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "routes", "api", "users.go")}, removed)

	_, err = os.Stat(filepath.Join(root, "routes", "api", "manual.go"))
	assert.NoError(t, err)
}

func TestCleaner_MissingRoutes(t *testing.T) {
	removed, err := NewCleaner(nil).CleanGeneratedFiles(finalizedConfig(t, t.TempDir()))
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestDiagnosticReporter(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	var out bytes.Buffer
	reporter := NewDiagnosticReporter(&out, true)

	var merr *multierror.Error
	merr = multierror.Append(merr,
		errors.NewUnassociatedHandlers([]string{"DeleteFriend"}, "controllers/api/friends"),
		stderrors.New("plain failure"),
	)
	reporter.ReportError(merr)

	report := out.String()
	assert.Contains(t, report, "Type: Unassociated Handlers")
	assert.Contains(t, report, "Handlers: DeleteFriend")
	assert.Contains(t, report, "Declare a route type with the same name for each handler")
	assert.Contains(t, report, "Message: plain failure")
}
