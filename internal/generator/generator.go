package generator

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/toyz/routegen/internal/errors"
	"github.com/toyz/routegen/internal/models"
	"github.com/toyz/routegen/internal/templates"
	"github.com/toyz/routegen/internal/utils"
)

// Emitter renders routers for one target framework
type Emitter struct {
	target *templates.Target
}

// NewEmitter creates an emitter for the named target
func NewEmitter(target string) (*Emitter, error) {
	if target == "" {
		target = templates.DefaultTarget
	}
	t, err := templates.LookupTarget(target)
	if err != nil {
		return nil, errors.NewConfigurationError("target", target, err.Error())
	}
	return &Emitter{target: t}, nil
}

// Target returns the name of the framework routers are emitted for
func (e *Emitter) Target() string {
	return e.target.Name
}

// Emit validates the module and renders its router. Nothing is rendered for an invalid module.
func (e *Emitter) Emit(ref models.ModuleRef, specs []models.RouteSpec, module *models.ControllerModule) (*models.GeneratedRouterModule, error) {
	if err := Validate(ref, specs, module); err != nil {
		return nil, withReconciliation(err, Reconcile(specs, module))
	}

	data := e.routerData(ref, specs, module)
	source, err := templates.Render(e.target, data)
	if err != nil {
		return nil, errors.WrapGenerateError(ref.SourcePath, err)
	}

	formatted, err := utils.FormatGoSource(ref.OutputPath, source)
	if err != nil {
		return nil, errors.WrapGenerateError(ref.SourcePath, err)
	}

	return &models.GeneratedRouterModule{
		SourcePath:  ref.SourcePath,
		OutputPath:  ref.OutputPath,
		PackageName: data.PackageName,
		Routes:      len(specs),
		Content:     formatted,
	}, nil
}

func (e *Emitter) routerData(ref models.ModuleRef, specs []models.RouteSpec, module *models.ControllerModule) templates.RouterData {
	im := templates.NewImportManager()
	for _, imp := range e.target.Imports() {
		im.AddPackageImport(imp.Alias, imp.Path)
	}
	im.AddPackageImport(templates.ContractAlias, ref.ContractImport)
	im.AddPackageImport(templates.ControllerAlias, ref.ImplImport)
	std, external := im.Groups()

	base := ref.BasePath()
	routes := make([]templates.RouteData, 0, len(specs))
	for _, spec := range specs {
		entry, _ := module.Lookup(spec.Name)
		routes = append(routes, routeData(spec, entry, base))
	}

	return templates.RouterData{
		SourcePath:  ref.SourcePath,
		PackageName: OutputPackageName(ref.OutputPath),
		StdImports:  std,
		Imports:     external,
		BaseName:    templates.ExportedName(path.Base(ref.RelPath)),
		BasePath:    base,
		Routes:      routes,
	}
}

func routeData(spec models.RouteSpec, entry models.HandlerEntry, base string) templates.RouteData {
	ref := templates.ControllerAlias + "." + spec.Name
	route := templates.RouteData{
		Name:      spec.Name,
		Method:    string(spec.Method),
		Path:      ResolvePath(base, spec.FullPath),
		Status:    spec.Status,
		HasBody:   spec.HasBody,
		HasParams: spec.HasParams,
		HasQuery:  spec.HasQuery,
		Terminal:  ref,
	}

	if entry.IsChain() {
		for _, i := range entry.MiddlewareIndexes() {
			route.Middleware = append(route.Middleware, fmt.Sprintf("%s[%d]", ref, i))
		}
		route.Terminal = fmt.Sprintf("%s[%d]", ref, entry.TerminalIndex())
	}
	return route
}

// ResolvePath makes fullPath relative to base. The base is only stripped when it
// ends at a segment boundary; an empty remainder becomes "/".
func ResolvePath(base, fullPath string) string {
	base = strings.TrimSuffix(base, "/")
	if base == "" || !strings.HasPrefix(fullPath, base) {
		return fullPath
	}

	rest := fullPath[len(base):]
	switch {
	case rest == "":
		return "/"
	case rest[0] == '/':
		return rest
	default:
		return fullPath
	}
}

// OutputPackageName is the package clause of a router written to outputPath
func OutputPackageName(outputPath string) string {
	dir := filepath.Base(filepath.Dir(outputPath))
	if dir == "." || dir == string(filepath.Separator) {
		return "routes"
	}
	return templates.PackageName(dir)
}
