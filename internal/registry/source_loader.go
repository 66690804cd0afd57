package registry

import (
	"go/ast"
	"go/token"

	"github.com/toyz/routegen/internal/errors"
	"github.com/toyz/routegen/internal/models"
	"github.com/toyz/routegen/internal/parser"
)

// SourceLoader classifies the exported symbols of implementation packages
// already parsed into a Project. Nothing is compiled or executed.
//
//   - an exported function is a single handler
//   - an exported variable initialized with an unkeyed composite literal is a
//     chain; every element but the last is middleware
//   - any other exported variable is a single handler
type SourceLoader struct {
	project *parser.Project
}

// NewSourceLoader creates a loader over project
func NewSourceLoader(project *parser.Project) *SourceLoader {
	return &SourceLoader{project: project}
}

// Load classifies the handlers of ref's implementation package
func (l *SourceLoader) Load(ref models.ModuleRef) (*models.ControllerModule, error) {
	files, ok := l.project.Package(ref.ImplDir)
	if !ok || len(files) == 0 {
		return nil, errors.NewMissingImplementation(ref.DeclFile, ref.ImplDir, nil)
	}

	module := &models.ControllerModule{
		ImportPath:  ref.ImplImport,
		Dir:         ref.ImplDir,
		PackageName: files[0].Name.Name,
	}

	for _, file := range files {
		for _, decl := range file.Decls {
			entries, err := l.classify(decl)
			if err != nil {
				return nil, err
			}
			module.Entries = append(module.Entries, entries...)
		}
	}

	return module, nil
}

func (l *SourceLoader) classify(decl ast.Decl) ([]models.HandlerEntry, error) {
	switch node := decl.(type) {
	case *ast.FuncDecl:
		if node.Recv != nil || !node.Name.IsExported() {
			return nil, nil
		}
		return []models.HandlerEntry{l.withLine(models.Single(node.Name.Name), node.Name.Pos())}, nil

	case *ast.GenDecl:
		if node.Tok != token.VAR {
			return nil, nil
		}
		var entries []models.HandlerEntry
		for _, spec := range node.Specs {
			valueSpec := spec.(*ast.ValueSpec)
			for i, name := range valueSpec.Names {
				if !name.IsExported() {
					continue
				}
				var value ast.Expr
				if len(valueSpec.Values) == len(valueSpec.Names) {
					value = valueSpec.Values[i]
				}
				entry, err := l.classifyValue(name, valueSpec.Type, value)
				if err != nil {
					return nil, err
				}
				entries = append(entries, entry)
			}
		}
		return entries, nil
	}

	return nil, nil
}

func (l *SourceLoader) classifyValue(name *ast.Ident, typ, value ast.Expr) (models.HandlerEntry, error) {
	value = unparen(value)

	literal, ok := value.(*ast.CompositeLit)
	if !ok {
		if isChainType(typ) || buildsChain(value) {
			return models.HandlerEntry{}, errors.NewUnresolvableHandler(name.Name,
				"chains must be initialized with a composite literal so their length is known", l.project.Location(name.Pos()))
		}
		return l.withLine(models.Single(name.Name), name.Pos()), nil
	}

	for _, elt := range literal.Elts {
		if _, keyed := elt.(*ast.KeyValueExpr); keyed {
			return models.HandlerEntry{}, errors.NewUnresolvableHandler(name.Name,
				"keyed composite literals are not ordered chains", l.project.Location(elt.Pos()))
		}
	}
	if len(literal.Elts) == 0 {
		return models.HandlerEntry{}, errors.NewUnresolvableHandler(name.Name,
			"chain has no terminal handler", l.project.Location(literal.Pos()))
	}

	return l.withLine(models.Chain(name.Name, len(literal.Elts)), name.Pos()), nil
}

// isChainType reports whether a declared variable type is a slice, an array or a kit Chain
func isChainType(typ ast.Expr) bool {
	switch t := unparen(typ).(type) {
	case *ast.ArrayType:
		return true
	case *ast.Ident:
		return t.Name == "Chain"
	case *ast.SelectorExpr:
		return t.Sel.Name == "Chain"
	}
	return false
}

// buildsChain reports whether value computes a chain at run time, as with
// append(...) or a Chain(...) conversion
func buildsChain(value ast.Expr) bool {
	call, ok := value.(*ast.CallExpr)
	if !ok {
		return false
	}
	if ident, ok := call.Fun.(*ast.Ident); ok && ident.Name == "append" {
		return true
	}
	return isChainType(call.Fun)
}

func unparen(expr ast.Expr) ast.Expr {
	for {
		paren, ok := expr.(*ast.ParenExpr)
		if !ok {
			return expr
		}
		expr = paren.X
	}
}

func (l *SourceLoader) withLine(entry models.HandlerEntry, pos token.Pos) models.HandlerEntry {
	entry.Line = l.project.FileSet().Position(pos).Line
	return entry
}
