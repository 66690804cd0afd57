package templates

import (
	"sort"
	"strings"
)

// Import is one import spec of a generated file
type Import struct {
	Alias string
	Path  string
}

// ImportManager collects and deduplicates the imports of a generated file
type ImportManager struct {
	imports map[string]string // path -> alias
}

// NewImportManager creates a new import manager
func NewImportManager() *ImportManager {
	return &ImportManager{
		imports: make(map[string]string),
	}
}

// AddImport adds an unaliased import
func (im *ImportManager) AddImport(path string) {
	im.AddPackageImport("", path)
}

// AddPackageImport adds an import under alias. The first alias registered for a path wins.
func (im *ImportManager) AddPackageImport(alias, path string) {
	if path == "" {
		return
	}
	if _, exists := im.imports[path]; !exists {
		im.imports[path] = alias
	}
}

// Groups returns standard library imports and all other imports, each sorted by path
func (im *ImportManager) Groups() (std []Import, external []Import) {
	for path, alias := range im.imports {
		spec := Import{Alias: alias, Path: path}
		if isStandardLibrary(path) {
			std = append(std, spec)
		} else {
			external = append(external, spec)
		}
	}
	sortImports(std)
	sortImports(external)
	return std, external
}

func sortImports(imports []Import) {
	sort.Slice(imports, func(i, j int) bool {
		return imports[i].Path < imports[j].Path
	})
}

// isStandardLibrary reports whether path has no domain-like first element
func isStandardLibrary(path string) bool {
	first := path
	if i := strings.Index(path, "/"); i >= 0 {
		first = path[:i]
	}
	return !strings.Contains(first, ".")
}
