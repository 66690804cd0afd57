package parser

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/routegen/internal/errors"
)

// Project is the parse context shared by every module of a generation run.
// Files are added while the run is being prepared; afterwards the project is
// only read.
type Project struct {
	fileSet *token.FileSet
	files   map[string]*ast.File
	dirs    map[string][]string
}

// NewProject creates an empty project
func NewProject() *Project {
	return &Project{
		fileSet: token.NewFileSet(),
		files:   make(map[string]*ast.File),
		dirs:    make(map[string][]string),
	}
}

// FileSet returns the file set positions are resolved against
func (p *Project) FileSet() *token.FileSet {
	return p.fileSet
}

// AddFile parses the Go file at path
func (p *Project) AddFile(path string) error {
	return p.AddSource(path, nil)
}

// AddSource parses src as the file at path. A nil src reads the file from disk.
func (p *Project) AddSource(path string, src interface{}) error {
	path = filepath.Clean(path)
	if _, exists := p.files[path]; exists {
		return nil
	}

	file, err := parser.ParseFile(p.fileSet, path, src, parser.ParseComments)
	if err != nil {
		return errors.WrapParseError(path, err)
	}

	p.files[path] = file
	dir := filepath.Dir(path)
	p.dirs[dir] = append(p.dirs[dir], path)
	sort.Strings(p.dirs[dir])
	return nil
}

// AddDir parses every non-test Go file directly inside dir
func (p *Project) AddDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.WrapFileSystemError("read", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isSourceFile(name) {
			continue
		}
		if err := p.AddFile(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// File returns the parsed file at path
func (p *Project) File(path string) (*ast.File, bool) {
	file, ok := p.files[filepath.Clean(path)]
	return file, ok
}

// Package returns the files parsed from dir, ordered by file name
func (p *Project) Package(dir string) ([]*ast.File, bool) {
	paths, ok := p.dirs[filepath.Clean(dir)]
	if !ok {
		return nil, false
	}
	files := make([]*ast.File, len(paths))
	for i, path := range paths {
		files[i] = p.files[path]
	}
	return files, true
}

// Location converts pos to an error location
func (p *Project) Location(pos token.Pos) errors.SourceLocation {
	position := p.fileSet.Position(pos)
	return errors.SourceLocation{File: position.Filename, Line: position.Line, Column: position.Column}
}

func isSourceFile(name string) bool {
	return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go")
}
