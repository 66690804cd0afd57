package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// GoModule is a module root: the path declared in go.mod and the directory holding it
type GoModule struct {
	Path string
	Dir  string
}

// FindGoModule reads the nearest go.mod at or above dir
func FindGoModule(dir string) (GoModule, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return GoModule{}, fmt.Errorf("resolve %s: %w", dir, err)
	}

	for current := abs; ; {
		goMod := filepath.Join(current, "go.mod")
		if info, err := os.Stat(goMod); err == nil && !info.IsDir() {
			path, err := ReadModulePath(goMod)
			if err != nil {
				return GoModule{}, err
			}
			return GoModule{Path: path, Dir: current}, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return GoModule{}, fmt.Errorf("no go.mod found at or above %s", dir)
		}
		current = parent
	}
}

// ReadModulePath returns the module path declared by the go.mod file at goMod
func ReadModulePath(goMod string) (string, error) {
	if filepath.Base(goMod) != "go.mod" {
		return "", fmt.Errorf("%s is not a go.mod file", goMod)
	}

	content, err := os.ReadFile(goMod)
	if err != nil {
		return "", fmt.Errorf("read go.mod: %w", err)
	}

	file, err := modfile.ParseLax(goMod, content, nil)
	if err != nil {
		return "", fmt.Errorf("parse go.mod: %w", err)
	}
	if file.Module == nil || file.Module.Mod.Path == "" {
		return "", fmt.Errorf("%s has no module directive", goMod)
	}
	return file.Module.Mod.Path, nil
}

// ImportPath returns the import path of the package in dir, which must lie inside the module
func (m GoModule) ImportPath(dir string) (string, error) {
	root, err := filepath.Abs(m.Dir)
	if err != nil {
		return "", err
	}
	pkg, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(root, pkg)
	if err != nil {
		return "", err
	}
	switch {
	case rel == ".":
		return m.Path, nil
	case rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)):
		return "", fmt.Errorf("%s is outside module %s", dir, m.Path)
	}
	return m.Path + "/" + filepath.ToSlash(rel), nil
}
