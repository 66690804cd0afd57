package cli

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/routegen/internal/errors"
	"github.com/toyz/routegen/internal/models"
)

// DirectoryScanner discovers input modules under a controllers directory.
//
// Every .go file (tests excluded) is a declaration file unless it lives inside
// an implementation directory, which is any directory X next to an X.go file.
type DirectoryScanner struct{}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// Discover lists the input modules of cfg in lexical walk order
func (s *DirectoryScanner) Discover(cfg *Config) ([]models.ModuleRef, error) {
	controllersRoot := cfg.ControllersRoot()
	if info, err := os.Stat(controllersRoot); err != nil || !info.IsDir() {
		if err == nil {
			err = fs.ErrInvalid
		}
		return nil, errors.WrapFileSystemError("scan", controllersRoot, err).
			WithSuggestions("Create the controllers directory or pass --controllers")
	}

	var refs []models.ModuleRef
	err := filepath.WalkDir(controllersRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != controllersRoot && isImplementationDir(p) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isSourceFile(d.Name()) {
			return nil
		}

		ref, err := s.moduleRef(cfg, controllersRoot, p)
		if err != nil {
			return err
		}
		refs = append(refs, ref)
		return nil
	})
	if err != nil {
		return nil, errors.WrapFileSystemError("scan", controllersRoot, err)
	}

	return refs, nil
}

// PackageDirs lists every directory under the controllers root holding Go files
func (s *DirectoryScanner) PackageDirs(cfg *Config) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(cfg.ControllersRoot(), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if !entry.IsDir() && isSourceFile(entry.Name()) {
				dirs = append(dirs, p)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapFileSystemError("scan", cfg.ControllersRoot(), err)
	}
	return dirs, nil
}

func (s *DirectoryScanner) moduleRef(cfg *Config, controllersRoot, declFile string) (models.ModuleRef, error) {
	rel, err := filepath.Rel(controllersRoot, declFile)
	if err != nil {
		return models.ModuleRef{}, err
	}
	relPath := strings.TrimSuffix(filepath.ToSlash(rel), ".go")

	sourcePath, err := filepath.Rel(cfg.Root, declFile)
	if err != nil {
		sourcePath = declFile
	}

	return models.ModuleRef{
		DeclFile:   declFile,
		SourcePath: filepath.ToSlash(sourcePath),
		ImplDir:    strings.TrimSuffix(declFile, ".go"),
		RelPath:    relPath,
		OutputPath: filepath.Join(cfg.RoutesRoot(), filepath.FromSlash(relPath)+".go"),
	}, nil
}

func isImplementationDir(dir string) bool {
	info, err := os.Stat(dir + ".go")
	return err == nil && !info.IsDir()
}

func isSourceFile(name string) bool {
	return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go")
}
