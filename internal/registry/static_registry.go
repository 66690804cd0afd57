package registry

import (
	"fmt"
	"path/filepath"

	"github.com/toyz/routegen/internal/errors"
	"github.com/toyz/routegen/internal/models"
)

// StaticLoader serves controller modules supplied by the caller instead of
// reading implementation packages from source
type StaticLoader struct {
	modules map[string]*models.ControllerModule
}

// NewStaticLoader creates an empty static loader
func NewStaticLoader() *StaticLoader {
	return &StaticLoader{
		modules: make(map[string]*models.ControllerModule),
	}
}

// Register adds the controller module implementing the package in dir
func (s *StaticLoader) Register(dir string, module *models.ControllerModule) error {
	if dir == "" {
		return fmt.Errorf("implementation directory cannot be empty")
	}

	if module == nil {
		return fmt.Errorf("controller module cannot be nil")
	}

	dir = filepath.Clean(dir)
	if _, exists := s.modules[dir]; exists {
		return fmt.Errorf("controller module for '%s' is already registered", dir)
	}

	s.modules[dir] = module
	return nil
}

// Load returns the registered module for ref's implementation directory
func (s *StaticLoader) Load(ref models.ModuleRef) (*models.ControllerModule, error) {
	module, exists := s.modules[filepath.Clean(ref.ImplDir)]
	if !exists {
		return nil, errors.NewMissingImplementation(ref.DeclFile, ref.ImplDir, nil)
	}
	return module, nil
}
