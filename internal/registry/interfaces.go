package registry

import "github.com/toyz/routegen/internal/models"

// Loader provides the handlers exported by a module's implementation package
type Loader interface {
	Load(ref models.ModuleRef) (*models.ControllerModule, error)
}
