package generator

import "github.com/toyz/routegen/internal/models"

// RouterEmitter renders the router for one validated input module
type RouterEmitter interface {
	Emit(ref models.ModuleRef, specs []models.RouteSpec, module *models.ControllerModule) (*models.GeneratedRouterModule, error)
}
