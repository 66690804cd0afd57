package generator

import (
	stderrors "errors"

	"github.com/toyz/routegen/internal/errors"
	"github.com/toyz/routegen/internal/models"
)

// Validate checks that every route has a handler and every handler has a route.
// The first route without a handler is reported on its own; otherwise all
// handlers left without a route are reported together, in source order.
func Validate(ref models.ModuleRef, specs []models.RouteSpec, module *models.ControllerModule) error {
	consumed := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if _, ok := module.Lookup(spec.Name); !ok {
			return errors.NewMissingHandler(spec.Name, ref.ImplDir, location(spec))
		}
		consumed[spec.Name] = true
	}

	var unassociated []string
	for _, name := range module.Names() {
		if !consumed[name] {
			unassociated = append(unassociated, name)
		}
	}
	if len(unassociated) > 0 {
		return errors.NewUnassociatedHandlers(unassociated, ref.ImplDir)
	}
	return nil
}

// Reconciliation lists both sides of a broken route/handler correspondence
type Reconciliation struct {
	Missing      []string // routes without handlers, declaration order
	Unassociated []string // handlers without routes, source order
}

// OK reports whether routes and handlers correspond one to one
func (r Reconciliation) OK() bool {
	return len(r.Missing) == 0 && len(r.Unassociated) == 0
}

// Reconcile compares routes and handlers without stopping at the first mismatch
func Reconcile(specs []models.RouteSpec, module *models.ControllerModule) Reconciliation {
	var result Reconciliation
	declared := make(map[string]bool, len(specs))
	for _, spec := range specs {
		declared[spec.Name] = true
		if _, ok := module.Lookup(spec.Name); !ok {
			result.Missing = append(result.Missing, spec.Name)
		}
	}
	for _, name := range module.Names() {
		if !declared[name] {
			result.Unassociated = append(result.Unassociated, name)
		}
	}
	return result
}

// withReconciliation records every missing and unassociated name on a validation
// error, which itself only names the first problem found
func withReconciliation(err error, r Reconciliation) error {
	var herr *errors.HandlerError
	if !stderrors.As(err, &herr) {
		return err
	}
	if len(r.Missing) > 0 {
		herr.WithContext("missing", r.Missing)
	}
	if len(r.Unassociated) > 0 {
		herr.WithContext("unassociated", r.Unassociated)
	}
	return err
}

func location(spec models.RouteSpec) errors.SourceLocation {
	return errors.SourceLocation{
		File:   spec.Position.Filename,
		Line:   spec.Position.Line,
		Column: spec.Position.Column,
	}
}
