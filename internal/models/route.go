package models

import (
	"go/token"
	"net/http"
)

// Method is an HTTP method a route can be declared with
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodDelete Method = http.MethodDelete
)

// SupportedMethods lists the methods accepted in @route annotations
var SupportedMethods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete}

// ParseMethod returns the Method for s, which must be upper case
func ParseMethod(s string) (Method, bool) {
	for _, m := range SupportedMethods {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// DefaultStatus returns the status code used when a route does not declare one
func (m Method) DefaultStatus() int {
	if m == MethodGet {
		return http.StatusOK
	}
	return http.StatusCreated
}

// RouteSpec describes one HTTP route extracted from an annotated declaration.
// Specs are built once per generation pass and never modified afterwards.
type RouteSpec struct {
	Name      string         // declaration name, shared with the handler
	Method    Method         // HTTP method
	FullPath  string         // path as declared, before the module base is stripped
	Status    int            // success status code
	HasBody   bool           // declaration has a Body field
	HasParams bool           // declaration has a Params field
	HasQuery  bool           // declaration has a Query field
	Position  token.Position // where the declaration starts
}

// NeedsValidation reports whether a request validation step has to be emitted
func (r RouteSpec) NeedsValidation() bool {
	return r.HasBody || r.HasParams || r.HasQuery
}
