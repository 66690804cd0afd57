package templates

import (
	"bytes"
	"fmt"
)

// Import aliases used by every generated router
const (
	ContractAlias   = "contract"
	ControllerAlias = "controller"
)

// GeneratedMarker starts every generated router
const GeneratedMarker = "// Code generated by routegen. DO NOT EDIT."

// RouterData is the input of a router template
type RouterData struct {
	SourcePath  string
	PackageName string
	StdImports  []Import
	Imports     []Import
	BaseName    string
	BasePath    string
	Routes      []RouteData
}

// RouteData is one registration statement
type RouteData struct {
	Name       string
	Method     string
	Path       string
	Status     int
	HasBody    bool
	HasParams  bool
	HasQuery   bool
	Middleware []string // symbolic references, in chain order
	Terminal   string   // symbolic reference to the terminal handler
}

// NeedsValidation reports whether the route gets a request validation step
func (r RouteData) NeedsValidation() bool {
	return r.HasBody || r.HasParams || r.HasQuery
}

// Render executes target's router template with data
func Render(target *Target, data RouterData) ([]byte, error) {
	var buf bytes.Buffer
	if err := target.template.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute %s template: %w", target.Name, err)
	}
	return buf.Bytes(), nil
}
