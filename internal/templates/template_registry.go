package templates

import (
	"fmt"
	"sort"
	"text/template"
)

// DefaultTarget is the router framework used when none is configured
const DefaultTarget = "gin"

const kitRoot = "github.com/toyz/routegen/pkg/routekit/"

// Target describes one router framework routegen can emit code for
type Target struct {
	Name            string
	FrameworkAlias  string
	FrameworkImport string
	KitAlias        string
	KitImport       string
	template        *template.Template
}

// Imports returns the framework and kit imports every router of this target starts with
func (t *Target) Imports() []Import {
	return []Import{
		{Alias: t.FrameworkAlias, Path: t.FrameworkImport},
		{Alias: t.KitAlias, Path: t.KitImport},
	}
}

var targets = map[string]*Target{
	"gin": {
		Name:            "gin",
		FrameworkAlias:  "gin",
		FrameworkImport: "github.com/gin-gonic/gin",
		KitAlias:        "ginkit",
		KitImport:       kitRoot + "ginkit",
		template:        mustParse("gin", ginRouterTemplate),
	},
	"echo": {
		Name:            "echo",
		FrameworkAlias:  "echo",
		FrameworkImport: "github.com/labstack/echo/v4",
		KitAlias:        "echokit",
		KitImport:       kitRoot + "echokit",
		template:        mustParse("echo", echoRouterTemplate),
	},
	"fiber": {
		Name:            "fiber",
		FrameworkAlias:  "fiber",
		FrameworkImport: "github.com/gofiber/fiber/v2",
		KitAlias:        "fiberkit",
		KitImport:       kitRoot + "fiberkit",
		template:        mustParse("fiber", fiberRouterTemplate),
	},
}

// LookupTarget returns the target registered under name
func LookupTarget(name string) (*Target, error) {
	target, exists := targets[name]
	if !exists {
		return nil, fmt.Errorf("unknown target %q (available: %v)", name, TargetNames())
	}
	return target, nil
}

// TargetNames lists the registered targets in lexical order
func TargetNames() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mustParse(name, body string) *template.Template {
	tmpl := template.New(name).Funcs(templateFuncs)
	template.Must(tmpl.Parse(headerTemplate))
	return template.Must(tmpl.Parse(body))
}

const headerTemplate = `{{define "header"}}// Code generated by routegen. DO NOT EDIT.
// Source: {{.SourcePath}}

package {{.PackageName}}

import (
{{- range .StdImports}}
	{{if .Alias}}{{.Alias}} {{end}}{{quote .Path}}
{{- end}}
{{- if .StdImports}}
{{end}}
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}{{quote .Path}}
{{- end}}
)

// {{.BaseName}}BasePath is the prefix the {{.BaseName}}Router paths are relative to.
const {{.BaseName}}BasePath = {{quote .BasePath}}
{{end}}`

const ginRouterTemplate = `{{template "header" .}}
// {{.BaseName}}Router registers the {{.BasePath}} routes on r.
func {{.BaseName}}Router(r gin.IRouter) gin.IRouter {
{{- range .Routes}}
	r.{{.Method}}({{quote (mount .Path)}},
{{- if .NeedsValidation}}
		func(c *gin.Context) {
			var req contract.{{.Name}}
{{- if .HasParams}}
			if err := ginkit.BindParams(c, &req.Params); err != nil {
				ginkit.Fail(c, err)
				return
			}
{{- end}}
{{- if .HasQuery}}
			if err := ginkit.BindQuery(c, &req.Query); err != nil {
				ginkit.Fail(c, err)
				return
			}
{{- end}}
{{- if .HasBody}}
			if err := ginkit.BindBody(c, &req.Body); err != nil {
				ginkit.Fail(c, err)
				return
			}
{{- end}}
			ginkit.SetRequest(c, &req)
			c.Next()
		},
{{- end}}
{{- range .Middleware}}
		ginkit.Middleware({{.}}),
{{- end}}
		ginkit.Handle({{.Status}}, {{.Terminal}}),
	)
{{- end}}
	return r
}
`

const echoRouterTemplate = `{{template "header" .}}
// {{.BaseName}}Router registers the {{.BasePath}} routes on r.
func {{.BaseName}}Router(r echokit.Router) echokit.Router {
{{- range .Routes}}
	r.{{.Method}}({{quote (mount .Path)}}, echokit.Handle({{.Status}}, {{.Terminal}}),
{{- if .NeedsValidation}}
		func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				var req contract.{{.Name}}
{{- if .HasParams}}
				if err := echokit.BindParams(c, &req.Params); err != nil {
					return err
				}
{{- end}}
{{- if .HasQuery}}
				if err := echokit.BindQuery(c, &req.Query); err != nil {
					return err
				}
{{- end}}
{{- if .HasBody}}
				if err := echokit.BindBody(c, &req.Body); err != nil {
					return err
				}
{{- end}}
				echokit.SetRequest(c, &req)
				return next(c)
			}
		},
{{- end}}
{{- range .Middleware}}
		echokit.Middleware({{.}}),
{{- end}}
	)
{{- end}}
	return r
}
`

const fiberRouterTemplate = `{{template "header" .}}
// {{.BaseName}}Router registers the {{.BasePath}} routes on r.
func {{.BaseName}}Router(r fiber.Router) fiber.Router {
{{- range .Routes}}
	r.{{title .Method}}({{quote .Path}},
{{- if .NeedsValidation}}
		func(c *fiber.Ctx) error {
			var req contract.{{.Name}}
{{- if .HasParams}}
			if err := fiberkit.BindParams(c, &req.Params); err != nil {
				return err
			}
{{- end}}
{{- if .HasQuery}}
			if err := fiberkit.BindQuery(c, &req.Query); err != nil {
				return err
			}
{{- end}}
{{- if .HasBody}}
			if err := fiberkit.BindBody(c, &req.Body); err != nil {
				return err
			}
{{- end}}
			fiberkit.SetRequest(c, &req)
			return c.Next()
		},
{{- end}}
{{- range .Middleware}}
		fiberkit.Middleware({{.}}),
{{- end}}
		fiberkit.Handle({{.Status}}, {{.Terminal}}),
	)
{{- end}}
	return r
}
`
