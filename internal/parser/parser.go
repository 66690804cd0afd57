package parser

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/toyz/routegen/internal/annotations"
	"github.com/toyz/routegen/internal/errors"
	"github.com/toyz/routegen/internal/models"
)

// Extractor reads route declarations from files of a Project
type Extractor struct {
	project *Project
	routes  *annotations.RouteParser
}

// NewExtractor creates an extractor over project
func NewExtractor(project *Project) *Extractor {
	return &Extractor{
		project: project,
		routes:  annotations.NewRouteParser(),
	}
}

// Extract returns one RouteSpec per route declaration in the file at path,
// in declaration order
func (e *Extractor) Extract(path string) ([]models.RouteSpec, error) {
	file, ok := e.project.File(path)
	if !ok {
		return nil, fmt.Errorf("file %s is not part of the project", path)
	}
	return e.ExtractFile(file)
}

// ExtractFile is Extract for an already parsed file
func (e *Extractor) ExtractFile(file *ast.File) ([]models.RouteSpec, error) {
	var specs []models.RouteSpec

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			typeSpec := spec.(*ast.TypeSpec)
			doc := typeSpec.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			tags := annotations.ExtractTags(doc)

			structType, ok := typeSpec.Type.(*ast.StructType)
			if !ok {
				if tag, routed := tags.Find(annotations.TagRoute); routed {
					return nil, errors.NewNonStructRoute(typeSpec.Name.Name, tag.Text, e.project.Location(typeSpec.Pos()))
				}
				continue
			}

			candidate := declaration{
				name:   typeSpec.Name.Name,
				pos:    typeSpec.Pos(),
				tags:   tags,
				fields: collectFields(structType),
			}
			if !candidate.isRoute() {
				continue
			}

			routeSpec, err := e.buildSpec(candidate)
			if err != nil {
				return nil, err
			}
			specs = append(specs, routeSpec)
		}
	}

	return specs, nil
}

// declaration is a struct type under consideration as a route declaration
type declaration struct {
	name   string
	pos    token.Pos
	tags   annotations.Tags
	fields map[string]*ast.Field
}

// isRoute reports whether the type declares a route. Types with neither a
// @route tag nor a Response field are plain models.
func (d declaration) isRoute() bool {
	_, hasResponse := d.fields[FieldResponse]
	return hasResponse || d.tags.Has(annotations.TagRoute)
}

func (e *Extractor) buildSpec(decl declaration) (models.RouteSpec, error) {
	loc := e.project.Location(decl.pos)

	tag, ok := decl.tags.Find(annotations.TagRoute)
	if !ok {
		return models.RouteSpec{}, errors.NewMissingRouteAnnotation(decl.name, loc)
	}

	route, err := e.routes.Parse(tag.Text)
	if err != nil {
		reason := err.Error()
		if syntaxErr, ok := err.(*annotations.RouteSyntaxError); ok {
			reason = syntaxErr.Reason
		}
		return models.RouteSpec{}, errors.NewMalformedRouteAnnotation(decl.name, tag.Text, reason, e.project.Location(tag.Pos))
	}

	response, ok := decl.fields[FieldResponse]
	if !ok {
		return models.RouteSpec{}, errors.NewMissingResponseField(decl.name, loc)
	}

	status := route.Method.DefaultStatus()
	if statusTag, ok := annotations.ExtractTags(response.Doc, response.Comment).Find(annotations.TagStatus); ok {
		status, err = annotations.ParseStatus(statusTag.Text)
		if err != nil {
			return models.RouteSpec{}, errors.NewMalformedStatusAnnotation(decl.name, statusTag.Text, e.project.Location(statusTag.Pos))
		}
	}

	_, hasBody := decl.fields[FieldBody]
	_, hasParams := decl.fields[FieldParams]
	_, hasQuery := decl.fields[FieldQuery]

	return models.RouteSpec{
		Name:      decl.name,
		Method:    route.Method,
		FullPath:  route.Path,
		Status:    status,
		HasBody:   hasBody,
		HasParams: hasParams,
		HasQuery:  hasQuery,
		Position:  e.project.FileSet().Position(decl.pos),
	}, nil
}

// collectFields indexes the named fields of a struct
func collectFields(structType *ast.StructType) map[string]*ast.Field {
	fields := make(map[string]*ast.Field)
	if structType.Fields == nil {
		return fields
	}
	for _, field := range structType.Fields.List {
		for _, name := range field.Names {
			fields[name.Name] = field
		}
	}
	return fields
}
