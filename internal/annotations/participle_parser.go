package annotations

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/routegen/internal/models"
)

// RouteExpr is the parse tree of a @route annotation: METHOD SP PATH.
// Every part is optional in the grammar so that failures can be named
// precisely after parsing.
type RouteExpr struct {
	Method string   `parser:"@Word?"`
	Path   string   `parser:"(Whitespace @Path)?"`
	Rest   []string `parser:"@(Whitespace | Word | Path | Other)*"`
}

// Route is a validated @route annotation
type Route struct {
	Method models.Method
	Path   string
}

// RouteSyntaxError describes why a @route annotation was rejected
type RouteSyntaxError struct {
	Raw    string
	Reason string
}

func (e *RouteSyntaxError) Error() string {
	return fmt.Sprintf("%s in @route annotation: %q", e.Reason, e.Raw)
}

const (
	ReasonNoMethod      = "no method found"
	ReasonNoPath        = "no path found"
	ReasonTrailingInput = "unexpected text after path"
)

// RouteParser parses @route annotation text with a participle grammar
type RouteParser struct {
	parser *participle.Parser[RouteExpr]
}

// NewRouteParser builds the @route grammar
func NewRouteParser() *RouteParser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Word", Pattern: `[A-Za-z]+`},
		{Name: "Path", Pattern: `/\S*`},
		{Name: "Other", Pattern: `\S+`},
	})

	return &RouteParser{
		parser: participle.MustBuild[RouteExpr](
			participle.Lexer(lex),
			participle.UseLookahead(2),
		),
	}
}

// Parse validates the text of a @route annotation
func (p *RouteParser) Parse(text string) (Route, error) {
	raw := text
	text = strings.TrimSpace(text)

	expr, err := p.parser.ParseString("", text)
	if err != nil {
		return Route{}, &RouteSyntaxError{Raw: raw, Reason: ReasonNoMethod}
	}

	method, ok := models.ParseMethod(expr.Method)
	if !ok {
		return Route{}, &RouteSyntaxError{Raw: raw, Reason: ReasonNoMethod}
	}
	if expr.Path == "" {
		return Route{}, &RouteSyntaxError{Raw: raw, Reason: ReasonNoPath}
	}
	if len(expr.Rest) > 0 {
		return Route{}, &RouteSyntaxError{Raw: raw, Reason: ReasonTrailingInput}
	}

	return Route{Method: method, Path: expr.Path}, nil
}

// ParseStatus validates the text of a @status annotation
func ParseStatus(text string) (int, error) {
	code, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("status %q is not an integer", text)
	}
	if code < 100 || code > 599 {
		return 0, fmt.Errorf("status %d is outside the HTTP range", code)
	}
	return code, nil
}
