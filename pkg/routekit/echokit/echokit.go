// Package echokit adapts routekit handlers to echo. Generated routers call into it.
package echokit

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/toyz/routegen/pkg/routekit"
)

// Handler produces the response body for a request. Middleware handlers'
// results are ignored; a returned error stops the chain.
type Handler func(c echo.Context) (any, error)

// Chain is an ordered list of middleware ending in the terminal handler
type Chain []Handler

// Router is the part of *echo.Echo and *echo.Group generated routers register on
type Router interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// Middleware adapts h to run before the next handler of a route
func Middleware(h Handler) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := run(c, h); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// Handle adapts the terminal handler h, writing its result as JSON with status
func Handle(status int, h Handler) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = routekit.PanicError(r)
			}
		}()
		result, err := h(c)
		if err != nil {
			return err
		}
		return c.JSON(status, result)
	}
}

// ErrorHandler renders returned errors as JSON HTTPErrors. Install it as
// echo.Echo.HTTPErrorHandler.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *routekit.HTTPError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &he):
	case errors.As(err, &echoErr):
		he = routekit.NewHTTPError(echoErr.Code, fmt.Sprint(echoErr.Message))
	default:
		he = routekit.AsHTTPError(err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(he.Code)
		return
	}
	_ = c.JSON(he.Code, he)
}

// BindParams decodes path parameters (param tags) into out and validates them
func BindParams(c echo.Context, out any) error {
	if err := (&echo.DefaultBinder{}).BindPathParams(c, out); err != nil {
		return routekit.BindError("params", err)
	}
	return routekit.Validate(out)
}

// BindQuery decodes the query string (query tags) into out and validates it
func BindQuery(c echo.Context, out any) error {
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, out); err != nil {
		return routekit.BindError("query", err)
	}
	return routekit.Validate(out)
}

// BindBody decodes the request body into out and validates it
func BindBody(c echo.Context, out any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, out); err != nil {
		return routekit.BindError("body", err)
	}
	return routekit.Validate(out)
}

// SetRequest stores the validated request for later handlers
func SetRequest(c echo.Context, req any) {
	c.Set(routekit.RequestKey, req)
}

// Request returns the validated request stored by the route's validation step
func Request[T any](c echo.Context) (*T, bool) {
	req, ok := c.Get(routekit.RequestKey).(*T)
	return req, ok
}

func run(c echo.Context, h Handler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = routekit.PanicError(r)
		}
	}()
	_, err = h(c)
	return err
}
