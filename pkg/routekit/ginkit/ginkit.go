// Package ginkit adapts routekit handlers to gin. Generated routers call into it.
package ginkit

import (
	"github.com/gin-gonic/gin"

	"github.com/toyz/routegen/pkg/routekit"
)

// Handler produces the response body for a request. Middleware handlers'
// results are ignored; a returned error stops the chain.
type Handler func(c *gin.Context) (any, error)

// Chain is an ordered list of middleware ending in the terminal handler
type Chain []Handler

// Middleware adapts h to run before the next handler of a route
func Middleware(h Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer recoverTo(c)
		if _, err := h(c); err != nil {
			Fail(c, err)
		}
	}
}

// Handle adapts the terminal handler h, writing its result as JSON with status
func Handle(status int, h Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer recoverTo(c)
		result, err := h(c)
		if err != nil {
			Fail(c, err)
			return
		}
		c.JSON(status, result)
	}
}

// Fail records err on the context and stops the handler chain.
// ErrorHandler renders it.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler renders the last error recorded by Fail as a JSON HTTPError
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		he := routekit.AsHTTPError(c.Errors.Last().Err)
		c.JSON(he.Code, he)
	}
}

// BindParams decodes path parameters (uri tags) into out and validates them
func BindParams(c *gin.Context, out any) error {
	if err := c.ShouldBindUri(out); err != nil {
		return routekit.BindError("params", err)
	}
	return routekit.Validate(out)
}

// BindQuery decodes the query string (form tags) into out and validates it
func BindQuery(c *gin.Context, out any) error {
	if err := c.ShouldBindQuery(out); err != nil {
		return routekit.BindError("query", err)
	}
	return routekit.Validate(out)
}

// BindBody decodes a JSON body into out and validates it
func BindBody(c *gin.Context, out any) error {
	if err := c.ShouldBindJSON(out); err != nil {
		return routekit.BindError("body", err)
	}
	return routekit.Validate(out)
}

// SetRequest stores the validated request for later handlers
func SetRequest(c *gin.Context, req any) {
	c.Set(routekit.RequestKey, req)
}

// Request returns the validated request stored by the route's validation step
func Request[T any](c *gin.Context) (*T, bool) {
	v, ok := c.Get(routekit.RequestKey)
	if !ok {
		return nil, false
	}
	req, ok := v.(*T)
	return req, ok
}

func recoverTo(c *gin.Context) {
	if r := recover(); r != nil {
		Fail(c, routekit.PanicError(r))
	}
}
