// Package fiberkit adapts routekit handlers to fiber. Generated routers call into it.
package fiberkit

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/toyz/routegen/pkg/routekit"
)

// Handler produces the response body for a request. Middleware handlers'
// results are ignored; a returned error stops the chain.
type Handler func(c *fiber.Ctx) (any, error)

// Chain is an ordered list of middleware ending in the terminal handler
type Chain []Handler

// Middleware adapts h to run before the next handler of a route
func Middleware(h Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := run(c, h); err != nil {
			return err
		}
		return c.Next()
	}
}

// Handle adapts the terminal handler h, writing its result as JSON with status
func Handle(status int, h Handler) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = routekit.PanicError(r)
			}
		}()
		result, err := h(c)
		if err != nil {
			return err
		}
		return c.Status(status).JSON(result)
	}
}

// ErrorHandler renders returned errors as JSON HTTPErrors. Install it as
// fiber.Config.ErrorHandler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var he *routekit.HTTPError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &he):
	case errors.As(err, &fiberErr):
		he = routekit.NewHTTPError(fiberErr.Code, fiberErr.Message)
	default:
		he = routekit.AsHTTPError(err)
	}
	return c.Status(he.Code).JSON(he)
}

// BindParams decodes path parameters (params tags) into out and validates them
func BindParams(c *fiber.Ctx, out any) error {
	if err := c.ParamsParser(out); err != nil {
		return routekit.BindError("params", err)
	}
	return routekit.Validate(out)
}

// BindQuery decodes the query string (query tags) into out and validates it
func BindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return routekit.BindError("query", err)
	}
	return routekit.Validate(out)
}

// BindBody decodes the request body into out and validates it
func BindBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return routekit.BindError("body", err)
	}
	return routekit.Validate(out)
}

// SetRequest stores the validated request for later handlers
func SetRequest(c *fiber.Ctx, req any) {
	c.Locals(routekit.RequestKey, req)
}

// Request returns the validated request stored by the route's validation step
func Request[T any](c *fiber.Ctx) (*T, bool) {
	req, ok := c.Locals(routekit.RequestKey).(*T)
	return req, ok
}

func run(c *fiber.Ctx, h Handler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = routekit.PanicError(r)
		}
	}()
	_, err = h(c)
	return err
}
