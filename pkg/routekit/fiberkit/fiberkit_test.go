package fiberkit

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/routegen/pkg/routekit"
)

type listFriends struct {
	Params struct {
		UserID string `params:"userId" validate:"required"`
	}
	Query struct {
		Limit int `query:"limit" validate:"omitempty,max=50"`
	}
}

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
}

// register mirrors the code generated for a validated route with a chain
func register(r fiber.Router, chain Chain) {
	r.Get("/users/:userId/friends",
		func(c *fiber.Ctx) error {
			var req listFriends
			if err := BindParams(c, &req.Params); err != nil {
				return err
			}
			if err := BindQuery(c, &req.Query); err != nil {
				return err
			}
			SetRequest(c, &req)
			return c.Next()
		},
		Middleware(chain[0]),
		Handle(http.StatusOK, chain[1]),
	)
}

func do(t *testing.T, app *fiber.App, target string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRoute_Success(t *testing.T) {
	var order []string
	app := newApp()
	register(app, Chain{
		func(c *fiber.Ctx) (any, error) {
			order = append(order, "auth")
			return nil, nil
		},
		func(c *fiber.Ctx) (any, error) {
			order = append(order, "handler")
			req, ok := Request[listFriends](c)
			if !ok {
				return nil, fmt.Errorf("request missing")
			}
			return fiber.Map{"user": req.Params.UserID, "limit": req.Query.Limit}, nil
		},
	})

	status, body := do(t, app, "/users/u1/friends?limit=10")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"user":"u1","limit":10}`, body)
	assert.Equal(t, []string{"auth", "handler"}, order)
}

func TestRoute_Failures(t *testing.T) {
	app := newApp()
	register(app.Group("/v1"), Chain{
		func(c *fiber.Ctx) (any, error) {
			if c.Query("token") == "" {
				return nil, routekit.ErrUnauthorized("no token")
			}
			return nil, nil
		},
		func(c *fiber.Ctx) (any, error) { panic("boom") },
	})

	status, body := do(t, app, "/v1/users/u1/friends?limit=99")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, `"field":"limit"`)

	status, body = do(t, app, "/v1/users/u1/friends")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"code":401,"message":"no token"}`, body)

	status, _ = do(t, app, "/v1/users/u1/friends?token=t")
	assert.Equal(t, http.StatusInternalServerError, status)

	status, body = do(t, app, "/missing")
	assert.Equal(t, http.StatusNotFound, status)
	assert.True(t, strings.Contains(body, `"code":404`))
}
