package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
)

const headerRequestID = "X-Request-Id"

// ErrInvalidIndex marks a path index that is not an integer.
var ErrInvalidIndex = errors.New("invalid index")

type indexError struct {
	param string
	raw   string
}

func (e indexError) Error() string {
	return fmt.Sprintf("%s: %q is not an integer", e.param, e.raw)
}

func (e indexError) Unwrap() error { return ErrInvalidIndex }

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg)
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, ErrorResponse{
		Error: ResponseError{
			Message: msg,
			Type:    errType,
		},
	})
}

// indexParams parses the named path parameters as integers.
func indexParams(c *echo.Context, names ...string) ([]int, error) {
	out := make([]int, len(names))
	for n, name := range names {
		raw := c.Param(name)
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, indexError{param: name, raw: raw}
		}
		out[n] = v
	}
	return out, nil
}

// RequestID echoes the caller's X-Request-Id or assigns a fresh one.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			id := c.Request().Header.Get(headerRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(headerRequestID, id)
			return next(c)
		}
	}
}
