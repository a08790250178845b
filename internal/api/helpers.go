package api

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"
)

func writeErr(c *echo.Context, err error) error {
	status, errType := statusFor(err)
	return writeError(c, status, errType, err.Error())
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, map[string]any{
		"error": ErrorBody{
			Message: msg,
			Type:    errType,
		},
	})
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, newInvalidRequest("invalid JSON body: " + err.Error())
	}
	return out, nil
}
