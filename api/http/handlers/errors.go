package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/win/api/http/presenter"
)

// LocalError is the c.Locals key the request logger reads the cause of a 5xx from.
const LocalError = "handlerError"

// serverError hides err from the client and leaves it for the request logger.
func serverError(c *fiber.Ctx, message string, err error) error {
	c.Locals(LocalError, err)
	return presenter.Error(c, http.StatusInternalServerError, message)
}
