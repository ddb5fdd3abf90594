package http

import "github.com/gofiber/fiber/v2"

func jsonError(c *fiber.Ctx, status int, code, title, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"code":    code,
		"title":   title,
		"message": message,
	})
}

// BadRequest returns HTTP 400 with the given payload.
func BadRequest(c *fiber.Ctx, payload any) error {
	return c.Status(fiber.StatusBadRequest).JSON(payload)
}

// NotFound returns HTTP 404 with the given code/title/message.
func NotFound(c *fiber.Ctx, code, title, message string) error {
	return jsonError(c, fiber.StatusNotFound, code, title, message)
}

// Conflict returns HTTP 409 with the given code/title/message.
func Conflict(c *fiber.Ctx, code, title, message string) error {
	return jsonError(c, fiber.StatusConflict, code, title, message)
}

// Unauthorized returns HTTP 401 with the given code/title/message.
func Unauthorized(c *fiber.Ctx, code, title, message string) error {
	return jsonError(c, fiber.StatusUnauthorized, code, title, message)
}

// Forbidden returns HTTP 403 with the given code/title/message.
func Forbidden(c *fiber.Ctx, code, title, message string) error {
	return jsonError(c, fiber.StatusForbidden, code, title, message)
}

// UnprocessableEntity returns HTTP 422 with the given code/title/message.
func UnprocessableEntity(c *fiber.Ctx, code, title, message string) error {
	return jsonError(c, fiber.StatusUnprocessableEntity, code, title, message)
}

// InternalServerError returns HTTP 500 with the given code/title/message.
func InternalServerError(c *fiber.Ctx, code, title, message string) error {
	return jsonError(c, fiber.StatusInternalServerError, code, title, message)
}

// JSONResponseError returns the status carried by a ResponseError.
func JSONResponseError(c *fiber.Ctx, r ResponseError) error {
	status := r.Code
	if status == 0 {
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(r)
}
