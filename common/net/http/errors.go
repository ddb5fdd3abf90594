package http

import (
	"errors"

	"github.com/LerianStudio/mdispatch/common"
	"github.com/gofiber/fiber/v2"
)

// ResponseError is a struct used to return errors to the client.
type ResponseError struct {
	Code    int    `json:"code,omitempty"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

func (r ResponseError) Error() string { return r.Message }

// ValidationKnownFieldsError records an error that occurred during a
// validation of known fields.
type ValidationKnownFieldsError struct {
	EntityType string           `json:"entityType,omitempty"`
	Title      string           `json:"title,omitempty"`
	Code       string           `json:"code,omitempty"`
	Message    string           `json:"message,omitempty"`
	Fields     FieldValidations `json:"fields,omitempty"`
}

func (r ValidationKnownFieldsError) Error() string { return r.Message }

// FieldValidations is a map of known fields and their validation errors.
type FieldValidations map[string]string

// WithError maps the dispatch runtime's error taxonomy onto an HTTP
// response for the demo gateway.
func WithError(c *fiber.Ctx, err error) error {
	switch e := err.(type) {
	case common.ValidationError:
		return BadRequest(c, ValidationKnownFieldsError{Code: e.Code, Title: e.Title, Message: e.Message})
	case common.DependencyError:
		return UnprocessableEntity(c, e.Code, e.Title, e.Message)
	case common.BuildError:
		return InternalServerError(c, e.Code, e.Title, e.Message)
	case common.RouteNotFoundError:
		return NotFound(c, e.Code, e.Title, e.Message)
	case common.HandlerError:
		return InternalServerError(c, e.Code, e.Title, e.Message)
	case common.PermissionError:
		return Forbidden(c, e.Code, e.Title, e.Message)
	case common.DisposeError:
		return InternalServerError(c, e.Code, e.Title, e.Message)
	case ResponseError:
		var rErr ResponseError
		_ = errors.As(err, &rErr)

		return JSONResponseError(c, rErr)
	default:
		return InternalServerError(c, "internal", "Internal Error", err.Error())
	}
}
