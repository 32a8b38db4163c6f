package jobboard

import (
	stderrors "errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// metadata keys surfaced to API clients alongside the error message
var exposedMetadataKeys = []string{"requires_verification", "email"}

// ErrorHandlerConfig tunes the fiber error handler.
type ErrorHandlerConfig struct {
	Debug  bool
	Logger Logger
}

// NewErrorHandler builds the fiber error handler: rich errors map to their
// HTTP code with a JSON body of the shape {"error": message}; ozzo validation
// failures map to 400; anything else is a 500 with the message hidden.
func NewErrorHandler(cfg ErrorHandlerConfig) fiber.ErrorHandler {
	logger := cfg.Logger
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		if err == nil {
			return nil
		}

		if cfg.Debug {
			fmt.Println("======= API ERROR =======")
			fmt.Println(print.MaybePrettyJSON(map[string]any{
				"path":  c.Path(),
				"error": err.Error(),
			}))
			fmt.Println("=========================")
		}

		var rich *goerrors.Error
		if goerrors.As(err, &rich) {
			status := httpStatus(rich)
			body := fiber.Map{"error": rich.Message}
			for _, key := range exposedMetadataKeys {
				if v, ok := rich.Metadata[key]; ok {
					body[key] = v
				}
			}
			return c.Status(status).JSON(body)
		}

		if _, ok := err.(validation.Errors); ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		var fiberErr *fiber.Error
		if stderrors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiberErr.Message,
			})
		}

		logger.Error("unhandled API error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
}

func httpStatus(err *goerrors.Error) int {
	if err.Code >= 400 && err.Code < 600 {
		return int(err.Code)
	}

	switch err.Category {
	case goerrors.CategoryAuth:
		return fiber.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return fiber.StatusForbidden
	case goerrors.CategoryNotFound:
		return fiber.StatusNotFound
	case goerrors.CategoryConflict:
		return fiber.StatusConflict
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
