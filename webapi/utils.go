package webapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mato5/purple-currency-converter/pkg/domain"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// SuccessResponseJSON writes a standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseJSON returns a response following RFC 9457 Problem Details.
func ErrorResponseJSON(c *fiber.Ctx, status int, title string, detail any) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	pd.Instance = c.OriginalURL()
	c.Set(fiber.HeaderContentType, "application/problem+json")

	return c.Status(status).JSON(pd)
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	var upstreamErr *domain.UpstreamError
	var networkErr *domain.NetworkError

	switch {
	case errors.Is(err, domain.ErrInvalidCurrencyCode),
		errors.Is(err, domain.ErrIdenticalCurrency),
		errors.Is(err, domain.ErrInvalidAmount):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrCurrencyNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrMalformedResponse):
		return fiber.StatusBadGateway
	case errors.As(err, &upstreamErr):
		return fiber.StatusBadGateway
	case errors.As(err, &networkErr):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorToTitle maps domain errors to the short, user-facing category shown
// in the response. Raw upstream detail stays in the logs.
func ErrorToTitle(err error) string {
	var upstreamErr *domain.UpstreamError
	var networkErr *domain.NetworkError

	switch {
	case errors.Is(err, domain.ErrInvalidCurrencyCode):
		return "Invalid currency code"
	case errors.Is(err, domain.ErrIdenticalCurrency):
		return "Source and target currency must differ"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "Amount must be positive"
	case errors.Is(err, domain.ErrCurrencyNotFound):
		return "Currency not available"
	case errors.Is(err, domain.ErrMalformedResponse), errors.As(err, &upstreamErr):
		return "Exchange rate service unavailable"
	case errors.As(err, &networkErr):
		return "Connection problem"
	default:
		return "Internal server error"
	}
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	return &input, nil
}
