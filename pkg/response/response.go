package response

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ohmfruit/fruitstore-service/pkg/errs"
	"github.com/rs/zerolog/log"
)

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Status = "success"
	resp.Data = data
	resp.Message = message

	return c.JSON(http.StatusOK, resp)
}

// WriteErrorResponse maps err to its status code. Errors that are not one of
// the known sentinels are logged and hidden behind a generic message.
func WriteErrorResponse(c echo.Context, err error, errors interface{}) error {
	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{}
	resp.Status = "error"
	resp.Errors = errors

	known, ok := errs.Known(err)
	switch {
	case !ok:
		log.Ctx(c.Request().Context()).Error().Err(err).Str("component", "WriteErrorResponse").Msg("")
		resp.Message = errs.ErrInternalServer.Error()
	case isValidation(err):
		resp.Message = known.Error()
		if resp.Errors == nil {
			resp.Errors = validationFields(err)
		}
	default:
		resp.Message = known.Error()
	}

	return c.JSON(statusCode, resp)
}

func isValidation(err error) bool {
	var v *errs.ValidationError
	return errors.As(err, &v)
}

func validationFields(err error) []errs.FieldError {
	var v *errs.ValidationError
	if errors.As(err, &v) {
		return v.Fields
	}

	return nil
}
