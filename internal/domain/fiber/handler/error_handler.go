package handler

import (
	"errors"

	"github.com/fadilmartias/datapulse/internal/service"
	"github.com/fadilmartias/datapulse/internal/usecase"
	"github.com/fadilmartias/datapulse/internal/util"
	"github.com/gofiber/fiber/v2"
)

// remoteError maps a usecase failure to a response. Client mistakes keep
// their status and anything the API could not serve becomes a 502.
func remoteError(c *fiber.Ctx, err error) error {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		return util.BadRequest(c, verr.Error(), err)
	}
	var apiErr *service.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.StatusCode
		if code < 400 || code >= 500 {
			code = fiber.StatusBadGateway
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    code,
			Message: apiErr.Error(),
		}, err)
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Message: "internal server error",
	}, err)
}
