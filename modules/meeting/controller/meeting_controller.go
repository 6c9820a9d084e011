package controller

import (
	"meetwise/core/constants"
	"meetwise/core/controller"
	"meetwise/core/errors"
	"meetwise/core/utils"
	"meetwise/modules/meeting/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// MeetingController handles meeting HTTP requests
type MeetingController struct {
	controller.BaseController
	MeetingService service.MeetingServiceInterface
}

func NewMeetingController(svc service.MeetingServiceInterface) *MeetingController {
	return &MeetingController{
		BaseController: controller.NewBaseController(),
		MeetingService: svc,
	}
}

// getUserIDFromContext extracts user ID from JWT context
func (c *MeetingController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID, nil
}

// ListMyMeetings handles GET /meetings
// @Summary List my meetings
// @Description List meetings the user hosts or attends
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.MeetingResponse
// @Failure 401 {object} errors.AppError
// @Router /private/meetings [get]
func (c *MeetingController) ListMyMeetings(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.MeetingService.ListMyMeetings(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetMeeting handles GET /meetings/:id
// @Summary Get a meeting
// @Description Get meeting details by internal or public ID
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param id path string true "Meeting ID"
// @Success 200 {object} dto.MeetingResponse
// @Failure 404 {object} errors.AppError
// @Router /private/meetings/{id} [get]
func (c *MeetingController) GetMeeting(ctx echo.Context) error {
	raw := ctx.Param("id")

	// Accept both the internal UUID and the short public id
	if meetingID, err := uuid.Parse(raw); err == nil {
		result, appErr := c.MeetingService.GetMeetingByID(ctx.Request().Context(), meetingID)
		if appErr != nil {
			return c.ErrorResponse(ctx, appErr)
		}
		return c.SuccessResponse(ctx, result, "Success")
	}

	result, appErr := c.MeetingService.GetMeetingByPublicID(ctx.Request().Context(), raw)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// CancelMeeting handles DELETE /meetings/:id
// @Summary Cancel a meeting
// @Description Mark a meeting cancelled; host only
// @Tags Meeting
// @Security BearerAuth
// @Param id path string true "Meeting ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.AppError
// @Router /private/meetings/{id} [delete]
func (c *MeetingController) CancelMeeting(ctx echo.Context) error {
	hostID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	meetingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting ID")
	}

	appErr := c.MeetingService.CancelMeeting(ctx.Request().Context(), meetingID, hostID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Meeting cancelled")
}
