package controller

import (
	"meetwise/core/constants"
	"meetwise/core/controller"
	"meetwise/core/errors"
	"meetwise/core/utils"
	"meetwise/modules/scheduling/dto"
	"meetwise/modules/scheduling/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SchedulingController handles slot search HTTP requests
type SchedulingController struct {
	controller.BaseController
	SchedulingService service.SchedulingServiceInterface
}

func NewSchedulingController(svc service.SchedulingServiceInterface) *SchedulingController {
	return &SchedulingController{
		BaseController:    controller.NewBaseController(),
		SchedulingService: svc,
	}
}

// getUserIDFromContext extracts user ID from JWT context
func (c *SchedulingController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// Search handles POST /schedule/search
// @Summary Search candidate meeting slots
// @Description Rank candidate time slots for a set of participants and constraints
// @Tags Scheduling
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SearchRequest true "Search constraints"
// @Success 200 {object} dto.SearchResponse
// @Failure 400 {object} errors.AppError
// @Router /private/schedule/search [post]
func (c *SchedulingController) Search(ctx echo.Context) error {
	var req dto.SearchRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.SchedulingService.Search(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Search completed")
}

// Commit handles POST /schedule/commit
// @Summary Commit a chosen slot
// @Description Record a chosen candidate slot as a meeting and notify participants
// @Tags Scheduling
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CommitRequest true "Chosen slot"
// @Success 200 {object} meetingdto.MeetingResponse
// @Failure 400 {object} errors.AppError
// @Router /private/schedule/commit [post]
func (c *SchedulingController) Commit(ctx echo.Context) error {
	hostID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CommitRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.SchedulingService.Commit(ctx.Request().Context(), hostID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Meeting committed")
}
