package router

import (
	"meetwise/core/middleware"
	"meetwise/modules/scheduling/controller"

	"github.com/labstack/echo/v4"
)

// SchedulingRouter handles slot search routes
type SchedulingRouter struct {
	SchedulingController *controller.SchedulingController
}

func NewSchedulingRouter(schedulingController *controller.SchedulingController) *SchedulingRouter {
	return &SchedulingRouter{
		SchedulingController: schedulingController,
	}
}

// Setup registers scheduling routes
func (r *SchedulingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	scheduleRoutes := privateRoutes.Group("/schedule", mw.AuthMiddleware())
	scheduleRoutes.POST("/search", r.SchedulingController.Search)
	scheduleRoutes.POST("/commit", r.SchedulingController.Commit)
}
