package scheduling

import (
	"meetwise/core/middleware"
	"meetwise/modules/scheduling/controller"
	"meetwise/modules/scheduling/router"
	"meetwise/modules/scheduling/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the scheduling module and registers routes. The busy
// interval source, meeting creator and notifier come from their own modules.
func Init(e *echo.Echo, mw *middleware.Middleware, busySource service.BusyIntervalSource, meetings service.MeetingCreator, notifier service.CommitNotifier) service.SchedulingServiceInterface {
	svc := service.NewSchedulingService(busySource, meetings, notifier)
	ctrl := controller.NewSchedulingController(svc)
	rtr := router.NewSchedulingRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
