package meeting

import (
	"meetwise/core/database"
	"meetwise/core/middleware"
	"meetwise/modules/meeting/controller"
	"meetwise/modules/meeting/repository"
	"meetwise/modules/meeting/router"
	"meetwise/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the meeting module and registers routes. The service is
// returned so the scheduling module can commit chosen slots through it.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) service.MeetingServiceInterface {
	repo := repository.NewMeetingRepository(db)
	svc := service.NewMeetingService(repo)
	ctrl := controller.NewMeetingController(svc)
	rtr := router.NewMeetingRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
