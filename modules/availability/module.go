package availability

import (
	"meetwise/core/cache"
	"meetwise/core/database"
	"meetwise/core/middleware"
	"meetwise/modules/availability/controller"
	"meetwise/modules/availability/repository"
	"meetwise/modules/availability/router"
	"meetwise/modules/availability/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the availability module and registers routes. The service
// is returned so the scheduling module can use it as its busy interval source.
func Init(e *echo.Echo, db database.IDatabase, c cache.ICache, mw *middleware.Middleware) service.AvailabilityServiceInterface {
	repo := repository.NewAvailabilityRepository(db)
	svc := service.NewAvailabilityService(repo, c)
	ctrl := controller.NewAvailabilityController(svc)
	rtr := router.NewAvailabilityRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
