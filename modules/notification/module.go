package notification

import (
	"meetwise/core/database"
	"meetwise/core/middleware"
	"meetwise/modules/notification/controller"
	"meetwise/modules/notification/repository"
	"meetwise/modules/notification/router"
	"meetwise/modules/notification/service"
	"meetwise/modules/notification/worker"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init initializes the notification module: HTTP routes, the asynq task
// handlers and the enqueuing notifier handed to the scheduling module.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware, client *asynq.Client, mux *asynq.ServeMux) *worker.Notifier {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)
	rtr := router.NewNotificationRouter(ctrl)

	rtr.Setup(e, mw)
	worker.NewHandler(svc).Register(mux)

	return worker.NewNotifier(client)
}
