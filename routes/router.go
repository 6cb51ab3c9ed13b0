package routes

import (
	"citalink.app/handlers"
	"citalink.app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// Services bundles everything the router needs. Handlers receive their
// service explicitly instead of reaching for globals.
type Services struct {
	Users         services.IUserService
	Appointments  services.IAppointmentService
	Contacts      services.IContactService
	Feedback      services.IFeedbackService
	Reviews       services.IReviewService
	ProfileVisits services.IProfileVisitService
}

// SetupRoutes registers the global middlewares and every API route.
func SetupRoutes(app *fiber.App, svcs Services) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())

	registerUserRoutes(app, svcs)
	registerAppointmentRoutes(app, svcs)
	registerContactRoutes(app, svcs)
	registerFeedbackRoutes(app, svcs)
	registerReviewRoutes(app, svcs)
	registerProfileVisitRoutes(app, svcs)

	app.Use(notFoundHandler)
}

func registerUserRoutes(app *fiber.App, svcs Services) {
	handler := handlers.NewUserHandler(svcs.Users)

	app.Post("/auth/register", handler.Register)
	app.Post("/auth/login", handler.Login)

	group := app.Group("/users")
	group.Get("/", handler.List)
	group.Get("/deleted", handler.ListDeleted)
	group.Get("/:id", handler.GetByID)
	group.Put("/:id", handler.Update)
	group.Delete("/:id", handler.Delete)
}

func registerAppointmentRoutes(app *fiber.App, svcs Services) {
	handler := handlers.NewAppointmentHandler(svcs.Appointments)
	group := app.Group("/appointments")

	group.Post("/", handler.Create)
	group.Get("/", handler.List)
	group.Get("/client/:clientId", handler.ListByClient)
	group.Get("/prof/:profId", handler.ListByProf)
	group.Put("/:id", handler.Update)
	group.Delete("/:id", handler.Delete)
}

func registerContactRoutes(app *fiber.App, svcs Services) {
	handler := handlers.NewContactHandler(svcs.Contacts)
	group := app.Group("/contacts")

	group.Post("/", handler.Create)
	group.Get("/", handler.List)
	group.Get("/sender/:senderId", handler.ListBySender)
	group.Get("/receiver/:receiverId", handler.ListByReceiver)
	group.Put("/:id", handler.Update)
	group.Post("/:id/send", handler.MarkSent)
	group.Delete("/:id", handler.Delete)
}

func registerFeedbackRoutes(app *fiber.App, svcs Services) {
	handler := handlers.NewFeedbackHandler(svcs.Feedback)
	group := app.Group("/feedback")

	group.Post("/", handler.Create)
	group.Get("/", handler.List)
	group.Get("/sender/:senderId", handler.ListBySender)
	group.Put("/:id", handler.Update)
	group.Delete("/:id", handler.Delete)
}

func registerReviewRoutes(app *fiber.App, svcs Services) {
	handler := handlers.NewReviewHandler(svcs.Reviews)
	group := app.Group("/reviews")

	group.Post("/", handler.Create)
	group.Get("/", handler.List)
	group.Get("/prof/:profId", handler.ListByProf)
	group.Get("/client/:clientId", handler.ListByClient)
	group.Put("/:id", handler.Update)
	group.Delete("/:id", handler.Delete)
}

func registerProfileVisitRoutes(app *fiber.App, svcs Services) {
	handler := handlers.NewProfileVisitHandler(svcs.ProfileVisits)
	group := app.Group("/profile-visits")

	group.Post("/", handler.Create)
	group.Get("/", handler.List)
	group.Get("/host/:hostId", handler.ListByHost)
	group.Get("/visitor/:visitorId", handler.ListByVisitor)
	group.Delete("/:id", handler.Delete)
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "recurso no encontrado"})
}
