// Package router wires the HTTP routes to their handlers and access rules.
//
// Route access follows the role ladder read_only < coordinator < manager <
// admin. Reads are open to any authenticated user; schedule, roster and
// budget writes need coordinator; venues, stages, deletes of money rows and
// the contract lifecycle need manager; users and festivals need admin. The
// public signing and volunteer application endpoints sit outside
// authentication behind the rate limiter.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mbruton/festival-manager/internal/handler"
	"github.com/mbruton/festival-manager/internal/middleware"
	"github.com/mbruton/festival-manager/internal/model"
)

// Handlers bundles everything Register needs so main stays a flat
// constructor list.
type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Venues    *handler.VenueHandler
	Festivals *handler.FestivalHandler
	Stages    *handler.StageHandler
	Artists   *handler.ArtistHandler
	Schedule  *handler.ScheduleHandler
	Volunteer *handler.VolunteerHandler
	Vendors   *handler.VendorHandler
	Budget    *handler.BudgetHandler
	Documents *handler.DocumentHandler
	Contracts *handler.ContractHandler
	Todos     *handler.TodoHandler
	Health    *handler.HealthHandler
}

// Register mounts every route. publicLimit guards the unauthenticated
// contract signing endpoints.
func Register(e *echo.Echo, h Handlers, jwtSecret string, users middleware.UserStore, publicLimit echo.MiddlewareFunc) {
	e.GET("/healthz", h.Health.Check)

	// Public signing link. No authentication: the token is the credential.
	pub := e.Group("/api/contracts/sign", publicLimit)
	pub.GET("/:token", h.Contracts.View)
	pub.POST("/:token", h.Contracts.Sign)

	// Public volunteer application form.
	e.POST("/api/volunteers/register", h.Volunteer.Register, publicLimit)

	e.POST("/api/auth/login", h.Auth.Login)

	api := e.Group("/api", middleware.JWTAuth(jwtSecret, users))

	api.GET("/auth/profile", h.Auth.Profile)
	api.PUT("/auth/profile", h.Auth.UpdateProfile)
	api.PUT("/auth/password", h.Auth.ChangePassword)

	// Coordinators run the day-to-day schedule and rosters; managers own
	// venues, stages, money and contracts; admins own users and festivals.
	coord := api.Group("", middleware.RequireMinimumRole(model.RoleCoordinator))
	mgr := api.Group("", middleware.RequireMinimumRole(model.RoleManager))
	admin := api.Group("", middleware.RequireRole(model.RoleAdmin))

	admin.POST("/auth/register", h.Auth.Register)
	mgr.GET("/users", h.Users.List)
	admin.PUT("/users/:id/role", h.Users.SetRole)
	admin.PUT("/users/:id/deactivate", h.Users.Deactivate)
	admin.PUT("/users/:id/activate", h.Users.Activate)

	api.GET("/venues", h.Venues.List)
	api.GET("/venues/:id", h.Venues.Get)
	mgr.POST("/venues", h.Venues.Create)
	mgr.PUT("/venues/:id", h.Venues.Update)
	mgr.DELETE("/venues/:id", h.Venues.Delete)

	api.GET("/festivals", h.Festivals.List)
	api.GET("/festivals/:id", h.Festivals.Get)
	api.GET("/festivals/:id/stats", h.Festivals.Stats)
	admin.POST("/festivals", h.Festivals.Create)
	admin.PUT("/festivals/:id", h.Festivals.Update)
	admin.DELETE("/festivals/:id", h.Festivals.Delete)
	admin.POST("/festivals/:id/clone", h.Festivals.Clone)

	api.GET("/stages", h.Stages.List)
	api.GET("/stages/:id", h.Stages.Get)
	mgr.POST("/stages", h.Stages.Create)
	coord.PUT("/stages/reorder", h.Stages.Reorder)
	mgr.PUT("/stages/:id", h.Stages.Update)
	mgr.DELETE("/stages/:id", h.Stages.Delete)

	api.GET("/artists", h.Artists.List)
	api.GET("/artists/dropdown/list", h.Artists.Dropdown)
	api.GET("/artists/:id", h.Artists.Get)
	coord.POST("/artists", h.Artists.Create)
	coord.PUT("/artists/:id", h.Artists.Update)
	mgr.DELETE("/artists/:id", h.Artists.Delete)

	api.GET("/schedule", h.Schedule.List)
	api.GET("/schedule/grid/:date", h.Schedule.Grid)
	api.GET("/schedule/:id", h.Schedule.Get)
	coord.POST("/schedule", h.Schedule.Create)
	coord.PUT("/schedule/:id", h.Schedule.Update)
	coord.DELETE("/schedule/:id", h.Schedule.Delete)

	api.GET("/volunteers", h.Volunteer.List)
	api.GET("/volunteers/:id", h.Volunteer.Get)
	coord.POST("/volunteers", h.Volunteer.Create)
	coord.PUT("/volunteers/:id", h.Volunteer.Update)
	mgr.DELETE("/volunteers/:id", h.Volunteer.Delete)

	api.GET("/vendors", h.Vendors.List)
	api.GET("/vendors/:id", h.Vendors.Get)
	coord.POST("/vendors", h.Vendors.Create)
	coord.PUT("/vendors/:id", h.Vendors.Update)
	mgr.DELETE("/vendors/:id", h.Vendors.Delete)

	api.GET("/documents", h.Documents.List)
	api.GET("/documents/:id", h.Documents.Get)
	coord.POST("/documents", h.Documents.Create)
	coord.PUT("/documents/:id", h.Documents.Update)
	coord.DELETE("/documents/:id", h.Documents.Delete)

	api.GET("/todos", h.Todos.List)

	api.GET("/budget", h.Budget.List)
	api.GET("/budget/summary/:festival_id", h.Budget.Summary)
	api.GET("/budget/categories/:festival_id", h.Budget.Categories)
	api.GET("/budget/:id", h.Budget.Get)
	coord.POST("/budget", h.Budget.Create)
	coord.PUT("/budget/:id", h.Budget.Update)
	mgr.DELETE("/budget/:id", h.Budget.Delete)

	api.GET("/contract-templates", h.Contracts.ListTemplates)
	api.GET("/contract-templates/:id", h.Contracts.GetTemplate)
	mgr.POST("/contract-templates", h.Contracts.CreateTemplate)
	mgr.PUT("/contract-templates/:id", h.Contracts.UpdateTemplate)
	mgr.DELETE("/contract-templates/:id", h.Contracts.DeleteTemplate)

	api.GET("/contracts", h.Contracts.List)
	api.GET("/contracts/:id", h.Contracts.Get)
	api.GET("/contracts/:id/versions", h.Contracts.Versions)
	mgr.POST("/contracts", h.Contracts.Create)
	mgr.POST("/contracts/:id/send", h.Contracts.Send)
	mgr.POST("/contracts/:id/resend", h.Contracts.Resend)
	mgr.PUT("/contracts/:id/amend", h.Contracts.Amend)
	mgr.POST("/contracts/:id/void", h.Contracts.Void)
	mgr.DELETE("/contracts/:id", h.Contracts.Delete)
}
