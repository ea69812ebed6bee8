package routes

import (
	"packpall-backend/controllers"
	"packpall-backend/middleware"
	"packpall-backend/models"

	"github.com/gin-gonic/gin"
)

// Deps bundles everything route registration needs.
type Deps struct {
	Auth         *controllers.AuthController
	Events       *controllers.EventController
	Checklists   *controllers.ChecklistController
	Authenticate gin.HandlerFunc
	Gate         *middleware.RoleGate
}

// Register wires all API routes under the /api prefix. The allowed-role sets
// per route are a design contract and must stay in sync with the frontend.
func Register(r *gin.Engine, d Deps) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit())
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.GET("/me", d.Authenticate, d.Auth.Me)

	events := api.Group("/events")
	events.Use(d.Authenticate)
	events.GET("", d.Events.List)
	events.POST("", d.Events.Create)
	events.GET("/:id", d.Events.Get)
	events.PUT("/:id", d.Gate.Require(models.RoleOwner, models.RoleAdmin), d.Events.Update)
	events.DELETE("/:id", d.Gate.Require(models.RoleOwner), d.Events.Delete)
	events.POST("/:id/invite", d.Gate.Require(models.RoleOwner, models.RoleAdmin), d.Events.Invite)
	events.PUT("/:id/role", d.Gate.Require(models.RoleOwner), d.Events.ChangeRole)
	events.GET("/:id/export/pdf", d.Gate.Require(models.RoleOwner, models.RoleAdmin, models.RoleMember), d.Events.ExportPDF)

	checklists := api.Group("/checklists")
	checklists.Use(d.Authenticate)
	checklists.GET("/:id", d.Gate.Require(models.RoleOwner, models.RoleAdmin, models.RoleMember), d.Checklists.Get)
	checklists.POST("/:id/categories", d.Gate.Require(models.RoleOwner, models.RoleAdmin, models.RoleMember), d.Checklists.AddItem)
	checklists.PUT("/:id/items/:itemId", d.Gate.Require(models.RoleOwner, models.RoleAdmin, models.RoleMember), d.Checklists.UpdateItem)
	checklists.DELETE("/:id/items/:itemId", d.Gate.Require(models.RoleOwner, models.RoleAdmin), d.Checklists.DeleteItem)
}
