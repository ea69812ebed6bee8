package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"packpall-backend/middleware"
	"packpall-backend/models"
	"packpall-backend/services"

	"github.com/gin-gonic/gin"
)

// EventController handles HTTP requests for event operations.
type EventController struct {
	events services.EventService
	export *services.ExportService
}

// NewEventController creates a new EventController.
func NewEventController(events services.EventService, export *services.ExportService) *EventController {
	return &EventController{events: events, export: export}
}

// List handles GET /api/events.
func (ec *EventController) List(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	events, svcErr := ec.events.ListEvents(ctx.Request.Context(), userID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// Create handles POST /api/events. The caller becomes the sole owner.
func (ec *EventController) Create(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	event, svcErr := ec.events.CreateEvent(ctx.Request.Context(), userID, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// Get handles GET /api/events/:id. Any authenticated user may read a single
// event; there is no role gate on this route.
func (ec *EventController) Get(ctx *gin.Context) {
	event, svcErr := ec.events.GetEvent(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"message": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// Update handles PUT /api/events/:id (owner, admin).
func (ec *EventController) Update(ctx *gin.Context) {
	event, err := middleware.GetEvent(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Event not loaded"})
		return
	}

	var req models.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	updated, svcErr := ec.events.UpdateEvent(ctx.Request.Context(), event, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"message": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/events/:id (owner).
func (ec *EventController) Delete(ctx *gin.Context) {
	event, err := middleware.GetEvent(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Event not loaded"})
		return
	}

	if svcErr := ec.events.DeleteEvent(ctx.Request.Context(), event); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"message": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// Invite handles POST /api/events/:id/invite (owner, admin).
func (ec *EventController) Invite(ctx *gin.Context) {
	event, err := middleware.GetEvent(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Event not loaded"})
		return
	}

	var req models.InviteMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	view, svcErr := ec.events.InviteMember(ctx.Request.Context(), event, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"message": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Invited %s", req.Email),
		"event":   view,
	})
}

// ChangeRole handles PUT /api/events/:id/role (owner).
func (ec *EventController) ChangeRole(ctx *gin.Context) {
	event, err := middleware.GetEvent(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Event not loaded"})
		return
	}

	var req models.ChangeRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	view, svcErr := ec.events.ChangeMemberRole(ctx.Request.Context(), event, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"message": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Role updated", "event": view})
}

// ExportPDF handles GET /api/events/:id/export/pdf (owner, admin, member).
func (ec *EventController) ExportPDF(ctx *gin.Context) {
	event, err := middleware.GetEvent(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Event not loaded"})
		return
	}

	var buf bytes.Buffer
	if svcErr := ec.export.RenderEventPDF(ctx.Request.Context(), event, &buf); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	filename := strings.ReplaceAll(event.Name, " ", "_") + "_details.pdf"
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
