package controllers

import (
	"net/http"

	"packpall-backend/middleware"
	"packpall-backend/models"
	"packpall-backend/services"

	"github.com/gin-gonic/gin"
)

// ChecklistController handles HTTP requests for checklist operations. All
// routes run behind the role gate, which loads the event into the context.
type ChecklistController struct {
	checklist services.ChecklistService
}

// NewChecklistController creates a new ChecklistController.
func NewChecklistController(checklist services.ChecklistService) *ChecklistController {
	return &ChecklistController{checklist: checklist}
}

// Get handles GET /api/checklists/:id (owner, admin, member).
func (cc *ChecklistController) Get(ctx *gin.Context) {
	event, err := middleware.GetEvent(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Event not loaded"})
		return
	}
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, svcErr := cc.checklist.GetChecklist(ctx.Request.Context(), event, userID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"message": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// AddItem handles POST /api/checklists/:id/categories (owner, admin, member).
// Returns only the newly added item, not the full list.
func (cc *ChecklistController) AddItem(ctx *gin.Context) {
	event, err := middleware.GetEvent(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Event not loaded"})
		return
	}
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.AddChecklistItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Item name required"})
		return
	}

	item, svcErr := cc.checklist.AddItem(ctx.Request.Context(), event, userID, req.Name)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"message": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// UpdateItem handles PUT /api/checklists/:id/items/:itemId (owner, admin, member).
func (cc *ChecklistController) UpdateItem(ctx *gin.Context) {
	event, err := middleware.GetEvent(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Event not loaded"})
		return
	}

	var req models.UpdateItemStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Status required"})
		return
	}

	item, svcErr := cc.checklist.UpdateItemStatus(ctx.Request.Context(), event, ctx.Param("itemId"), req.Status)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"message": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /api/checklists/:id/items/:itemId (owner, admin).
func (cc *ChecklistController) DeleteItem(ctx *gin.Context) {
	event, err := middleware.GetEvent(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Event not loaded"})
		return
	}

	if svcErr := cc.checklist.DeleteItem(ctx.Request.Context(), event, ctx.Param("itemId")); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
