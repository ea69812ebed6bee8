package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"packpall-backend/controllers"
	"packpall-backend/middleware"
	"packpall-backend/models"
	"packpall-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// --- Mock ChecklistService ---

type mockChecklistService struct {
	getFn    func(ctx context.Context, event *models.Event, callerID string) (*models.ChecklistResponse, *services.ServiceError)
	addFn    func(ctx context.Context, event *models.Event, callerID, name string) (*models.ChecklistItem, *services.ServiceError)
	updateFn func(ctx context.Context, event *models.Event, itemID string, status models.ItemStatus) (*models.ChecklistItem, *services.ServiceError)
	deleteFn func(ctx context.Context, event *models.Event, itemID string) *services.ServiceError
}

func (m *mockChecklistService) GetChecklist(ctx context.Context, event *models.Event, callerID string) (*models.ChecklistResponse, *services.ServiceError) {
	return m.getFn(ctx, event, callerID)
}

func (m *mockChecklistService) AddItem(ctx context.Context, event *models.Event, callerID, name string) (*models.ChecklistItem, *services.ServiceError) {
	return m.addFn(ctx, event, callerID, name)
}

func (m *mockChecklistService) UpdateItemStatus(ctx context.Context, event *models.Event, itemID string, status models.ItemStatus) (*models.ChecklistItem, *services.ServiceError) {
	return m.updateFn(ctx, event, itemID, status)
}

func (m *mockChecklistService) DeleteItem(ctx context.Context, event *models.Event, itemID string) *services.ServiceError {
	return m.deleteFn(ctx, event, itemID)
}

func checklistTestRouter(svc services.ChecklistService, gateEvent *models.Event) *gin.Engine {
	r := gin.New()
	cc := controllers.NewChecklistController(svc)

	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, "u1")
		if gateEvent != nil {
			c.Set(middleware.EventKey, gateEvent)
		}
		c.Next()
	})

	r.GET("/api/checklists/:id", cc.Get)
	r.POST("/api/checklists/:id/categories", cc.AddItem)
	r.PUT("/api/checklists/:id/items/:itemId", cc.UpdateItem)
	r.DELETE("/api/checklists/:id/items/:itemId", cc.DeleteItem)
	return r
}

func TestController_GetChecklist(t *testing.T) {
	svc := &mockChecklistService{
		getFn: func(_ context.Context, _ *models.Event, _ string) (*models.ChecklistResponse, *services.ServiceError) {
			return &models.ChecklistResponse{
				Checklist: []models.ChecklistItem{{ID: "i1", Name: "Tent", Status: models.StatusPending}},
				Role:      models.RoleMember,
			}, nil
		},
	}
	r := checklistTestRouter(svc, sampleEvent())

	req, _ := http.NewRequest(http.MethodGet, "/api/checklists/e1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.ChecklistResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, models.RoleMember, resp.Role)
	assert.Len(t, resp.Checklist, 1)
}

func TestController_AddItem_Success(t *testing.T) {
	svc := &mockChecklistService{
		addFn: func(_ context.Context, _ *models.Event, callerID, name string) (*models.ChecklistItem, *services.ServiceError) {
			return &models.ChecklistItem{ID: "i2", Name: name, Status: models.StatusPending, AddedBy: callerID}, nil
		},
	}
	r := checklistTestRouter(svc, sampleEvent())

	body, _ := json.Marshal(models.AddChecklistItemRequest{Name: "Stove"})
	req, _ := http.NewRequest(http.MethodPost, "/api/checklists/e1/categories", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var item models.ChecklistItem
	_ = json.Unmarshal(w.Body.Bytes(), &item)
	assert.Equal(t, "Stove", item.Name)
	assert.Equal(t, models.StatusPending, item.Status)
	assert.Equal(t, "u1", item.AddedBy)
}

func TestController_AddItem_MissingName(t *testing.T) {
	r := checklistTestRouter(&mockChecklistService{}, sampleEvent())

	req, _ := http.NewRequest(http.MethodPost, "/api/checklists/e1/categories", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestController_UpdateItem_Success(t *testing.T) {
	svc := &mockChecklistService{
		updateFn: func(_ context.Context, _ *models.Event, itemID string, status models.ItemStatus) (*models.ChecklistItem, *services.ServiceError) {
			return &models.ChecklistItem{ID: itemID, Name: "Tent", Status: status}, nil
		},
	}
	r := checklistTestRouter(svc, sampleEvent())

	req, _ := http.NewRequest(http.MethodPut, "/api/checklists/e1/items/i1", bytes.NewBufferString(`{"status":"packed"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var item models.ChecklistItem
	_ = json.Unmarshal(w.Body.Bytes(), &item)
	assert.Equal(t, models.StatusPacked, item.Status)
}

func TestController_UpdateItem_NotFound(t *testing.T) {
	svc := &mockChecklistService{
		updateFn: func(_ context.Context, _ *models.Event, _ string, _ models.ItemStatus) (*models.ChecklistItem, *services.ServiceError) {
			return nil, &services.ServiceError{StatusCode: 404, Message: "Item not found"}
		},
	}
	r := checklistTestRouter(svc, sampleEvent())

	req, _ := http.NewRequest(http.MethodPut, "/api/checklists/e1/items/ghost", bytes.NewBufferString(`{"status":"packed"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestController_DeleteItem_Success(t *testing.T) {
	svc := &mockChecklistService{
		deleteFn: func(_ context.Context, _ *models.Event, _ string) *services.ServiceError {
			return nil
		},
	}
	r := checklistTestRouter(svc, sampleEvent())

	req, _ := http.NewRequest(http.MethodDelete, "/api/checklists/e1/items/i1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "true")
}

func TestController_DeleteItem_NotFound(t *testing.T) {
	svc := &mockChecklistService{
		deleteFn: func(_ context.Context, _ *models.Event, _ string) *services.ServiceError {
			return &services.ServiceError{StatusCode: 404, Message: "Checklist item not found"}
		},
	}
	r := checklistTestRouter(svc, sampleEvent())

	req, _ := http.NewRequest(http.MethodDelete, "/api/checklists/e1/items/ghost", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
