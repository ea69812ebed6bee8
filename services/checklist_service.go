package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"packpall-backend/models"
	"packpall-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChecklistService defines the interface for checklist business logic.
// Every mutation recomputes the event's stats block before persisting.
type ChecklistService interface {
	GetChecklist(ctx context.Context, event *models.Event, callerID string) (*models.ChecklistResponse, *ServiceError)
	AddItem(ctx context.Context, event *models.Event, callerID, name string) (*models.ChecklistItem, *ServiceError)
	UpdateItemStatus(ctx context.Context, event *models.Event, itemID string, status models.ItemStatus) (*models.ChecklistItem, *ServiceError)
	DeleteItem(ctx context.Context, event *models.Event, itemID string) *ServiceError
}

type checklistServiceImpl struct {
	events repository.EventRepository
	logger *zap.Logger
}

// NewChecklistService creates a new ChecklistService.
func NewChecklistService(events repository.EventRepository, logger *zap.Logger) ChecklistService {
	return &checklistServiceImpl{events: events, logger: logger}
}

// GetChecklist returns the checklist together with the caller's role, which
// the frontend uses for conditional controls. Membership is mandatory; the
// route gate guarantees it before this runs.
func (s *checklistServiceImpl) GetChecklist(ctx context.Context, event *models.Event, callerID string) (*models.ChecklistResponse, *ServiceError) {
	member := event.FindMember(callerID)
	if member == nil {
		return nil, &ServiceError{StatusCode: 403, Message: "Access denied"}
	}

	checklist := event.Checklist
	if checklist == nil {
		checklist = []models.ChecklistItem{}
	}
	return &models.ChecklistResponse{Checklist: checklist, Role: member.Role}, nil
}

// AddItem appends a new pending item created by the caller and returns only
// the new item.
func (s *checklistServiceImpl) AddItem(ctx context.Context, event *models.Event, callerID, name string) (*models.ChecklistItem, *ServiceError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ServiceError{StatusCode: 400, Message: "Item name required"}
	}

	now := time.Now().UTC()
	item := models.ChecklistItem{
		ID:        uuid.NewString(),
		Name:      name,
		Status:    models.StatusPending,
		AddedBy:   callerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	svcErr := saveEventWithRetry(ctx, s.events, s.logger, event, func(e *models.Event) *ServiceError {
		e.Checklist = append(e.Checklist, item)
		e.RecomputeStats()
		return nil
	})
	if svcErr != nil {
		return nil, svcErr
	}

	s.logger.Info("Checklist item added",
		zap.String("event_id", event.ID),
		zap.String("item_id", item.ID))
	return &item, nil
}

// UpdateItemStatus sets an item's status. Transitions are unordered: any
// authorized caller may move an item between the three states freely.
func (s *checklistServiceImpl) UpdateItemStatus(ctx context.Context, event *models.Event, itemID string, status models.ItemStatus) (*models.ChecklistItem, *ServiceError) {
	if !status.Valid() {
		return nil, &ServiceError{StatusCode: 400, Message: fmt.Sprintf("Unknown status %q", status)}
	}

	var updated models.ChecklistItem
	svcErr := saveEventWithRetry(ctx, s.events, s.logger, event, func(e *models.Event) *ServiceError {
		item := e.FindChecklistItem(itemID)
		if item == nil {
			return &ServiceError{StatusCode: 404, Message: "Item not found"}
		}
		item.Status = status
		item.UpdatedAt = time.Now().UTC()
		e.RecomputeStats()
		updated = *item
		return nil
	})
	if svcErr != nil {
		return nil, svcErr
	}
	return &updated, nil
}

// DeleteItem removes an item permanently.
func (s *checklistServiceImpl) DeleteItem(ctx context.Context, event *models.Event, itemID string) *ServiceError {
	svcErr := saveEventWithRetry(ctx, s.events, s.logger, event, func(e *models.Event) *ServiceError {
		idx := -1
		for i := range e.Checklist {
			if e.Checklist[i].ID == itemID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return &ServiceError{StatusCode: 404, Message: "Checklist item not found"}
		}
		e.Checklist = append(e.Checklist[:idx], e.Checklist[idx+1:]...)
		e.RecomputeStats()
		return nil
	})
	if svcErr != nil {
		return svcErr
	}

	s.logger.Info("Checklist item deleted",
		zap.String("event_id", event.ID),
		zap.String("item_id", itemID))
	return nil
}
