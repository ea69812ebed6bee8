package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"packpall-backend/models"
	"packpall-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxUpdateAttempts bounds the reload-and-reapply loop on revision conflicts.
const maxUpdateAttempts = 3

// EventService defines the interface for event aggregate business logic.
type EventService interface {
	CreateEvent(ctx context.Context, callerID string, req *models.CreateEventRequest) (*models.Event, *ServiceError)
	ListEvents(ctx context.Context, callerID string) ([]models.EventView, *ServiceError)
	GetEvent(ctx context.Context, id string) (*models.EventView, *ServiceError)
	UpdateEvent(ctx context.Context, event *models.Event, req *models.UpdateEventRequest) (*models.Event, *ServiceError)
	DeleteEvent(ctx context.Context, event *models.Event) *ServiceError
	InviteMember(ctx context.Context, event *models.Event, req *models.InviteMemberRequest) (*models.EventView, *ServiceError)
	ChangeMemberRole(ctx context.Context, event *models.Event, req *models.ChangeRoleRequest) (*models.EventView, *ServiceError)
}

type eventServiceImpl struct {
	events repository.EventRepository
	users  repository.UserRepository
	logger *zap.Logger
}

// NewEventService creates a new EventService.
func NewEventService(events repository.EventRepository, users repository.UserRepository, logger *zap.Logger) EventService {
	return &eventServiceImpl{events: events, users: users, logger: logger}
}

// CreateEvent builds a new event with zeroed stats, an empty checklist, and
// the caller as sole owner.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, callerID string, req *models.CreateEventRequest) (*models.Event, *ServiceError) {
	now := time.Now().UTC()
	event := &models.Event{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Type:      req.Type,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Location:  req.Location,
		Stats:     models.Stats{},
		Members:   []models.Member{{UserID: callerID, Role: models.RoleOwner}},
		Checklist: []models.ChecklistItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.events.Create(ctx, event); err != nil {
		s.logger.Error("Failed to create event", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create event"}
	}
	s.logger.Info("Event created", zap.String("event_id", event.ID), zap.String("owner", callerID))
	return event, nil
}

// ListEvents returns every event where the caller is a member, with member
// user references resolved.
func (s *eventServiceImpl) ListEvents(ctx context.Context, callerID string) ([]models.EventView, *ServiceError) {
	events, err := s.events.FindByMember(ctx, callerID)
	if err != nil {
		s.logger.Error("Failed to list events", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch events"}
	}

	views := make([]models.EventView, 0, len(events))
	for i := range events {
		view, verr := s.resolveView(ctx, &events[i])
		if verr != nil {
			return nil, verr
		}
		views = append(views, *view)
	}
	return views, nil
}

// GetEvent fetches a single event by id with members resolved.
func (s *eventServiceImpl) GetEvent(ctx context.Context, id string) (*models.EventView, *ServiceError) {
	event, err := s.events.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &ServiceError{StatusCode: 404, Message: "Event not found"}
	}
	if err != nil {
		s.logger.Error("Failed to fetch event", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch event"}
	}
	return s.resolveView(ctx, event)
}

// UpdateEvent applies the allow-listed metadata fields and persists. Fields
// outside the allow-list never reach the aggregate.
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, event *models.Event, req *models.UpdateEventRequest) (*models.Event, *ServiceError) {
	svcErr := s.saveWithRetry(ctx, event, func(e *models.Event) *ServiceError {
		if req.Name != nil {
			e.Name = *req.Name
		}
		if req.Type != nil {
			e.Type = *req.Type
		}
		if req.StartDate != nil {
			e.StartDate = req.StartDate
		}
		if req.EndDate != nil {
			e.EndDate = req.EndDate
		}
		if req.Location != nil {
			e.Location = *req.Location
		}
		return nil
	})
	if svcErr != nil {
		return nil, svcErr
	}
	return event, nil
}

// DeleteEvent removes the event and all embedded data permanently.
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, event *models.Event) *ServiceError {
	err := s.events.Delete(ctx, event.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return &ServiceError{StatusCode: 404, Message: "Event not found"}
	}
	if err != nil {
		s.logger.Error("Failed to delete event", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete event"}
	}
	s.logger.Info("Event deleted", zap.String("event_id", event.ID))
	return nil
}

// InviteMember resolves the email to a registered user and appends a new
// membership. Inviting an existing member fails.
func (s *eventServiceImpl) InviteMember(ctx context.Context, event *models.Event, req *models.InviteMemberRequest) (*models.EventView, *ServiceError) {
	role := req.Role
	if role == "" {
		role = models.RoleMember
	}
	if !role.Valid() {
		return nil, &ServiceError{StatusCode: 400, Message: fmt.Sprintf("Unknown role %q", req.Role)}
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &ServiceError{StatusCode: 404, Message: "User not found"}
	}
	if err != nil {
		s.logger.Error("Failed to look up invitee", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to invite member"}
	}

	svcErr := s.saveWithRetry(ctx, event, func(e *models.Event) *ServiceError {
		if e.FindMember(user.ID) != nil {
			return &ServiceError{StatusCode: 400, Message: "User already in event"}
		}
		e.Members = append(e.Members, models.Member{UserID: user.ID, Role: role})
		return nil
	})
	if svcErr != nil {
		return nil, svcErr
	}

	s.logger.Info("Member invited",
		zap.String("event_id", event.ID),
		zap.String("user_id", user.ID),
		zap.String("role", string(role)))
	return s.resolveView(ctx, event)
}

// ChangeMemberRole overwrites a member's role. A change that would leave the
// event with zero owners is rejected.
func (s *eventServiceImpl) ChangeMemberRole(ctx context.Context, event *models.Event, req *models.ChangeRoleRequest) (*models.EventView, *ServiceError) {
	if !req.NewRole.Valid() {
		return nil, &ServiceError{StatusCode: 400, Message: fmt.Sprintf("Unknown role %q", req.NewRole)}
	}

	svcErr := s.saveWithRetry(ctx, event, func(e *models.Event) *ServiceError {
		member := e.FindMember(req.UserID)
		if member == nil {
			return &ServiceError{StatusCode: 404, Message: "Member not found in event"}
		}
		if member.Role == models.RoleOwner && req.NewRole != models.RoleOwner && e.OwnerCount() == 1 {
			return &ServiceError{StatusCode: 400, Message: "Event must keep at least one owner"}
		}
		member.Role = req.NewRole
		return nil
	})
	if svcErr != nil {
		return nil, svcErr
	}
	return s.resolveView(ctx, event)
}

func (s *eventServiceImpl) saveWithRetry(ctx context.Context, event *models.Event, apply func(*models.Event) *ServiceError) *ServiceError {
	return saveEventWithRetry(ctx, s.events, s.logger, event, apply)
}

// saveEventWithRetry runs a read-modify-write cycle guarded by the
// repository's revision compare-and-swap. On a lost race the event is
// reloaded and the mutation reapplied, up to maxUpdateAttempts.
func saveEventWithRetry(ctx context.Context, repo repository.EventRepository, logger *zap.Logger, event *models.Event, apply func(*models.Event) *ServiceError) *ServiceError {
	current := event
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		if svcErr := apply(current); svcErr != nil {
			return svcErr
		}

		err := repo.Update(ctx, current)
		if err == nil {
			if current != event {
				*event = *current
			}
			return nil
		}
		if !errors.Is(err, repository.ErrRevisionConflict) {
			logger.Error("Failed to persist event", zap.String("event_id", event.ID), zap.Error(err))
			return &ServiceError{StatusCode: 500, Message: "Failed to update event"}
		}

		fresh, ferr := repo.FindByID(ctx, event.ID)
		if errors.Is(ferr, repository.ErrNotFound) {
			return &ServiceError{StatusCode: 404, Message: "Event not found"}
		}
		if ferr != nil {
			logger.Error("Failed to reload event", zap.String("event_id", event.ID), zap.Error(ferr))
			return &ServiceError{StatusCode: 500, Message: "Failed to update event"}
		}
		current = fresh
	}

	logger.Warn("Event update retries exhausted", zap.String("event_id", event.ID))
	return &ServiceError{StatusCode: 500, Message: "Event was modified concurrently, please retry"}
}

// resolveView replaces member user ids with their name and email. Users that
// no longer resolve keep a bare id reference.
func (s *eventServiceImpl) resolveView(ctx context.Context, event *models.Event) (*models.EventView, *ServiceError) {
	ids := make([]string, 0, len(event.Members))
	for i := range event.Members {
		ids = append(ids, event.Members[i].UserID)
	}

	users, err := s.users.FindManyByID(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to resolve members", zap.String("event_id", event.ID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch event"}
	}

	members := make([]models.MemberView, 0, len(event.Members))
	for i := range event.Members {
		m := event.Members[i]
		ref := models.UserRef{ID: m.UserID}
		if u, ok := users[m.UserID]; ok {
			ref = u.Ref()
		}
		members = append(members, models.MemberView{User: ref, Role: m.Role})
	}

	return &models.EventView{
		ID:        event.ID,
		Name:      event.Name,
		Type:      event.Type,
		StartDate: event.StartDate,
		EndDate:   event.EndDate,
		Location:  event.Location,
		Stats:     event.Stats,
		Members:   members,
		Checklist: event.Checklist,
		CreatedAt: event.CreatedAt,
		UpdatedAt: event.UpdatedAt,
	}, nil
}
