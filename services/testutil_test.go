package services_test

import (
	"context"
	"sync"
	"time"

	"packpall-backend/models"
	"packpall-backend/repository"
)

// ---- mock user repository ----

type mockUserRepo struct {
	createFn   func(ctx context.Context, user *models.User) error
	findByIDFn func(ctx context.Context, id string) (*models.User, error)
	byEmailFn  func(ctx context.Context, email string) (*models.User, error)
	manyByIDFn func(ctx context.Context, ids []string) (map[string]models.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.byEmailFn(ctx, email)
}

func (m *mockUserRepo) FindManyByID(ctx context.Context, ids []string) (map[string]models.User, error) {
	if m.manyByIDFn != nil {
		return m.manyByIDFn(ctx, ids)
	}
	return map[string]models.User{}, nil
}

// ---- mock event repository ----

type mockEventRepo struct {
	createFn       func(ctx context.Context, event *models.Event) error
	findByIDFn     func(ctx context.Context, id string) (*models.Event, error)
	findByMemberFn func(ctx context.Context, userID string) ([]models.Event, error)
	updateFn       func(ctx context.Context, event *models.Event) error
	deleteFn       func(ctx context.Context, id string) error
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	return m.createFn(ctx, event)
}

func (m *mockEventRepo) FindByID(ctx context.Context, id string) (*models.Event, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockEventRepo) FindByMember(ctx context.Context, userID string) ([]models.Event, error) {
	return m.findByMemberFn(ctx, userID)
}

func (m *mockEventRepo) Update(ctx context.Context, event *models.Event) error {
	return m.updateFn(ctx, event)
}

func (m *mockEventRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

// ---- in-memory event repository with real compare-and-swap ----

type memEventRepo struct {
	mu     sync.Mutex
	events map[string]*models.Event
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: make(map[string]*models.Event)}
}

func cloneEvent(e *models.Event) *models.Event {
	c := *e
	c.Members = append([]models.Member(nil), e.Members...)
	c.Checklist = append([]models.ChecklistItem(nil), e.Checklist...)
	return &c
}

func (m *memEventRepo) Create(_ context.Context, event *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event.ID] = cloneEvent(event)
	return nil
}

func (m *memEventRepo) FindByID(_ context.Context, id string) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneEvent(e), nil
}

func (m *memEventRepo) FindByMember(_ context.Context, userID string) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Event
	for _, e := range m.events {
		if e.FindMember(userID) != nil {
			out = append(out, *cloneEvent(e))
		}
	}
	return out, nil
}

func (m *memEventRepo) Update(_ context.Context, event *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.events[event.ID]
	if !ok || stored.Revision != event.Revision {
		return repository.ErrRevisionConflict
	}
	next := cloneEvent(event)
	next.Revision++
	next.UpdatedAt = time.Now().UTC()
	m.events[event.ID] = next
	*event = *cloneEvent(next)
	return nil
}

func (m *memEventRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.events, id)
	return nil
}
