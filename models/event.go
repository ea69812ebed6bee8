package models

import "time"

// Role is a member's privilege level within an event.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

// Valid reports whether the role is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

// ItemStatus is the packing state of a checklist item.
type ItemStatus string

const (
	StatusPending   ItemStatus = "pending"
	StatusPacked    ItemStatus = "packed"
	StatusDelivered ItemStatus = "delivered"
)

// Valid reports whether the status is one of the three known states.
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPacked, StatusDelivered:
		return true
	}
	return false
}

// Stats is a cached projection of the checklist, recomputed on every
// checklist mutation.
type Stats struct {
	TotalItems     int `bson:"totalItems" json:"totalItems"`
	ItemsPacked    int `bson:"itemsPacked" json:"itemsPacked"`
	ItemsPending   int `bson:"itemsPending" json:"itemsPending"`
	ItemsDelivered int `bson:"itemsDelivered" json:"itemsDelivered"`
}

// Member pairs a user with their role inside one event.
type Member struct {
	UserID string `bson:"user" json:"user"`
	Role   Role   `bson:"role" json:"role"`
}

// ChecklistItem is a packing task owned by exactly one event.
type ChecklistItem struct {
	ID        string     `bson:"_id" json:"id"`
	Name      string     `bson:"name" json:"name"`
	Status    ItemStatus `bson:"status" json:"status"`
	AddedBy   string     `bson:"addedBy" json:"addedBy"`
	CreatedAt time.Time  `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updated_at"`
}

// Event is the central aggregate stored in the "events" collection. Members
// and checklist items are embedded; Revision guards read-modify-write cycles
// with a compare-and-swap in the repository.
type Event struct {
	ID        string          `bson:"_id" json:"id"`
	Name      string          `bson:"name" json:"name"`
	Type      string          `bson:"type" json:"type"`
	StartDate *time.Time      `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate   *time.Time      `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Location  string          `bson:"location,omitempty" json:"location,omitempty"`
	Stats     Stats           `bson:"stats" json:"stats"`
	Members   []Member        `bson:"members" json:"members"`
	Checklist []ChecklistItem `bson:"checklist" json:"checklist"`
	Revision  int64           `bson:"revision" json:"-"`
	CreatedAt time.Time       `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time       `bson:"updatedAt" json:"updated_at"`
}

// FindMember returns the membership entry for the given user, or nil.
func (e *Event) FindMember(userID string) *Member {
	for i := range e.Members {
		if e.Members[i].UserID == userID {
			return &e.Members[i]
		}
	}
	return nil
}

// FindChecklistItem returns the checklist item with the given id, or nil.
func (e *Event) FindChecklistItem(itemID string) *ChecklistItem {
	for i := range e.Checklist {
		if e.Checklist[i].ID == itemID {
			return &e.Checklist[i]
		}
	}
	return nil
}

// OwnerCount returns the number of members holding the owner role.
func (e *Event) OwnerCount() int {
	n := 0
	for i := range e.Members {
		if e.Members[i].Role == RoleOwner {
			n++
		}
	}
	return n
}

// RecomputeStats rebuilds the stats block from the checklist so that
// totalItems always equals packed + pending + delivered.
func (e *Event) RecomputeStats() {
	var s Stats
	for i := range e.Checklist {
		s.TotalItems++
		switch e.Checklist[i].Status {
		case StatusPacked:
			s.ItemsPacked++
		case StatusDelivered:
			s.ItemsDelivered++
		default:
			s.ItemsPending++
		}
	}
	e.Stats = s
}

// MemberView is a membership entry with the user reference resolved.
type MemberView struct {
	User UserRef `json:"user"`
	Role Role    `json:"role"`
}

// EventView is the response shape for event reads: the event with member
// user references resolved to name and email.
type EventView struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	StartDate *time.Time      `json:"startDate,omitempty"`
	EndDate   *time.Time      `json:"endDate,omitempty"`
	Location  string          `json:"location,omitempty"`
	Stats     Stats           `json:"stats"`
	Members   []MemberView    `json:"members"`
	Checklist []ChecklistItem `json:"checklist"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ChecklistResponse is the payload for GET /api/checklists/:id.
type ChecklistResponse struct {
	Checklist []ChecklistItem `json:"checklist"`
	Role      Role            `json:"role"`
}

// CreateEventRequest is the payload for POST /api/events.
type CreateEventRequest struct {
	Name      string     `json:"name" binding:"required"`
	Type      string     `json:"type" binding:"required"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Location  string     `json:"location"`
}

// UpdateEventRequest is the payload for PUT /api/events/:id. Only the fields
// listed here can be changed; anything else in the body is ignored.
type UpdateEventRequest struct {
	Name      *string    `json:"name"`
	Type      *string    `json:"type"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Location  *string    `json:"location"`
}

// InviteMemberRequest is the payload for POST /api/events/:id/invite.
type InviteMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  Role   `json:"role"`
}

// ChangeRoleRequest is the payload for PUT /api/events/:id/role.
type ChangeRoleRequest struct {
	UserID  string `json:"userId" binding:"required"`
	NewRole Role   `json:"newRole" binding:"required"`
}

// AddChecklistItemRequest is the payload for POST /api/checklists/:id/categories.
type AddChecklistItemRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateItemStatusRequest is the payload for PUT /api/checklists/:id/items/:itemId.
type UpdateItemStatusRequest struct {
	Status ItemStatus `json:"status" binding:"required"`
}
