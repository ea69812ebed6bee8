package middleware

import (
	"errors"
	"net/http"

	"packpall-backend/models"
	"packpall-backend/repository"

	"github.com/gin-gonic/gin"
)

// RoleGate builds the per-route authorization middleware. It loads the event
// named by the :id path parameter, locates the caller's membership, and
// rejects roles outside the allowed set. The loaded event and the caller's
// role are stored in the gin context so handlers avoid a second fetch.
type RoleGate struct {
	events repository.EventRepository
}

// NewRoleGate creates a RoleGate backed by the given repository.
func NewRoleGate(events repository.EventRepository) *RoleGate {
	return &RoleGate{events: events}
}

// Require returns a middleware granting access only to members whose role is
// in the allowed set.
func (g *RoleGate) Require(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := GetUserID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		event, err := g.events.FindByID(c.Request.Context(), c.Param("id"))
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			c.Abort()
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch event"})
			c.Abort()
			return
		}

		member := event.FindMember(userID)
		if member == nil || !roleAllowed(member.Role, allowed) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
			c.Abort()
			return
		}

		c.Set(EventKey, event)
		c.Set(RoleKey, member.Role)
		c.Next()
	}
}

func roleAllowed(role models.Role, allowed []models.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// GetEvent extracts the event loaded by the role gate from the gin context.
func GetEvent(c *gin.Context) (*models.Event, error) {
	if val, ok := c.Get(EventKey); ok {
		if event, ok := val.(*models.Event); ok {
			return event, nil
		}
	}
	return nil, errors.New("event not found in context")
}
