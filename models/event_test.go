package models_test

import (
	"testing"

	"packpall-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeStats(t *testing.T) {
	event := &models.Event{
		Checklist: []models.ChecklistItem{
			{ID: "a", Status: models.StatusPending},
			{ID: "b", Status: models.StatusPacked},
			{ID: "c", Status: models.StatusPacked},
			{ID: "d", Status: models.StatusDelivered},
		},
	}
	event.RecomputeStats()

	assert.Equal(t, models.Stats{
		TotalItems:     4,
		ItemsPacked:    2,
		ItemsPending:   1,
		ItemsDelivered: 1,
	}, event.Stats)
	assert.Equal(t, event.Stats.TotalItems,
		event.Stats.ItemsPacked+event.Stats.ItemsPending+event.Stats.ItemsDelivered)
}

func TestRecomputeStats_EmptyChecklist(t *testing.T) {
	event := &models.Event{Stats: models.Stats{TotalItems: 9}}
	event.RecomputeStats()
	assert.Equal(t, models.Stats{}, event.Stats)
}

func TestFindMember(t *testing.T) {
	event := &models.Event{Members: []models.Member{
		{UserID: "u1", Role: models.RoleOwner},
		{UserID: "u2", Role: models.RoleViewer},
	}}

	m := event.FindMember("u2")
	assert.NotNil(t, m)
	assert.Equal(t, models.RoleViewer, m.Role)
	assert.Nil(t, event.FindMember("u3"))
}

func TestOwnerCount(t *testing.T) {
	event := &models.Event{Members: []models.Member{
		{UserID: "u1", Role: models.RoleOwner},
		{UserID: "u2", Role: models.RoleAdmin},
		{UserID: "u3", Role: models.RoleOwner},
	}}
	assert.Equal(t, 2, event.OwnerCount())
}

func TestRoleAndStatusValidation(t *testing.T) {
	assert.True(t, models.RoleOwner.Valid())
	assert.True(t, models.RoleViewer.Valid())
	assert.False(t, models.Role("superuser").Valid())

	assert.True(t, models.StatusPacked.Valid())
	assert.False(t, models.ItemStatus("lost").Valid())
}
