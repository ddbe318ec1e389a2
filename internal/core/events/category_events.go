package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeCategoryCreated = "category.created"
	EventTypeCategoryUpdated = "category.updated"
	EventTypeCategoryDeleted = "category.deleted"
)

type CategoryCreatedEvent struct {
	BaseEvent
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
	UserID     int64  `json:"user_id"`
}

func NewCategoryCreatedEvent(categoryID int64, name string, userID int64) *CategoryCreatedEvent {
	return &CategoryCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeCategoryCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"category_id": categoryID,
				"name":        name,
				"user_id":     userID,
			},
		},
		CategoryID: categoryID,
		Name:       name,
		UserID:     userID,
	}
}

type CategoryUpdatedEvent struct {
	BaseEvent
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
}

func NewCategoryUpdatedEvent(categoryID int64, name string) *CategoryUpdatedEvent {
	return &CategoryUpdatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeCategoryUpdated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"category_id": categoryID,
				"name":        name,
			},
		},
		CategoryID: categoryID,
		Name:       name,
	}
}

type CategoryDeletedEvent struct {
	BaseEvent
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
}

func NewCategoryDeletedEvent(categoryID int64, name string) *CategoryDeletedEvent {
	return &CategoryDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeCategoryDeleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"category_id": categoryID,
				"name":        name,
			},
		},
		CategoryID: categoryID,
		Name:       name,
	}
}
