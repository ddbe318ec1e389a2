package category

import (
	"time"

	categoryDatamodel "github.com/frahmantamala/category-management/internal/core/datamodel/category"
	"gorm.io/gorm"
)

// Category is the domain view of a category. DeletedAt is nil while the
// category is active; a soft-deleted category keeps its row for audit but is
// absent from listings and uniqueness checks.
type Category struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	UserID      int64      `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
	CardCount   int        `json:"card_count,omitempty"`
}

func (c *Category) IsDeleted() bool {
	return c.DeletedAt != nil
}

func NewCategory(name string, userID int64, description string) *Category {
	now := time.Now()
	return &Category{
		Name:        name,
		Description: description,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func ToDataModel(c *Category) *categoryDatamodel.Category {
	dm := &categoryDatamodel.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		UserID:      c.UserID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.DeletedAt != nil {
		dm.DeletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	}
	return dm
}

func FromDataModel(dm *categoryDatamodel.Category) *Category {
	c := &Category{
		ID:          dm.ID,
		Name:        dm.Name,
		Description: dm.Description,
		UserID:      dm.UserID,
		CreatedAt:   dm.CreatedAt,
		UpdatedAt:   dm.UpdatedAt,
		CardCount:   len(dm.Cards),
	}
	if dm.DeletedAt.Valid {
		t := dm.DeletedAt.Time
		c.DeletedAt = &t
	}
	return c
}
