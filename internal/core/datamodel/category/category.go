package category

import (
	"time"

	"gorm.io/gorm"
)

// Category is the persisted shape of a category row. Soft delete goes through
// gorm.DeletedAt, so default queries only ever see active rows. Name uniqueness
// among active rows is enforced by a partial unique index in the migration;
// the model keeps a plain index so sqlite test databases can recreate a name
// after a soft delete the same way postgres does.
type Category struct {
	ID          int64          `gorm:"primaryKey"`
	Name        string         `gorm:"column:name;not null;index"`
	Description string         `gorm:"column:description"`
	UserID      int64          `gorm:"column:user_id;not null"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
	Cards       []Card         `gorm:"foreignKey:CategoryID"`
}

func (Category) TableName() string {
	return "categories"
}

// Card is a child record owned by exactly one category. Its presence blocks
// deletion of the owning category.
type Card struct {
	ID         int64 `gorm:"primaryKey"`
	CategoryID int64 `gorm:"column:category_id;not null;index"`
}

func (Card) TableName() string {
	return "cards"
}
