package postgres

import (
	"context"

	"github.com/frahmantamala/category-management/internal/category"
	categoryDatamodel "github.com/frahmantamala/category-management/internal/core/datamodel/category"
	"gorm.io/gorm"
)

// CategoryRepository persists categories through GORM. The gorm.DeletedAt
// field on the model keeps every query here scoped to active rows, which is
// what makes name uniqueness and listings apply among active categories only.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&cat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) GetByIDWithCards(ctx context.Context, id int64) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.WithContext(ctx).Preload("Cards").Where("id = ?", id).First(&cat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

// List applies all supplied filters, counts the full match set, then slices
// the requested page ordered newest first. id breaks created_at ties so pages
// stay stable.
func (r *CategoryRepository) List(ctx context.Context, params category.ListParams) ([]*categoryDatamodel.Category, int64, error) {
	query := r.db.WithContext(ctx).Model(&categoryDatamodel.Category{})

	if params.Name != "" {
		query = query.Where("name LIKE ?", "%"+params.Name+"%")
	}
	if params.UserID != 0 {
		query = query.Where("user_id = ?", params.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []*categoryDatamodel.Category
	err := query.
		Order("created_at DESC, id DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

func (r *CategoryRepository) Create(ctx context.Context, cat *categoryDatamodel.Category) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

func (r *CategoryRepository) Update(ctx context.Context, cat *categoryDatamodel.Category) error {
	return r.db.WithContext(ctx).Save(cat).Error
}

// SoftDelete stamps deleted_at through gorm's soft delete; the passed model's
// DeletedAt field is populated on the way out.
func (r *CategoryRepository) SoftDelete(ctx context.Context, cat *categoryDatamodel.Category) error {
	return r.db.WithContext(ctx).Delete(cat).Error
}
