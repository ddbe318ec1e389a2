package category

import (
	"context"
	"log/slog"

	errors "github.com/frahmantamala/category-management/internal"
	categoryDatamodel "github.com/frahmantamala/category-management/internal/core/datamodel/category"
	"github.com/frahmantamala/category-management/internal/core/events"
)

type RepositoryAPI interface {
	GetByName(ctx context.Context, name string) (*categoryDatamodel.Category, error)
	GetByID(ctx context.Context, id int64) (*categoryDatamodel.Category, error)
	GetByIDWithCards(ctx context.Context, id int64) (*categoryDatamodel.Category, error)
	List(ctx context.Context, params ListParams) ([]*categoryDatamodel.Category, int64, error)
	Create(ctx context.Context, category *categoryDatamodel.Category) error
	Update(ctx context.Context, category *categoryDatamodel.Category) error
	SoftDelete(ctx context.Context, category *categoryDatamodel.Category) error
}

// Service enforces the category lifecycle rules: name uniqueness among active
// categories, the card-ownership delete guard, and soft deletion. It raises
// typed failures and never encodes HTTP semantics.
type Service struct {
	repo   RepositoryAPI
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// Create persists a new active category. The name must not be held by any
// other active category; the database backs this check with a partial unique
// index, so the lookup here is a fast path, not the sole guarantee.
func (s *Service) Create(ctx context.Context, dto CreateCategoryDTO) (*Category, error) {
	existing, err := s.repo.GetByName(ctx, dto.Name)
	if err != nil {
		s.logger.Error("failed to check category name", "error", err, "name", dto.Name)
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrCategoryAlreadyExists
	}

	description := ""
	if dto.Description != nil {
		description = *dto.Description
	}

	model := &categoryDatamodel.Category{
		Name:        dto.Name,
		Description: description,
		UserID:      *dto.UserID,
	}

	if err := s.repo.Create(ctx, model); err != nil {
		s.logger.Error("failed to create category", "error", err, "name", dto.Name)
		return nil, err
	}

	s.bus.Publish(ctx, events.NewCategoryCreatedEvent(model.ID, model.Name, model.UserID))

	s.logger.Info("category created",
		"category_id", model.ID,
		"name", model.Name,
		"user_id", model.UserID)

	return FromDataModel(model), nil
}

// List returns one page of active categories matching all supplied filters,
// newest first, together with pagination metadata. An out-of-range page yields
// empty items with accurate meta.
func (s *Service) List(ctx context.Context, params ListParams) (*CategoryPage, error) {
	params = params.Normalize()

	models, total, err := s.repo.List(ctx, params)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, err
	}

	items := make([]*Category, 0, len(models))
	for _, model := range models {
		items = append(items, FromDataModel(model))
	}

	perPage := int64(params.PerPage)
	totalPages := (total + perPage - 1) / perPage

	return &CategoryPage{
		Items: items,
		Meta: PaginationMeta{
			CurrentPage:  params.Page,
			ItemsPerPage: params.PerPage,
			TotalItems:   total,
			TotalPages:   totalPages,
		},
	}, nil
}

// Update replaces name and description of an active category. A name change
// runs the same uniqueness check as Create; keeping the stored name never
// triggers it. Owner and id are immutable.
func (s *Service) Update(ctx context.Context, id int64, dto UpdateCategoryDTO) (*Category, error) {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to load category", "error", err, "category_id", id)
		return nil, err
	}
	if model == nil {
		return nil, errors.ErrCategoryNotFound
	}

	if dto.Name != model.Name {
		existing, err := s.repo.GetByName(ctx, dto.Name)
		if err != nil {
			s.logger.Error("failed to check category name", "error", err, "name", dto.Name)
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, errors.ErrCategoryAlreadyExists
		}
	}

	model.Name = dto.Name
	model.Description = ""
	if dto.Description != nil {
		model.Description = *dto.Description
	}

	if err := s.repo.Update(ctx, model); err != nil {
		s.logger.Error("failed to update category", "error", err, "category_id", id)
		return nil, err
	}

	s.bus.Publish(ctx, events.NewCategoryUpdatedEvent(model.ID, model.Name))

	s.logger.Info("category updated", "category_id", model.ID, "name", model.Name)

	return FromDataModel(model), nil
}

// Delete soft-deletes a category that owns no cards. The row and its name
// stay in storage; the record is terminal afterwards.
func (s *Service) Delete(ctx context.Context, id int64) (*Category, error) {
	model, err := s.repo.GetByIDWithCards(ctx, id)
	if err != nil {
		s.logger.Error("failed to load category with cards", "error", err, "category_id", id)
		return nil, err
	}
	if model == nil {
		return nil, errors.ErrCategoryNotFound
	}
	if len(model.Cards) > 0 {
		s.logger.Warn("delete blocked by owned cards",
			"category_id", id,
			"card_count", len(model.Cards))
		return nil, errors.ErrCategoryHasCards
	}

	if err := s.repo.SoftDelete(ctx, model); err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id)
		return nil, err
	}

	s.bus.Publish(ctx, events.NewCategoryDeletedEvent(model.ID, model.Name))

	s.logger.Info("category deleted", "category_id", model.ID, "name", model.Name)

	return FromDataModel(model), nil
}
