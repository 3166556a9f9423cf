package service

import (
	"context"
	"errors"
	"time"

	"github.com/maxviazov/bookstore-service/internal/logger"
	"github.com/maxviazov/bookstore-service/internal/model"
	"github.com/maxviazov/bookstore-service/internal/repository"
	"github.com/rs/zerolog"
)

const categoryEntity = "Category"

type categoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	tx         repository.TxManager
	log        zerolog.Logger
}

func NewCategoryService(categories repository.CategoryRepository, products repository.ProductRepository, tx repository.TxManager, base zerolog.Logger) CategoryService {
	l := base.With().Str("module", "service").Str("component", "category").Logger()
	return &categoryService{categories: categories, products: products, tx: tx, log: l}
}

func (s *categoryService) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	return s.existingCategory(ctx, id)
}

func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	err := s.tx.WithinReadOnlyTx(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.categories.List(ctx)
		return err
	})
	if err != nil {
		s.logFor(ctx).Error().Err(err).Msg("list categories failed")
		return nil, err
	}
	return out, nil
}

// ListProductsByCategory validates the window before touching the store, then
// resolves the category and reads the page inside one read-only transaction.
func (s *categoryService) ListProductsByCategory(ctx context.Context, categoryID int64, page repository.PageRequest) (repository.Page[model.Product], error) {
	if err := validatePageRequest(page); err != nil {
		s.logFor(ctx).Debug().Int("page", page.Page).Int("size", page.Size).Interface("field_errors", FieldErrors(err)).Msg("pagination validation failed")
		return repository.Page[model.Product]{}, err
	}

	start := time.Now()
	var res repository.PageResult[model.Product]
	err := s.tx.WithinReadOnlyTx(ctx, func(ctx context.Context) error {
		category, err := s.existingCategory(ctx, categoryID)
		if err != nil {
			return err
		}
		res, err = s.products.ListByCategory(ctx, category.ID, page)
		return err
	})
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logFor(ctx).Error().Err(err).Int64("category_id", categoryID).Int("page", page.Page).Int("size", page.Size).Msg("list products by category failed")
		}
		return repository.Page[model.Product]{}, err
	}
	s.logFor(ctx).Debug().Dur("took", time.Since(start)).Int64("category_id", categoryID).Int("total", res.Total).Msg("products listed")
	return repository.NewPage(res, page), nil
}

func (s *categoryService) logFor(ctx context.Context) *zerolog.Logger {
	l := logger.FromContext(ctx, s.log)
	return &l
}

// existingCategory is the single place where a missing category becomes a NotFoundError.
func (s *categoryService) existingCategory(ctx context.Context, id int64) (model.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Category{}, &NotFoundError{Entity: categoryEntity, ID: id}
		}
		s.logFor(ctx).Error().Err(err).Int64("category_id", id).Msg("get category failed")
		return model.Category{}, err
	}
	return c, nil
}
