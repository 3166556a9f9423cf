package memory

import (
	"context"
	"testing"

	"github.com/maxviazov/bookstore-service/internal/model"
	"github.com/maxviazov/bookstore-service/internal/repository"
	"github.com/maxviazov/bookstore-service/internal/repository/contract"
	"github.com/shopspring/decimal"
)

type storeSeeder struct{ s *Store }

func (sd storeSeeder) Category(_ context.Context, name string) (int64, error) {
	c, err := sd.s.AddCategory(model.Category{Name: name})
	return c.ID, err
}

func (sd storeSeeder) Product(_ context.Context, categoryID int64, sku string) (int64, error) {
	p, err := sd.s.AddProduct(model.Product{
		CategoryID: categoryID,
		SKU:        sku,
		Name:       "Book " + sku,
		UnitPrice:  decimal.RequireFromString("9.99"),
		Active:     true,
	})
	return p.ID, err
}

func makeCatalog(t *testing.T) (repository.CategoryRepository, repository.ProductRepository, contract.Seeder, func()) {
	s := NewStore()
	return s.Categories(), s.Products(), storeSeeder{s}, s.Reset
}

func makeTx(t *testing.T) (repository.TxManager, repository.CategoryRepository, contract.Seeder, func()) {
	s := NewStore()
	return s.TxManager(), s.Categories(), storeSeeder{s}, s.Reset
}

func makePinger(t *testing.T) (repository.Pinger, func()) {
	return NewStore(), func() {}
}

func TestCategoryRepository_MemoryContract(t *testing.T) {
	contract.RunCategoryRepositoryContract(t, makeCatalog)
}

func TestProductRepository_MemoryContract(t *testing.T) {
	contract.RunProductRepositoryContract(t, makeCatalog)
}

func TestTxManager_MemoryContract(t *testing.T) {
	contract.RunTxManagerContract(t, makeTx)
}

func TestPinger_MemoryContract(t *testing.T) {
	contract.RunPingerContract(t, makePinger)
}

func TestStore_AddProductRequiresCategory(t *testing.T) {
	s := NewStore()
	_, err := s.AddProduct(model.Product{CategoryID: 42, SKU: "X"})
	if err != repository.ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestStore_AddCategoryDuplicateID(t *testing.T) {
	s := NewStore()
	if _, err := s.AddCategory(model.Category{ID: 7, Name: "A"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := s.AddCategory(model.Category{ID: 7, Name: "B"}); err != repository.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	next, err := s.AddCategory(model.Category{Name: "C"})
	if err != nil || next.ID != 8 {
		t.Fatalf("expected auto id 8, got %d (%v)", next.ID, err)
	}
}
