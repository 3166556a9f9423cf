// Package memory is an in-process implementation of the repository contracts.
// It backs local runs (storage.driver=memory) and the contract suites.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/maxviazov/bookstore-service/internal/model"
	"github.com/maxviazov/bookstore-service/internal/repository"
)

// Store holds categories and products behind a single RWMutex.
type Store struct {
	mu         sync.RWMutex
	categories map[int64]model.Category
	products   map[int64]model.Product
	nextCatID  int64
	nextProdID int64
}

func NewStore() *Store {
	return &Store{
		categories: make(map[int64]model.Category),
		products:   make(map[int64]model.Product),
		nextCatID:  1,
		nextProdID: 1,
	}
}

// AddCategory stores c, assigning an id when c.ID is zero.
func (s *Store) AddCategory(c model.Category) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.nextCatID
	}
	if _, ok := s.categories[c.ID]; ok {
		return model.Category{}, repository.ErrAlreadyExists
	}
	if c.ID >= s.nextCatID {
		s.nextCatID = c.ID + 1
	}
	s.categories[c.ID] = c
	return c, nil
}

// AddProduct stores p; its category must already exist.
func (s *Store) AddProduct(p model.Product) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[p.CategoryID]; !ok {
		return model.Product{}, repository.ErrConflict
	}
	if p.ID == 0 {
		p.ID = s.nextProdID
	}
	if _, ok := s.products[p.ID]; ok {
		return model.Product{}, repository.ErrAlreadyExists
	}
	if p.ID >= s.nextProdID {
		s.nextProdID = p.ID + 1
	}
	s.products[p.ID] = p
	return p, nil
}

// Reset drops all data.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = make(map[int64]model.Category)
	s.products = make(map[int64]model.Product)
	s.nextCatID, s.nextProdID = 1, 1
}

func (s *Store) Categories() repository.CategoryRepository { return categoryRepository{s} }
func (s *Store) Products() repository.ProductRepository    { return productRepository{s} }
func (s *Store) TxManager() repository.TxManager           { return txManager{} }

// Ping never fails; the store lives in-process.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

type categoryRepository struct{ s *Store }

func (r categoryRepository) GetByID(ctx context.Context, id int64) (model.Category, error) {
	if err := ctx.Err(); err != nil {
		return model.Category{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return model.Category{}, repository.ErrNotFound
	}
	return c, nil
}

func (r categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	out := make([]model.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type productRepository struct{ s *Store }

func (r productRepository) ListByCategory(ctx context.Context, categoryID int64, p repository.PageRequest) (repository.PageResult[model.Product], error) {
	if err := ctx.Err(); err != nil {
		return repository.PageResult[model.Product]{}, err
	}
	r.s.mu.RLock()
	matched := make([]model.Product, 0)
	for _, it := range r.s.products {
		if it.CategoryID == categoryID {
			matched = append(matched, it)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	res := repository.PageResult[model.Product]{Items: []model.Product{}, Total: len(matched)}
	limit, offset := p.Limit(), p.Offset()
	if !p.OffsetFits() || limit <= 0 || offset < 0 || offset >= len(matched) {
		return res, nil
	}
	end := offset + min(limit, len(matched)-offset)
	res.Items = append(res.Items, matched[offset:end]...)
	return res, nil
}

// txManager runs fn directly. Reads never observe a half-applied write because
// every write holds the store lock for its whole duration.
type txManager struct{}

func (txManager) WithinReadOnlyTx(ctx context.Context, fn repository.TxFunc) error {
	return fn(ctx)
}

var (
	_ repository.CategoryRepository = categoryRepository{}
	_ repository.ProductRepository  = productRepository{}
	_ repository.TxManager          = txManager{}
	_ repository.Pinger             = (*Store)(nil)
)
