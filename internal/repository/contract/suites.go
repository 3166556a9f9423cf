package contract

import (
	"context"
	"errors"
	"testing"

	"github.com/maxviazov/bookstore-service/internal/repository"
)

// Seeder writes fixtures through whatever backdoor the implementation offers;
// the repositories under test are read-only.
type Seeder interface {
	Category(ctx context.Context, name string) (int64, error)
	Product(ctx context.Context, categoryID int64, sku string) (int64, error)
}

type CatalogFactory func(t *testing.T) (repository.CategoryRepository, repository.ProductRepository, Seeder, func())

type TxFactory func(t *testing.T) (repository.TxManager, repository.CategoryRepository, Seeder, func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func RunCategoryRepositoryContract(t *testing.T, makeRepo CatalogFactory) {
	t.Helper()

	t.Run("get_by_id", func(t *testing.T) {
		cats, _, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		id, err := seed.Category(ctx, "Fiction")
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		got, err := cats.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ID != id || got.Name != "Fiction" {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		cats, _, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := cats.GetByID(context.Background(), 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_returns_every_category_once", func(t *testing.T) {
		cats, _, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		want := map[int64]string{}
		for _, name := range []string{"Fiction", "History", "Science"} {
			id, err := seed.Category(ctx, name)
			if err != nil {
				t.Fatalf("seed %s: %v", name, err)
			}
			want[id] = name
		}
		list, err := cats.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != len(want) {
			t.Fatalf("expected %d categories, got %d", len(want), len(list))
		}
		seen := map[int64]bool{}
		for _, c := range list {
			if seen[c.ID] {
				t.Fatalf("duplicate category %d", c.ID)
			}
			seen[c.ID] = true
			if want[c.ID] != c.Name {
				t.Fatalf("unexpected category %+v", c)
			}
		}
	})

	t.Run("list_empty_ok", func(t *testing.T) {
		cats, _, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		list, err := cats.List(context.Background())
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if list == nil || len(list) != 0 {
			t.Fatalf("expected empty non-nil list, got %#v", list)
		}
	})
}

func RunProductRepositoryContract(t *testing.T, makeRepo CatalogFactory) {
	t.Helper()

	seedCatalog := func(t *testing.T, seed Seeder) (fiction, history int64) {
		t.Helper()
		ctx := context.Background()
		var err error
		if fiction, err = seed.Category(ctx, "Fiction"); err != nil {
			t.Fatalf("seed category: %v", err)
		}
		if history, err = seed.Category(ctx, "History"); err != nil {
			t.Fatalf("seed category: %v", err)
		}
		for _, sku := range []string{"F-1", "F-2", "F-3"} {
			if _, err := seed.Product(ctx, fiction, sku); err != nil {
				t.Fatalf("seed product %s: %v", sku, err)
			}
		}
		for _, sku := range []string{"H-1", "H-2"} {
			if _, err := seed.Product(ctx, history, sku); err != nil {
				t.Fatalf("seed product %s: %v", sku, err)
			}
		}
		return fiction, history
	}

	t.Run("first_page", func(t *testing.T) {
		_, prods, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		fiction, _ := seedCatalog(t, seed)
		res, err := prods.ListByCategory(context.Background(), fiction, repository.PageRequest{Page: 0, Size: 2})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 2 || res.Total != 3 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		for _, p := range res.Items {
			if p.CategoryID != fiction {
				t.Fatalf("product %d belongs to category %d", p.ID, p.CategoryID)
			}
		}
	})

	t.Run("last_partial_page", func(t *testing.T) {
		_, prods, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		fiction, _ := seedCatalog(t, seed)
		res, err := prods.ListByCategory(context.Background(), fiction, repository.PageRequest{Page: 1, Size: 2})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 1 || res.Total != 3 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
	})

	t.Run("page_past_end_keeps_total", func(t *testing.T) {
		_, prods, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, history := seedCatalog(t, seed)
		res, err := prods.ListByCategory(context.Background(), history, repository.PageRequest{Page: 5, Size: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 0 || res.Total != 2 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
	})

	t.Run("pages_do_not_overlap", func(t *testing.T) {
		_, prods, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		fiction, _ := seedCatalog(t, seed)
		ctx := context.Background()
		seen := map[int64]bool{}
		for page := 0; page < 3; page++ {
			res, err := prods.ListByCategory(ctx, fiction, repository.PageRequest{Page: page, Size: 1})
			if err != nil {
				t.Fatalf("list page %d: %v", page, err)
			}
			if len(res.Items) != 1 {
				t.Fatalf("page %d: expected 1 item, got %d", page, len(res.Items))
			}
			if seen[res.Items[0].ID] {
				t.Fatalf("product %d returned twice", res.Items[0].ID)
			}
			seen[res.Items[0].ID] = true
		}
	})

	t.Run("huge_size_returns_remaining_rows", func(t *testing.T) {
		_, prods, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		fiction, _ := seedCatalog(t, seed)
		res, err := prods.ListByCategory(context.Background(), fiction, repository.PageRequest{Page: 0, Size: 1 << 62})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 3 || res.Total != 3 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
	})

	t.Run("overflowing_offset_is_empty", func(t *testing.T) {
		_, prods, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		fiction, _ := seedCatalog(t, seed)
		res, err := prods.ListByCategory(context.Background(), fiction, repository.PageRequest{Page: 1 << 62, Size: 4})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 0 || res.Total != 3 {
			t.Fatalf("expected empty page with total 3, got len=%d total=%d", len(res.Items), res.Total)
		}
	})

	t.Run("empty_category", func(t *testing.T) {
		_, prods, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		id, err := seed.Category(context.Background(), "Poetry")
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		res, err := prods.ListByCategory(context.Background(), id, repository.PageRequest{Page: 0, Size: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 0 || res.Total != 0 {
			t.Fatalf("expected empty page, got len=%d total=%d", len(res.Items), res.Total)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("read_only_sees_data", func(t *testing.T) {
		tx, cats, seed, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		id, err := seed.Category(ctx, "Fiction")
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		err = tx.WithinReadOnlyTx(ctx, func(ctx context.Context) error {
			_, err := cats.GetByID(ctx, id)
			return err
		})
		if err != nil {
			t.Fatalf("WithinReadOnlyTx: %v", err)
		}
	})

	t.Run("callback_error_propagates", func(t *testing.T) {
		tx, _, _, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		marker := errors.New("boom")
		err := tx.WithinReadOnlyTx(context.Background(), func(ctx context.Context) error {
			return marker
		})
		if !errors.Is(err, marker) {
			t.Fatalf("expected marker error, got %v", err)
		}
	})

	t.Run("not_found_inside_tx", func(t *testing.T) {
		tx, cats, _, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		err := tx.WithinReadOnlyTx(context.Background(), func(ctx context.Context) error {
			_, err := cats.GetByID(ctx, 123456)
			return err
		})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
