package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/bookstore-service/internal/model"
	"github.com/maxviazov/bookstore-service/internal/repository"
)

type productRepository struct{ pool *pgxpool.Pool }

func NewProductRepository(pool *pgxpool.Pool) repository.ProductRepository {
	return &productRepository{pool: pool}
}

// ListByCategory counts first and then reads the page, so a page past the end
// still reports the real total. Run it inside a read-only tx for a consistent pair.
func (r *productRepository) ListByCategory(ctx context.Context, categoryID int64, p repository.PageRequest) (repository.PageResult[model.Product], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Product]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit(), p.Offset())
	exec := getQ(ctx, r.pool)

	var total int
	if err := exec.QueryRow(ctx,
		`SELECT COUNT(*) FROM product WHERE category_id = $1`, categoryID,
	).Scan(&total); err != nil {
		return repository.PageResult[model.Product]{}, repository.MapPgError(err)
	}
	res := repository.PageResult[model.Product]{Items: []model.Product{}, Total: total}
	if !p.OffsetFits() || offset >= total {
		return res, nil
	}

	rows, err := exec.Query(ctx,
		`SELECT id, category_id, sku, name, description, unit_price, image_url,
		        active, units_in_stock, date_created, last_updated
		 FROM product WHERE category_id = $1
		 ORDER BY id
		 LIMIT $2 OFFSET $3`,
		categoryID, limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Product]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res.Items = make([]model.Product, 0, pageCapacity(limit, offset, total))
	for rows.Next() {
		var it model.Product
		if err := rows.Scan(&it.ID, &it.CategoryID, &it.SKU, &it.Name, &it.Description, &it.UnitPrice,
			&it.ImageURL, &it.Active, &it.UnitsInStock, &it.DateCreated, &it.LastUpdated); err != nil {
			return repository.PageResult[model.Product]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, it)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Product]{}, repository.MapPgError(err)
	}
	return res, nil
}

// pageCapacity is the number of rows the page can actually hold, never more than remain after offset.
func pageCapacity(limit, offset, total int) int {
	if offset >= total {
		return 0
	}
	return min(limit, total-offset)
}

var _ repository.ProductRepository = (*productRepository)(nil)
