package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/maxviazov/bookstore-service/internal/repository"
	"github.com/maxviazov/bookstore-service/internal/repository/contract"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
)

var (
	db     *sql.DB
	pool   *pgxpool.Pool
	dsn    string
	skippy bool
)

func TestMain(m *testing.M) {
	if os.Getenv("CONTRACT_TESTS") != "1" {
		skippy = true
		os.Exit(m.Run())
	}

	dsn = buildDSNFromEnv()
	if dsn == "" {
		fmt.Println("[contract] DATABASE_URL or APP_POSTGRES_* env not set; skipping")
		skippy = true
		os.Exit(m.Run())
	}

	var err error
	db, err = sql.Open("pgx", dsn)
	if err != nil {
		fmt.Println("[contract] sql open error:", err)
		os.Exit(1)
	}
	if err := db.Ping(); err != nil {
		fmt.Println("[contract] db ping error:", err)
		os.Exit(1)
	}

	migrationsDir := filepath.Clean(filepath.Join("..", "..", "..", "migrations", "goose_sql"))
	if err := goose.SetDialect("postgres"); err != nil {
		fmt.Println("[contract] goose dialect error:", err)
		os.Exit(1)
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		fmt.Println("[contract] goose up error:", err)
		os.Exit(1)
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		fmt.Println("[contract] pgxpool config error:", err)
		os.Exit(1)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	pool, err = pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		fmt.Println("[contract] pgxpool new error:", err)
		os.Exit(1)
	}

	code := m.Run()
	pool.Close()
	db.Close()
	os.Exit(code)
}

func skipIfNeeded(t *testing.T) {
	if skippy {
		t.Skip("contract tests skipped; set CONTRACT_TESTS=1 and provide DB env")
	}
}

func buildDSNFromEnv() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	user := firstNonEmpty(os.Getenv("APP_POSTGRES_USER"), os.Getenv("POSTGRES_USER"), os.Getenv("DB_USER"))
	pass := firstNonEmpty(os.Getenv("APP_POSTGRES_PASSWORD"), os.Getenv("POSTGRES_PASSWORD"), os.Getenv("DB_PASSWORD"))
	host := firstNonEmpty(os.Getenv("APP_POSTGRES_HOST"), os.Getenv("POSTGRES_HOST"), "localhost")
	port := firstNonEmpty(os.Getenv("APP_POSTGRES_PORT"), os.Getenv("POSTGRES_PORT"), "5432")
	name := firstNonEmpty(os.Getenv("APP_POSTGRES_DB"), os.Getenv("POSTGRES_DB"), os.Getenv("DB_NAME"))
	ssl := firstNonEmpty(os.Getenv("APP_POSTGRES_SSLMODE"), os.Getenv("POSTGRES_SSLMODE"), "disable")
	if user == "" || pass == "" || name == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, pass, host, port, name, ssl)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncateAll(t *testing.T) {
	t.Helper()
	if _, err := db.Exec("TRUNCATE TABLE product, product_category RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
}

// sqlSeeder inserts fixtures over database/sql; the repositories themselves never write.
type sqlSeeder struct{}

func (sqlSeeder) Category(ctx context.Context, name string) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx,
		`INSERT INTO product_category (category_name) VALUES ($1) RETURNING id`, name,
	).Scan(&id)
	return id, err
}

func (sqlSeeder) Product(ctx context.Context, categoryID int64, sku string) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx,
		`INSERT INTO product (category_id, sku, name, description, unit_price, image_url, active, units_in_stock)
		 VALUES ($1, $2, $3, '', $4, '', TRUE, 10) RETURNING id`,
		categoryID, sku, "Book "+sku, decimal.RequireFromString("19.99").String(),
	).Scan(&id)
	return id, err
}

func makeCatalog(t *testing.T) (repository.CategoryRepository, repository.ProductRepository, contract.Seeder, func()) {
	skipIfNeeded(t)
	truncateAll(t)
	return NewCategoryRepository(pool), NewProductRepository(pool), sqlSeeder{}, func() { truncateAll(t) }
}

func makeTx(t *testing.T) (repository.TxManager, repository.CategoryRepository, contract.Seeder, func()) {
	skipIfNeeded(t)
	truncateAll(t)
	return NewTxManager(pool), NewCategoryRepository(pool), sqlSeeder{}, func() { truncateAll(t) }
}

func makePinger(t *testing.T) (repository.Pinger, func()) {
	skipIfNeeded(t)
	return NewPinger(pool), func() {}
}

func TestCategoryRepository_PostgresContract(t *testing.T) {
	contract.RunCategoryRepositoryContract(t, makeCatalog)
}

func TestProductRepository_PostgresContract(t *testing.T) {
	contract.RunProductRepositoryContract(t, makeCatalog)
}

func TestTxManager_PostgresContract(t *testing.T) {
	contract.RunTxManagerContract(t, makeTx)
}

func TestPinger_PostgresContract(t *testing.T) {
	contract.RunPingerContract(t, makePinger)
}

func TestTxManager_ReadOnlyRejectsWrites(t *testing.T) {
	skipIfNeeded(t)
	truncateAll(t)
	t.Cleanup(func() { truncateAll(t) })

	tm := NewTxManager(pool)
	err := tm.WithinReadOnlyTx(context.Background(), func(ctx context.Context) error {
		_, err := getQ(ctx, pool).Exec(ctx, `INSERT INTO product_category (category_name) VALUES ('Nope')`)
		return err
	})
	if !errors.Is(err, repository.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM product_category`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no rows after rejected write, got %d", n)
	}
}

func TestProductRepository_DecodesUnitPrice(t *testing.T) {
	skipIfNeeded(t)
	truncateAll(t)
	t.Cleanup(func() { truncateAll(t) })

	ctx := context.Background()
	catID, err := sqlSeeder{}.Category(ctx, "Fiction")
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	if _, err := (sqlSeeder{}).Product(ctx, catID, "F-1"); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	res, err := NewProductRepository(pool).ListByCategory(ctx, catID, repository.PageRequest{Page: 0, Size: 5})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Items) != 1 || !res.Items[0].UnitPrice.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("unexpected products: %+v", res.Items)
	}
}
