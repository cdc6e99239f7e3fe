package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/omarsel/flashmart/internal/domain/errors"
	"github.com/omarsel/flashmart/internal/domain/model"
	"github.com/omarsel/flashmart/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool used by the storage, declared as an
// interface so tests can substitute a pgxmock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            email TEXT UNIQUE,
            password_hash TEXT,
            anonymous BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS admin_grants (
            user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
            granted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL,
            image_ref TEXT NOT NULL,
            available BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            reference UUID UNIQUE NOT NULL,
            user_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
            buyer_name TEXT NOT NULL,
            class_label TEXT NOT NULL,
            student_number TEXT NOT NULL,
            product_id BIGINT REFERENCES products(id) ON DELETE SET NULL,
            product_name TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_products_available ON products(available, id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// SeedCatalog inserts the default flash-drive catalog when the products
// table is empty. Safe to call on every startup.
func (s *Storage) SeedCatalog(ctx context.Context) error {
	count, err := s.Products().Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed := []struct {
		name  string
		price float64
		image string
	}{
		{"Kingston Flashdrive 16GB", 120, "image1.jpg"},
		{"Kingston Flashdrive 32GB", 150, "image2.jpg"},
		{"Redragon Flashdrive 32GB", 135, "image3.jpg"},
	}
	for _, p := range seed {
		if _, err := s.pool.Exec(ctx,
			`INSERT INTO products (name, price, image_ref) VALUES ($1, $2, $3)`,
			p.name, p.price, p.image); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}
	s.logger.Info("seeded default catalog", slog.Int("products", len(seed)))
	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (email, password_hash, anonymous) VALUES ($1, $2, FALSE) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Email = &email
	u.PasswordHash = &passwordHash
	return &u, nil
}

func (r *userRepository) CreateAnonymous(ctx context.Context) (*model.User, error) {
	const query = `INSERT INTO users (anonymous) VALUES (TRUE) RETURNING id, created_at`
	var u model.User
	if err := r.storage.pool.QueryRow(ctx, query).Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Anonymous = true
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, email, password_hash, anonymous, created_at FROM users WHERE email=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Anonymous, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, email, password_hash, anonymous, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Anonymous, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM admin_grants WHERE user_id=$1)`
	var admin bool
	if err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&admin); err != nil {
		return false, err
	}
	return admin, nil
}

func (r *userRepository) GrantAdmin(ctx context.Context, userID int64) error {
	const query = `INSERT INTO admin_grants (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`
	_, err := r.storage.pool.Exec(ctx, query, userID)
	return err
}

func (r *userRepository) DeleteStaleAnonymous(ctx context.Context, olderThan time.Time) (int64, error) {
	const query = `DELETE FROM users
                   WHERE anonymous
                     AND created_at < $1
                     AND NOT EXISTS (SELECT 1 FROM orders o WHERE o.user_id = users.id)`
	tag, err := r.storage.pool.Exec(ctx, query, olderThan)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// --- ProductRepository implementation ---

func (r *productRepository) Create(ctx context.Context, name string, price float64, imageRef string) (*model.Product, error) {
	const query = `INSERT INTO products (name, price, image_ref) VALUES ($1, $2, $3) RETURNING id, available, created_at`
	var p model.Product
	if err := r.storage.pool.QueryRow(ctx, query, name, price, imageRef).Scan(&p.ID, &p.Available, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Name = name
	p.Price = price
	p.ImageRef = imageRef
	return &p, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT id, name, price, image_ref, available, created_at FROM products WHERE id=$1`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.ImageRef, &p.Available, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) ListAvailable(ctx context.Context) ([]model.Product, error) {
	const query = `SELECT id, name, price, image_ref, available, created_at
                   FROM products WHERE available ORDER BY id ASC`
	return r.list(ctx, query)
}

func (r *productRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	const query = `SELECT id, name, price, image_ref, available, created_at
                   FROM products ORDER BY id ASC`
	return r.list(ctx, query)
}

func (r *productRepository) list(ctx context.Context, query string) ([]model.Product, error) {
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.ImageRef, &p.Available, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) Update(ctx context.Context, id int64, upd model.ProductUpdate) (*model.Product, error) {
	set := make([]string, 0, 4)
	args := make([]any, 0, 5)

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Price != nil {
		add("price", *upd.Price)
	}
	if upd.ImageRef != nil {
		add("image_ref", *upd.ImageRef)
	}
	if upd.Available != nil {
		add("available", *upd.Available)
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE products SET %s WHERE id=$%d RETURNING id, name, price, image_ref, available, created_at`,
		strings.Join(set, ", "), len(args))

	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, args...).Scan(&p.ID, &p.Name, &p.Price, &p.ImageRef, &p.Available, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// --- OrderRepository implementation ---

// Create inserts one order. The availability re-check and the insert share
// a transaction, so a product withdrawn after the storefront read cannot
// end up purchased.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (reference, user_id, buyer_name, class_label, student_number, product_id, product_name, price)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING id, created_at`
	if order.Reference == uuid.Nil {
		order.Reference = uuid.New()
	}
	created := *order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if created.ProductID != nil {
			var available bool
			if err := tx.QueryRow(ctx, `SELECT available FROM products WHERE id = $1`, *created.ProductID).Scan(&available); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return domainErrors.ErrNotFound
				}
				return err
			}
			if !available {
				return domainErrors.ErrProductUnavailable
			}
		}
		return tx.QueryRow(ctx, query,
			created.Reference, created.UserID, created.BuyerName, created.ClassLabel,
			created.StudentNumber, created.ProductID, created.ProductName, created.Price,
		).Scan(&created.ID, &created.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT id, reference, user_id, buyer_name, class_label, student_number, product_id, product_name, price, created_at
                   FROM orders ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.Reference, &o.UserID, &o.BuyerName, &o.ClassLabel,
			&o.StudentNumber, &o.ProductID, &o.ProductName, &o.Price, &o.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Report(ctx context.Context) (*model.SalesReport, error) {
	var report model.SalesReport
	const totals = `SELECT COALESCE(SUM(price), 0), COUNT(*) FROM orders`
	if err := r.storage.pool.QueryRow(ctx, totals).Scan(&report.TotalRevenue, &report.TotalPurchases); err != nil {
		return nil, err
	}

	const perProduct = `SELECT product_name, COUNT(*) FROM orders
                        GROUP BY product_name ORDER BY COUNT(*) DESC, product_name ASC`
	rows, err := r.storage.pool.Query(ctx, perProduct)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ps model.ProductSales
		if err := rows.Scan(&ps.ProductName, &ps.Count); err != nil {
			return nil, err
		}
		report.PerProduct = append(report.PerProduct, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &report, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
