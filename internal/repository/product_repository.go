package repository

import (
	"context"
	"fmt"
	"strings"

	"eliteshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = "id, name, description, price, category, stock_quantity, image_url, is_active, created_at"

// bulkUpdateColumns whitelists the columns a bulk update may touch. Unknown
// fields in the request are skipped, never interpolated into SQL.
var bulkUpdateColumns = map[string]string{
	"name":           "name",
	"description":    "description",
	"price":          "price",
	"category":       "category",
	"stock_quantity": "stock_quantity",
	"image_url":      "image_url",
	"is_active":      "is_active",
}

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// List retrieves products matching the filter with the pre-pagination total.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter, activeOnly bool) ([]model.Product, int, error) {
	var conditions []string
	var args []interface{}

	if activeOnly {
		conditions = append(conditions, "is_active = TRUE")
	}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", where)

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Sort column and direction come from a whitelist, never from the raw
	// query string.
	sortColumn := "created_at"
	switch filter.SortBy {
	case "price":
		sortColumn = "price"
	case "name":
		sortColumn = "name"
	}

	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	args = append(args, filter.PerPage, (filter.Page-1)*filter.PerPage)
	query := fmt.Sprintf(
		"SELECT %s FROM products %s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		productColumns, where, sortColumn, direction, len(args)-1, len(args),
	)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan product rows")
		return nil, 0, err
	}

	return products, total, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)
	return r.scanOne(ctx, r.pool.QueryRow(ctx, query, id), id)
}

// GetByIDTx retrieves a product within the provided transaction.
func (r *productRepository) GetByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*model.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)
	return r.scanOne(ctx, tx.QueryRow(ctx, query, id), id)
}

func (r *productRepository) scanOne(_ context.Context, row pgx.Row, id int64) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
		&p.StockQuantity, &p.ImageURL, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return &p, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (name, description, price, category, stock_quantity, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		product.Name, product.Description, product.Price, product.Category,
		product.StockQuantity, product.ImageURL, product.IsActive,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Int64("product_id", product.ID).Msg("product created")
	return nil
}

// Update persists all mutable fields of the product.
func (r *productRepository) Update(ctx context.Context, product *model.Product) (bool, error) {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, category = $4,
			stock_quantity = $5, image_url = $6, is_active = $7
		WHERE id = $8
	`

	tag, err := r.pool.Exec(ctx, query,
		product.Name, product.Description, product.Price, product.Category,
		product.StockQuantity, product.ImageURL, product.IsActive, product.ID,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to update product")
		return false, fmt.Errorf("failed to update product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// SoftDelete flips the product's active flag off.
func (r *productRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to soft-delete product")
		return false, fmt.Errorf("failed to soft-delete product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// BulkUpdate applies whitelisted column updates to the given products.
func (r *productRepository) BulkUpdate(ctx context.Context, ids []int64, updates map[string]interface{}) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var sets []string
	var args []interface{}

	for field, value := range updates {
		column, ok := bulkUpdateColumns[field]
		if !ok {
			r.logger.Debug().Str("field", field).Msg("skipping unknown bulk-update field")
			continue
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if len(sets) == 0 {
		return 0, nil
	}

	args = append(args, ids)
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = ANY($%d)", strings.Join(sets, ", "), len(args))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Int("id_count", len(ids)).Msg("failed to bulk-update products")
		return 0, fmt.Errorf("failed to bulk-update products: %w", err)
	}

	return tag.RowsAffected(), nil
}

// BulkDelete hard-deletes the given products.
func (r *productRepository) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("id_count", len(ids)).Msg("failed to bulk-delete products")
		return 0, fmt.Errorf("failed to bulk-delete products: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Categories retrieves the distinct non-empty product categories.
func (r *productRepository) Categories(ctx context.Context, activeOnly bool) ([]string, error) {
	query := `SELECT DISTINCT category FROM products WHERE category <> ''`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY category`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// LowStock retrieves products with stock at or below the threshold.
func (r *productRepository) LowStock(ctx context.Context, threshold int) ([]model.Product, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM products WHERE stock_quantity <= $1 ORDER BY stock_quantity, name",
		productColumns,
	)

	rows, err := r.pool.Query(ctx, query, threshold)
	if err != nil {
		r.logger.Error().Err(err).Int("threshold", threshold).Msg("failed to query low-stock products")
		return nil, fmt.Errorf("failed to query low-stock products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// UpdateStock sets the product's stock quantity directly.
func (r *productRepository) UpdateStock(ctx context.Context, id int64, quantity int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET stock_quantity = $1 WHERE id = $2`, quantity, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update stock")
		return false, fmt.Errorf("failed to update stock: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// DecrementStock decrements stock within the transaction, guarded against
// going negative. A false return means another checkout took the stock
// first; the caller must roll back.
func (r *productRepository) DecrementStock(ctx context.Context, tx pgx.Tx, id int64, quantity int) (bool, error) {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity - $1
		WHERE id = $2 AND stock_quantity >= $1
	`

	tag, err := tx.Exec(ctx, query, quantity, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Int("quantity", quantity).
			Msg("failed to decrement stock")
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Analytics summarises the catalogue for the admin dashboard.
func (r *productRepository) Analytics(ctx context.Context) (*model.ProductAnalytics, error) {
	analytics := &model.ProductAnalytics{}

	summary := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE stock_quantity < 10),
			COUNT(*) FILTER (WHERE stock_quantity = 0)
		FROM products
	`
	err := r.pool.QueryRow(ctx, summary).Scan(
		&analytics.TotalProducts,
		&analytics.LowStockProducts,
		&analytics.OutOfStockProducts,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query product summary")
		return nil, fmt.Errorf("failed to query product summary: %w", err)
	}

	byCategory := `
		SELECT category, COUNT(*), AVG(price)
		FROM products
		GROUP BY category
		ORDER BY category
	`
	rows, err := r.pool.Query(ctx, byCategory)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query category stats")
		return nil, fmt.Errorf("failed to query category stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cc model.CategoryCount
		var cp model.CategoryPrice
		if err := rows.Scan(&cc.Category, &cc.Count, &cp.AvgPrice); err != nil {
			return nil, fmt.Errorf("failed to scan category stats: %w", err)
		}
		cp.Category = cc.Category
		analytics.CategoryDistribution = append(analytics.CategoryDistribution, cc)
		analytics.PriceByCategory = append(analytics.PriceByCategory, cp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category stats: %w", err)
	}

	return analytics, nil
}

// scanProducts drains a product result set.
func scanProducts(rows pgx.Rows) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
			&p.StockQuantity, &p.ImageURL, &p.IsActive, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
