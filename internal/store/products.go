package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/amaliyev/go-marketplace/internal/database"
	"github.com/amaliyev/go-marketplace/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	SellerID     uuid.UUID
	CategoryID   uuid.UUID
	Name         string
	Description  string
	PriceCurrent decimal.Decimal
	InStock      int
}

type UpdateProductRequest struct {
	Name         string
	Description  string
	PriceCurrent decimal.Decimal
	InStock      int
}

const productColumns = `id, seller_id, category_id, name, slug, description,
		price_old, price_current, in_stock, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}
	var sellerID uuid.NullUUID
	var priceOld decimal.NullDecimal

	err := row.Scan(
		&product.ID,
		&sellerID,
		&product.CategoryID,
		&product.Name,
		&product.Slug,
		&product.Description,
		&priceOld,
		&product.PriceCurrent,
		&product.InStock,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if sellerID.Valid {
		product.SellerID = &sellerID.UUID
	}
	if priceOld.Valid {
		product.PriceOld = &priceOld.Decimal
	}
	return product, nil
}

func CreateProduct(ctx context.Context, db *sql.DB, req CreateProductRequest) (*models.Product, error) {
	var product *models.Product

	err := database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		slug, err := uniqueSlug(ctx, tx, "products", req.Name)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO products (seller_id, category_id, name, slug, description,
				price_current, in_stock, is_deleted, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, NOW(), NOW())
			RETURNING ` + productColumns

		product, err = scanProduct(tx.QueryRowContext(ctx, query,
			req.SellerID, req.CategoryID, req.Name, slug, req.Description,
			req.PriceCurrent, req.InStock))
		if err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func GetProductBySlug(ctx context.Context, db *sql.DB, slug string) (*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE slug = $1 AND is_deleted = FALSE`

	product, err := scanProduct(db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

// UpdateProduct overwrites the editable fields. The previous price is
// preserved in price_old when the price changes.
func UpdateProduct(ctx context.Context, db *sql.DB, slug string, sellerID uuid.UUID, req UpdateProductRequest) (*models.Product, error) {
	query := `
		UPDATE products
		SET name = $1,
		    description = $2,
		    price_old = CASE WHEN price_current <> $3 THEN price_current ELSE price_old END,
		    price_current = $3,
		    in_stock = $4,
		    updated_at = NOW()
		WHERE slug = $5 AND seller_id = $6 AND is_deleted = FALSE
		RETURNING ` + productColumns

	product, err := scanProduct(db.QueryRowContext(ctx, query,
		req.Name, req.Description, req.PriceCurrent, req.InStock, slug, sellerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	return product, nil
}

func SoftDeleteProduct(ctx context.Context, db *sql.DB, slug string, sellerID uuid.UUID) error {
	result, err := db.ExecContext(ctx,
		`UPDATE products
		 SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
		 WHERE slug = $1 AND seller_id = $2 AND is_deleted = FALSE`,
		slug, sellerID)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrProductNotFound
	}

	return nil
}

func ListProducts(ctx context.Context, db *sql.DB, page, pageSize int) (*OffsetPage, error) {
	var total int64
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE is_deleted = FALSE`).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	offset := (page - 1) * pageSize
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_deleted = FALSE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &OffsetPage{
		Items:      products,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func ListProductsByCategory(ctx context.Context, db *sql.DB, categoryID uuid.UUID) ([]models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE category_id = $1 AND is_deleted = FALSE
		ORDER BY created_at DESC`

	rows, err := db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// ListProductsBySeller serves both the public seller page and the
// seller's own inventory view; only the latter passes includeDeleted.
func ListProductsBySeller(ctx context.Context, db *sql.DB, sellerID uuid.UUID, includeDeleted bool) ([]models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE seller_id = $1 AND (is_deleted = FALSE OR $2)
		ORDER BY created_at DESC`

	rows, err := db.QueryContext(ctx, query, sellerID, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("list products by seller: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func collectProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return products, nil
}
