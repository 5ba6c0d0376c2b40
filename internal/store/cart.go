package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/amaliyev/go-marketplace/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartOutcome string

const (
	CartOutcomeCreated CartOutcome = "created"
	CartOutcomeUpdated CartOutcome = "updated"
	CartOutcomeRemoved CartOutcome = "removed"
)

type CartMutation struct {
	Outcome CartOutcome      `json:"outcome"`
	Item    *models.CartItem `json:"item"`
}

// ToggleCartItem upserts the unassigned line for (user, product).
// Quantity zero removes the line; removing an absent line is a no-op.
// A non-zero quantity replaces whatever was stored before.
func ToggleCartItem(ctx context.Context, db *sql.DB, userID uuid.UUID, slug string, quantity int) (*CartMutation, error) {
	product, err := GetProductBySlug(ctx, db, slug)
	if err != nil {
		return nil, err
	}

	if quantity == 0 {
		_, err := db.ExecContext(ctx,
			`DELETE FROM cart_items
			 WHERE user_id = $1 AND product_id = $2 AND order_id IS NULL`,
			userID, product.ID)
		if err != nil {
			return nil, fmt.Errorf("remove cart item: %w", err)
		}
		return &CartMutation{Outcome: CartOutcomeRemoved}, nil
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: product.ID,
		Product:   product,
	}

	// Single-statement upsert against the partial unique index on
	// (user_id, product_id) WHERE order_id IS NULL; concurrent toggles
	// for the same pair serialize on the index instead of racing the
	// read. xmax = 0 distinguishes a fresh insert from an overwrite.
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (user_id, product_id) WHERE order_id IS NULL
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()
		RETURNING id, quantity, created_at, updated_at, (xmax = 0) AS inserted`

	var inserted bool
	err = db.QueryRowContext(ctx, query, userID, product.ID, quantity).Scan(
		&item.ID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
		&inserted,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert cart item: %w", err)
	}

	item.Total = product.PriceCurrent.Mul(decimal.NewFromInt(int64(item.Quantity)))

	outcome := CartOutcomeUpdated
	if inserted {
		outcome = CartOutcomeCreated
	}
	return &CartMutation{Outcome: outcome, Item: item}, nil
}

type Cart struct {
	Items    []models.CartItem `json:"items"`
	Subtotal decimal.Decimal   `json:"subtotal"`
}

func ListCartItems(ctx context.Context, db *sql.DB, userID uuid.UUID) (*Cart, error) {
	query := `
		SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
		       ` + prefixedProductColumns("p") + `
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1 AND ci.order_id IS NULL
		ORDER BY ci.created_at`

	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	cart := &Cart{Subtotal: decimal.Zero}
	for rows.Next() {
		item, err := scanCartItemWithProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		cart.Items = append(cart.Items, *item)
		cart.Subtotal = cart.Subtotal.Add(item.Total)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return cart, nil
}

// CountUnassignedItems reports the size of a user's open cart.
func CountUnassignedItems(ctx context.Context, db *sql.DB, userID uuid.UUID) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cart_items WHERE user_id = $1 AND order_id IS NULL`,
		userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count cart items: %w", err)
	}
	return count, nil
}

func prefixedProductColumns(alias string) string {
	return alias + `.id, ` + alias + `.seller_id, ` + alias + `.category_id, ` +
		alias + `.name, ` + alias + `.slug, ` + alias + `.description, ` +
		alias + `.price_old, ` + alias + `.price_current, ` + alias + `.in_stock, ` +
		alias + `.created_at, ` + alias + `.updated_at`
}

func scanCartItemWithProduct(rows *sql.Rows) (*models.CartItem, error) {
	item := &models.CartItem{}
	product := &models.Product{}
	var sellerID uuid.NullUUID
	var priceOld decimal.NullDecimal

	err := rows.Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
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

	item.Product = product
	item.Total = product.PriceCurrent.Mul(decimal.NewFromInt(int64(item.Quantity)))
	return item, nil
}
