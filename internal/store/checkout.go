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

// Checkout promotes the user's unassigned cart lines into an order.
// Everything runs in one serializable transaction: guards first, then
// stock decrement, order insert and the bulk re-point of the lines.
// Either the order exists with all lines attached or nothing changed.
// A checkout that loses a tx_ref draw race redraws with a fresh code,
// up to the same attempt cap the generator uses.
func Checkout(ctx context.Context, db *sql.DB, userID, shippingID uuid.UUID) (*models.Order, error) {
	for attempt := 0; attempt < txRefMaxAttempts; attempt++ {
		order, err := checkoutOnce(ctx, db, userID, shippingID)
		if isTxRefCollision(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return order, nil
	}
	return nil, database.ErrTxRefExhausted
}

func checkoutOnce(ctx context.Context, db *sql.DB, userID, shippingID uuid.UUID) (*models.Order, error) {
	var order *models.Order

	err := database.WithRetry(ctx, db, database.TxOptions{
		IsolationLevel: sql.LevelSerializable,
		MaxRetries:     3,
	}, func(tx *sql.Tx) error {
		lines, err := lockCartLines(ctx, tx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return database.ErrEmptyCart
		}

		shipping, err := lockShippingAddress(ctx, tx, shippingID, userID)
		if err != nil {
			return err
		}

		txRef, err := generateTxRef(ctx, tx)
		if err != nil {
			return err
		}

		subtotal := decimal.Zero
		for _, line := range lines {
			result, err := tx.ExecContext(ctx,
				`UPDATE products
				 SET in_stock = in_stock - $1,
				     updated_at = NOW()
				 WHERE id = $2
				   AND in_stock >= $1`,
				line.quantity, line.productID)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}

			rowsAffected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("get rows affected: %w", err)
			}
			if rowsAffected == 0 {
				return database.ErrInsufficientStock
			}

			subtotal = subtotal.Add(line.price.Mul(decimal.NewFromInt(int64(line.quantity))))
		}

		order = &models.Order{}
		err = tx.QueryRowContext(ctx,
			`INSERT INTO orders (user_id, tx_ref, delivery_status, payment_status,
				full_name, email, phone, address, city, country, zipcode,
				created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
			 RETURNING id, user_id, tx_ref, delivery_status, payment_status,
				full_name, email, phone, address, city, country, zipcode,
				date_delivered, created_at, updated_at`,
			userID, txRef, models.DeliveryStatusPending, models.PaymentStatusPending,
			shipping.FullName, shipping.Email, shipping.Phone, shipping.Address,
			shipping.City, shipping.Country, shipping.Zipcode).Scan(
			&order.ID,
			&order.UserID,
			&order.TxRef,
			&order.DeliveryStatus,
			&order.PaymentStatus,
			&order.FullName,
			&order.Email,
			&order.Phone,
			&order.Address,
			&order.City,
			&order.Country,
			&order.Zipcode,
			&order.DateDelivered,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		result, err := tx.ExecContext(ctx,
			`UPDATE cart_items
			 SET order_id = $1, updated_at = NOW()
			 WHERE user_id = $2 AND order_id IS NULL`,
			order.ID, userID)
		if err != nil {
			return fmt.Errorf("assign cart items: %w", err)
		}

		assigned, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		if assigned != int64(len(lines)) {
			return fmt.Errorf("assigned %d cart items, locked %d", assigned, len(lines))
		}

		order.Subtotal = subtotal
		order.Total = subtotal

		items, err := loadOrderItems(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		order.Items = items

		return nil
	})

	if err != nil {
		return nil, err
	}

	return order, nil
}

type cartLine struct {
	productID uuid.UUID
	quantity  int
	price     decimal.Decimal
}

// lockCartLines locks the user's unassigned lines and their products.
// Product order is fixed to keep concurrent checkouts from deadlocking
// on overlapping carts.
func lockCartLines(ctx context.Context, tx *sql.Tx, userID uuid.UUID) ([]cartLine, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT ci.product_id, ci.quantity, p.price_current
		 FROM cart_items ci
		 JOIN products p ON p.id = ci.product_id
		 WHERE ci.user_id = $1 AND ci.order_id IS NULL
		 ORDER BY p.id
		 FOR UPDATE OF ci, p`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("lock cart lines: %w", err)
	}
	defer rows.Close()

	var lines []cartLine
	for rows.Next() {
		var line cartLine
		if err := rows.Scan(&line.productID, &line.quantity, &line.price); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return lines, nil
}

func lockShippingAddress(ctx context.Context, tx *sql.Tx, id, userID uuid.UUID) (*models.ShippingAddress, error) {
	shipping := &models.ShippingAddress{}

	// Ownership is part of the lookup: another user's address is
	// reported as missing.
	err := tx.QueryRowContext(ctx,
		`SELECT id, user_id, full_name, email, phone, address, city, country, zipcode,
			created_at, updated_at
		 FROM shipping_addresses
		 WHERE id = $1 AND user_id = $2
		 FOR SHARE`,
		id, userID).Scan(
		&shipping.ID,
		&shipping.UserID,
		&shipping.FullName,
		&shipping.Email,
		&shipping.Phone,
		&shipping.Address,
		&shipping.City,
		&shipping.Country,
		&shipping.Zipcode,
		&shipping.CreatedAt,
		&shipping.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrAddressNotFound
		}
		return nil, fmt.Errorf("lock shipping address: %w", err)
	}

	return shipping, nil
}
