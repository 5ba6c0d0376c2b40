package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"

	"github.com/amaliyev/go-marketplace/internal/database"
	"github.com/lib/pq"
)

const (
	txRefAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	txRefLength      = 12
	txRefMaxAttempts = 5
)

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(txRefAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("draw random char: %w", err)
		}
		buf[i] = txRefAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// isTxRefCollision reports whether err is the unique violation raised
// when two checkouts draw the same code between the existence check and
// the order insert. The loser redraws instead of failing the checkout.
func isTxRefCollision(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) &&
		pqErr.Code == "23505" &&
		pqErr.Constraint == "orders_tx_ref_key"
}

// generateTxRef draws transaction codes until one is free in orders.tx_ref.
// The attempt count is capped; the unique constraint on the column catches
// the losing side of a draw race.
func generateTxRef(ctx context.Context, tx *sql.Tx) (string, error) {
	for attempt := 0; attempt < txRefMaxAttempts; attempt++ {
		code, err := randomCode(txRefLength)
		if err != nil {
			return "", err
		}

		var exists bool
		err = tx.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM orders WHERE tx_ref = $1)",
			code).Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("check tx_ref collision: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", database.ErrTxRefExhausted
}
