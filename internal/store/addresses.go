package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/amaliyev/go-marketplace/internal/database"
	"github.com/amaliyev/go-marketplace/internal/models"
	"github.com/google/uuid"
)

type AddressRequest struct {
	FullName string
	Email    string
	Phone    string
	Address  string
	City     string
	Country  string
	Zipcode  string
}

const addressColumns = `id, user_id, full_name, email, phone, address, city, country, zipcode,
		created_at, updated_at`

func scanAddress(row *sql.Row) (*models.ShippingAddress, error) {
	addr := &models.ShippingAddress{}
	err := row.Scan(
		&addr.ID,
		&addr.UserID,
		&addr.FullName,
		&addr.Email,
		&addr.Phone,
		&addr.Address,
		&addr.City,
		&addr.Country,
		&addr.Zipcode,
		&addr.CreatedAt,
		&addr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return addr, nil
}

func CreateAddress(ctx context.Context, db *sql.DB, userID uuid.UUID, req AddressRequest) (*models.ShippingAddress, error) {
	query := `
		INSERT INTO shipping_addresses (user_id, full_name, email, phone, address, city, country, zipcode,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + addressColumns

	addr, err := scanAddress(db.QueryRowContext(ctx, query,
		userID, req.FullName, req.Email, req.Phone, req.Address, req.City, req.Country, req.Zipcode))
	if err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}

	return addr, nil
}

func GetAddress(ctx context.Context, db *sql.DB, id, userID uuid.UUID) (*models.ShippingAddress, error) {
	query := `SELECT ` + addressColumns + ` FROM shipping_addresses WHERE id = $1 AND user_id = $2`

	addr, err := scanAddress(db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrAddressNotFound
		}
		return nil, fmt.Errorf("get address: %w", err)
	}

	return addr, nil
}

func UpdateAddress(ctx context.Context, db *sql.DB, id, userID uuid.UUID, req AddressRequest) (*models.ShippingAddress, error) {
	query := `
		UPDATE shipping_addresses
		SET full_name = $1, email = $2, phone = $3, address = $4,
		    city = $5, country = $6, zipcode = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
		RETURNING ` + addressColumns

	addr, err := scanAddress(db.QueryRowContext(ctx, query,
		req.FullName, req.Email, req.Phone, req.Address, req.City, req.Country, req.Zipcode,
		id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrAddressNotFound
		}
		return nil, fmt.Errorf("update address: %w", err)
	}

	return addr, nil
}

func DeleteAddress(ctx context.Context, db *sql.DB, id, userID uuid.UUID) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM shipping_addresses WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrAddressNotFound
	}

	return nil
}

func ListAddresses(ctx context.Context, db *sql.DB, userID uuid.UUID) ([]models.ShippingAddress, error) {
	query := `SELECT ` + addressColumns + `
		FROM shipping_addresses
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	var addresses []models.ShippingAddress
	for rows.Next() {
		var addr models.ShippingAddress
		err := rows.Scan(
			&addr.ID,
			&addr.UserID,
			&addr.FullName,
			&addr.Email,
			&addr.Phone,
			&addr.Address,
			&addr.City,
			&addr.Country,
			&addr.Zipcode,
			&addr.CreatedAt,
			&addr.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, addr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return addresses, nil
}
