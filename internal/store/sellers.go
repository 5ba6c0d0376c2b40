package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/amaliyev/go-marketplace/internal/database"
	"github.com/amaliyev/go-marketplace/internal/models"
	"github.com/google/uuid"
)

type ApplySellerRequest struct {
	BusinessName      string
	IdentificationNum string
	WebsiteURL        string
	PhoneNumber       string
	Description       string
	BusinessAddress   string
	City              string
	PostalCode        string
	BankName          string
	BankBICNumber     string
	BankAccountNumber string
	BankRoutingNumber string
}

const sellerColumns = `id, user_id, business_name, slug, identification_number, website_url,
		phone_number, business_description, business_address, city, postal_code,
		bank_name, bank_bic_number, bank_account_number, bank_routing_number,
		is_approved, created_at, updated_at`

func scanSeller(row *sql.Row) (*models.Seller, error) {
	seller := &models.Seller{}
	err := row.Scan(
		&seller.ID,
		&seller.UserID,
		&seller.BusinessName,
		&seller.Slug,
		&seller.IdentificationNum,
		&seller.WebsiteURL,
		&seller.PhoneNumber,
		&seller.Description,
		&seller.BusinessAddress,
		&seller.City,
		&seller.PostalCode,
		&seller.BankName,
		&seller.BankBICNumber,
		&seller.BankAccountNumber,
		&seller.BankRoutingNumber,
		&seller.IsApproved,
		&seller.CreatedAt,
		&seller.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return seller, nil
}

// ApplySeller creates or refreshes the seller record for a user. A
// re-application overwrites the business details and drops approval
// back to pending review. The slug is minted once, on first
// application, so storefront URLs stay stable across re-applications.
func ApplySeller(ctx context.Context, db *sql.DB, userID uuid.UUID, req ApplySellerRequest) (*models.Seller, error) {
	var seller *models.Seller

	err := database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		var slug string
		err := tx.QueryRowContext(ctx,
			`SELECT slug FROM sellers WHERE user_id = $1`, userID).Scan(&slug)
		if err == sql.ErrNoRows {
			slug, err = uniqueSlug(ctx, tx, "sellers", req.BusinessName)
		}
		if err != nil {
			return fmt.Errorf("resolve seller slug: %w", err)
		}

		query := `
			INSERT INTO sellers (user_id, business_name, slug, identification_number, website_url,
				phone_number, business_description, business_address, city, postal_code,
				bank_name, bank_bic_number, bank_account_number, bank_routing_number,
				is_approved, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, FALSE, NOW(), NOW())
			ON CONFLICT (user_id) DO UPDATE SET
				business_name = EXCLUDED.business_name,
				identification_number = EXCLUDED.identification_number,
				website_url = EXCLUDED.website_url,
				phone_number = EXCLUDED.phone_number,
				business_description = EXCLUDED.business_description,
				business_address = EXCLUDED.business_address,
				city = EXCLUDED.city,
				postal_code = EXCLUDED.postal_code,
				bank_name = EXCLUDED.bank_name,
				bank_bic_number = EXCLUDED.bank_bic_number,
				bank_account_number = EXCLUDED.bank_account_number,
				bank_routing_number = EXCLUDED.bank_routing_number,
				is_approved = FALSE,
				updated_at = NOW()
			RETURNING ` + sellerColumns

		seller, err = scanSeller(tx.QueryRowContext(ctx, query,
			userID, req.BusinessName, slug, req.IdentificationNum, req.WebsiteURL,
			req.PhoneNumber, req.Description, req.BusinessAddress, req.City, req.PostalCode,
			req.BankName, req.BankBICNumber, req.BankAccountNumber, req.BankRoutingNumber))
		if err != nil {
			return fmt.Errorf("apply seller: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return seller, nil
}

func GetSellerBySlug(ctx context.Context, db *sql.DB, slug string) (*models.Seller, error) {
	query := `SELECT ` + sellerColumns + ` FROM sellers WHERE slug = $1`

	seller, err := scanSeller(db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrSellerNotFound
		}
		return nil, fmt.Errorf("get seller: %w", err)
	}

	return seller, nil
}

func GetSellerByUser(ctx context.Context, db *sql.DB, userID uuid.UUID) (*models.Seller, error) {
	query := `SELECT ` + sellerColumns + ` FROM sellers WHERE user_id = $1`

	seller, err := scanSeller(db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrSellerNotFound
		}
		return nil, fmt.Errorf("get seller by user: %w", err)
	}

	return seller, nil
}
