package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/amaliyev/go-marketplace/internal/database"
	"github.com/amaliyev/go-marketplace/internal/models"
	"github.com/google/uuid"
)

var ErrInvalidRating = fmt.Errorf("rating must be between 1 and 5")

func CreateReview(ctx context.Context, db *sql.DB, userID uuid.UUID, productSlug string, rating int, text string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	product, err := GetProductBySlug(ctx, db, productSlug)
	if err != nil {
		return nil, err
	}

	review := &models.Review{}

	query := `
		INSERT INTO reviews (user_id, product_id, rating, text, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW(), NOW())
		RETURNING id, user_id, product_id, rating, text, created_at, updated_at`

	err = db.QueryRowContext(ctx, query, userID, product.ID, rating, text).Scan(
		&review.ID,
		&review.UserID,
		&review.ProductID,
		&review.Rating,
		&review.Text,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	return review, nil
}

func GetReview(ctx context.Context, db *sql.DB, id uuid.UUID) (*models.Review, error) {
	review := &models.Review{}

	query := `
		SELECT id, user_id, product_id, rating, text, created_at, updated_at
		FROM reviews
		WHERE id = $1 AND is_deleted = FALSE`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&review.ID,
		&review.UserID,
		&review.ProductID,
		&review.Rating,
		&review.Text,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrReviewNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	return review, nil
}

// UpdateReview is owner-scoped; editing someone else's review reads as
// not found.
func UpdateReview(ctx context.Context, db *sql.DB, id, userID uuid.UUID, rating int, text string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	review := &models.Review{}

	query := `
		UPDATE reviews
		SET rating = $1, text = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4 AND is_deleted = FALSE
		RETURNING id, user_id, product_id, rating, text, created_at, updated_at`

	err := db.QueryRowContext(ctx, query, rating, text, id, userID).Scan(
		&review.ID,
		&review.UserID,
		&review.ProductID,
		&review.Rating,
		&review.Text,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrReviewNotFound
		}
		return nil, fmt.Errorf("update review: %w", err)
	}

	return review, nil
}

func SoftDeleteReview(ctx context.Context, db *sql.DB, id, userID uuid.UUID) error {
	result, err := db.ExecContext(ctx,
		`UPDATE reviews
		 SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND user_id = $2 AND is_deleted = FALSE`,
		id, userID)
	if err != nil {
		return fmt.Errorf("soft delete review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrReviewNotFound
	}

	return nil
}

func ListProductReviews(ctx context.Context, db *sql.DB, productSlug string) ([]models.Review, error) {
	product, err := GetProductBySlug(ctx, db, productSlug)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, product_id, rating, text, created_at, updated_at
		FROM reviews
		WHERE product_id = $1 AND is_deleted = FALSE
		ORDER BY created_at DESC`

	rows, err := db.QueryContext(ctx, query, product.ID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.ProductID,
			&review.Rating,
			&review.Text,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return reviews, nil
}
