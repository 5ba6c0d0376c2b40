package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/amaliyev/go-marketplace/internal/database"
	"github.com/amaliyev/go-marketplace/internal/models"
)

func CreateCategory(ctx context.Context, db *sql.DB, name string) (*models.Category, error) {
	category := &models.Category{}

	err := database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		slug, err := uniqueSlug(ctx, tx, "categories", name)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO categories (name, slug, created_at, updated_at)
			VALUES ($1, $2, NOW(), NOW())
			RETURNING id, name, slug, created_at, updated_at`

		err = tx.QueryRowContext(ctx, query, name, slug).Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("create category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

func GetCategoryBySlug(ctx context.Context, db *sql.DB, slug string) (*models.Category, error) {
	category := &models.Category{}

	query := `
		SELECT id, name, slug, created_at, updated_at
		FROM categories
		WHERE slug = $1`

	err := db.QueryRowContext(ctx, query, slug).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	return category, nil
}

func ListCategories(ctx context.Context, db *sql.DB) ([]models.Category, error) {
	query := `
		SELECT id, name, slug, created_at, updated_at
		FROM categories
		ORDER BY name`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return categories, nil
}
