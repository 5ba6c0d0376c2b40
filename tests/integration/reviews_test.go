package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/amaliyev/go-marketplace/internal/database"
	"github.com/amaliyev/go-marketplace/internal/store"
	"github.com/shopspring/decimal"
)

func TestReviewLifecycle(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	author := seedUser(t, db, "review1@example.com")
	stranger := seedUser(t, db, "review1-other@example.com")
	seller, category := seedCatalog(t, db, "review1")
	product := seedProduct(t, db, seller, category, "Reviewed Widget", decimal.NewFromInt(10), 5)

	if _, err := store.CreateReview(ctx, db, author.ID, product.Slug, 6, "too good"); !errors.Is(err, store.ErrInvalidRating) {
		t.Errorf("Expected invalid rating error, got: %v", err)
	}

	review, err := store.CreateReview(ctx, db, author.ID, product.Slug, 5, "excellent")
	if err != nil {
		t.Fatalf("Create review: %v", err)
	}

	// Only the author can edit; for anyone else the review reads as missing.
	if _, err := store.UpdateReview(ctx, db, review.ID, stranger.ID, 1, "sabotage"); !errors.Is(err, database.ErrReviewNotFound) {
		t.Errorf("Expected not found for foreign update, got: %v", err)
	}

	updated, err := store.UpdateReview(ctx, db, review.ID, author.ID, 4, "still good")
	if err != nil {
		t.Fatalf("Update review: %v", err)
	}
	if updated.Rating != 4 {
		t.Errorf("Expected rating 4, got %d", updated.Rating)
	}

	reviews, err := store.ListProductReviews(ctx, db, product.Slug)
	if err != nil {
		t.Fatalf("List reviews: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("Expected 1 review, got %d", len(reviews))
	}

	if err := store.SoftDeleteReview(ctx, db, review.ID, author.ID); err != nil {
		t.Fatalf("Delete review: %v", err)
	}

	reviews, err = store.ListProductReviews(ctx, db, product.Slug)
	if err != nil {
		t.Fatalf("List reviews after delete: %v", err)
	}
	if len(reviews) != 0 {
		t.Errorf("Expected no reviews after delete, got %d", len(reviews))
	}

	if _, err := store.GetReview(ctx, db, review.ID); !errors.Is(err, database.ErrReviewNotFound) {
		t.Errorf("Expected not found for deleted review, got: %v", err)
	}
}
