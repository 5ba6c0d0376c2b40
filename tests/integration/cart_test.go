package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/amaliyev/go-marketplace/internal/database"
	"github.com/amaliyev/go-marketplace/internal/store"
	"github.com/shopspring/decimal"
)

func TestToggleCartItemLifecycle(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := seedUser(t, db, "cart1@example.com")
	seller, category := seedCatalog(t, db, "cart1")
	product := seedProduct(t, db, seller, category, "Cart Widget", decimal.NewFromInt(100), 50)

	mutation, err := store.ToggleCartItem(ctx, db, user.ID, product.Slug, 2)
	if err != nil {
		t.Fatalf("Toggle (add): %v", err)
	}
	if mutation.Outcome != store.CartOutcomeCreated {
		t.Errorf("Expected created, got %s", mutation.Outcome)
	}
	if mutation.Item.Quantity != 2 {
		t.Errorf("Expected quantity 2, got %d", mutation.Item.Quantity)
	}
	if !mutation.Item.Total.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected total 200, got %s", mutation.Item.Total)
	}

	// Last write wins, not additive.
	mutation, err = store.ToggleCartItem(ctx, db, user.ID, product.Slug, 5)
	if err != nil {
		t.Fatalf("Toggle (update): %v", err)
	}
	if mutation.Outcome != store.CartOutcomeUpdated {
		t.Errorf("Expected updated, got %s", mutation.Outcome)
	}
	if mutation.Item.Quantity != 5 {
		t.Errorf("Expected quantity 5, got %d", mutation.Item.Quantity)
	}

	count, err := store.CountUnassignedItems(ctx, db, user.ID)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly one cart line, got %d", count)
	}

	mutation, err = store.ToggleCartItem(ctx, db, user.ID, product.Slug, 0)
	if err != nil {
		t.Fatalf("Toggle (remove): %v", err)
	}
	if mutation.Outcome != store.CartOutcomeRemoved {
		t.Errorf("Expected removed, got %s", mutation.Outcome)
	}
	if mutation.Item != nil {
		t.Errorf("Removed mutation should carry no item")
	}

	count, err = store.CountUnassignedItems(ctx, db, user.ID)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected empty cart, got %d lines", count)
	}

	// Removing an absent line is a no-op, not an error.
	mutation, err = store.ToggleCartItem(ctx, db, user.ID, product.Slug, 0)
	if err != nil {
		t.Fatalf("Toggle (remove absent): %v", err)
	}
	if mutation.Outcome != store.CartOutcomeRemoved {
		t.Errorf("Expected removed, got %s", mutation.Outcome)
	}
}

func TestToggleCartItemUnknownSlug(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	user := seedUser(t, db, "cart2@example.com")

	_, err := store.ToggleCartItem(context.Background(), db, user.ID, "no-such-product", 1)
	if !errors.Is(err, database.ErrProductNotFound) {
		t.Errorf("Expected product not found, got: %v", err)
	}
}

func TestCartTotals(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := seedUser(t, db, "cart3@example.com")
	seller, category := seedCatalog(t, db, "cart3")
	p1 := seedProduct(t, db, seller, category, "Ten Dollar Thing", decimal.RequireFromString("10.00"), 50)
	p2 := seedProduct(t, db, seller, category, "Five Fifty Thing", decimal.RequireFromString("5.50"), 50)

	if _, err := store.ToggleCartItem(ctx, db, user.ID, p1.Slug, 2); err != nil {
		t.Fatalf("Toggle p1: %v", err)
	}
	if _, err := store.ToggleCartItem(ctx, db, user.ID, p2.Slug, 1); err != nil {
		t.Fatalf("Toggle p2: %v", err)
	}

	cart, err := store.ListCartItems(ctx, db, user.ID)
	if err != nil {
		t.Fatalf("List cart: %v", err)
	}

	if len(cart.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(cart.Items))
	}

	expected := decimal.RequireFromString("25.50")
	if !cart.Subtotal.Equal(expected) {
		t.Errorf("Expected subtotal %s, got %s", expected, cart.Subtotal)
	}
}

func TestConcurrentToggleSingleLine(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := seedUser(t, db, "cart4@example.com")
	seller, category := seedCatalog(t, db, "cart4")
	product := seedProduct(t, db, seller, category, "Contended Widget", decimal.NewFromInt(10), 100)

	concurrency := 10
	var wg sync.WaitGroup
	errs := make(chan error, concurrency)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(quantity int) {
			defer wg.Done()
			_, err := store.ToggleCartItem(ctx, db, user.ID, product.Slug, quantity)
			errs <- err
		}(i + 1)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Concurrent toggle failed: %v", err)
		}
	}

	count, err := store.CountUnassignedItems(ctx, db, user.ID)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected a single cart line after concurrent toggles, got %d", count)
	}
}
