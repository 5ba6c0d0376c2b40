package integration

import (
	"context"
	"testing"

	"github.com/amaliyev/go-marketplace/internal/store"
)

func TestApplySellerKeepsSlugOnReapply(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	owner := seedUser(t, db, "seller-reapply@example.com")

	req := store.ApplySellerRequest{
		BusinessName:      "Reapply Shop",
		IdentificationNum: "123456789",
		PhoneNumber:       "+100000000",
		Description:       "First application",
		BusinessAddress:   "1 Test St",
		City:              "Testville",
		PostalCode:        "00000",
		BankName:          "Test Bank",
		BankBICNumber:     "TESTBIC",
		BankAccountNumber: "000111",
		BankRoutingNumber: "222333",
	}

	first, err := store.ApplySeller(ctx, db, owner.ID, req)
	if err != nil {
		t.Fatalf("Apply seller: %v", err)
	}
	if first.Slug != "reapply-shop" {
		t.Fatalf("Expected slug reapply-shop, got %q", first.Slug)
	}

	req.Description = "Second application"
	second, err := store.ApplySeller(ctx, db, owner.ID, req)
	if err != nil {
		t.Fatalf("Re-apply seller: %v", err)
	}
	if second.Slug != first.Slug {
		t.Errorf("Re-application changed slug from %q to %q", first.Slug, second.Slug)
	}
	if second.ID != first.ID {
		t.Errorf("Re-application created a new row: %v vs %v", first.ID, second.ID)
	}
	if second.Description != "Second application" {
		t.Errorf("Expected refreshed description, got %q", second.Description)
	}
	if second.IsApproved {
		t.Error("Re-application should drop approval back to pending")
	}

	// A renamed business keeps its established storefront URL.
	req.BusinessName = "Renamed Shop"
	third, err := store.ApplySeller(ctx, db, owner.ID, req)
	if err != nil {
		t.Fatalf("Re-apply with new name: %v", err)
	}
	if third.Slug != first.Slug {
		t.Errorf("Rename changed slug from %q to %q", first.Slug, third.Slug)
	}
	if third.BusinessName != "Renamed Shop" {
		t.Errorf("Expected updated business name, got %q", third.BusinessName)
	}
}
