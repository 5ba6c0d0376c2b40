package integration

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/amaliyev/go-marketplace/internal/models"
	"github.com/amaliyev/go-marketplace/internal/store"
	"github.com/shopspring/decimal"
)

func seedUser(t *testing.T, db *sql.DB, email string) *models.User {
	t.Helper()

	user, err := store.CreateUser(context.Background(), db, "Test", "User", email, models.AccountTypeBuyer)
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}
	return user
}

// seedCatalog creates a seller (with backing user) and a category,
// both named off tag to stay clear of unique constraints across tests.
func seedCatalog(t *testing.T, db *sql.DB, tag string) (*models.Seller, *models.Category) {
	t.Helper()
	ctx := context.Background()

	owner := seedUser(t, db, fmt.Sprintf("seller-%s@example.com", tag))

	seller, err := store.ApplySeller(ctx, db, owner.ID, store.ApplySellerRequest{
		BusinessName:      "Shop " + tag,
		IdentificationNum: "123456789",
		PhoneNumber:       "+100000000",
		Description:       "Test shop",
		BusinessAddress:   "1 Test St",
		City:              "Testville",
		PostalCode:        "00000",
		BankName:          "Test Bank",
		BankBICNumber:     "TESTBIC",
		BankAccountNumber: "000111",
		BankRoutingNumber: "222333",
	})
	if err != nil {
		t.Fatalf("Apply seller: %v", err)
	}

	category, err := store.CreateCategory(ctx, db, "Category "+tag)
	if err != nil {
		t.Fatalf("Create category: %v", err)
	}

	return seller, category
}

func seedProduct(t *testing.T, db *sql.DB, seller *models.Seller, category *models.Category, name string, price decimal.Decimal, stock int) *models.Product {
	t.Helper()

	product, err := store.CreateProduct(context.Background(), db, store.CreateProductRequest{
		SellerID:     seller.ID,
		CategoryID:   category.ID,
		Name:         name,
		Description:  "Test product",
		PriceCurrent: price,
		InStock:      stock,
	})
	if err != nil {
		t.Fatalf("Create product %s: %v", name, err)
	}
	return product
}

func seedAddress(t *testing.T, db *sql.DB, user *models.User) *models.ShippingAddress {
	t.Helper()

	addr, err := store.CreateAddress(context.Background(), db, user.ID, store.AddressRequest{
		FullName: "Test User",
		Email:    user.Email,
		Phone:    "+100000001",
		Address:  "2 Delivery Ln",
		City:     "Testville",
		Country:  "Testland",
		Zipcode:  "11111",
	})
	if err != nil {
		t.Fatalf("Create address: %v", err)
	}
	return addr
}
