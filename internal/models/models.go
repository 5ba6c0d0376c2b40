package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	AccountType string    `json:"account_type"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	AccountTypeBuyer  = "BUYER"
	AccountTypeSeller = "SELLER"
)

type Seller struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	BusinessName      string    `json:"business_name"`
	Slug              string    `json:"slug"`
	IdentificationNum string    `json:"identification_number"`
	WebsiteURL        string    `json:"website_url,omitempty"`
	PhoneNumber       string    `json:"phone_number"`
	Description       string    `json:"business_description"`
	BusinessAddress   string    `json:"business_address"`
	City              string    `json:"city"`
	PostalCode        string    `json:"postal_code"`
	BankName          string    `json:"bank_name"`
	BankBICNumber     string    `json:"bank_bic_number"`
	BankAccountNumber string    `json:"bank_account_number"`
	BankRoutingNumber string    `json:"bank_routing_number"`
	IsApproved        bool      `json:"is_approved"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Product struct {
	ID           uuid.UUID        `json:"id"`
	SellerID     *uuid.UUID       `json:"seller_id,omitempty"`
	CategoryID   uuid.UUID        `json:"category_id"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	Description  string           `json:"description,omitempty"`
	PriceOld     *decimal.Decimal `json:"price_old,omitempty"`
	PriceCurrent decimal.Decimal  `json:"price_current"`
	InStock      int              `json:"in_stock"`
	IsDeleted    bool             `json:"-"`
	DeletedAt    *time.Time       `json:"-"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type Review struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ShippingAddress struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Zipcode   string    `json:"zipcode"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItem is a single line in a user's cart. While OrderID is nil the
// row is mutable through the cart; once checkout stamps an order id it
// belongs to that order and never changes again.
type CartItem struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	ProductID uuid.UUID       `json:"product_id"`
	OrderID   *uuid.UUID      `json:"order_id,omitempty"`
	Quantity  int             `json:"quantity"`
	Product   *Product        `json:"product,omitempty"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Order carries a point-in-time copy of the shipping address chosen at
// checkout. Later edits to the address book do not touch these fields.
type Order struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	TxRef          string          `json:"tx_ref"`
	DeliveryStatus string          `json:"delivery_status"`
	PaymentStatus  string          `json:"payment_status"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	City           string          `json:"city"`
	Country        string          `json:"country"`
	Zipcode        string          `json:"zipcode"`
	DateDelivered  *time.Time      `json:"date_delivered,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Total          decimal.Decimal `json:"total"`
	Items          []CartItem      `json:"items,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

const (
	DeliveryStatusPending  = "PENDING"
	DeliveryStatusPacking  = "PACKING"
	DeliveryStatusShipping = "SHIPPING"
	DeliveryStatusArriving = "ARRIVING"
	DeliveryStatusSuccess  = "SUCCESS"
)

const (
	PaymentStatusPending    = "PENDING"
	PaymentStatusProcessing = "PROCESSING"
	PaymentStatusSuccessful = "SUCCESSFUL"
	PaymentStatusCancelled  = "CANCELLED"
	PaymentStatusFailed     = "FAILED"
)
