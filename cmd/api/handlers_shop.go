package main

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/amaliyev/go-marketplace/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func handleSellers(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if r.Method != http.MethodPost {
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req struct {
			BusinessName      string `json:"business_name"`
			IdentificationNum string `json:"identification_number"`
			WebsiteURL        string `json:"website_url"`
			PhoneNumber       string `json:"phone_number"`
			Description       string `json:"business_description"`
			BusinessAddress   string `json:"business_address"`
			City              string `json:"city"`
			PostalCode        string `json:"postal_code"`
			BankName          string `json:"bank_name"`
			BankBICNumber     string `json:"bank_bic_number"`
			BankAccountNumber string `json:"bank_account_number"`
			BankRoutingNumber string `json:"bank_routing_number"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.BusinessName == "" {
			respondError(w, http.StatusBadRequest, "business_name is required")
			return
		}

		seller, err := store.ApplySeller(ctx, db, userID, store.ApplySellerRequest{
			BusinessName:      req.BusinessName,
			IdentificationNum: req.IdentificationNum,
			WebsiteURL:        req.WebsiteURL,
			PhoneNumber:       req.PhoneNumber,
			Description:       req.Description,
			BusinessAddress:   req.BusinessAddress,
			City:              req.City,
			PostalCode:        req.PostalCode,
			BankName:          req.BankName,
			BankBICNumber:     req.BankBICNumber,
			BankAccountNumber: req.BankAccountNumber,
			BankRoutingNumber: req.BankRoutingNumber,
		})
		if err != nil {
			respondStoreError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, seller)
	}
}

// handleSellerBySlug serves /sellers/{slug}/products. A seller asking
// for their own listing may pass include_deleted=true to see
// soft-deleted inventory.
func handleSellerBySlug(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rest := strings.TrimPrefix(r.URL.Path, "/sellers/")
		slug, tail, _ := strings.Cut(rest, "/")
		if slug == "" || tail != "products" || r.Method != http.MethodGet {
			respondError(w, http.StatusNotFound, "Not found")
			return
		}

		seller, err := store.GetSellerBySlug(ctx, db, slug)
		if err != nil {
			respondStoreError(w, err)
			return
		}

		includeDeleted := false
		if r.URL.Query().Get("include_deleted") == "true" {
			userID, ok := requireUser(w, r)
			if !ok {
				return
			}
			if seller.UserID != userID {
				respondError(w, http.StatusForbidden, "not your inventory")
				return
			}
			includeDeleted = true
		}

		products, err := store.ListProductsBySeller(ctx, db, seller.ID, includeDeleted)
		if err != nil {
			respondStoreError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, products)
	}
}

func handleCategories(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		switch r.Method {
		case http.MethodGet:
			categories, err := store.ListCategories(ctx, db)
			if err != nil {
				respondStoreError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, categories)

		case http.MethodPost:
			var req struct {
				Name string `json:"name"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
				respondError(w, http.StatusBadRequest, "name is required")
				return
			}

			category, err := store.CreateCategory(ctx, db, req.Name)
			if err != nil {
				respondStoreError(w, err)
				return
			}
			respondJSON(w, http.StatusCreated, category)

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func handleCategoryBySlug(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		slug := strings.TrimPrefix(r.URL.Path, "/categories/")
		if slug == "" || r.Method != http.MethodGet {
			respondError(w, http.StatusNotFound, "Not found")
			return
		}

		category, err := store.GetCategoryBySlug(ctx, db, slug)
		if err != nil {
			respondStoreError(w, err)
			return
		}

		products, err := store.ListProductsByCategory(ctx, db, category.ID)
		if err != nil {
			respondStoreError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"category": category,
			"products": products,
		})
	}
}

func handleProducts(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		switch r.Method {
		case http.MethodGet:
			page, pageSize := parsePage(r)
			result, err := store.ListProducts(ctx, db, page, pageSize)
			if err != nil {
				respondStoreError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, result)

		case http.MethodPost:
			userID, ok := requireUser(w, r)
			if !ok {
				return
			}

			seller, err := store.GetSellerByUser(ctx, db, userID)
			if err != nil {
				respondStoreError(w, err)
				return
			}
			if !seller.IsApproved {
				respondError(w, http.StatusForbidden, "seller is not approved")
				return
			}

			var req struct {
				CategoryID   uuid.UUID `json:"category_id"`
				Name         string    `json:"name"`
				Description  string    `json:"description"`
				PriceCurrent float64   `json:"price_current"`
				InStock      int       `json:"in_stock"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			if req.Name == "" || req.PriceCurrent < 0 || req.InStock < 0 {
				respondError(w, http.StatusBadRequest, "invalid product fields")
				return
			}

			product, err := store.CreateProduct(ctx, db, store.CreateProductRequest{
				SellerID:     seller.ID,
				CategoryID:   req.CategoryID,
				Name:         req.Name,
				Description:  req.Description,
				PriceCurrent: decimal.NewFromFloat(req.PriceCurrent),
				InStock:      req.InStock,
			})
			if err != nil {
				respondStoreError(w, err)
				return
			}
			respondJSON(w, http.StatusCreated, product)

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

// handleProductBySlug serves /products/{slug} and /products/{slug}/reviews.
func handleProductBySlug(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rest := strings.TrimPrefix(r.URL.Path, "/products/")
		slug, tail, _ := strings.Cut(rest, "/")
		if slug == "" {
			respondError(w, http.StatusNotFound, "Not found")
			return
		}

		if tail == "reviews" {
			handleProductReviews(w, r, db, slug)
			return
		}
		if tail != "" {
			respondError(w, http.StatusNotFound, "Not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			product, err := store.GetProductBySlug(ctx, db, slug)
			if err != nil {
				respondStoreError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, product)

		case http.MethodPut:
			userID, ok := requireUser(w, r)
			if !ok {
				return
			}
			seller, err := store.GetSellerByUser(ctx, db, userID)
			if err != nil {
				respondStoreError(w, err)
				return
			}

			var req struct {
				Name         string  `json:"name"`
				Description  string  `json:"description"`
				PriceCurrent float64 `json:"price_current"`
				InStock      int     `json:"in_stock"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			if req.Name == "" || req.PriceCurrent < 0 || req.InStock < 0 {
				respondError(w, http.StatusBadRequest, "invalid product fields")
				return
			}

			product, err := store.UpdateProduct(ctx, db, slug, seller.ID, store.UpdateProductRequest{
				Name:         req.Name,
				Description:  req.Description,
				PriceCurrent: decimal.NewFromFloat(req.PriceCurrent),
				InStock:      req.InStock,
			})
			if err != nil {
				respondStoreError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, product)

		case http.MethodDelete:
			userID, ok := requireUser(w, r)
			if !ok {
				return
			}
			seller, err := store.GetSellerByUser(ctx, db, userID)
			if err != nil {
				respondStoreError(w, err)
				return
			}

			if err := store.SoftDeleteProduct(ctx, db, slug, seller.ID); err != nil {
				respondStoreError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func handleProductReviews(w http.ResponseWriter, r *http.Request, db *sql.DB, slug string) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		reviews, err := store.ListProductReviews(ctx, db, slug)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, reviews)

	case http.MethodPost:
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req struct {
			Rating int    `json:"rating"`
			Text   string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		review, err := store.CreateReview(ctx, db, userID, slug, req.Rating, req.Text)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, review)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func handleReviewByID(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/reviews/"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid review ID")
			return
		}

		switch r.Method {
		case http.MethodGet:
			review, err := store.GetReview(ctx, db, id)
			if err != nil {
				respondStoreError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, review)

		case http.MethodPut:
			userID, ok := requireUser(w, r)
			if !ok {
				return
			}

			var req struct {
				Rating int    `json:"rating"`
				Text   string `json:"text"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}

			review, err := store.UpdateReview(ctx, db, id, userID, req.Rating, req.Text)
			if err != nil {
				respondStoreError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, review)

		case http.MethodDelete:
			userID, ok := requireUser(w, r)
			if !ok {
				return
			}

			if err := store.SoftDeleteReview(ctx, db, id, userID); err != nil {
				respondStoreError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, map[string]string{"message": "review deleted"})

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}
