package main

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/amaliyev/go-marketplace/internal/metrics"
	"github.com/amaliyev/go-marketplace/internal/store"
	"github.com/google/uuid"
)

func handleCart(db *sql.DB, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		switch r.Method {
		case http.MethodGet:
			cart, err := store.ListCartItems(ctx, db, userID)
			if err != nil {
				respondStoreError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, cart)

		case http.MethodPost:
			var req struct {
				Slug     string `json:"slug"`
				Quantity *int   `json:"quantity"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			if req.Slug == "" || req.Quantity == nil || *req.Quantity < 0 {
				respondError(w, http.StatusBadRequest, "slug and a non-negative quantity are required")
				return
			}

			mutation, err := store.ToggleCartItem(ctx, db, userID, req.Slug, *req.Quantity)
			if err != nil {
				respondStoreError(w, err)
				return
			}

			m.CartOps.WithLabelValues(string(mutation.Outcome)).Inc()

			status := http.StatusOK
			if mutation.Outcome == store.CartOutcomeCreated {
				status = http.StatusCreated
			}
			respondJSON(w, status, mutation)

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func handleCheckout(db *sql.DB, m *metrics.Metrics) http.HandlerFunc {
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
			ShippingID uuid.UUID `json:"shipping_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ShippingID == uuid.Nil {
			respondError(w, http.StatusBadRequest, "shipping_id is required")
			return
		}

		order, err := store.Checkout(ctx, db, userID, req.ShippingID)
		if err != nil {
			respondStoreError(w, err)
			return
		}

		m.OrdersMade.Inc()
		respondJSON(w, http.StatusOK, order)
	}
}

func handleOrders(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if r.Method != http.MethodGet {
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		limit := queryInt(r, "limit", 20)
		if limit < 1 || limit > 100 {
			limit = 20
		}

		result, err := store.ListOrdersCursor(ctx, db, userID, r.URL.Query().Get("cursor"), limit)
		if err != nil {
			respondStoreError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

func handleOrderByID(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/orders/"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid order ID")
			return
		}

		order, err := store.GetOrder(ctx, db, id, userID)
		if err != nil {
			respondStoreError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, order)
	}
}
