package main

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/amaliyev/go-marketplace/internal/models"
	"github.com/amaliyev/go-marketplace/internal/store"
	"github.com/google/uuid"
)

func handleUsers(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		switch r.Method {
		case http.MethodPost:
			var req struct {
				FirstName   string `json:"first_name"`
				LastName    string `json:"last_name"`
				Email       string `json:"email"`
				AccountType string `json:"account_type"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			if req.Email == "" {
				respondError(w, http.StatusBadRequest, "email is required")
				return
			}
			if req.AccountType == "" {
				req.AccountType = models.AccountTypeBuyer
			}
			if req.AccountType != models.AccountTypeBuyer && req.AccountType != models.AccountTypeSeller {
				respondError(w, http.StatusBadRequest, "invalid account_type")
				return
			}

			user, err := store.CreateUser(ctx, db, req.FirstName, req.LastName, req.Email, req.AccountType)
			if err != nil {
				respondStoreError(w, err)
				return
			}

			respondJSON(w, http.StatusCreated, user)

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func handleUserByID(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/users/"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		user, err := store.GetUser(ctx, db, id)
		if err != nil {
			respondStoreError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, user)
	}
}

func handleProfile(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		switch r.Method {
		case http.MethodGet:
			user, err := store.GetUser(ctx, db, userID)
			if err != nil {
				respondStoreError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, user)

		case http.MethodPut:
			var req struct {
				FirstName string `json:"first_name"`
				LastName  string `json:"last_name"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}

			user, err := store.UpdateProfile(ctx, db, userID, req.FirstName, req.LastName)
			if err != nil {
				respondStoreError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, user)

		case http.MethodDelete:
			if err := store.DeactivateUser(ctx, db, userID); err != nil {
				respondStoreError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, map[string]string{"message": "account deactivated"})

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func handleAddresses(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		switch r.Method {
		case http.MethodGet:
			addresses, err := store.ListAddresses(ctx, db, userID)
			if err != nil {
				respondStoreError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, addresses)

		case http.MethodPost:
			req, ok := decodeAddressRequest(w, r)
			if !ok {
				return
			}

			addr, err := store.CreateAddress(ctx, db, userID, req)
			if err != nil {
				respondStoreError(w, err)
				return
			}
			respondJSON(w, http.StatusCreated, addr)

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func handleAddressByID(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/addresses/"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid address ID")
			return
		}

		switch r.Method {
		case http.MethodGet:
			addr, err := store.GetAddress(ctx, db, id, userID)
			if err != nil {
				respondStoreError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, addr)

		case http.MethodPut:
			req, ok := decodeAddressRequest(w, r)
			if !ok {
				return
			}

			addr, err := store.UpdateAddress(ctx, db, id, userID, req)
			if err != nil {
				respondStoreError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, addr)

		case http.MethodDelete:
			if err := store.DeleteAddress(ctx, db, id, userID); err != nil {
				respondStoreError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, map[string]string{"message": "address deleted"})

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func decodeAddressRequest(w http.ResponseWriter, r *http.Request) (store.AddressRequest, bool) {
	var req struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
		City     string `json:"city"`
		Country  string `json:"country"`
		Zipcode  string `json:"zipcode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return store.AddressRequest{}, false
	}
	if req.FullName == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "full_name and email are required")
		return store.AddressRequest{}, false
	}
	return store.AddressRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
		Zipcode:  req.Zipcode,
	}, true
}
