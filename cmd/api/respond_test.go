package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amaliyev/go-marketplace/internal/database"
	"github.com/amaliyev/go-marketplace/internal/store"
)

func TestRespondStoreError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"product not found", database.ErrProductNotFound, http.StatusNotFound},
		{"empty cart", database.ErrEmptyCart, http.StatusNotFound},
		{"insufficient stock", database.ErrInsufficientStock, http.StatusConflict},
		{"invalid rating", store.ErrInvalidRating, http.StatusBadRequest},
		{"invalid cursor", store.ErrInvalidCursor, http.StatusBadRequest},
		{
			"wrapped invalid cursor",
			fmt.Errorf("decode cursor: %w", store.ErrInvalidCursor),
			http.StatusBadRequest,
		},
		{"unknown", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			respondStoreError(w, tt.err)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
