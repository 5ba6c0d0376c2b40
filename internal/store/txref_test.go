package store

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lib/pq"
)

func TestRandomCodeLengthAndAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := randomCode(txRefLength)
		if err != nil {
			t.Fatalf("randomCode: %v", err)
		}
		if len(code) != txRefLength {
			t.Fatalf("expected length %d, got %d (%q)", txRefLength, len(code), code)
		}
		for _, c := range code {
			if !strings.ContainsRune(txRefAlphabet, c) {
				t.Fatalf("character %q outside alphabet in %q", c, code)
			}
		}
	}
}

func TestIsTxRefCollision(t *testing.T) {
	collision := &pq.Error{Code: "23505", Constraint: "orders_tx_ref_key"}
	if !isTxRefCollision(collision) {
		t.Error("tx_ref unique violation not detected")
	}
	if !isTxRefCollision(fmt.Errorf("create order: %w", collision)) {
		t.Error("wrapped tx_ref unique violation not detected")
	}

	others := []error{
		nil,
		fmt.Errorf("connection reset"),
		&pq.Error{Code: "23505", Constraint: "sellers_user_id_key"},
		&pq.Error{Code: "40001"},
	}
	for _, err := range others {
		if isTxRefCollision(err) {
			t.Errorf("isTxRefCollision(%v) = true, want false", err)
		}
	}
}

func TestRandomCodeDistinct(t *testing.T) {
	// 36^12 codes; any duplicate in a thousand draws means the
	// generator is broken, not unlucky.
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		code, err := randomCode(txRefLength)
		if err != nil {
			t.Fatalf("randomCode: %v", err)
		}
		if seen[code] {
			t.Fatalf("duplicate code %q after %d draws", code, i)
		}
		seen[code] = true
	}
}
