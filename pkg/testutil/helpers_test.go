package testutil

import (
	"testing"

	"github.com/iwvelando/option-lattice/internal/valuation"
	"github.com/iwvelando/option-lattice/pkg/fixed"
)

func TestFindValuation(t *testing.T) {
	results := []valuation.Valuation{
		{Name: "atm call", Price: fixed.MustParse("10.45")},
		{Name: "atm put", Price: fixed.MustParse("6.09")},
		{Name: "deep put", Price: fixed.FromInt(20)},
	}

	tests := []struct {
		name     string
		search   string
		expected string
		found    bool
	}{
		{"First entry", "atm call", "10.45", true},
		{"Last entry", "deep put", "20", true},
		{"Missing", "straddle", "", false},
		{"Case sensitive", "ATM PUT", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindValuation(results, tt.search)
			if (got != nil) != tt.found {
				t.Fatalf("FindValuation(%q) found = %t, expected %t", tt.search, got != nil, tt.found)
			}
			if got != nil && got.Price.String() != tt.expected {
				t.Errorf("FindValuation(%q).Price = %s, expected %s", tt.search, got.Price, tt.expected)
			}
		})
	}
}

func TestFindValuationReturnsPointerIntoSlice(t *testing.T) {
	results := []valuation.Valuation{{Name: "a"}}
	FindValuation(results, "a").Notes = []string{"updated"}
	if len(results[0].Notes) != 1 {
		t.Errorf("FindValuation() should return a pointer into the results slice")
	}
}

func TestFindValuationEmpty(t *testing.T) {
	if FindValuation(nil, "a") != nil {
		t.Errorf("FindValuation(nil) should return nil")
	}
}
