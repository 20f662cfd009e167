// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/option-lattice/internal/valuation"
)

// FindValuation finds a valuation by contract name in the results slice.
// Returns a pointer to the valuation if found, nil otherwise.
func FindValuation(results []valuation.Valuation, name string) *valuation.Valuation {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}
