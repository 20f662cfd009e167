package binomial

import (
	"testing"

	"github.com/iwvelando/option-lattice/pkg/fixed"
)

// standardParams is spot=100, strike=100, vol=0.20, rate=0.05, T=1.
func standardParams() OptionParams {
	return OptionParams{
		Spot:         fixed.FromInt(100),
		Strike:       fixed.FromInt(100),
		Volatility:   fixed.MustParse("0.2"),
		RiskFreeRate: fixed.MustParse("0.05"),
		TimeToExpiry: fixed.One,
	}
}

func withSpot(p OptionParams, spot string) OptionParams {
	p.Spot = fixed.MustParse(spot)
	return p
}

func assertWithin(t *testing.T, label string, got, expected fixed.Value, tolerance string) {
	t.Helper()
	tol := fixed.MustParse(tolerance)
	if diff := got.Sub(expected).Abs(); diff.GreaterThan(tol) {
		t.Errorf("%s = %s, expected %s within %s (diff %s)", label, got, expected, tol, diff)
	}
}
