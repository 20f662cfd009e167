package valuation_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/iwvelando/option-lattice/internal/config"
	"github.com/iwvelando/option-lattice/internal/valuation"
	"github.com/iwvelando/option-lattice/pkg/binomial"
	"github.com/iwvelando/option-lattice/pkg/fixed"
	"github.com/iwvelando/option-lattice/pkg/testutil"
	"go.uber.org/zap"
)

func contract(name, optionType, spot string) config.Contract {
	return config.Contract{
		Name:         name,
		Active:       true,
		Type:         optionType,
		Spot:         spot,
		Strike:       "100",
		Volatility:   "0.2",
		RiskFreeRate: "0.05",
		TimeToExpiry: "1",
	}
}

func parsed(t *testing.T, conf config.Configuration) config.Configuration {
	t.Helper()
	if err := conf.ParseContracts(); err != nil {
		t.Fatalf("ParseContracts() error = %v", err)
	}
	return conf
}

func TestGetValuations(t *testing.T) {
	european := contract("european put", "put", "100")
	european.Style = "european"
	deep := contract("deep put", "put", "80")
	deep.Boundary = true
	inactive := contract("inactive", "call", "100")
	inactive.Active = false

	conf := parsed(t, config.Configuration{
		Pricing: config.PricingConfig{Steps: 16, Workers: 2},
		Contracts: []config.Contract{
			contract("atm call", "call", "100"),
			contract("atm put", "put", "100"),
			european,
			inactive,
			deep,
		},
	})

	results, err := valuation.GetValuationsWithRunID(context.Background(), zap.NewNop(), conf, "run-1")
	if err != nil {
		t.Fatalf("GetValuations() error = %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("len(GetValuations()) = %d, expected 4", len(results))
	}

	names := []string{"atm call", "atm put", "european put", "deep put"}
	for i, name := range names {
		if results[i].Name != name {
			t.Errorf("results[%d].Name = %q, expected %q", i, results[i].Name, name)
		}
		if results[i].RunID != "run-1" {
			t.Errorf("results[%d].RunID = %q, expected run-1", i, results[i].RunID)
		}
		if results[i].Steps != 16 {
			t.Errorf("results[%d].Steps = %d, expected 16", i, results[i].Steps)
		}
	}

	atmPut := testutil.FindValuation(results, "atm put")
	expected, err := binomial.PricePutWithSteps(atmPut.Params, 16)
	if err != nil {
		t.Fatalf("PricePutWithSteps() error = %v", err)
	}
	if !atmPut.Price.Equal(expected.Price) || !atmPut.Delta.Equal(expected.Delta) {
		t.Errorf("atm put = %s/%s, expected %s/%s", atmPut.Price, atmPut.Delta, expected.Price, expected.Delta)
	}
	if atmPut.Boundary != nil {
		t.Errorf("atm put boundary should be omitted when not requested")
	}

	europeanPut := testutil.FindValuation(results, "european put")
	if europeanPut.Style != "european" || !europeanPut.EarlyExercisePremium.IsZero() {
		t.Errorf("european put style = %s premium = %s", europeanPut.Style, europeanPut.EarlyExercisePremium)
	}
	if !europeanPut.Price.Equal(europeanPut.EuropeanPrice) {
		t.Errorf("european put price = %s, expected european price %s", europeanPut.Price, europeanPut.EuropeanPrice)
	}
	if europeanPut.Price.GreaterThan(atmPut.Price) {
		t.Errorf("european put %s exceeds american put %s", europeanPut.Price, atmPut.Price)
	}

	deepPut := testutil.FindValuation(results, "deep put")
	if len(deepPut.Boundary) != 16 {
		t.Errorf("deep put boundary length = %d, expected 16", len(deepPut.Boundary))
	}
	if !deepPut.IntrinsicValue.Equal(fixed.FromInt(20)) {
		t.Errorf("deep put intrinsic = %s, expected 20", deepPut.IntrinsicValue)
	}
	if !deepPut.TimeValue.Equal(deepPut.Price.Sub(deepPut.IntrinsicValue)) {
		t.Errorf("deep put time value = %s, expected price - intrinsic", deepPut.TimeValue)
	}
	if !hasNote(deepPut.Notes, "early exercise premium") {
		t.Errorf("deep put notes = %v, expected an early exercise premium note", deepPut.Notes)
	}

	if testutil.FindValuation(results, "inactive") != nil {
		t.Errorf("inactive contract should be skipped")
	}
}

func TestGetValuationsContractSteps(t *testing.T) {
	c := contract("fine", "call", "100")
	c.Steps = 40
	conf := parsed(t, config.Configuration{Contracts: []config.Contract{c, contract("default", "call", "100")}})

	results, err := valuation.GetValuations(context.Background(), nil, conf)
	if err != nil {
		t.Fatalf("GetValuations() error = %v", err)
	}
	if results[0].Steps != 40 || results[1].Steps != 32 {
		t.Errorf("steps = %d/%d, expected 40/32", results[0].Steps, results[1].Steps)
	}
	if results[0].RunID == "" || results[0].RunID != results[1].RunID {
		t.Errorf("run ids = %q/%q, expected one shared generated id", results[0].RunID, results[1].RunID)
	}
}

func TestGetValuationsConvergence(t *testing.T) {
	conf := parsed(t, config.Configuration{
		Pricing:   config.PricingConfig{Steps: 16, Convergence: []int{8, 16, 32}},
		Contracts: []config.Contract{contract("atm put", "put", "100")},
	})

	results, err := valuation.GetValuations(context.Background(), zap.NewNop(), conf)
	if err != nil {
		t.Fatalf("GetValuations() error = %v", err)
	}
	points := results[0].Convergence
	if len(points) != 3 {
		t.Fatalf("len(Convergence) = %d, expected 3", len(points))
	}
	if !points[1].Price.Equal(results[0].Price) {
		t.Errorf("convergence price at 16 = %s, expected valuation price %s", points[1].Price, results[0].Price)
	}
}

func TestGetValuationsSkipsCoarseRungs(t *testing.T) {
	// 0.01 clears r*sqrt(dt) at 32 and 64 steps but not at 8 or 16.
	lowVol := contract("low vol put", "put", "100")
	lowVol.Volatility = "0.01"
	conf := parsed(t, config.Configuration{
		Pricing:   config.PricingConfig{Steps: 64, Convergence: []int{8, 16, 32, 64}},
		Contracts: []config.Contract{lowVol},
	})

	results, err := valuation.GetValuations(context.Background(), zap.NewNop(), conf)
	if err != nil {
		t.Fatalf("GetValuations() error = %v", err)
	}
	points := results[0].Convergence
	if len(points) != 2 || points[0].Steps != 32 || points[1].Steps != 64 {
		t.Fatalf("Convergence = %+v, expected rungs 32 and 64", points)
	}
	if !points[1].Price.Equal(results[0].Price) {
		t.Errorf("Convergence[64].Price = %s, expected %s", points[1].Price, results[0].Price)
	}

	for _, steps := range []string{"rung 8 skipped", "rung 16 skipped"} {
		found := false
		for _, note := range results[0].Notes {
			if strings.Contains(note, steps) {
				found = true
			}
		}
		if !found {
			t.Errorf("Notes = %v, expected a note containing %q", results[0].Notes, steps)
		}
	}
}

func TestGetValuationsImpliedVolatility(t *testing.T) {
	quote := contract("quoted put", "put", "100")
	quote.Volatility = "0.3"
	conf := parsed(t, config.Configuration{
		Pricing:   config.PricingConfig{Steps: 16},
		Contracts: []config.Contract{quote},
	})
	market, err := binomial.PricePutWithSteps(conf.Contracts[0].Params, 16)
	if err != nil {
		t.Fatalf("PricePutWithSteps() error = %v", err)
	}

	calibrated := contract("quoted put", "put", "100")
	calibrated.Volatility = ""
	calibrated.ImpliedVolatility = &config.CalibrationConfig{MarketPrice: market.Price.String(), Tolerance: "0.00001"}
	conf = parsed(t, config.Configuration{
		Pricing:   config.PricingConfig{Steps: 16},
		Contracts: []config.Contract{calibrated},
	})

	results, err := valuation.GetValuations(context.Background(), zap.NewNop(), conf)
	if err != nil {
		t.Fatalf("GetValuations() error = %v", err)
	}
	iv := results[0].ImpliedVolatility
	if iv == nil || !iv.Converged {
		t.Fatalf("ImpliedVolatility = %+v, expected converged result", iv)
	}
	if diff := iv.Volatility.Sub(fixed.MustParse("0.3")).Abs(); diff.GreaterThan(fixed.MustParse("0.0001")) {
		t.Errorf("implied volatility = %s, expected 0.3", iv.Volatility)
	}
	if !results[0].Params.Volatility.Equal(iv.Volatility) {
		t.Errorf("valuation volatility = %s, expected implied %s", results[0].Params.Volatility, iv.Volatility)
	}
}

func TestGetValuationsErrorNamesContract(t *testing.T) {
	bad := contract("bad rate", "put", "100")
	bad.RiskFreeRate = "-0.01"
	conf := parsed(t, config.Configuration{Contracts: []config.Contract{contract("ok", "put", "100"), bad}})

	_, err := valuation.GetValuations(context.Background(), zap.NewNop(), conf)
	if err == nil {
		t.Fatalf("GetValuations() expected error but got none")
	}
	if !errors.Is(err, binomial.ErrInvalidRiskFreeRate) {
		t.Errorf("GetValuations() error = %v, expected ErrInvalidRiskFreeRate", err)
	}
	if !strings.Contains(err.Error(), `contract "bad rate"`) {
		t.Errorf("GetValuations() error = %v, expected it to name the contract", err)
	}
}

func TestGetValuationsCancelled(t *testing.T) {
	conf := parsed(t, config.Configuration{Contracts: []config.Contract{contract("atm put", "put", "100")}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := valuation.GetValuations(ctx, zap.NewNop(), conf); !errors.Is(err, context.Canceled) {
		t.Errorf("GetValuations() error = %v, expected context.Canceled", err)
	}
}

func TestImmediateExerciseNote(t *testing.T) {
	// Far in the money with a high rate: the put is worth exactly its intrinsic value.
	deep := contract("very deep put", "put", "20")
	deep.RiskFreeRate = "0.1"
	conf := parsed(t, config.Configuration{
		Pricing:   config.PricingConfig{Steps: 8},
		Contracts: []config.Contract{deep},
	})

	results, err := valuation.GetValuations(context.Background(), zap.NewNop(), conf)
	if err != nil {
		t.Fatalf("GetValuations() error = %v", err)
	}
	if !results[0].Price.Equal(fixed.FromInt(80)) {
		t.Errorf("very deep put price = %s, expected intrinsic 80", results[0].Price)
	}
	if !hasNote(results[0].Notes, "immediate exercise") {
		t.Errorf("notes = %v, expected an immediate exercise note", results[0].Notes)
	}
}

func hasNote(notes []string, fragment string) bool {
	for _, note := range notes {
		if strings.Contains(note, fragment) {
			return true
		}
	}
	return false
}
