package fixed

import (
	"errors"
	"math/big"
	"testing"
)

func TestParseAndRaw(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Integer", "1", "1000000000000000000"},
		{"Fraction", "0.05", "50000000000000000"},
		{"Negative", "-2.5", "-2500000000000000000"},
		{"Smallest unit", "0.000000000000000001", "1"},
		{"Excess digits truncated", "1.0000000000000000009", "1000000000000000000"},
		{"Excess negative digits truncated", "-0.0000000000000000009", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error = %v", tt.input, err)
			}
			if got := v.Raw().String(); got != tt.expected {
				t.Errorf("Parse(%q).Raw() = %s, expected %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("abc"); !errors.Is(err, ErrSyntax) {
		t.Errorf("Parse(abc) error = %v, expected ErrSyntax", err)
	}
	if _, err := ParseRaw("12x"); !errors.Is(err, ErrSyntax) {
		t.Errorf("ParseRaw(12x) error = %v, expected ErrSyntax", err)
	}
	huge := new(big.Int).Lsh(big.NewInt(1), 256).String()
	if _, err := ParseRaw(huge); !errors.Is(err, ErrOverflow) {
		t.Errorf("ParseRaw(2^256) error = %v, expected ErrOverflow", err)
	}
}

func TestRawRoundTrip(t *testing.T) {
	v, err := ParseRaw("100000000000000000000")
	if err != nil {
		t.Fatalf("ParseRaw() unexpected error = %v", err)
	}
	if !v.Equal(FromInt(100)) {
		t.Errorf("ParseRaw(1e20) = %s, expected 100", v)
	}
	if got := FromRaw(v.Raw()); !got.Equal(v) {
		t.Errorf("FromRaw(Raw()) = %s, expected %s", got, v)
	}
	if !FromRaw(nil).IsZero() {
		t.Errorf("FromRaw(nil) should be zero")
	}
}

func TestMulTruncatesTowardZero(t *testing.T) {
	tiny := MustParse("0.000000000000000001")
	half := MustParse("0.5")
	tests := []struct {
		name     string
		a, b     Value
		expected Value
	}{
		{"Exact product", MustParse("0.1"), MustParse("0.2"), MustParse("0.02")},
		{"Positive truncation", tiny, half, Zero},
		{"Negative truncation", tiny.Neg(), half, Zero},
		{"Three units times half", MustParse("0.000000000000000003"), half, tiny},
		{"Negative three units times half", MustParse("-0.000000000000000003"), half, tiny.Neg()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Mul(tt.b); !got.Equal(tt.expected) {
				t.Errorf("%s.Mul(%s) = %s, expected %s", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestDiv(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Value
		expected string
	}{
		{"One third", One, FromInt(3), "0.333333333333333333"},
		{"Negative one third", One.Neg(), FromInt(3), "-0.333333333333333333"},
		{"Negative divisor", One, FromInt(-3), "-0.333333333333333333"},
		{"Two thirds", Two, FromInt(3), "0.666666666666666666"},
		{"Exact", FromInt(1), FromInt(10), "0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Div(tt.b)
			if err != nil {
				t.Fatalf("Div() unexpected error = %v", err)
			}
			if got.String() != tt.expected {
				t.Errorf("%s.Div(%s) = %s, expected %s", tt.a, tt.b, got, tt.expected)
			}
		})
	}

	if _, err := One.Div(Zero); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Div(0) error = %v, expected ErrDivisionByZero", err)
	}
}

func TestPowInt(t *testing.T) {
	got, err := Two.PowInt(10)
	if err != nil {
		t.Fatalf("PowInt() unexpected error = %v", err)
	}
	if !got.Equal(FromInt(1024)) {
		t.Errorf("2.PowInt(10) = %s, expected 1024", got)
	}

	got, err = MustParse("1.5").PowInt(0)
	if err != nil || !got.Equal(One) {
		t.Errorf("1.5.PowInt(0) = %s, %v, expected 1", got, err)
	}

	if _, err := FromInt(10).PowInt(58); err != nil {
		t.Errorf("10.PowInt(58) unexpected error = %v", err)
	}
	if _, err := FromInt(10).PowInt(59); !errors.Is(err, ErrOverflow) {
		t.Errorf("10.PowInt(59) error = %v, expected ErrOverflow", err)
	}
	if _, err := Two.PowInt(-1); err == nil {
		t.Errorf("PowInt(-1) expected error but got none")
	}
}

func TestExp(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected Value
	}{
		{"Zero", Zero, One},
		{"One", One, MustParse("2.718281828459045235")},
		{"Small", MustParse("0.1"), MustParse("1.105170918075647624")},
		{"Below underflow threshold", FromInt(-50), Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.Exp()
			if err != nil {
				t.Fatalf("Exp(%s) unexpected error = %v", tt.input, err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("Exp(%s) = %s, expected %s", tt.input, got, tt.expected)
			}
		})
	}

	got, err := One.Neg().Exp()
	if err != nil {
		t.Fatalf("Exp(-1) unexpected error = %v", err)
	}
	if diff := got.Sub(MustParse("0.367879441171442321")).Abs(); diff.GreaterThan(MustParse("0.000000000000000001")) {
		t.Errorf("Exp(-1) = %s, off by %s", got, diff)
	}

	if _, err := FromInt(134).Exp(); !errors.Is(err, ErrOverflow) {
		t.Errorf("Exp(134) error = %v, expected ErrOverflow", err)
	}
}

func TestExpDeterministic(t *testing.T) {
	x := MustParse("0.035355339059327376")
	first, err := x.Exp()
	if err != nil {
		t.Fatalf("Exp() unexpected error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := x.Exp()
		if err != nil {
			t.Fatalf("Exp() unexpected error = %v", err)
		}
		if again.Raw().Cmp(first.Raw()) != 0 {
			t.Fatalf("Exp() not deterministic: %s != %s", again, first)
		}
	}
}

func TestSqrt(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected string
	}{
		{"Perfect square", FromInt(4), "2"},
		{"Two", Two, "1.414213562373095048"},
		{"Tenth", MustParse("0.1"), "0.316227766016837933"},
		{"Zero", Zero, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.Sqrt()
			if err != nil {
				t.Fatalf("Sqrt(%s) unexpected error = %v", tt.input, err)
			}
			if got.String() != tt.expected {
				t.Errorf("Sqrt(%s) = %s, expected %s", tt.input, got, tt.expected)
			}
		})
	}

	if _, err := One.Neg().Sqrt(); !errors.Is(err, ErrNegativeSqrt) {
		t.Errorf("Sqrt(-1) error = %v, expected ErrNegativeSqrt", err)
	}
}

func TestMaxMin(t *testing.T) {
	a := FromInt(3)
	b := FromInt(5)
	if !Max(a, b).Equal(b) || !Max(b, a).Equal(b) {
		t.Errorf("Max(3, 5) should be 5")
	}
	if !Min(a, b).Equal(a) || !Min(b, a).Equal(a) {
		t.Errorf("Min(3, 5) should be 3")
	}
}

func TestTextRoundTrip(t *testing.T) {
	v := MustParse("123.000000000000000456")
	text, err := v.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() unexpected error = %v", err)
	}
	var decoded Value
	if err := decoded.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText() unexpected error = %v", err)
	}
	if !decoded.Equal(v) {
		t.Errorf("UnmarshalText(%s) = %s, expected %s", text, decoded, v)
	}
}
