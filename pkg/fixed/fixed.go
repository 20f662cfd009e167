// Package fixed implements signed fixed-point decimal values with 18 fractional
// digits. Every operation truncates toward zero at the 18th fractional digit so
// results are bit-identical across platforms and invocations.
package fixed

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/iwvelando/option-lattice/pkg/constants"
	"github.com/shopspring/decimal"
)

// Scale is the number of fractional decimal digits carried by a Value.
const Scale = constants.Scale

var (
	// ErrOverflow is returned when a result does not fit the signed 256-bit raw range.
	ErrOverflow = errors.New("fixed: value out of range")

	// ErrDivisionByZero is returned by Div when the divisor is zero.
	ErrDivisionByZero = errors.New("fixed: division by zero")

	// ErrNegativeSqrt is returned by Sqrt for negative inputs.
	ErrNegativeSqrt = errors.New("fixed: square root of negative value")

	// ErrSyntax is returned when a decimal or raw string cannot be parsed.
	ErrSyntax = errors.New("fixed: invalid syntax")
)

var (
	scaleFactor = new(big.Int).Exp(big.NewInt(10), big.NewInt(Scale), nil)
	maxRaw      = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
	minRaw      = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))

	// exp(x) overflows the raw range above this input.
	maxExpInput = decimal.RequireFromString("133.084258667509499440")
	// exp(x) truncates to zero below this input.
	minExpInput = decimal.RequireFromString("-41.446531673892822322")
)

// expPrecision is the number of significant digits requested from the
// Hull-Abrham exponential before truncation to Scale.
const expPrecision = 96

// Value is an immutable fixed-point decimal. The zero value is 0.
type Value struct {
	d decimal.Decimal
}

var (
	// Zero is 0.
	Zero = Value{}
	// One is 1.
	One = FromInt(1)
	// Two is 2.
	Two = FromInt(2)
)

// FromInt returns the Value for an integer.
func FromInt(i int64) Value {
	return Value{d: decimal.NewFromInt(i)}
}

// FromDecimal truncates d to Scale fractional digits.
func FromDecimal(d decimal.Decimal) Value {
	return Value{d: d.Truncate(Scale)}
}

// FromRaw builds a Value from its scaled integer representation, i.e. raw/10^18.
func FromRaw(raw *big.Int) Value {
	if raw == nil {
		return Zero
	}
	return Value{d: decimal.NewFromBigInt(new(big.Int).Set(raw), -Scale)}
}

// Parse reads a decimal string such as "100" or "0.05". Digits beyond Scale are
// truncated.
func Parse(s string) (Value, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	v := FromDecimal(d)
	if !v.Bounded() {
		return Zero, fmt.Errorf("%w: %q", ErrOverflow, s)
	}
	return v, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseRaw reads a base-10 scaled integer such as "1000000000000000000" (1.0).
func ParseRaw(s string) (Value, error) {
	raw, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Zero, fmt.Errorf("%w: raw %q", ErrSyntax, s)
	}
	v := FromRaw(raw)
	if !v.Bounded() {
		return Zero, fmt.Errorf("%w: raw %q", ErrOverflow, s)
	}
	return v, nil
}

// Raw returns the scaled integer representation, value*10^18.
func (v Value) Raw() *big.Int {
	return v.d.Shift(Scale).BigInt()
}

// Decimal returns the underlying decimal.
func (v Value) Decimal() decimal.Decimal {
	return v.d
}

// String returns the shortest exact decimal representation.
func (v Value) String() string {
	return v.d.String()
}

// StringFixed returns the value rounded half away from zero to the given number
// of places, for display.
func (v Value) StringFixed(places int32) string {
	return v.d.StringFixed(places)
}

// Float64 returns the nearest float64. Display and logging only.
func (v Value) Float64() float64 {
	return v.d.InexactFloat64()
}

// MarshalText implements encoding.TextMarshaler.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Value) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Bounded reports whether the raw representation fits a signed 256-bit integer.
func (v Value) Bounded() bool {
	raw := v.Raw()
	return raw.Cmp(maxRaw) <= 0 && raw.Cmp(minRaw) >= 0
}

// Add returns v+o.
func (v Value) Add(o Value) Value {
	return Value{d: v.d.Add(o.d)}
}

// Sub returns v-o.
func (v Value) Sub(o Value) Value {
	return Value{d: v.d.Sub(o.d)}
}

// Neg returns -v.
func (v Value) Neg() Value {
	return Value{d: v.d.Neg()}
}

// Abs returns |v|.
func (v Value) Abs() Value {
	return Value{d: v.d.Abs()}
}

// Mul returns v*o truncated toward zero.
func (v Value) Mul(o Value) Value {
	return FromDecimal(v.d.Mul(o.d))
}

// Div returns v/o truncated toward zero.
func (v Value) Div(o Value) (Value, error) {
	if o.d.IsZero() {
		return Zero, ErrDivisionByZero
	}
	q, _ := v.d.QuoRem(o.d, Scale)
	return Value{d: q}, nil
}

// DivInt returns v/n truncated toward zero.
func (v Value) DivInt(n int64) (Value, error) {
	return v.Div(FromInt(n))
}

// PowInt returns v^n by repeated multiplication, truncating after every step.
// Negative exponents are not supported.
func (v Value) PowInt(n int) (Value, error) {
	if n < 0 {
		return Zero, fmt.Errorf("fixed: negative integer exponent %d", n)
	}
	result := One
	for i := 0; i < n; i++ {
		result = result.Mul(v)
		if !result.Bounded() {
			return Zero, ErrOverflow
		}
	}
	return result, nil
}

// Exp returns e^v. Inputs below -41.446531673892822322 return 0 and inputs above
// 133.084258667509499440 return ErrOverflow.
func (v Value) Exp() (Value, error) {
	if v.d.GreaterThan(maxExpInput) {
		return Zero, fmt.Errorf("%w: exp(%s)", ErrOverflow, v)
	}
	if v.d.LessThan(minExpInput) {
		return Zero, nil
	}
	if v.d.IsZero() {
		return One, nil
	}

	e, err := v.d.Abs().ExpHullAbrham(expPrecision)
	if err != nil {
		return Zero, fmt.Errorf("%w: exp(%s): %v", ErrOverflow, v, err)
	}
	result := FromDecimal(e)
	if v.d.IsNegative() {
		return One.Div(result)
	}
	return result, nil
}

// Sqrt returns the floor of the square root at Scale digits.
func (v Value) Sqrt() (Value, error) {
	if v.d.IsNegative() {
		return Zero, fmt.Errorf("%w: sqrt(%s)", ErrNegativeSqrt, v)
	}
	scaled := new(big.Int).Mul(v.Raw(), scaleFactor)
	return FromRaw(scaled.Sqrt(scaled)), nil
}

// Cmp returns -1, 0 or +1 when v is less than, equal to or greater than o.
func (v Value) Cmp(o Value) int {
	return v.d.Cmp(o.d)
}

// Equal reports whether v == o.
func (v Value) Equal(o Value) bool {
	return v.d.Equal(o.d)
}

// GreaterThan reports whether v > o.
func (v Value) GreaterThan(o Value) bool {
	return v.d.GreaterThan(o.d)
}

// GreaterThanOrEqual reports whether v >= o.
func (v Value) GreaterThanOrEqual(o Value) bool {
	return v.d.GreaterThanOrEqual(o.d)
}

// LessThan reports whether v < o.
func (v Value) LessThan(o Value) bool {
	return v.d.LessThan(o.d)
}

// LessThanOrEqual reports whether v <= o.
func (v Value) LessThanOrEqual(o Value) bool {
	return v.d.LessThanOrEqual(o.d)
}

// Sign returns -1, 0 or +1.
func (v Value) Sign() int {
	return v.d.Sign()
}

// IsZero reports whether v == 0.
func (v Value) IsZero() bool {
	return v.d.IsZero()
}

// IsPositive reports whether v > 0.
func (v Value) IsPositive() bool {
	return v.d.IsPositive()
}

// IsNegative reports whether v < 0.
func (v Value) IsNegative() bool {
	return v.d.IsNegative()
}

// Max returns the larger of a and b, preferring a on ties.
func Max(a, b Value) Value {
	if b.GreaterThan(a) {
		return b
	}
	return a
}

// Min returns the smaller of a and b, preferring a on ties.
func Min(a, b Value) Value {
	if b.LessThan(a) {
		return b
	}
	return a
}
