package eval

import (
	"math/big"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Value is an exact rational number. Integers stay exact at any size and
// real division yields an exact fraction, so results never depend on
// float64 rounding. The zero Value is 0.
//
// Values are immutable: every operation returns a new Value.
type Value struct {
	r *big.Rat
}

// Int returns the Value of i.
func Int(i int64) Value {
	return Value{r: new(big.Rat).SetInt64(i)}
}

func (v Value) rat() *big.Rat {
	if v.r == nil {
		return new(big.Rat)
	}
	return v.r
}

// Add returns v + o.
func (v Value) Add(o Value) Value {
	return Value{r: new(big.Rat).Add(v.rat(), o.rat())}
}

// Sub returns v - o.
func (v Value) Sub(o Value) Value {
	return Value{r: new(big.Rat).Sub(v.rat(), o.rat())}
}

// Mul returns v * o.
func (v Value) Mul(o Value) Value {
	return Value{r: new(big.Rat).Mul(v.rat(), o.rat())}
}

// Quo returns v / o under div. DivTruncate rounds toward zero. o must not
// be zero.
func (v Value) Quo(o Value, div Division) Value {
	q := new(big.Rat).Quo(v.rat(), o.rat())
	if div == DivTruncate && !q.IsInt() {
		q.SetInt(new(big.Int).Quo(q.Num(), q.Denom()))
	}
	return Value{r: q}
}

// IsZero reports whether v is 0.
func (v Value) IsZero() bool {
	return v.rat().Sign() == 0
}

// IsInt reports whether v has no fractional part.
func (v Value) IsInt() bool {
	return v.rat().IsInt()
}

// Float64 returns the nearest float64 to v.
func (v Value) Float64() float64 {
	f, _ := v.rat().Float64()
	return f
}

// Cmp compares v and o, returning -1, 0 or +1.
func (v Value) Cmp(o Value) int {
	return v.rat().Cmp(o.rat())
}

// Equal reports whether v and o are the same number.
func (v Value) Equal(o Value) bool {
	return v.Cmp(o) == 0
}

// String renders integers with all their digits and fractions as the
// shortest decimal that round-trips through float64, e.g. "3.5".
func (v Value) String() string {
	r := v.rat()
	if r.IsInt() {
		return r.Num().String()
	}
	return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
}

// MarshalYAML emits integers as !!int and fractions as !!float.
func (v Value) MarshalYAML() (interface{}, error) {
	tag := "!!float"
	if v.IsInt() {
		tag = "!!int"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.String()}, nil
}
