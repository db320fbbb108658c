package domain

import "github.com/shopspring/decimal"

// Money is a non-float amount with two decimal places on the wire.
type Money struct {
	decimal.Decimal
}

func Zero() Money {
	return Money{decimal.Zero}
}

// MustMoney parses s and panics on malformed input. Intended for literals.
func MustMoney(s string) Money {
	return Money{decimal.RequireFromString(s)}
}

func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

func (m Money) MulInt(n int) Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(int64(n)))}
}

func (m Money) IsNegative() bool {
	return m.Decimal.IsNegative()
}

func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}
