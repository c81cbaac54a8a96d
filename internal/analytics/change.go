package analytics

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ChangePercent computes a safe period-over-period delta. It returns 0
// when both values are zero, nil when previous is zero and current is not
// (the delta is undefined; callers render "N/A"), and
// (current-previous)/|previous|*100 otherwise. It never returns NaN or Inf.
func ChangePercent(current, previous decimal.Decimal) *float64 {
	if previous.IsZero() {
		if current.IsZero() {
			zero := 0.0
			return &zero
		}
		return nil
	}
	f, _ := current.Sub(previous).Div(previous.Abs()).Mul(hundred).Float64()
	return &f
}
