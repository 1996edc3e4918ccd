package analysis

import (
	"time"

	"github.com/shopspring/decimal"
)

// EMA computes the exponential moving average of a series with the given
// smoothing span: alpha = 2/(span+1), seeded with the first observation.
// The result has the same length as the input.
func EMA(series []decimal.Decimal, span int) []decimal.Decimal {
	if len(series) == 0 {
		return nil
	}

	alpha := decimal.NewFromInt(2).Div(decimal.NewFromInt(int64(span) + 1))
	complement := decimal.NewFromInt(1).Sub(alpha)

	smoothed := make([]decimal.Decimal, len(series))
	smoothed[0] = series[0]
	for t := 1; t < len(series); t++ {
		smoothed[t] = series[t].Mul(alpha).Add(smoothed[t-1].Mul(complement))
	}
	return smoothed
}

// ProjectIncome extrapolates the observed monthly income series through
// December of the last observed year: the series is EMA-smoothed and the
// last smoothed value is carried flat into every remaining month. A series
// ending in December projects nothing.
func ProjectIncome(observed []MonthlyAmount, span int) []MonthlyAmount {
	if len(observed) == 0 {
		return nil
	}

	values := make([]decimal.Decimal, len(observed))
	for i, point := range observed {
		values[i] = point.Amount
	}
	smoothed := EMA(values, span)
	estimate := smoothed[len(smoothed)-1]

	lastMonth := observed[len(observed)-1].Month
	yearEnd := Month{Year: lastMonth.Year, Mon: time.December}

	var projection []MonthlyAmount
	for month := lastMonth.Next(); !month.After(yearEnd); month = month.Next() {
		projection = append(projection, MonthlyAmount{Month: month, Amount: estimate})
	}
	return projection
}
