package utils

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

const SecondsPerDay = int64(86400)

func DecToInt(d decimal.Decimal, decimals int) *big.Int {
	// multiply amount by number of decimals
	d1 := decimal.New(1, int32(decimals))
	d = d.Mul(d1)
	i := &big.Int{}
	i.SetString(d.StringFixed(0), 10)
	return i
}

func IntToDec(i *big.Int, decimals uint8) decimal.Decimal {
	d := decimal.NewFromBigInt(i, 0)
	d = d.Div(decimal.New(1, int32(decimals)))
	return d
}

// StrToDec converts a smallest-unit integer string to a decimal amount.
// Returns false for anything that doesn't parse as an integer.
func StrToDec(s string, decimals uint8) (decimal.Decimal, bool) {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return decimal.Zero, false
	}
	return IntToDec(i, decimals), true
}

// DayStart floors a unix timestamp to its UTC day boundary.
func DayStart(ts int64) int64 {
	if ts < 0 {
		// floor, not truncation toward zero
		return ((ts - SecondsPerDay + 1) / SecondsPerDay) * SecondsPerDay
	}
	return (ts / SecondsPerDay) * SecondsPerDay
}

// DayIndex is the UTC day number of a timestamp (date / 86400).
func DayIndex(ts int64) int64 {
	return DayStart(ts) / SecondsPerDay
}

// ISOWeek returns the (year, week) pair of a unix timestamp in UTC.
func ISOWeek(ts int64) (int, int) {
	return time.Unix(ts, 0).UTC().ISOWeek()
}
