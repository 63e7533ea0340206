package models

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// PairDay is one raw row per (pair, day) from the remote source. The
// timeStamp is event time in unix seconds and is not necessarily aligned
// to a day boundary.
type PairDay struct {
	PairAddress   string  `json:"pairAddress"`
	Token0Address string  `json:"token0address"`
	Token1Address string  `json:"token1address"`
	TimeStamp     int64   `json:"timeStamp"`
	Volume0USD    float64 `json:"volume0USD"`
	Volume1USD    float64 `json:"volume1USD"`
	LiquidityUSD  float64 `json:"liquidityUSD"`
}

// TokenPrice is one raw price/liquidity snapshot per (token, day).
type TokenPrice struct {
	TokenAddress string  `json:"tokenAddress"`
	TimeStamp    int64   `json:"timeStamp"`
	PriceInUSD   float64 `json:"priceInUSD"`
	LiquidityUSD float64 `json:"liquidityUSD"`
}

// PairInfo is the current state of a pair. Reserves are smallest-unit
// integer strings, converted with the token decimals.
type PairInfo struct {
	PairAddress   string `json:"pairAddress"`
	Token0Address string `json:"token0address"`
	Token1Address string `json:"token1address"`
	Reserve0      string `json:"reserve0"`
	Reserve1      string `json:"reserve1"`
}

// TokenInfo is the current state of a token.
type TokenInfo struct {
	TokenAddress string  `json:"tokenAddress"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Decimals     uint8   `json:"decimals"`
	PriceUSD     float64 `json:"priceUSD"`
}

func (t *TokenInfo) String() string {
	return fmt.Sprintf("%v", t.Symbol)
}

// Transaction is a raw swap record. Amounts are smallest-unit integer
// strings.
type Transaction struct {
	PairAddress     string  `json:"pairAddress"`
	TransactionHash string  `json:"transactionHash"`
	TimeStamp       int64   `json:"timeStamp"`
	Amount0In       string  `json:"amount0In"`
	Amount1In       string  `json:"amount1In"`
	Amount0Out      string  `json:"amount0Out"`
	Amount1Out      string  `json:"amount1Out"`
	AmountUSD       float64 `json:"amountUSD"`
	To              string  `json:"to"`
}

// DayBucket is one aggregation row per UTC calendar day. Date is the unix
// second at the UTC day start.
type DayBucket struct {
	ID             int     `json:"id"`
	Date           int64   `json:"date"`
	DailyVolumeUSD float64 `json:"dailyVolumeUSD"`
	ReserveUSD     float64 `json:"reserveUSD"`
}

// TokenDay is the token-chart variant of a day bucket.
type TokenDay struct {
	ID           int     `json:"id"`
	Date         int64   `json:"date"`
	PriceUSD     float64 `json:"priceUSD"`
	LiquidityUSD float64 `json:"liquidityUSD"`
}

// WeekBucket is one aggregation row per ISO calendar week (UTC). Date is
// the date of the last day that contributed to the week.
type WeekBucket struct {
	Date            int64   `json:"date"`
	WeeklyVolumeUSD float64 `json:"weeklyVolumeUSD"`
}

// VolumePoint is a (day, volume) sample for one side of a pair.
type VolumePoint struct {
	TimeStamp int64   `json:"timeStamp"`
	Volume    float64 `json:"volume"`
}

// LiquidityPoint is a (day, liquidity) sample for a pair.
type LiquidityPoint struct {
	TimeStamp int64   `json:"timeStamp"`
	Liquidity float64 `json:"liquidity"`
}

// PercentValue is a percent change that may be undefined. A zero
// denominator yields NaN or Inf and that has to survive the trip to the
// client: encoding/json refuses non-finite floats, so an undefined change
// marshals as null rather than a silent 0.
type PercentValue float64

// Defined reports whether the value is a real number.
func (p PercentValue) Defined() bool {
	f := float64(p)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (p PercentValue) MarshalJSON() ([]byte, error) {
	if !p.Defined() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(p))
}

func (p *PercentValue) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = PercentValue(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*p = PercentValue(f)
	return nil
}

// NormalizedTransaction is a swap with decimal-corrected amounts.
type NormalizedTransaction struct {
	Token0Symbol string          `json:"token0Symbol"`
	Token1Symbol string          `json:"token1Symbol"`
	Amount0In    decimal.Decimal `json:"amount0In"`
	Amount0Out   decimal.Decimal `json:"amount0Out"`
	Amount1In    decimal.Decimal `json:"amount1In"`
	Amount1Out   decimal.Decimal `json:"amount1Out"`
	Hash         string          `json:"hash"`
	TimeStamp    int64           `json:"timeStamp"`
	AmountUSD    float64         `json:"amountUSD"`
	To           string          `json:"to"`
}

// TransactionSet groups normalized transactions by kind. Only swaps are
// populated by the current feed; mints and burns are reserved.
type TransactionSet struct {
	Swaps []*NormalizedTransaction `json:"swaps"`
	Mints []*NormalizedTransaction `json:"mints"`
	Burns []*NormalizedTransaction `json:"burns"`
}

// PairStats are the headline numbers for one pair.
type PairStats struct {
	PairAddress   string `json:"pairAddress"`
	Token0Address string `json:"token0address"`
	Token1Address string `json:"token1address"`

	Token0 *TokenInfo `json:"token0Info"`
	Token1 *TokenInfo `json:"token1Info"`

	Reserve0 decimal.Decimal `json:"reserve0"`
	Reserve1 decimal.Decimal `json:"reserve1"`

	OneDayVolumeUSD  float64 `json:"oneDayVolumeUSD"`
	PrevDayVolumeUSD float64 `json:"prevDayVolumeUSD"` // the 24-48h window
	OneWeekVolumeUSD float64 `json:"oneWeekVolumeUSD"`
	Volume0USDTotal  float64 `json:"volume0USDTotal"`
	Volume1USDTotal  float64 `json:"volume1USDTotal"`
	ReserveUSD       float64 `json:"reserveUSD"`

	VolumeChange    PercentValue `json:"volumeChangeUSD"`
	LiquidityChange PercentValue `json:"liquidityChangeUSD"`

	Volume0PerDay   []*VolumePoint    `json:"volume0USDPerDay"`
	Volume1PerDay   []*VolumePoint    `json:"volume1USDPerDay"`
	LiquidityPerDay []*LiquidityPoint `json:"liquidityUSDPerDay"`
}

// TokenStats are the headline numbers for one token. Volume is attributed
// from the pair series depending on which side the token sits on.
type TokenStats struct {
	TokenAddress string `json:"tokenAddress"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`

	PriceUSD          float64 `json:"priceUSD"`
	OneDayVolumeUSD   float64 `json:"oneDayVolumeUSD"`
	PrevDayVolumeUSD  float64 `json:"prevDayVolumeUSD"`
	TotalLiquidityUSD float64 `json:"totalLiquidityUSD"`

	PriceChange     PercentValue `json:"priceChangeUSD"`
	VolumeChange    PercentValue `json:"volumeChangeUSD"`
	LiquidityChange PercentValue `json:"liquidityChangeUSD"`

	PairAddresses []string `json:"pairAddresses"`
}

// GlobalStats are the headline numbers for the whole exchange.
type GlobalStats struct {
	OneDayVolumeUSD   float64 `json:"oneDayVolumeUSD"`
	OneWeekVolumeUSD  float64 `json:"oneWeekVolumeUSD"`
	TotalLiquidityUSD float64 `json:"totalLiquidityUSD"`

	VolumeChange    PercentValue `json:"volumeChangeUSD"`
	LiquidityChange PercentValue `json:"liquidityChangeUSD"`
}

// GlobalAggregate is everything computed for the exchange as a whole.
// Nil sections have not been collected yet.
type GlobalAggregate struct {
	Stats       *GlobalStats    `json:"stats,omitempty"`
	ChartDaily  []*DayBucket    `json:"chartDaily,omitempty"`
	ChartWeekly []*WeekBucket   `json:"chartWeekly,omitempty"`
	Txns        *TransactionSet `json:"txns,omitempty"`
}

// Merge overlays the non-nil sections of p and returns the result. The
// receiver is not modified; stored aggregates are replaced whole so
// readers never see a half-written value.
func (a *GlobalAggregate) Merge(p *GlobalAggregate) *GlobalAggregate {
	out := *a
	if p.Stats != nil {
		out.Stats = p.Stats
	}
	if p.ChartDaily != nil {
		out.ChartDaily = p.ChartDaily
	}
	if p.ChartWeekly != nil {
		out.ChartWeekly = p.ChartWeekly
	}
	if p.Txns != nil {
		out.Txns = p.Txns
	}
	return &out
}

// PairAggregate is everything computed for one pair.
type PairAggregate struct {
	Stats      *PairStats      `json:"stats,omitempty"`
	ChartDaily []*DayBucket    `json:"chartDaily,omitempty"`
	Txns       *TransactionSet `json:"txns,omitempty"`
}

func (a *PairAggregate) Merge(p *PairAggregate) *PairAggregate {
	out := *a
	if p.Stats != nil {
		out.Stats = p.Stats
	}
	if p.ChartDaily != nil {
		out.ChartDaily = p.ChartDaily
	}
	if p.Txns != nil {
		out.Txns = p.Txns
	}
	return &out
}

// TokenAggregate is everything computed for one token.
type TokenAggregate struct {
	Stats      *TokenStats     `json:"stats,omitempty"`
	ChartDaily []*TokenDay     `json:"chartDaily,omitempty"`
	Txns       *TransactionSet `json:"txns,omitempty"`
}

func (a *TokenAggregate) Merge(p *TokenAggregate) *TokenAggregate {
	out := *a
	if p.Stats != nil {
		out.Stats = p.Stats
	}
	if p.ChartDaily != nil {
		out.ChartDaily = p.ChartDaily
	}
	if p.Txns != nil {
		out.Txns = p.Txns
	}
	return &out
}
