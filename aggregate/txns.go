package aggregate

import (
	"github.com/dexwatch/stats-api/models"
	"github.com/dexwatch/stats-api/utils"
)

// PairMeta is the token metadata the normalizer needs to resolve one
// pair's amounts and symbols.
type PairMeta struct {
	Token0 *models.TokenInfo
	Token1 *models.TokenInfo
}

// NormalizeTransactions maps raw swap records to the unified transaction
// shape. Amounts come off the wire as smallest-unit integer strings and
// are converted with each side's token decimals. Records whose pair has
// no resolved metadata are skipped silently; so are records whose amount
// strings fail to parse, per the best-effort contract on malformed
// upstream data. A record sharing its hash with the previous kept record
// is a duplicate delivery and is dropped; the feed only guarantees
// duplicates arrive adjacent, so a global seen-set is not needed.
//
// Only swaps flow through the current feed. Mints and Burns are always
// empty but present, so clients can range over them unconditionally.
func NormalizeTransactions(raw []*models.Transaction, pairs map[string]*PairMeta) *models.TransactionSet {
	set := &models.TransactionSet{
		Swaps: []*models.NormalizedTransaction{},
		Mints: []*models.NormalizedTransaction{},
		Burns: []*models.NormalizedTransaction{},
	}
	lastHash := ""
	for _, tx := range raw {
		meta := pairs[tx.PairAddress]
		if meta == nil || meta.Token0 == nil || meta.Token1 == nil {
			continue
		}
		if tx.TransactionHash == lastHash {
			continue
		}
		a0in, ok := utils.StrToDec(tx.Amount0In, meta.Token0.Decimals)
		if !ok {
			continue
		}
		a0out, ok := utils.StrToDec(tx.Amount0Out, meta.Token0.Decimals)
		if !ok {
			continue
		}
		a1in, ok := utils.StrToDec(tx.Amount1In, meta.Token1.Decimals)
		if !ok {
			continue
		}
		a1out, ok := utils.StrToDec(tx.Amount1Out, meta.Token1.Decimals)
		if !ok {
			continue
		}
		set.Swaps = append(set.Swaps, &models.NormalizedTransaction{
			Token0Symbol: meta.Token0.Symbol,
			Token1Symbol: meta.Token1.Symbol,
			Amount0In:    a0in,
			Amount0Out:   a0out,
			Amount1In:    a1in,
			Amount1Out:   a1out,
			Hash:         tx.TransactionHash,
			TimeStamp:    tx.TimeStamp,
			AmountUSD:    tx.AmountUSD,
			To:           tx.To,
		})
		lastHash = tx.TransactionHash
	}
	return set
}
