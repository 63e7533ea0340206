package source

import (
	"context"
	"net/http"
	"time"

	"github.com/dexwatch/stats-api/models"
	"github.com/machinebox/graphql"
	"github.com/treeder/gotils/v2"
)

// DefaultTimeout bounds one remote request. The upstream never times out
// on its own; without this a stalled call stalls that entity's
// aggregation indefinitely.
const DefaultTimeout = 30 * time.Second

const queryDaysVolumeByDate = `
query ($startTime: Int!, $endTime: Int!, $skip: Int!, $limit: Int!) {
	getDaysVolumeByDate(startTime: $startTime, endTime: $endTime, skip: $skip, limit: $limit) {
		pairAddress
		timeStamp
		volume0USD
		volume1USD
		liquidityUSD
	}
}`

const queryPairDaysVolumeByDate = `
query ($pairAddress: String!, $startTime: Int!, $endTime: Int!, $skip: Int!, $limit: Int!) {
	getPairDaysVolumeByDate(pairAddress: $pairAddress, startTime: $startTime, endTime: $endTime, skip: $skip, limit: $limit) {
		pairAddress
		token0address
		token1address
		timeStamp
		volume0USD
		volume1USD
		liquidityUSD
	}
}`

// The misspelled field is the upstream schema's actual name.
const queryTokenPricesByDate = `
query ($tokenAddress: String!, $startTime: Int!, $endTime: Int!, $skip: Int!, $limit: Int!) {
	getTokenPrircesByDate(tokenAddress: $tokenAddress, startTime: $startTime, endTime: $endTime, skip: $skip, limit: $limit) {
		tokenAddress
		timeStamp
		priceInUSD
		liquidityUSD
	}
}`

const queryPairsCurrent = `
query {
	pairMany {
		pairAddress
		token0address
		token1address
		reserve0
		reserve1
	}
}`

const queryTokensCurrent = `
query {
	tokensMany {
		tokenAddress
		symbol
		name
		decimals
		priceUSD
	}
}`

const queryTransactions = `
query ($skip: Int!, $limit: Int!) {
	transactionMany(skip: $skip, limit: $limit) {
		pairAddress
		transactionHash
		timeStamp
		amount0In
		amount1In
		amount0Out
		amount1Out
		amountUSD
		to
	}
}`

const queryPairTransactions = `
query ($pairAddress: String!, $skip: Int!, $limit: Int!) {
	getTxsByPair(pairAddress: $pairAddress, skip: $skip, limit: $limit) {
		pairAddress
		transactionHash
		timeStamp
		amount0In
		amount1In
		amount0Out
		amount1Out
		amountUSD
		to
	}
}`

// GraphQL implements Client against the remote GraphQL service.
type GraphQL struct {
	c       *graphql.Client
	timeout time.Duration
}

var _ Client = new(GraphQL)

// NewGraphQL returns a client for the given endpoint. timeout <= 0 uses
// DefaultTimeout.
func NewGraphQL(url string, timeout time.Duration) *GraphQL {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc := &http.Client{Timeout: timeout}
	return &GraphQL{
		c:       graphql.NewClient(url, graphql.WithHTTPClient(hc)),
		timeout: timeout,
	}
}

func (g *GraphQL) run(ctx context.Context, req *graphql.Request, resp interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	if err := g.c.Run(ctx, req, resp); err != nil {
		return gotils.C(ctx).Errorf("graphql query failed: %v", err)
	}
	return nil
}

func (g *GraphQL) GetGlobalDays(ctx context.Context, startTime, endTime int64, skip, limit int) ([]*models.PairDay, error) {
	req := graphql.NewRequest(queryDaysVolumeByDate)
	req.Var("startTime", startTime)
	req.Var("endTime", endTime)
	req.Var("skip", skip)
	req.Var("limit", limit)

	var resp struct {
		Days []*models.PairDay `json:"getDaysVolumeByDate"`
	}
	if err := g.run(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Days, nil
}

func (g *GraphQL) GetPairDays(ctx context.Context, pairAddress string, startTime, endTime int64, skip, limit int) ([]*models.PairDay, error) {
	req := graphql.NewRequest(queryPairDaysVolumeByDate)
	req.Var("pairAddress", pairAddress)
	req.Var("startTime", startTime)
	req.Var("endTime", endTime)
	req.Var("skip", skip)
	req.Var("limit", limit)

	var resp struct {
		Days []*models.PairDay `json:"getPairDaysVolumeByDate"`
	}
	if err := g.run(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Days, nil
}

func (g *GraphQL) GetTokenPrices(ctx context.Context, tokenAddress string, startTime, endTime int64, skip, limit int) ([]*models.TokenPrice, error) {
	req := graphql.NewRequest(queryTokenPricesByDate)
	req.Var("tokenAddress", tokenAddress)
	req.Var("startTime", startTime)
	req.Var("endTime", endTime)
	req.Var("skip", skip)
	req.Var("limit", limit)

	var resp struct {
		Prices []*models.TokenPrice `json:"getTokenPrircesByDate"`
	}
	if err := g.run(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Prices, nil
}

func (g *GraphQL) GetPairs(ctx context.Context) ([]*models.PairInfo, error) {
	req := graphql.NewRequest(queryPairsCurrent)

	var resp struct {
		Pairs []*models.PairInfo `json:"pairMany"`
	}
	if err := g.run(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Pairs, nil
}

func (g *GraphQL) GetTokens(ctx context.Context) ([]*models.TokenInfo, error) {
	req := graphql.NewRequest(queryTokensCurrent)

	var resp struct {
		Tokens []*models.TokenInfo `json:"tokensMany"`
	}
	if err := g.run(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Tokens, nil
}

func (g *GraphQL) GetTransactions(ctx context.Context, skip, limit int) ([]*models.Transaction, error) {
	req := graphql.NewRequest(queryTransactions)
	req.Var("skip", skip)
	req.Var("limit", limit)

	var resp struct {
		Txns []*models.Transaction `json:"transactionMany"`
	}
	if err := g.run(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Txns, nil
}

func (g *GraphQL) GetPairTransactions(ctx context.Context, pairAddress string, skip, limit int) ([]*models.Transaction, error) {
	req := graphql.NewRequest(queryPairTransactions)
	req.Var("pairAddress", pairAddress)
	req.Var("skip", skip)
	req.Var("limit", limit)

	var resp struct {
		Txns []*models.Transaction `json:"getTxsByPair"`
	}
	if err := g.run(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Txns, nil
}
