package price

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sprintertech/sprinter-omnichain/config"
	"github.com/sprintertech/sprinter-omnichain/relay"
)

type TokenLookup interface {
	ConfigByAddress(chainID uint64, address common.Address) (string, config.TokenConfig, error)
	ConfigBySymbol(chainID uint64, symbol string) (config.TokenConfig, error)
}

type UsdConverter interface {
	UsdValue(ctx context.Context, symbol string, amount string, decimals uint8) (float64, error)
}

// PaymentEstimator prices relay payment options in USD. Configured tokens
// are quoted by their price symbol, unknown ones by the relay's symbol.
type PaymentEstimator struct {
	prices UsdConverter
	tokens TokenLookup
}

func NewPaymentEstimator(prices UsdConverter, tokens TokenLookup) *PaymentEstimator {
	return &PaymentEstimator{
		prices: prices,
		tokens: tokens,
	}
}

func (e *PaymentEstimator) Estimate(ctx context.Context, option relay.PaymentOption) (float64, error) {
	symbol := option.Symbol
	decimals := option.Decimals

	if common.IsHexAddress(option.Token) {
		if _, c, err := e.tokens.ConfigByAddress(option.ChainID, common.HexToAddress(option.Token)); err == nil {
			return e.prices.UsdValue(ctx, c.PriceSymbol, option.Amount, c.Decimals)
		}
	}
	if c, err := e.tokens.ConfigBySymbol(option.ChainID, option.Symbol); err == nil {
		symbol = c.PriceSymbol
	}
	return e.prices.UsdValue(ctx, symbol, option.Amount, decimals)
}
