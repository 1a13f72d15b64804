package trading

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tv-gateway/internal/broker"
	"tv-gateway/internal/exchange"
	"tv-gateway/internal/respond"
	"tv-gateway/internal/types"
)

// Service composes validation, venue resolution and the broker gateway into
// the order workflows. It holds no per-request state; every remote failure is
// converted to a Problem outcome at this boundary.
type Service struct {
	gw            broker.Gateway
	listStyle     types.AssetListStyle
	accountDetail types.AccountDetail
}

func NewService(gw broker.Gateway, listStyle types.AssetListStyle, accountDetail types.AccountDetail) *Service {
	return &Service{gw: gw, listStyle: listStyle, accountDetail: accountDetail}
}

type statusMessage struct {
	Message string `json:"message"`
}

type assetCount struct {
	Count int `json:"count"`
}

type buyingPower struct {
	BuyingPower decimal.Decimal `json:"buying_power"`
}

func (s *Service) SubmitBuy(ctx context.Context, ticker, positionSize string) respond.Outcome {
	symbol, qty, reason := validateTrade(ticker, positionSize)
	if reason != "" {
		return respond.Problem(reason)
	}
	asset, err := s.gw.GetAsset(ctx, symbol)
	if err != nil {
		return respond.Problem(err.Error())
	}
	if !asset.Tradable {
		return respond.Problem(fmt.Sprintf("%s found but is not tradeable", symbol))
	}
	if _, err := s.gw.SubmitMarketOrder(ctx, symbol, qty, types.OrderSideBuy); err != nil {
		return respond.Problem(err.Error())
	}
	return respond.Ok(statusMessage{Message: fmt.Sprintf("Market Order Buy executed for symbol %s", symbol)})
}

// SubmitSell sells a fixed single unit and performs no quantity validation.
// TODO: confirm with product whether sells should honor the alert's position
// size the way buys do.
func (s *Service) SubmitSell(ctx context.Context, symbol string) respond.Outcome {
	if _, err := s.gw.SubmitMarketOrder(ctx, symbol, 1, types.OrderSideSell); err != nil {
		return respond.Problem(err.Error())
	}
	return respond.Ok(statusMessage{Message: fmt.Sprintf("Market Order Sell executed for symbol %s", symbol)})
}

func (s *Service) CancelOrder(ctx context.Context, raw string) respond.Outcome {
	id, err := uuid.Parse(raw)
	if err != nil {
		return respond.Problem(err.Error())
	}
	if _, err := s.gw.GetOrder(ctx, id); err != nil {
		return respond.Problem(err.Error())
	}
	// The cancel call's own outcome is deliberately not branched on: once the
	// order fetch succeeds the workflow reports success. Kept as observed,
	// pending product confirmation.
	_ = s.gw.CancelOrder(ctx, id)
	return respond.Ok(statusMessage{Message: fmt.Sprintf("Order with OrderId %s cancelled", id)})
}

func (s *Service) ListActiveAssets(ctx context.Context, wire string) respond.Outcome {
	ex := exchange.Resolve(wire)
	if ex == exchange.Unknown {
		return respond.Problem(fmt.Sprintf("failed to convert '%s' to exchange", wire))
	}
	assets, err := s.gw.ListActiveAssets(ctx, ex)
	if err != nil {
		return respond.Problem(err.Error())
	}
	if len(assets) == 0 {
		return respond.Problem("no active assets available for trading")
	}
	if s.listStyle == types.AssetListCount {
		return respond.Ok(assetCount{Count: len(assets)})
	}
	labels := make([]string, 0, len(assets))
	for _, a := range assets {
		labels = append(labels, fmt.Sprintf("%s : %s", a.Name, a.Symbol))
	}
	sort.Strings(labels)
	return respond.Ok(labels)
}

func (s *Service) AccountStatus(ctx context.Context) respond.Outcome {
	acc, err := s.gw.GetAccount(ctx)
	if err != nil {
		return respond.Problem(err.Error())
	}
	if acc.TradingBlocked {
		return respond.Problem("account is currently restricted from trading")
	}
	if s.accountDetail == types.AccountDetailBuyingPower {
		return respond.Ok(buyingPower{BuyingPower: acc.BuyingPower})
	}
	return respond.Ok(acc)
}

func (s *Service) MarketClock(ctx context.Context) respond.Outcome {
	clock, err := s.gw.GetClock(ctx)
	if err != nil {
		if broker.IsNotFound(err) {
			return respond.NotFound()
		}
		return respond.Problem(err.Error())
	}
	return respond.Ok(clock)
}
