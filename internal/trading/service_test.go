package trading

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tv-gateway/internal/broker"
	"tv-gateway/internal/exchange"
	"tv-gateway/internal/respond"
	"tv-gateway/internal/types"
)

// fakeGateway implements broker.Gateway with per-call overrides. A nil
// override means the workflow under test must not reach the broker.
type fakeGateway struct {
	getClock    func(ctx context.Context) (broker.Clock, error)
	getAccount  func(ctx context.Context) (broker.Account, error)
	listAssets  func(ctx context.Context, ex exchange.Exchange) ([]broker.Asset, error)
	getAsset    func(ctx context.Context, symbol string) (broker.Asset, error)
	submitOrder func(ctx context.Context, symbol string, qty int64, side types.OrderSide) (broker.Order, error)
	getOrder    func(ctx context.Context, id uuid.UUID) (broker.Order, error)
	cancelOrder func(ctx context.Context, id uuid.UUID) error

	listCalls   int
	assetCalls  int
	submitCalls int
	fetchCalls  int
	cancelCalls int
}

func (f *fakeGateway) GetClock(ctx context.Context) (broker.Clock, error) {
	if f.getClock == nil {
		panic("unexpected GetClock call")
	}
	return f.getClock(ctx)
}

func (f *fakeGateway) GetAccount(ctx context.Context) (broker.Account, error) {
	if f.getAccount == nil {
		panic("unexpected GetAccount call")
	}
	return f.getAccount(ctx)
}

func (f *fakeGateway) ListActiveAssets(ctx context.Context, ex exchange.Exchange) ([]broker.Asset, error) {
	f.listCalls++
	if f.listAssets == nil {
		panic("unexpected ListActiveAssets call")
	}
	return f.listAssets(ctx, ex)
}

func (f *fakeGateway) GetAsset(ctx context.Context, symbol string) (broker.Asset, error) {
	f.assetCalls++
	if f.getAsset == nil {
		panic("unexpected GetAsset call")
	}
	return f.getAsset(ctx, symbol)
}

func (f *fakeGateway) SubmitMarketOrder(ctx context.Context, symbol string, qty int64, side types.OrderSide) (broker.Order, error) {
	f.submitCalls++
	if f.submitOrder == nil {
		panic("unexpected SubmitMarketOrder call")
	}
	return f.submitOrder(ctx, symbol, qty, side)
}

func (f *fakeGateway) GetOrder(ctx context.Context, id uuid.UUID) (broker.Order, error) {
	f.fetchCalls++
	if f.getOrder == nil {
		panic("unexpected GetOrder call")
	}
	return f.getOrder(ctx, id)
}

func (f *fakeGateway) CancelOrder(ctx context.Context, id uuid.UUID) error {
	f.cancelCalls++
	if f.cancelOrder == nil {
		panic("unexpected CancelOrder call")
	}
	return f.cancelOrder(ctx, id)
}

func newService(gw broker.Gateway) *Service {
	return NewService(gw, types.AssetListLabels, types.AccountDetailFull)
}

func tradableAsset(symbol string) broker.Asset {
	return broker.Asset{Symbol: symbol, Name: symbol + " Inc", Tradable: true}
}

func TestSubmitBuyTradableSymbol(t *testing.T) {
	var gotSymbol string
	var gotQty int64
	var gotSide types.OrderSide
	gw := &fakeGateway{
		getAsset: func(ctx context.Context, symbol string) (broker.Asset, error) {
			return tradableAsset(symbol), nil
		},
		submitOrder: func(ctx context.Context, symbol string, qty int64, side types.OrderSide) (broker.Order, error) {
			gotSymbol, gotQty, gotSide = symbol, qty, side
			return broker.Order{ID: uuid.New(), Symbol: symbol}, nil
		},
	}
	out := newService(gw).SubmitBuy(context.Background(), "AAPL", "10")
	if out.Kind() != respond.KindOk {
		t.Fatalf("kind = %v, want Ok (message %q)", out.Kind(), out.Message())
	}
	if msg := out.Payload().(statusMessage).Message; msg != "Market Order Buy executed for symbol AAPL" {
		t.Errorf("message = %q", msg)
	}
	if gw.submitCalls != 1 {
		t.Errorf("submitCalls = %d, want 1", gw.submitCalls)
	}
	if gotSymbol != "AAPL" || gotQty != 10 || gotSide != types.OrderSideBuy {
		t.Errorf("submitted (%q, %d, %q)", gotSymbol, gotQty, gotSide)
	}
}

func TestSubmitBuyInvalidInputNeverCallsBroker(t *testing.T) {
	cases := []struct {
		name   string
		ticker string
		size   string
		reason string
	}{
		{"empty ticker", "", "10", "ticker/market position size is empty"},
		{"unparsable size", "AAPL", "lots", "position size could not be parsed"},
		{"zero size", "AAPL", "0", "position size is zero or negative"},
		{"negative size", "AAPL", "-1", "position size is zero or negative"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gw := &fakeGateway{}
			out := newService(gw).SubmitBuy(context.Background(), c.ticker, c.size)
			if out.Kind() != respond.KindProblem || out.Message() != c.reason {
				t.Errorf("got (%v, %q), want Problem(%q)", out.Kind(), out.Message(), c.reason)
			}
			if gw.assetCalls != 0 || gw.submitCalls != 0 {
				t.Errorf("broker was called: assets=%d submits=%d", gw.assetCalls, gw.submitCalls)
			}
		})
	}
}

func TestSubmitBuyAssetLookupFailure(t *testing.T) {
	gw := &fakeGateway{
		getAsset: func(ctx context.Context, symbol string) (broker.Asset, error) {
			return broker.Asset{}, &broker.APIError{Status: 404, Message: "asset not found for ZZZZ"}
		},
	}
	out := newService(gw).SubmitBuy(context.Background(), "ZZZZ", "5")
	if out.Kind() != respond.KindProblem || out.Message() != "asset not found for ZZZZ" {
		t.Errorf("got (%v, %q)", out.Kind(), out.Message())
	}
	if gw.submitCalls != 0 {
		t.Errorf("order submitted after failed lookup")
	}
}

func TestSubmitBuyNotTradable(t *testing.T) {
	gw := &fakeGateway{
		getAsset: func(ctx context.Context, symbol string) (broker.Asset, error) {
			return broker.Asset{Symbol: symbol, Name: "Microsoft", Tradable: false}, nil
		},
	}
	out := newService(gw).SubmitBuy(context.Background(), "MSFT", "5")
	if out.Kind() != respond.KindProblem || out.Message() != "MSFT found but is not tradeable" {
		t.Errorf("got (%v, %q)", out.Kind(), out.Message())
	}
	if gw.submitCalls != 0 {
		t.Errorf("order submitted for non-tradable asset")
	}
}

func TestSubmitBuySubmissionFailure(t *testing.T) {
	gw := &fakeGateway{
		getAsset: func(ctx context.Context, symbol string) (broker.Asset, error) {
			return tradableAsset(symbol), nil
		},
		submitOrder: func(ctx context.Context, symbol string, qty int64, side types.OrderSide) (broker.Order, error) {
			return broker.Order{}, &broker.APIError{Status: 403, Message: "insufficient buying power"}
		},
	}
	out := newService(gw).SubmitBuy(context.Background(), "AAPL", "10")
	if out.Kind() != respond.KindProblem || out.Message() != "insufficient buying power" {
		t.Errorf("got (%v, %q)", out.Kind(), out.Message())
	}
}

func TestSubmitSellFixedUnitQuantity(t *testing.T) {
	var gotQty int64
	var gotSide types.OrderSide
	gw := &fakeGateway{
		submitOrder: func(ctx context.Context, symbol string, qty int64, side types.OrderSide) (broker.Order, error) {
			gotQty, gotSide = qty, side
			return broker.Order{Symbol: symbol}, nil
		},
	}
	out := newService(gw).SubmitSell(context.Background(), "AAPL")
	if out.Kind() != respond.KindOk {
		t.Fatalf("kind = %v, want Ok", out.Kind())
	}
	if msg := out.Payload().(statusMessage).Message; msg != "Market Order Sell executed for symbol AAPL" {
		t.Errorf("message = %q", msg)
	}
	if gotQty != 1 || gotSide != types.OrderSideSell {
		t.Errorf("submitted (%d, %q), want (1, sell)", gotQty, gotSide)
	}
}

func TestSubmitSellSurfacesBrokerErrorWithoutRetry(t *testing.T) {
	gw := &fakeGateway{
		submitOrder: func(ctx context.Context, symbol string, qty int64, side types.OrderSide) (broker.Order, error) {
			return broker.Order{}, errors.New("market is closed")
		},
	}
	out := newService(gw).SubmitSell(context.Background(), "AAPL")
	if out.Kind() != respond.KindProblem || out.Message() != "market is closed" {
		t.Errorf("got (%v, %q)", out.Kind(), out.Message())
	}
	if gw.submitCalls != 1 {
		t.Errorf("submitCalls = %d, want 1", gw.submitCalls)
	}
}

func TestCancelOrderMalformedID(t *testing.T) {
	gw := &fakeGateway{}
	out := newService(gw).CancelOrder(context.Background(), "not-a-uuid")
	if out.Kind() != respond.KindProblem {
		t.Fatalf("kind = %v, want Problem", out.Kind())
	}
	if gw.fetchCalls != 0 || gw.cancelCalls != 0 {
		t.Errorf("broker was called for malformed id: fetch=%d cancel=%d", gw.fetchCalls, gw.cancelCalls)
	}
}

func TestCancelOrderFetchFailure(t *testing.T) {
	gw := &fakeGateway{
		getOrder: func(ctx context.Context, id uuid.UUID) (broker.Order, error) {
			return broker.Order{}, &broker.APIError{Status: 404, Message: "order not found"}
		},
	}
	out := newService(gw).CancelOrder(context.Background(), uuid.NewString())
	if out.Kind() != respond.KindProblem || out.Message() != "order not found" {
		t.Errorf("got (%v, %q)", out.Kind(), out.Message())
	}
	if gw.cancelCalls != 0 {
		t.Errorf("cancel issued after failed fetch")
	}
}

func TestCancelOrderReportsSuccessRegardlessOfCancelResult(t *testing.T) {
	id := uuid.New()
	gw := &fakeGateway{
		getOrder: func(ctx context.Context, got uuid.UUID) (broker.Order, error) {
			return broker.Order{ID: got}, nil
		},
		cancelOrder: func(ctx context.Context, got uuid.UUID) error {
			return errors.New("order already filled")
		},
	}
	out := newService(gw).CancelOrder(context.Background(), id.String())
	if out.Kind() != respond.KindOk {
		t.Fatalf("kind = %v, want Ok", out.Kind())
	}
	want := "Order with OrderId " + id.String() + " cancelled"
	if msg := out.Payload().(statusMessage).Message; msg != want {
		t.Errorf("message = %q, want %q", msg, want)
	}
	if gw.cancelCalls != 1 {
		t.Errorf("cancelCalls = %d, want 1", gw.cancelCalls)
	}
}

func TestListActiveAssetsUnknownExchange(t *testing.T) {
	gw := &fakeGateway{}
	out := newService(gw).ListActiveAssets(context.Background(), "not-a-venue")
	want := "failed to convert 'not-a-venue' to exchange"
	if out.Kind() != respond.KindProblem || out.Message() != want {
		t.Errorf("got (%v, %q), want Problem(%q)", out.Kind(), out.Message(), want)
	}
	if gw.listCalls != 0 {
		t.Errorf("broker queried for unknown exchange")
	}
}

func TestListActiveAssetsEmpty(t *testing.T) {
	gw := &fakeGateway{
		listAssets: func(ctx context.Context, ex exchange.Exchange) ([]broker.Asset, error) {
			return nil, nil
		},
	}
	out := newService(gw).ListActiveAssets(context.Background(), "NYSE")
	if out.Kind() != respond.KindProblem || out.Message() != "no active assets available for trading" {
		t.Errorf("got (%v, %q)", out.Kind(), out.Message())
	}
}

func TestListActiveAssetsSortedLabels(t *testing.T) {
	gw := &fakeGateway{
		listAssets: func(ctx context.Context, ex exchange.Exchange) ([]broker.Asset, error) {
			if ex != exchange.NewYorkStockExchange {
				t.Errorf("exchange = %v, want NYSE", ex)
			}
			return []broker.Asset{
				{Symbol: "ZM", Name: "Zoom"},
				{Symbol: "AA", Name: "Alcoa"},
			}, nil
		},
	}
	out := newService(gw).ListActiveAssets(context.Background(), "NYSE")
	if out.Kind() != respond.KindOk {
		t.Fatalf("kind = %v, want Ok", out.Kind())
	}
	want := []string{"Alcoa : AA", "Zoom : ZM"}
	if got := out.Payload().([]string); !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
}

func TestListActiveAssetsCountStyle(t *testing.T) {
	gw := &fakeGateway{
		listAssets: func(ctx context.Context, ex exchange.Exchange) ([]broker.Asset, error) {
			return []broker.Asset{{Symbol: "AA"}, {Symbol: "BB"}}, nil
		},
	}
	svc := NewService(gw, types.AssetListCount, types.AccountDetailFull)
	out := svc.ListActiveAssets(context.Background(), "NYSE")
	if out.Kind() != respond.KindOk {
		t.Fatalf("kind = %v, want Ok", out.Kind())
	}
	if got := out.Payload().(assetCount); got.Count != 2 {
		t.Errorf("count = %d, want 2", got.Count)
	}
}

func TestAccountStatusBlocked(t *testing.T) {
	gw := &fakeGateway{
		getAccount: func(ctx context.Context) (broker.Account, error) {
			return broker.Account{BuyingPower: decimal.NewFromInt(1000000), TradingBlocked: true}, nil
		},
	}
	out := newService(gw).AccountStatus(context.Background())
	if out.Kind() != respond.KindProblem || out.Message() != "account is currently restricted from trading" {
		t.Errorf("got (%v, %q)", out.Kind(), out.Message())
	}
}

func TestAccountStatusOk(t *testing.T) {
	acc := broker.Account{AccountNumber: "PA123", BuyingPower: decimal.NewFromInt(2500)}
	gw := &fakeGateway{
		getAccount: func(ctx context.Context) (broker.Account, error) { return acc, nil },
	}
	out := newService(gw).AccountStatus(context.Background())
	if out.Kind() != respond.KindOk {
		t.Fatalf("kind = %v, want Ok", out.Kind())
	}
	if got := out.Payload().(broker.Account); got.AccountNumber != "PA123" {
		t.Errorf("payload = %+v", got)
	}
}

func TestAccountStatusBuyingPowerOnly(t *testing.T) {
	gw := &fakeGateway{
		getAccount: func(ctx context.Context) (broker.Account, error) {
			return broker.Account{BuyingPower: decimal.NewFromInt(2500)}, nil
		},
	}
	svc := NewService(gw, types.AssetListLabels, types.AccountDetailBuyingPower)
	out := svc.AccountStatus(context.Background())
	if out.Kind() != respond.KindOk {
		t.Fatalf("kind = %v, want Ok", out.Kind())
	}
	got := out.Payload().(buyingPower)
	if !got.BuyingPower.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("buying power = %s", got.BuyingPower)
	}
}

func TestMarketClockAbsent(t *testing.T) {
	gw := &fakeGateway{
		getClock: func(ctx context.Context) (broker.Clock, error) {
			return broker.Clock{}, &broker.APIError{Status: 404, Message: "not found"}
		},
	}
	out := newService(gw).MarketClock(context.Background())
	if out.Kind() != respond.KindNotFound {
		t.Errorf("kind = %v, want NotFound", out.Kind())
	}
}

func TestMarketClockOk(t *testing.T) {
	gw := &fakeGateway{
		getClock: func(ctx context.Context) (broker.Clock, error) {
			return broker.Clock{IsOpen: true}, nil
		},
	}
	out := newService(gw).MarketClock(context.Background())
	if out.Kind() != respond.KindOk {
		t.Fatalf("kind = %v, want Ok", out.Kind())
	}
	if !out.Payload().(broker.Clock).IsOpen {
		t.Errorf("clock payload lost is_open")
	}
}
