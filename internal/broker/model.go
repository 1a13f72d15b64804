package broker

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tv-gateway/internal/types"
)

// Clock is the broker's market clock, read through verbatim.
type Clock struct {
	Timestamp time.Time `json:"timestamp"`
	IsOpen    bool      `json:"is_open"`
	NextOpen  time.Time `json:"next_open"`
	NextClose time.Time `json:"next_close"`
}

// Account is a read-only snapshot; nothing is retained past the response.
type Account struct {
	AccountNumber  string          `json:"account_number"`
	Status         string          `json:"status"`
	Currency       string          `json:"currency"`
	BuyingPower    decimal.Decimal `json:"buying_power"`
	Cash           decimal.Decimal `json:"cash"`
	PortfolioValue decimal.Decimal `json:"portfolio_value"`
	TradingBlocked bool            `json:"trading_blocked"`
}

type Asset struct {
	ID       uuid.UUID `json:"id"`
	Symbol   string    `json:"symbol"`
	Name     string    `json:"name"`
	Exchange string    `json:"exchange"`
	Tradable bool      `json:"tradable"`
}

// Order is owned entirely by the broker; this gateway only references it by
// ID and never mutates it locally.
type Order struct {
	ID            uuid.UUID       `json:"id"`
	ClientOrderID string          `json:"client_order_id"`
	Symbol        string          `json:"symbol"`
	Side          types.OrderSide `json:"side"`
	Qty           decimal.Decimal `json:"qty"`
	Type          string          `json:"type"`
	TimeInForce   string          `json:"time_in_force"`
	Status        string          `json:"status"`
}
