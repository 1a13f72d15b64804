package trading

import (
	"net/http"

	"tv-gateway/internal/httputil"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// alertMessage mirrors the webhook payload a TradingView strategy alert
// posts. Only ticker and market position size drive the buy workflow; the
// remaining fields are accepted so arbitrary alert templates parse cleanly.
type alertMessage struct {
	Time                   string `json:"time"`
	Exchange               string `json:"exchange"`
	Ticker                 string `json:"ticker"`
	PositionSize           string `json:"position_size"`
	OrderAction            string `json:"order_action"`
	OrderContracts         string `json:"order_contracts"`
	OrderPrice             string `json:"order_price"`
	OrderID                string `json:"order_id"`
	MarketPosition         string `json:"market_position"`
	MarketPositionSize     string `json:"market_position_size"`
	PrevMarketPosition     string `json:"prev_market_position"`
	PrevMarketPositionSize string `json:"prev_market_position_size"`
}

func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	var msg alertMessage
	if err := httputil.ReadJSON(r, &msg); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	h.svc.SubmitBuy(r.Context(), msg.Ticker, msg.MarketPositionSize).Write(w)
}

func (h *Handler) Sell(w http.ResponseWriter, r *http.Request, symbol string) {
	h.svc.SubmitSell(r.Context(), symbol).Write(w)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request, orderID string) {
	h.svc.CancelOrder(r.Context(), orderID).Write(w)
}

func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request, exchangeWire string) {
	h.svc.ListActiveAssets(r.Context(), exchangeWire).Write(w)
}

func (h *Handler) Account(w http.ResponseWriter, r *http.Request) {
	h.svc.AccountStatus(r.Context()).Write(w)
}

func (h *Handler) Clock(w http.ResponseWriter, r *http.Request) {
	h.svc.MarketClock(r.Context()).Write(w)
}
