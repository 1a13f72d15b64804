package trading

import (
	"strconv"
	"strings"
)

// Validation reasons reported to the caller. The first failing rule wins;
// later rules must never mask an earlier failure.
const (
	reasonEmpty       = "ticker/market position size is empty"
	reasonUnparsable  = "position size could not be parsed"
	reasonNonPositive = "position size is zero or negative"
)

// validateTrade checks an inbound trade request before any remote call is
// made. It returns the cleaned symbol and quantity, or a non-empty reason.
func validateTrade(ticker, positionSize string) (string, int64, string) {
	symbol := strings.TrimSpace(ticker)
	sizeRaw := strings.TrimSpace(positionSize)
	if symbol == "" || sizeRaw == "" {
		return "", 0, reasonEmpty
	}
	qty, err := strconv.ParseInt(sizeRaw, 10, 64)
	if err != nil {
		return "", 0, reasonUnparsable
	}
	if qty <= 0 {
		return "", 0, reasonNonPositive
	}
	return symbol, qty, ""
}
