package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"tv-gateway/internal/types"
)

type Config struct {
	HTTPAddr          string
	DBDSN             string
	AlpacaKeyID       string
	AlpacaSecretKey   string
	AlpacaBaseURL     string
	BrokerTimeout     time.Duration
	AssetListStyle    types.AssetListStyle
	AccountDetail     types.AccountDetail
	WSOrigin          string
	ClockPushInterval time.Duration
}

const defaultBaseURL = "https://paper-api.alpaca.markets"

func Load() (Config, error) {
	var c Config
	var missing []string
	c.HTTPAddr = os.Getenv("HTTP_ADDR")
	if c.HTTPAddr == "" {
		missing = append(missing, "HTTP_ADDR")
	}
	c.DBDSN = os.Getenv("DB_DSN")
	if c.DBDSN == "" {
		missing = append(missing, "DB_DSN")
	}
	c.AlpacaKeyID = os.Getenv("ALPACA_KEY_ID")
	if c.AlpacaKeyID == "" {
		missing = append(missing, "ALPACA_KEY_ID")
	}
	c.AlpacaSecretKey = os.Getenv("ALPACA_SECRET_KEY")
	if c.AlpacaSecretKey == "" {
		missing = append(missing, "ALPACA_SECRET_KEY")
	}
	c.AlpacaBaseURL = os.Getenv("ALPACA_BASE_URL")
	if c.AlpacaBaseURL == "" {
		c.AlpacaBaseURL = defaultBaseURL
	}
	brokerTimeout := os.Getenv("BROKER_TIMEOUT")
	if brokerTimeout == "" {
		c.BrokerTimeout = 10 * time.Second
	} else {
		d, err := time.ParseDuration(brokerTimeout)
		if err != nil {
			return c, err
		}
		c.BrokerTimeout = d
	}
	listStyle := strings.ToLower(strings.TrimSpace(os.Getenv("ASSET_LIST_STYLE")))
	switch types.AssetListStyle(listStyle) {
	case "":
		c.AssetListStyle = types.AssetListLabels
	case types.AssetListLabels, types.AssetListCount:
		c.AssetListStyle = types.AssetListStyle(listStyle)
	default:
		return c, errors.New("invalid ASSET_LIST_STYLE: use labels or count")
	}
	detail := strings.ToLower(strings.TrimSpace(os.Getenv("ACCOUNT_DETAIL")))
	switch types.AccountDetail(detail) {
	case "":
		c.AccountDetail = types.AccountDetailFull
	case types.AccountDetailFull, types.AccountDetailBuyingPower:
		c.AccountDetail = types.AccountDetail(detail)
	default:
		return c, errors.New("invalid ACCOUNT_DETAIL: use full or buying_power")
	}
	c.WSOrigin = os.Getenv("WS_ORIGIN")
	if c.WSOrigin == "" {
		c.WSOrigin = "*"
	}
	clockInterval := os.Getenv("CLOCK_PUSH_INTERVAL")
	if clockInterval == "" {
		c.ClockPushInterval = time.Second
	} else {
		d, err := time.ParseDuration(clockInterval)
		if err != nil {
			return c, err
		}
		c.ClockPushInterval = d
	}
	if len(missing) > 0 {
		return c, errors.New("missing required env: " + strings.Join(missing, ","))
	}
	return c, nil
}
