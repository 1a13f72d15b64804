package exchange

// Exchange is a closed set of trading venues known to the broker. The zero
// value is Unknown so an uninitialized Exchange never aliases a real venue.
type Exchange int

const (
	Unknown Exchange = iota
	AmericanStockExchange
	ArchipelagoExchange
	BatsGlobalMarkets
	NewYorkStockExchange
	NasdaqStockMarket
	NYSEArca
	NYSEAmerican
	InvestorsExchange
	OverTheCounter
)

// wireNames maps each venue to the code the broker API and inbound requests
// use for it. Internal identifiers and wire codes deliberately differ.
var wireNames = map[Exchange]string{
	AmericanStockExchange: "AMEX",
	ArchipelagoExchange:   "ARCA",
	BatsGlobalMarkets:     "BATS",
	NewYorkStockExchange:  "NYSE",
	NasdaqStockMarket:     "NASDAQ",
	NYSEArca:              "NYSEARCA",
	NYSEAmerican:          "NYSEMKT",
	InvestorsExchange:     "IEX",
	OverTheCounter:        "OTC",
}

var byWire = make(map[string]Exchange, len(wireNames))

func init() {
	for ex, wire := range wireNames {
		byWire[wire] = ex
	}
}

// Resolve maps a wire code to its venue. Matching is exact and
// case-sensitive; anything else resolves to Unknown. A miss is a value the
// caller branches on, never an error.
func Resolve(wire string) Exchange {
	if ex, ok := byWire[wire]; ok {
		return ex
	}
	return Unknown
}

// Wire returns the venue's wire code, or "" for Unknown.
func (e Exchange) Wire() string {
	return wireNames[e]
}

func (e Exchange) String() string {
	if wire, ok := wireNames[e]; ok {
		return wire
	}
	return "unknown"
}
