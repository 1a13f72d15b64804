package types

type OrderSide string

type AssetListStyle string

type AccountDetail string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

const (
	AssetListLabels AssetListStyle = "labels"
	AssetListCount  AssetListStyle = "count"
)

const (
	AccountDetailFull        AccountDetail = "full"
	AccountDetailBuyingPower AccountDetail = "buying_power"
)
