package domain

// ProductType 产品类型
type ProductType string

const (
	ProductTypeVanillaOption ProductType = "VANILLA_OPTION"
	ProductTypeExoticOption  ProductType = "EXOTIC_OPTION"
	ProductTypeFXContract    ProductType = "FX_CONTRACT"
	ProductTypeSwap          ProductType = "SWAP"
)

// AllProductTypes 全部产品类型，校验器注册表按此构建
var AllProductTypes = []ProductType{
	ProductTypeVanillaOption,
	ProductTypeExoticOption,
	ProductTypeFXContract,
	ProductTypeSwap,
}

func (p ProductType) IsValid() bool {
	switch p {
	case ProductTypeVanillaOption, ProductTypeExoticOption, ProductTypeFXContract, ProductTypeSwap:
		return true
	}
	return false
}

// IsOption 期权类产品（普通期权与奇异期权）
func (p ProductType) IsOption() bool {
	return p == ProductTypeVanillaOption || p == ProductTypeExoticOption
}

// OptionType 期权方向
type OptionType string

const (
	OptionTypeCall OptionType = "CALL"
	OptionTypePut  OptionType = "PUT"
)

func (o OptionType) IsValid() bool {
	return o == OptionTypeCall || o == OptionTypePut
}

// ExoticOptionType 奇异期权子类型
type ExoticOptionType string

const (
	ExoticOptionTypeBarrier ExoticOptionType = "BARRIER"
	ExoticOptionTypeAsian   ExoticOptionType = "ASIAN"
	ExoticOptionTypeDigital ExoticOptionType = "DIGITAL"
)

func (e ExoticOptionType) IsValid() bool {
	switch e {
	case ExoticOptionTypeBarrier, ExoticOptionTypeAsian, ExoticOptionTypeDigital:
		return true
	}
	return false
}

// BarrierDirection 障碍期权敲入/敲出方向
type BarrierDirection string

const (
	BarrierDirectionIn  BarrierDirection = "IN"
	BarrierDirectionOut BarrierDirection = "OUT"
)

func (b BarrierDirection) IsValid() bool {
	return b == BarrierDirectionIn || b == BarrierDirectionOut
}

// FXContractType 外汇合约子类型
type FXContractType string

const (
	FXContractTypeForward FXContractType = "FORWARD"
	FXContractTypeSpot    FXContractType = "SPOT"
)

func (f FXContractType) IsValid() bool {
	return f == FXContractTypeForward || f == FXContractTypeSpot
}

// SwapType 掉期子类型
type SwapType string

const (
	SwapTypeFXSwap           SwapType = "FX_SWAP"
	SwapTypeCurrencySwap     SwapType = "CURRENCY_SWAP"
	SwapTypeInterestRateSwap SwapType = "INTEREST_RATE_SWAP"
)

func (s SwapType) IsValid() bool {
	switch s {
	case SwapTypeFXSwap, SwapTypeCurrencySwap, SwapTypeInterestRateSwap:
		return true
	}
	return false
}

// TradeStatus 交易状态
type TradeStatus string

const (
	TradeStatusPending   TradeStatus = "PENDING"
	TradeStatusConfirmed TradeStatus = "CONFIRMED"
	TradeStatusSettled   TradeStatus = "SETTLED"
	TradeStatusCancelled TradeStatus = "CANCELLED"
	TradeStatusExpired   TradeStatus = "EXPIRED"
)

func (s TradeStatus) IsValid() bool {
	switch s {
	case TradeStatusPending, TradeStatusConfirmed, TradeStatusSettled, TradeStatusCancelled, TradeStatusExpired:
		return true
	}
	return false
}

// IsTerminal 终态：不允许再流转
func (s TradeStatus) IsTerminal() bool {
	switch s {
	case TradeStatusSettled, TradeStatusCancelled, TradeStatusExpired:
		return true
	}
	return false
}

// supportedFloatingIndices 利率掉期支持的浮动利率指数
var supportedFloatingIndices = map[string]struct{}{
	"SOFR":    {},
	"LIBOR":   {},
	"EURIBOR": {},
	"SONIA":   {},
	"TONAR":   {},
}

// IsSupportedFloatingIndex 判断浮动利率指数是否受支持
func IsSupportedFloatingIndex(index string) bool {
	_, ok := supportedFloatingIndices[index]
	return ok
}

// majorCurrencies 常见主流货币，非主流货币仅产生提示
var majorCurrencies = map[string]struct{}{
	"USD": {}, "EUR": {}, "GBP": {}, "JPY": {}, "CHF": {},
	"AUD": {}, "NZD": {}, "CAD": {}, "SEK": {}, "NOK": {},
	"SGD": {}, "HKD": {}, "CNY": {},
}

// IsMajorCurrency 判断是否主流货币
func IsMajorCurrency(code string) bool {
	_, ok := majorCurrencies[code]
	return ok
}
