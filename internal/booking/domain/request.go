package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TradeBookingRequest 预订请求的扁平化超集，ProductType 决定哪些可选字段有语义
type TradeBookingRequest struct {
	TradeReference string          `json:"trade_reference"`
	CounterpartyID uint            `json:"counterparty_id"`
	ProductType    ProductType     `json:"product_type"`
	BaseCurrency   string          `json:"base_currency"`
	QuoteCurrency  string          `json:"quote_currency"`
	NotionalAmount decimal.Decimal `json:"notional_amount"`

	TradeDate    time.Time  `json:"trade_date"`
	ValueDate    time.Time  `json:"value_date"`
	MaturityDate *time.Time `json:"maturity_date,omitempty"`

	// 期权字段
	OptionType           *OptionType       `json:"option_type,omitempty"`
	ExoticType           *ExoticOptionType `json:"exotic_type,omitempty"`
	StrikePrice          *decimal.Decimal  `json:"strike_price,omitempty"`
	BarrierLevel         *decimal.Decimal  `json:"barrier_level,omitempty"`
	KnockDirection       *BarrierDirection `json:"knock_direction,omitempty"`
	ObservationFrequency *string           `json:"observation_frequency,omitempty"`

	// 外汇合约字段
	FXContractType *FXContractType  `json:"fx_contract_type,omitempty"`
	SpotRate       *decimal.Decimal `json:"spot_rate,omitempty"`
	ForwardRate    *decimal.Decimal `json:"forward_rate,omitempty"`

	// 掉期字段
	SwapType          *SwapType        `json:"swap_type,omitempty"`
	NearLegDate       *time.Time       `json:"near_leg_date,omitempty"`
	FarLegDate        *time.Time       `json:"far_leg_date,omitempty"`
	NearLegRate       *decimal.Decimal `json:"near_leg_rate,omitempty"`
	FarLegRate        *decimal.Decimal `json:"far_leg_rate,omitempty"`
	NearLegAmount     *decimal.Decimal `json:"near_leg_amount,omitempty"`
	FarLegAmount      *decimal.Decimal `json:"far_leg_amount,omitempty"`
	FixedRate         *decimal.Decimal `json:"fixed_rate,omitempty"`
	FloatingRateIndex *string          `json:"floating_rate_index,omitempty"`
	PaymentFrequency  *string          `json:"payment_frequency,omitempty"`

	// 期权费字段
	PremiumAmount   *decimal.Decimal `json:"premium_amount,omitempty"`
	PremiumCurrency *string          `json:"premium_currency,omitempty"`

	CreatedBy string `json:"created_by,omitempty"`
}

// Normalize 去除前后空白并将货币代码统一为大写
func (r *TradeBookingRequest) Normalize() {
	r.TradeReference = strings.TrimSpace(r.TradeReference)
	r.BaseCurrency = strings.ToUpper(strings.TrimSpace(r.BaseCurrency))
	r.QuoteCurrency = strings.ToUpper(strings.TrimSpace(r.QuoteCurrency))
	if r.PremiumCurrency != nil {
		upper := strings.ToUpper(strings.TrimSpace(*r.PremiumCurrency))
		r.PremiumCurrency = &upper
	}
	if r.FloatingRateIndex != nil {
		upper := strings.ToUpper(strings.TrimSpace(*r.FloatingRateIndex))
		r.FloatingRateIndex = &upper
	}
}

// IsInterestRateSwap 是否利率掉期（单币种产品）
func (r *TradeBookingRequest) IsInterestRateSwap() bool {
	return r.ProductType == ProductTypeSwap && r.SwapType != nil && *r.SwapType == SwapTypeInterestRateSwap
}

// RequiresStrike 产品是否要求行权价
func (r *TradeBookingRequest) RequiresStrike() bool {
	return r.ProductType.IsOption()
}
