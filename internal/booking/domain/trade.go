package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Trade 交易聚合根。可选字段的填充集合必须与 ProductType 严格对应，
// 构建只经过 BuildTrade，状态变更只经过状态机。
type Trade struct {
	gorm.Model
	TradeReference   string      `gorm:"column:trade_reference;type:varchar(50);uniqueIndex;not null" json:"trade_reference"`
	CounterpartyID   uint        `gorm:"column:counterparty_id;index;not null" json:"counterparty_id"`
	CounterpartyCode string      `gorm:"column:counterparty_code;type:varchar(20);index" json:"counterparty_code"`
	ProductType      ProductType `gorm:"column:product_type;type:varchar(20);index;not null" json:"product_type"`

	BaseCurrency   string          `gorm:"column:base_currency;type:varchar(3);not null" json:"base_currency"`
	QuoteCurrency  string          `gorm:"column:quote_currency;type:varchar(3);not null" json:"quote_currency"`
	NotionalAmount decimal.Decimal `gorm:"column:notional_amount;type:decimal(20,2);not null" json:"notional_amount"`

	TradeDate    time.Time  `gorm:"column:trade_date;not null" json:"trade_date"`
	ValueDate    time.Time  `gorm:"column:value_date;not null" json:"value_date"`
	MaturityDate *time.Time `gorm:"column:maturity_date;index" json:"maturity_date,omitempty"`

	Status TradeStatus `gorm:"column:status;type:varchar(10);index;not null" json:"status"`

	// 期权字段
	OptionType           *OptionType       `gorm:"column:option_type;type:varchar(4)" json:"option_type,omitempty"`
	ExoticType           *ExoticOptionType `gorm:"column:exotic_type;type:varchar(10)" json:"exotic_type,omitempty"`
	StrikePrice          *decimal.Decimal  `gorm:"column:strike_price;type:decimal(18,6)" json:"strike_price,omitempty"`
	BarrierLevel         *decimal.Decimal  `gorm:"column:barrier_level;type:decimal(18,6)" json:"barrier_level,omitempty"`
	KnockDirection       *BarrierDirection `gorm:"column:knock_direction;type:varchar(3)" json:"knock_direction,omitempty"`
	ObservationFrequency *string           `gorm:"column:observation_frequency;type:varchar(20)" json:"observation_frequency,omitempty"`

	// 外汇合约字段
	FXContractType *FXContractType  `gorm:"column:fx_contract_type;type:varchar(7)" json:"fx_contract_type,omitempty"`
	SpotRate       *decimal.Decimal `gorm:"column:spot_rate;type:decimal(18,6)" json:"spot_rate,omitempty"`
	ForwardRate    *decimal.Decimal `gorm:"column:forward_rate;type:decimal(18,6)" json:"forward_rate,omitempty"`

	// 掉期字段
	SwapType          *SwapType        `gorm:"column:swap_type;type:varchar(20)" json:"swap_type,omitempty"`
	NearLegDate       *time.Time       `gorm:"column:near_leg_date" json:"near_leg_date,omitempty"`
	FarLegDate        *time.Time       `gorm:"column:far_leg_date" json:"far_leg_date,omitempty"`
	NearLegRate       *decimal.Decimal `gorm:"column:near_leg_rate;type:decimal(18,6)" json:"near_leg_rate,omitempty"`
	FarLegRate        *decimal.Decimal `gorm:"column:far_leg_rate;type:decimal(18,6)" json:"far_leg_rate,omitempty"`
	NearLegAmount     *decimal.Decimal `gorm:"column:near_leg_amount;type:decimal(20,2)" json:"near_leg_amount,omitempty"`
	FarLegAmount      *decimal.Decimal `gorm:"column:far_leg_amount;type:decimal(20,2)" json:"far_leg_amount,omitempty"`
	FixedRate         *decimal.Decimal `gorm:"column:fixed_rate;type:decimal(12,6)" json:"fixed_rate,omitempty"`
	FloatingRateIndex *string          `gorm:"column:floating_rate_index;type:varchar(10)" json:"floating_rate_index,omitempty"`
	PaymentFrequency  *string          `gorm:"column:payment_frequency;type:varchar(20)" json:"payment_frequency,omitempty"`

	// 期权费字段
	PremiumAmount   *decimal.Decimal `gorm:"column:premium_amount;type:decimal(20,2)" json:"premium_amount,omitempty"`
	PremiumCurrency *string          `gorm:"column:premium_currency;type:varchar(3)" json:"premium_currency,omitempty"`

	CreatedBy   string     `gorm:"column:created_by;type:varchar(50)" json:"created_by"`
	ConfirmedAt *time.Time `gorm:"column:confirmed_at" json:"confirmed_at,omitempty"`
	SettledAt   *time.Time `gorm:"column:settled_at" json:"settled_at,omitempty"`
	CancelledAt *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`
	ExpiredAt   *time.Time `gorm:"column:expired_at" json:"expired_at,omitempty"`
}

func (Trade) TableName() string {
	return "trades"
}

// IsOption 是否期权类交易
func (t *Trade) IsOption() bool {
	return t.ProductType.IsOption()
}

// DaysToMaturity 交易日到到期日的天数，无到期日返回 0
func (t *Trade) DaysToMaturity() int {
	if t.MaturityDate == nil {
		return 0
	}
	return int(t.MaturityDate.Sub(t.TradeDate).Hours() / 24)
}

// BuildTrade 由已通过校验的请求与已解析的对手方构建交易。
// 状态强制为 PENDING，与调用方传入无关；只复制 ProductType 对应的可选字段。
// 此处不产生业务错误，缺字段属于编程契约违反。
func BuildTrade(req *TradeBookingRequest, counterparty *Counterparty) *Trade {
	t := &Trade{
		TradeReference:   req.TradeReference,
		CounterpartyID:   counterparty.ID,
		CounterpartyCode: counterparty.Code,
		ProductType:      req.ProductType,
		BaseCurrency:     req.BaseCurrency,
		QuoteCurrency:    req.QuoteCurrency,
		NotionalAmount:   req.NotionalAmount,
		TradeDate:        req.TradeDate,
		ValueDate:        req.ValueDate,
		MaturityDate:     req.MaturityDate,
		Status:           TradeStatusPending,
		CreatedBy:        req.CreatedBy,
	}

	switch req.ProductType {
	case ProductTypeVanillaOption:
		t.OptionType = req.OptionType
		t.StrikePrice = req.StrikePrice
		t.SpotRate = req.SpotRate
	case ProductTypeExoticOption:
		t.OptionType = req.OptionType
		t.StrikePrice = req.StrikePrice
		t.SpotRate = req.SpotRate
		t.ExoticType = req.ExoticType
		if req.ExoticType != nil {
			switch *req.ExoticType {
			case ExoticOptionTypeBarrier:
				t.BarrierLevel = req.BarrierLevel
				t.KnockDirection = req.KnockDirection
			case ExoticOptionTypeAsian:
				t.ObservationFrequency = req.ObservationFrequency
			}
		}
	case ProductTypeFXContract:
		t.FXContractType = req.FXContractType
		if req.FXContractType != nil && *req.FXContractType == FXContractTypeForward {
			t.ForwardRate = req.ForwardRate
		}
		t.SpotRate = req.SpotRate
	case ProductTypeSwap:
		t.SwapType = req.SwapType
		if req.SwapType != nil {
			switch *req.SwapType {
			case SwapTypeFXSwap, SwapTypeCurrencySwap:
				t.NearLegDate = req.NearLegDate
				t.FarLegDate = req.FarLegDate
				t.NearLegRate = req.NearLegRate
				t.FarLegRate = req.FarLegRate
				t.NearLegAmount = req.NearLegAmount
				t.FarLegAmount = req.FarLegAmount
			case SwapTypeInterestRateSwap:
				t.FixedRate = req.FixedRate
				t.FloatingRateIndex = req.FloatingRateIndex
				t.PaymentFrequency = req.PaymentFrequency
			}
		}
	}

	if req.ProductType.IsOption() {
		t.PremiumAmount = req.PremiumAmount
		t.PremiumCurrency = req.PremiumCurrency
	}

	return t
}
