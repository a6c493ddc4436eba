package http

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/fxbooking/internal/booking/domain"
)

const dateLayout = "2006-01-02"

// BookTradeRequest 录入请求的 HTTP 形态，日期与金额均为字符串
type BookTradeRequest struct {
	TradeReference string `json:"trade_reference" binding:"required"`
	CounterpartyID uint   `json:"counterparty_id" binding:"required"`
	ProductType    string `json:"product_type" binding:"required"`
	BaseCurrency   string `json:"base_currency" binding:"required"`
	QuoteCurrency  string `json:"quote_currency" binding:"required"`
	NotionalAmount string `json:"notional_amount" binding:"required"`

	TradeDate    string  `json:"trade_date" binding:"required"`
	ValueDate    string  `json:"value_date" binding:"required"`
	MaturityDate *string `json:"maturity_date,omitempty"`

	OptionType           *string `json:"option_type,omitempty"`
	ExoticType           *string `json:"exotic_type,omitempty"`
	StrikePrice          *string `json:"strike_price,omitempty"`
	BarrierLevel         *string `json:"barrier_level,omitempty"`
	KnockDirection       *string `json:"knock_direction,omitempty"`
	ObservationFrequency *string `json:"observation_frequency,omitempty"`

	FXContractType *string `json:"fx_contract_type,omitempty"`
	SpotRate       *string `json:"spot_rate,omitempty"`
	ForwardRate    *string `json:"forward_rate,omitempty"`

	SwapType          *string `json:"swap_type,omitempty"`
	NearLegDate       *string `json:"near_leg_date,omitempty"`
	FarLegDate        *string `json:"far_leg_date,omitempty"`
	NearLegRate       *string `json:"near_leg_rate,omitempty"`
	FarLegRate        *string `json:"far_leg_rate,omitempty"`
	NearLegAmount     *string `json:"near_leg_amount,omitempty"`
	FarLegAmount      *string `json:"far_leg_amount,omitempty"`
	FixedRate         *string `json:"fixed_rate,omitempty"`
	FloatingRateIndex *string `json:"floating_rate_index,omitempty"`
	PaymentFrequency  *string `json:"payment_frequency,omitempty"`

	PremiumAmount   *string `json:"premium_amount,omitempty"`
	PremiumCurrency *string `json:"premium_currency,omitempty"`

	CreatedBy string `json:"created_by,omitempty"`
}

// UpdateStatusRequest 状态变更请求
type UpdateStatusRequest struct {
	NewStatus string `json:"new_status" binding:"required"`
}

// ToDomain 转换为领域层请求
func (r *BookTradeRequest) ToDomain() (*domain.TradeBookingRequest, error) {
	notional, err := decimal.NewFromString(r.NotionalAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid notional_amount: %q", r.NotionalAmount)
	}
	tradeDate, err := parseDate("trade_date", r.TradeDate)
	if err != nil {
		return nil, err
	}
	valueDate, err := parseDate("value_date", r.ValueDate)
	if err != nil {
		return nil, err
	}
	maturityDate, err := parseDatePtr("maturity_date", r.MaturityDate)
	if err != nil {
		return nil, err
	}

	req := &domain.TradeBookingRequest{
		TradeReference: r.TradeReference,
		CounterpartyID: r.CounterpartyID,
		ProductType:    domain.ProductType(r.ProductType),
		BaseCurrency:   r.BaseCurrency,
		QuoteCurrency:  r.QuoteCurrency,
		NotionalAmount: notional,
		TradeDate:      tradeDate,
		ValueDate:      valueDate,
		MaturityDate:   maturityDate,
		CreatedBy:      r.CreatedBy,
	}

	if r.OptionType != nil {
		v := domain.OptionType(*r.OptionType)
		req.OptionType = &v
	}
	if r.ExoticType != nil {
		v := domain.ExoticOptionType(*r.ExoticType)
		req.ExoticType = &v
	}
	if r.KnockDirection != nil {
		v := domain.BarrierDirection(*r.KnockDirection)
		req.KnockDirection = &v
	}
	if r.FXContractType != nil {
		v := domain.FXContractType(*r.FXContractType)
		req.FXContractType = &v
	}
	if r.SwapType != nil {
		v := domain.SwapType(*r.SwapType)
		req.SwapType = &v
	}
	req.ObservationFrequency = r.ObservationFrequency
	req.FloatingRateIndex = r.FloatingRateIndex
	req.PaymentFrequency = r.PaymentFrequency
	req.PremiumCurrency = r.PremiumCurrency

	if req.StrikePrice, err = parseDecimalPtr("strike_price", r.StrikePrice); err != nil {
		return nil, err
	}
	if req.BarrierLevel, err = parseDecimalPtr("barrier_level", r.BarrierLevel); err != nil {
		return nil, err
	}
	if req.SpotRate, err = parseDecimalPtr("spot_rate", r.SpotRate); err != nil {
		return nil, err
	}
	if req.ForwardRate, err = parseDecimalPtr("forward_rate", r.ForwardRate); err != nil {
		return nil, err
	}
	if req.NearLegRate, err = parseDecimalPtr("near_leg_rate", r.NearLegRate); err != nil {
		return nil, err
	}
	if req.FarLegRate, err = parseDecimalPtr("far_leg_rate", r.FarLegRate); err != nil {
		return nil, err
	}
	if req.NearLegAmount, err = parseDecimalPtr("near_leg_amount", r.NearLegAmount); err != nil {
		return nil, err
	}
	if req.FarLegAmount, err = parseDecimalPtr("far_leg_amount", r.FarLegAmount); err != nil {
		return nil, err
	}
	if req.FixedRate, err = parseDecimalPtr("fixed_rate", r.FixedRate); err != nil {
		return nil, err
	}
	if req.PremiumAmount, err = parseDecimalPtr("premium_amount", r.PremiumAmount); err != nil {
		return nil, err
	}
	if req.NearLegDate, err = parseDatePtr("near_leg_date", r.NearLegDate); err != nil {
		return nil, err
	}
	if req.FarLegDate, err = parseDatePtr("far_leg_date", r.FarLegDate); err != nil {
		return nil, err
	}

	return req, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %q, expected YYYY-MM-DD", field, value)
	}
	return t, nil
}

func parseDatePtr(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseDecimalPtr(field string, value *string) (*decimal.Decimal, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(*value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", field, *value)
	}
	return &d, nil
}
