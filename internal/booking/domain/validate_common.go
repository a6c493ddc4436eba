package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	minNotional = decimal.NewFromInt(10000)
	maxNotional = decimal.NewFromInt(1000000000)
	minStrike   = decimal.RequireFromString("0.000001")
	maxStrike   = decimal.NewFromInt(1000000)
)

// hasAtMostDecimalPlaces 小数位数不超过 n
func hasAtMostDecimalPlaces(d decimal.Decimal, n int32) bool {
	return d.Equal(d.Truncate(n))
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// ValidateCommon 所有产品共用的请求校验。按固定顺序执行，命中第一条即返回。
// now 为校验时刻，便于测试注入。
func ValidateCommon(req *TradeBookingRequest, now time.Time) error {
	// 到期日等于交易日是最常见的录入错误，先于其他所有规则检查
	if req.MaturityDate != nil && !req.TradeDate.IsZero() && sameDay(*req.MaturityDate, req.TradeDate) {
		return NewRuleError("maturity_date", "Same-day options are not supported")
	}
	if req.TradeReference == "" {
		return NewRuleError("trade_reference", "Trade reference is required")
	}
	if len(req.TradeReference) > 50 {
		return NewRuleError("trade_reference", "Trade reference must not exceed 50 characters")
	}
	if req.CounterpartyID == 0 {
		return NewRuleError("counterparty_id", "Counterparty id is required and must be positive")
	}
	if !req.ProductType.IsValid() {
		return NewRuleError("product_type", fmt.Sprintf("Unknown product type: %s", req.ProductType))
	}

	if len(req.BaseCurrency) != 3 {
		return NewRuleError("base_currency", "Base currency must be a 3-letter code")
	}
	if len(req.QuoteCurrency) != 3 {
		return NewRuleError("quote_currency", "Quote currency must be a 3-letter code")
	}
	if req.IsInterestRateSwap() {
		if req.BaseCurrency != req.QuoteCurrency {
			return NewRuleError("currency_pair", "Interest rate swaps must be single-currency: base and quote currency must be identical")
		}
	} else if req.BaseCurrency == req.QuoteCurrency {
		return NewRuleError("currency_pair", "Base and quote currency must differ")
	}

	if req.NotionalAmount.IsZero() {
		return NewRuleError("notional_amount", "Notional amount is required")
	}
	if req.NotionalAmount.LessThan(minNotional) {
		return NewRuleError("notional_amount", "Notional amount must be at least 10000.00")
	}
	if req.NotionalAmount.GreaterThan(maxNotional) {
		return NewRuleError("notional_amount", "Notional amount must not exceed 1000000000.00")
	}
	if !hasAtMostDecimalPlaces(req.NotionalAmount, 2) {
		return NewRuleError("notional_amount", "Notional amount must have at most 2 decimal places")
	}

	if req.RequiresStrike() {
		if req.StrikePrice == nil {
			return NewRuleError("strike_price", "Strike price is required")
		}
		if !req.StrikePrice.GreaterThan(minStrike) {
			return NewRuleError("strike_price", "Strike price must be greater than 0.000001")
		}
		if req.StrikePrice.GreaterThan(maxStrike) {
			return NewRuleError("strike_price", "Strike price must not exceed 1000000")
		}
		if !hasAtMostDecimalPlaces(*req.StrikePrice, 6) {
			return NewRuleError("strike_price", "Strike price must have at most 6 decimal places")
		}
	}

	if req.TradeDate.IsZero() {
		return NewRuleError("trade_date", "Trade date is required")
	}
	if req.TradeDate.After(now.AddDate(0, 0, 1)) {
		return NewRuleError("trade_date", "Trade date must not be more than 1 day in the future")
	}
	if req.ValueDate.IsZero() {
		return NewRuleError("value_date", "Value date is required")
	}
	if req.ValueDate.Before(req.TradeDate.AddDate(0, 0, 1)) {
		return NewRuleError("value_date", "Value date must be at least 1 day after trade date")
	}
	if req.MaturityDate != nil {
		if req.MaturityDate.Before(req.ValueDate.AddDate(0, 0, 1)) {
			return NewRuleError("maturity_date", "Maturity date must be at least 1 day after value date")
		}
		if req.MaturityDate.After(req.TradeDate.AddDate(10, 0, 0)) {
			return NewRuleError("maturity_date", "Maturity tenor must not exceed 10 years")
		}
	}
	if isWeekend(req.ValueDate) {
		return NewRuleError("value_date", "Value date must fall on a weekday")
	}
	if req.MaturityDate != nil && isWeekend(*req.MaturityDate) {
		return NewRuleError("maturity_date", "Maturity date must fall on a weekday")
	}

	if (req.PremiumAmount == nil) != (req.PremiumCurrency == nil) {
		return NewRuleError("premium", "Premium amount and premium currency must be supplied together")
	}
	if req.PremiumAmount != nil {
		if !req.PremiumAmount.IsPositive() {
			return NewRuleError("premium_amount", "Premium amount must be positive")
		}
		if !hasAtMostDecimalPlaces(*req.PremiumAmount, 2) {
			return NewRuleError("premium_amount", "Premium amount must have at most 2 decimal places")
		}
		if len(*req.PremiumCurrency) != 3 {
			return NewRuleError("premium_currency", "Premium currency must be a 3-letter code")
		}
	}

	return nil
}

// Advisory 非阻断提示，仅记录不影响录入结果
type Advisory struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// usdQuoteConvention 按市场惯例 USD 应作为报价货币的基础货币集合
var usdQuoteConvention = map[string]struct{}{
	"EUR": {}, "GBP": {}, "AUD": {}, "NZD": {},
}

var largeTradeThreshold = decimal.NewFromInt(100000000)

// CollectBookingAdvisories 收集录入请求的提示信息，独立于校验结果
func CollectBookingAdvisories(req *TradeBookingRequest) []Advisory {
	var advisories []Advisory

	if !IsMajorCurrency(req.BaseCurrency) {
		advisories = append(advisories, Advisory{
			Code:    "NON_MAJOR_CURRENCY",
			Message: fmt.Sprintf("Base currency %s is not a major currency", req.BaseCurrency),
		})
	}
	if !IsMajorCurrency(req.QuoteCurrency) {
		advisories = append(advisories, Advisory{
			Code:    "NON_MAJOR_CURRENCY",
			Message: fmt.Sprintf("Quote currency %s is not a major currency", req.QuoteCurrency),
		})
	}
	if _, ok := usdQuoteConvention[req.QuoteCurrency]; ok && req.BaseCurrency == "USD" {
		advisories = append(advisories, Advisory{
			Code:    "NON_CANONICAL_PAIR",
			Message: fmt.Sprintf("Pair USD/%s is quoted against market convention", req.QuoteCurrency),
		})
	}
	if req.NotionalAmount.GreaterThan(largeTradeThreshold) {
		advisories = append(advisories, Advisory{
			Code:    "LARGE_TRADE",
			Message: fmt.Sprintf("Notional amount %s exceeds 100000000", req.NotionalAmount.String()),
		})
	}
	if req.MaturityDate != nil && req.MaturityDate.Before(req.TradeDate.AddDate(0, 0, 7)) {
		advisories = append(advisories, Advisory{
			Code:    "SHORT_TENOR",
			Message: "Maturity is less than 7 days from trade date",
		})
	}
	if req.StrikePrice != nil && req.SpotRate != nil && req.SpotRate.IsPositive() {
		diff := req.StrikePrice.Sub(*req.SpotRate).Abs().Div(*req.SpotRate)
		if diff.GreaterThan(decimal.RequireFromString("0.5")) {
			advisories = append(advisories, Advisory{
				Code:    "STRIKE_FAR_FROM_SPOT",
				Message: fmt.Sprintf("Strike %s is more than 50%% away from spot %s", req.StrikePrice.String(), req.SpotRate.String()),
			})
		}
	}

	return advisories
}
