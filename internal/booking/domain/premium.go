package domain

import "github.com/shopspring/decimal"

// defaultPremiumBaseRate 缺省期权费的年化基准费率
var defaultPremiumBaseRate = decimal.RequireFromString("0.02")

var daysPerYear = decimal.NewFromInt(365)

// ApplyDefaultPremium 期权类交易未显式给出期权费时计算缺省值:
// notional × 0.02 × (到期天数 / 365)，币种取基础货币。
// 这是参考性定价占位，不是估值模型。返回是否发生了缺省填充。
func (t *Trade) ApplyDefaultPremium() bool {
	if !t.IsOption() || t.PremiumAmount != nil {
		return false
	}
	days := t.DaysToMaturity()
	if days <= 0 {
		return false
	}
	premium := t.NotionalAmount.
		Mul(defaultPremiumBaseRate).
		Mul(decimal.NewFromInt(int64(days))).
		Div(daysPerYear).
		Round(2)
	t.PremiumAmount = &premium
	currency := t.BaseCurrency
	t.PremiumCurrency = &currency
	return true
}
