package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	// 周一/周三/周四，避开周末规则
	testTradeDate    = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	testValueDate    = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	testMaturityDate = time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string { return &s }

func validVanillaRequest() *TradeBookingRequest {
	optionType := OptionTypeCall
	maturity := testMaturityDate
	return &TradeBookingRequest{
		TradeReference: "TRD-001",
		CounterpartyID: 1,
		ProductType:    ProductTypeVanillaOption,
		BaseCurrency:   "EUR",
		QuoteCurrency:  "USD",
		NotionalAmount: decimal.RequireFromString("100000.00"),
		TradeDate:      testTradeDate,
		ValueDate:      testValueDate,
		MaturityDate:   &maturity,
		OptionType:     &optionType,
		StrikePrice:    decPtr("1.2500"),
		SpotRate:       decPtr("1.2000"),
		CreatedBy:      "trader1",
	}
}

func TestValidateCommon_ValidRequest(t *testing.T) {
	req := validVanillaRequest()
	req.Normalize()
	require.NoError(t, ValidateCommon(req, testNow))
}

func TestValidateCommon_TradeReference(t *testing.T) {
	req := validVanillaRequest()
	req.TradeReference = ""
	err := ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Trade reference is required", err.Error())

	req.TradeReference = string(make([]byte, 51))
	err = ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Trade reference must not exceed 50 characters", err.Error())
}

func TestValidateCommon_CounterpartyID(t *testing.T) {
	req := validVanillaRequest()
	req.CounterpartyID = 0
	err := ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Counterparty id is required and must be positive", err.Error())
}

func TestValidateCommon_UnknownProductType(t *testing.T) {
	req := validVanillaRequest()
	req.ProductType = "BOND"
	err := ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown product type")
}

func TestValidateCommon_Currencies(t *testing.T) {
	req := validVanillaRequest()
	req.BaseCurrency = "EURO"
	err := ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Base currency must be a 3-letter code", err.Error())

	req = validVanillaRequest()
	req.QuoteCurrency = "US"
	err = ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Quote currency must be a 3-letter code", err.Error())

	req = validVanillaRequest()
	req.QuoteCurrency = "EUR"
	err = ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Base and quote currency must differ", err.Error())
}

func TestValidateCommon_InterestRateSwapCurrencies(t *testing.T) {
	swapType := SwapTypeInterestRateSwap
	req := validVanillaRequest()
	req.ProductType = ProductTypeSwap
	req.SwapType = &swapType
	req.OptionType = nil
	req.StrikePrice = nil

	// 利率掉期必须单币种
	err := ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base and quote currency must be identical")

	req.QuoteCurrency = "EUR"
	require.NoError(t, ValidateCommon(req, testNow))
}

func TestValidateCommon_NotionalBounds(t *testing.T) {
	cases := []struct {
		name     string
		notional string
		wantMsg  string
	}{
		{"below minimum", "9999.99", "Notional amount must be at least 10000.00"},
		{"above maximum", "1000000000.01", "Notional amount must not exceed 1000000000.00"},
		{"too many decimals", "100000.001", "Notional amount must have at most 2 decimal places"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validVanillaRequest()
			req.NotionalAmount = decimal.RequireFromString(tc.notional)
			err := ValidateCommon(req, testNow)
			require.Error(t, err)
			assert.Equal(t, tc.wantMsg, err.Error())
		})
	}

	req := validVanillaRequest()
	req.NotionalAmount = decimal.NewFromInt(10000)
	assert.NoError(t, ValidateCommon(req, testNow))
	req.NotionalAmount = decimal.NewFromInt(1000000000)
	assert.NoError(t, ValidateCommon(req, testNow))
}

func TestValidateCommon_Strike(t *testing.T) {
	req := validVanillaRequest()
	req.StrikePrice = nil
	err := ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Strike price is required", err.Error())

	req = validVanillaRequest()
	req.StrikePrice = decPtr("0.000001")
	err = ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Strike price must be greater than 0.000001", err.Error())

	req = validVanillaRequest()
	req.StrikePrice = decPtr("1000000.01")
	err = ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Strike price must not exceed 1000000", err.Error())

	req = validVanillaRequest()
	req.StrikePrice = decPtr("1.2345678")
	err = ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Strike price must have at most 6 decimal places", err.Error())
}

func TestValidateCommon_SameDayMaturity(t *testing.T) {
	req := validVanillaRequest()
	maturity := testTradeDate
	req.MaturityDate = &maturity
	err := ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Same-day options are not supported", err.Error())

	// 其余字段无效时同样先命中当日到期规则
	req = validVanillaRequest()
	req.MaturityDate = &maturity
	req.NotionalAmount = decimal.NewFromInt(1)
	err = ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Same-day options are not supported", err.Error())
}

func TestValidateCommon_DateSequence(t *testing.T) {
	req := validVanillaRequest()
	req.TradeDate = testNow.AddDate(0, 0, 2)
	err := ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Trade date must not be more than 1 day in the future", err.Error())

	req = validVanillaRequest()
	req.ValueDate = req.TradeDate
	err = ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Value date must be at least 1 day after trade date", err.Error())

	req = validVanillaRequest()
	maturity := req.ValueDate
	req.MaturityDate = &maturity
	err = ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Maturity date must be at least 1 day after value date", err.Error())

	req = validVanillaRequest()
	farOut := req.TradeDate.AddDate(10, 0, 1)
	req.MaturityDate = &farOut
	err = ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Maturity tenor must not exceed 10 years", err.Error())
}

func TestValidateCommon_WeekendDates(t *testing.T) {
	saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	req := validVanillaRequest()
	req.ValueDate = saturday
	err := ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Value date must fall on a weekday", err.Error())

	req = validVanillaRequest()
	req.ValueDate = sunday
	err = ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Value date must fall on a weekday", err.Error())

	req = validVanillaRequest()
	weekendMaturity := time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC)
	req.MaturityDate = &weekendMaturity
	err = ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Maturity date must fall on a weekday", err.Error())
}

func TestValidateCommon_Premium(t *testing.T) {
	req := validVanillaRequest()
	req.PremiumAmount = decPtr("500.00")
	err := ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Premium amount and premium currency must be supplied together", err.Error())

	req = validVanillaRequest()
	req.PremiumCurrency = strPtr("EUR")
	err = ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Premium amount and premium currency must be supplied together", err.Error())

	req = validVanillaRequest()
	req.PremiumAmount = decPtr("-1.00")
	req.PremiumCurrency = strPtr("EUR")
	err = ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Premium amount must be positive", err.Error())

	req = validVanillaRequest()
	req.PremiumAmount = decPtr("500.001")
	req.PremiumCurrency = strPtr("EUR")
	err = ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Premium amount must have at most 2 decimal places", err.Error())

	req = validVanillaRequest()
	req.PremiumAmount = decPtr("500.00")
	req.PremiumCurrency = strPtr("EU")
	err = ValidateCommon(req, testNow)
	require.Error(t, err)
	assert.Equal(t, "Premium currency must be a 3-letter code", err.Error())

	req = validVanillaRequest()
	req.PremiumAmount = decPtr("500.00")
	req.PremiumCurrency = strPtr("EUR")
	assert.NoError(t, ValidateCommon(req, testNow))
}

func TestValidateCommon_Idempotent(t *testing.T) {
	valid := validVanillaRequest()
	invalid := validVanillaRequest()
	invalid.NotionalAmount = decimal.RequireFromString("9999.99")

	first := ValidateCommon(valid, testNow)
	second := ValidateCommon(valid, testNow)
	assert.Equal(t, first, second)

	firstErr := ValidateCommon(invalid, testNow)
	secondErr := ValidateCommon(invalid, testNow)
	require.Error(t, firstErr)
	require.Error(t, secondErr)
	assert.Equal(t, firstErr.Error(), secondErr.Error())
}

func TestCollectBookingAdvisories(t *testing.T) {
	req := validVanillaRequest()
	assert.Empty(t, CollectBookingAdvisories(req))

	req = validVanillaRequest()
	req.BaseCurrency = "TRY"
	advisories := CollectBookingAdvisories(req)
	require.Len(t, advisories, 1)
	assert.Equal(t, "NON_MAJOR_CURRENCY", advisories[0].Code)

	req = validVanillaRequest()
	req.BaseCurrency = "USD"
	req.QuoteCurrency = "GBP"
	advisories = CollectBookingAdvisories(req)
	require.Len(t, advisories, 1)
	assert.Equal(t, "NON_CANONICAL_PAIR", advisories[0].Code)

	req = validVanillaRequest()
	req.NotionalAmount = decimal.RequireFromString("100000001.00")
	advisories = CollectBookingAdvisories(req)
	require.Len(t, advisories, 1)
	assert.Equal(t, "LARGE_TRADE", advisories[0].Code)

	req = validVanillaRequest()
	shortMaturity := testTradeDate.AddDate(0, 0, 3)
	req.MaturityDate = &shortMaturity
	advisories = CollectBookingAdvisories(req)
	require.Len(t, advisories, 1)
	assert.Equal(t, "SHORT_TENOR", advisories[0].Code)

	req = validVanillaRequest()
	req.StrikePrice = decPtr("2.0000")
	advisories = CollectBookingAdvisories(req)
	require.Len(t, advisories, 1)
	assert.Equal(t, "STRIKE_FAR_FROM_SPOT", advisories[0].Code)
}
