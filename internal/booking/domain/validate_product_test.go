package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validExoticRequest(exotic ExoticOptionType) *TradeBookingRequest {
	req := validVanillaRequest()
	req.ProductType = ProductTypeExoticOption
	req.ExoticType = &exotic
	return req
}

func validFXRequest(contractType FXContractType) *TradeBookingRequest {
	req := validVanillaRequest()
	req.ProductType = ProductTypeFXContract
	req.FXContractType = &contractType
	req.OptionType = nil
	req.StrikePrice = nil
	if contractType == FXContractTypeForward {
		req.ForwardRate = decPtr("1.2100")
	}
	return req
}

func validSwapRequest(swapType SwapType) *TradeBookingRequest {
	req := validVanillaRequest()
	req.ProductType = ProductTypeSwap
	req.SwapType = &swapType
	req.OptionType = nil
	req.StrikePrice = nil
	switch swapType {
	case SwapTypeFXSwap, SwapTypeCurrencySwap:
		near := testValueDate
		far := testMaturityDate
		req.NearLegDate = &near
		req.FarLegDate = &far
		req.NearLegRate = decPtr("1.2000")
		req.FarLegRate = decPtr("1.2150")
	case SwapTypeInterestRateSwap:
		req.QuoteCurrency = req.BaseCurrency
		req.FixedRate = decPtr("0.035")
		req.FloatingRateIndex = strPtr("SOFR")
		req.PaymentFrequency = strPtr("QUARTERLY")
	}
	return req
}

func TestValidatorRegistry_CoversAllProductTypes(t *testing.T) {
	registry := NewValidatorRegistry()
	for _, pt := range AllProductTypes {
		_, ok := registry.validators[pt]
		assert.True(t, ok, "missing validator for %s", pt)
	}
}

func TestValidatorRegistry_UnknownProductType(t *testing.T) {
	registry := NewValidatorRegistry()
	req := validVanillaRequest()
	req.ProductType = "BOND"
	err := registry.Validate(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoValidatorForProduct)
}

func TestVanillaOptionValidator(t *testing.T) {
	registry := NewValidatorRegistry()

	require.NoError(t, registry.Validate(validVanillaRequest()))

	req := validVanillaRequest()
	req.OptionType = nil
	err := registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Option type is required for option trades", err.Error())

	req = validVanillaRequest()
	bad := OptionType("STRADDLE")
	req.OptionType = &bad
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown option type")

	req = validVanillaRequest()
	req.StrikePrice = nil
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Strike price is required for option trades", err.Error())

	req = validVanillaRequest()
	req.MaturityDate = nil
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Maturity date is required for option trades", err.Error())

	req = validVanillaRequest()
	longMaturity := testTradeDate.AddDate(5, 0, 1)
	req.MaturityDate = &longMaturity
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Option tenor must not exceed 5 years", err.Error())
}

func TestExoticOptionValidator(t *testing.T) {
	registry := NewValidatorRegistry()

	req := validExoticRequest(ExoticOptionTypeBarrier)
	err := registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Barrier level is required for barrier options", err.Error())

	req = validExoticRequest(ExoticOptionTypeBarrier)
	req.BarrierLevel = decPtr("1.3000")
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Knock direction is required for barrier options", err.Error())

	req = validExoticRequest(ExoticOptionTypeBarrier)
	req.BarrierLevel = decPtr("1.3000")
	direction := BarrierDirectionOut
	req.KnockDirection = &direction
	require.NoError(t, registry.Validate(req))

	req = validExoticRequest(ExoticOptionTypeBarrier)
	req.BarrierLevel = decPtr("1.3000")
	badDirection := BarrierDirection("THROUGH")
	req.KnockDirection = &badDirection
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Knock direction must be IN or OUT")

	req = validExoticRequest(ExoticOptionTypeAsian)
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Observation frequency is required for Asian options", err.Error())

	req = validExoticRequest(ExoticOptionTypeAsian)
	req.ObservationFrequency = strPtr("DAILY")
	require.NoError(t, registry.Validate(req))

	// 数字期权固定赔付，无额外字段
	require.NoError(t, registry.Validate(validExoticRequest(ExoticOptionTypeDigital)))

	req = validVanillaRequest()
	req.ProductType = ProductTypeExoticOption
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Exotic option type is required for exotic options", err.Error())

	// 普通期权规则先于奇异规则
	req = validExoticRequest(ExoticOptionTypeDigital)
	req.OptionType = nil
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Option type is required for option trades", err.Error())
}

func TestFXContractValidator(t *testing.T) {
	registry := NewValidatorRegistry()

	req := validFXRequest(FXContractTypeForward)
	require.NoError(t, registry.Validate(req))

	req = validFXRequest(FXContractTypeForward)
	req.ForwardRate = nil
	err := registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Forward rate is required for forward contracts", err.Error())

	req = validFXRequest(FXContractTypeForward)
	req.MaturityDate = nil
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Maturity date is required for forward contracts", err.Error())

	req = validFXRequest(FXContractTypeForward)
	longMaturity := testTradeDate.AddDate(2, 0, 1)
	req.MaturityDate = &longMaturity
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Forward tenor must not exceed 2 years", err.Error())

	req = validFXRequest(FXContractTypeSpot)
	req.MaturityDate = nil
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Spot rate is required for spot contracts", err.Error())

	req = validFXRequest(FXContractTypeSpot)
	req.MaturityDate = nil
	req.SpotRate = decPtr("1.2000")
	require.NoError(t, registry.Validate(req))

	req = validFXRequest(FXContractTypeSpot)
	req.FXContractType = nil
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "FX contract type is required for FX contracts", err.Error())
}

func TestSwapValidator(t *testing.T) {
	registry := NewValidatorRegistry()

	require.NoError(t, registry.Validate(validSwapRequest(SwapTypeFXSwap)))
	require.NoError(t, registry.Validate(validSwapRequest(SwapTypeCurrencySwap)))
	require.NoError(t, registry.Validate(validSwapRequest(SwapTypeInterestRateSwap)))

	req := validSwapRequest(SwapTypeFXSwap)
	req.SwapType = nil
	err := registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Swap type is required for swap trades", err.Error())

	req = validSwapRequest(SwapTypeFXSwap)
	req.FarLegDate = req.NearLegDate
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Far leg date must be after near leg date", err.Error())

	req = validSwapRequest(SwapTypeFXSwap)
	req.NearLegRate = nil
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Near leg rate is required for swap trades", err.Error())

	req = validSwapRequest(SwapTypeCurrencySwap)
	req.MaturityDate = nil
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Maturity date is required for currency swaps", err.Error())

	req = validSwapRequest(SwapTypeCurrencySwap)
	longMaturity := testTradeDate.AddDate(10, 0, 1)
	req.MaturityDate = &longMaturity
	far := longMaturity.AddDate(0, 0, -1)
	req.FarLegDate = &far
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Currency swap tenor must not exceed 10 years", err.Error())

	req = validSwapRequest(SwapTypeInterestRateSwap)
	req.FixedRate = nil
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Fixed rate is required for interest rate swaps", err.Error())

	req = validSwapRequest(SwapTypeInterestRateSwap)
	req.FloatingRateIndex = strPtr("FAKE")
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Floating rate index FAKE is not supported", err.Error())

	req = validSwapRequest(SwapTypeInterestRateSwap)
	req.PaymentFrequency = nil
	err = registry.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Payment frequency is required for interest rate swaps", err.Error())
}

func TestSupportedFloatingIndices(t *testing.T) {
	for _, index := range []string{"SOFR", "LIBOR", "EURIBOR", "SONIA", "TONAR"} {
		assert.True(t, IsSupportedFloatingIndex(index), index)
	}
	assert.False(t, IsSupportedFloatingIndex("FAKE"))
	assert.False(t, IsSupportedFloatingIndex(""))
}

func TestTenorBoundary(t *testing.T) {
	registry := NewValidatorRegistry()

	// 恰好 5 年在边界内
	req := validVanillaRequest()
	exactly := time.Date(2031, 3, 2, 0, 0, 0, 0, time.UTC)
	req.MaturityDate = &exactly
	require.NoError(t, registry.Validate(req))
}
