package domain

import "fmt"

// TradeValidator 单一产品类型的校验能力
type TradeValidator interface {
	Validate(req *TradeBookingRequest) error
}

// TradeValidatorFunc 函数适配器
type TradeValidatorFunc func(req *TradeBookingRequest) error

func (f TradeValidatorFunc) Validate(req *TradeBookingRequest) error {
	return f(req)
}

// ValidatorRegistry 产品类型到校验器的映射，启动时构建且对枚举全覆盖
type ValidatorRegistry struct {
	validators map[ProductType]TradeValidator
}

// NewValidatorRegistry 构建覆盖全部产品类型的注册表
func NewValidatorRegistry() *ValidatorRegistry {
	return &ValidatorRegistry{
		validators: map[ProductType]TradeValidator{
			ProductTypeVanillaOption: TradeValidatorFunc(validateVanillaOption),
			ProductTypeExoticOption:  TradeValidatorFunc(validateExoticOption),
			ProductTypeFXContract:    TradeValidatorFunc(validateFXContract),
			ProductTypeSwap:          TradeValidatorFunc(validateSwap),
		},
	}
}

// Validate 按产品类型分发校验。未注册的产品类型属于配置错误。
func (r *ValidatorRegistry) Validate(req *TradeBookingRequest) error {
	v, ok := r.validators[req.ProductType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoValidatorForProduct, req.ProductType)
	}
	return v.Validate(req)
}

func validateVanillaOption(req *TradeBookingRequest) error {
	if req.OptionType == nil {
		return NewRuleError("option_type", "Option type is required for option trades")
	}
	if !req.OptionType.IsValid() {
		return NewRuleError("option_type", fmt.Sprintf("Unknown option type: %s", *req.OptionType))
	}
	if req.StrikePrice == nil {
		return NewRuleError("strike_price", "Strike price is required for option trades")
	}
	if req.MaturityDate == nil {
		return NewRuleError("maturity_date", "Maturity date is required for option trades")
	}
	if !req.MaturityDate.After(req.ValueDate) {
		return NewRuleError("maturity_date", "Maturity date must be after value date")
	}
	if req.MaturityDate.After(req.TradeDate.AddDate(5, 0, 0)) {
		return NewRuleError("maturity_date", "Option tenor must not exceed 5 years")
	}
	return nil
}

func validateExoticOption(req *TradeBookingRequest) error {
	if err := validateVanillaOption(req); err != nil {
		return err
	}
	if req.ExoticType == nil {
		return NewRuleError("exotic_type", "Exotic option type is required for exotic options")
	}
	switch *req.ExoticType {
	case ExoticOptionTypeBarrier:
		if req.BarrierLevel == nil {
			return NewRuleError("barrier_level", "Barrier level is required for barrier options")
		}
		if !req.BarrierLevel.IsPositive() {
			return NewRuleError("barrier_level", "Barrier level must be positive")
		}
		if req.KnockDirection == nil {
			return NewRuleError("knock_direction", "Knock direction is required for barrier options")
		}
		if !req.KnockDirection.IsValid() {
			return NewRuleError("knock_direction", fmt.Sprintf("Knock direction must be IN or OUT, got %s", *req.KnockDirection))
		}
	case ExoticOptionTypeAsian:
		if req.ObservationFrequency == nil || *req.ObservationFrequency == "" {
			return NewRuleError("observation_frequency", "Observation frequency is required for Asian options")
		}
	case ExoticOptionTypeDigital:
		// 固定赔付，无额外字段
	default:
		return NewRuleError("exotic_type", fmt.Sprintf("Unknown exotic option type: %s", *req.ExoticType))
	}
	return nil
}

func validateFXContract(req *TradeBookingRequest) error {
	if req.FXContractType == nil {
		return NewRuleError("fx_contract_type", "FX contract type is required for FX contracts")
	}
	switch *req.FXContractType {
	case FXContractTypeForward:
		if req.ForwardRate == nil {
			return NewRuleError("forward_rate", "Forward rate is required for forward contracts")
		}
		if !req.ForwardRate.IsPositive() {
			return NewRuleError("forward_rate", "Forward rate must be positive")
		}
		if req.MaturityDate == nil {
			return NewRuleError("maturity_date", "Maturity date is required for forward contracts")
		}
		if req.MaturityDate.After(req.TradeDate.AddDate(2, 0, 0)) {
			return NewRuleError("maturity_date", "Forward tenor must not exceed 2 years")
		}
	case FXContractTypeSpot:
		if req.SpotRate == nil {
			return NewRuleError("spot_rate", "Spot rate is required for spot contracts")
		}
		if !req.SpotRate.IsPositive() {
			return NewRuleError("spot_rate", "Spot rate must be positive")
		}
	default:
		return NewRuleError("fx_contract_type", fmt.Sprintf("Unknown FX contract type: %s", *req.FXContractType))
	}
	return nil
}

func validateSwap(req *TradeBookingRequest) error {
	if req.SwapType == nil {
		return NewRuleError("swap_type", "Swap type is required for swap trades")
	}
	switch *req.SwapType {
	case SwapTypeFXSwap:
		return validateSwapLegs(req)
	case SwapTypeCurrencySwap:
		if err := validateSwapLegs(req); err != nil {
			return err
		}
		if req.MaturityDate == nil {
			return NewRuleError("maturity_date", "Maturity date is required for currency swaps")
		}
		if req.MaturityDate.After(req.TradeDate.AddDate(10, 0, 0)) {
			return NewRuleError("maturity_date", "Currency swap tenor must not exceed 10 years")
		}
	case SwapTypeInterestRateSwap:
		if req.FixedRate == nil {
			return NewRuleError("fixed_rate", "Fixed rate is required for interest rate swaps")
		}
		if req.FloatingRateIndex == nil || *req.FloatingRateIndex == "" {
			return NewRuleError("floating_rate_index", "Floating rate index is required for interest rate swaps")
		}
		if !IsSupportedFloatingIndex(*req.FloatingRateIndex) {
			return NewRuleError("floating_rate_index", fmt.Sprintf("Floating rate index %s is not supported", *req.FloatingRateIndex))
		}
		if req.PaymentFrequency == nil || *req.PaymentFrequency == "" {
			return NewRuleError("payment_frequency", "Payment frequency is required for interest rate swaps")
		}
		if req.MaturityDate == nil {
			return NewRuleError("maturity_date", "Maturity date is required for interest rate swaps")
		}
	default:
		return NewRuleError("swap_type", fmt.Sprintf("Unknown swap type: %s", *req.SwapType))
	}
	return nil
}

func validateSwapLegs(req *TradeBookingRequest) error {
	if req.NearLegDate == nil {
		return NewRuleError("near_leg_date", "Near leg date is required for swap trades")
	}
	if req.FarLegDate == nil {
		return NewRuleError("far_leg_date", "Far leg date is required for swap trades")
	}
	if !req.FarLegDate.After(*req.NearLegDate) {
		return NewRuleError("far_leg_date", "Far leg date must be after near leg date")
	}
	if req.NearLegRate == nil {
		return NewRuleError("near_leg_rate", "Near leg rate is required for swap trades")
	}
	if req.FarLegRate == nil {
		return NewRuleError("far_leg_rate", "Far leg rate is required for swap trades")
	}
	return nil
}
