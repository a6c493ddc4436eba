package domain

import "errors"

var (
	ErrTradeNotFound           = errors.New("trade not found")
	ErrCounterpartyNotFound    = errors.New("counterparty not found")
	ErrDuplicateTradeReference = errors.New("trade reference already exists")
	// ErrNoValidatorForProduct 注册表配置错误，不是用户输入错误
	ErrNoValidatorForProduct = errors.New("no validator registered for product type")
)

// BusinessRuleError 业务规则校验失败，消息即规则的自然语言描述
type BusinessRuleError struct {
	Rule    string
	Message string
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

// NewRuleError 创建业务规则错误
func NewRuleError(rule, message string) error {
	return &BusinessRuleError{Rule: rule, Message: message}
}

// IsBusinessRuleError 判断是否业务规则错误
func IsBusinessRuleError(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}
