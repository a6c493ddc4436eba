package domain

import (
	"fmt"
	"time"
)

// statusTransitions 交易状态机的合法迁移表。终态无出边。
var statusTransitions = map[TradeStatus][]TradeStatus{
	TradeStatusPending:   {TradeStatusConfirmed, TradeStatusCancelled, TradeStatusExpired},
	TradeStatusConfirmed: {TradeStatusSettled, TradeStatusCancelled, TradeStatusExpired},
	TradeStatusSettled:   {},
	TradeStatusCancelled: {},
	TradeStatusExpired:   {},
}

// ValidateStatusTransition 校验状态迁移是否合法
func ValidateStatusTransition(from, to TradeStatus) error {
	if !to.IsValid() {
		return NewRuleError("status", fmt.Sprintf("Unknown trade status: %s", to))
	}
	if from.IsTerminal() {
		return NewRuleError("status", fmt.Sprintf("Trade in terminal status %s cannot be modified", from))
	}
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return NewRuleError("status", fmt.Sprintf("Invalid status transition from %s to %s", from, to))
}

// TransitionTo 执行状态迁移并记录对应时间戳
func (t *Trade) TransitionTo(to TradeStatus, at time.Time) error {
	if err := ValidateStatusTransition(t.Status, to); err != nil {
		return err
	}
	t.Status = to
	switch to {
	case TradeStatusConfirmed:
		t.ConfirmedAt = &at
	case TradeStatusSettled:
		t.SettledAt = &at
	case TradeStatusCancelled:
		t.CancelledAt = &at
	case TradeStatusExpired:
		t.ExpiredAt = &at
	}
	return nil
}

// Cancel 撤销交易，仅允许 PENDING 状态
func (t *Trade) Cancel(at time.Time) error {
	if t.Status != TradeStatusPending {
		return NewRuleError("status", "Only pending trades can be cancelled")
	}
	return t.TransitionTo(TradeStatusCancelled, at)
}
