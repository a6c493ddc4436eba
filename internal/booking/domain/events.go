package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kafka 主题
const (
	TopicTradeBooked        = "booking.trade.booked"
	TopicTradeStatusChanged = "booking.trade.status"
)

// TradeEvent 交易领域事件接口
type TradeEvent interface {
	EventType() string
	OccurredAt() time.Time
}

type BaseEvent struct {
	Timestamp time.Time
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// TradeBookedEvent 交易录入事件
type TradeBookedEvent struct {
	BaseEvent
	TradeID          uint
	TradeReference   string
	CounterpartyCode string
	ProductType      ProductType
	BaseCurrency     string
	QuoteCurrency    string
	NotionalAmount   decimal.Decimal
	Status           TradeStatus
}

func (e TradeBookedEvent) EventType() string { return "TradeBooked" }

// TradeStatusChangedEvent 交易状态变更事件
type TradeStatusChangedEvent struct {
	BaseEvent
	TradeID        uint
	TradeReference string
	FromStatus     TradeStatus
	ToStatus       TradeStatus
}

func (e TradeStatusChangedEvent) EventType() string { return "TradeStatusChanged" }
