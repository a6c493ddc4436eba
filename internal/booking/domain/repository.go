package domain

import (
	"context"
	"time"
)

// TradeFilter 交易列表查询条件
type TradeFilter struct {
	ProductType   *ProductType
	Status        *TradeStatus
	Counterparty  *uint
	BaseCurrency  *string
	QuoteCurrency *string
	Limit         int
	Offset        int
}

// TradeRepository 交易仓储接口
type TradeRepository interface {
	Save(ctx context.Context, trade *Trade) error
	Update(ctx context.Context, trade *Trade) error
	GetByID(ctx context.Context, id uint) (*Trade, error)
	GetByReference(ctx context.Context, reference string) (*Trade, error)
	ExistsByReference(ctx context.Context, reference string) (bool, error)
	List(ctx context.Context, filter TradeFilter) ([]*Trade, int64, error)
	ListByTradeDateRange(ctx context.Context, start, end time.Time, limit, offset int) ([]*Trade, int64, error)
	ListMaturedActive(ctx context.Context, asOf time.Time) ([]*Trade, error)
	ListExpiring(ctx context.Context, from, to time.Time) ([]*Trade, error)
}

// CounterpartyRepository 对手方仓储接口
type CounterpartyRepository interface {
	GetByID(ctx context.Context, id uint) (*Counterparty, error)
	GetByCode(ctx context.Context, code string) (*Counterparty, error)
	Save(ctx context.Context, counterparty *Counterparty) error
	List(ctx context.Context) ([]*Counterparty, error)
}

// EventPublisher 领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event TradeEvent) error
}
