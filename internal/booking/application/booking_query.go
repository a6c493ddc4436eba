package application

import (
	"context"
	"time"

	"github.com/wyfcoding/fxbooking/internal/booking/domain"
)

// BookingQueryService 处理交易查询
type BookingQueryService struct {
	trades domain.TradeRepository
}

// NewBookingQueryService 创建查询服务
func NewBookingQueryService(trades domain.TradeRepository) *BookingQueryService {
	return &BookingQueryService{trades: trades}
}

// GetTrade 按 id 查询交易
func (s *BookingQueryService) GetTrade(ctx context.Context, id uint) (*domain.Trade, error) {
	return s.trades.GetByID(ctx, id)
}

// GetTradeByReference 按交易编号查询
func (s *BookingQueryService) GetTradeByReference(ctx context.Context, reference string) (*domain.Trade, error) {
	return s.trades.GetByReference(ctx, reference)
}

// ListTrades 按条件分页查询交易列表
func (s *BookingQueryService) ListTrades(ctx context.Context, filter domain.TradeFilter) ([]*domain.Trade, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.trades.List(ctx, filter)
}

// ListTradesByDateRange 按交易日区间查询，区间闭合且跨度不超过 1 年
func (s *BookingQueryService) ListTradesByDateRange(ctx context.Context, start, end time.Time, limit, offset int) ([]*domain.Trade, int64, error) {
	if start.IsZero() || end.IsZero() {
		return nil, 0, domain.NewRuleError("date_range", "Start date and end date are required")
	}
	if end.Before(start) {
		return nil, 0, domain.NewRuleError("date_range", "Start date must not be after end date")
	}
	if end.After(start.AddDate(1, 0, 0)) {
		return nil, 0, domain.NewRuleError("date_range", "Date range span must not exceed 1 year")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.trades.ListByTradeDateRange(ctx, start, end, limit, offset)
}

// ListExpiringTrades 查询未来 days 天内到期的活跃交易
func (s *BookingQueryService) ListExpiringTrades(ctx context.Context, days int) ([]*domain.Trade, error) {
	if days <= 0 {
		days = 7
	}
	now := time.Now()
	return s.trades.ListExpiring(ctx, now, now.AddDate(0, 0, days))
}
