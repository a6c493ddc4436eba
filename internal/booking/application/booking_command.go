package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/fxbooking/internal/booking/domain"
	"github.com/wyfcoding/fxbooking/pkg/logger"
	"github.com/wyfcoding/fxbooking/pkg/metrics"
)

// largeTradeMonitorThreshold 录入后需要下游监控关注的名义本金阈值
var largeTradeMonitorThreshold = decimal.NewFromInt(10000000)

// BookingResult 录入结果，提示信息与交易一并返回
type BookingResult struct {
	Trade      *domain.Trade     `json:"trade"`
	Advisories []domain.Advisory `json:"advisories,omitempty"`
}

// StatusHooks 状态变更副作用扩展点，每次被接受的迁移恰好触发一次
type StatusHooks interface {
	OnConfirmed(ctx context.Context, trade *domain.Trade)
	OnSettled(ctx context.Context, trade *domain.Trade)
	OnCancelled(ctx context.Context, trade *domain.Trade)
	OnExpired(ctx context.Context, trade *domain.Trade)
}

// LoggingStatusHooks 缺省钩子实现，记录日志占位后续的结算/头寸/额度流程
type LoggingStatusHooks struct{}

func (LoggingStatusHooks) OnConfirmed(ctx context.Context, trade *domain.Trade) {
	logger.Info(ctx, "initiating settlement for confirmed trade", "trade_reference", trade.TradeReference)
}

func (LoggingStatusHooks) OnSettled(ctx context.Context, trade *domain.Trade) {
	logger.Info(ctx, "updating positions for settled trade", "trade_reference", trade.TradeReference)
}

func (LoggingStatusHooks) OnCancelled(ctx context.Context, trade *domain.Trade) {
	logger.Info(ctx, "releasing credit limit for cancelled trade", "trade_reference", trade.TradeReference)
}

func (LoggingStatusHooks) OnExpired(ctx context.Context, trade *domain.Trade) {
	logger.Info(ctx, "running expiry processing for trade", "trade_reference", trade.TradeReference)
}

// BookingCommandService 处理交易录入与状态变更命令
type BookingCommandService struct {
	trades         domain.TradeRepository
	counterparties domain.CounterpartyRepository
	registry       *domain.ValidatorRegistry
	publisher      domain.EventPublisher
	hooks          StatusHooks
	metrics        *metrics.Metrics
	now            func() time.Time
}

// NewBookingCommandService 创建命令服务
func NewBookingCommandService(
	trades domain.TradeRepository,
	counterparties domain.CounterpartyRepository,
	publisher domain.EventPublisher,
	hooks StatusHooks,
	m *metrics.Metrics,
) *BookingCommandService {
	if hooks == nil {
		hooks = LoggingStatusHooks{}
	}
	return &BookingCommandService{
		trades:         trades,
		counterparties: counterparties,
		registry:       domain.NewValidatorRegistry(),
		publisher:      publisher,
		hooks:          hooks,
		metrics:        m,
		now:            time.Now,
	}
}

// BookTrade 录入交易。校验、工厂构建、期权费缺省与持久化要么全部成功要么整体拒绝。
func (s *BookingCommandService) BookTrade(ctx context.Context, req *domain.TradeBookingRequest) (*BookingResult, error) {
	start := s.now()
	req.Normalize()

	if err := domain.ValidateCommon(req, s.now()); err != nil {
		s.recordRejection(ctx, req, err)
		return nil, err
	}
	if err := s.registry.Validate(req); err != nil {
		s.recordRejection(ctx, req, err)
		return nil, err
	}

	counterparty, err := s.counterparties.GetByID(ctx, req.CounterpartyID)
	if err != nil {
		return nil, err
	}
	if !counterparty.CanTrade() {
		ruleErr := domain.NewRuleError("counterparty", fmt.Sprintf("Counterparty %s is not active", counterparty.Code))
		s.recordRejection(ctx, req, ruleErr)
		return nil, ruleErr
	}

	// 唯一性预检，与写入之间的竞态由数据库唯一约束兜底
	exists, err := s.trades.ExistsByReference(ctx, req.TradeReference)
	if err != nil {
		return nil, err
	}
	if exists {
		s.recordRejection(ctx, req, domain.ErrDuplicateTradeReference)
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateTradeReference, req.TradeReference)
	}

	trade := domain.BuildTrade(req, counterparty)
	if trade.ApplyDefaultPremium() {
		logger.Info(ctx, "default premium applied",
			"trade_reference", trade.TradeReference,
			"premium_amount", trade.PremiumAmount.String(),
			"premium_currency", *trade.PremiumCurrency)
	}

	if err := s.trades.Save(ctx, trade); err != nil {
		if errors.Is(err, domain.ErrDuplicateTradeReference) {
			s.recordRejection(ctx, req, err)
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateTradeReference, req.TradeReference)
		}
		logger.Error(ctx, "failed to persist trade", "trade_reference", req.TradeReference, "error", err)
		return nil, err
	}

	advisories := domain.CollectBookingAdvisories(req)
	for _, a := range advisories {
		logger.Warn(ctx, "booking advisory", "trade_reference", trade.TradeReference, "code", a.Code, "message", a.Message)
	}
	if trade.NotionalAmount.GreaterThan(largeTradeMonitorThreshold) {
		logger.Warn(ctx, "large trade booked",
			"trade_reference", trade.TradeReference,
			"notional_amount", trade.NotionalAmount.String())
	}

	s.metrics.RecordTradeBooked(string(trade.ProductType))
	s.metrics.ObserveBookingDuration(s.now().Sub(start))
	s.publish(ctx, domain.TopicTradeBooked, trade.TradeReference, domain.TradeBookedEvent{
		BaseEvent:        domain.BaseEvent{Timestamp: s.now()},
		TradeID:          trade.ID,
		TradeReference:   trade.TradeReference,
		CounterpartyCode: trade.CounterpartyCode,
		ProductType:      trade.ProductType,
		BaseCurrency:     trade.BaseCurrency,
		QuoteCurrency:    trade.QuoteCurrency,
		NotionalAmount:   trade.NotionalAmount,
		Status:           trade.Status,
	})

	logger.Info(ctx, "trade booked",
		"trade_reference", trade.TradeReference,
		"product_type", trade.ProductType,
		"status", trade.Status)
	return &BookingResult{Trade: trade, Advisories: advisories}, nil
}

// UpdateTradeStatus 通过状态机变更交易状态
func (s *BookingCommandService) UpdateTradeStatus(ctx context.Context, tradeID uint, newStatus domain.TradeStatus) (*domain.Trade, error) {
	trade, err := s.trades.GetByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}

	from := trade.Status
	if err := trade.TransitionTo(newStatus, s.now()); err != nil {
		logger.Warn(ctx, "status transition rejected",
			"trade_reference", trade.TradeReference,
			"from", from, "to", newStatus, "error", err)
		return nil, err
	}
	if err := s.trades.Update(ctx, trade); err != nil {
		logger.Error(ctx, "failed to persist status change", "trade_reference", trade.TradeReference, "error", err)
		return nil, err
	}

	s.fireHook(ctx, trade)
	s.metrics.RecordStatusTransition(string(newStatus))
	s.publish(ctx, domain.TopicTradeStatusChanged, trade.TradeReference, domain.TradeStatusChangedEvent{
		BaseEvent:      domain.BaseEvent{Timestamp: s.now()},
		TradeID:        trade.ID,
		TradeReference: trade.TradeReference,
		FromStatus:     from,
		ToStatus:       trade.Status,
	})

	logger.Info(ctx, "trade status changed",
		"trade_reference", trade.TradeReference, "from", from, "to", trade.Status)
	return trade, nil
}

// CancelTrade 撤销交易，仅 PENDING 状态允许单方撤销
func (s *BookingCommandService) CancelTrade(ctx context.Context, tradeID uint) error {
	trade, err := s.trades.GetByID(ctx, tradeID)
	if err != nil {
		return err
	}

	from := trade.Status
	if err := trade.Cancel(s.now()); err != nil {
		return err
	}
	if err := s.trades.Update(ctx, trade); err != nil {
		logger.Error(ctx, "failed to persist cancellation", "trade_reference", trade.TradeReference, "error", err)
		return err
	}

	s.fireHook(ctx, trade)
	s.metrics.RecordStatusTransition(string(trade.Status))
	s.publish(ctx, domain.TopicTradeStatusChanged, trade.TradeReference, domain.TradeStatusChangedEvent{
		BaseEvent:      domain.BaseEvent{Timestamp: s.now()},
		TradeID:        trade.ID,
		TradeReference: trade.TradeReference,
		FromStatus:     from,
		ToStatus:       trade.Status,
	})

	logger.Info(ctx, "trade cancelled", "trade_reference", trade.TradeReference)
	return nil
}

// ExpireMaturedTrades 将到期日已过的活跃交易批量置为 EXPIRED，返回处理数量
func (s *BookingCommandService) ExpireMaturedTrades(ctx context.Context) (int, error) {
	matured, err := s.trades.ListMaturedActive(ctx, s.now())
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, trade := range matured {
		from := trade.Status
		if err := trade.TransitionTo(domain.TradeStatusExpired, s.now()); err != nil {
			logger.Warn(ctx, "skipping trade during expiry sweep",
				"trade_reference", trade.TradeReference, "error", err)
			continue
		}
		if err := s.trades.Update(ctx, trade); err != nil {
			logger.Error(ctx, "failed to expire trade", "trade_reference", trade.TradeReference, "error", err)
			continue
		}
		s.fireHook(ctx, trade)
		s.metrics.RecordStatusTransition(string(domain.TradeStatusExpired))
		s.publish(ctx, domain.TopicTradeStatusChanged, trade.TradeReference, domain.TradeStatusChangedEvent{
			BaseEvent:      domain.BaseEvent{Timestamp: s.now()},
			TradeID:        trade.ID,
			TradeReference: trade.TradeReference,
			FromStatus:     from,
			ToStatus:       domain.TradeStatusExpired,
		})
		expired++
	}
	if expired > 0 {
		logger.Info(ctx, "expiry sweep completed", "expired", expired)
	}
	return expired, nil
}

func (s *BookingCommandService) fireHook(ctx context.Context, trade *domain.Trade) {
	switch trade.Status {
	case domain.TradeStatusConfirmed:
		s.hooks.OnConfirmed(ctx, trade)
	case domain.TradeStatusSettled:
		s.hooks.OnSettled(ctx, trade)
	case domain.TradeStatusCancelled:
		s.hooks.OnCancelled(ctx, trade)
	case domain.TradeStatusExpired:
		s.hooks.OnExpired(ctx, trade)
	}
}

func (s *BookingCommandService) publish(ctx context.Context, topic, key string, event domain.TradeEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, key, event); err != nil {
		logger.Warn(ctx, "failed to publish trade event",
			"topic", topic, "event_type", event.EventType(), "error", err)
	}
}

func (s *BookingCommandService) recordRejection(ctx context.Context, req *domain.TradeBookingRequest, err error) {
	s.metrics.RecordValidationFailure()
	rule := ""
	var bre *domain.BusinessRuleError
	if errors.As(err, &bre) {
		rule = bre.Rule
	}
	logger.Debug(ctx, "booking request rejected",
		"trade_reference", req.TradeReference, "rule", rule, "error", err)
}
