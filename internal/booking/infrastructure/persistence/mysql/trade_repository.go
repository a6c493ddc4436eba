package mysql

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/wyfcoding/fxbooking/internal/booking/domain"
)

// TradeRepository 交易仓储的 gorm 实现
type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository 创建交易仓储
func NewTradeRepository(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

func (r *TradeRepository) Save(ctx context.Context, trade *domain.Trade) error {
	if err := r.db.WithContext(ctx).Create(trade).Error; err != nil {
		if isDuplicateKey(err) {
			return domain.ErrDuplicateTradeReference
		}
		return err
	}
	return nil
}

func (r *TradeRepository) Update(ctx context.Context, trade *domain.Trade) error {
	return r.db.WithContext(ctx).Save(trade).Error
}

func (r *TradeRepository) GetByID(ctx context.Context, id uint) (*domain.Trade, error) {
	var trade domain.Trade
	if err := r.db.WithContext(ctx).First(&trade, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTradeNotFound
		}
		return nil, err
	}
	return &trade, nil
}

func (r *TradeRepository) GetByReference(ctx context.Context, reference string) (*domain.Trade, error) {
	var trade domain.Trade
	err := r.db.WithContext(ctx).Where("trade_reference = ?", reference).First(&trade).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTradeNotFound
		}
		return nil, err
	}
	return &trade, nil
}

func (r *TradeRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Trade{}).
		Where("trade_reference = ?", reference).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TradeRepository) List(ctx context.Context, filter domain.TradeFilter) ([]*domain.Trade, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Trade{})
	if filter.ProductType != nil {
		query = query.Where("product_type = ?", *filter.ProductType)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Counterparty != nil {
		query = query.Where("counterparty_id = ?", *filter.Counterparty)
	}
	if filter.BaseCurrency != nil {
		query = query.Where("base_currency = ?", *filter.BaseCurrency)
	}
	if filter.QuoteCurrency != nil {
		query = query.Where("quote_currency = ?", *filter.QuoteCurrency)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trades []*domain.Trade
	err := query.Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&trades).Error
	if err != nil {
		return nil, 0, err
	}
	return trades, total, nil
}

func (r *TradeRepository) ListByTradeDateRange(ctx context.Context, start, end time.Time, limit, offset int) ([]*domain.Trade, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Trade{}).
		Where("trade_date >= ? AND trade_date <= ?", start, end)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trades []*domain.Trade
	err := query.Order("trade_date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&trades).Error
	if err != nil {
		return nil, 0, err
	}
	return trades, total, nil
}

func (r *TradeRepository) ListMaturedActive(ctx context.Context, asOf time.Time) ([]*domain.Trade, error) {
	var trades []*domain.Trade
	err := r.db.WithContext(ctx).
		Where("maturity_date IS NOT NULL AND maturity_date < ?", asOf).
		Where("status IN ?", []domain.TradeStatus{domain.TradeStatusPending, domain.TradeStatusConfirmed}).
		Find(&trades).Error
	if err != nil {
		return nil, err
	}
	return trades, nil
}

func (r *TradeRepository) ListExpiring(ctx context.Context, from, to time.Time) ([]*domain.Trade, error) {
	var trades []*domain.Trade
	err := r.db.WithContext(ctx).
		Where("maturity_date IS NOT NULL AND maturity_date >= ? AND maturity_date <= ?", from, to).
		Where("status IN ?", []domain.TradeStatus{domain.TradeStatusPending, domain.TradeStatusConfirmed}).
		Order("maturity_date ASC").
		Find(&trades).Error
	if err != nil {
		return nil, err
	}
	return trades, nil
}

// isDuplicateKey 识别唯一约束冲突。TranslateError 开启时 gorm 给出统一错误,
// sqlite 驱动在部分路径下仍返回原生错误文本。
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry")
}
