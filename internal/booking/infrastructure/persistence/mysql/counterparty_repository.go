package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wyfcoding/fxbooking/internal/booking/domain"
)

// CounterpartyRepository 对手方仓储的 gorm 实现
type CounterpartyRepository struct {
	db *gorm.DB
}

// NewCounterpartyRepository 创建对手方仓储
func NewCounterpartyRepository(db *gorm.DB) *CounterpartyRepository {
	return &CounterpartyRepository{db: db}
}

func (r *CounterpartyRepository) GetByID(ctx context.Context, id uint) (*domain.Counterparty, error) {
	var counterparty domain.Counterparty
	if err := r.db.WithContext(ctx).First(&counterparty, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCounterpartyNotFound
		}
		return nil, err
	}
	return &counterparty, nil
}

func (r *CounterpartyRepository) GetByCode(ctx context.Context, code string) (*domain.Counterparty, error) {
	var counterparty domain.Counterparty
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&counterparty).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCounterpartyNotFound
		}
		return nil, err
	}
	return &counterparty, nil
}

func (r *CounterpartyRepository) Save(ctx context.Context, counterparty *domain.Counterparty) error {
	return r.db.WithContext(ctx).Save(counterparty).Error
}

func (r *CounterpartyRepository) List(ctx context.Context) ([]*domain.Counterparty, error) {
	var counterparties []*domain.Counterparty
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&counterparties).Error; err != nil {
		return nil, err
	}
	return counterparties, nil
}
