package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wyfcoding/fxbooking/internal/booking/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Trade{}, &domain.Counterparty{}))
	return db
}

func newTestTrade(reference string, tradeDate time.Time) *domain.Trade {
	optionType := domain.OptionTypeCall
	strike := decimal.RequireFromString("1.2500")
	maturity := tradeDate.AddDate(0, 1, 0)
	return &domain.Trade{
		TradeReference:   reference,
		CounterpartyID:   1,
		CounterpartyCode: "CP-GS",
		ProductType:      domain.ProductTypeVanillaOption,
		BaseCurrency:     "EUR",
		QuoteCurrency:    "USD",
		NotionalAmount:   decimal.RequireFromString("100000.00"),
		TradeDate:        tradeDate,
		ValueDate:        tradeDate.AddDate(0, 0, 2),
		MaturityDate:     &maturity,
		Status:           domain.TradeStatusPending,
		OptionType:       &optionType,
		StrikePrice:      &strike,
		CreatedBy:        "trader1",
	}
}

func TestTradeRepository_SaveAndGet(t *testing.T) {
	repo := NewTradeRepository(setupTestDB(t))
	ctx := context.Background()

	trade := newTestTrade("TRD-001", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, trade))
	assert.NotZero(t, trade.ID)

	byID, err := repo.GetByID(ctx, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, "TRD-001", byID.TradeReference)
	assert.True(t, byID.NotionalAmount.Equal(trade.NotionalAmount))
	require.NotNil(t, byID.StrikePrice)
	assert.True(t, byID.StrikePrice.Equal(decimal.RequireFromString("1.2500")))

	byRef, err := repo.GetByReference(ctx, "TRD-001")
	require.NoError(t, err)
	assert.Equal(t, byID.ID, byRef.ID)
}

func TestTradeRepository_NotFound(t *testing.T) {
	repo := NewTradeRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrTradeNotFound)

	_, err = repo.GetByReference(ctx, "TRD-404")
	assert.ErrorIs(t, err, domain.ErrTradeNotFound)
}

func TestTradeRepository_DuplicateReference(t *testing.T) {
	repo := NewTradeRepository(setupTestDB(t))
	ctx := context.Background()

	tradeDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, newTestTrade("TRD-001", tradeDate)))

	err := repo.Save(ctx, newTestTrade("TRD-001", tradeDate))
	assert.ErrorIs(t, err, domain.ErrDuplicateTradeReference)
}

func TestTradeRepository_ExistsByReference(t *testing.T) {
	repo := NewTradeRepository(setupTestDB(t))
	ctx := context.Background()

	exists, err := repo.ExistsByReference(ctx, "TRD-001")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Save(ctx, newTestTrade("TRD-001", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))))
	exists, err = repo.ExistsByReference(ctx, "TRD-001")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestTradeRepository_ListWithFilter(t *testing.T) {
	repo := NewTradeRepository(setupTestDB(t))
	ctx := context.Background()
	tradeDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	first := newTestTrade("TRD-001", tradeDate)
	require.NoError(t, repo.Save(ctx, first))

	second := newTestTrade("TRD-002", tradeDate)
	second.ProductType = domain.ProductTypeFXContract
	second.OptionType = nil
	second.StrikePrice = nil
	second.BaseCurrency = "GBP"
	require.NoError(t, repo.Save(ctx, second))

	third := newTestTrade("TRD-003", tradeDate)
	third.Status = domain.TradeStatusConfirmed
	require.NoError(t, repo.Save(ctx, third))

	productType := domain.ProductTypeVanillaOption
	trades, total, err := repo.List(ctx, domain.TradeFilter{ProductType: &productType, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, trades, 2)

	status := domain.TradeStatusConfirmed
	trades, total, err = repo.List(ctx, domain.TradeFilter{Status: &status, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, trades, 1)
	assert.Equal(t, "TRD-003", trades[0].TradeReference)

	base, quote := "EUR", "USD"
	trades, total, err = repo.List(ctx, domain.TradeFilter{BaseCurrency: &base, QuoteCurrency: &quote, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, trades, 2)
}

func TestTradeRepository_ListByTradeDateRange(t *testing.T) {
	repo := NewTradeRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newTestTrade("TRD-001", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, repo.Save(ctx, newTestTrade("TRD-002", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, repo.Save(ctx, newTestTrade("TRD-003", time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC))))

	trades, total, err := repo.ListByTradeDateRange(ctx,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, trades, 2)
}

func TestTradeRepository_ListMaturedActive(t *testing.T) {
	repo := NewTradeRepository(setupTestDB(t))
	ctx := context.Background()
	tradeDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	matured := newTestTrade("TRD-001", tradeDate)
	require.NoError(t, repo.Save(ctx, matured))

	settled := newTestTrade("TRD-002", tradeDate)
	settled.Status = domain.TradeStatusSettled
	require.NoError(t, repo.Save(ctx, settled))

	open := newTestTrade("TRD-003", tradeDate.AddDate(0, 6, 0))
	require.NoError(t, repo.Save(ctx, open))

	trades, err := repo.ListMaturedActive(ctx, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "TRD-001", trades[0].TradeReference)
}

func TestTradeRepository_Update(t *testing.T) {
	repo := NewTradeRepository(setupTestDB(t))
	ctx := context.Background()

	trade := newTestTrade("TRD-001", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, trade))

	now := time.Now()
	require.NoError(t, trade.TransitionTo(domain.TradeStatusConfirmed, now))
	require.NoError(t, repo.Update(ctx, trade))

	reloaded, err := repo.GetByID(ctx, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TradeStatusConfirmed, reloaded.Status)
	assert.NotNil(t, reloaded.ConfirmedAt)
}

func TestCounterpartyRepository(t *testing.T) {
	repo := NewCounterpartyRepository(setupTestDB(t))
	ctx := context.Background()

	cp := &domain.Counterparty{Code: "CP-GS", Name: "Goldman Sachs International", Active: true}
	require.NoError(t, repo.Save(ctx, cp))
	assert.NotZero(t, cp.ID)

	byID, err := repo.GetByID(ctx, cp.ID)
	require.NoError(t, err)
	assert.Equal(t, "CP-GS", byID.Code)
	assert.True(t, byID.CanTrade())

	byCode, err := repo.GetByCode(ctx, "CP-GS")
	require.NoError(t, err)
	assert.Equal(t, cp.ID, byCode.ID)

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrCounterpartyNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
