package stock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equitydash/equitydash/internal/models"
)

// fakeAPI returns canned data or a canned error per category
type fakeAPI struct {
	balances     []models.StockBalance
	vesting      []models.VestingSchedule
	transactions []models.Transaction
	err          error
	block        bool
}

func (f *fakeAPI) wait(ctx context.Context) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.err
}

func (f *fakeAPI) GetStockBalances(ctx context.Context) ([]models.StockBalance, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.balances, nil
}

func (f *fakeAPI) GetVestingSchedules(ctx context.Context) ([]models.VestingSchedule, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.vesting, nil
}

func (f *fakeAPI) GetTransactions(ctx context.Context) ([]models.Transaction, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.transactions, nil
}

var fixedNow = time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

func TestBalances_FallbackToFixture(t *testing.T) {
	svc := NewService(&fakeAPI{err: errors.New("connection refused")}, zerolog.Nop())

	balances, err := svc.Balances(context.Background())
	require.NoError(t, err)
	require.Len(t, balances, 2)

	assert.Equal(t, models.StockBalance{ID: "1", Type: "RSU", Quantity: 100, CurrentValue: 15000, CurrencyCode: "USD"}, balances[0])
	assert.Equal(t, models.StockBalance{ID: "2", Type: "Option", Quantity: 50, CurrentValue: 7500, CurrencyCode: "USD"}, balances[1])
}

func TestVestingAndTransactions_FixtureDates(t *testing.T) {
	svc := NewService(&fakeAPI{err: errors.New("503")}, zerolog.Nop(), WithClock(func() time.Time { return fixedNow }))
	ctx := context.Background()

	vesting, err := svc.VestingSchedules(ctx)
	require.NoError(t, err)
	require.Len(t, vesting, 3)
	assert.Equal(t, "2026-04-15", vesting[0].VestingDate)
	assert.Equal(t, "2026-06-15", vesting[1].VestingDate)
	assert.Equal(t, "2026-03-15", vesting[2].VestingDate)
	assert.Equal(t, models.VestingVested, vesting[2].Status)

	txs, err := svc.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, "2026-01-15", txs[0].Date)
	assert.Equal(t, models.TransactionGrant, txs[0].Type)
	assert.Equal(t, "2026-02-15", txs[1].Date)
	assert.Equal(t, "2026-03-15", txs[2].Date)
	assert.Equal(t, models.TransactionExercise, txs[2].Type)
}

func TestService_PassesThroughAPIData(t *testing.T) {
	api := &fakeAPI{
		balances: []models.StockBalance{{ID: "b", Type: "ESPP", Quantity: 3, CurrentValue: 450, CurrencyCode: "EUR"}},
	}
	svc := NewService(api, zerolog.Nop())
	ctx := context.Background()

	balances, err := svc.Balances(ctx)
	require.NoError(t, err)
	assert.Equal(t, api.balances, balances)

	// a null body is an empty list, not a fallback
	vesting, err := svc.VestingSchedules(ctx)
	require.NoError(t, err)
	assert.NotNil(t, vesting)
	assert.Empty(t, vesting)
}

func TestDashboard_JoinsAllThree(t *testing.T) {
	svc := NewService(&fakeAPI{err: errors.New("offline")}, zerolog.Nop(), WithClock(func() time.Time { return fixedNow }))

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, d.Balances, 2)
	assert.Len(t, d.VestingSchedules, 3)
	assert.Len(t, d.Transactions, 3)
}

func TestDashboard_CancelledFailsWhole(t *testing.T) {
	svc := NewService(&fakeAPI{block: true}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	d, err := svc.Dashboard(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, d)
}
