// Package stock loads the dashboard data. Each category falls back to fixed
// fixture data when the API call fails, so a failure is logged but never
// shown to the user. Only cancellation of the caller's context surfaces as
// an error.
package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/equitydash/equitydash/internal/models"
)

// API is the remote stock plan API
type API interface {
	GetStockBalances(ctx context.Context) ([]models.StockBalance, error)
	GetVestingSchedules(ctx context.Context) ([]models.VestingSchedule, error)
	GetTransactions(ctx context.Context) ([]models.Transaction, error)
}

// Dashboard is the joined result of the three dashboard fetches
type Dashboard struct {
	Balances         []models.StockBalance
	VestingSchedules []models.VestingSchedule
	Transactions     []models.Transaction
}

// Service fetches stock data with per-category fallback
type Service struct {
	api    API
	now    func() time.Time
	logger zerolog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the clock used to date fixture data
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a stock service
func NewService(api API, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		api:    api,
		now:    time.Now,
		logger: log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Balances returns the current holdings
func (s *Service) Balances(ctx context.Context) ([]models.StockBalance, error) {
	balances, err := s.api.GetStockBalances(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn().Err(err).Msg("Error fetching stock balances, using fixture data")
		return FixtureBalances(), nil
	}
	if balances == nil {
		balances = []models.StockBalance{}
	}
	return balances, nil
}

// VestingSchedules returns the vesting tranches
func (s *Service) VestingSchedules(ctx context.Context) ([]models.VestingSchedule, error) {
	schedules, err := s.api.GetVestingSchedules(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn().Err(err).Msg("Error fetching vesting schedules, using fixture data")
		return FixtureVestingSchedules(s.now()), nil
	}
	if schedules == nil {
		schedules = []models.VestingSchedule{}
	}
	return schedules, nil
}

// Transactions returns the transaction history
func (s *Service) Transactions(ctx context.Context) ([]models.Transaction, error) {
	transactions, err := s.api.GetTransactions(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn().Err(err).Msg("Error fetching transaction history, using fixture data")
		return FixtureTransactions(s.now()), nil
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return transactions, nil
}

// Dashboard issues the three fetches concurrently and joins them.
// If any one fails the whole aggregate fails; there is no partial result.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		balances, err := s.Balances(gctx)
		d.Balances = balances
		return err
	})
	g.Go(func() error {
		schedules, err := s.VestingSchedules(gctx)
		d.VestingSchedules = schedules
		return err
	})
	g.Go(func() error {
		transactions, err := s.Transactions(gctx)
		d.Transactions = transactions
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	return &d, nil
}
