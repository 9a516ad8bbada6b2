package application

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/cabin"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/pricing"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/reservation"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/transaction"
)

type mockTx struct{ mock.Mock }

func (m *mockTx) Commit() error {
	return m.Called().Error(0)
}

func (m *mockTx) Rollback() error {
	return m.Called().Error(0)
}

type mockTxManager struct{ mock.Mock }

func (m *mockTxManager) Begin(ctx context.Context) (transaction.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(transaction.Tx), args.Error(1)
}

// newAutoCommitTxManager はコミット・ロールバックを常に許可する
// トランザクションマネージャを返す
func newAutoCommitTxManager() *mockTxManager {
	tx := new(mockTx)
	tx.On("Commit").Return(nil).Maybe()
	tx.On("Rollback").Return(nil).Maybe()
	tm := new(mockTxManager)
	tm.On("Begin", mock.Anything).Return(tx, nil).Maybe()
	return tm
}

type mockCabinRepository struct{ mock.Mock }

func (m *mockCabinRepository) Create(ctx context.Context, c *cabin.Cabin) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCabinRepository) GetByID(ctx context.Context, id string) (*cabin.Cabin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cabin.Cabin), args.Error(1)
}

func (m *mockCabinRepository) ListActive(ctx context.Context, tenantID string) ([]*cabin.Cabin, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cabin.Cabin), args.Error(1)
}

func (m *mockCabinRepository) List(ctx context.Context, tenantID string) ([]*cabin.Cabin, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cabin.Cabin), args.Error(1)
}

func (m *mockCabinRepository) Update(ctx context.Context, c *cabin.Cabin) error {
	return m.Called(ctx, c).Error(0)
}

type mockPricingRepository struct{ mock.Mock }

func (m *mockPricingRepository) CreateGroup(ctx context.Context, g *pricing.PriceGroup) error {
	return m.Called(ctx, g).Error(0)
}

func (m *mockPricingRepository) GetGroupByID(ctx context.Context, id string) (*pricing.PriceGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PriceGroup), args.Error(1)
}

func (m *mockPricingRepository) ListGroups(ctx context.Context, tenantID string) ([]*pricing.PriceGroup, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.PriceGroup), args.Error(1)
}

func (m *mockPricingRepository) GetDefaultGroup(ctx context.Context, tenantID string) (*pricing.PriceGroup, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PriceGroup), args.Error(1)
}

func (m *mockPricingRepository) CreateRange(ctx context.Context, pr *pricing.PriceRange) error {
	return m.Called(ctx, pr).Error(0)
}

func (m *mockPricingRepository) ListRanges(ctx context.Context, tenantID string) ([]*pricing.PriceRange, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.PriceRange), args.Error(1)
}

func (m *mockPricingRepository) FindOverlappingRanges(ctx context.Context, tenantID string, from, to time.Time) ([]*pricing.PriceRange, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.PriceRange), args.Error(1)
}

type mockReservationRepository struct{ mock.Mock }

func (m *mockReservationRepository) Create(ctx context.Context, tx transaction.Tx, r *reservation.Reservation) error {
	return m.Called(ctx, tx, r).Error(0)
}

func (m *mockReservationRepository) GetByID(ctx context.Context, id string) (*reservation.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *mockReservationRepository) ListByClient(ctx context.Context, tenantID, clientID string, limit, offset int) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, tenantID, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Reservation), args.Error(1)
}

func (m *mockReservationRepository) FindOverlapping(ctx context.Context, cabinID string, from, to time.Time) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, cabinID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Reservation), args.Error(1)
}

func (m *mockReservationRepository) Update(ctx context.Context, tx transaction.Tx, r *reservation.Reservation) error {
	return m.Called(ctx, tx, r).Error(0)
}

func (m *mockReservationRepository) FindExpiredPending(ctx context.Context, now time.Time) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Reservation), args.Error(1)
}

func (m *mockReservationRepository) CreatePayment(ctx context.Context, tx transaction.Tx, p *reservation.Payment) error {
	return m.Called(ctx, tx, p).Error(0)
}

func (m *mockReservationRepository) GetPayments(ctx context.Context, reservationID string) ([]*reservation.Payment, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Payment), args.Error(1)
}
