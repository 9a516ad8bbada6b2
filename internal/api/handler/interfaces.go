package handler

import (
	"context"
	"time"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/application"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/cabin"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/pricing"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/reservation"
)

// CabinServiceInterface はキャビンサービスのインターフェース
type CabinServiceInterface interface {
	CreateCabin(ctx context.Context, input application.CreateCabinInput) (*cabin.Cabin, error)
	GetCabin(ctx context.Context, tenantID, id string) (*cabin.Cabin, error)
	ListCabins(ctx context.Context, tenantID string) ([]*cabin.Cabin, error)
	SetCabinActive(ctx context.Context, tenantID, id string, active bool) (*cabin.Cabin, error)
}

// AvailabilityServiceInterface は空き判定サービスのインターフェース
type AvailabilityServiceInterface interface {
	AvailableCabins(ctx context.Context, tenantID string, checkIn, checkOut, now time.Time) ([]*cabin.Cabin, error)
	BlockedRanges(ctx context.Context, tenantID, cabinID string, from, to, now time.Time) (*application.BlockedRangesReport, error)
	Calendar(ctx context.Context, tenantID, cabinID string, from, to, now time.Time) ([]application.DayStatus, error)
}

// PricingServiceInterface は料金サービスのインターフェース
type PricingServiceInterface interface {
	CreatePriceGroup(ctx context.Context, input application.CreatePriceGroupInput) (*pricing.PriceGroup, error)
	ListPriceGroups(ctx context.Context, tenantID string) ([]*pricing.PriceGroup, error)
	CreatePriceRange(ctx context.Context, input application.CreatePriceRangeInput) (*pricing.PriceRange, error)
	ListPriceRanges(ctx context.Context, tenantID string) ([]*pricing.PriceRange, error)
	QuoteStay(ctx context.Context, tenantID string, checkIn, checkOut time.Time) (*pricing.Quote, error)
	DailyRates(ctx context.Context, tenantID string, from, to time.Time) ([]pricing.DailyRate, error)
}

// ReservationServiceInterface は予約サービスのインターフェース
type ReservationServiceInterface interface {
	CreateReservation(ctx context.Context, input application.CreateReservationInput) (*reservation.Reservation, error)
	GetReservation(ctx context.Context, tenantID, id string) (*reservation.Reservation, error)
	ListClientReservations(ctx context.Context, tenantID, clientID string, limit, offset int) ([]*reservation.Reservation, error)
	GetPayments(ctx context.Context, tenantID, id string) ([]*reservation.Payment, error)
	ConfirmReservation(ctx context.Context, tenantID, id string, method *string) (*reservation.Reservation, error)
	PayBalance(ctx context.Context, tenantID, id string, method *string) (*reservation.Payment, error)
	CheckIn(ctx context.Context, tenantID, id string, method *string) (*reservation.Reservation, error)
	CheckOut(ctx context.Context, tenantID, id string) (*reservation.Reservation, error)
	CancelReservation(ctx context.Context, tenantID, id string) (*reservation.Reservation, error)
	RescheduleReservation(ctx context.Context, tenantID, id string, input application.RescheduleInput) (*reservation.Reservation, error)
}
