package application

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/dateinterval"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/pricing"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/reservation"
)

// PricingService は料金グループ・料金期間の管理と見積り計算を提供する
type PricingService struct {
	pricingRepo pricing.Repository
}

func NewPricingService(pr pricing.Repository) *PricingService {
	return &PricingService{pricingRepo: pr}
}

// CreatePriceGroupInput は料金グループ作成の入力
type CreatePriceGroupInput struct {
	TenantID  string
	Name      string
	BasePrice decimal.Decimal
	Priority  int
	IsDefault bool
}

// CreatePriceGroup は新しい料金グループを作成する
func (s *PricingService) CreatePriceGroup(ctx context.Context, input CreatePriceGroupInput) (*pricing.PriceGroup, error) {
	group := pricing.NewPriceGroup(input.TenantID, input.Name, input.BasePrice, input.Priority, input.IsDefault)
	if err := group.Validate(); err != nil {
		return nil, err
	}
	if err := s.pricingRepo.CreateGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// ListPriceGroups はテナントの料金グループ一覧を取得する
func (s *PricingService) ListPriceGroups(ctx context.Context, tenantID string) ([]*pricing.PriceGroup, error) {
	return s.pricingRepo.ListGroups(ctx, tenantID)
}

// CreatePriceRangeInput は料金期間作成の入力
type CreatePriceRangeInput struct {
	TenantID  string
	GroupID   string
	StartDate time.Time
	EndDate   time.Time
}

// CreatePriceRange は新しい料金期間を作成する
// 所有グループが同一テナントに属することを確認する
func (s *PricingService) CreatePriceRange(ctx context.Context, input CreatePriceRangeInput) (*pricing.PriceRange, error) {
	group, err := s.pricingRepo.GetGroupByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if group.TenantID != input.TenantID {
		return nil, pricing.ErrPriceGroupNotFound
	}

	pr := pricing.NewPriceRange(input.TenantID, input.GroupID, input.StartDate, input.EndDate)
	if err := pr.Validate(); err != nil {
		return nil, err
	}
	if err := s.pricingRepo.CreateRange(ctx, pr); err != nil {
		return nil, err
	}
	pr.Group = group
	return pr, nil
}

// ListPriceRanges はテナントの料金期間一覧を取得する
func (s *PricingService) ListPriceRanges(ctx context.Context, tenantID string) ([]*pricing.PriceRange, error) {
	return s.pricingRepo.ListRanges(ctx, tenantID)
}

// QuoteStay は半開区間 [checkIn, checkOut) の宿泊見積りを計算する
func (s *PricingService) QuoteStay(ctx context.Context, tenantID string, checkIn, checkOut time.Time) (*pricing.Quote, error) {
	checkIn = dateinterval.Normalize(checkIn)
	checkOut = dateinterval.Normalize(checkOut)
	if !checkOut.After(checkIn) {
		return nil, reservation.ErrInvalidDateRange
	}

	ranges, defaultGroup, err := s.rangesForStay(ctx, tenantID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	return pricing.CalculatePrice(checkIn, checkOut, ranges, defaultGroup)
}

// DailyRates は from から to まで（両端含む）の日ごとの適用料金を返す
func (s *PricingService) DailyRates(ctx context.Context, tenantID string, from, to time.Time) ([]pricing.DailyRate, error) {
	from = dateinterval.Normalize(from)
	to = dateinterval.Normalize(to)
	if to.Before(from) {
		return nil, pricing.ErrInvalidDateRange
	}

	ranges, err := s.pricingRepo.FindOverlappingRanges(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	defaultGroup, err := s.defaultGroup(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return pricing.ResolveDailyRates(from, to, ranges, defaultGroup)
}

// rangesForStay は宿泊日（checkIn から checkOut の前日まで）に掛かる
// 料金期間とデフォルトグループを取得する
func (s *PricingService) rangesForStay(ctx context.Context, tenantID string, checkIn, checkOut time.Time) ([]*pricing.PriceRange, *pricing.PriceGroup, error) {
	lastNight := checkOut.AddDate(0, 0, -1)
	ranges, err := s.pricingRepo.FindOverlappingRanges(ctx, tenantID, checkIn, lastNight)
	if err != nil {
		return nil, nil, err
	}
	defaultGroup, err := s.defaultGroup(ctx, tenantID)
	if err != nil {
		return nil, nil, err
	}
	return ranges, defaultGroup, nil
}

// defaultGroup はテナントのデフォルト料金グループを取得する
// 未設定は正常系（該当日は SourceNone で解決される）
func (s *PricingService) defaultGroup(ctx context.Context, tenantID string) (*pricing.PriceGroup, error) {
	group, err := s.pricingRepo.GetDefaultGroup(ctx, tenantID)
	if err != nil {
		if errors.Is(err, pricing.ErrDefaultGroupNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return group, nil
}
