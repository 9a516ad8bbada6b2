package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/cabin"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/dateinterval"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/reservation"
	redisinfra "github.com/SantiNG23/api-gestion-hotelera-sub000/internal/infrastructure/redis"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/pkg/logger"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/pkg/metrics"
)

const availabilityCacheTTL = 30 * time.Second

// AvailabilityService はキャビンの空き判定を提供する
// 判定は渡された評価時刻 now に対して行われ、サービス自身は現在時刻を
// 参照しない（テストで固定時刻を与えられるようにするため）
type AvailabilityService struct {
	cabinRepo       cabin.Repository
	reservationRepo reservation.Repository
	cache           *redisinfra.AvailabilityCache
}

func NewAvailabilityService(cr cabin.Repository, rr reservation.Repository, cache *redisinfra.AvailabilityCache) *AvailabilityService {
	return &AvailabilityService{cabinRepo: cr, reservationRepo: rr, cache: cache}
}

// IsAvailable は半開区間 [checkIn, checkOut) でキャビンに空きがあるかを返す
// excludeID が空でない場合、そのIDの予約は判定から除外される
// （既存予約の日程変更を自分自身と衝突させないため）
func (s *AvailabilityService) IsAvailable(ctx context.Context, cabinID string, checkIn, checkOut time.Time, excludeID string, now time.Time) (bool, error) {
	checkIn = dateinterval.Normalize(checkIn)
	checkOut = dateinterval.Normalize(checkOut)
	if !checkOut.After(checkIn) {
		return false, reservation.ErrInvalidDateRange
	}

	overlapping, err := s.reservationRepo.FindOverlapping(ctx, cabinID, checkIn, checkOut)
	if err != nil {
		return false, err
	}

	available := true
	for _, res := range overlapping {
		if excludeID != "" && res.ID == excludeID {
			continue
		}
		if res.IsBlockingAt(now) && dateinterval.Overlaps(checkIn, checkOut, res.CheckIn, res.CheckOut) {
			available = false
			break
		}
	}

	if m := metrics.Get(); m != nil {
		result := "available"
		if !available {
			result = "blocked"
		}
		m.AvailabilityChecksTotal.WithLabelValues(result).Inc()
	}
	return available, nil
}

// AvailableCabins はテナントの予約受付中キャビンのうち、指定期間に
// 空きがあるものを返す。一覧はキャッシュされるが、予約作成時の
// 空き確認はこの結果を使わず常にデータベースを参照する
func (s *AvailabilityService) AvailableCabins(ctx context.Context, tenantID string, checkIn, checkOut, now time.Time) ([]*cabin.Cabin, error) {
	checkIn = dateinterval.Normalize(checkIn)
	checkOut = dateinterval.Normalize(checkOut)
	if !checkOut.After(checkIn) {
		return nil, reservation.ErrInvalidDateRange
	}

	active, err := s.cabinRepo.ListActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if ids, err := s.cache.GetAvailableCabins(ctx, tenantID, checkIn, checkOut); err == nil {
			return filterByIDs(active, ids), nil
		} else if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("空きキャッシュの取得に失敗", zap.Error(err))
		}
	}

	available := make([]*cabin.Cabin, 0, len(active))
	ids := make([]string, 0, len(active))
	for _, c := range active {
		free, err := s.IsAvailable(ctx, c.ID, checkIn, checkOut, "", now)
		if err != nil {
			return nil, err
		}
		if free {
			available = append(available, c)
			ids = append(ids, c.ID)
		}
	}

	if s.cache != nil {
		if err := s.cache.SetAvailableCabins(ctx, tenantID, checkIn, checkOut, ids, availabilityCacheTTL); err != nil {
			logger.Warn("空きキャッシュの保存に失敗", zap.Error(err))
		}
	}
	return available, nil
}

// BlockingReservations は指定期間に掛かる占有予約をチェックイン日の
// 昇順で返す。テナントをまたぐ参照は不可
func (s *AvailabilityService) BlockingReservations(ctx context.Context, tenantID, cabinID string, from, to, now time.Time) ([]*reservation.Reservation, error) {
	from = dateinterval.Normalize(from)
	to = dateinterval.Normalize(to)
	if !to.After(from) {
		return nil, reservation.ErrInvalidDateRange
	}

	c, err := s.cabinRepo.GetByID(ctx, cabinID)
	if err != nil {
		return nil, err
	}
	if c.TenantID != tenantID {
		return nil, cabin.ErrCabinNotFound
	}

	overlapping, err := s.reservationRepo.FindOverlapping(ctx, cabinID, from, to)
	if err != nil {
		return nil, err
	}

	blocking := make([]*reservation.Reservation, 0, len(overlapping))
	for _, res := range overlapping {
		if res.IsBlockingAt(now) {
			blocking = append(blocking, res)
		}
	}
	return blocking, nil
}

// BlockedRange は占有された期間を表す
type BlockedRange struct {
	From          time.Time          `json:"from"`
	To            time.Time          `json:"to"`
	Status        reservation.Status `json:"status"`
	ReservationID string             `json:"reservation_id"`
}

// BlockedRangesReport は期間内の占有状況のレポートを表す
type BlockedRangesReport struct {
	CabinID string         `json:"cabin_id"`
	From    time.Time      `json:"from"`
	To      time.Time      `json:"to"`
	Ranges  []BlockedRange `json:"ranges"`
}

// BlockedRanges は BlockingReservations のレポートビューを返す
func (s *AvailabilityService) BlockedRanges(ctx context.Context, tenantID, cabinID string, from, to, now time.Time) (*BlockedRangesReport, error) {
	blocking, err := s.BlockingReservations(ctx, tenantID, cabinID, from, to, now)
	if err != nil {
		return nil, err
	}

	ranges := make([]BlockedRange, len(blocking))
	for i, res := range blocking {
		ranges[i] = BlockedRange{
			From:          res.CheckIn,
			To:            res.CheckOut,
			Status:        res.Status,
			ReservationID: res.ID,
		}
	}
	return &BlockedRangesReport{
		CabinID: cabinID,
		From:    dateinterval.Normalize(from),
		To:      dateinterval.Normalize(to),
		Ranges:  ranges,
	}, nil
}

// DayStatusFree は占有予約のない日を示すステータス
const DayStatusFree = "free"

// DayStatus はカレンダー上の1日の状態を表す
type DayStatus struct {
	Date   time.Time `json:"date"`
	Status string    `json:"status"`
}

// Calendar は from から to まで（両端含む）の日ごとの占有状態を返す
func (s *AvailabilityService) Calendar(ctx context.Context, tenantID, cabinID string, from, to, now time.Time) ([]DayStatus, error) {
	from = dateinterval.Normalize(from)
	to = dateinterval.Normalize(to)
	if to.Before(from) {
		return nil, reservation.ErrInvalidDateRange
	}

	// カレンダーの末日に滞在中の予約も拾うため検索範囲を1日延ばす
	blocking, err := s.BlockingReservations(ctx, tenantID, cabinID, from, to.AddDate(0, 0, 1), now)
	if err != nil {
		return nil, err
	}

	days := dateinterval.DaysInRange(from, to)
	calendar := make([]DayStatus, len(days))
	for i, day := range days {
		status := DayStatusFree
		for _, res := range blocking {
			// 宿泊日は半開区間 [CheckIn, CheckOut) で判定する
			if !day.Before(res.CheckIn) && day.Before(res.CheckOut) {
				status = string(res.Status)
				break
			}
		}
		calendar[i] = DayStatus{Date: day, Status: status}
	}
	return calendar, nil
}

func filterByIDs(cabins []*cabin.Cabin, ids []string) []*cabin.Cabin {
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	result := make([]*cabin.Cabin, 0, len(ids))
	for _, c := range cabins {
		if _, ok := idSet[c.ID]; ok {
			result = append(result, c)
		}
	}
	return result
}
