package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/cabin"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/dateinterval"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/pricing"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/reservation"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/transaction"
	redisinfra "github.com/SantiNG23/api-gestion-hotelera-sub000/internal/infrastructure/redis"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/pkg/logger"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/pkg/metrics"
)

const (
	lockTTL        = 10 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond
)

// ReservationService は予約のライフサイクル全体を管理する
//
// 占有集合を変更する操作（作成・確定・日程変更）は、対象キャビンの
// 分散ロックで check-then-act を直列化した上でトランザクション内で
// 書き込む。ロックが万一破れた場合もデータベースの排他制約が
// 二重予約を拒否する。
type ReservationService struct {
	txManager       transaction.Manager
	reservationRepo reservation.Repository
	cabinRepo       cabin.Repository
	pricingRepo     pricing.Repository
	availability    *AvailabilityService
	lockManager     *redisinfra.LockManager
	cache           *redisinfra.AvailabilityCache
	pendingTTL      time.Duration

	// nowFn はテストで固定時刻を注入するためのフック
	nowFn func() time.Time
}

func NewReservationService(
	tm transaction.Manager,
	rr reservation.Repository,
	cr cabin.Repository,
	pr pricing.Repository,
	av *AvailabilityService,
	lm *redisinfra.LockManager,
	cache *redisinfra.AvailabilityCache,
	pendingTTL time.Duration,
) *ReservationService {
	if pendingTTL <= 0 {
		pendingTTL = reservation.DefaultPendingTTL
	}
	return &ReservationService{
		txManager:       tm,
		reservationRepo: rr,
		cabinRepo:       cr,
		pricingRepo:     pr,
		availability:    av,
		lockManager:     lm,
		cache:           cache,
		pendingTTL:      pendingTTL,
		nowFn:           time.Now,
	}
}

// CreateReservationInput は予約作成の入力
type CreateReservationInput struct {
	TenantID string
	CabinID  string
	ClientID string
	CheckIn  time.Time
	CheckOut time.Time
	Notes    string
}

// CreateReservation は新しい予約を pending_confirmation 状態で作成する
//
// キャビン単位の分散ロック下で空き確認と書き込みを行い、料金は
// 作成時点の料金設定で確定してスナップショットされる
func (s *ReservationService) CreateReservation(ctx context.Context, input CreateReservationInput) (*reservation.Reservation, error) {
	now := s.nowFn()
	checkIn := dateinterval.Normalize(input.CheckIn)
	checkOut := dateinterval.Normalize(input.CheckOut)
	if !checkOut.After(checkIn) {
		return nil, reservation.ErrInvalidDateRange
	}

	c, err := s.cabinRepo.GetByID(ctx, input.CabinID)
	if err != nil {
		return nil, err
	}
	if c.TenantID != input.TenantID {
		return nil, cabin.ErrCabinNotFound
	}
	if !c.Active {
		return nil, cabin.ErrCabinInactive
	}

	lock, err := s.acquireCabinLock(ctx, input.CabinID)
	if err != nil {
		s.recordReservation("lock_failed")
		return nil, err
	}
	defer s.releaseLock(ctx, lock)

	available, err := s.availability.IsAvailable(ctx, input.CabinID, checkIn, checkOut, "", now)
	if err != nil {
		s.recordReservation("error")
		return nil, err
	}
	if !available {
		s.recordReservation("conflict")
		return nil, reservation.ErrCabinNotAvailable
	}

	quote, err := s.quoteStay(ctx, input.TenantID, checkIn, checkOut)
	if err != nil {
		s.recordReservation("error")
		return nil, err
	}

	res := reservation.NewReservation(input.TenantID, input.CabinID, input.ClientID, checkIn, checkOut, quote, s.pendingTTL, now)
	res.Notes = input.Notes
	if err := res.Validate(); err != nil {
		return nil, err
	}

	if err := s.withTx(ctx, func(tx transaction.Tx) error {
		return s.reservationRepo.Create(ctx, tx, res)
	}); err != nil {
		if errors.Is(err, reservation.ErrOverlapConflict) {
			s.recordReservation("conflict")
		} else {
			s.recordReservation("error")
		}
		return nil, err
	}

	s.recordReservation("success")
	s.invalidateCache(ctx, res)
	logger.Info("予約を作成しました",
		zap.String("reservation_id", res.ID),
		zap.String("cabin_id", res.CabinID),
		zap.String("check_in", res.CheckIn.Format(dateinterval.DateFormat)),
		zap.String("check_out", res.CheckOut.Format(dateinterval.DateFormat)),
	)
	return res, nil
}

// GetReservation はIDから予約を取得する。テナントをまたぐ参照は不可
func (s *ReservationService) GetReservation(ctx context.Context, tenantID, id string) (*reservation.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.TenantID != tenantID {
		return nil, reservation.ErrReservationNotFound
	}
	return res, nil
}

// ListClientReservations はクライアントの予約一覧を取得する
func (s *ReservationService) ListClientReservations(ctx context.Context, tenantID, clientID string, limit, offset int) ([]*reservation.Reservation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.reservationRepo.ListByClient(ctx, tenantID, clientID, limit, offset)
}

// GetPayments は予約の支払い記録一覧を取得する
func (s *ReservationService) GetPayments(ctx context.Context, tenantID, id string) ([]*reservation.Payment, error) {
	if _, err := s.GetReservation(ctx, tenantID, id); err != nil {
		return nil, err
	}
	return s.reservationRepo.GetPayments(ctx, id)
}

// ConfirmReservation は前受金の支払いを記帳し、予約を確定する
//
// 期限切れの未確定予約は確定できない（遅延評価のため状態が
// pending_confirmation のままでも拒否される）
func (s *ReservationService) ConfirmReservation(ctx context.Context, tenantID, id string, method *string) (*reservation.Reservation, error) {
	now := s.nowFn()
	res, err := s.GetReservation(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if res.IsPendingExpiredAt(now) {
		return nil, reservation.ErrPendingExpired
	}

	lock, err := s.acquireCabinLock(ctx, res.CabinID)
	if err != nil {
		return nil, err
	}
	defer s.releaseLock(ctx, lock)

	if err := res.Confirm(now); err != nil {
		return nil, err
	}

	payment := reservation.NewPayment(res.ID, res.Deposit, reservation.PaymentDeposit, method, now)
	if err := s.withTx(ctx, func(tx transaction.Tx) error {
		if err := s.reservationRepo.CreatePayment(ctx, tx, payment); err != nil {
			return err
		}
		return s.reservationRepo.Update(ctx, tx, res)
	}); err != nil {
		return nil, err
	}

	logger.Info("予約を確定しました", zap.String("reservation_id", res.ID))
	return res, nil
}

// PayBalance は残金の支払いを記帳する。予約の状態は変更しない
// 確定済みの予約のみが対象（チェックイン時の残金はCheckInが記帳する）
func (s *ReservationService) PayBalance(ctx context.Context, tenantID, id string, method *string) (*reservation.Payment, error) {
	now := s.nowFn()
	res, err := s.GetReservation(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if res.Status != reservation.StatusConfirmed {
		return nil, reservation.ErrNotConfirmed
	}

	payment := reservation.NewPayment(res.ID, res.Balance, reservation.PaymentBalance, method, now)
	if err := s.withTx(ctx, func(tx transaction.Tx) error {
		return s.reservationRepo.CreatePayment(ctx, tx, payment)
	}); err != nil {
		return nil, err
	}
	return payment, nil
}

// CheckIn は確定済み予約をチェックイン状態にする
// 残金が未払いの場合はこの時点で記帳する
func (s *ReservationService) CheckIn(ctx context.Context, tenantID, id string, method *string) (*reservation.Reservation, error) {
	now := s.nowFn()
	res, err := s.GetReservation(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := res.CheckInGuest(now); err != nil {
		return nil, err
	}

	payments, err := s.reservationRepo.GetPayments(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.withTx(ctx, func(tx transaction.Tx) error {
		if !reservation.HasPayment(payments, reservation.PaymentBalance) {
			payment := reservation.NewPayment(res.ID, res.Balance, reservation.PaymentBalance, method, now)
			if err := s.reservationRepo.CreatePayment(ctx, tx, payment); err != nil {
				return err
			}
		}
		return s.reservationRepo.Update(ctx, tx, res)
	}); err != nil {
		return nil, err
	}

	logger.Info("チェックインしました", zap.String("reservation_id", res.ID))
	return res, nil
}

// CheckOut はチェックイン中の予約を完了状態にする
func (s *ReservationService) CheckOut(ctx context.Context, tenantID, id string) (*reservation.Reservation, error) {
	now := s.nowFn()
	res, err := s.GetReservation(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := res.CheckOutGuest(now); err != nil {
		return nil, err
	}

	if err := s.withTx(ctx, func(tx transaction.Tx) error {
		return s.reservationRepo.Update(ctx, tx, res)
	}); err != nil {
		return nil, err
	}

	logger.Info("チェックアウトしました", zap.String("reservation_id", res.ID))
	return res, nil
}

// CancelReservation は予約をキャンセルする
func (s *ReservationService) CancelReservation(ctx context.Context, tenantID, id string) (*reservation.Reservation, error) {
	now := s.nowFn()
	res, err := s.GetReservation(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := res.Cancel(now); err != nil {
		return nil, err
	}

	if err := s.withTx(ctx, func(tx transaction.Tx) error {
		return s.reservationRepo.Update(ctx, tx, res)
	}); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, res)
	logger.Info("予約をキャンセルしました", zap.String("reservation_id", res.ID))
	return res, nil
}

// RescheduleInput は日程変更の入力
// CabinID が空の場合は現在のキャビンを維持する
type RescheduleInput struct {
	CabinID  string
	CheckIn  time.Time
	CheckOut time.Time
}

// RescheduleReservation は予約の日程（とキャビン）を変更する
//
// 空き確認では予約自身を除外するため、期間の短縮や前後へのずらしは
// 他の予約と衝突しない限り常に成功する。料金は新しい日程で再計算される
func (s *ReservationService) RescheduleReservation(ctx context.Context, tenantID, id string, input RescheduleInput) (*reservation.Reservation, error) {
	now := s.nowFn()
	res, err := s.GetReservation(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if res.IsClosed() {
		return nil, reservation.ErrReservationClosed
	}

	checkIn := dateinterval.Normalize(input.CheckIn)
	checkOut := dateinterval.Normalize(input.CheckOut)
	if !checkOut.After(checkIn) {
		return nil, reservation.ErrInvalidDateRange
	}

	targetCabinID := input.CabinID
	if targetCabinID == "" {
		targetCabinID = res.CabinID
	}
	if targetCabinID != res.CabinID {
		c, err := s.cabinRepo.GetByID(ctx, targetCabinID)
		if err != nil {
			return nil, err
		}
		if c.TenantID != tenantID {
			return nil, cabin.ErrCabinNotFound
		}
		if !c.Active {
			return nil, cabin.ErrCabinInactive
		}
	}

	lock, err := s.acquireCabinLock(ctx, targetCabinID)
	if err != nil {
		return nil, err
	}
	defer s.releaseLock(ctx, lock)

	available, err := s.availability.IsAvailable(ctx, targetCabinID, checkIn, checkOut, res.ID, now)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, reservation.ErrCabinNotAvailable
	}

	quote, err := s.quoteStay(ctx, tenantID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	oldCheckIn, oldCheckOut := res.CheckIn, res.CheckOut
	if err := res.Reschedule(targetCabinID, checkIn, checkOut, quote, now); err != nil {
		return nil, err
	}

	if err := s.withTx(ctx, func(tx transaction.Tx) error {
		return s.reservationRepo.Update(ctx, tx, res)
	}); err != nil {
		return nil, err
	}

	s.invalidateCacheRange(ctx, res.TenantID, oldCheckIn, oldCheckOut)
	s.invalidateCache(ctx, res)
	logger.Info("予約の日程を変更しました",
		zap.String("reservation_id", res.ID),
		zap.String("check_in", res.CheckIn.Format(dateinterval.DateFormat)),
		zap.String("check_out", res.CheckOut.Format(dateinterval.DateFormat)),
	)
	return res, nil
}

// CancelExpiredPending は期限切れの未確定予約を一括でキャンセルする
// 空き判定は期限を遅延評価するため、この処理の遅延が二重予約の
// 原因になることはない（状態の整理とレポートの正確性のための処理）
func (s *ReservationService) CancelExpiredPending(ctx context.Context) (int, error) {
	now := s.nowFn()
	expired, err := s.reservationRepo.FindExpiredPending(ctx, now)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, res := range expired {
		if err := res.Cancel(now); err != nil {
			continue
		}
		if err := s.withTx(ctx, func(tx transaction.Tx) error {
			return s.reservationRepo.Update(ctx, tx, res)
		}); err != nil {
			logger.Warn("期限切れ予約のキャンセルに失敗",
				zap.String("reservation_id", res.ID), zap.Error(err))
			continue
		}
		cancelled++
	}
	return cancelled, nil
}

// quoteStay は宿泊日に掛かる料金期間とデフォルトグループから見積りを計算する
func (s *ReservationService) quoteStay(ctx context.Context, tenantID string, checkIn, checkOut time.Time) (*pricing.Quote, error) {
	ranges, err := s.pricingRepo.FindOverlappingRanges(ctx, tenantID, checkIn, checkOut.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	defaultGroup, err := s.pricingRepo.GetDefaultGroup(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, pricing.ErrDefaultGroupNotFound) {
			return nil, err
		}
		defaultGroup = nil
	}
	return pricing.CalculatePrice(checkIn, checkOut, ranges, defaultGroup)
}

func (s *ReservationService) acquireCabinLock(ctx context.Context, cabinID string) (*redisinfra.DistributedLock, error) {
	if s.lockManager == nil {
		return nil, nil
	}
	start := time.Now()
	lock, err := s.lockManager.AcquireLockWithRetry(ctx, redisinfra.CabinLockKey(cabinID), lockTTL, lockMaxRetries, lockRetryDelay)
	if m := metrics.Get(); m != nil {
		status := "success"
		if err != nil {
			status = "failed"
		}
		m.DistributedLockDuration.WithLabelValues("acquire", status).Observe(time.Since(start).Seconds())
	}
	return lock, err
}

func (s *ReservationService) releaseLock(ctx context.Context, lock *redisinfra.DistributedLock) {
	if lock == nil {
		return
	}
	if err := lock.Release(ctx); err != nil {
		logger.Warn("ロック解放に失敗", zap.Error(err))
	}
}

func (s *ReservationService) withTx(ctx context.Context, fn func(tx transaction.Tx) error) error {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("ロールバックに失敗", zap.Error(rbErr))
		}
		return err
	}
	return tx.Commit()
}

func (s *ReservationService) invalidateCache(ctx context.Context, res *reservation.Reservation) {
	s.invalidateCacheRange(ctx, res.TenantID, res.CheckIn, res.CheckOut)
}

// invalidateCacheRange は変更された期間と完全一致するキャッシュキーのみを
// 削除する。重なるだけの期間のキャッシュは短いTTLの失効に任せる
// （一覧表示専用キャッシュであり、空き確認は常にデータベースを参照する）
func (s *ReservationService) invalidateCacheRange(ctx context.Context, tenantID string, checkIn, checkOut time.Time) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, tenantID, checkIn, checkOut); err != nil {
		logger.Warn("空きキャッシュの無効化に失敗", zap.Error(err))
	}
}

func (s *ReservationService) recordReservation(status string) {
	if m := metrics.Get(); m != nil {
		m.ReservationsTotal.WithLabelValues(status).Inc()
	}
}
