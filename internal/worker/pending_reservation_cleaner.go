package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/pkg/logger"
)

// PendingCleaner は期限切れの未確定予約をキャンセルするインターフェース
type PendingCleaner interface {
	CancelExpiredPending(ctx context.Context) (int, error)
}

// PendingReservationCleaner は確定期限を過ぎた未確定予約を
// 定期的にキャンセル状態へ整理するワーカー
//
// 空き判定は期限を参照時に遅延評価するため、このワーカーが遅延・停止
// しても二重予約は発生しない。状態の整理と一覧・レポートの正確性の
// ための処理である
type PendingReservationCleaner struct {
	reservationService PendingCleaner
	interval           time.Duration
	stopCh             chan struct{}
	doneCh             chan struct{}
}

// NewPendingReservationCleaner は新しいクリーナーを作成
func NewPendingReservationCleaner(rs PendingCleaner, interval time.Duration) *PendingReservationCleaner {
	return &PendingReservationCleaner{
		reservationService: rs,
		interval:           interval,
		stopCh:             make(chan struct{}),
		doneCh:             make(chan struct{}),
	}
}

// Start はクリーナーを開始
func (c *PendingReservationCleaner) Start(ctx context.Context) {
	logger.Info("期限切れ予約クリーナー開始", zap.Duration("interval", c.interval))

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("期限切れ予約クリーナー停止（コンテキストキャンセル）")
			return
		case <-c.stopCh:
			logger.Info("期限切れ予約クリーナー停止（シグナル受信）")
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

// Stop はクリーナーを停止
func (c *PendingReservationCleaner) Stop() {
	close(c.stopCh)
	<-c.doneCh
}

// cleanup は期限切れの未確定予約をキャンセル
func (c *PendingReservationCleaner) cleanup(ctx context.Context) {
	log := logger.Get()
	log.Debug("期限切れ予約のクリーンアップ開始")

	count, err := c.reservationService.CancelExpiredPending(ctx)
	if err != nil {
		log.Error("期限切れ予約のクリーンアップ失敗", zap.Error(err))
		return
	}

	if count > 0 {
		log.Info("期限切れ予約をキャンセル", zap.Int("count", count))
	} else {
		log.Debug("期限切れ予約なし")
	}
}
