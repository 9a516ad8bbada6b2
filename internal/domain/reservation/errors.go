package reservation

import "errors"

// Reservation ドメインのエラー定義
var (
	ErrReservationNotFound    = errors.New("予約が見つかりません")
	ErrNotPendingConfirmation = errors.New("予約は確定待ちではありません")
	ErrPendingExpired         = errors.New("確定期限が切れています")
	ErrNotConfirmed           = errors.New("予約は確定済みではありません")
	ErrNotCheckedIn           = errors.New("予約はチェックイン中ではありません")
	ErrAlreadyFinished        = errors.New("完了済みの予約はキャンセルできません")
	ErrAlreadyCancelled       = errors.New("予約は既にキャンセルされています")
	ErrReservationClosed      = errors.New("終了した予約は変更できません")
	ErrCabinNotAvailable      = errors.New("指定期間にキャビンの空きがありません")
	ErrDepositAlreadyPaid     = errors.New("前受金は既に支払われています")
	ErrBalanceAlreadyPaid     = errors.New("残金は既に支払われています")
	ErrTenantIDRequired       = errors.New("テナントIDは必須です")
	ErrCabinIDRequired        = errors.New("キャビンIDは必須です")
	ErrClientIDRequired       = errors.New("クライアントIDは必須です")
	ErrInvalidDateRange       = errors.New("チェックアウト日はチェックイン日より後である必要があります")
	ErrOverlapConflict        = errors.New("同一期間の予約が同時に作成されました")
)
