package cabin

import "errors"

// Cabin ドメインのエラー定義
var (
	ErrCabinNotFound     = errors.New("キャビンが見つかりません")
	ErrCabinInactive     = errors.New("キャビンは予約受付を停止しています")
	ErrTenantIDRequired  = errors.New("テナントIDは必須です")
	ErrCabinNameRequired = errors.New("キャビン名は必須です")
	ErrInvalidCapacity   = errors.New("定員は1以上である必要があります")
)
