package pricing

import "errors"

// Pricing ドメインのエラー定義
var (
	ErrPriceGroupNotFound   = errors.New("料金グループが見つかりません")
	ErrPriceRangeNotFound   = errors.New("料金期間が見つかりません")
	ErrDefaultGroupNotFound = errors.New("デフォルト料金グループが設定されていません")
	ErrTenantIDRequired     = errors.New("テナントIDは必須です")
	ErrGroupIDRequired      = errors.New("料金グループIDは必須です")
	ErrGroupNameRequired    = errors.New("料金グループ名は必須です")
	ErrNegativePrice        = errors.New("料金は0以上である必要があります")
	ErrInvalidDateRange     = errors.New("日付範囲が不正です")
	ErrDefaultGroupExists   = errors.New("デフォルト料金グループは既に存在します")
)
