package application

import (
	"context"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/cabin"
)

// CabinService はキャビンの管理を提供する
type CabinService struct {
	cabinRepo cabin.Repository
}

func NewCabinService(cr cabin.Repository) *CabinService {
	return &CabinService{cabinRepo: cr}
}

// CreateCabinInput はキャビン作成の入力
type CreateCabinInput struct {
	TenantID    string
	Name        string
	Description string
	Capacity    int
}

// CreateCabin は新しいキャビンを作成する
func (s *CabinService) CreateCabin(ctx context.Context, input CreateCabinInput) (*cabin.Cabin, error) {
	c := cabin.NewCabin(input.TenantID, input.Name, input.Description, input.Capacity)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.cabinRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCabin はIDからキャビンを取得する。テナントをまたぐ参照は不可
func (s *CabinService) GetCabin(ctx context.Context, tenantID, id string) (*cabin.Cabin, error) {
	c, err := s.cabinRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.TenantID != tenantID {
		return nil, cabin.ErrCabinNotFound
	}
	return c, nil
}

// ListCabins はテナントの全キャビン一覧を取得する
func (s *CabinService) ListCabins(ctx context.Context, tenantID string) ([]*cabin.Cabin, error) {
	return s.cabinRepo.List(ctx, tenantID)
}

// SetCabinActive はキャビンの予約受付状態を切り替える
// 停止しても既存予約には影響しない（新規予約を受け付けなくなるのみ）
func (s *CabinService) SetCabinActive(ctx context.Context, tenantID, id string, active bool) (*cabin.Cabin, error) {
	c, err := s.GetCabin(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if active {
		c.Activate()
	} else {
		c.Deactivate()
	}
	if err := s.cabinRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
