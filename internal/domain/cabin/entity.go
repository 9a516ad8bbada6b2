package cabin

import "time"

// Cabin はキャビン（貸別荘の一棟）エンティティを表す
type Cabin struct {
	ID          string
	TenantID    string
	Name        string
	Description string
	Capacity    int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCabin は新しいキャビンを作成する
func NewCabin(tenantID, name, description string, capacity int) *Cabin {
	now := time.Now()
	return &Cabin{
		TenantID:    tenantID,
		Name:        name,
		Description: description,
		Capacity:    capacity,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate はキャビンの検証を行う
func (c *Cabin) Validate() error {
	if c.TenantID == "" {
		return ErrTenantIDRequired
	}
	if c.Name == "" {
		return ErrCabinNameRequired
	}
	if c.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}

// Deactivate はキャビンを予約受付停止にする
func (c *Cabin) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now()
}

// Activate はキャビンの予約受付を再開する
func (c *Cabin) Activate() {
	c.Active = true
	c.UpdatedAt = time.Now()
}
