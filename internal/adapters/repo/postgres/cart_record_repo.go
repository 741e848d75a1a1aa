package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tomasrv/modastore/internal/domain"
)

// CartRecord is the persisted cart of one device: the whole serialized
// collection in a single jsonb payload, replaced on every mutation. No
// cross-device merging happens here; one device id owns one record.
type CartRecord struct {
	DeviceID  string            `gorm:"primaryKey;size:80"`
	Items     []domain.CartItem `gorm:"type:jsonb;serializer:json"`
	UpdatedAt time.Time
}

// CartRecordRepo is the database-backed alternative to the file store. It
// satisfies the same CartRepository contract, so the cart store cannot tell
// the two apart.
type CartRecordRepo struct {
	db       *gorm.DB
	deviceID string
}

func NewCartRecordRepo(db *gorm.DB, deviceID string) *CartRecordRepo {
	return &CartRecordRepo{db: db, deviceID: deviceID}
}

func (r *CartRecordRepo) Load(ctx context.Context) ([]domain.CartItem, error) {
	var rec CartRecord
	if err := r.db.WithContext(ctx).First(&rec, "device_id = ?", r.deviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec.Items, nil
}

func (r *CartRecordRepo) Save(ctx context.Context, items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}
	return r.db.WithContext(ctx).Save(&CartRecord{DeviceID: r.deviceID, Items: items}).Error
}
