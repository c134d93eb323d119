package repositories

import (
	"context"
	"errors"

	"leasefee/internal/models"

	"gorm.io/gorm"
)

var ErrFeeRecordNotFound = errors.New("fee record not found")

// FeeRecordRepository stores persisted fee calculations.
type FeeRecordRepository interface {
	Create(ctx context.Context, record *models.FeeRecord) error
	FindByReference(ctx context.Context, reference string) (*models.FeeRecord, error)
	List(ctx context.Context, filter models.FeeRecordFilter, offset, limit int) ([]models.FeeRecord, int64, error)
}

type feeRecordRepository struct {
	db *gorm.DB
}

func NewFeeRecordRepository(db *gorm.DB) FeeRecordRepository {
	return &feeRecordRepository{db: db}
}

func (r *feeRecordRepository) Create(ctx context.Context, record *models.FeeRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *feeRecordRepository) FindByReference(ctx context.Context, reference string) (*models.FeeRecord, error) {
	var record models.FeeRecord
	err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *feeRecordRepository) List(ctx context.Context, filter models.FeeRecordFilter, offset, limit int) ([]models.FeeRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.FeeRecord{})
	if filter.TransactionType != "" {
		query = query.Where("transaction_type = ?", filter.TransactionType)
	}
	if filter.ListingID != "" {
		query = query.Where("listing_id = ?", filter.ListingID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.FeeRecord
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
