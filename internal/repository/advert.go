package repository

import (
	"context"
	"errors"

	"haggle/internal/models"

	"gorm.io/gorm"
)

// AdvertRepository defines persistence operations for adverts.
type AdvertRepository interface {
	Create(ctx context.Context, advert *models.Advert) error
	GetByID(ctx context.Context, id uint) (*models.Advert, error)
	List(ctx context.Context) ([]models.Advert, error)
	ListBySeller(ctx context.Context, sellerID uint) ([]models.Advert, error)
	Count(ctx context.Context) (int64, error)
	SetSold(ctx context.Context, id uint, sold bool) error
}

type advertRepository struct {
	db *gorm.DB
}

// NewAdvertRepository returns a new AdvertRepository implementation.
func NewAdvertRepository(db *gorm.DB) AdvertRepository {
	return &advertRepository{db: db}
}

func (r *advertRepository) Create(ctx context.Context, advert *models.Advert) error {
	if err := r.db.WithContext(ctx).Create(advert).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *advertRepository) GetByID(ctx context.Context, id uint) (*models.Advert, error) {
	var advert models.Advert
	if err := r.db.WithContext(ctx).First(&advert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Advert", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &advert, nil
}

// List returns a fresh snapshot of every advert, newest first.
func (r *advertRepository) List(ctx context.Context) ([]models.Advert, error) {
	var adverts []models.Advert
	if err := r.db.WithContext(ctx).Order("published_date DESC").Find(&adverts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return adverts, nil
}

func (r *advertRepository) ListBySeller(ctx context.Context, sellerID uint) ([]models.Advert, error) {
	var adverts []models.Advert
	if err := r.db.WithContext(ctx).Where("seller_id = ?", sellerID).Order("published_date DESC").Find(&adverts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return adverts, nil
}

func (r *advertRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Advert{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *advertRepository) SetSold(ctx context.Context, id uint, sold bool) error {
	result := r.db.WithContext(ctx).Model(&models.Advert{}).Where("id = ?", id).Update("sold", sold)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Advert", id)
	}
	return nil
}
