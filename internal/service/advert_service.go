package service

import (
	"context"
	"log/slog"
	"time"

	"haggle/internal/cache"
	"haggle/internal/imaging"
	"haggle/internal/middleware"
	"haggle/internal/models"
	"haggle/internal/repository"
	"haggle/internal/storage"
	"haggle/internal/validation"
)

type AdvertService struct {
	advertRepo repository.AdvertRepository
	userRepo   repository.UserRepository
	images     storage.ImageStore
}

// PublishAdvertInput carries one listing submission, including the raw
// multipart image bytes.
type PublishAdvertInput struct {
	SellerID    uint
	Title       string
	Description string
	Price       int
	Currency    string
	Condition   string
	Category    string
	Delivery    []string
	Image       []byte
	ImageType   string
}

func NewAdvertService(advertRepo repository.AdvertRepository, userRepo repository.UserRepository, images storage.ImageStore) *AdvertService {
	return &AdvertService{advertRepo: advertRepo, userRepo: userRepo, images: images}
}

func (s *AdvertService) validatePublishInput(in PublishAdvertInput) error {
	if err := validation.ValidateTitle(in.Title); err != nil {
		return err
	}
	if err := validation.ValidateDescription(in.Description); err != nil {
		return err
	}
	if err := validation.ValidatePrice(in.Price); err != nil {
		return err
	}
	if err := validation.ValidateCondition(in.Condition); err != nil {
		return err
	}
	if err := validation.ValidateCategory(in.Category); err != nil {
		return err
	}
	return validation.ValidateDelivery(in.Delivery)
}

// Publish runs the listing publication protocol: validate, upload the image
// to the external store, create the advert, then append the advert id to the
// seller's listing index. The final step is best-effort: once the advert row
// exists the publication has succeeded, and an index failure is logged and
// repaired later by Resync rather than rolled back.
func (s *AdvertService) Publish(ctx context.Context, in PublishAdvertInput) (*models.Advert, error) {
	if err := s.validatePublishInput(in); err != nil {
		middleware.AdvertPublishes.WithLabelValues("validation_failed").Inc()
		return nil, err
	}

	processed, err := imaging.Process(in.Image, in.ImageType)
	if err != nil {
		middleware.AdvertPublishes.WithLabelValues("validation_failed").Inc()
		return nil, err
	}

	stored, err := s.images.Store(ctx, processed.Data, processed.ContentType, processed.Ext)
	if err != nil {
		middleware.AdvertPublishes.WithLabelValues("upload_failed").Inc()
		return nil, models.NewUploadFailedError(err)
	}

	currency := in.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	advert := &models.Advert{
		Title:         in.Title,
		Description:   in.Description,
		Price:         in.Price,
		Currency:      currency,
		ImageURL:      stored.URL,
		ImageID:       stored.ID,
		Condition:     in.Condition,
		Category:      in.Category,
		Delivery:      in.Delivery,
		PublishedDate: time.Now().UTC(),
		SellerID:      in.SellerID,
	}
	if err := s.advertRepo.Create(ctx, advert); err != nil {
		// The image is now orphaned in the store; drop it best-effort.
		if delErr := s.images.Delete(ctx, stored.ID); delErr != nil {
			middleware.Logger.WarnContext(ctx, "failed to delete orphaned image",
				slog.String("image_id", stored.ID),
				slog.String("error", delErr.Error()),
			)
		}
		middleware.AdvertPublishes.WithLabelValues("create_failed").Inc()
		return nil, err
	}

	if err := s.userRepo.AppendAdvert(ctx, in.SellerID, advert.ID); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to append advert to seller index",
			slog.Uint64("seller_id", uint64(in.SellerID)),
			slog.Uint64("advert_id", uint64(advert.ID)),
			slog.String("error", err.Error()),
		)
		middleware.AdvertPublishes.WithLabelValues("backref_failed").Inc()
	} else {
		middleware.AdvertPublishes.WithLabelValues("published").Inc()
	}

	cache.InvalidateAdvertsList(ctx)
	return advert, nil
}

// ListAdverts returns every advert, served from cache when fresh.
func (s *AdvertService) ListAdverts(ctx context.Context) ([]models.Advert, error) {
	var cached []models.Advert
	if cache.GetJSON(ctx, cache.AdvertsListKey, &cached) {
		middleware.CacheHits.Inc()
		return cached, nil
	}
	middleware.CacheMisses.Inc()

	adverts, err := s.advertRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, cache.AdvertsListKey, adverts, cache.AdvertsListTTL)
	return adverts, nil
}

// GetAdvertByID returns a single advert, served from cache when present.
func (s *AdvertService) GetAdvertByID(ctx context.Context, id uint) (*models.Advert, error) {
	var cached models.Advert
	if cache.GetJSON(ctx, cache.AdvertKey(id), &cached) {
		middleware.CacheHits.Inc()
		return &cached, nil
	}
	middleware.CacheMisses.Inc()

	advert, err := s.advertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, cache.AdvertKey(id), advert, cache.AdvertTTL)
	return advert, nil
}

// ListBySeller returns the adverts published by one user.
func (s *AdvertService) ListBySeller(ctx context.Context, sellerID uint) ([]models.Advert, error) {
	return s.advertRepo.ListBySeller(ctx, sellerID)
}

// MarkSold flips the sold flag. Only the seller may do this.
func (s *AdvertService) MarkSold(ctx context.Context, advertID, callerID uint, sold bool) (*models.Advert, error) {
	advert, err := s.advertRepo.GetByID(ctx, advertID)
	if err != nil {
		return nil, err
	}
	if advert.SellerID != callerID {
		return nil, models.NewUnauthorizedError("Only the seller can update this advert")
	}
	if err := s.advertRepo.SetSold(ctx, advertID, sold); err != nil {
		return nil, err
	}
	advert.Sold = sold
	cache.InvalidateAdvert(ctx, advertID)
	return advert, nil
}

// Resync repairs seller listing indexes that drifted because an append
// failed after a successful publish. It walks every advert and re-appends
// missing ids; AppendAdvert is idempotent so present ids are untouched.
func (s *AdvertService) Resync(ctx context.Context) (int, error) {
	adverts, err := s.advertRepo.List(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, advert := range adverts {
		user, err := s.userRepo.GetByID(ctx, advert.SellerID)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "resync: seller lookup failed",
				slog.Uint64("seller_id", uint64(advert.SellerID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		present := false
		for _, id := range user.Adverts {
			if id == advert.ID {
				present = true
				break
			}
		}
		if present {
			continue
		}
		if err := s.userRepo.AppendAdvert(ctx, advert.SellerID, advert.ID); err != nil {
			middleware.Logger.WarnContext(ctx, "resync: append failed",
				slog.Uint64("seller_id", uint64(advert.SellerID)),
				slog.Uint64("advert_id", uint64(advert.ID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		repaired++
	}
	return repaired, nil
}
