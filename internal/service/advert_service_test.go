package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"testing"

	"haggle/internal/models"
	"haggle/internal/repository"
	"haggle/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubImageStore struct {
	fail    bool
	counter int
	deleted []string
}

func (s *stubImageStore) Store(_ context.Context, _ []byte, _, ext string) (*storage.StoredImage, error) {
	if s.fail {
		return nil, errors.New("delegate unreachable")
	}
	s.counter++
	key := fmt.Sprintf("adverts/test/%d.%s", s.counter, ext)
	return &storage.StoredImage{URL: "https://images.test/" + key, ID: key}, nil
}

func (s *stubImageStore) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

// brokenAppendRepo fails every AppendAdvert call to simulate the index
// write going down after a successful advert insert.
type brokenAppendRepo struct {
	repository.UserRepository
}

func (b *brokenAppendRepo) AppendAdvert(context.Context, uint, uint) error {
	return models.NewInternalError(errors.New("index write failed"))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func validInput(sellerID uint) PublishAdvertInput {
	return PublishAdvertInput{
		SellerID:    sellerID,
		Title:       "Brass floor lamp",
		Description: "Working, rewired last year.",
		Price:       450,
		Condition:   "Good",
		Category:    "Lightning",
		Delivery:    []string{"Pick up", "Meet up"},
	}
}

func seedUser(t *testing.T, userRepo repository.UserRepository) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
		AccessToken:  "token",
		Adverts:      []uint{},
	}
	require.NoError(t, userRepo.Create(context.Background(), user))
	return user
}

func TestPublish_Success(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	advertRepo := repository.NewAdvertRepository(db)
	store := &stubImageStore{}
	svc := NewAdvertService(advertRepo, userRepo, store)

	user := seedUser(t, userRepo)
	in := validInput(user.ID)
	in.Image = pngBytes(t)

	advert, err := svc.Publish(context.Background(), in)
	require.NoError(t, err)
	assert.NotZero(t, advert.ID)
	assert.Equal(t, models.DefaultCurrency, advert.Currency)
	assert.NotEmpty(t, advert.ImageURL)
	assert.NotEmpty(t, advert.ImageID)
	assert.False(t, advert.PublishedDate.IsZero())

	// The seller's listing index carries the new id
	updated, err := userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{advert.ID}, updated.Adverts)
}

func TestPublish_UploadFailureCreatesNothing(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	advertRepo := repository.NewAdvertRepository(db)
	svc := NewAdvertService(advertRepo, userRepo, &stubImageStore{fail: true})

	user := seedUser(t, userRepo)
	in := validInput(user.ID)
	in.Image = pngBytes(t)

	_, err := svc.Publish(context.Background(), in)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeUploadFailed))

	count, err := advertRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPublish_IndexFailureDoesNotRollBack(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	advertRepo := repository.NewAdvertRepository(db)
	svc := NewAdvertService(advertRepo, &brokenAppendRepo{userRepo}, &stubImageStore{})

	user := seedUser(t, userRepo)
	in := validInput(user.ID)
	in.Image = pngBytes(t)

	// Publication succeeds even though the index append failed
	advert, err := svc.Publish(context.Background(), in)
	require.NoError(t, err)
	assert.NotZero(t, advert.ID)

	stored, err := advertRepo.GetByID(context.Background(), advert.ID)
	require.NoError(t, err)
	assert.Equal(t, advert.ID, stored.ID)

	// The index is stale until repaired
	updated, err := userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Adverts)
}

func TestResync_RepairsStaleIndex(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	advertRepo := repository.NewAdvertRepository(db)

	broken := NewAdvertService(advertRepo, &brokenAppendRepo{userRepo}, &stubImageStore{})
	user := seedUser(t, userRepo)
	in := validInput(user.ID)
	in.Image = pngBytes(t)
	advert, err := broken.Publish(context.Background(), in)
	require.NoError(t, err)

	healthy := NewAdvertService(advertRepo, userRepo, &stubImageStore{})
	repaired, err := healthy.Resync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repaired)

	updated, err := userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{advert.ID}, updated.Adverts)

	// A second pass has nothing to do
	repaired, err = healthy.Resync(context.Background())
	require.NoError(t, err)
	assert.Zero(t, repaired)
}

func TestMarkSold_OwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	advertRepo := repository.NewAdvertRepository(db)
	svc := NewAdvertService(advertRepo, userRepo, &stubImageStore{})

	user := seedUser(t, userRepo)
	in := validInput(user.ID)
	in.Image = pngBytes(t)
	advert, err := svc.Publish(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.MarkSold(context.Background(), advert.ID, user.ID+1, true)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeUnauthorized))

	updated, err := svc.MarkSold(context.Background(), advert.ID, user.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Sold)
}
