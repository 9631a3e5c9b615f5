// Package service implements the business logic of the marketplace.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"haggle/internal/middleware"
	"haggle/internal/models"
	"haggle/internal/repository"
	"haggle/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// accessTokenBytes is the entropy of a credential token before hex encoding.
const accessTokenBytes = 128

type UserService struct {
	userRepo repository.UserRepository
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// generateAccessToken produces the opaque credential issued once at signup.
func generateAccessToken() (string, error) {
	buf := make([]byte, accessTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", models.NewInternalError(err)
	}
	return hex.EncodeToString(buf), nil
}

// CreateUser registers a new user. The password is hashed before it is
// stored; the plaintext never leaves this function.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	token, err := generateAccessToken()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		AccessToken:  token,
		Adverts:      []uint{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AuthenticateByPassword resolves email and password to a user. An unknown
// email and a wrong password both return the same NotFound error so the two
// cases cannot be told apart from the outside.
func (s *UserService) AuthenticateByPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Burn a hash comparison anyway so response timing does not
		// reveal whether the account exists.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"), []byte(password))
		middleware.AuthFailures.WithLabelValues("password").Inc()
		return nil, models.NewNotFoundError("User", email)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		middleware.AuthFailures.WithLabelValues("password").Inc()
		return nil, models.NewNotFoundError("User", email)
	}
	return user, nil
}

// AuthenticateByToken resolves an access token to its owning user.
func (s *UserService) AuthenticateByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		middleware.AuthFailures.WithLabelValues("token").Inc()
		return nil, models.NewUnauthorizedError("Missing access token")
	}
	user, err := s.userRepo.GetByAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		middleware.AuthFailures.WithLabelValues("token").Inc()
		return nil, models.NewUnauthorizedError("Invalid access token")
	}
	return user, nil
}

// GetUserByID returns the user with the given id.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
