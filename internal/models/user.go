// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account in the Haggle marketplace.
//
// AccessToken is an opaque bearer secret issued once at registration and kept
// for the lifetime of the account; it is never rotated and never serialized.
// Adverts is a denormalized hint list of advert IDs owned by this user.
// Advert.SellerID is the authoritative link; this list may briefly lag behind
// after a publish (see service.AdvertService).
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	AccessToken  string    `gorm:"uniqueIndex;not null" json:"-"`
	Adverts      []uint    `gorm:"serializer:json" json:"adverts"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
