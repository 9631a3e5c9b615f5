package models

import (
	"time"
)

// Allowed values for the constrained Advert fields. These mirror the
// categories the storefront presents; anything else is a validation error.
var (
	Conditions = []string{"As new", "Good", "Used", "Needs alterations"}
	Categories = []string{"Textiles", "Lightning", "Decoration", "Rugs", "Furniture"}
	Deliveries = []string{"Pick up", "Meet up", "Ship"}
)

// DefaultCurrency is applied when a publish request does not name one.
const DefaultCurrency = "SEK"

// Advert represents a published listing. Immutable after creation except for
// the Sold flag. ImageURL/ImageID come from the image-storage delegate; an
// advert is never persisted without them. SellerID is the authoritative
// ownership link (the owning User's Adverts list is only a hint index).
type Advert struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `gorm:"not null" json:"description"`
	Price         int       `gorm:"not null" json:"price"`
	Currency      string    `gorm:"not null" json:"currency"`
	ImageURL      string    `gorm:"not null" json:"imageUrl"`
	ImageID       string    `gorm:"not null" json:"imageId"`
	Condition     string    `gorm:"not null" json:"condition"`
	Category      string    `gorm:"not null" json:"category"`
	Delivery      []string  `gorm:"serializer:json" json:"delivery"`
	Sold          bool      `gorm:"not null;default:false" json:"sold"`
	PublishedDate time.Time `json:"publishedDate"`
	SellerID      uint      `gorm:"not null;index" json:"seller"`
}
