// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	mathrand "math/rand"
	"strings"
	"time"

	"haggle/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumAdverts  int
	ShouldClean bool
}

// SeedPassword is the password every seeded user gets, for manual testing.
const SeedPassword = "longenough1"

var titleTemplates = []string{
	"Vintage %s",
	"Barely used %s",
	"Handmade %s",
	"Classic %s",
	"%s, must go",
	"Beautiful %s",
}

var itemsByCategory = map[string][]string{
	"Textiles":   {"linen curtains", "wool blanket", "silk cushion covers", "table runner"},
	"Lightning":  {"brass floor lamp", "pendant light", "desk lamp", "paper lantern"},
	"Decoration": {"ceramic vase", "wall mirror", "framed print", "candle holders"},
	"Rugs":       {"Persian rug", "kilim runner", "sheepskin rug", "jute rug"},
	"Furniture":  {"teak sideboard", "oak dining table", "rattan armchair", "bookshelf"},
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d adverts...", opts.NumUsers, opts.NumAdverts)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	adverts, err := createAdverts(db, users, opts.NumAdverts)
	if err != nil {
		return fmt.Errorf("failed to create adverts: %w", err)
	}
	log.Printf("created %d adverts", len(adverts))

	return nil
}

func clearData(db *gorm.DB) error {
	if err := db.Exec("DELETE FROM adverts").Error; err != nil {
		return err
	}
	return db.Exec("DELETE FROM users").Error
}

func randomToken() string {
	buf := make([]byte, 128)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

func createUsers(db *gorm.DB, n int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		name := gofakeit.FirstName()
		user := models.User{
			Name:         name,
			Email:        fmt.Sprintf("%s%d@example.com", strings.ToLower(name), i),
			PasswordHash: string(hash),
			AccessToken:  randomToken(),
			Adverts:      []uint{},
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createAdverts(db *gorm.DB, users []models.User, n int) ([]models.Advert, error) {
	if len(users) == 0 {
		return nil, nil
	}
	r := mathrand.New(mathrand.NewSource(time.Now().UnixNano()))

	adverts := make([]models.Advert, 0, n)
	for i := 0; i < n; i++ {
		seller := &users[r.Intn(len(users))]
		category := models.Categories[r.Intn(len(models.Categories))]
		items := itemsByCategory[category]
		item := items[r.Intn(len(items))]
		title := fmt.Sprintf(titleTemplates[r.Intn(len(titleTemplates))], item)
		if len(title) > 50 {
			title = title[:50]
		}

		deliveries := []string{models.Deliveries[r.Intn(len(models.Deliveries))]}

		advert := models.Advert{
			Title:         title,
			Description:   gofakeit.Paragraph(1, 2, 8, " "),
			Price:         1 + r.Intn(10000),
			Currency:      models.DefaultCurrency,
			ImageURL:      fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
			ImageID:       fmt.Sprintf("seed/%s.jpg", gofakeit.UUID()),
			Condition:     models.Conditions[r.Intn(len(models.Conditions))],
			Category:      category,
			Delivery:      deliveries,
			PublishedDate: time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
			SellerID:      seller.ID,
		}
		if err := db.Create(&advert).Error; err != nil {
			return nil, err
		}

		seller.Adverts = append(seller.Adverts, advert.ID)
		if err := db.Model(seller).Update("adverts", seller.Adverts).Error; err != nil {
			return nil, err
		}
		adverts = append(adverts, advert)
	}
	return adverts, nil
}
