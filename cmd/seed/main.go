// Command main runs the database seeder for Haggle.
package main

import (
	"flag"
	"log"

	"haggle/internal/config"
	"haggle/internal/database"
	"haggle/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numAdverts := flag.Int("adverts", 100, "Number of adverts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d adverts, clean=%v\n", *numUsers, *numAdverts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumAdverts:  *numAdverts,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
