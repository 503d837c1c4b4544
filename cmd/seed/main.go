package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"

	"gorm.io/gorm"

	"fitfans/internal/config"
	"fitfans/internal/db"
	"fitfans/internal/model"
	"fitfans/internal/repository"
)

// SeedUser mirrors the JSON seed file layout.
type SeedUser struct {
	FullName string  `json:"full_name"`
	Age      int     `json:"age"`
	Weight   float64 `json:"weight"`
	Height   float64 `json:"height"`
	Gender   string  `json:"gender"`
	Email    string  `json:"email"`
}

func main() {
	file := flag.String("file", "seed/users.json", "path to the JSON seed file")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	seedUsers, err := loadSeedFile(*file)
	if err != nil {
		log.Fatalf("Failed to load seed file: %v", err)
	}
	log.Printf("Loaded %d users from %s", len(seedUsers), *file)

	repo := repository.NewUserRepository(gormDB)
	created, updated, err := seed(context.Background(), repo, seedUsers)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Existing users updated: %d", updated)
}

func loadSeedFile(path string) ([]SeedUser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var users []SeedUser
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// seed upserts users by email so the script can be re-run safely.
func seed(ctx context.Context, repo repository.UserRepository, seedUsers []SeedUser) (created int, updated int, err error) {
	for _, su := range seedUsers {
		in := model.User{
			FullName: su.FullName,
			Age:      su.Age,
			Weight:   su.Weight,
			Height:   su.Height,
			Gender:   su.Gender,
			Email:    su.Email,
		}

		existing, findErr := repo.FindByEmail(ctx, su.Email)
		if findErr != nil && !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return created, updated, findErr
		}
		if findErr == nil {
			in.ID = existing.ID
			if err := repo.Update(ctx, &in); err != nil {
				return created, updated, err
			}
			updated++
			continue
		}

		if err := repo.Create(ctx, &in); err != nil {
			return created, updated, err
		}
		created++
	}
	return created, updated, nil
}
