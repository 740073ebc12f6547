package main

import (
	"flag"
	"log"

	"go-pos-backend/internal/config"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/service"
	"go-pos-backend/pkg/database"
)

// Resets a user's password directly in the store, for when the manager is
// locked out.
func main() {
	username := flag.String("user", "manager", "username whose password is reset")
	password := flag.String("password", "admin123", "new password")
	flag.Parse()

	cfg := config.Load()

	store, err := database.NewStore(database.Config{
		Driver: cfg.Database.Driver,
		Path:   cfg.Database.Path,
		DSN:    cfg.Database.URL,
	}, repository.Migrate)
	if err != nil {
		log.Fatalf("❌ Failed to open store: %v", err)
	}
	defer store.Close()

	userRepo := repository.NewUserRepo(store)
	user, err := userRepo.FindByUsername(*username)
	if err != nil {
		log.Fatalf("❌ User %s not found in database: %v", *username, err)
	}

	users := service.NewUserService(userRepo, nil)
	if err := users.SetPassword(user.ID, *password); err != nil {
		log.Fatalf("❌ Failed to update password: %v", err)
	}

	log.Printf("✅ Success! Password for %s has been reset", *username)
}
