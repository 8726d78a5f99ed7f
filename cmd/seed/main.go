package main

import (
	"log"
	"os"
	"time"

	"teamchat-be/internal/model"
	"teamchat-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds one demo account per role plus the role groups, so a fresh
// install can be exercised immediately.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding demo users...")

	demoUsers := []struct {
		Username string
		Email    string
		Role     string
	}{
		{Username: "demo_manager", Email: "manager@example.com", Role: "manager"},
		{Username: "demo_auditor", Email: "auditor@example.com", Role: "auditor"},
		{Username: "demo_client", Email: "client@example.com", Role: "client"},
	}

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "changeme-demo-1"
	}
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: Failed to hash seed password: %v", err)
	}
	hash := string(hashBytes)

	for _, u := range demoUsers {
		var existing model.User
		if err := db.Where("username = ?", u.Username).First(&existing).Error; err == nil {
			color.Yellow("User '%s' already exists, skipping...", u.Username)
			continue
		}

		user := model.User{
			Id:           uuid.New(),
			Username:     u.Username,
			Email:        u.Email,
			PasswordHash: &hash,
			Role:         u.Role,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := db.Create(&user).Error; err != nil {
			color.Red("Error creating user '%s': %v", u.Username, err)
			continue
		}

		group := model.Group{Id: uuid.New(), Name: u.Role, CreatedAt: time.Now()}
		if err := db.Where("name = ?", u.Role).FirstOrCreate(&group, model.Group{Name: u.Role}).Error; err != nil {
			color.Red("Error resolving group '%s': %v", u.Role, err)
			continue
		}

		membership := model.GroupMembership{
			Id:        uuid.New(),
			GroupId:   group.Id,
			UserId:    user.Id,
			CreatedAt: time.Now(),
		}
		if err := db.Create(&membership).Error; err != nil {
			color.Red("Error assigning '%s' to group '%s': %v", u.Username, u.Role, err)
			continue
		}

		color.Green("Created user: %s (%s)", u.Username, u.Role)
	}

	color.Cyan("Seeding completed!")
}
