package database

import (
	"fmt"
	"log"
	"os"

	"blog-app/internal/domain/content"
	"blog-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		// users + tokens
		&users.User{},
		&users.ActionToken{},
		&users.RefreshToken{},

		// content
		&content.Theme{},
		&content.Tag{},
		&content.Post{},
		&content.Comment{},
		&content.Like{},
	); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	fmt.Println("Connected and migrated successfully")
}
