package database

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"immigration-crm/internal/model"
)

// NewConnection initializes a new connection pool using GORM.
// TranslateError is on so unique-index violations come back as
// gorm.ErrDuplicatedKey instead of driver-specific errors.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// Migrate creates or updates the schema for all core models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Client{},
		&model.Case{},
		&model.CaseNote{},
		&model.Task{},
		&model.Document{},
		&model.Interaction{},
	)
}

// SeedDefaultAdmin ensures an initial admin account exists so a fresh
// deployment can be logged into. Idempotent: it never touches an existing
// admin row.
func SeedDefaultAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Username: "admin",
		Email:    "admin@immigrationfirm.com",
		Password: string(hashed),
		FullName: "System Administrator",
		Role:     model.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("Seeded default admin user (username: admin)")
	return nil
}
