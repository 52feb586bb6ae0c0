package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a person the firm represents. Deleting a client cascades to its
// cases (and their children) and interactions; the cascade is executed
// application-side inside one transaction, see ClientService.DeleteClient.
type Client struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string     `gorm:"type:varchar(255);not null" json:"name"`
	Email          string     `gorm:"type:varchar(255);not null" json:"email"`
	Phone          string     `gorm:"type:varchar(50);not null" json:"phone"`
	Nationality    string     `gorm:"type:varchar(100)" json:"nationality"`
	Address        string     `gorm:"type:text" json:"address"`
	DateOfBirth    *time.Time `gorm:"type:date" json:"date_of_birth"`
	PassportNumber string     `gorm:"type:varchar(100)" json:"passport_number"`
	CreatedBy      *uuid.UUID `gorm:"type:uuid;index" json:"created_by"`
	Creator        *User      `gorm:"foreignKey:CreatedBy" json:"-"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
