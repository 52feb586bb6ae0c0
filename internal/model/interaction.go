package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Interaction records a contact with a client (call, email, meeting) and the
// acting user. It is cascade-deleted with its client.
type Interaction struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID        uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Client          *Client   `gorm:"foreignKey:ClientID" json:"-"`
	UserID          uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User            *User     `gorm:"foreignKey:UserID" json:"-"`
	Type            string    `gorm:"type:varchar(100);not null" json:"type"`
	Notes           string    `gorm:"type:text;not null" json:"notes"`
	InteractionDate time.Time `gorm:"not null" json:"interaction_date"`
}

func (i *Interaction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.InteractionDate.IsZero() {
		i.InteractionDate = time.Now()
	}
	return nil
}
