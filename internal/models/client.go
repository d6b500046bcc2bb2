// internal/models/client.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

// Client is a business owner submitting funding applications. A client only
// ever sees applications whose client record matches their own identity.
type Client struct {
	BaseModel
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name         string `json:"name" gorm:"size:255;not null"`
	Company      string `json:"company" gorm:"size:255"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`

	Applications []Application `json:"applications,omitempty" gorm:"foreignKey:ClientID"`
}

func (c *Client) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.PasswordHash = string(hashedPassword)
	return nil
}

func (c *Client) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password))
}
