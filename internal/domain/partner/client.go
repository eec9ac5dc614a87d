package partner

import (
	"strings"
	"time"

	"github.com/mecanica/backend/internal/domain/shared"
)

// Client represents a customer of the repair shop
type Client struct {
	shared.BaseAggregateRoot
	Name     string `gorm:"type:varchar(200);not null"`
	Email    string `gorm:"type:varchar(254);not null;index"`
	Phone    string `gorm:"type:varchar(30)"`
	Document string `gorm:"type:varchar(20);uniqueIndex"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client
func NewClient(name, email, phone, document string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Client email is invalid")
	}

	return &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Phone:             phone,
		Document:          document,
	}, nil
}

// UpdateContact updates the client's contact information
func (c *Client) UpdateContact(email, phone string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Client email is invalid")
	}
	c.Email = email
	c.Phone = phone
	c.UpdatedAt = time.Now()
	return nil
}
