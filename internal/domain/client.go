package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Client struct {
	ID            string
	Name          string `validate:"required"`
	Email         string `validate:"required,email"`
	Phone         string
	Company       string
	Address       string
	City          string
	State         string
	ZipCode       string
	TotalOrders   int `validate:"gte=0"`
	TotalSpent    decimal.Decimal
	LastOrderDate *time.Time
	Status        ClientStatus `validate:"oneof=active inactive prospect"`
	Notes         string
}

// NewClient creates a prospect with no order history
func NewClient(id, name, email string) *Client {
	return &Client{
		ID:         id,
		Name:       strings.TrimSpace(name),
		Email:      strings.TrimSpace(email),
		TotalSpent: decimal.Zero,
		Status:     ClientStatusProspect,
	}
}

// Validate returns an error if the client is invalid
func (c *Client) Validate() error {
	return checkStruct(c)
}

// DisplayName prefers the company name when there is one
func (c *Client) DisplayName() string {
	if c.Company != "" {
		return c.Company
	}
	return c.Name
}

// AverageOrder is total spent divided by order count, zero with no orders
func (c *Client) AverageOrder() decimal.Decimal {
	if c.TotalOrders <= 0 {
		return decimal.Zero
	}
	return c.TotalSpent.Div(decimal.NewFromInt(int64(c.TotalOrders)))
}

// Clone returns a deep copy
func (c *Client) Clone() *Client {
	out := *c
	if c.LastOrderDate != nil {
		t := *c.LastOrderDate
		out.LastOrderDate = &t
	}
	return &out
}
