package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	Email     string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Phone     string         `gorm:"type:varchar(20)" json:"phone"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}

// Address is a saved address-book entry. Orders copy the fields instead of
// referencing the row, so editing the book never changes past orders.
type Address struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CustomerID string    `gorm:"type:varchar(36);not null;index" json:"customer_id"`
	Label      string    `gorm:"type:varchar(40)" json:"label"`
	Street     string    `gorm:"type:varchar(255);not null" json:"street"`
	City       string    `gorm:"type:varchar(100);not null" json:"city"`
	PostalCode string    `gorm:"type:varchar(20);not null" json:"postal_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Address) TableName() string {
	return "addresses"
}
