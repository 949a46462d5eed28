package models

import "time"

// BusinessInquiry is the intake form for hotels, restaurants, gyms and other
// recurring-volume customers. Follow-up happens outside the system.
type BusinessInquiry struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CompanyName string    `gorm:"type:varchar(150);not null" json:"company_name"`
	ContactName string    `gorm:"type:varchar(100);not null" json:"contact_name"`
	Email       string    `gorm:"type:varchar(100);not null" json:"email"`
	Phone       string    `gorm:"type:varchar(20)" json:"phone"`
	ServiceType string    `gorm:"type:varchar(40)" json:"service_type"`
	Message     string    `gorm:"type:text" json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

func (BusinessInquiry) TableName() string {
	return "business_inquiries"
}
