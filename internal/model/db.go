package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookStatus string

const (
	BookStatusPending  BookStatus = "Pending"
	BookStatusApproved BookStatus = "Approved"
	BookStatusRejected BookStatus = "Rejected"
	BookStatusSold     BookStatus = "Sold"
)

type Book struct {
	ID          string          `gorm:"primaryKey;size:36;not null" json:"_id"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Author      string          `gorm:"size:255;not null" json:"author"`
	ISBN        string          `gorm:"size:32" json:"isbn,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Condition   string          `gorm:"size:64;not null" json:"condition"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Category    string          `gorm:"size:64;index;not null" json:"category"`
	Images      []string        `gorm:"serializer:json" json:"images"`
	SellerID    string          `gorm:"size:36;index;not null" json:"user"` // seller user id
	Status      BookStatus      `gorm:"size:16;index;not null" json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           string `gorm:"primaryKey;size:36;not null" json:"_id"`
	Name         string `gorm:"size:128" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         Role   `gorm:"size:16;not null;default:user" json:"role"`

	// password reset, 0 means no code issued
	VerificationOTP      int        `gorm:"column:verification_otp" json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PaymentOrderStatus string

const (
	PaymentOrderCreated PaymentOrderStatus = "CREATED"
	PaymentOrderPaid    PaymentOrderStatus = "PAID"
)

type PaymentOrder struct {
	OrderID   string             `gorm:"primaryKey;size:64;not null"` // razorpay order id
	BookID    string             `gorm:"size:36;index;not null"`
	BuyerID   string             `gorm:"size:36;index;not null"`
	Amount    int64              `gorm:"not null"` // minor units
	Currency  string             `gorm:"size:8;not null"`
	Status    PaymentOrderStatus `gorm:"size:16;index;not null"`
	PaymentID string             `gorm:"size:64;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
