package model

import "time"

type Course struct {
	Name        string `gorm:"primaryKey;size:128;not null" json:"name"`
	Price       int64  `gorm:"not null" json:"price"` // major units (rupees)
	Currency    string `gorm:"size:8;not null" json:"currency"`
	DownloadURL string `gorm:"size:512;not null" json:"-"` // delivery target, never exposed directly

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Order struct {
	OrderID   string `gorm:"primaryKey;size:64;not null"` // razorpay order id
	Receipt   string `gorm:"size:64;index"`
	Status    string `gorm:"size:32;index;not null"` // CREATED, PAID
	Amount    int64  `gorm:"not null"`               // minor units (paise)
	Currency  string `gorm:"size:8;not null"`
	PaymentID string `gorm:"size:64;index"` // set once the payment is verified
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Payment struct {
	PaymentID  string `gorm:"primaryKey;size:64;not null"` // razorpay payment id
	OrderID    string `gorm:"size:64;index;not null"`
	CourseName string `gorm:"size:128;index"`
	VerifiedAt time.Time
	CreatedAt  time.Time
}
