package models

import "time"

// Transaction represents a single income or expense record owned by one user.
// Amount is stored in cents to avoid float drift, e.g. 12.34 = 1234 cents;
// the JSON surface speaks decimal amounts.
type Transaction struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"index;not null"`
	TxnType    string    `gorm:"size:16;not null"` // income / expense
	AmountCent int64     `gorm:"not null"`
	Category   string    `gorm:"size:32;not null"`
	Desc       string    `gorm:"size:255"`
	Date       time.Time `gorm:"index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
