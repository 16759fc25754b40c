package models

import (
	"time"
)

type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OrgID           uint      `gorm:"not null;index" json:"org_id"`
	FirstName       string    `gorm:"size:100" json:"first_name"`
	LastName        string    `gorm:"size:100" json:"last_name"`
	Email           string    `gorm:"uniqueIndex;not null" json:"email"`
	Hi5QuotaBalance int       `gorm:"not null;default:0" json:"hi5_quota_balance"` // 剩余可送出的 Hi5 次数
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
