package models

import "time"

// Role values stored on User.Role.
const (
	RoleAdmin  = "admin"
	RoleBuyer  = "buyer"
	RoleWorker = "worker"
)

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100" json:"name"`
	Email       string    `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Role        string    `gorm:"type:enum('admin','buyer','worker');default:'worker'" json:"role"`
	Coin        float64   `gorm:"type:decimal(15,2);not null;default:0" json:"coin"`
	Photo       *string   `gorm:"type:varchar(255)" json:"photo,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

func (User) TableName() string {
	return "users"
}
