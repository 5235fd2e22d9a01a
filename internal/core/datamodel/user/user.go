package user

import "time"

type User struct {
	Username     string    `gorm:"column:username;primaryKey;size:50"`
	PasswordHash string    `gorm:"column:password_hash;size:60;not null"`
	Role         string    `gorm:"column:role;size:20;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
}

func (User) TableName() string {
	return "users"
}
